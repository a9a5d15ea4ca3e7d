package client

import (
	"context"
	"sync"
)

// Hand-off keys used between pages.
const (
	KeyOpenTripID       = "openTripId"
	KeyFromPostCreate   = "fromPostCreate"
	KeyFollowingPageTab = "followingPageTab"
)

// Handoff is a single-use store: a value put under a key is read at most once.
type Handoff[T any] struct {
	mu     sync.Mutex
	values map[string]T
}

func NewHandoff[T any]() *Handoff[T] {
	return &Handoff[T]{values: make(map[string]T)}
}

func (h *Handoff[T]) Put(key string, v T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.values[key] = v
}

// Take returns the value under key and removes it.
func (h *Handoff[T]) Take(key string) (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.values[key]
	if ok {
		delete(h.values, key)
	}
	return v, ok
}

// TripCopier copies a trip and leaves the new id for the trip page to open.
type TripCopier struct {
	c       *Client
	handoff *Handoff[int64]
}

func NewTripCopier(c *Client, handoff *Handoff[int64]) *TripCopier {
	return &TripCopier{c: c, handoff: handoff}
}

func (t *TripCopier) Copy(ctx context.Context, tripID, userID int64) (int64, error) {
	newID, err := t.c.CopyTrip(ctx, tripID, userID)
	if err != nil {
		return 0, err
	}
	t.handoff.Put(KeyOpenTripID, newID)
	return newID, nil
}
