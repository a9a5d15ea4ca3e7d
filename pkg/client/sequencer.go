package client

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned by Sequencer.Run when a newer call superseded this one.
var ErrStale = errors.New("stale response")

// Sequencer keeps only the latest of overlapping calls, as for a search box
// where each keystroke starts a query.
type Sequencer[T any] struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Run cancels the previous call and runs fn. The result is dropped with
// ErrStale if another Run started meanwhile.
func (s *Sequencer[T]) Run(ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	mine := s.seq
	s.cancel = cancel
	s.mu.Unlock()

	v, err := fn(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if mine != s.seq {
		var zero T
		return zero, ErrStale
	}
	s.cancel = nil
	cancel()
	return v, err
}
