package client

import (
	"context"
	"sync"
)

// FavoritesIndex mirrors the user's saved places and trips.
type FavoritesIndex struct {
	c *Client

	mu     sync.RWMutex
	places map[int64]struct{}
	trips  map[int64]struct{}
}

func NewFavoritesIndex(c *Client) *FavoritesIndex {
	return &FavoritesIndex{
		c:      c,
		places: make(map[int64]struct{}),
		trips:  make(map[int64]struct{}),
	}
}

func (f *FavoritesIndex) Refresh(ctx context.Context) error {
	idx, err := f.c.FavoritesIndex(ctx)
	if err != nil {
		return err
	}

	places := make(map[int64]struct{}, len(idx.PlaceIDs))
	for _, id := range idx.PlaceIDs {
		places[id] = struct{}{}
	}
	trips := make(map[int64]struct{}, len(idx.TripIDs))
	for _, id := range idx.TripIDs {
		trips[id] = struct{}{}
	}

	f.mu.Lock()
	f.places, f.trips = places, trips
	f.mu.Unlock()
	return nil
}

func (f *FavoritesIndex) HasPlace(placeID int64) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.places[placeID]
	return ok
}

func (f *FavoritesIndex) HasTrip(tripID int64) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.trips[tripID]
	return ok
}

// AddPlace saves a place to a list. A place that is already saved counts as success.
func (f *FavoritesIndex) AddPlace(ctx context.Context, listID, placeID int64) error {
	if err := f.c.AddFavorite(ctx, listID, placeID); err != nil && !IsAlreadyFavorited(err) {
		return err
	}
	f.mu.Lock()
	f.places[placeID] = struct{}{}
	f.mu.Unlock()
	return nil
}

// RemovePlace unsaves a place after confirmation. The place stays in the
// index until the next Refresh since it may live in other lists.
func (f *FavoritesIndex) RemovePlace(ctx context.Context, listID, placeID int64, confirm Confirmer) error {
	if !confirm.Confirm(ctx, "確定要取消收藏嗎？") {
		return ErrCancelled
	}
	if err := f.c.RemoveFavorite(ctx, listID, placeID); err != nil {
		return err
	}
	return f.Refresh(ctx)
}

// ToggleTrip flips the favorite state of a trip and returns the new state.
func (f *FavoritesIndex) ToggleTrip(ctx context.Context, tripID int64) (bool, error) {
	if f.HasTrip(tripID) {
		if err := f.c.UnfavoriteTrip(ctx, tripID); err != nil {
			return true, err
		}
		f.mu.Lock()
		delete(f.trips, tripID)
		f.mu.Unlock()
		return false, nil
	}

	if err := f.c.FavoriteTrip(ctx, tripID); err != nil && !IsAlreadyFavorited(err) {
		return false, err
	}
	f.mu.Lock()
	f.trips[tripID] = struct{}{}
	f.mu.Unlock()
	return true, nil
}
