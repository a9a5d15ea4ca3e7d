package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavoriteFixture(t *testing.T) (FavoriteService, *memFavorites, int64) {
	t.Helper()
	favs := newMemFavorites()
	trips := &mockTripRepo{getByIDFunc: func(ctx context.Context, id int64) (*models.Trip, error) {
		switch id {
		case 7:
			return &models.Trip{ID: 7, UserID: 2, IsPublic: true}, nil
		case 8:
			return &models.Trip{ID: 8, UserID: 2}, nil
		}
		return nil, nil
	}}
	svc := NewFavoriteService(favs, &mockPlaceRepo{exists: true}, trips)

	list, err := svc.CreateList(context.Background(), 1, "  Kyoto eats ")
	require.NoError(t, err)
	assert.Equal(t, "Kyoto eats", list.Name)
	return svc, favs, list.ID
}

func TestFavoriteService_PlaceToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, listID := newFavoriteFixture(t)

	require.NoError(t, svc.AddPlace(ctx, 1, listID, 9))
	assert.ErrorIs(t, svc.AddPlace(ctx, 1, listID, 9), ErrAlreadyFavorited)

	idx, err := svc.Index(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, idx.PlaceIDs)

	require.NoError(t, svc.RemovePlace(ctx, 1, listID, 9))
	assert.ErrorIs(t, svc.RemovePlace(ctx, 1, listID, 9), ErrNotFound)

	idx, err = svc.Index(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, idx.PlaceIDs)
}

func TestFavoriteService_ListOwnership(t *testing.T) {
	ctx := context.Background()
	svc, _, listID := newFavoriteFixture(t)

	assert.ErrorIs(t, svc.AddPlace(ctx, 2, listID, 9), ErrForbidden)
	assert.ErrorIs(t, svc.DeleteList(ctx, 2, listID), ErrForbidden)
	_, err := svc.GetList(ctx, 2, listID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Lists(ctx, 2, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	lists, err := svc.Lists(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, lists, 1)

	require.NoError(t, svc.DeleteList(ctx, 1, listID))
	assert.ErrorIs(t, svc.AddPlace(ctx, 1, listID, 9), ErrNotFound)
}

func TestFavoriteService_UnknownPlace(t *testing.T) {
	favs := newMemFavorites()
	svc := NewFavoriteService(favs, &mockPlaceRepo{}, &mockTripRepo{})
	list, err := svc.CreateList(context.Background(), 1, "x")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AddPlace(context.Background(), 1, list.ID, 9), ErrNotFound)
}

func TestFavoriteService_CreateListValidation(t *testing.T) {
	svc := NewFavoriteService(newMemFavorites(), &mockPlaceRepo{}, &mockTripRepo{})

	_, err := svc.CreateList(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	long := make([]rune, maxListNameLength+1)
	for i := range long {
		long[i] = '景'
	}
	_, err = svc.CreateList(context.Background(), 1, string(long))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFavoriteService_TripToggle(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newFavoriteFixture(t)

	require.NoError(t, svc.FavoriteTrip(ctx, 1, 7))
	assert.ErrorIs(t, svc.FavoriteTrip(ctx, 1, 7), ErrAlreadyFavorited)
	assert.ErrorIs(t, svc.FavoriteTrip(ctx, 1, 8), ErrForbidden)
	assert.ErrorIs(t, svc.FavoriteTrip(ctx, 1, 99), ErrNotFound)

	idx, err := svc.Index(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, idx.TripIDs)

	require.NoError(t, svc.UnfavoriteTrip(ctx, 1, 7))
	assert.ErrorIs(t, svc.UnfavoriteTrip(ctx, 1, 7), ErrNotFound)
}
