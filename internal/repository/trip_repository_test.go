package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tripCols = []string{"trip_id", "user_id", "trip_name", "description", "start_date", "end_date",
	"cover_image_url", "summary_text", "is_public", "location_id", "copied_from", "name",
	"total_days", "total_items", "created_at", "updated_at"}

func TestTripRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM trips t JOIN users u ON u.id = t.user_id WHERE t.trip_id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(int64(5), int64(1), "Tokyo", "", start, end, "", "", true, nil, int64(2), "Amy", 3, 4, now, now))

	trip, err := NewTripRepository(db).GetByID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, trip)
	assert.Equal(t, "Tokyo", trip.Name)
	assert.Equal(t, 3, trip.DayCount())
	assert.Nil(t, trip.LocationID)
	require.NotNil(t, trip.CopiedFrom)
	assert.Equal(t, int64(2), *trip.CopiedFrom)
	assert.Equal(t, 4, trip.TotalItems)
}

func TestTripRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM trips t").WillReturnRows(sqlmock.NewRows(tripCols))

	trip, err := NewTripRepository(db).GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, trip)
}

func TestTripRepository_ListPublic(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("WHERE t.is_public = \\$1 ORDER BY t.created_at DESC, t.trip_id DESC LIMIT 11 OFFSET 20").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(tripCols))

	trips, err := NewTripRepository(db).ListPublic(context.Background(), 11, 20)
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestTripDayRepository_DeleteAfter(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM trip_days WHERE trip_id = \\$1 AND day_number > \\$2").
		WithArgs(int64(5), 2).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewTripDayRepository(db).DeleteAfter(context.Background(), nil, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestTripItemRepository_NextSortOrder(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(sort_order\\), 0\\) \\+ 1 FROM trip_items").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))

	next, err := NewTripItemRepository(db).NextSortOrder(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestTripItemRepository_FindBySortOrder_None(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM trip_items").
		WithArgs(int64(10), 2, int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"trip_item_id"}))

	id, err := NewTripItemRepository(db).FindBySortOrder(context.Background(), nil, 10, 2, 4)
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestTripItemRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("INSERT INTO trip_items").
		WithArgs(int64(10), int64(99), "景點", "", "09:00", "10:00", 3).
		WillReturnRows(sqlmock.NewRows([]string{"trip_item_id"}).AddRow(int64(55)))

	id, err := NewTripItemRepository(db).Create(context.Background(), nil, &models.TripItem{
		TripDayID: 10, PlaceID: 99, Type: "景點", StartTime: "09:00", EndTime: "10:00", SortOrder: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55), id)
}
