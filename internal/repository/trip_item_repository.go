package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/tripnest-api/internal/models"
)

type TripItemRepository interface {
	Create(ctx context.Context, tx *sql.Tx, item *models.TripItem) (int64, error)
	NextSortOrder(ctx context.Context, tx *sql.Tx, dayID int64) (int, error)
	GetWithOwner(ctx context.Context, itemID int64) (*models.TripItem, int64, error)
	ListByTripID(ctx context.Context, tx *sql.Tx, tripID int64) ([]*models.TripItem, error)
	ListIDsByDayID(ctx context.Context, tx *sql.Tx, dayID int64) ([]int64, error)
	FindBySortOrder(ctx context.Context, tx *sql.Tx, dayID int64, sortOrder int, excludeID int64) (int64, error)
	UpdateDetails(ctx context.Context, item *models.TripItem) error
	UpdateSortOrder(ctx context.Context, tx *sql.Tx, itemID int64, sortOrder int) error
	Remove(ctx context.Context, itemID int64) error
}

type tripItemRepository struct {
	db *sql.DB
}

func NewTripItemRepository(db *sql.DB) TripItemRepository {
	return &tripItemRepository{db: db}
}

func (r *tripItemRepository) Create(ctx context.Context, tx *sql.Tx, item *models.TripItem) (int64, error) {
	query := `
		INSERT INTO trip_items (trip_day_id, place_id, type, note, start_time, end_time, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING trip_item_id
	`

	var id int64
	err := pick(r.db, tx).QueryRowContext(ctx, query, item.TripDayID, item.PlaceID, item.Type, item.Note,
		item.StartTime, item.EndTime, item.SortOrder).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

// NextSortOrder is one past the highest sort_order of the day, 1 for an empty day.
func (r *tripItemRepository) NextSortOrder(ctx context.Context, tx *sql.Tx, dayID int64) (int, error) {
	query := `SELECT COALESCE(MAX(sort_order), 0) + 1 FROM trip_items WHERE trip_day_id = $1`

	var next int
	if err := pick(r.db, tx).QueryRowContext(ctx, query, dayID).Scan(&next); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return next, nil
}

// GetWithOwner returns the item and the user id owning its trip.
func (r *tripItemRepository) GetWithOwner(ctx context.Context, itemID int64) (*models.TripItem, int64, error) {
	query := `
		SELECT i.trip_item_id, i.trip_day_id, i.place_id, i.type, i.note, i.start_time, i.end_time, i.sort_order, t.user_id
		FROM trip_items i
		JOIN trip_days d ON d.trip_day_id = i.trip_day_id
		JOIN trips t ON t.trip_id = d.trip_id
		WHERE i.trip_item_id = $1
	`

	var it models.TripItem
	var ownerID int64
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(&it.ID, &it.TripDayID, &it.PlaceID, &it.Type,
		&it.Note, &it.StartTime, &it.EndTime, &it.SortOrder, &ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, 0, nil
		}
		slog.Info(err.Error())
		return nil, 0, err
	}
	return &it, ownerID, nil
}

// ListByTripID returns every item of the trip joined with its place, ordered
// by day and then by sort_order.
func (r *tripItemRepository) ListByTripID(ctx context.Context, tx *sql.Tx, tripID int64) ([]*models.TripItem, error) {
	query := `
		SELECT i.trip_item_id, i.trip_day_id, i.place_id, i.type, i.note, i.start_time, i.end_time, i.sort_order,
			p.name, p.category, p.rating, p.cover_image
		FROM trip_items i
		JOIN trip_days d ON d.trip_day_id = i.trip_day_id
		JOIN places p ON p.place_id = i.place_id
		WHERE d.trip_id = $1
		ORDER BY d.day_number, i.sort_order, i.trip_item_id
	`

	rows, err := pick(r.db, tx).QueryContext(ctx, query, tripID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	items := []*models.TripItem{}
	for rows.Next() {
		var it models.TripItem
		err := rows.Scan(&it.ID, &it.TripDayID, &it.PlaceID, &it.Type, &it.Note, &it.StartTime, &it.EndTime,
			&it.SortOrder, &it.PlaceName, &it.Category, &it.Rating, &it.CoverImage)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *tripItemRepository) ListIDsByDayID(ctx context.Context, tx *sql.Tx, dayID int64) ([]int64, error) {
	query := `SELECT trip_item_id FROM trip_items WHERE trip_day_id = $1 ORDER BY sort_order, trip_item_id`

	rows, err := pick(r.db, tx).QueryContext(ctx, query, dayID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindBySortOrder returns the id of another item of the day holding sortOrder, or 0.
func (r *tripItemRepository) FindBySortOrder(ctx context.Context, tx *sql.Tx, dayID int64, sortOrder int, excludeID int64) (int64, error) {
	query := `
		SELECT trip_item_id FROM trip_items
		WHERE trip_day_id = $1 AND sort_order = $2 AND trip_item_id <> $3
		ORDER BY trip_item_id
		LIMIT 1
	`

	var id int64
	err := pick(r.db, tx).QueryRowContext(ctx, query, dayID, sortOrder, excludeID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *tripItemRepository) UpdateDetails(ctx context.Context, item *models.TripItem) error {
	query := `
		UPDATE trip_items
		SET type = $1,
			note = $2,
			start_time = $3,
			end_time = $4
		WHERE trip_item_id = $5
	`
	if _, err := r.db.ExecContext(ctx, query, item.Type, item.Note, item.StartTime, item.EndTime, item.ID); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *tripItemRepository) UpdateSortOrder(ctx context.Context, tx *sql.Tx, itemID int64, sortOrder int) error {
	query := `UPDATE trip_items SET sort_order = $1 WHERE trip_item_id = $2`
	if _, err := pick(r.db, tx).ExecContext(ctx, query, sortOrder, itemID); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *tripItemRepository) Remove(ctx context.Context, itemID int64) error {
	query := `DELETE FROM trip_items WHERE trip_item_id = $1`
	if _, err := r.db.ExecContext(ctx, query, itemID); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
