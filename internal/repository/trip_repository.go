package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/maheshrc27/tripnest-api/internal/models"
)

type TripRepository interface {
	Create(ctx context.Context, tx *sql.Tx, trip *models.Trip) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Trip, error)
	ListByUserID(ctx context.Context, userID int64, publicOnly bool) ([]*models.Trip, error)
	ListPublic(ctx context.Context, limit, offset int) ([]*models.Trip, error)
	Update(ctx context.Context, tx *sql.Tx, trip *models.Trip) error
	UpdateCover(ctx context.Context, id int64, url string) error
	Remove(ctx context.Context, id int64) error
}

type tripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) TripRepository {
	return &tripRepository{db: db}
}

func tripSelect() squirrel.SelectBuilder {
	return psql.Select(
		"t.trip_id", "t.user_id", "t.trip_name", "t.description", "t.start_date", "t.end_date",
		"t.cover_image_url", "t.summary_text", "t.is_public", "t.location_id", "t.copied_from", "u.name",
		"(SELECT COUNT(*) FROM trip_days d WHERE d.trip_id = t.trip_id)",
		"(SELECT COUNT(*) FROM trip_items i JOIN trip_days d ON d.trip_day_id = i.trip_day_id WHERE d.trip_id = t.trip_id)",
		"t.created_at", "t.updated_at",
	).From("trips t").Join("users u ON u.id = t.user_id")
}

func scanTrip(row rowScanner) (*models.Trip, error) {
	var t models.Trip
	var locationID, copiedFrom sql.NullInt64
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.StartDate, &t.EndDate,
		&t.CoverImageURL, &t.SummaryText, &t.IsPublic, &locationID, &copiedFrom, &t.OwnerName,
		&t.TotalDays, &t.TotalItems, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if locationID.Valid {
		t.LocationID = &locationID.Int64
	}
	if copiedFrom.Valid {
		t.CopiedFrom = &copiedFrom.Int64
	}
	return &t, nil
}

func (r *tripRepository) list(ctx context.Context, sb squirrel.SelectBuilder) ([]*models.Trip, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	trips := []*models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (r *tripRepository) Create(ctx context.Context, tx *sql.Tx, trip *models.Trip) (int64, error) {
	query := `
		INSERT INTO trips (user_id, trip_name, description, start_date, end_date, cover_image_url,
			summary_text, is_public, location_id, copied_from)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING trip_id
	`

	var id int64
	err := pick(r.db, tx).QueryRowContext(ctx, query, trip.UserID, trip.Name, trip.Description,
		trip.StartDate, trip.EndDate, trip.CoverImageURL, trip.SummaryText, trip.IsPublic,
		trip.LocationID, trip.CopiedFrom).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *tripRepository) GetByID(ctx context.Context, id int64) (*models.Trip, error) {
	query, args, err := tripSelect().Where(squirrel.Eq{"t.trip_id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	t, err := scanTrip(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return t, nil
}

func (r *tripRepository) ListByUserID(ctx context.Context, userID int64, publicOnly bool) ([]*models.Trip, error) {
	sb := tripSelect().Where(squirrel.Eq{"t.user_id": userID})
	if publicOnly {
		sb = sb.Where(squirrel.Eq{"t.is_public": true})
	}
	return r.list(ctx, sb.OrderBy("t.created_at DESC", "t.trip_id DESC"))
}

func (r *tripRepository) ListPublic(ctx context.Context, limit, offset int) ([]*models.Trip, error) {
	sb := tripSelect().
		Where(squirrel.Eq{"t.is_public": true}).
		OrderBy("t.created_at DESC", "t.trip_id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	return r.list(ctx, sb)
}

func (r *tripRepository) Update(ctx context.Context, tx *sql.Tx, trip *models.Trip) error {
	query, args, err := psql.Update("trips").SetMap(map[string]any{
		"trip_name":       trip.Name,
		"description":     trip.Description,
		"start_date":      trip.StartDate,
		"end_date":        trip.EndDate,
		"cover_image_url": trip.CoverImageURL,
		"summary_text":    trip.SummaryText,
		"is_public":       trip.IsPublic,
		"location_id":     trip.LocationID,
		"updated_at":      time.Now(),
	}).Where(squirrel.Eq{"trip_id": trip.ID}).ToSql()
	if err != nil {
		return err
	}

	if _, err := pick(r.db, tx).ExecContext(ctx, query, args...); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *tripRepository) UpdateCover(ctx context.Context, id int64, url string) error {
	query := `UPDATE trips SET cover_image_url = $1, updated_at = $2 WHERE trip_id = $3`
	if _, err := r.db.ExecContext(ctx, query, url, time.Now(), id); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *tripRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM trips WHERE trip_id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
