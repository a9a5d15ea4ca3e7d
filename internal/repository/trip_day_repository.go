package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/tripnest-api/internal/models"
)

type TripDayRepository interface {
	Create(ctx context.Context, tx *sql.Tx, day *models.TripDay) (int64, error)
	ListByTripID(ctx context.Context, tx *sql.Tx, tripID int64) ([]*models.TripDay, error)
	GetWithOwner(ctx context.Context, dayID int64) (*models.TripDay, int64, error)
	UpdateDate(ctx context.Context, tx *sql.Tx, dayID int64, date models.Date) error
	DeleteAfter(ctx context.Context, tx *sql.Tx, tripID int64, dayNumber int) (int64, error)
}

type tripDayRepository struct {
	db *sql.DB
}

func NewTripDayRepository(db *sql.DB) TripDayRepository {
	return &tripDayRepository{db: db}
}

func (r *tripDayRepository) Create(ctx context.Context, tx *sql.Tx, day *models.TripDay) (int64, error) {
	query := `
		INSERT INTO trip_days (trip_id, day_number, date)
		VALUES ($1, $2, $3)
		RETURNING trip_day_id
	`

	var id int64
	if err := pick(r.db, tx).QueryRowContext(ctx, query, day.TripID, day.DayNumber, day.Date).Scan(&id); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *tripDayRepository) ListByTripID(ctx context.Context, tx *sql.Tx, tripID int64) ([]*models.TripDay, error) {
	query := `
		SELECT trip_day_id, trip_id, day_number, date
		FROM trip_days
		WHERE trip_id = $1
		ORDER BY day_number
	`

	rows, err := pick(r.db, tx).QueryContext(ctx, query, tripID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	days := []*models.TripDay{}
	for rows.Next() {
		var d models.TripDay
		if err := rows.Scan(&d.ID, &d.TripID, &d.DayNumber, &d.Date); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		d.Items = []*models.TripItem{}
		days = append(days, &d)
	}
	return days, rows.Err()
}

// GetWithOwner returns the day and the user id owning its trip.
func (r *tripDayRepository) GetWithOwner(ctx context.Context, dayID int64) (*models.TripDay, int64, error) {
	query := `
		SELECT d.trip_day_id, d.trip_id, d.day_number, d.date, t.user_id
		FROM trip_days d
		JOIN trips t ON t.trip_id = d.trip_id
		WHERE d.trip_day_id = $1
	`

	var d models.TripDay
	var ownerID int64
	err := r.db.QueryRowContext(ctx, query, dayID).Scan(&d.ID, &d.TripID, &d.DayNumber, &d.Date, &ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, 0, nil
		}
		slog.Info(err.Error())
		return nil, 0, err
	}
	return &d, ownerID, nil
}

func (r *tripDayRepository) UpdateDate(ctx context.Context, tx *sql.Tx, dayID int64, date models.Date) error {
	query := `UPDATE trip_days SET date = $1 WHERE trip_day_id = $2`
	if _, err := pick(r.db, tx).ExecContext(ctx, query, date, dayID); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// DeleteAfter drops every day numbered above dayNumber; items go with them.
func (r *tripDayRepository) DeleteAfter(ctx context.Context, tx *sql.Tx, tripID int64, dayNumber int) (int64, error) {
	query := `DELETE FROM trip_days WHERE trip_id = $1 AND day_number > $2`
	res, err := pick(r.db, tx).ExecContext(ctx, query, tripID, dayNumber)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return res.RowsAffected()
}
