package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/tripnest-api/internal/models"
)

type LocationRepository interface {
	List(ctx context.Context) ([]*models.Location, error)
}

type locationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) List(ctx context.Context) ([]*models.Location, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT location_id, name, region FROM locations ORDER BY region, name`)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	locations := []*models.Location{}
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Region); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		locations = append(locations, &l)
	}
	return locations, rows.Err()
}
