package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

type PlaceRepository interface {
	Search(ctx context.Context, q transfer.PlaceQuery) ([]*models.Place, error)
	GetWithLocation(ctx context.Context, id int64) (*models.Place, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type placeRepository struct {
	db *sql.DB
}

func NewPlaceRepository(db *sql.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func placeSelect() squirrel.SelectBuilder {
	return psql.Select(
		"p.place_id", "p.name", "p.category", "p.location_id", "COALESCE(l.name, '')",
		"p.rating", "p.cover_image", "p.description", "p.latitude", "p.longitude", "p.created_at",
	).From("places p").LeftJoin("locations l ON l.location_id = p.location_id")
}

func scanPlace(row rowScanner) (*models.Place, error) {
	var p models.Place
	var locationID sql.NullInt64
	err := row.Scan(&p.ID, &p.Name, &p.Category, &locationID, &p.LocationName,
		&p.Rating, &p.CoverImage, &p.Description, &p.Latitude, &p.Longitude, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if locationID.Valid {
		p.LocationID = &locationID.Int64
	}
	return &p, nil
}

// Search returns every match; the catalog is small enough that the list is not paged.
func (r *placeRepository) Search(ctx context.Context, q transfer.PlaceQuery) ([]*models.Place, error) {
	sb := placeSelect()
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		pattern := containsPattern(kw)
		sb = sb.Where(squirrel.Or{
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"p.description": pattern},
		})
	}
	if q.LocationID > 0 {
		sb = sb.Where(squirrel.Eq{"p.location_id": q.LocationID})
	}
	if q.Category != "" {
		sb = sb.Where(squirrel.Eq{"p.category": q.Category})
	}
	sb = sb.OrderBy("p.rating DESC", "p.name ASC")

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

	places := []*models.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

func (r *placeRepository) GetWithLocation(ctx context.Context, id int64) (*models.Place, error) {
	query, args, err := placeSelect().Where(squirrel.Eq{"p.place_id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanPlace(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return p, nil
}

func (r *placeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM places WHERE place_id = $1)", id).Scan(&exists)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return exists, nil
}
