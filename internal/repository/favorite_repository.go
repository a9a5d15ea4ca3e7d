package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/tripnest-api/internal/models"
)

type FavoriteRepository interface {
	ListsByUserID(ctx context.Context, userID int64) ([]*models.FavoriteList, error)
	GetList(ctx context.Context, listID int64) (*models.FavoriteList, error)
	CreateList(ctx context.Context, list *models.FavoriteList) (int64, error)
	RemoveList(ctx context.Context, listID int64) error
	ListPlaces(ctx context.Context, listID int64) ([]*models.Place, error)
	AddPlace(ctx context.Context, listID, placeID int64) (bool, error)
	RemovePlace(ctx context.Context, listID, placeID int64) (bool, error)
	AddTrip(ctx context.Context, userID, tripID int64) (bool, error)
	RemoveTrip(ctx context.Context, userID, tripID int64) (bool, error)
	ListTrips(ctx context.Context, userID int64) ([]*models.Trip, error)
	PlaceIDs(ctx context.Context, userID int64) ([]int64, error)
	TripIDs(ctx context.Context, userID int64) ([]int64, error)
}

type favoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) ListsByUserID(ctx context.Context, userID int64) ([]*models.FavoriteList, error) {
	query := `
		SELECT l.list_id, l.user_id, l.name,
			(SELECT COUNT(*) FROM favorite_list_places fp WHERE fp.list_id = l.list_id),
			l.created_at
		FROM favorite_lists l
		WHERE l.user_id = $1
		ORDER BY l.created_at, l.list_id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	lists := []*models.FavoriteList{}
	for rows.Next() {
		var l models.FavoriteList
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.PlaceCount, &l.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		lists = append(lists, &l)
	}
	return lists, rows.Err()
}

func (r *favoriteRepository) GetList(ctx context.Context, listID int64) (*models.FavoriteList, error) {
	query := `
		SELECT l.list_id, l.user_id, l.name,
			(SELECT COUNT(*) FROM favorite_list_places fp WHERE fp.list_id = l.list_id),
			l.created_at
		FROM favorite_lists l
		WHERE l.list_id = $1
	`

	var l models.FavoriteList
	err := r.db.QueryRowContext(ctx, query, listID).Scan(&l.ID, &l.UserID, &l.Name, &l.PlaceCount, &l.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &l, nil
}

func (r *favoriteRepository) CreateList(ctx context.Context, list *models.FavoriteList) (int64, error) {
	query := `INSERT INTO favorite_lists (user_id, name) VALUES ($1, $2) RETURNING list_id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, list.UserID, list.Name).Scan(&id); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *favoriteRepository) RemoveList(ctx context.Context, listID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorite_lists WHERE list_id = $1`, listID); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *favoriteRepository) ListPlaces(ctx context.Context, listID int64) ([]*models.Place, error) {
	query, args, err := placeSelect().
		Join("favorite_list_places fp ON fp.place_id = p.place_id").
		Where("fp.list_id = ?", listID).
		OrderBy("fp.created_at DESC").
		ToSql()
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

// AddPlace reports false when the place was already in the list.
func (r *favoriteRepository) AddPlace(ctx context.Context, listID, placeID int64) (bool, error) {
	query := `INSERT INTO favorite_list_places (list_id, place_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	return r.exec(ctx, query, listID, placeID)
}

func (r *favoriteRepository) RemovePlace(ctx context.Context, listID, placeID int64) (bool, error) {
	query := `DELETE FROM favorite_list_places WHERE list_id = $1 AND place_id = $2`
	return r.exec(ctx, query, listID, placeID)
}

func (r *favoriteRepository) AddTrip(ctx context.Context, userID, tripID int64) (bool, error) {
	query := `INSERT INTO trip_favorites (user_id, trip_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	return r.exec(ctx, query, userID, tripID)
}

func (r *favoriteRepository) RemoveTrip(ctx context.Context, userID, tripID int64) (bool, error) {
	query := `DELETE FROM trip_favorites WHERE user_id = $1 AND trip_id = $2`
	return r.exec(ctx, query, userID, tripID)
}

func (r *favoriteRepository) exec(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *favoriteRepository) ListTrips(ctx context.Context, userID int64) ([]*models.Trip, error) {
	query, args, err := tripSelect().
		Join("trip_favorites tf ON tf.trip_id = t.trip_id").
		Where("tf.user_id = ?", userID).
		OrderBy("tf.created_at DESC").
		ToSql()
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

func (r *favoriteRepository) PlaceIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT fp.place_id
		FROM favorite_list_places fp
		JOIN favorite_lists l ON l.list_id = fp.list_id
		WHERE l.user_id = $1
		ORDER BY fp.place_id
	`
	return r.ids(ctx, query, userID)
}

func (r *favoriteRepository) TripIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT trip_id FROM trip_favorites WHERE user_id = $1 ORDER BY trip_id`
	return r.ids(ctx, query, userID)
}

func (r *favoriteRepository) ids(ctx context.Context, query string, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
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
