package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/tripnest-api/internal/models"
)

type FollowRepository interface {
	Add(ctx context.Context, followerID, followeeID int64) (bool, error)
	Remove(ctx context.Context, followerID, followeeID int64) (bool, error)
	Followers(ctx context.Context, userID int64) ([]*models.UserBrief, error)
	Following(ctx context.Context, userID int64) ([]*models.UserBrief, error)
}

type followRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Add(ctx context.Context, followerID, followeeID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, followerID, followeeID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *followRepository) Remove(ctx context.Context, followerID, followeeID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`, followerID, followeeID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *followRepository) Followers(ctx context.Context, userID int64) ([]*models.UserBrief, error) {
	query := `
		SELECT u.id, u.name, u.profile_picture
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at DESC
	`
	return r.briefs(ctx, query, userID)
}

func (r *followRepository) Following(ctx context.Context, userID int64) ([]*models.UserBrief, error) {
	query := `
		SELECT u.id, u.name, u.profile_picture
		FROM follows f
		JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`
	return r.briefs(ctx, query, userID)
}

func (r *followRepository) briefs(ctx context.Context, query string, userID int64) ([]*models.UserBrief, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	users := []*models.UserBrief{}
	for rows.Next() {
		var u models.UserBrief
		if err := rows.Scan(&u.ID, &u.Name, &u.ProfilePicture); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
