package repository

import (
	"context"
	"database/sql"
	"log/slog"
)

// ReactionRepository stores likes and bookmarks. Add and Remove report
// whether a row actually changed.
type ReactionRepository interface {
	AddLike(ctx context.Context, postID, userID int64) (bool, error)
	RemoveLike(ctx context.Context, postID, userID int64) (bool, error)
	CountLikes(ctx context.Context, postID int64) (int, error)
	AddBookmark(ctx context.Context, postID, userID int64) (bool, error)
	RemoveBookmark(ctx context.Context, postID, userID int64) (bool, error)
}

type reactionRepository struct {
	db *sql.DB
}

func NewReactionRepository(db *sql.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) exec(ctx context.Context, query string, postID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

func (r *reactionRepository) AddLike(ctx context.Context, postID, userID int64) (bool, error) {
	return r.exec(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, postID, userID)
}

func (r *reactionRepository) RemoveLike(ctx context.Context, postID, userID int64) (bool, error) {
	return r.exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
}

func (r *reactionRepository) CountLikes(ctx context.Context, postID int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&n); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return n, nil
}

func (r *reactionRepository) AddBookmark(ctx context.Context, postID, userID int64) (bool, error) {
	return r.exec(ctx, `INSERT INTO post_bookmarks (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, postID, userID)
}

func (r *reactionRepository) RemoveBookmark(ctx context.Context, postID, userID int64) (bool, error) {
	return r.exec(ctx, `DELETE FROM post_bookmarks WHERE post_id = $1 AND user_id = $2`, postID, userID)
}
