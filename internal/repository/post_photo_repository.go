package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq"
	"github.com/maheshrc27/tripnest-api/internal/models"
)

type PostPhotoRepository interface {
	Create(ctx context.Context, tx *sql.Tx, photo *models.PostPhoto) (int64, error)
	NextDisplayOrder(ctx context.Context, postID int64) (int, error)
	ListByPostID(ctx context.Context, postID int64) ([]*models.PostPhoto, error)
	ListByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]*models.PostPhoto, error)
}

type postPhotoRepository struct {
	db *sql.DB
}

func NewPostPhotoRepository(db *sql.DB) PostPhotoRepository {
	return &postPhotoRepository{db: db}
}

func (r *postPhotoRepository) Create(ctx context.Context, tx *sql.Tx, photo *models.PostPhoto) (int64, error) {
	query := `
		INSERT INTO post_photos (post_id, file_name, image_url, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := pick(r.db, tx).QueryRowContext(ctx, query, photo.PostID, photo.FileName, photo.ImageURL, photo.DisplayOrder).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postPhotoRepository) NextDisplayOrder(ctx context.Context, postID int64) (int, error) {
	query := `SELECT COALESCE(MAX(display_order), -1) + 1 FROM post_photos WHERE post_id = $1`

	var next int
	if err := r.db.QueryRowContext(ctx, query, postID).Scan(&next); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return next, nil
}

func (r *postPhotoRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.PostPhoto, error) {
	byPost, err := r.ListByPostIDs(ctx, []int64{postID})
	if err != nil {
		return nil, err
	}
	if photos, ok := byPost[postID]; ok {
		return photos, nil
	}
	return []*models.PostPhoto{}, nil
}

func (r *postPhotoRepository) ListByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]*models.PostPhoto, error) {
	photos := make(map[int64][]*models.PostPhoto, len(postIDs))
	if len(postIDs) == 0 {
		return photos, nil
	}

	query := `
		SELECT id, post_id, file_name, image_url, display_order, created_at
		FROM post_photos
		WHERE post_id = ANY($1)
		ORDER BY post_id, display_order
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pp models.PostPhoto
		if err := rows.Scan(&pp.ID, &pp.PostID, &pp.FileName, &pp.ImageURL, &pp.DisplayOrder, &pp.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		photos[pp.PostID] = append(photos[pp.PostID], &pp)
	}

	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return photos, nil
}
