package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/tripnest-api/internal/models"
)

type PlaceImageRepository interface {
	Create(ctx context.Context, tx *sql.Tx, img *models.PlaceImage) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.PlaceImage, error)
	ListByPlaceID(ctx context.Context, placeID int64) ([]*models.PlaceImage, error)
	Remove(ctx context.Context, id int64) error
}

type placeImageRepository struct {
	db *sql.DB
}

func NewPlaceImageRepository(db *sql.DB) PlaceImageRepository {
	return &placeImageRepository{db: db}
}

func (r *placeImageRepository) Create(ctx context.Context, tx *sql.Tx, img *models.PlaceImage) (int64, error) {
	query := `
		INSERT INTO place_images (place_id, user_id, file_name, file_type, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := pick(r.db, tx).QueryRowContext(ctx, query, img.PlaceID, img.UserID, img.FileName, img.FileType, img.ImageURL).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *placeImageRepository) GetByID(ctx context.Context, id int64) (*models.PlaceImage, error) {
	query := `
		SELECT id, place_id, user_id, file_name, file_type, image_url, created_at
		FROM place_images
		WHERE id = $1
	`

	var img models.PlaceImage
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&img.ID,
		&img.PlaceID,
		&img.UserID,
		&img.FileName,
		&img.FileType,
		&img.ImageURL,
		&img.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &img, nil
}

func (r *placeImageRepository) ListByPlaceID(ctx context.Context, placeID int64) ([]*models.PlaceImage, error) {
	query := `
		SELECT id, place_id, user_id, file_name, file_type, image_url, created_at
		FROM place_images
		WHERE place_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, placeID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	images := []*models.PlaceImage{}
	for rows.Next() {
		var img models.PlaceImage
		if err := rows.Scan(&img.ID, &img.PlaceID, &img.UserID, &img.FileName, &img.FileType, &img.ImageURL, &img.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		images = append(images, &img)
	}
	return images, rows.Err()
}

func (r *placeImageRepository) Remove(ctx context.Context, id int64) error {
	query := `
		DELETE FROM place_images
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
