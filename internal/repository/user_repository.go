package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/tripnest-api/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, bool, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, bool, error)
	Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, tx *sql.Tx, id int64, passwordHash string) error
	GetProfile(ctx context.Context, id, viewerID int64) (*models.Profile, error)
	Remove(ctx context.Context, id int64) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, google_id, email, name, password_hash, profile_picture, bio, two_factor_enabled, created_at, updated_at`

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var hash sql.NullString
	err := row.Scan(&user.ID, &user.GoogleID, &user.Email, &user.Name, &hash,
		&user.ProfilePicture, &user.Bio, &user.TwoFactorEnabled, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if hash.Valid {
		user.PasswordHash = &hash.String
	}
	return &user, nil
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*models.User, bool, error) {
	query := "SELECT " + userColumns + " FROM users WHERE " + where + " = $1"
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return user, true, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	return r.getOne(ctx, "id", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	return r.getOne(ctx, "email", email)
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, bool, error) {
	return r.getOne(ctx, "google_id", googleID)
}

func (r *userRepository) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (google_id, email, name, password_hash, profile_picture)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := pick(r.db, tx).QueryRowContext(ctx, query,
		user.GoogleID, user.Email, user.Name, user.PasswordHash, user.ProfilePicture).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET google_id = $1,
			name = $2,
			profile_picture = $3,
			bio = $4,
			two_factor_enabled = $5,
			updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query, user.GoogleID, user.Name, user.ProfilePicture,
		user.Bio, user.TwoFactorEnabled, time.Now(), user.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, tx *sql.Tx, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`
	_, err := pick(r.db, tx).ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *userRepository) GetProfile(ctx context.Context, id, viewerID int64) (*models.Profile, error) {
	query := `
		SELECT u.id, u.name, u.profile_picture, u.bio,
			(SELECT COUNT(*) FROM follows f WHERE f.followee_id = u.id),
			(SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id),
			(SELECT COUNT(*) FROM posts p WHERE p.user_id = u.id),
			EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = $2 AND f.followee_id = u.id)
		FROM users u
		WHERE u.id = $1
	`

	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, id, viewerID).Scan(&p.ID, &p.Name, &p.ProfilePicture, &p.Bio,
		&p.FollowerCount, &p.FollowingCount, &p.PostCount, &p.IsFollowing)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
