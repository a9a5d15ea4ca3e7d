package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/tripnest-api/internal/models"
)

type OTPRepository interface {
	Create(ctx context.Context, tx *sql.Tx, otp *models.OTPCode) (int64, error)
	GetActive(ctx context.Context, userID int64, purpose string) (*models.OTPCode, error)
	IncrementAttempts(ctx context.Context, id int64) (int, error)
	Consume(ctx context.Context, tx *sql.Tx, id int64) error
	InvalidateActive(ctx context.Context, tx *sql.Tx, userID int64, purpose string) error
	DeleteStale(ctx context.Context, expiredBefore time.Time) (int64, error)
}

type otpRepository struct {
	db *sql.DB
}

func NewOTPRepository(db *sql.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, tx *sql.Tx, otp *models.OTPCode) (int64, error) {
	query := `
		INSERT INTO otp_codes (user_id, purpose, code_hash, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := pick(r.db, tx).QueryRowContext(ctx, query, otp.UserID, otp.Purpose, otp.CodeHash, otp.ExpiresAt).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

// GetActive returns the newest unconsumed code for the purpose, expired or not.
func (r *otpRepository) GetActive(ctx context.Context, userID int64, purpose string) (*models.OTPCode, error) {
	query := `
		SELECT id, user_id, purpose, code_hash, attempts, expires_at, consumed_at, created_at
		FROM otp_codes
		WHERE user_id = $1 AND purpose = $2 AND consumed_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var otp models.OTPCode
	err := r.db.QueryRowContext(ctx, query, userID, purpose).Scan(&otp.ID, &otp.UserID, &otp.Purpose,
		&otp.CodeHash, &otp.Attempts, &otp.ExpiresAt, &otp.ConsumedAt, &otp.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) IncrementAttempts(ctx context.Context, id int64) (int, error) {
	query := `UPDATE otp_codes SET attempts = attempts + 1 WHERE id = $1 RETURNING attempts`

	var attempts int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&attempts); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return attempts, nil
}

func (r *otpRepository) Consume(ctx context.Context, tx *sql.Tx, id int64) error {
	query := `UPDATE otp_codes SET consumed_at = $1 WHERE id = $2`
	if _, err := pick(r.db, tx).ExecContext(ctx, query, time.Now(), id); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *otpRepository) InvalidateActive(ctx context.Context, tx *sql.Tx, userID int64, purpose string) error {
	query := `UPDATE otp_codes SET consumed_at = $1 WHERE user_id = $2 AND purpose = $3 AND consumed_at IS NULL`
	if _, err := pick(r.db, tx).ExecContext(ctx, query, time.Now(), userID, purpose); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// DeleteStale removes consumed codes and codes that expired before the cutoff.
func (r *otpRepository) DeleteStale(ctx context.Context, expiredBefore time.Time) (int64, error) {
	query := `DELETE FROM otp_codes WHERE consumed_at IS NOT NULL OR expires_at < $1`
	res, err := r.db.ExecContext(ctx, query, expiredBefore)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return res.RowsAffected()
}
