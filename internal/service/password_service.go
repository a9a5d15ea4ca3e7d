package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	config "github.com/maheshrc27/tripnest-api/configs"
	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/repository"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
	"github.com/maheshrc27/tripnest-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 15 * time.Minute

// PasswordService runs the forgot-password flow: mail a code, trade the
// code for a reset token, trade the token for a new password.
type PasswordService interface {
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

type passwordService struct {
	cfg      config.Config
	tx       repository.Transactor
	u        repository.UserRepository
	otp      *otpManager
	hashCost int
}

func NewPasswordService(
	cfg config.Config,
	tx repository.Transactor,
	u repository.UserRepository,
	otps repository.OTPRepository,
	tasks TaskEnqueuer) PasswordService {
	return &passwordService{
		cfg:      cfg,
		tx:       tx,
		u:        u,
		otp:      newOTPManager(cfg, tx, otps, tasks),
		hashCost: bcrypt.DefaultCost,
	}
}

// ForgotPassword succeeds whether or not the address has an account.
func (s *passwordService) ForgotPassword(ctx context.Context, email string) error {
	user, exists, err := s.u.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("error loading user: %w", err)
	}
	if !exists {
		slog.Info("password reset requested for unknown email")
		return nil
	}
	return s.otp.issue(ctx, user, models.OTPPurposePasswordReset)
}

func (s *passwordService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	user, exists, err := s.u.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("error loading user: %w", err)
	}
	if !exists {
		return "", ErrOTPInvalid
	}

	otp, err := s.otp.check(ctx, user.ID, models.OTPPurposePasswordReset, strings.TrimSpace(code))
	if err != nil {
		return "", err
	}

	token, err := utils.GenerateResetToken(s.cfg.SecretKey, strconv.FormatInt(user.ID, 10), otp.ID, resetTokenTTL)
	if err != nil {
		return "", fmt.Errorf("error issuing reset token: %w", err)
	}
	return token, nil
}

// ResetPassword requires the code the token was issued for to still be the
// live one; setting the password consumes it, so a reset token works once.
func (s *passwordService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	claims, err := utils.ValidateToken(s.cfg.SecretKey, resetToken, transfer.TokenPurposePasswordReset)
	if err != nil {
		return fmt.Errorf("%w: invalid reset token", ErrUnauthorized)
	}
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid reset token", ErrUnauthorized)
	}
	if err := validatePassword("new_password", newPassword); err != nil {
		return err
	}

	otp, err := s.otp.otps.GetActive(ctx, userID, models.OTPPurposePasswordReset)
	if err != nil {
		return fmt.Errorf("error loading code: %w", err)
	}
	if otp == nil || otp.ID != claims.CodeID || otp.Expired(s.otp.now()) {
		return ErrOTPExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.hashCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.u.UpdatePassword(ctx, tx, userID, string(hash)); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		if err := s.otp.otps.Consume(ctx, tx, otp.ID); err != nil {
			return fmt.Errorf("error consuming code: %w", err)
		}
		return nil
	})
}
