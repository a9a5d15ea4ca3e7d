package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	config "github.com/maheshrc27/tripnest-api/configs"
	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/repository"
	"github.com/maheshrc27/tripnest-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const otpDigits = 6

// otpManager issues and checks one-time codes. Only the bcrypt hash of a
// code is stored; the plain code leaves the process in the queued mail.
type otpManager struct {
	tx          repository.Transactor
	otps        repository.OTPRepository
	tasks       TaskEnqueuer
	ttl         time.Duration
	maxAttempts int
	hashCost    int
	now         func() time.Time
}

func newOTPManager(cfg config.Config, tx repository.Transactor, otps repository.OTPRepository, tasks TaskEnqueuer) *otpManager {
	return &otpManager{
		tx:          tx,
		otps:        otps,
		tasks:       tasks,
		ttl:         cfg.OTPTTL,
		maxAttempts: cfg.OTPMaxAttempts,
		hashCost:    bcrypt.DefaultCost,
		now:         time.Now,
	}
}

// issue replaces any live code of the purpose with a fresh one and queues the mail.
func (m *otpManager) issue(ctx context.Context, user *models.User, purpose string) error {
	code, err := utils.GenerateOTP(otpDigits)
	if err != nil {
		return fmt.Errorf("error generating code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), m.hashCost)
	if err != nil {
		return fmt.Errorf("error hashing code: %w", err)
	}

	err = m.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := m.otps.InvalidateActive(ctx, tx, user.ID, purpose); err != nil {
			return fmt.Errorf("error invalidating codes: %w", err)
		}
		_, err := m.otps.Create(ctx, tx, &models.OTPCode{
			UserID:    user.ID,
			Purpose:   purpose,
			CodeHash:  string(hash),
			ExpiresAt: m.now().Add(m.ttl),
		})
		if err != nil {
			return fmt.Errorf("error storing code: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := m.tasks.SendOTP(ctx, user.Email, code, purpose); err != nil {
		return fmt.Errorf("error queueing code mail: %w", err)
	}
	return nil
}

// check validates code against the live code of the purpose. A wrong code
// counts as an attempt; once attempts reach the limit the code is dead.
func (m *otpManager) check(ctx context.Context, userID int64, purpose, code string) (*models.OTPCode, error) {
	otp, err := m.otps.GetActive(ctx, userID, purpose)
	if err != nil {
		return nil, fmt.Errorf("error loading code: %w", err)
	}
	if otp == nil {
		return nil, ErrOTPInvalid
	}
	if otp.Attempts >= m.maxAttempts {
		return nil, ErrTooManyAttempts
	}
	if otp.Expired(m.now()) {
		return nil, ErrOTPExpired
	}

	if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(code)) != nil {
		attempts, err := m.otps.IncrementAttempts(ctx, otp.ID)
		if err != nil {
			return nil, fmt.Errorf("error counting attempt: %w", err)
		}
		if attempts >= m.maxAttempts {
			return nil, ErrTooManyAttempts
		}
		return nil, ErrOTPInvalid
	}
	return otp, nil
}
