package models

import "time"

const (
	OTPPurposePasswordReset = "password_reset"
	OTPPurposeLogin2FA      = "login_2fa"
)

type OTPCode struct {
	ID         int64      `db:"id"`
	UserID     int64      `db:"user_id"`
	Purpose    string     `db:"purpose"`
	CodeHash   string     `db:"code_hash"`
	Attempts   int        `db:"attempts"`
	ExpiresAt  time.Time  `db:"expires_at"`
	ConsumedAt *time.Time `db:"consumed_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

func (o *OTPCode) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

func (o *OTPCode) Consumed() bool {
	return o.ConsumedAt != nil
}
