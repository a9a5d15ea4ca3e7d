package transfer

import "github.com/golang-jwt/jwt/v5"

const (
	TokenPurposeSession       = "session"
	TokenPurposePasswordReset = "password_reset"
)

type CustomClaims struct {
	UserID  string `json:"user_id"`
	Purpose string `json:"purpose"`
	// CodeID binds a reset token to the one-time code it was traded for.
	CodeID int64 `json:"code_id,omitempty"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Verify2FARequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyOTPResponse struct {
	ResetToken string `json:"reset_token"`
}

type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

// LoginResult is either a signed-in user or a pending second factor.
type LoginResult struct {
	UserID      int64
	Requires2FA bool
}

type GoogleUserInfo struct {
	ID            string
	Email         string
	VerifiedEmail bool
	Name          string
	Picture       string
}
