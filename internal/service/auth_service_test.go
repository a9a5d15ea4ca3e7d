package service

import (
	"context"
	"strings"
	"testing"
	"time"

	config "github.com/maheshrc27/tripnest-api/configs"
	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() config.Config {
	return config.Config{
		SecretKey:      strings.Repeat("k", 32),
		OTPTTL:         10 * time.Minute,
		OTPMaxAttempts: 5,
	}
}

func hashed(t *testing.T, password string) *string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(h)
	return &s
}

func newTestAuthService(users *mockUserRepo, otps *memOTPs, tasks *mockTasks) *authService {
	s := NewAuthService(testConfig(), &mockTx{}, users, otps, tasks).(*authService)
	s.hashCost = bcrypt.MinCost
	s.otp.hashCost = bcrypt.MinCost
	return s
}

func TestAuthService_Register(t *testing.T) {
	users := newMockUserRepo(&models.User{ID: 1, Email: "taken@example.com"})
	svc := newTestAuthService(users, &memOTPs{}, &mockTasks{})
	ctx := context.Background()

	user, err := svc.Register(ctx, &transfer.RegisterRequest{Email: " New@Example.com ", Name: "Amy", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	require.True(t, user.HasPassword())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("longenough")))

	_, err = svc.Register(ctx, &transfer.RegisterRequest{Email: "taken@example.com", Name: "Bo", Password: "longenough"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Register(ctx, &transfer.RegisterRequest{Email: "not-an-email", Name: "Bo", Password: "longenough"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, &transfer.RegisterRequest{Email: "b@example.com", Name: "Bo", Password: "short"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)
}

func TestAuthService_Login(t *testing.T) {
	users := newMockUserRepo(
		&models.User{ID: 1, Email: "plain@example.com", PasswordHash: hashed(t, "secret-pass")},
		&models.User{ID: 2, Email: "google@example.com", GoogleID: "g-2"},
	)
	svc := newTestAuthService(users, &memOTPs{}, &mockTasks{})
	ctx := context.Background()

	res, err := svc.Login(ctx, &transfer.LoginRequest{Email: "PLAIN@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.UserID)
	assert.False(t, res.Requires2FA)

	_, err = svc.Login(ctx, &transfer.LoginRequest{Email: "plain@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, &transfer.LoginRequest{Email: "google@example.com", Password: "anything"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, &transfer.LoginRequest{Email: "nobody@example.com", Password: "anything"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_LoginWithTwoFactor(t *testing.T) {
	users := newMockUserRepo(&models.User{ID: 3, Email: "safe@example.com", PasswordHash: hashed(t, "secret-pass"), TwoFactorEnabled: true})
	otps := &memOTPs{}
	tasks := &mockTasks{}
	svc := newTestAuthService(users, otps, tasks)
	ctx := context.Background()

	res, err := svc.Login(ctx, &transfer.LoginRequest{Email: "safe@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.True(t, res.Requires2FA)
	require.Len(t, tasks.otps, 1)
	assert.Equal(t, models.OTPPurposeLogin2FA, tasks.otps[0].Purpose)
	assert.Len(t, tasks.otps[0].Code, otpDigits)

	_, err = svc.Verify2FA(ctx, &transfer.Verify2FARequest{Email: "safe@example.com", Code: "wrong"})
	assert.ErrorIs(t, err, ErrOTPInvalid)

	userID, err := svc.Verify2FA(ctx, &transfer.Verify2FARequest{Email: "safe@example.com", Code: tasks.otps[0].Code})
	require.NoError(t, err)
	assert.Equal(t, int64(3), userID)

	// consumed codes cannot be replayed
	_, err = svc.Verify2FA(ctx, &transfer.Verify2FARequest{Email: "safe@example.com", Code: tasks.otps[0].Code})
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestAuthService_LoginCallback(t *testing.T) {
	users := newMockUserRepo(
		&models.User{ID: 1, Email: "linked@example.com", GoogleID: "g-1"},
		&models.User{ID: 2, Email: "local@example.com", PasswordHash: hashed(t, "secret-pass")},
	)
	svc := newTestAuthService(users, &memOTPs{}, &mockTasks{})
	ctx := context.Background()

	google := map[string]*transfer.GoogleUserInfo{
		"linked": {ID: "g-1", Email: "linked@example.com"},
		"local":  {ID: "g-2", Email: "Local@example.com", VerifiedEmail: true, Picture: "https://img/p.png"},
		"new":    {ID: "g-3", Email: "fresh@example.com", VerifiedEmail: true, Name: "Fresh"},
	}
	svc.fetchGoogleUser = func(ctx context.Context, code string) (*transfer.GoogleUserInfo, error) {
		return google[code], nil
	}

	id, err := svc.LoginCallback(ctx, "linked")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = svc.LoginCallback(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
	require.Len(t, users.updated, 1)
	assert.Equal(t, "g-2", users.updated[0].GoogleID)
	assert.Equal(t, "https://img/p.png", users.updated[0].ProfilePicture)

	id, err = svc.LoginCallback(ctx, "new")
	require.NoError(t, err)
	require.Len(t, users.created, 1)
	assert.Equal(t, users.created[0].ID, id)
	assert.Equal(t, "g-3", users.created[0].GoogleID)

	_, err = svc.LoginCallback(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_LoginCallback_UnverifiedEmail(t *testing.T) {
	users := newMockUserRepo(&models.User{ID: 2, Email: "local@example.com", PasswordHash: hashed(t, "secret-pass")})
	svc := newTestAuthService(users, &memOTPs{}, &mockTasks{})
	ctx := context.Background()

	google := map[string]*transfer.GoogleUserInfo{
		"takeover": {ID: "g-9", Email: "local@example.com"},
		"stranger": {ID: "g-10", Email: "someone@example.com"},
	}
	svc.fetchGoogleUser = func(ctx context.Context, code string) (*transfer.GoogleUserInfo, error) {
		return google[code], nil
	}

	_, err := svc.LoginCallback(ctx, "takeover")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, users.updated)

	_, err = svc.LoginCallback(ctx, "stranger")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, users.created)
}

func TestAuthService_GoogleAuthURL(t *testing.T) {
	cfg := testConfig()
	cfg.GoogleClientID = "client-id"
	cfg.GoogleRedirectURI = "http://localhost:5000/cb"
	svc := NewAuthService(cfg, &mockTx{}, newMockUserRepo(), &memOTPs{}, &mockTasks{})

	u := svc.GoogleAuthURL("state-123")
	assert.Contains(t, u, "client_id=client-id")
	assert.Contains(t, u, "state=state-123")
}
