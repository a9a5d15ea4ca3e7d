package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	config "github.com/maheshrc27/tripnest-api/configs"
	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/repository"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const minPasswordLength = 8

type AuthService interface {
	Register(ctx context.Context, req *transfer.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *transfer.LoginRequest) (*transfer.LoginResult, error)
	Verify2FA(ctx context.Context, req *transfer.Verify2FARequest) (int64, error)
	GoogleAuthURL(state string) string
	LoginCallback(ctx context.Context, code string) (int64, error)
}

type authService struct {
	cfg      config.Config
	u        repository.UserRepository
	otp      *otpManager
	hashCost int

	fetchGoogleUser func(ctx context.Context, code string) (*transfer.GoogleUserInfo, error)
}

func NewAuthService(
	cfg config.Config,
	tx repository.Transactor,
	u repository.UserRepository,
	otps repository.OTPRepository,
	tasks TaskEnqueuer) AuthService {
	s := &authService{
		cfg:      cfg,
		u:        u,
		otp:      newOTPManager(cfg, tx, otps, tasks),
		hashCost: bcrypt.DefaultCost,
	}
	s.fetchGoogleUser = s.googleUser
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(field, password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return NewValidationError(field, fmt.Sprintf("密碼至少需要%d個字元", minPasswordLength))
	}
	return nil
}

func (s *authService) Register(ctx context.Context, req *transfer.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, NewValidationError("email", "請輸入有效的電子郵件")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("name", "請輸入名稱")
	}
	if err := validatePassword("password", req.Password); err != nil {
		return nil, err
	}

	_, exists, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	hashed := string(hash)

	user := &models.User{Email: email, Name: name, PasswordHash: &hashed}
	id, err := s.u.Create(ctx, nil, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	user.ID = id
	return user, nil
}

// Login checks the password. When the account has two-factor sign-in on, no
// session is granted yet: a login code is mailed and Requires2FA is set.
func (s *authService) Login(ctx context.Context, req *transfer.LoginRequest) (*transfer.LoginResult, error) {
	user, exists, err := s.u.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	if !exists || !user.HasPassword() {
		return nil, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrUnauthorized
	}

	if user.TwoFactorEnabled {
		if err := s.otp.issue(ctx, user, models.OTPPurposeLogin2FA); err != nil {
			return nil, err
		}
		return &transfer.LoginResult{UserID: user.ID, Requires2FA: true}, nil
	}
	return &transfer.LoginResult{UserID: user.ID}, nil
}

func (s *authService) Verify2FA(ctx context.Context, req *transfer.Verify2FARequest) (int64, error) {
	user, exists, err := s.u.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return 0, fmt.Errorf("error loading user: %w", err)
	}
	if !exists {
		return 0, ErrOTPInvalid
	}

	otp, err := s.otp.check(ctx, user.ID, models.OTPPurposeLogin2FA, strings.TrimSpace(req.Code))
	if err != nil {
		return 0, err
	}
	if err := s.otp.otps.Consume(ctx, nil, otp.ID); err != nil {
		return 0, fmt.Errorf("error consuming code: %w", err)
	}
	return user.ID, nil
}

func (s *authService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}
}

func (s *authService) GoogleAuthURL(state string) string {
	return s.oauthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// LoginCallback signs in with Google. An existing password account with the
// same email is linked rather than duplicated. Only a verified Google email
// may link or create an account.
func (s *authService) LoginCallback(ctx context.Context, code string) (int64, error) {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return 0, NewValidationError("code", err.Error())
	}

	info, err := s.fetchGoogleUser(ctx, code)
	if err != nil {
		return 0, err
	}

	user, exists, err := s.u.GetByGoogleID(ctx, info.ID)
	if err != nil {
		return 0, err
	}
	if exists {
		return user.ID, nil
	}
	if !info.VerifiedEmail {
		slog.Info("google email not verified", "google_id", info.ID)
		return 0, fmt.Errorf("%w: google email not verified", ErrUnauthorized)
	}

	user, exists, err = s.u.GetByEmail(ctx, normalizeEmail(info.Email))
	if err != nil {
		return 0, err
	}
	if exists {
		user.GoogleID = info.ID
		if user.ProfilePicture == "" {
			user.ProfilePicture = info.Picture
		}
		if err := s.u.Update(ctx, user); err != nil {
			return 0, fmt.Errorf("error linking google account: %w", err)
		}
		return user.ID, nil
	}

	userID, err := s.u.Create(ctx, nil, &models.User{
		GoogleID:       info.ID,
		Email:          normalizeEmail(info.Email),
		Name:           info.Name,
		ProfilePicture: info.Picture,
	})
	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return userID, nil
}

func (s *authService) googleUser(ctx context.Context, code string) (*transfer.GoogleUserInfo, error) {
	oauth2Config := s.oauthConfig()
	if oauth2Config.ClientID == "" || oauth2Config.ClientSecret == "" || oauth2Config.RedirectURL == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return nil, err
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("%w: google code exchange failed", ErrUnauthorized)
	}

	svc, err := googleoauth2.NewService(ctx, option.WithHTTPClient(oauth2Config.Client(ctx, token)))
	if err != nil {
		return nil, err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error fetching user info: %w", err)
	}

	return &transfer.GoogleUserInfo{
		ID:            info.Id,
		Email:         info.Email,
		VerifiedEmail: info.VerifiedEmail != nil && *info.VerifiedEmail,
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}
