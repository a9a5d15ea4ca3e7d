package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/repository"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

const (
	maxNameLength = 50
	maxBioLength  = 300
)

type SettingsService interface {
	GetSettingsInfo(ctx context.Context, userID int64) (*models.User, error)
	UpdateSettings(ctx context.Context, userID int64, su *transfer.SettingsUpdate) (*models.User, error)
	UploadAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error)
}

type settingsService struct {
	u       repository.UserRepository
	storage ObjectStorage
}

func NewSettingsService(u repository.UserRepository, storage ObjectStorage) SettingsService {
	return &settingsService{
		u:       u,
		storage: storage,
	}
}

func (s *settingsService) GetSettingsInfo(ctx context.Context, userID int64) (*models.User, error) {
	user, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	if !isExist {
		slog.Info("settings requested for missing user", "user_id", userID)
		return nil, ErrNotFound
	}

	return user, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID int64, su *transfer.SettingsUpdate) (*models.User, error) {
	name := strings.TrimSpace(su.Name)
	if name == "" {
		return nil, NewValidationError("name", "請輸入名稱")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, NewValidationError("name", fmt.Sprintf("名稱不能超過%d字", maxNameLength))
	}
	if utf8.RuneCountInString(su.Bio) > maxBioLength {
		return nil, NewValidationError("bio", fmt.Sprintf("自我介紹不能超過%d字", maxBioLength))
	}

	user, err := s.GetSettingsInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Bio = su.Bio
	user.TwoFactorEnabled = su.TwoFactorEnabled
	if err := s.u.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating settings: %w", err)
	}
	return user, nil
}

func (s *settingsService) UploadAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", NewValidationError("file", "請選擇檔案")
	}
	user, err := s.GetSettingsInfo(ctx, userID)
	if err != nil {
		return "", err
	}

	img, err := uploadFile(ctx, s.storage, "avatars", file)
	if err != nil {
		return "", imageError("file", err)
	}

	user.ProfilePicture = img.URL
	if err := s.u.Update(ctx, user); err != nil {
		return "", fmt.Errorf("error saving avatar: %w", err)
	}
	return img.URL, nil
}
