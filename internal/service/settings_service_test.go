package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_UploadAvatar(t *testing.T) {
	users := newMockUserRepo(&models.User{ID: 3, Email: "amy@example.com"})
	storage := &mockStorage{}
	svc := NewSettingsService(users, storage)
	ctx := context.Background()

	_, err := svc.UploadAvatar(ctx, 3, &multipart.FileHeader{Filename: "big.jpg", Size: 11 << 20})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "file", ve.Field)
	assert.Equal(t, errImageTooLarge.Error(), ve.Message)
	assert.Empty(t, storage.uploaded)
	assert.Empty(t, users.updated)

	_, err = svc.UploadAvatar(ctx, 3, nil)
	assert.ErrorIs(t, err, ErrValidation)

	url, err := svc.UploadAvatar(ctx, 3, fileHeaders(t, testFile{"me.png", pngBytes})[0])
	require.NoError(t, err)
	require.Len(t, users.updated, 1)
	assert.Equal(t, url, users.updated[0].ProfilePicture)

	_, err = svc.UploadAvatar(ctx, 404, fileHeaders(t, testFile{"me.png", pngBytes})[0])
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsService_UploadAvatar_StorageError(t *testing.T) {
	boom := errors.New("r2 down")
	svc := NewSettingsService(newMockUserRepo(&models.User{ID: 3, Email: "amy@example.com"}), &mockStorage{err: boom})

	_, err := svc.UploadAvatar(context.Background(), 3, fileHeaders(t, testFile{"me.png", pngBytes})[0])
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrValidation)
}
