package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maheshrc27/tripnest-api/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceService_UploadGallery_FailureMessages(t *testing.T) {
	images := &memImages{}
	tasks := &mockTasks{}
	storage := &mockStorage{}
	svc := NewPlaceService(&mockPlaceRepo{exists: true}, nil, images, storage, tasks)
	ctx := context.Background()

	res, err := svc.UploadGallery(ctx, 3, 9, fileHeaders(t,
		testFile{"a.png", pngBytes},
		testFile{"notes.txt", []byte("text")},
	))
	require.NoError(t, err)
	assert.Len(t, res.Uploaded, 1)
	assert.Equal(t, []transfer.UploadFailure{{FileName: "notes.txt", Error: errUnsupportedImage.Error()}}, res.Failed)

	images.createErr = errors.New(`pq: insert or update on table "place_images" violates foreign key constraint`)
	res, err = svc.UploadGallery(ctx, 3, 9, fileHeaders(t, testFile{"b.png", pngBytes}))
	require.NoError(t, err)
	assert.Empty(t, res.Uploaded)
	assert.Equal(t, []transfer.UploadFailure{{FileName: "b.png", Error: uploadFailedMessage}}, res.Failed)
	assert.Len(t, tasks.deleted, 1, "orphaned object is queued for deletion")
}
