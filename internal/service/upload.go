package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const maxImageSize = 10 << 20

var allowedImageTypes = map[string]struct{}{
	"jpg": {}, "png": {}, "webp": {},
}

var (
	errUnsupportedImage = errors.New("只接受 JPEG、PNG 或 WebP 圖片")
	errImageTooLarge    = errors.New("檔案超過 10MB")
)

const uploadFailedMessage = "上傳失敗，請稍後再試"

type uploadedImage struct {
	Key         string
	URL         string
	ContentType string
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > maxImageSize {
		return nil, errImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading file content: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, errImageTooLarge
	}
	return data, nil
}

// storeImage sniffs the content, rejects anything but jpeg/png/webp and
// uploads it under prefix/<nanoid>.<ext>.
func storeImage(ctx context.Context, storage ObjectStorage, prefix string, data []byte) (*uploadedImage, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown {
		return nil, errUnsupportedImage
	}
	if _, ok := allowedImageTypes[kind.Extension]; !ok {
		return nil, errUnsupportedImage
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/%s.%s", prefix, id, kind.Extension)

	url, err := storage.Upload(ctx, key, data, kind.MIME.Value)
	if err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}
	return &uploadedImage{Key: key, URL: url, ContentType: kind.MIME.Value}, nil
}

func uploadFile(ctx context.Context, storage ObjectStorage, prefix string, fh *multipart.FileHeader) (*uploadedImage, error) {
	data, err := readUpload(fh)
	if err != nil {
		return nil, err
	}
	return storeImage(ctx, storage, prefix, data)
}

// imageError turns a rejected file into a validation error on field.
func imageError(field string, err error) error {
	if errors.Is(err, errUnsupportedImage) || errors.Is(err, errImageTooLarge) {
		return NewValidationError(field, err.Error())
	}
	return err
}

// failureMessage is the per-file text shown for a failed batch upload.
// Storage and database errors stay in the log.
func failureMessage(err error) string {
	if errors.Is(err, errUnsupportedImage) || errors.Is(err, errImageTooLarge) {
		return err.Error()
	}
	return uploadFailedMessage
}
