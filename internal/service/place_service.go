package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/repository"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

const maxGalleryFiles = 10

type PlaceService interface {
	Search(ctx context.Context, q transfer.PlaceQuery) ([]*models.Place, error)
	GetWithLocation(ctx context.Context, placeID int64) (*models.Place, error)
	ListLocations(ctx context.Context) ([]*models.Location, error)
	ListGallery(ctx context.Context, placeID int64) ([]*models.PlaceImage, error)
	UploadGallery(ctx context.Context, userID, placeID int64, files []*multipart.FileHeader) (*transfer.GalleryUploadResponse, error)
	DeleteGalleryImage(ctx context.Context, userID, imageID int64) error
}

type placeService struct {
	places    repository.PlaceRepository
	locations repository.LocationRepository
	images    repository.PlaceImageRepository
	storage   ObjectStorage
	tasks     TaskEnqueuer
}

func NewPlaceService(
	places repository.PlaceRepository,
	locations repository.LocationRepository,
	images repository.PlaceImageRepository,
	storage ObjectStorage,
	tasks TaskEnqueuer) PlaceService {
	return &placeService{
		places:    places,
		locations: locations,
		images:    images,
		storage:   storage,
		tasks:     tasks,
	}
}

func (s *placeService) Search(ctx context.Context, q transfer.PlaceQuery) ([]*models.Place, error) {
	if q.Category != "" && !models.ValidCategory(q.Category) {
		return nil, NewValidationError("category", "未知的類別")
	}
	places, err := s.places.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("error searching places: %w", err)
	}
	return places, nil
}

func (s *placeService) GetWithLocation(ctx context.Context, placeID int64) (*models.Place, error) {
	place, err := s.places.GetWithLocation(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("error loading place: %w", err)
	}
	if place == nil {
		return nil, ErrNotFound
	}
	return place, nil
}

func (s *placeService) ListLocations(ctx context.Context) ([]*models.Location, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing locations: %w", err)
	}
	return locations, nil
}

func (s *placeService) ListGallery(ctx context.Context, placeID int64) ([]*models.PlaceImage, error) {
	images, err := s.images.ListByPlaceID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("error listing gallery: %w", err)
	}
	return images, nil
}

// UploadGallery stores each file independently. A failing file is reported
// in Failed and does not undo the files uploaded before it.
func (s *placeService) UploadGallery(ctx context.Context, userID, placeID int64, files []*multipart.FileHeader) (*transfer.GalleryUploadResponse, error) {
	if len(files) == 0 {
		return nil, NewValidationError("files", "請選擇檔案")
	}
	if len(files) > maxGalleryFiles {
		return nil, NewValidationError("files", fmt.Sprintf("一次最多上傳%d張", maxGalleryFiles))
	}

	exists, err := s.places.Exists(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("error checking place: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	res := &transfer.GalleryUploadResponse{
		Uploaded: []*models.PlaceImage{},
		Failed:   []transfer.UploadFailure{},
	}
	for _, fh := range files {
		img, err := s.uploadOne(ctx, userID, placeID, fh)
		if err != nil {
			slog.Info("gallery upload failed", "file", fh.Filename, "error", err)
			res.Failed = append(res.Failed, transfer.UploadFailure{FileName: fh.Filename, Error: failureMessage(err)})
			continue
		}
		res.Uploaded = append(res.Uploaded, img)
	}
	return res, nil
}

func (s *placeService) uploadOne(ctx context.Context, userID, placeID int64, fh *multipart.FileHeader) (*models.PlaceImage, error) {
	up, err := uploadFile(ctx, s.storage, fmt.Sprintf("places/%d", placeID), fh)
	if err != nil {
		return nil, err
	}

	img := &models.PlaceImage{
		PlaceID:  placeID,
		UserID:   userID,
		FileName: up.Key,
		FileType: up.ContentType,
		ImageURL: up.URL,
	}
	id, err := s.images.Create(ctx, nil, img)
	if err != nil {
		if qerr := s.tasks.DeleteObject(ctx, up.Key); qerr != nil {
			slog.Info(qerr.Error())
		}
		return nil, fmt.Errorf("error saving image: %w", err)
	}
	img.ID = id
	return img, nil
}

// DeleteGalleryImage removes the row now and queues the storage object for deletion.
func (s *placeService) DeleteGalleryImage(ctx context.Context, userID, imageID int64) error {
	img, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		return fmt.Errorf("error loading image: %w", err)
	}
	if img == nil {
		return ErrNotFound
	}
	if img.UserID != userID {
		return ErrForbidden
	}

	if err := s.images.Remove(ctx, imageID); err != nil {
		return fmt.Errorf("error removing image: %w", err)
	}
	if err := s.tasks.DeleteObject(ctx, img.FileName); err != nil {
		slog.Info("could not queue object deletion", "key", img.FileName, "error", err)
	}
	return nil
}
