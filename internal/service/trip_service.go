package service

import (
	"context"
	"database/sql"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/repository"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

type TripService interface {
	Create(ctx context.Context, userID int64, in *transfer.TripInput) (*transfer.CreateTripResponse, error)
	Update(ctx context.Context, userID, tripID int64, in *transfer.TripInput) error
	Delete(ctx context.Context, userID, tripID int64) error
	ListMine(ctx context.Context, userID int64) ([]*models.Trip, error)
	ListPublic(ctx context.Context, page, limit int) ([]*models.Trip, transfer.Pagination, error)
	ListUserPublic(ctx context.Context, ownerID, viewerID int64) ([]*models.Trip, error)
	Detail(ctx context.Context, tripID, viewerID int64) (*models.TripDetail, error)
	Copy(ctx context.Context, tripID, userID int64) (int64, error)
	UploadCover(ctx context.Context, userID, tripID int64, file *multipart.FileHeader) (string, error)
}

type tripService struct {
	tx      repository.Transactor
	trips   repository.TripRepository
	days    repository.TripDayRepository
	items   repository.TripItemRepository
	storage ObjectStorage
}

func NewTripService(
	tx repository.Transactor,
	trips repository.TripRepository,
	days repository.TripDayRepository,
	items repository.TripItemRepository,
	storage ObjectStorage) TripService {
	return &tripService{
		tx:      tx,
		trips:   trips,
		days:    days,
		items:   items,
		storage: storage,
	}
}

// Create stores the trip and one day per calendar date of its range.
func (s *tripService) Create(ctx context.Context, userID int64, in *transfer.TripInput) (*transfer.CreateTripResponse, error) {
	start, end, fe := in.Validate()
	if fe != nil {
		return nil, fieldError(fe)
	}

	trip := &models.Trip{
		UserID:        userID,
		Name:          strings.TrimSpace(in.TripName),
		Description:   in.Description,
		StartDate:     start,
		EndDate:       end,
		CoverImageURL: in.CoverImageURL,
		SummaryText:   in.SummaryText,
		IsPublic:      in.IsPublic,
		LocationID:    in.LocationID,
	}
	dayCount := trip.DayCount()

	var tripID int64
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		var err error
		tripID, err = s.trips.Create(ctx, tx, trip)
		if err != nil {
			return fmt.Errorf("error creating trip: %w", err)
		}
		for i := 0; i < dayCount; i++ {
			day := &models.TripDay{TripID: tripID, DayNumber: i + 1, Date: start.AddDays(i)}
			if _, err := s.days.Create(ctx, tx, day); err != nil {
				return fmt.Errorf("error creating day %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &transfer.CreateTripResponse{TripID: tripID, DaysCreated: dayCount}, nil
}

// Update rewrites the trip and re-synchronises its days with the new range.
// Days keep their items by day number; surplus days are dropped with theirs.
func (s *tripService) Update(ctx context.Context, userID, tripID int64, in *transfer.TripInput) error {
	start, end, fe := in.Validate()
	if fe != nil {
		return fieldError(fe)
	}

	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return err
	}

	trip.Name = strings.TrimSpace(in.TripName)
	trip.Description = in.Description
	trip.StartDate = start
	trip.EndDate = end
	trip.CoverImageURL = in.CoverImageURL
	trip.SummaryText = in.SummaryText
	trip.IsPublic = in.IsPublic
	trip.LocationID = in.LocationID

	return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.trips.Update(ctx, tx, trip); err != nil {
			return fmt.Errorf("error updating trip: %w", err)
		}
		return s.syncDays(ctx, tx, trip)
	})
}

func (s *tripService) syncDays(ctx context.Context, tx *sql.Tx, trip *models.Trip) error {
	days, err := s.days.ListByTripID(ctx, tx, trip.ID)
	if err != nil {
		return fmt.Errorf("error listing days: %w", err)
	}

	want := trip.DayCount()
	for _, day := range days {
		if day.DayNumber > want {
			continue
		}
		date := trip.StartDate.AddDays(day.DayNumber - 1)
		if day.Date.Equal(date.Time) {
			continue
		}
		if err := s.days.UpdateDate(ctx, tx, day.ID, date); err != nil {
			return fmt.Errorf("error moving day %d: %w", day.DayNumber, err)
		}
	}

	for n := len(days) + 1; n <= want; n++ {
		day := &models.TripDay{TripID: trip.ID, DayNumber: n, Date: trip.StartDate.AddDays(n - 1)}
		if _, err := s.days.Create(ctx, tx, day); err != nil {
			return fmt.Errorf("error creating day %d: %w", n, err)
		}
	}

	if len(days) > want {
		if _, err := s.days.DeleteAfter(ctx, tx, trip.ID, want); err != nil {
			return fmt.Errorf("error removing days: %w", err)
		}
	}
	return nil
}

func (s *tripService) Delete(ctx context.Context, userID, tripID int64) error {
	if _, err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return err
	}
	if err := s.trips.Remove(ctx, tripID); err != nil {
		return fmt.Errorf("error removing trip: %w", err)
	}
	return nil
}

func (s *tripService) ListMine(ctx context.Context, userID int64) ([]*models.Trip, error) {
	trips, err := s.trips.ListByUserID(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("error listing trips: %w", err)
	}
	return trips, nil
}

func (s *tripService) ListPublic(ctx context.Context, page, limit int) ([]*models.Trip, transfer.Pagination, error) {
	page, limit = pageBounds(page, limit)
	trips, err := s.trips.ListPublic(ctx, limit+1, (page-1)*limit)
	if err != nil {
		return nil, transfer.Pagination{}, fmt.Errorf("error listing public trips: %w", err)
	}
	trips, p := trimPage(trips, page, limit)
	return trips, p, nil
}

// ListUserPublic shows the owner every trip and everyone else the public ones.
func (s *tripService) ListUserPublic(ctx context.Context, ownerID, viewerID int64) ([]*models.Trip, error) {
	trips, err := s.trips.ListByUserID(ctx, ownerID, ownerID != viewerID)
	if err != nil {
		return nil, fmt.Errorf("error listing trips: %w", err)
	}
	return trips, nil
}

func (s *tripService) Detail(ctx context.Context, tripID, viewerID int64) (*models.TripDetail, error) {
	trip, err := s.visibleTrip(ctx, tripID, viewerID)
	if err != nil {
		return nil, err
	}

	days, err := s.days.ListByTripID(ctx, nil, tripID)
	if err != nil {
		return nil, fmt.Errorf("error listing days: %w", err)
	}
	items, err := s.items.ListByTripID(ctx, nil, tripID)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}

	byDay := make(map[int64]*models.TripDay, len(days))
	for _, d := range days {
		if d.Items == nil {
			d.Items = []*models.TripItem{}
		}
		byDay[d.ID] = d
	}
	for _, it := range items {
		if d, ok := byDay[it.TripDayID]; ok {
			d.Items = append(d.Items, it)
		}
	}

	return &models.TripDetail{Trip: trip, Days: days}, nil
}

// Copy deep-clones a public trip, or one of the caller's own, into a new
// private trip owned by the caller.
func (s *tripService) Copy(ctx context.Context, tripID, userID int64) (int64, error) {
	src, err := s.visibleTrip(ctx, tripID, userID)
	if err != nil {
		return 0, err
	}

	clone := *src
	clone.ID = 0
	clone.UserID = userID
	clone.IsPublic = false
	clone.CopiedFrom = &src.ID

	var newID int64
	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		var err error
		newID, err = s.trips.Create(ctx, tx, &clone)
		if err != nil {
			return fmt.Errorf("error copying trip: %w", err)
		}

		days, err := s.days.ListByTripID(ctx, tx, src.ID)
		if err != nil {
			return fmt.Errorf("error listing days: %w", err)
		}
		dayIDs := make(map[int64]int64, len(days))
		for _, d := range days {
			id, err := s.days.Create(ctx, tx, &models.TripDay{TripID: newID, DayNumber: d.DayNumber, Date: d.Date})
			if err != nil {
				return fmt.Errorf("error copying day %d: %w", d.DayNumber, err)
			}
			dayIDs[d.ID] = id
		}

		items, err := s.items.ListByTripID(ctx, tx, src.ID)
		if err != nil {
			return fmt.Errorf("error listing items: %w", err)
		}
		for _, it := range items {
			copied := *it
			copied.ID = 0
			copied.TripDayID = dayIDs[it.TripDayID]
			if _, err := s.items.Create(ctx, tx, &copied); err != nil {
				return fmt.Errorf("error copying item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

func (s *tripService) UploadCover(ctx context.Context, userID, tripID int64, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", NewValidationError("file", "請選擇檔案")
	}
	if _, err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return "", err
	}

	img, err := uploadFile(ctx, s.storage, "trips", file)
	if err != nil {
		return "", imageError("file", err)
	}
	if err := s.trips.UpdateCover(ctx, tripID, img.URL); err != nil {
		return "", fmt.Errorf("error saving cover: %w", err)
	}
	return img.URL, nil
}

func (s *tripService) ownedTrip(ctx context.Context, userID, tripID int64) (*models.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("error loading trip: %w", err)
	}
	if trip == nil {
		return nil, ErrNotFound
	}
	if trip.UserID != userID {
		return nil, ErrForbidden
	}
	return trip, nil
}

func (s *tripService) visibleTrip(ctx context.Context, tripID, viewerID int64) (*models.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("error loading trip: %w", err)
	}
	if trip == nil {
		return nil, ErrNotFound
	}
	if !trip.IsPublic && trip.UserID != viewerID {
		return nil, ErrForbidden
	}
	return trip, nil
}
