package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/repository"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

// ItineraryService edits the items inside a trip's days.
type ItineraryService interface {
	AddItem(ctx context.Context, userID, dayID int64, req *transfer.AddTripItemRequest) (*models.TripItem, error)
	UpdateItem(ctx context.Context, userID, itemID int64, req *transfer.UpdateTripItemRequest) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
	UpdateOrder(ctx context.Context, userID, itemID int64, sortOrder int) error
	ReorderDay(ctx context.Context, userID, dayID int64, itemIDs []int64) error
}

type itineraryService struct {
	tx     repository.Transactor
	days   repository.TripDayRepository
	items  repository.TripItemRepository
	places repository.PlaceRepository
}

func NewItineraryService(
	tx repository.Transactor,
	days repository.TripDayRepository,
	items repository.TripItemRepository,
	places repository.PlaceRepository) ItineraryService {
	return &itineraryService{
		tx:     tx,
		days:   days,
		items:  items,
		places: places,
	}
}

// AddItem appends a place to a day. Without an explicit sort_order the item
// goes after the current last one.
func (s *itineraryService) AddItem(ctx context.Context, userID, dayID int64, req *transfer.AddTripItemRequest) (*models.TripItem, error) {
	if req.PlaceID <= 0 {
		return nil, NewValidationError("place_id", "請選擇地點")
	}
	if fe := transfer.ValidateTimeWindow(req.StartTime, req.EndTime); fe != nil {
		return nil, fieldError(fe)
	}
	if req.SortOrder != nil && *req.SortOrder < 1 {
		return nil, NewValidationError("sort_order", "排序必須大於0")
	}

	if _, err := s.ownedDay(ctx, userID, dayID); err != nil {
		return nil, err
	}

	exists, err := s.places.Exists(ctx, req.PlaceID)
	if err != nil {
		return nil, fmt.Errorf("error checking place: %w", err)
	}
	if !exists {
		return nil, NewValidationError("place_id", "地點不存在")
	}

	item := &models.TripItem{
		TripDayID: dayID,
		PlaceID:   req.PlaceID,
		Type:      req.Type,
		Note:      req.Note,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	} else {
		next, err := s.items.NextSortOrder(ctx, nil, dayID)
		if err != nil {
			return nil, fmt.Errorf("error computing sort order: %w", err)
		}
		item.SortOrder = next
	}

	id, err := s.items.Create(ctx, nil, item)
	if err != nil {
		return nil, fmt.Errorf("error adding item: %w", err)
	}
	item.ID = id
	return item, nil
}

func (s *itineraryService) UpdateItem(ctx context.Context, userID, itemID int64, req *transfer.UpdateTripItemRequest) error {
	if fe := transfer.ValidateTimeWindow(req.StartTime, req.EndTime); fe != nil {
		return fieldError(fe)
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	item.Type = req.Type
	item.Note = req.Note
	item.StartTime = req.StartTime
	item.EndTime = req.EndTime
	if err := s.items.UpdateDetails(ctx, item); err != nil {
		return fmt.Errorf("error updating item: %w", err)
	}
	return nil
}

// RemoveItem deletes the item. The remaining sort orders are left as they are.
func (s *itineraryService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.items.Remove(ctx, itemID); err != nil {
		return fmt.Errorf("error removing item: %w", err)
	}
	return nil
}

// UpdateOrder moves an item to sortOrder. An item of the same day already
// holding that position takes the moved item's old one.
func (s *itineraryService) UpdateOrder(ctx context.Context, userID, itemID int64, sortOrder int) error {
	if sortOrder < 1 {
		return NewValidationError("sort_order", "排序必須大於0")
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if item.SortOrder == sortOrder {
		return nil
	}

	return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		other, err := s.items.FindBySortOrder(ctx, tx, item.TripDayID, sortOrder, item.ID)
		if err != nil {
			return fmt.Errorf("error finding item at %d: %w", sortOrder, err)
		}
		if other != 0 {
			if err := s.items.UpdateSortOrder(ctx, tx, other, item.SortOrder); err != nil {
				return fmt.Errorf("error swapping item: %w", err)
			}
		}
		if err := s.items.UpdateSortOrder(ctx, tx, item.ID, sortOrder); err != nil {
			return fmt.Errorf("error moving item: %w", err)
		}
		return nil
	})
}

// ReorderDay assigns 1..n to the day's items in the given order. The list
// must name every item of the day exactly once.
func (s *itineraryService) ReorderDay(ctx context.Context, userID, dayID int64, itemIDs []int64) error {
	if _, err := s.ownedDay(ctx, userID, dayID); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		current, err := s.items.ListIDsByDayID(ctx, tx, dayID)
		if err != nil {
			return fmt.Errorf("error listing items: %w", err)
		}
		if !sameIDs(current, itemIDs) {
			return NewValidationError("item_ids", "項目與當天行程不符")
		}
		for i, id := range itemIDs {
			if err := s.items.UpdateSortOrder(ctx, tx, id, i+1); err != nil {
				return fmt.Errorf("error reordering item %d: %w", id, err)
			}
		}
		return nil
	})
}

func sameIDs(have, want []int64) bool {
	if len(have) != len(want) {
		return false
	}
	seen := make(map[int64]int, len(have))
	for _, id := range have {
		seen[id]++
	}
	for _, id := range want {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}

func (s *itineraryService) ownedDay(ctx context.Context, userID, dayID int64) (*models.TripDay, error) {
	day, ownerID, err := s.days.GetWithOwner(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("error loading day: %w", err)
	}
	if day == nil {
		return nil, ErrNotFound
	}
	if ownerID != userID {
		return nil, ErrForbidden
	}
	return day, nil
}

func (s *itineraryService) ownedItem(ctx context.Context, userID, itemID int64) (*models.TripItem, error) {
	item, ownerID, err := s.items.GetWithOwner(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("error loading item: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if ownerID != userID {
		return nil, ErrForbidden
	}
	return item, nil
}
