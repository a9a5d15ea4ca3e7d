package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/repository"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

const maxListNameLength = 50

type FavoriteService interface {
	Lists(ctx context.Context, requesterID, ownerID int64) ([]*models.FavoriteList, error)
	GetList(ctx context.Context, userID, listID int64) (*transfer.FavoriteListDetail, error)
	CreateList(ctx context.Context, userID int64, name string) (*models.FavoriteList, error)
	DeleteList(ctx context.Context, userID, listID int64) error
	AddPlace(ctx context.Context, userID, listID, placeID int64) error
	RemovePlace(ctx context.Context, userID, listID, placeID int64) error
	FavoriteTrip(ctx context.Context, userID, tripID int64) error
	UnfavoriteTrip(ctx context.Context, userID, tripID int64) error
	ListTrips(ctx context.Context, userID int64) ([]*models.Trip, error)
	Index(ctx context.Context, userID int64) (*models.FavoritesIndex, error)
}

type favoriteService struct {
	favorites repository.FavoriteRepository
	places    repository.PlaceRepository
	trips     repository.TripRepository
}

func NewFavoriteService(
	favorites repository.FavoriteRepository,
	places repository.PlaceRepository,
	trips repository.TripRepository) FavoriteService {
	return &favoriteService{
		favorites: favorites,
		places:    places,
		trips:     trips,
	}
}

func (s *favoriteService) Lists(ctx context.Context, requesterID, ownerID int64) ([]*models.FavoriteList, error) {
	if requesterID != ownerID {
		return nil, ErrForbidden
	}
	lists, err := s.favorites.ListsByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing favorite lists: %w", err)
	}
	return lists, nil
}

func (s *favoriteService) GetList(ctx context.Context, userID, listID int64) (*transfer.FavoriteListDetail, error) {
	list, err := s.ownedList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	places, err := s.favorites.ListPlaces(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("error listing favorite places: %w", err)
	}
	return &transfer.FavoriteListDetail{List: list, Places: places}, nil
}

func (s *favoriteService) CreateList(ctx context.Context, userID int64, name string) (*models.FavoriteList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "請輸入清單名稱")
	}
	if utf8.RuneCountInString(name) > maxListNameLength {
		return nil, NewValidationError("name", fmt.Sprintf("清單名稱不能超過%d字", maxListNameLength))
	}

	list := &models.FavoriteList{UserID: userID, Name: name}
	id, err := s.favorites.CreateList(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("error creating favorite list: %w", err)
	}
	list.ID = id
	return list, nil
}

func (s *favoriteService) DeleteList(ctx context.Context, userID, listID int64) error {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return err
	}
	if err := s.favorites.RemoveList(ctx, listID); err != nil {
		return fmt.Errorf("error removing favorite list: %w", err)
	}
	return nil
}

// AddPlace returns ErrAlreadyFavorited when the place is already in the list.
func (s *favoriteService) AddPlace(ctx context.Context, userID, listID, placeID int64) error {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return err
	}

	exists, err := s.places.Exists(ctx, placeID)
	if err != nil {
		return fmt.Errorf("error checking place: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	added, err := s.favorites.AddPlace(ctx, listID, placeID)
	if err != nil {
		return fmt.Errorf("error adding favorite: %w", err)
	}
	if !added {
		return ErrAlreadyFavorited
	}
	return nil
}

func (s *favoriteService) RemovePlace(ctx context.Context, userID, listID, placeID int64) error {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return err
	}
	removed, err := s.favorites.RemovePlace(ctx, listID, placeID)
	if err != nil {
		return fmt.Errorf("error removing favorite: %w", err)
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (s *favoriteService) FavoriteTrip(ctx context.Context, userID, tripID int64) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("error loading trip: %w", err)
	}
	if trip == nil {
		return ErrNotFound
	}
	if !trip.IsPublic && trip.UserID != userID {
		return ErrForbidden
	}

	added, err := s.favorites.AddTrip(ctx, userID, tripID)
	if err != nil {
		return fmt.Errorf("error favoriting trip: %w", err)
	}
	if !added {
		return ErrAlreadyFavorited
	}
	return nil
}

func (s *favoriteService) UnfavoriteTrip(ctx context.Context, userID, tripID int64) error {
	removed, err := s.favorites.RemoveTrip(ctx, userID, tripID)
	if err != nil {
		return fmt.Errorf("error unfavoriting trip: %w", err)
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (s *favoriteService) ListTrips(ctx context.Context, userID int64) ([]*models.Trip, error) {
	trips, err := s.favorites.ListTrips(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing favorite trips: %w", err)
	}
	return trips, nil
}

// Index lists every saved place and trip id, so a page can mark favorites
// without walking each list.
func (s *favoriteService) Index(ctx context.Context, userID int64) (*models.FavoritesIndex, error) {
	placeIDs, err := s.favorites.PlaceIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading favorite places: %w", err)
	}
	tripIDs, err := s.favorites.TripIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading favorite trips: %w", err)
	}
	return &models.FavoritesIndex{PlaceIDs: placeIDs, TripIDs: tripIDs}, nil
}

func (s *favoriteService) ownedList(ctx context.Context, userID, listID int64) (*models.FavoriteList, error) {
	list, err := s.favorites.GetList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("error loading favorite list: %w", err)
	}
	if list == nil {
		return nil, ErrNotFound
	}
	if list.UserID != userID {
		return nil, ErrForbidden
	}
	return list, nil
}
