package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*models.User, error)
	GetProfile(ctx context.Context, id, viewerID int64) (*models.Profile, error)
	ToggleFollow(ctx context.Context, followerID, followeeID int64) (bool, error)
	Followers(ctx context.Context, userID int64) ([]*models.UserBrief, error)
	Following(ctx context.Context, userID int64) ([]*models.UserBrief, error)
}

type userService struct {
	u       repository.UserRepository
	follows repository.FollowRepository
}

func NewUserService(u repository.UserRepository, follows repository.FollowRepository) UserService {
	return &userService{
		u:       u,
		follows: follows,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.User, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting user info: %w", err)
	}

	if !isExist {
		return nil, ErrNotFound
	}

	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, id, viewerID int64) (*models.Profile, error) {
	profile, err := s.u.GetProfile(ctx, id, viewerID)
	if err != nil {
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// ToggleFollow follows the user, or unfollows when already following.
// It reports whether the follower follows the followee afterwards.
func (s *userService) ToggleFollow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if followerID == followeeID {
		return false, NewValidationError("user_id", "不能追蹤自己")
	}
	if _, err := s.GetUserInfo(ctx, followeeID); err != nil {
		return false, err
	}

	added, err := s.follows.Add(ctx, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("error following user: %w", err)
	}
	if added {
		return true, nil
	}

	if _, err := s.follows.Remove(ctx, followerID, followeeID); err != nil {
		return false, fmt.Errorf("error unfollowing user: %w", err)
	}
	return false, nil
}

func (s *userService) Followers(ctx context.Context, userID int64) ([]*models.UserBrief, error) {
	users, err := s.follows.Followers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing followers: %w", err)
	}
	return users, nil
}

func (s *userService) Following(ctx context.Context, userID int64) ([]*models.UserBrief, error) {
	users, err := s.follows.Following(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing following: %w", err)
	}
	return users, nil
}
