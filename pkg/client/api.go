package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

type LoginResult struct {
	Requires2FA bool  `json:"requires_2fa"`
	UserID      int64 `json:"user_id"`
}

type TripPage struct {
	Trips []*models.Trip `json:"trips"`
	transfer.Pagination
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/api/v2/auth/login", transfer.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Verify2FA(ctx context.Context, email, code string) error {
	return c.do(ctx, http.MethodPost, "/api/v2/auth/login/2fa", transfer.Verify2FARequest{Email: email, Code: code}, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v2/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/api/v2/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/v2/auth/forgot-password", transfer.ForgotPasswordRequest{Email: email}, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	var out transfer.VerifyOTPResponse
	err := c.do(ctx, http.MethodPost, "/api/v2/auth/verify-otp", transfer.VerifyOTPRequest{Email: email, Code: code}, &out)
	return out.ResetToken, err
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/api/v2/auth/reset-password",
		transfer.ResetPasswordRequest{ResetToken: resetToken, NewPassword: newPassword}, nil)
}

func (c *Client) CreateTrip(ctx context.Context, in *transfer.TripInput) (*transfer.CreateTripResponse, error) {
	var out transfer.CreateTripResponse
	if err := c.do(ctx, http.MethodPost, "/api/trips", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTrip(ctx context.Context, tripID int64, in *transfer.TripInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/trips/%d", tripID), in, nil)
}

func (c *Client) DeleteTrip(ctx context.Context, tripID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/trips/%d", tripID), nil, nil)
}

func (c *Client) GetUserTrips(ctx context.Context) ([]*models.Trip, error) {
	var out TripPage
	if err := c.do(ctx, http.MethodGet, "/api/trips", nil, &out); err != nil {
		return nil, err
	}
	return out.Trips, nil
}

func (c *Client) ListPublicTrips(ctx context.Context, page, limit int) (*TripPage, error) {
	var out TripPage
	path := fmt.Sprintf("/api/trips/public?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTripDetail(ctx context.Context, tripID int64) (*models.TripDetail, error) {
	var out models.TripDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/trips/%d", tripID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddPlaceToDay(ctx context.Context, dayID int64, req *transfer.AddTripItemRequest) (*models.TripItem, error) {
	var out models.TripItem
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/trips/days/%d/items", dayID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemovePlaceFromTrip(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/trips/items/%d", itemID), nil, nil)
}

func (c *Client) UpdatePlaceOrder(ctx context.Context, itemID int64, sortOrder int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/trips/items/%d/order", itemID),
		transfer.UpdateOrderRequest{SortOrder: sortOrder}, nil)
}

// CopyTrip asks the server to deep-clone tripID for userID and returns the new trip id.
func (c *Client) CopyTrip(ctx context.Context, tripID, userID int64) (int64, error) {
	var out transfer.CopyTripResponse
	in := map[string]int64{"user_id": userID}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/trips/%d/copy", tripID), in, &out); err != nil {
		return 0, err
	}
	return out.NewTripID, nil
}

func (c *Client) SearchPlaces(ctx context.Context, q transfer.PlaceQuery) ([]*models.Place, error) {
	v := url.Values{}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.LocationID > 0 {
		v.Set("location_id", strconv.FormatInt(q.LocationID, 10))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}

	var out []*models.Place
	if err := c.do(ctx, http.MethodGet, "/api/places?"+v.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FavoritesIndex(ctx context.Context) (*models.FavoritesIndex, error) {
	var out models.FavoritesIndex
	if err := c.do(ctx, http.MethodGet, "/api/favorites/index", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddFavorite(ctx context.Context, listID, placeID int64) error {
	return c.do(ctx, http.MethodPost, "/api/favorites", transfer.FavoriteRequest{ListID: listID, PlaceID: placeID}, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, listID, placeID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/favorites", transfer.FavoriteRequest{ListID: listID, PlaceID: placeID}, nil)
}

func (c *Client) FavoriteTrip(ctx context.Context, tripID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/trips/%d/favorite", tripID), nil, nil)
}

func (c *Client) UnfavoriteTrip(ctx context.Context, tripID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/trips/%d/favorite", tripID), nil, nil)
}

func (c *Client) ListPosts(ctx context.Context, q transfer.PostQuery) (*transfer.PostPage, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Tag != "" {
		v.Set("tag", q.Tag)
	}
	if q.AuthorID > 0 {
		v.Set("author_id", strconv.FormatInt(q.AuthorID, 10))
	}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.Feed != "" {
		v.Set("feed", q.Feed)
	}

	var out transfer.PostPage
	if err := c.do(ctx, http.MethodGet, "/api/posts?"+v.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
