package transfer

import "github.com/maheshrc27/tripnest-api/internal/models"

type FavoriteRequest struct {
	ListID  int64 `json:"list_id"`
	PlaceID int64 `json:"place_id"`
}

type CreateFavoriteListRequest struct {
	Name string `json:"name"`
}

type FavoriteListDetail struct {
	List   *models.FavoriteList `json:"list"`
	Places []*models.Place      `json:"places"`
}
