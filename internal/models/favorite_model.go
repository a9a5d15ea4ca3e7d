package models

import "time"

type FavoriteList struct {
	ID         int64     `db:"list_id" json:"list_id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	Name       string    `db:"name" json:"name"`
	PlaceCount int       `db:"place_count" json:"place_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type FavoriteListPlace struct {
	ListID  int64     `db:"list_id" json:"list_id"`
	PlaceID int64     `db:"place_id" json:"place_id"`
	AddedAt time.Time `db:"created_at" json:"added_at"`
}

// FavoritesIndex lists every place and trip the user has saved.
type FavoritesIndex struct {
	PlaceIDs []int64 `json:"place_ids"`
	TripIDs  []int64 `json:"trip_ids"`
}
