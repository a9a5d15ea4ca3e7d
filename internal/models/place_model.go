package models

import "time"

const (
	CategoryAttraction = "景點"
	CategoryRestaurant = "餐廳"
	CategoryLodging    = "住宿"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryAttraction, CategoryRestaurant, CategoryLodging:
		return true
	}
	return false
}

type Location struct {
	ID     int64  `db:"location_id" json:"location_id"`
	Name   string `db:"name" json:"name"`
	Region string `db:"region" json:"region"`
}

type Place struct {
	ID           int64     `db:"place_id" json:"place_id"`
	Name         string    `db:"name" json:"name"`
	Category     string    `db:"category" json:"category"`
	LocationID   *int64    `db:"location_id" json:"location_id"`
	LocationName string    `db:"location_name" json:"location_name"`
	Rating       float64   `db:"rating" json:"rating"`
	CoverImage   string    `db:"cover_image" json:"cover_image"`
	Description  string    `db:"description" json:"description"`
	Latitude     float64   `db:"latitude" json:"latitude"`
	Longitude    float64   `db:"longitude" json:"longitude"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type PlaceImage struct {
	ID        int64     `db:"id" json:"id"`
	PlaceID   int64     `db:"place_id" json:"place_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	FileName  string    `db:"file_name" json:"-"`
	FileType  string    `db:"file_type" json:"file_type"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
