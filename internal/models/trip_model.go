package models

import "time"

type Trip struct {
	ID            int64     `db:"trip_id" json:"trip_id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	Name          string    `db:"trip_name" json:"trip_name"`
	Description   string    `db:"description" json:"description"`
	StartDate     Date      `db:"start_date" json:"start_date"`
	EndDate       Date      `db:"end_date" json:"end_date"`
	CoverImageURL string    `db:"cover_image_url" json:"cover_image_url"`
	SummaryText   string    `db:"summary_text" json:"summary_text"`
	IsPublic      bool      `db:"is_public" json:"is_public"`
	LocationID    *int64    `db:"location_id" json:"location_id"`
	CopiedFrom    *int64    `db:"copied_from" json:"copied_from,omitempty"`
	TotalDays     int       `db:"total_days" json:"total_days"`
	TotalItems    int       `db:"total_items" json:"total_items"`
	OwnerName     string    `db:"owner_name" json:"owner_name,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// DayCount is the number of calendar days the trip spans.
func (t *Trip) DayCount() int {
	return t.StartDate.DaysUntil(t.EndDate)
}

type TripDay struct {
	ID        int64       `db:"trip_day_id" json:"trip_day_id"`
	TripID    int64       `db:"trip_id" json:"trip_id"`
	DayNumber int         `db:"day_number" json:"day_number"`
	Date      Date        `db:"date" json:"date"`
	Items     []*TripItem `json:"items"`
}

type TripItem struct {
	ID         int64   `db:"trip_item_id" json:"trip_item_id"`
	TripDayID  int64   `db:"trip_day_id" json:"trip_day_id"`
	PlaceID    int64   `db:"place_id" json:"place_id"`
	Type       string  `db:"type" json:"type"`
	Note       string  `db:"note" json:"note"`
	StartTime  string  `db:"start_time" json:"start_time"`
	EndTime    string  `db:"end_time" json:"end_time"`
	SortOrder  int     `db:"sort_order" json:"sort_order"`
	PlaceName  string  `db:"place_name" json:"place_name,omitempty"`
	Category   string  `db:"category" json:"category,omitempty"`
	Rating     float64 `db:"rating" json:"rating,omitempty"`
	CoverImage string  `db:"cover_image" json:"cover_image,omitempty"`
}

// TripDetail is a trip with its days, each carrying its ordered items.
type TripDetail struct {
	Trip *Trip      `json:"trip"`
	Days []*TripDay `json:"days"`
}
