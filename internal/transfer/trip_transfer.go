package transfer

// TripInput is the Trip Composer form. Dates are YYYY-MM-DD strings so that
// missing values can be reported field by field.
type TripInput struct {
	TripName      string `json:"trip_name"`
	Description   string `json:"description"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	CoverImageURL string `json:"cover_image_url"`
	SummaryText   string `json:"summary_text"`
	IsPublic      bool   `json:"is_public"`
	LocationID    *int64 `json:"location_id"`
	// UserID is sent by the create path; the server uses the session user.
	UserID int64 `json:"user_id,omitempty"`
}

type CreateTripResponse struct {
	TripID      int64 `json:"trip_id"`
	DaysCreated int   `json:"days_created"`
}

type CopyTripResponse struct {
	NewTripID int64 `json:"new_trip_id"`
}

type AddTripItemRequest struct {
	PlaceID   int64  `json:"place_id"`
	Type      string `json:"type"`
	Note      string `json:"note"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	SortOrder *int   `json:"sort_order"`
}

type UpdateTripItemRequest struct {
	Type      string `json:"type"`
	Note      string `json:"note"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type UpdateOrderRequest struct {
	SortOrder int `json:"sort_order"`
}

type ReorderDayRequest struct {
	ItemIDs []int64 `json:"item_ids"`
}

type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"has_more"`
}
