package transfer

import "github.com/maheshrc27/tripnest-api/internal/models"

type PlaceQuery struct {
	Keyword    string
	LocationID int64
	Category   string
}

type UploadFailure struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

type GalleryUploadResponse struct {
	Uploaded []*models.PlaceImage `json:"uploaded"`
	Failed   []UploadFailure      `json:"failed"`
}
