package transfer

import "github.com/maheshrc27/tripnest-api/internal/models"

type PostInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	TripID  *int64   `json:"trip_id"`
	PlaceID *int64   `json:"place_id"`
}

type PostQuery struct {
	Page     int
	Limit    int
	Tag      string
	AuthorID int64
	Keyword  string
	Feed     string
}

type PostPage struct {
	Posts []*models.Post `json:"posts"`
	Pagination
}

type CommentInput struct {
	Content string `json:"content"`
}

type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

type BookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type FollowResponse struct {
	Following bool `json:"following"`
}

type PhotoUploadResponse struct {
	Uploaded []*models.PostPhoto `json:"uploaded"`
	Failed   []UploadFailure     `json:"failed"`
}
