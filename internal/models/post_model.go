package models

import "time"

type Post struct {
	ID           int64        `db:"post_id" json:"post_id"`
	UserID       int64        `db:"user_id" json:"user_id"`
	Title        string       `db:"title" json:"title"`
	Content      string       `db:"content" json:"content"`
	TripID       *int64       `db:"trip_id" json:"trip_id"`
	PlaceID      *int64       `db:"place_id" json:"place_id"`
	AuthorName   string       `db:"author_name" json:"author_name"`
	AuthorAvatar string       `db:"author_avatar" json:"author_avatar"`
	LikeCount    int          `db:"like_count" json:"like_count"`
	CommentCount int          `db:"comment_count" json:"comment_count"`
	Liked        bool         `db:"liked" json:"liked"`
	Bookmarked   bool         `db:"bookmarked" json:"bookmarked"`
	Tags         []string     `json:"tags"`
	Photos       []*PostPhoto `json:"photos"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

type PostPhoto struct {
	ID           int64     `db:"id" json:"id"`
	PostID       int64     `db:"post_id" json:"post_id"`
	FileName     string    `db:"file_name" json:"-"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Comment struct {
	ID           int64     `db:"comment_id" json:"comment_id"`
	PostID       int64     `db:"post_id" json:"post_id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	Content      string    `db:"content" json:"content"`
	AuthorName   string    `db:"author_name" json:"author_name"`
	AuthorAvatar string    `db:"author_avatar" json:"author_avatar"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type TagCount struct {
	Tag   string `db:"tag" json:"tag"`
	Count int    `db:"count" json:"count"`
}

// PostFilter narrows the blog feed. Zero values mean "no filter".
type PostFilter struct {
	Tag         string
	AuthorID    int64
	Keyword     string
	FollowingOf int64
	BookmarkOf  int64
	ViewerID    int64
	Limit       int
	Offset      int
}
