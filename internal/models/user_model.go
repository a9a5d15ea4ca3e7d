package models

import "time"

type User struct {
	ID               int64     `db:"id" json:"id"`
	GoogleID         string    `db:"google_id" json:"-"`
	Email            string    `db:"email" json:"email"`
	Name             string    `db:"name" json:"name"`
	PasswordHash     *string   `db:"password_hash" json:"-"`
	ProfilePicture   string    `db:"profile_picture" json:"profile_picture"`
	Bio              string    `db:"bio" json:"bio"`
	TwoFactorEnabled bool      `db:"two_factor_enabled" json:"two_factor_enabled"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// HasPassword reports whether the account can sign in with email and password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

type Profile struct {
	ID             int64  `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	ProfilePicture string `db:"profile_picture" json:"profile_picture"`
	Bio            string `db:"bio" json:"bio"`
	FollowerCount  int    `db:"follower_count" json:"follower_count"`
	FollowingCount int    `db:"following_count" json:"following_count"`
	PostCount      int    `db:"post_count" json:"post_count"`
	IsFollowing    bool   `db:"is_following" json:"is_following"`
}

type UserBrief struct {
	ID             int64  `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	ProfilePicture string `db:"profile_picture" json:"profile_picture"`
}
