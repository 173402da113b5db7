package models

import (
	"time"
)

// Post validation bounds, matching the public API contract.
const (
	PostTitleMinLen = 3
	PostTitleMaxLen = 15
	PostTextMinLen  = 10
	PostTextMaxLen  = 1000
)

// Post is a stored post. OwnerID and CreatedAt are set once at creation and
// never change; Views only ever increases.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Text      string    `gorm:"not null" json:"text"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Views     uint      `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `json:"created_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// PostLike is one entry of a post's like set. The (PostID, UserID) pair is
// unique so the set can be mutated with atomic insert/delete, never a
// read-modify-write of the whole collection.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_liker" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_liker" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
