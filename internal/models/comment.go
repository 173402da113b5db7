package models

import (
	"time"
)

// Comment text bounds.
const (
	CommentTextMinLen = 10
	CommentTextMaxLen = 300
)

// Comment is a stored comment on a post. Comments are the only entity that
// can be physically deleted.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	OwnerID   uint      `gorm:"not null" json:"owner_id"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// CommentLike is one entry of a comment's like set, unique per
// (CommentID, UserID) pair.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_liker" json:"comment_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_liker" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
