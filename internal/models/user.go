// Package models contains the stored entities, composed view types and
// error taxonomy for the application.
package models

import (
	"time"
)

// DefaultAvatarURL is assigned to accounts created without an avatar upload.
const DefaultAvatarURL = "/uploads/default.jpg"

// User represents a registered account. Username is immutable after creation.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	AvatarURL string    `gorm:"not null;default:'/uploads/default.jpg'" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts []Post `gorm:"foreignKey:OwnerID" json:"posts,omitempty"`
}
