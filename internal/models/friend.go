package models

import (
	"time"
)

// FriendEdge records that FriendID is a member of OwnerID's friend set.
// The relation is stored directed on purpose: accepting a request only adds
// an edge on the accepter's side and removing a friend only deletes the
// owner's edge, so the inherited one-sided semantics hold by construction.
// The (OwnerID, FriendID) pair is unique, which makes the friend set a real
// set and lets adds be a single conflict-ignoring insert.
type FriendEdge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;uniqueIndex:idx_owner_friend" json:"owner_id"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_owner_friend" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendRequest is a pending directed proposal stored on the recipient.
// The autoincrement ID preserves arrival order.
type FriendRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	RequesterID uint      `gorm:"not null" json:"requester_id"`
	CreatedAt   time.Time `json:"created_at"`
}
