package models

import (
	"time"
)

// The types below are composed read models returned by the feed and friend
// services. They are hydrated from stored entities in an explicit resolve
// step; handlers never serialize raw reference IDs where the API promises
// an embedded object.

// UserSummary is the password-free projection of a User used everywhere a
// user is embedded into another payload.
type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// Summary returns the embeddable projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}

// PostView is a post with its owner and like set resolved.
type PostView struct {
	ID        uint        `json:"id"`
	Title     string      `json:"title"`
	Text      string      `json:"text"`
	ImageURL  string      `json:"image_url"`
	Views     uint        `json:"views"`
	CreatedAt time.Time   `json:"created_at"`
	Owner     UserSummary `json:"owner"`
	LikerIDs  []uint      `json:"likes"`
}

// CommentView is a comment with its owner and like set resolved.
type CommentView struct {
	ID        uint        `json:"id"`
	PostID    uint        `json:"post_id"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
	Owner     UserSummary `json:"owner"`
	LikerIDs  []uint      `json:"likes"`
}

// PostPage is one page of the main feed.
type PostPage struct {
	Posts      []PostView `json:"posts"`
	TotalPages int        `json:"total_pages"`
}

// UserPage is one page of the user directory.
type UserPage struct {
	Users      []UserSummary `json:"users"`
	TotalPages int           `json:"total_pages"`
}

// PostDetail is a single post with its comment thread resolved.
type PostDetail struct {
	PostView
	Comments []CommentView `json:"comments"`
}

// Profile is a user with friends, pending requesters and posts resolved.
// FriendRequests preserves arrival order.
type Profile struct {
	User           UserSummary   `json:"user"`
	Friends        []UserSummary `json:"friends"`
	FriendRequests []UserSummary `json:"friend_requests"`
	Posts          []PostView    `json:"posts"`
}

// FriendList is the caller's friend and pending-request sets.
type FriendList struct {
	Friends        []UserSummary `json:"friends"`
	FriendRequests []UserSummary `json:"friend_requests"`
}
