// Package validation holds the input rules shared by handlers and services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"mingle/internal/models"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Username must be 3-20 chars of letters, digits or underscore.
func Username(username string) error {
	if !usernameRe.MatchString(username) {
		return models.NewValidationError("username must be 3-20 characters (letters, digits, underscore)")
	}
	return nil
}

func Email(email string) error {
	if !emailRe.MatchString(email) {
		return models.NewValidationError("invalid email address")
	}
	return nil
}

func Password(password string) error {
	if len(password) < 8 {
		return models.NewValidationError("password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates past 72 bytes
		return models.NewValidationError("password must be at most 72 characters")
	}
	return nil
}

// PostTitle and PostText bounds count runes so multibyte input is not
// penalized.
func PostTitle(title string) error {
	return textLength("title", title, models.PostTitleMinLen, models.PostTitleMaxLen)
}

func PostText(text string) error {
	return textLength("text", text, models.PostTextMinLen, models.PostTextMaxLen)
}

func CommentText(text string) error {
	return textLength("comment", text, models.CommentTextMinLen, models.CommentTextMaxLen)
}

// SearchQuery trims whitespace and rejects empty queries. Returns the
// trimmed query on success.
func SearchQuery(q string) (string, error) {
	trimmed := strings.TrimSpace(q)
	if trimmed == "" {
		return "", models.NewValidationError("search query must not be empty")
	}
	return trimmed, nil
}

func textLength(field, s string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	if n < min || n > max {
		return models.NewValidationError(fmt.Sprintf("%s must be between %d and %d characters", field, min, max))
	}
	return nil
}
