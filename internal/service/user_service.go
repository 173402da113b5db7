package service

import (
	"context"

	"mingle/internal/models"
	"mingle/internal/repository"
	"mingle/internal/validation"
)

// UserService covers account lookups and the username search.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser returns the stored user record.
func (s *UserService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// SearchUsers matches usernames containing the query, case-insensitively.
// Surrounding whitespace in the query is ignored; a blank query is invalid.
// No matches is an empty result, not an error.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.UserSummary, error) {
	trimmed, err := validation.SearchQuery(query)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.Search(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

// UpdateAvatar stores a new avatar URL for the user and returns the updated
// record, re-read after the write so it reflects the stored state.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, avatarURL string) (*models.User, error) {
	if err := s.userRepo.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}
