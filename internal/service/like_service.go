package service

import (
	"context"

	"mingle/internal/notifications"
	"mingle/internal/observability"
	"mingle/internal/repository"
)

// Toggle results returned to the client.
const (
	ToggleResultLiked    = "liked"
	ToggleResultDisliked = "disliked"
)

// LikeService toggles like-set membership for posts and comments.
type LikeService struct {
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	notifier    *notifications.Notifier
}

// NewLikeService returns a new LikeService. notifier may be nil.
func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// TogglePostLike flips userID's membership in the post's like set and
// reports the direction the toggle took.
func (s *LikeService) TogglePostLike(ctx context.Context, postID, userID uint) (string, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return "", err
	}

	liked, err := s.likeRepo.TogglePost(ctx, postID, userID)
	if err != nil {
		return "", err
	}
	if !liked {
		observability.LikeToggles.WithLabelValues("post", ToggleResultDisliked).Inc()
		return ToggleResultDisliked, nil
	}

	observability.LikeToggles.WithLabelValues("post", ToggleResultLiked).Inc()
	if s.notifier != nil && post.OwnerID != userID {
		actor := ""
		if u, err := s.userRepo.GetByID(ctx, userID); err == nil {
			actor = u.Username
		}
		_ = s.notifier.PublishUser(ctx, post.OwnerID, notifications.Event{
			Type:    notifications.EventPostLiked,
			ActorID: userID,
			Actor:   actor,
			PostID:  postID,
		})
	}
	return ToggleResultLiked, nil
}

// ToggleCommentLike flips userID's membership in the comment's like set.
func (s *LikeService) ToggleCommentLike(ctx context.Context, commentID, userID uint) (string, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return "", err
	}

	liked, err := s.likeRepo.ToggleComment(ctx, commentID, userID)
	if err != nil {
		return "", err
	}
	if liked {
		observability.LikeToggles.WithLabelValues("comment", ToggleResultLiked).Inc()
		return ToggleResultLiked, nil
	}
	observability.LikeToggles.WithLabelValues("comment", ToggleResultDisliked).Inc()
	return ToggleResultDisliked, nil
}
