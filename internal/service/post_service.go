package service

import (
	"context"

	"mingle/internal/models"
	"mingle/internal/repository"
	"mingle/internal/validation"
)

// PostService creates posts and comments.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// CreatePostInput carries the new-post fields.
type CreatePostInput struct {
	OwnerID  uint
	Title    string
	Text     string
	ImageURL string
}

// CreatePost validates and stores a new post, returning it hydrated.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.PostView, error) {
	if err := validation.PostTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validation.PostText(in.Text); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    in.Title,
		Text:     in.Text,
		ImageURL: in.ImageURL,
		OwnerID:  in.OwnerID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return &models.PostView{
		ID:        post.ID,
		Title:     post.Title,
		Text:      post.Text,
		ImageURL:  post.ImageURL,
		Views:     post.Views,
		CreatedAt: post.CreatedAt,
		Owner:     owner.Summary(),
		LikerIDs:  []uint{},
	}, nil
}

// CreateComment validates and stores a new comment on an existing post.
func (s *PostService) CreateComment(ctx context.Context, postID, ownerID uint, text string) (*models.CommentView, error) {
	if err := validation.CommentText(text); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		OwnerID: ownerID,
		Text:    text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return &models.CommentView{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		Owner:     owner.Summary(),
		LikerIDs:  []uint{},
	}, nil
}

// DeleteComment removes a comment. Only the comment's author may delete it.
func (s *PostService) DeleteComment(ctx context.Context, commentID, userID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.OwnerID != userID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
