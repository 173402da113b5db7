package repository

import (
	"context"
	"errors"

	"mingle/internal/cache"
	"mingle/internal/models"
	"mingle/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByOwnerID(ctx context.Context, ownerID uint) ([]models.Post, error)
	List(ctx context.Context, offset, limit int) ([]models.Post, error)
	Count(ctx context.Context) (int64, error)
	IncrementViews(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByOwnerID(ctx context.Context, ownerID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return posts, nil
}

// List returns one feed page, newest first.
func (r *postRepository) List(ctx context.Context, offset, limit int) ([]models.Post, error) {
	defer observability.TrackQuery("list", "posts")()
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("count", "posts")()
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, models.NewStoreError(err)
	}
	return count, nil
}

// IncrementViews bumps the view counter in a single UPDATE so concurrent
// readers never lose counts to a read-modify-write.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return models.NewStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
