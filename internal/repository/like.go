package repository

import (
	"context"

	"mingle/internal/cache"
	"mingle/internal/models"
	"mingle/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like-set operations. Toggles are
// atomic at the store level: the conflict-ignoring insert's row count decides
// the direction, so concurrent toggles never double-apply.
type LikeRepository interface {
	TogglePost(ctx context.Context, postID, userID uint) (liked bool, err error)
	ToggleComment(ctx context.Context, commentID, userID uint) (liked bool, err error)
	PostLikerIDs(ctx context.Context, postID uint) ([]uint, error)
	CommentLikerIDs(ctx context.Context, commentID uint) ([]uint, error)
	PostLikerIDsBatch(ctx context.Context, postIDs []uint) (map[uint][]uint, error)
	CommentLikerIDsBatch(ctx context.Context, commentIDs []uint) (map[uint][]uint, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) TogglePost(ctx context.Context, postID, userID uint) (bool, error) {
	like := models.PostLike{PostID: postID, UserID: userID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if result.Error != nil {
		return false, models.NewStoreError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
		return true, nil
	}
	// Already liked: the toggle removes it.
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostLike{}).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return false, nil
}

func (r *likeRepository) ToggleComment(ctx context.Context, commentID, userID uint) (bool, error) {
	like := models.CommentLike{CommentID: commentID, UserID: userID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if result.Error != nil {
		return false, models.NewStoreError(result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&models.CommentLike{}).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return false, nil
}

func (r *likeRepository) PostLikerIDs(ctx context.Context, postID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("post_id = ?", postID).
		Order("id ASC").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return ids, nil
}

func (r *likeRepository) CommentLikerIDs(ctx context.Context, commentID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Order("id ASC").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return ids, nil
}

// PostLikerIDsBatch loads the like sets for a page of posts in one query.
func (r *likeRepository) PostLikerIDsBatch(ctx context.Context, postIDs []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	defer observability.TrackQuery("select_batch", "post_likes")()
	var likes []models.PostLike
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("id ASC").
		Find(&likes).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	for _, l := range likes {
		out[l.PostID] = append(out[l.PostID], l.UserID)
	}
	return out, nil
}

func (r *likeRepository) CommentLikerIDsBatch(ctx context.Context, commentIDs []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(commentIDs))
	if len(commentIDs) == 0 {
		return out, nil
	}
	defer observability.TrackQuery("select_batch", "comment_likes")()
	var likes []models.CommentLike
	if err := r.db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Order("id ASC").
		Find(&likes).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	for _, l := range likes {
		out[l.CommentID] = append(out[l.CommentID], l.UserID)
	}
	return out, nil
}
