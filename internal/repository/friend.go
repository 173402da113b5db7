package repository

import (
	"context"

	"mingle/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository defines the interface for friend data operations.
// Edges are directed: HasEdge(a, b) asks whether b is in a's friend set,
// which is not implied by HasEdge(b, a).
type FriendRepository interface {
	AddRequest(ctx context.Context, recipientID, requesterID uint) error
	RemoveRequest(ctx context.Context, recipientID, requesterID uint) error
	HasRequest(ctx context.Context, recipientID, requesterID uint) (bool, error)
	ListRequesterIDs(ctx context.Context, recipientID uint) ([]uint, error)
	AddEdge(ctx context.Context, ownerID, friendID uint) error
	RemoveEdge(ctx context.Context, ownerID, friendID uint) error
	HasEdge(ctx context.Context, ownerID, friendID uint) (bool, error)
	ListFriendIDs(ctx context.Context, ownerID uint) ([]uint, error)
	Accept(ctx context.Context, accepterID, requesterID uint) error
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) AddRequest(ctx context.Context, recipientID, requesterID uint) error {
	req := models.FriendRequest{RecipientID: recipientID, RequesterID: requesterID}
	if err := r.db.WithContext(ctx).Create(&req).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *friendRepository) RemoveRequest(ctx context.Context, recipientID, requesterID uint) error {
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND requester_id = ?", recipientID, requesterID).
		Delete(&models.FriendRequest{}).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *friendRepository) HasRequest(ctx context.Context, recipientID, requesterID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("recipient_id = ? AND requester_id = ?", recipientID, requesterID).
		Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

// ListRequesterIDs returns pending requesters in arrival order.
func (r *friendRepository) ListRequesterIDs(ctx context.Context, recipientID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("recipient_id = ?", recipientID).
		Order("id ASC").
		Pluck("requester_id", &ids).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return ids, nil
}

// AddEdge inserts the edge if absent. The unique (owner_id, friend_id)
// index plus DoNothing make concurrent adds converge on a single row.
func (r *friendRepository) AddEdge(ctx context.Context, ownerID, friendID uint) error {
	edge := models.FriendEdge{OwnerID: ownerID, FriendID: friendID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *friendRepository) RemoveEdge(ctx context.Context, ownerID, friendID uint) error {
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND friend_id = ?", ownerID, friendID).
		Delete(&models.FriendEdge{}).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *friendRepository) HasEdge(ctx context.Context, ownerID, friendID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FriendEdge{}).
		Where("owner_id = ? AND friend_id = ?", ownerID, friendID).
		Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) ListFriendIDs(ctx context.Context, ownerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.FriendEdge{}).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Pluck("friend_id", &ids).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return ids, nil
}

// Accept consumes the pending request and adds the requester to the
// accepter's friend set in one transaction. Only the accepter's side gains
// an edge.
func (r *friendRepository) Accept(ctx context.Context, accepterID, requesterID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("recipient_id = ? AND requester_id = ?", accepterID, requesterID).
			Delete(&models.FriendRequest{}).Error; err != nil {
			return err
		}
		edge := models.FriendEdge{OwnerID: accepterID, FriendID: requesterID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
	})
	if err != nil {
		return models.NewStoreError(err)
	}
	return nil
}
