// Package service contains the business logic layered on top of the
// repositories. Services validate input, enforce relationship rules and
// hydrate composed view types for the handlers.
package service

import (
	"context"

	"mingle/internal/models"
	"mingle/internal/notifications"
	"mingle/internal/observability"
	"mingle/internal/repository"
)

// FriendService drives the friend-request state machine.
//
// The relation is one-sided on purpose: accepting a request adds the
// requester to the accepter's friend set only, and removing a friend clears
// only the remover's side. Both directions of the guard checks below operate
// on the recipient's state, mirroring that model.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	notifier   *notifications.Notifier
}

// NewFriendService returns a new FriendService. notifier may be nil.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository, notifier *notifications.Notifier) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// SendFriendRequest records a pending request from userID on the target's
// request list.
func (s *FriendService) SendFriendRequest(ctx context.Context, userID, targetID uint) error {
	if userID == targetID {
		return models.NewInvalidOperationError("Cannot send a friend request to yourself")
	}

	sender, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	// Both guards read the target's state: their friend set and their
	// pending list. The sender's own sets are not consulted.
	isFriend, err := s.friendRepo.HasEdge(ctx, targetID, userID)
	if err != nil {
		return err
	}
	if isFriend {
		return models.NewAlreadyRelatedError("You are already friends with this user")
	}

	pending, err := s.friendRepo.HasRequest(ctx, targetID, userID)
	if err != nil {
		return err
	}
	if pending {
		return models.NewAlreadyRelatedError("Friend request already sent")
	}

	if err := s.friendRepo.AddRequest(ctx, targetID, userID); err != nil {
		return err
	}

	observability.FriendEvents.WithLabelValues("request_sent").Inc()
	if s.notifier != nil {
		_ = s.notifier.PublishUser(ctx, targetID, notifications.Event{
			Type:    notifications.EventFriendRequest,
			ActorID: userID,
			Actor:   sender.Username,
		})
	}
	return nil
}

// AcceptFriendRequest consumes a pending request and adds the requester to
// the accepter's friend set. The requester's friend set is left untouched.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, userID, requesterID uint) error {
	accepter, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, requesterID); err != nil {
		return err
	}

	pending, err := s.friendRepo.HasRequest(ctx, userID, requesterID)
	if err != nil {
		return err
	}
	if !pending {
		return models.NewInvalidOperationError("No pending friend request from this user")
	}

	if err := s.friendRepo.Accept(ctx, userID, requesterID); err != nil {
		return err
	}

	observability.FriendEvents.WithLabelValues("request_accepted").Inc()
	if s.notifier != nil {
		_ = s.notifier.PublishUser(ctx, requesterID, notifications.Event{
			Type:    notifications.EventRequestAccepted,
			ActorID: userID,
			Actor:   accepter.Username,
		})
	}
	return nil
}

// RejectFriendRequest discards a pending request. Rejecting a request that
// does not exist is a no-op.
func (s *FriendService) RejectFriendRequest(ctx context.Context, userID, requesterID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.friendRepo.RemoveRequest(ctx, userID, requesterID); err != nil {
		return err
	}

	observability.FriendEvents.WithLabelValues("request_rejected").Inc()
	return nil
}

// RemoveFriend deletes targetID from the caller's friend set. The target's
// own set keeps its edge, if it has one. Removing an absent friend is a
// no-op.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, targetID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.friendRepo.RemoveEdge(ctx, userID, targetID); err != nil {
		return err
	}

	observability.FriendEvents.WithLabelValues("friend_removed").Inc()
	return nil
}

// GetFriends returns the user's friend set and pending requesters, both
// hydrated to summaries. Request order is arrival order.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) (*models.FriendList, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	friendIDs, err := s.friendRepo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	requesterIDs, err := s.friendRepo.ListRequesterIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends, err := summariesInOrder(ctx, s.userRepo, friendIDs)
	if err != nil {
		return nil, err
	}
	requests, err := summariesInOrder(ctx, s.userRepo, requesterIDs)
	if err != nil {
		return nil, err
	}

	return &models.FriendList{Friends: friends, FriendRequests: requests}, nil
}

// summariesInOrder resolves ids to user summaries, preserving the order of
// ids and silently dropping any that no longer resolve.
func summariesInOrder(ctx context.Context, users repository.UserRepository, ids []uint) ([]models.UserSummary, error) {
	resolved, err := users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(resolved))
	for _, u := range resolved {
		byID[u.ID] = u
	}

	out := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u.Summary())
		}
	}
	return out, nil
}
