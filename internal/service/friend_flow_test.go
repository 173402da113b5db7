package service

import (
	"context"
	"testing"

	"mingle/internal/models"
	"mingle/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type friendFixture struct {
	db  *gorm.DB
	svc *FriendService
}

func newFriendFixture(t *testing.T) *friendFixture {
	t.Helper()
	db := setupTestDB(t)
	return &friendFixture{
		db:  db,
		svc: NewFriendService(repository.NewFriendRepository(db), repository.NewUserRepository(db), nil),
	}
}

func (f *friendFixture) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func TestFriendFlowAcceptIsOneSided(t *testing.T) {
	f := newFriendFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	require.NoError(t, f.svc.SendFriendRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, f.svc.AcceptFriendRequest(ctx, bob.ID, alice.ID))

	// Bob accepted, so Alice appears in Bob's friend list. Alice's own list
	// stays empty until she adds Bob herself.
	bobList, err := f.svc.GetFriends(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobList.Friends, 1)
	assert.Equal(t, alice.ID, bobList.Friends[0].ID)
	assert.Empty(t, bobList.FriendRequests)

	aliceList, err := f.svc.GetFriends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceList.Friends)
}

func TestFriendFlowReverseRequestAfterAccept(t *testing.T) {
	f := newFriendFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	require.NoError(t, f.svc.SendFriendRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, f.svc.AcceptFriendRequest(ctx, bob.ID, alice.ID))

	// The guard only inspects the target's sets, so Bob can still send a
	// request back to Alice even though Alice is already in his list.
	require.NoError(t, f.svc.SendFriendRequest(ctx, bob.ID, alice.ID))
	require.NoError(t, f.svc.AcceptFriendRequest(ctx, alice.ID, bob.ID))

	aliceList, err := f.svc.GetFriends(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceList.Friends, 1)
	assert.Equal(t, bob.ID, aliceList.Friends[0].ID)
}

func TestFriendFlowDuplicateRequestRejected(t *testing.T) {
	f := newFriendFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	require.NoError(t, f.svc.SendFriendRequest(ctx, alice.ID, bob.ID))

	err := f.svc.SendFriendRequest(ctx, alice.ID, bob.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeAlreadyRelated, appErr.Code)
}

func TestFriendFlowRejectThenResend(t *testing.T) {
	f := newFriendFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	require.NoError(t, f.svc.SendFriendRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, f.svc.RejectFriendRequest(ctx, bob.ID, alice.ID))

	// Rejected means gone: a fresh request goes through.
	require.NoError(t, f.svc.SendFriendRequest(ctx, alice.ID, bob.ID))

	list, err := f.svc.GetFriends(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, list.FriendRequests, 1)
	assert.Equal(t, alice.ID, list.FriendRequests[0].ID)
}

func TestFriendFlowRemoveIsOneSidedAndIdempotent(t *testing.T) {
	f := newFriendFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	// Make the relation mutual first.
	require.NoError(t, f.svc.SendFriendRequest(ctx, alice.ID, bob.ID))
	require.NoError(t, f.svc.AcceptFriendRequest(ctx, bob.ID, alice.ID))
	require.NoError(t, f.svc.SendFriendRequest(ctx, bob.ID, alice.ID))
	require.NoError(t, f.svc.AcceptFriendRequest(ctx, alice.ID, bob.ID))

	require.NoError(t, f.svc.RemoveFriend(ctx, alice.ID, bob.ID))

	aliceList, err := f.svc.GetFriends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceList.Friends)

	bobList, err := f.svc.GetFriends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobList.Friends, 1, "bob's side keeps its edge")

	// Removing again is a no-op.
	assert.NoError(t, f.svc.RemoveFriend(ctx, alice.ID, bob.ID))
}

func TestFriendFlowRequestOrderPreserved(t *testing.T) {
	f := newFriendFixture(t)
	ctx := context.Background()
	target := f.createUser(t, "target")
	var senders []*models.User
	for _, name := range []string{"zoe", "ann", "mike"} {
		senders = append(senders, f.createUser(t, name))
	}

	for _, s := range senders {
		require.NoError(t, f.svc.SendFriendRequest(ctx, s.ID, target.ID))
	}

	list, err := f.svc.GetFriends(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, list.FriendRequests, 3)
	assert.Equal(t, "zoe", list.FriendRequests[0].Username)
	assert.Equal(t, "ann", list.FriendRequests[1].Username)
	assert.Equal(t, "mike", list.FriendRequests[2].Username)
}
