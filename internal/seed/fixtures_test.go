package seed

import (
	"testing"

	"mingle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoFixture = `
users:
  - username: alice
    email: alice@example.com
    friends: [bob]
  - username: bob
    friends: [alice]
  - username: carol
    requests: [alice]
posts:
  - owner: alice
    title: First light
    text: The very first post on this instance.
`

func TestParseFixture(t *testing.T) {
	f, err := ParseFixture([]byte(demoFixture))
	require.NoError(t, err)
	require.Len(t, f.Users, 3)
	assert.Equal(t, []string{"bob"}, f.Users[0].Friends)
	assert.Equal(t, []string{"alice"}, f.Users[2].Requests)
	require.Len(t, f.Posts, 1)
	assert.Equal(t, "alice", f.Posts[0].Owner)
}

func TestParseFixtureRejectsEmpty(t *testing.T) {
	_, err := ParseFixture([]byte("posts: []"))
	assert.Error(t, err)

	_, err = ParseFixture([]byte("users: ['not a map"))
	assert.Error(t, err)
}

func TestApplyFixture(t *testing.T) {
	db := setupTestDB(t)
	s := NewSeeder(db)

	f, err := ParseFixture([]byte(demoFixture))
	require.NoError(t, err)
	require.NoError(t, s.Apply(f))

	var alice, bob, carol models.User
	require.NoError(t, db.First(&alice, "username = ?", "alice").Error)
	require.NoError(t, db.First(&bob, "username = ?", "bob").Error)
	require.NoError(t, db.First(&carol, "username = ?", "carol").Error)
	assert.Equal(t, "bob@example.com", bob.Email)

	// alice and bob are mutual friends
	var edges []models.FriendEdge
	require.NoError(t, db.Find(&edges).Error)
	assert.Len(t, edges, 2)

	// carol's request sits in alice's queue
	var reqs []models.FriendRequest
	require.NoError(t, db.Find(&reqs, "recipient_id = ?", alice.ID).Error)
	require.Len(t, reqs, 1)
	assert.Equal(t, carol.ID, reqs[0].RequesterID)
}

func TestApplyFixtureUnknownReference(t *testing.T) {
	s := NewSeeder(setupTestDB(t))

	f, err := ParseFixture([]byte("users:\n  - username: solo\n    friends: [ghost]\n"))
	require.NoError(t, err)
	assert.Error(t, s.Apply(f))
}
