package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mingle/internal/models"
	"mingle/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type feedFixture struct {
	db    *gorm.DB
	feed  *FeedService
	likes *LikeService
	posts *PostService
	users *UserService
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()
	db := setupTestDB(t)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	userRepo := repository.NewUserRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	return &feedFixture{
		db:    db,
		feed:  NewFeedService(postRepo, commentRepo, userRepo, likeRepo, friendRepo),
		likes: NewLikeService(likeRepo, postRepo, commentRepo, userRepo, nil),
		posts: NewPostService(postRepo, commentRepo, userRepo),
		users: NewUserService(userRepo),
	}
}

func (f *feedFixture) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *feedFixture) createPostAt(t *testing.T, ownerID uint, title string, at time.Time) *models.Post {
	t.Helper()
	p := &models.Post{Title: title, Text: "body text long enough", OwnerID: ownerID, CreatedAt: at}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func TestFeedPagination(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "author")

	// Four posts created in order P1..P4; the feed is newest-first, so with
	// page size 3 the first page holds P4, P3, P2 and the second holds P1.
	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 4; i++ {
		f.createPostAt(t, owner.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	page, err := f.feed.ListPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 3)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "post 4", page.Posts[0].Title)
	assert.Equal(t, "post 3", page.Posts[1].Title)
	assert.Equal(t, "post 2", page.Posts[2].Title)
	assert.Equal(t, "author", page.Posts[0].Owner.Username)

	page, err = f.feed.ListPosts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "post 1", page.Posts[0].Title)

	page, err = f.feed.ListPosts(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 2, page.TotalPages)

	_, err = f.feed.ListPosts(ctx, -1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidationError, appErr.Code)
}

func TestFeedEmptyStore(t *testing.T) {
	f := newFeedFixture(t)

	page, err := f.feed.ListPosts(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Zero(t, page.TotalPages)

	users, err := f.feed.ListUsers(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, users.Users)
	assert.Zero(t, users.TotalPages)
}

func TestUserDirectoryPagination(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()

	for _, name := range []string{"frank", "bella", "ada", "carol", "erin", "dave"} {
		f.createUser(t, name)
	}

	page, err := f.feed.ListUsers(ctx, 0)
	require.NoError(t, err)
	require.Len(t, page.Users, 5)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "ada", page.Users[0].Username)
	assert.Equal(t, "erin", page.Users[4].Username)

	page, err = f.feed.ListUsers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "frank", page.Users[0].Username)
}

func TestGetPostCountsViewsAndHydrates(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "author")
	reader := f.createUser(t, "reader")
	post := f.createPostAt(t, owner.ID, "a post", time.Now())

	_, err := f.likes.TogglePostLike(ctx, post.ID, reader.ID)
	require.NoError(t, err)

	_, err = f.posts.CreateComment(ctx, post.ID, reader.ID, "first comment here")
	require.NoError(t, err)

	detail, err := f.feed.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detail.Views)
	assert.Equal(t, "author", detail.Owner.Username)
	assert.Equal(t, []uint{reader.ID}, detail.LikerIDs)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "reader", detail.Comments[0].Owner.Username)

	// Every fetch counts.
	detail, err = f.feed.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, detail.Views)
}

func TestGetPostMissing(t *testing.T) {
	f := newFeedFixture(t)

	_, err := f.feed.GetPost(context.Background(), 404)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestGetUserProfile(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")
	f.createPostAt(t, alice.ID, "alice post", time.Now())

	friendRepo := repository.NewFriendRepository(f.db)
	require.NoError(t, friendRepo.AddEdge(ctx, alice.ID, bob.ID))
	require.NoError(t, friendRepo.AddRequest(ctx, alice.ID, carol.ID))

	profile, err := f.feed.GetUserProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.User.Username)
	require.Len(t, profile.Friends, 1)
	assert.Equal(t, "bob", profile.Friends[0].Username)
	require.Len(t, profile.FriendRequests, 1)
	assert.Equal(t, "carol", profile.FriendRequests[0].Username)
	require.Len(t, profile.Posts, 1)
	assert.Equal(t, "alice post", profile.Posts[0].Title)
}

func TestSearchUsers(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	f.createUser(t, "Adam")
	f.createUser(t, "adrian")
	f.createUser(t, "bella")

	results, err := f.users.SearchUsers(ctx, "  ad ")
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = f.users.SearchUsers(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = f.users.SearchUsers(ctx, "   ")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidationError, appErr.Code)
}
