package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"mingle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostValidation(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "author")

	cases := []struct {
		name  string
		title string
		text  string
	}{
		{"title too short", "ab", "a perfectly fine body"},
		{"title too long", strings.Repeat("a", 16), "a perfectly fine body"},
		{"text too short", "title", "short"},
		{"text too long", "title", strings.Repeat("a", 1001)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.posts.CreatePost(ctx, CreatePostInput{OwnerID: owner.ID, Title: tc.title, Text: tc.text})
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.CodeValidationError, appErr.Code)
		})
	}
}

func TestCreatePostHappyPath(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "author")

	view, err := f.posts.CreatePost(ctx, CreatePostInput{
		OwnerID:  owner.ID,
		Title:    "hello",
		Text:     "a perfectly fine body",
		ImageURL: "/uploads/pic.webp",
	})
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.Equal(t, "author", view.Owner.Username)
	assert.Empty(t, view.LikerIDs)
	assert.Zero(t, view.Views)

	page, err := f.feed.ListPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "hello", page.Posts[0].Title)
}

func TestCreatePostUnknownOwner(t *testing.T) {
	f := newFeedFixture(t)

	_, err := f.posts.CreatePost(context.Background(), CreatePostInput{
		OwnerID: 404,
		Title:   "hello",
		Text:    "a perfectly fine body",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCreateCommentValidation(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "author")
	post := f.createPostAt(t, owner.ID, "a post", time.Now())

	_, err := f.posts.CreateComment(ctx, post.ID, owner.ID, "nope")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidationError, appErr.Code)

	_, err = f.posts.CreateComment(ctx, 404, owner.ID, "long enough comment")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestDeleteCommentOwnerOnly(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "author")
	commenter := f.createUser(t, "commenter")
	intruder := f.createUser(t, "intruder")
	post := f.createPostAt(t, owner.ID, "a post", time.Now())

	comment, err := f.posts.CreateComment(ctx, post.ID, commenter.ID, "a decent comment")
	require.NoError(t, err)

	err = f.posts.DeleteComment(ctx, comment.ID, intruder.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUnauthorized, appErr.Code)

	require.NoError(t, f.posts.DeleteComment(ctx, comment.ID, commenter.ID))

	comments, err := f.feed.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
