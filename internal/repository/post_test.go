package repository

import (
	"context"
	"testing"
	"time"

	"mingle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		p := &models.Post{
			Title:     "post title",
			Text:      "some post body text",
			OwnerID:   1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, p))
	}

	t.Run("List returns newest first", func(t *testing.T) {
		posts, err := repo.List(ctx, 0, 3)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))
		assert.True(t, posts[1].CreatedAt.After(posts[2].CreatedAt))
	})

	t.Run("List beyond range is empty", func(t *testing.T) {
		posts, err := repo.List(ctx, 30, 3)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("Count", func(t *testing.T) {
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 4, n)
	})

	t.Run("GetByOwnerID", func(t *testing.T) {
		posts, err := repo.GetByOwnerID(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, posts, 4)

		posts, err = repo.GetByOwnerID(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("IncrementViews", func(t *testing.T) {
		posts, err := repo.List(ctx, 0, 1)
		require.NoError(t, err)
		id := posts[0].ID

		require.NoError(t, repo.IncrementViews(ctx, id))
		require.NoError(t, repo.IncrementViews(ctx, id))

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.EqualValues(t, 2, got.Views)
	})

	t.Run("IncrementViews on missing post", func(t *testing.T) {
		err := repo.IncrementViews(ctx, 9999)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}
