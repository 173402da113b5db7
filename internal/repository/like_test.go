package repository

import (
	"context"
	"testing"

	"mingle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_TogglePost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	liked, err := repo.TogglePost(ctx, 1, 7)
	require.NoError(t, err)
	assert.True(t, liked)

	ids, err := repo.PostLikerIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, ids)

	// Second toggle undoes the first.
	liked, err = repo.TogglePost(ctx, 1, 7)
	require.NoError(t, err)
	assert.False(t, liked)

	ids, err = repo.PostLikerIDs(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLikeRepository_ToggleComment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	liked, err := repo.ToggleComment(ctx, 3, 7)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.ToggleComment(ctx, 3, 8)
	require.NoError(t, err)
	assert.True(t, liked)

	ids, err := repo.CommentLikerIDs(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 8}, ids)

	liked, err = repo.ToggleComment(ctx, 3, 7)
	require.NoError(t, err)
	assert.False(t, liked)

	ids, err = repo.CommentLikerIDs(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint{8}, ids)
}

func TestLikeRepository_Batch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	for _, pair := range [][2]uint{{1, 7}, {1, 8}, {2, 7}} {
		_, err := repo.TogglePost(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	m, err := repo.PostLikerIDsBatch(ctx, []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 8}, m[1])
	assert.Equal(t, []uint{7}, m[2])
	_, ok := m[3]
	assert.False(t, ok)

	m, err = repo.PostLikerIDsBatch(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLikeRepository_DistinctUsersAccumulate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	for _, uid := range []uint{1, 2, 3} {
		liked, err := repo.TogglePost(ctx, 5, uid)
		require.NoError(t, err)
		assert.True(t, liked)
	}

	var count int64
	db.Model(&models.PostLike{}).Where("post_id = ?", 5).Count(&count)
	assert.EqualValues(t, 3, count)
}
