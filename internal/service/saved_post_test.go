package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapzoska/backend/internal/models"
)

func TestToggleSaveScenario(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSavedPostService(db, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "saver")
	post := createTestPost(t, db, user.ID)

	result, err := svc.Toggle(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, int64(1), result.Count)

	result, err = svc.Toggle(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Active)
	assert.Equal(t, int64(0), result.Count)
}

func TestToggleSaveUnknownPost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSavedPostService(db, nil)

	user := createTestUser(t, db, "saver2")

	_, err := svc.Toggle(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveDoesNotAffectLikes(t *testing.T) {
	db := setupTestDB(t)
	likes := NewLikeService(db, nil)
	saves := NewSavedPostService(db, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "independent")
	post := createTestPost(t, db, user.ID)

	_, err := likes.Toggle(ctx, user.ID, post.ID)
	require.NoError(t, err)

	// Saving and unsaving leaves the like row untouched
	_, err = saves.Toggle(ctx, user.ID, post.ID)
	require.NoError(t, err)
	_, err = saves.Toggle(ctx, user.ID, post.ID)
	require.NoError(t, err)

	var likeRows int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		Count(&likeRows).Error)
	assert.Equal(t, int64(1), likeRows)

	var saveRows int64
	require.NoError(t, db.Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		Count(&saveRows).Error)
	assert.Equal(t, int64(0), saveRows)
}

func TestSaveCountPerPost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSavedPostService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "savedowner")
	first := createTestPost(t, db, owner.ID)
	second := createTestPost(t, db, owner.ID)

	_, err := svc.Toggle(ctx, owner.ID, first.ID)
	require.NoError(t, err)

	count, err := svc.Count(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = svc.Count(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
