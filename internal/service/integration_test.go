package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapzoska/backend/internal/models"
	"github.com/snapzoska/backend/internal/testhelpers"
	"github.com/snapzoska/backend/internal/types"
)

// TestToggleLikePostgres runs the toggle against a real PostgreSQL so the
// unique-constraint behavior is exercised with the production driver.
func TestToggleLikePostgres(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewLikeService(db, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "pguser")
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

// TestConcurrentTogglesPostgres hammers one (user, post) pair from many
// goroutines. Whatever interleaving happens, the constraint guarantees at
// most one row survives and no call errors out.
func TestConcurrentTogglesPostgres(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewLikeService(db, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "racer")
	post := createTestPost(t, db, user.ID)

	const toggles = 10
	var wg sync.WaitGroup
	errs := make(chan error, toggles)

	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Toggle(ctx, user.ID, post.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("toggle failed: %v", err)
	}

	var rows int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		Count(&rows).Error)
	assert.LessOrEqual(t, rows, int64(1))

	count, err := svc.Count(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, rows, count)
}

// TestFullFlowPostgres walks a register, post, like, save, profile flow end
// to end on PostgreSQL.
func TestFullFlowPostgres(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	auth := NewAuthService(db, "integration-secret")
	posts := NewPostService(db, nil)
	likes := NewLikeService(db, nil)
	saves := NewSavedPostService(db, nil)
	profiles := NewProfileService(db, nil)

	user, token, err := auth.Register(ctx, "Eva", "eva@example.com", "password123")
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	post, err := posts.CreatePost(ctx, user.ID, "https://example.com/eva.jpg", nil)
	require.NoError(t, err)

	likeResult, err := likes.Toggle(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, likeResult.Active)

	saveResult, err := saves.Toggle(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, saveResult.Active)

	bio := "loves photography"
	_, err = profiles.UpdateProfile(ctx, user.ID, user.ID, &types.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)

	feed, err := posts.ListPosts(ctx, &user.ID, nil)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].IsLikedByUser)
	assert.True(t, feed[0].IsSavedByUser)
	assert.Equal(t, int64(1), feed[0].LikeCount)

	liked, err := posts.ListLikedPosts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, post.ID, liked[0].ID)

	// Unlike and re-check
	likeResult, err = likes.Toggle(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, likeResult.Active)
	assert.Equal(t, int64(0), likeResult.Count)

	liked, err = posts.ListLikedPosts(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, liked)
}
