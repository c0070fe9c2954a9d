package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snapzoska/backend/internal/models"
)

// ToggleResult is the outcome of a like or save toggle. Active reports
// whether the relation row exists after the toggle. The count is always
// re-queried from the store after the toggle, never adjusted in memory, so it
// cannot drift under concurrent toggles by other users.
type ToggleResult struct {
	Active bool
	Count  int64
}

// LikeService flips a user's like on a post. The (user_id, post_id) unique
// constraint is the only concurrency guard; the find-then-act sequence is
// deliberately not wrapped in a transaction.
type LikeService struct {
	db          *gorm.DB
	revalidator Revalidator
}

var _ ILikeService = (*LikeService)(nil)

func NewLikeService(db *gorm.DB, revalidator Revalidator) *LikeService {
	return &LikeService{
		db:          db,
		revalidator: revalidator,
	}
}

// Toggle deletes the like row for (userID, postID) if it exists, otherwise
// creates it. A duplicate-key failure on create means a concurrent toggle by
// the same user already created the row; the intended end state holds, so it
// is reported as liked rather than as an error.
func (s *LikeService) Toggle(ctx context.Context, userID, postID uuid.UUID) (*ToggleResult, error) {
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	var existing models.Like
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&existing).Error

	liked := false
	switch {
	case err == nil:
		// Unlike. Zero rows affected means a concurrent toggle already
		// removed it; the end state is the same either way.
		if err := s.db.WithContext(ctx).Delete(&models.Like{}, "id = ?", existing.ID).Error; err != nil {
			return nil, fmt.Errorf("failed to remove like: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.Like{
			ID:     uuid.New(),
			UserID: userID,
			PostID: postID,
		}
		if err := s.db.WithContext(ctx).Create(&like).Error; err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("failed to create like: %w", err)
			}
			log.Printf("Duplicate like for user %s on post %s, treating as no-op", userID, postID)
		}
		liked = true
	default:
		return nil, err
	}

	count, err := s.Count(ctx, postID)
	if err != nil {
		return nil, err
	}

	if s.revalidator != nil {
		s.revalidator.Revalidate(ctx, "/")
	}

	return &ToggleResult{Active: liked, Count: count}, nil
}

// Count returns the authoritative number of likes on a post.
func (s *LikeService) Count(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *LikeService) ensurePostExists(ctx context.Context, postID uuid.UUID) error {
	var post models.Post
	if err := s.db.WithContext(ctx).Select("id").First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
