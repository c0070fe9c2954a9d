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

// SavedPostService flips a user's bookmark on a post. Same shape and race
// profile as LikeService, against an independent relation.
type SavedPostService struct {
	db          *gorm.DB
	revalidator Revalidator
}

var _ ISavedPostService = (*SavedPostService)(nil)

func NewSavedPostService(db *gorm.DB, revalidator Revalidator) *SavedPostService {
	return &SavedPostService{
		db:          db,
		revalidator: revalidator,
	}
}

// Toggle deletes the saved-post row for (userID, postID) if it exists,
// otherwise creates it. Duplicate-key on create is a benign race and reports
// the state that now holds.
func (s *SavedPostService) Toggle(ctx context.Context, userID, postID uuid.UUID) (*ToggleResult, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Select("id").First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.SavedPost
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&existing).Error

	saved := false
	switch {
	case err == nil:
		if err := s.db.WithContext(ctx).Delete(&models.SavedPost{}, "id = ?", existing.ID).Error; err != nil {
			return nil, fmt.Errorf("failed to remove saved post: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		save := models.SavedPost{
			ID:     uuid.New(),
			UserID: userID,
			PostID: postID,
		}
		if err := s.db.WithContext(ctx).Create(&save).Error; err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("failed to save post: %w", err)
			}
			log.Printf("Duplicate save for user %s on post %s, treating as no-op", userID, postID)
		}
		saved = true
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

	return &ToggleResult{Active: saved, Count: count}, nil
}

// Count returns the authoritative number of saves on a post.
func (s *SavedPostService) Count(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.SavedPost{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
