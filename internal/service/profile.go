package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snapzoska/backend/internal/models"
	"github.com/snapzoska/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db          *gorm.DB
	revalidator Revalidator
}

var _ IProfileService = (*ProfileService)(nil)

func NewProfileService(db *gorm.DB, revalidator Revalidator) *ProfileService {
	return &ProfileService{
		db:          db,
		revalidator: revalidator,
	}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile merges the provided fields over the stored profile, creating
// the row on first update. The caller must be the profile owner; a mismatch
// is rejected before any mutation.
func (s *ProfileService) UpdateProfile(ctx context.Context, callerID, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.Profile, error) {
	if callerID != userID {
		log.Printf("Unauthorized profile update attempt: caller %s, owner %s", callerID, userID)
		return nil, ErrUnauthorized
	}

	var user models.User
	if err := s.db.WithContext(ctx).Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	switch {
	case err == nil:
		// Merge: fields not provided keep their stored values
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if req.Location != nil {
			profile.Location = *req.Location
		}
		if req.AvatarURL != nil {
			profile.AvatarURL = *req.AvatarURL
		}
		if req.Interests != nil {
			profile.Interests = models.JSONBStringArray(req.Interests)
		}
		if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Created lazily on first update
		profile = models.Profile{
			ID:        uuid.New(),
			UserID:    userID,
			Interests: models.JSONBStringArray{},
		}
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if req.Location != nil {
			profile.Location = *req.Location
		}
		if req.AvatarURL != nil {
			profile.AvatarURL = *req.AvatarURL
		}
		if req.Interests != nil {
			profile.Interests = models.JSONBStringArray(req.Interests)
		}
		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
	default:
		return nil, err
	}

	if s.revalidator != nil {
		s.revalidator.Revalidate(ctx, fmt.Sprintf("/profil/%s", userID))
	}

	return &profile, nil
}

// UpdateUserImage stores a new image reference (URL or data URI) on the user
// row and flags the profile page for re-render.
func (s *ProfileService) UpdateUserImage(ctx context.Context, userID uuid.UUID, image string) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("image", image)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	if s.revalidator != nil {
		s.revalidator.Revalidate(ctx, fmt.Sprintf("/profil/%s", userID))
	}
	return nil
}
