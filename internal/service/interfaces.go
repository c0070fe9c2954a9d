package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/snapzoska/backend/internal/models"
	"github.com/snapzoska/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IPostService defines the interface for post query and creation operations
type IPostService interface {
	ListPosts(ctx context.Context, viewerID, ownerID *uuid.UUID) ([]*PostWithMeta, error)
	GetPost(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) (*PostWithMeta, error)
	CreatePost(ctx context.Context, userID uuid.UUID, imageURL string, caption *string) (*models.Post, error)
	ListLikedPosts(ctx context.Context, userID uuid.UUID) ([]*PostWithMeta, error)
	ListSavedPosts(ctx context.Context, userID uuid.UUID) ([]*PostWithMeta, error)
}

// ILikeService defines the interface for the like toggle
type ILikeService interface {
	Toggle(ctx context.Context, userID, postID uuid.UUID) (*ToggleResult, error)
	Count(ctx context.Context, postID uuid.UUID) (int64, error)
}

// ISavedPostService defines the interface for the save toggle
type ISavedPostService interface {
	Toggle(ctx context.Context, userID, postID uuid.UUID) (*ToggleResult, error)
	Count(ctx context.Context, postID uuid.UUID) (int64, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, callerID, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.Profile, error)
}

// IImageService defines the interface for image validation and storage
type IImageService interface {
	StoreProfileImage(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (string, error)
	StorePostImage(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (string, error)
}

// Revalidator records which logical frontend paths need a re-render after a
// mutation. The UI is an external collaborator; this is only the signal.
type Revalidator interface {
	Revalidate(ctx context.Context, paths ...string)
}
