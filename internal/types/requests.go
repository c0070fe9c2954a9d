package types

// RegisterRequest represents the request body for registering a user
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	ImageURL string  `json:"image_url" binding:"required"`
	Caption  *string `json:"caption"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields keep the
// stored values; they are never nulled out.
type UpdateProfileRequest struct {
	Bio       *string  `json:"bio"`
	Location  *string  `json:"location"`
	AvatarURL *string  `json:"avatar_url"`
	Interests []string `json:"interests"`
}
