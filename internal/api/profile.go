package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/snapzoska/backend/internal/middleware"
	"github.com/snapzoska/backend/internal/service"
	"github.com/snapzoska/backend/internal/types"
)

// ProfileHandler exposes profile reads, the owner-only update, and the
// profile image upload.
type ProfileHandler struct {
	profileService *service.ProfileService
	imageService   service.IImageService
	authService    service.IAuthService
}

func NewProfileHandler(profileService *service.ProfileService, imageService service.IImageService, authService service.IAuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		imageService:   imageService,
		authService:    authService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.authService))
	{
		profile.GET("", h.GetOwnProfile)
		profile.POST("/image", h.UploadProfileImage)
	}

	users := router.Group("/users")
	{
		users.GET("/:id/profile", h.GetProfile)
		users.PUT("/:id/profile", middleware.AuthMiddleware(h.authService), h.UpdateProfile)
	}
}

func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	h.renderProfile(c, userID.(uuid.UUID))
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid user id"})
		return
	}

	h.renderProfile(c, userID)
}

func (h *ProfileHandler) renderProfile(c *gin.Context, userID uuid.UUID) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "profile not found"})
			return
		}
		log.Printf("Error fetching profile for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// UpdateProfile applies a partial update to the profile at :id. The service
// rejects callers that are not the profile owner.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid user id"})
		return
	}

	callerID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), callerID.(uuid.UUID), targetID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "unauthorized"})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
		default:
			log.Printf("Error updating profile for %s: %v", targetID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// UploadProfileImage accepts a multipart image of at most 2MB and stores it,
// updating the caller's user row with the resulting URL or data URI.
func (h *ProfileHandler) UploadProfileImage(c *gin.Context) {
	callerID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}
	userID := callerID.(uuid.UUID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no file provided"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := service.ValidateImage(contentType, fileHeader.Size, service.MaxProfileImageBytes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to read file"})
		return
	}

	imageURL, err := h.imageService.StoreProfileImage(c.Request.Context(), userID, contentType, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageTooLarge), errors.Is(err, service.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			log.Printf("Error storing profile image for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to store image"})
		}
		return
	}

	if err := h.profileService.UpdateUserImage(c.Request.Context(), userID, imageURL); err != nil {
		log.Printf("Error updating user image for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "image_url": imageURL})
}
