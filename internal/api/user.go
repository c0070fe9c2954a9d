package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/snapzoska/backend/internal/middleware"
	"github.com/snapzoska/backend/internal/service"
)

// UserHandler exposes user lookup and per-user post listings.
type UserHandler struct {
	authService service.IAuthService
	postService service.IPostService
}

func NewUserHandler(authService service.IAuthService, postService service.IPostService) *UserHandler {
	return &UserHandler{
		authService: authService,
		postService: postService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.GetUserByEmail)
		users.GET("/:id", h.GetUser)
		users.GET("/:id/posts", middleware.OptionalAuthMiddleware(h.authService), h.GetUserPosts)
		users.GET("/:id/liked-posts", h.GetLikedPosts)
		users.GET("/:id/saved-posts", h.GetSavedPosts)
	}
}

func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email is required"})
		return
	}

	user, err := h.authService.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
			return
		}
		log.Printf("Error fetching user by email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid user id"})
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
			return
		}
		log.Printf("Error fetching user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// GetUserPosts lists a user's own posts. A user with zero posts gets an
// empty list, not an error.
func (h *UserHandler) GetUserPosts(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid user id"})
		return
	}

	posts, err := h.postService.ListPosts(c.Request.Context(), viewerFromContext(c), &userID)
	if err != nil {
		log.Printf("Error fetching posts for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

func (h *UserHandler) GetLikedPosts(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid user id"})
		return
	}

	posts, err := h.postService.ListLikedPosts(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error fetching liked posts for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch liked posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

func (h *UserHandler) GetSavedPosts(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid user id"})
		return
	}

	posts, err := h.postService.ListSavedPosts(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error fetching saved posts for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch saved posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}
