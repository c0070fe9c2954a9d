package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/snapzoska/backend/internal/middleware"
	"github.com/snapzoska/backend/internal/service"
	"github.com/snapzoska/backend/internal/types"
)

// PostHandler exposes the feed, post creation, and the like/save toggles.
type PostHandler struct {
	postService service.IPostService
	likeService service.ILikeService
	saveService service.ISavedPostService
	authService service.IAuthService
	rateLimiter *middleware.RateLimiter
}

func NewPostHandler(
	postService service.IPostService,
	likeService service.ILikeService,
	saveService service.ISavedPostService,
	authService service.IAuthService,
	rateLimiter *middleware.RateLimiter,
) *PostHandler {
	return &PostHandler{
		postService: postService,
		likeService: likeService,
		saveService: saveService,
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

func (h *PostHandler) RegisterRoutes(router *gin.RouterGroup) {
	posts := router.Group("/posts")
	{
		posts.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListPosts)
		posts.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetPost)
		posts.POST("", middleware.AuthMiddleware(h.authService), h.rateLimiter.RateLimitMiddleware(), h.CreatePost)
		posts.POST("/:id/like", middleware.AuthMiddleware(h.authService), h.ToggleLike)
		posts.POST("/:id/save", middleware.AuthMiddleware(h.authService), h.ToggleSave)
	}
}

// ListPosts returns the feed, newest first, optionally filtered to one owner
// via ?user_id=. Anonymous viewers get is_liked_by_user=false throughout.
func (h *PostHandler) ListPosts(c *gin.Context) {
	viewerID := viewerFromContext(c)

	var ownerID *uuid.UUID
	if owner := c.Query("user_id"); owner != "" {
		id, err := uuid.Parse(owner)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid user id"})
			return
		}
		ownerID = &id
	}

	posts, err := h.postService.ListPosts(c.Request.Context(), viewerID, ownerID)
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid post id"})
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), postID, viewerFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "post not found"})
			return
		}
		log.Printf("Error fetching post %s: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req types.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), userID.(uuid.UUID), req.ImageURL, req.Caption)
	if err != nil {
		log.Printf("Error creating post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
}

// ToggleLike flips the caller's like on a post and returns the authoritative
// count. Failures come back as a structured body, never a raw error.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid post id"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	result, err := h.likeService.Toggle(c.Request.Context(), userID.(uuid.UUID), postID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "post not found"})
			return
		}
		log.Printf("Error toggling like on post %s: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"liked":      result.Active,
		"like_count": result.Count,
	})
}

// ToggleSave flips the caller's bookmark on a post, independent of likes.
func (h *PostHandler) ToggleSave(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid post id"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	result, err := h.saveService.Toggle(c.Request.Context(), userID.(uuid.UUID), postID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "post not found"})
			return
		}
		log.Printf("Error toggling save on post %s: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to toggle save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"saved":      result.Active,
		"save_count": result.Count,
	})
}

// viewerFromContext returns the authenticated user id when present.
func viewerFromContext(c *gin.Context) *uuid.UUID {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uuid.UUID); ok {
			return &id
		}
	}
	return nil
}
