package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/snapzoska/backend/internal/api"
	"github.com/snapzoska/backend/internal/database"
	"github.com/snapzoska/backend/internal/middleware"
	"github.com/snapzoska/backend/internal/service"
)

func setupRouterForTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	authService := service.NewAuthService(db, "test-secret")
	postService := service.NewPostService(db, nil)
	likeService := service.NewLikeService(db, nil)
	saveService := service.NewSavedPostService(db, nil)
	profileService := service.NewProfileService(db, nil)
	imageService := service.NewImageService(nil)
	rateLimiter := middleware.NewRateLimiter(nil, middleware.RateLimitConfig{})

	return SetupRouter(
		api.NewAuthHandler(authService),
		api.NewPostHandler(postService, likeService, saveService, authService, rateLimiter),
		api.NewProfileHandler(profileService, imageService, authService),
		api.NewUserHandler(authService, postService),
	)
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouterForTest(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	router := setupRouterForTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	router := setupRouterForTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/posts", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
