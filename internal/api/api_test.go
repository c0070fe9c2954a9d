package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/snapzoska/backend/internal/database"
	"github.com/snapzoska/backend/internal/middleware"
	"github.com/snapzoska/backend/internal/models"
	"github.com/snapzoska/backend/internal/service"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	auth   *service.AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	authService := service.NewAuthService(db, testJWTSecret)
	postService := service.NewPostService(db, nil)
	likeService := service.NewLikeService(db, nil)
	saveService := service.NewSavedPostService(db, nil)
	profileService := service.NewProfileService(db, nil)
	imageService := service.NewImageService(nil)
	rateLimiter := middleware.NewRateLimiter(nil, middleware.RateLimitConfig{})

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewPostHandler(postService, likeService, saveService, authService, rateLimiter).RegisterRoutes(v1)
	NewProfileHandler(profileService, imageService, authService).RegisterRoutes(v1)
	NewUserHandler(authService, postService).RegisterRoutes(v1)

	return &testEnv{db: db, router: router, auth: authService}
}

func (e *testEnv) createUser(t *testing.T, name string) (*models.User, string) {
	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, e.db.Create(&user).Error)

	token, err := e.auth.GenerateToken(user.ID, user.Name)
	require.NoError(t, err)
	return &user, token
}

func (e *testEnv) createPost(t *testing.T, userID uuid.UUID) *models.Post {
	post := models.Post{
		ID:       uuid.New(),
		UserID:   userID,
		ImageURL: "https://example.com/image.jpg",
	}
	require.NoError(t, e.db.Create(&post).Error)
	return &post
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int) map[string]interface{} {
	require.Equal(t, status, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, false, body["success"])
	require.NotEmpty(t, body["error"])
	return body
}
