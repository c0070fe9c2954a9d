package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/snapzoska/backend/config"
	"github.com/snapzoska/backend/internal/api"
	"github.com/snapzoska/backend/internal/middleware"
	"github.com/snapzoska/backend/internal/router"
	"github.com/snapzoska/backend/internal/service"
)

// Server wires the services and handlers and owns the HTTP lifecycle.
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New creates a new server instance. redisClient and s3Config may be nil;
// revalidation signals and S3 upload degrade gracefully without them.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config) *Server {
	revalidator := service.NewRevalidationService(redisClient)

	authService := service.NewAuthService(db, cfg.JWTSecret)
	postService := service.NewPostService(db, revalidator)
	likeService := service.NewLikeService(db, revalidator)
	saveService := service.NewSavedPostService(db, revalidator)
	profileService := service.NewProfileService(db, revalidator)
	imageService := service.NewImageService(s3Config)

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     30,
		KeyPrefix: "ratelimit",
	})

	authHandler := api.NewAuthHandler(authService)
	postHandler := api.NewPostHandler(postService, likeService, saveService, authService, rateLimiter)
	profileHandler := api.NewProfileHandler(profileService, imageService, authService)
	userHandler := api.NewUserHandler(authService, postService)

	r := router.SetupRouter(authHandler, postHandler, profileHandler, userHandler)

	// The http.Server is built here, not in Start, so Shutdown can be called
	// from another goroutine without racing the startup
	return &Server{
		router: r,
		http: &http.Server{
			Addr:    ":" + cfg.ServerPort,
			Handler: r,
		},
		cfg: cfg,
	}
}

// Start begins serving and blocks until the listener fails or is shut down.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
