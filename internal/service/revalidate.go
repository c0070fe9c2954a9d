package service

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevalidationService records which logical frontend paths need a re-render
// after a mutation, using Redis as the shared signal between backend and
// renderer. Without Redis it degrades to a no-op; toggles still succeed.
type RevalidationService struct {
	redis  *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Revalidator = (*RevalidationService)(nil)

func NewRevalidationService(redisClient *redis.Client) *RevalidationService {
	return &RevalidationService{
		redis:  redisClient,
		prefix: "revalidate:",
		ttl:    time.Hour,
	}
}

// Revalidate marks the given paths stale. Failures are logged and swallowed:
// a missed revalidation signal must never fail the mutation that caused it.
func (s *RevalidationService) Revalidate(ctx context.Context, paths ...string) {
	if s.redis == nil {
		return
	}
	for _, path := range paths {
		if err := s.redis.Set(ctx, s.prefix+path, time.Now().Unix(), s.ttl).Err(); err != nil {
			log.Printf("Failed to record revalidation for %s: %v", path, err)
		}
	}
}

// Consume reports whether a path was marked stale and clears the mark.
func (s *RevalidationService) Consume(ctx context.Context, path string) (bool, error) {
	if s.redis == nil {
		return false, nil
	}
	n, err := s.redis.Del(ctx, s.prefix+path).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
