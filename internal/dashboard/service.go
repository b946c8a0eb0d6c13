package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statsCacheKey     = "dashboard:stats"
	executiveCacheKey = "dashboard:executive"
)

// Service serves dashboard rollups through a short-TTL Redis cache so the
// landing page doesn't hammer the aggregate queries.
type Service struct {
	repo  Repository
	cache *redis.Client
	ttl   time.Duration
	now   func() time.Time
}

func NewService(repo Repository, cache *redis.Client, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var cached Stats
	if ok, err := s.fromCache(ctx, statsCacheKey, &cached); err == nil && ok {
		return &cached, nil
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats, err := s.repo.Stats(ctx, dayStart)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	s.toCache(ctx, statsCacheKey, stats)
	return stats, nil
}

func (s *Service) Executive(ctx context.Context) (*Executive, error) {
	var cached Executive
	if ok, err := s.fromCache(ctx, executiveCacheKey, &cached); err == nil && ok {
		return &cached, nil
	}

	exec, err := s.repo.Executive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load executive rollup: %w", err)
	}

	s.toCache(ctx, executiveCacheKey, exec)
	return exec, nil
}

func (s *Service) fromCache(ctx context.Context, key string, dest any) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// toCache is best effort: a cache write failure never fails the request.
func (s *Service) toCache(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, raw, s.ttl)
}
