package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"assessment-prediction-api/config"
	"assessment-prediction-api/logger"
)

// Cache key and pub/sub channel names shared by the reload pipeline and the
// read-side handlers.
const (
	SummaryCacheKey = "assessments:summary:latest"
	ReloadChannel   = "assessments:reloaded"
)

// CacheService wraps Redis. A service with a nil client degrades to no-ops
// so the API keeps working when the cache is down or disabled.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(cfg config.RedisConfig) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// The cache can come up after the API in compose environments.
	var lastErr error
	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			return &CacheService{client: client}, nil
		}
		logger.Warn("redis ping failed",
			zap.Int("attempt", i+1),
			zap.Error(lastErr))
		time.Sleep(time.Second)
	}

	return &CacheService{client: nil}, fmt.Errorf("redis ping failed after 5 attempts: %w", lastErr)
}

func (s *CacheService) Available() bool {
	return s != nil && s.client != nil
}

// Get unmarshals the cached value into dest. The second return reports
// whether the key was present.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Available() {
		return false, nil
	}
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Publish(ctx context.Context, channel string, message interface{}) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, channel, data).Err()
}

func (s *CacheService) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	if !s.Available() {
		return nil
	}
	return s.client.Subscribe(ctx, channel)
}

func (s *CacheService) Close() error {
	if !s.Available() {
		return nil
	}
	return s.client.Close()
}
