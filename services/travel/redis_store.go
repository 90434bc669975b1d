package travel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"glowslots/models"

	"github.com/go-redis/redis/v8"
)

// RedisStore shares estimates between instances. Values are JSON encoded.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (models.TravelEstimate, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.TravelEstimate{}, false, nil
	}
	if err != nil {
		return models.TravelEstimate{}, false, fmt.Errorf("failed to read travel cache key %s: %w", key, err)
	}
	var est models.TravelEstimate
	if err := json.Unmarshal(raw, &est); err != nil {
		return models.TravelEstimate{}, false, fmt.Errorf("failed to decode travel cache key %s: %w", key, err)
	}
	return est, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, est models.TravelEstimate, ttl time.Duration) error {
	raw, err := json.Marshal(est)
	if err != nil {
		return fmt.Errorf("failed to encode travel estimate: %w", err)
	}
	if err := s.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write travel cache key %s: %w", key, err)
	}
	return nil
}
