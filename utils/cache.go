// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"glowslots/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient backs the shared travel estimate cache.
var CacheClient *redis.Client

// InitCache connects to the cache database configured in AppConfig.
func InitCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the cache client, or nil when Redis is unreachable.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		if err := InitCache(); err != nil {
			GetLogger().Sugar().Warnf("cache: %v", err)
			return nil
		}
	}
	return CacheClient
}
