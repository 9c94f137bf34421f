package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Harish8848/bhasaguru-sub001/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisCache backs the content cache with a shared redis instance. All
// operations swallow connectivity errors: a broken cache must only cost
// performance, never correctness.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis get failed, treating as miss")
		return nil, false
	}
	return raw, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis set failed, skipping")
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, pattern string) {
	if !strings.HasSuffix(pattern, "*") {
		if err := c.client.Del(ctx, pattern).Err(); err != nil {
			log.Warn().Err(err).Str("key", pattern).Msg("Redis delete failed, skipping")
		}
		return
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("Redis scan failed, aborting invalidation")
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				log.Warn().Err(err).Str("pattern", pattern).Msg("Redis delete failed during invalidation")
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
