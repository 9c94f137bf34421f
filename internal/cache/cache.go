package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache is the content cache contract. Implementations are best-effort:
// every failure degrades to a miss or a no-op, never to an error on the
// caller's primary path.
type Cache interface {
	// Get returns the raw value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Invalidate removes every key matching pattern. A trailing '*' makes
	// the pattern a prefix match; otherwise it is an exact key.
	Invalidate(ctx context.Context, pattern string)
}

// GetJSON reads key and decodes it into out. A decode failure counts as a
// miss so a stale or corrupt entry can never poison a read.
func GetJSON[T any](ctx context.Context, c Cache, key string, out *T) bool {
	raw, ok := c.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache entry failed to decode, treating as miss")
		c.Invalidate(ctx, key)
		return false
	}
	return true
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache value failed to encode, skipping set")
		return
	}
	c.Set(ctx, key, raw, ttl)
}
