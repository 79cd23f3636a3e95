package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GetJSON reads key from c and decodes it into v. It returns [ErrCacheMiss]
// when the key is absent. An entry that no longer decodes is deleted and
// reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !hit {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return ErrCacheMiss
	}
	return nil
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	return c.Set(ctx, key, data, ttl)
}
