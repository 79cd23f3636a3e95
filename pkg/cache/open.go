package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend  string `toml:"backend" yaml:"backend" json:"backend"`
	Dir      string `toml:"dir" yaml:"dir" json:"dir,omitempty"`
	RedisURL string `toml:"redis_url" yaml:"redis_url" json:"redis_url,omitempty"`
}

// Open returns the backend described by cfg. An empty Backend means
// BackendFile.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis cache: no url configured")
		}
		c, err := NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be one of: file, redis, none)", cfg.Backend)
	}
}
