package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/covertower/pkg/cache"
	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/pipeline"
	"github.com/matzehuels/covertower/pkg/render"
)

// Config holds the settings read from the config file. Flags override it.
//
// Example config.toml:
//
//	degree = 4
//	format = "png"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
type Config struct {
	Degree int          `toml:"degree"`
	Format string       `toml:"format"`
	Cache  cache.Config `toml:"cache"`
}

func defaultConfig() Config {
	return Config{
		Degree: pipeline.DefaultDegree,
		Format: pipeline.DefaultFormat,
	}
}

// configPath returns the default config file location.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfig reads the config file at path, or at the default location when
// path is empty. A missing default file yields the defaults; a missing
// explicit file is an error. COVERTOWER_REDIS_URL selects the Redis cache.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return applyEnv(cfg), nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case stderrors.Is(err, fs.ErrNotExist) && !explicit:
		return applyEnv(cfg), nil
	case stderrors.Is(err, fs.ErrNotExist):
		return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	case err != nil:
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return applyEnv(cfg), nil
}

func validateConfig(cfg Config) error {
	if err := pipeline.ValidateDegree(cfg.Degree); err != nil {
		return err
	}
	return render.ValidateFormat(cfg.Format)
}

func applyEnv(cfg Config) Config {
	if url := os.Getenv(envRedisURL); url != "" {
		cfg.Cache.Backend = cache.BackendRedis
		cfg.Cache.RedisURL = url
	}
	return cfg
}
