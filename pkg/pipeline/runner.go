package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/covertower/pkg/cache"
	"github.com/matzehuels/covertower/pkg/errors"
	cio "github.com/matzehuels/covertower/pkg/io"
	"github.com/matzehuels/covertower/pkg/observability"
	"github.com/matzehuels/covertower/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// EnumerateWithCacheInfo loads the presentation and enumerates its covers
// at opts.Degree, consulting the cache first unless opts.Refresh is set.
// Cache failures are logged and treated as misses.
func (r *Runner) EnumerateWithCacheInfo(ctx context.Context, opts Options) (*Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	p, err := LoadPresentation(opts)
	if err != nil {
		return nil, false, fmt.Errorf("load: %w", err)
	}
	res := &Result{Presentation: p, Hash: cache.HashString(p.String())}
	key := r.Keyer.CoversKey(res.Hash, opts.CoversKeyOpts())
	hooks := observability.Enumeration()
	cacheHooks := observability.Cache()
	start := time.Now()

	if !opts.Refresh {
		var export cio.CoverExport
		err := cache.GetJSON(ctx, r.Cache, key, &export)
		switch {
		case err == nil:
			found, err := rebuildCovers(p, &export)
			if err == nil {
				cacheHooks.OnCacheHit(ctx, "covers")
				res.Export, res.Covers, res.CacheHit = &export, found, true
				res.Stats.Duration = time.Since(start)
				return res, true, nil
			}
			r.Logger.Debug("discarding cached covers", "err", err)
			_ = r.Cache.Delete(ctx, key)
		case !stderrors.Is(err, cache.ErrCacheMiss):
			r.Logger.Debug("cache read failed", "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, "covers")
	}

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	hooks.OnEnumerateStart(ctx, res.Hash, opts.Degree)
	found, truncated, stats, err := Search(p, opts)
	res.Stats.Duration = time.Since(start)
	hooks.OnEnumerateComplete(ctx, res.Hash, opts.Degree, len(found), res.Stats.Duration, err)
	if err != nil {
		return nil, false, fmt.Errorf("enumerate: %w", err)
	}
	res.Covers = found
	res.Stats.Search = stats
	res.Export = cio.NewExport(p, opts.Degree, found)
	res.Export.Truncated = truncated

	r.Logger.Info("enumerated covers",
		"degree", opts.Degree,
		"covers", len(found),
		"truncated", truncated,
		"duration", res.Stats.Duration)

	if err := cache.SetJSON(ctx, r.Cache, key, res.Export, DefaultCacheTTL); err != nil {
		r.Logger.Debug("cache write failed", "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, "covers", len(found))
	}
	return res, false, nil
}

// Enumerate is a convenience wrapper that calls EnumerateWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Enumerate(ctx context.Context, opts Options) (*Result, error) {
	res, _, err := r.EnumerateWithCacheInfo(ctx, opts)
	return res, err
}

// EnumerateRange enumerates every degree in degrees concurrently. Results
// are returned in the order of degrees. The first failure cancels the
// remaining work that has not started.
func (r *Runner) EnumerateRange(ctx context.Context, opts Options, degrees []int) ([]*Result, error) {
	results := make([]*Result, len(degrees))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, d := range degrees {
		g.Go(func() error {
			o := opts
			o.Degree = d
			o.validated = false
			res, err := r.Enumerate(ctx, o)
			if err != nil {
				return fmt.Errorf("degree %d: %w", d, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RenderWithCacheInfo draws cover opts.Cover of res in opts.Format and
// returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if opts.Cover >= len(res.Covers) {
		return nil, false, errors.New(errors.ErrCodeNotFound, "cover %d not found (%d covers)", opts.Cover, len(res.Covers))
	}
	c := res.Covers[opts.Cover]
	cacheHooks := observability.Cache()

	key := r.Keyer.ArtifactKey(cache.HashString(res.Hash+"\n"+c.String()), opts.ArtifactKeyOpts())
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		cacheHooks.OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	cacheHooks.OnCacheMiss(ctx, "artifact")

	start := time.Now()
	data, err := render.Render(ctx, c, opts.Format, opts.RenderOptions())
	observability.Enumeration().OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("render: %w", err)
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Debug("cache write failed", "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
