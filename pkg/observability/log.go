package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log
// lines.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// OnEnumerateStart logs the start of a search.
func (h *LogHooks) OnEnumerateStart(_ context.Context, presentation string, degree int) {
	h.logger.Debug("enumeration started", "presentation", short(presentation), "degree", degree)
}

// OnEnumerateComplete logs the outcome of a search.
func (h *LogHooks) OnEnumerateComplete(_ context.Context, presentation string, degree, covers int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("enumeration failed", "presentation", short(presentation), "degree", degree, "err", err)
		return
	}
	h.logger.Debug("enumeration finished", "presentation", short(presentation), "degree", degree,
		"covers", covers, "duration", duration)
}

// OnRenderComplete logs a rendering.
func (h *LogHooks) OnRenderComplete(_ context.Context, format string, size int, duration time.Duration, err error) {
	h.logger.Debug("rendered cover", "format", format, "bytes", size, "duration", duration, "err", err)
}

// OnCacheHit logs a hit.
func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

// OnCacheMiss logs a miss.
func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

// OnCacheSet logs a write.
func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "size", size)
}

// OnRequest logs an incoming request.
func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

// OnResponse logs a response.
func (h *LogHooks) OnResponse(_ context.Context, method, path string, statusCode int, duration time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", statusCode, "duration", duration)
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

var (
	_ EnumerationHooks = (*LogHooks)(nil)
	_ CacheHooks       = (*LogHooks)(nil)
	_ HTTPHooks        = (*LogHooks)(nil)
)
