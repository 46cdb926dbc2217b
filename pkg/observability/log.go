package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports cache and HTTP events to a logger at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to l. Nil uses log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnCacheHit(_ context.Context, source string) {
	h.logger.Debug("cache hit", "source", source)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, source string) {
	h.logger.Debug("cache miss", "source", source)
}

func (h *LogHooks) OnCacheSet(_ context.Context, source string, size int) {
	h.logger.Debug("cache store", "source", source, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path,
		"status", status, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "error", err)
}

var (
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
