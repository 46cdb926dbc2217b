// Package observability lets the CLI watch outbound API traffic.
//
// The integrations client reports every GitHub and PyPI request, and every
// cache decision in front of them, through the hooks registered here. The
// defaults do nothing. The CLI registers [LogHooks] so that --verbose shows
// which license texts and package names were fetched and which came from
// the cache:
//
//	observability.Register(observability.NewLogHooks(logger))
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// CacheHooks receives cache decisions. source is the client's key prefix,
// such as "github:" or "pypi:".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, source string)
	OnCacheMiss(ctx context.Context, source string)
	OnCacheSet(ctx context.Context, source string, size int)
}

// HTTPHooks receives request lifecycle events.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError is called when no response arrived at all.
	OnError(ctx context.Context, method, host, path string, err error)
}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// registered wraps an interface value so it can live in an atomic.Pointer.
type registered[T any] struct{ hooks T }

var (
	cacheHooks atomic.Pointer[registered[CacheHooks]]
	httpHooks  atomic.Pointer[registered[HTTPHooks]]
)

func init() { Reset() }

// SetCacheHooks replaces the cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.Store(&registered[CacheHooks]{h})
	}
}

// SetHTTPHooks replaces the HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpHooks.Store(&registered[HTTPHooks]{h})
	}
}

// Register installs h for every hook kind it implements.
func Register(h any) {
	if c, ok := h.(CacheHooks); ok {
		SetCacheHooks(c)
	}
	if c, ok := h.(HTTPHooks); ok {
		SetHTTPHooks(c)
	}
}

func Cache() CacheHooks { return cacheHooks.Load().hooks }

func HTTP() HTTPHooks { return httpHooks.Load().hooks }

// Reset restores the no-op hooks.
func Reset() {
	cacheHooks.Store(&registered[CacheHooks]{NoopCacheHooks{}})
	httpHooks.Store(&registered[HTTPHooks]{NoopHTTPHooks{}})
}
