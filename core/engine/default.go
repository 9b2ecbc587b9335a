package engine

import (
	"context"
	"sync"

	"packaging-quote/core/strategy"
	"packaging-quote/core/types"
)

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the shared process-wide engine, creating it on first use.
// Prefer New and pass the engine explicitly; Default exists for callers
// that have nowhere to keep one.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// CalculatePrice prices p with the default engine
func CalculatePrice(ctx context.Context, p types.CalculationParams) (types.QuoteResult, error) {
	return Default().CalculatePrice(ctx, p)
}

// RegisterStrategy registers s with the default engine
func RegisterStrategy(s strategy.Strategy) {
	Default().RegisterStrategy(s)
}

// ClearCache clears the default engine cache
func ClearCache() {
	Default().ClearCache()
}

// CacheSize returns the default engine cache size
func CacheSize() int {
	return Default().CacheSize()
}
