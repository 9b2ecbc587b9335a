// Package engine provides the quote engine: strategy registry, dispatch,
// validation gate and memoization. CLI and adapters are thin wrappers.
package engine

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"packaging-quote/core/determinism"
	"packaging-quote/core/strategy"
	"packaging-quote/core/types"
	"packaging-quote/internal/errors"
	"packaging-quote/internal/logging"
)

// Engine prices quote requests. The zero value is not usable; call New.
type Engine struct {
	mu         sync.RWMutex
	strategies map[string]strategy.Strategy
	order      []string

	cacheMu    sync.RWMutex
	cache      map[determinism.StableID]types.QuoteResult
	maxEntries int
	inflight   singleflight.Group

	logger *zap.Logger
	now    func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock sets the time source handed to the built-in strategies
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithMaxCacheEntries caps the cache; results beyond the cap are computed
// but not stored. 0 means unbounded.
func WithMaxCacheEntries(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxEntries = n
		}
	}
}

// New creates an engine with the pouch and roll-film strategies registered
func New(opts ...Option) *Engine {
	e := &Engine{
		strategies: make(map[string]strategy.Strategy),
		cache:      make(map[determinism.StableID]types.QuoteResult),
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.RegisterStrategy(strategy.NewPouch(strategy.WithClock(e.now)))
	e.RegisterStrategy(strategy.NewRollFilm(strategy.WithClock(e.now)))
	return e
}

// Validate resolves the strategy for p and runs its validation
func (e *Engine) Validate(p types.CalculationParams) types.ValidationResult {
	s, _ := e.Resolve(p.BagTypeID)
	return s.Validate(p)
}

// CalculatePrice validates p, then returns a cached quote or computes one.
// The returned value never shares state with the cache.
func (e *Engine) CalculatePrice(ctx context.Context, p types.CalculationParams) (types.QuoteResult, error) {
	if err := ctx.Err(); err != nil {
		return types.QuoteResult{}, errors.Internal("quote cancelled", err)
	}

	s, matched := e.Resolve(p.BagTypeID)
	log := e.logger.With(logging.BagType(p.BagTypeID), logging.Strategy(s.ID()), logging.Quantity(p.Quantity))
	if !matched {
		log.Warn("unknown bag type, falling back to pouch strategy")
	}

	if res := s.Validate(p); !res.Valid {
		log.Info("quote rejected", zap.Strings("violations", res.Errors))
		return types.QuoteResult{}, errors.Validation(res.Errors)
	}

	key := CacheKey(s.ID(), p)
	if q, ok := e.lookup(key); ok {
		log.Debug("quote cache hit", zap.String("key", string(key)))
		return q, nil
	}

	v, err, shared := e.inflight.Do(string(key), func() (interface{}, error) {
		if q, ok := e.lookup(key); ok {
			return q, nil
		}
		q, err := s.Calculate(p)
		if err != nil {
			return nil, err
		}
		e.store(key, q)
		return q, nil
	})
	if err != nil {
		return types.QuoteResult{}, err
	}

	q := v.(types.QuoteResult)
	log.Debug("quote computed",
		logging.Total(q.TotalPrice),
		zap.Int("lead_time_days", q.LeadTimeDays),
		zap.Bool("shared", shared))
	return q, nil
}

func (e *Engine) lookup(key determinism.StableID) (types.QuoteResult, bool) {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	q, ok := e.cache[key]
	return q, ok
}

func (e *Engine) store(key determinism.StableID, q types.QuoteResult) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	if e.maxEntries > 0 && len(e.cache) >= e.maxEntries {
		e.logger.Debug("quote cache full, result not stored", zap.Int("entries", len(e.cache)))
		return
	}
	e.cache[key] = q
}

// ClearCache drops every memoized quote
func (e *Engine) ClearCache() {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	e.cache = make(map[determinism.StableID]types.QuoteResult)
}

// CacheSize returns the number of memoized quotes
func (e *Engine) CacheSize() int {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	return len(e.cache)
}

// CacheKey serializes every price-affecting field in a fixed order.
// Post-processing options are sorted so their input order never matters.
func CacheKey(familyID string, p types.CalculationParams) determinism.StableID {
	k := determinism.NewKeyBuilder("quote/v1").
		String("family", familyID).
		String("bag_type", p.BagTypeID).
		String("material", p.MaterialID).
		Float("width", p.Width).
		Float("height", p.Height).
		Float("depth", p.Depth).
		Int("quantity", p.Quantity).
		String("thickness", string(p.ThicknessSelection)).
		Bool("uv", p.IsUVPrinting).
		Strings("options", determinism.SortedStrings(p.PostProcessingOptions)).
		String("printing", p.PrintingType).
		String("delivery", p.DeliveryLocation).
		String("urgency", string(p.Urgency)).
		Ints("skus", p.SKUQuantities).
		Int("colors", p.PrintingColors).
		Bool("double_sided", p.DoubleSided).
		OptionalFloat("multiplier", p.PostProcessingMultiplier)

	layerIDs := make([]string, len(p.FilmLayers))
	for i, l := range p.FilmLayers {
		layerIDs[i] = l.MaterialID + "@" + strconv.FormatFloat(l.Thickness, 'g', -1, 64)
	}
	return k.Strings("layers", layerIDs).ID()
}
