package engine

import (
	"packaging-quote/core/strategy"
	"packaging-quote/internal/logging"
)

// StrategyInfo describes one registered strategy
type StrategyInfo struct {
	ID               string   `json:"id"`
	SupportedTypes   []string `json:"supportedTypes"`
	MinOrderQuantity int      `json:"minOrderQuantity"`
}

// RegisterStrategy adds s under its own id. A later registration with the
// same id replaces the earlier one and keeps its position in the lookup order.
func (e *Engine) RegisterStrategy(s strategy.Strategy) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := s.ID()
	if _, exists := e.strategies[id]; !exists {
		e.order = append(e.order, id)
	} else {
		e.logger.Debug("replacing strategy", logging.Strategy(id))
	}
	e.strategies[id] = s
}

// Resolve picks the strategy for a bag type id: exact id first, then the
// first strategy in registration order that lists it, then the pouch family.
// matched is false when the fallback was used.
func (e *Engine) Resolve(bagTypeID string) (s strategy.Strategy, matched bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if s, ok := e.strategies[bagTypeID]; ok {
		return s, true
	}
	for _, id := range e.order {
		for _, t := range e.strategies[id].SupportedTypes() {
			if t == bagTypeID {
				return e.strategies[id], true
			}
		}
	}
	return e.strategies[strategy.PouchID], false
}

// Strategies lists registered strategies in registration order
func (e *Engine) Strategies() []StrategyInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	infos := make([]StrategyInfo, 0, len(e.order))
	for _, id := range e.order {
		s := e.strategies[id]
		infos = append(infos, StrategyInfo{
			ID:               id,
			SupportedTypes:   s.SupportedTypes(),
			MinOrderQuantity: s.MinOrderQuantity(),
		})
	}
	return infos
}
