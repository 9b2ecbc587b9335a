// Package strategy implements the per-family cost pipelines.
//
// Every family shares one fixed pipeline (see Base.Run). A family supplies
// the stages that differ through the Stages interface and keeps the shared
// defaults for the rest.
package strategy

import (
	"time"

	"github.com/shopspring/decimal"

	"packaging-quote/core/types"
)

// Strategy prices one product family.
type Strategy interface {
	// ID is the unique registry key
	ID() string

	// SupportedTypes lists the bag type ids this family accepts
	SupportedTypes() []string

	// MinOrderQuantity is the family's own minimum (units or metres)
	MinOrderQuantity() int

	// Validate checks params and reports every violation
	Validate(p types.CalculationParams) types.ValidationResult

	// Calculate prices params; callers must validate first
	Calculate(p types.CalculationParams) (types.QuoteResult, error)
}

// Stages are the family-specific pipeline steps. Every amount is already
// converted into the quote currency.
type Stages interface {
	// MaterialCost is the raw film or laminate consumed
	MaterialCost(p types.CalculationParams) decimal.Decimal

	// ProcessingCost is bag making, or lamination and slitting
	ProcessingCost(p types.CalculationParams) decimal.Decimal

	// PrintingMeters is the film length the printing stage is charged on
	PrintingMeters(p types.CalculationParams) decimal.Decimal

	// MatteSurcharge is only called when matte is selected
	MatteSurcharge(p types.CalculationParams) decimal.Decimal

	// DeliveryCost prices shipping from the physical weight
	DeliveryCost(p types.CalculationParams) decimal.Decimal
}

// Option configures a strategy
type Option func(*Base)

// WithClock sets the time source used for the quote validity window
func WithClock(now func() time.Time) Option {
	return func(b *Base) {
		if now != nil {
			b.now = now
		}
	}
}

// WithSupportedTypes replaces the bag type ids a strategy accepts
func WithSupportedTypes(ids ...string) Option {
	return func(b *Base) {
		b.supported = append([]string(nil), ids...)
	}
}
