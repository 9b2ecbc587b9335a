package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyJPY Currency = "JPY"
	CurrencyKRW Currency = "KRW"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Breakdown itemizes a quote. Every field is in the quote currency,
// rounded to whole units.
type Breakdown struct {
	Material   int64 `json:"material"`
	Processing int64 `json:"processing"`
	Printing   int64 `json:"printing"`
	Setup      int64 `json:"setup"`
	Discount   int64 `json:"discount"`
	Delivery   int64 `json:"delivery"`

	// Subtotal is material+processing+printing+setup, before delivery and discount
	Subtotal int64 `json:"subtotal"`

	// Total always equals QuoteResult.TotalPrice
	Total int64 `json:"total"`
}

// QuoteResult is a fully itemized quote. It holds no reference types,
// so a plain value copy never shares state with the engine cache.
type QuoteResult struct {
	// StrategyID is the product family that priced the request
	StrategyID string `json:"strategyId"`

	// UnitPrice is TotalPrice / Quantity, unrounded
	UnitPrice decimal.Decimal `json:"unitPrice"`

	// TotalPrice is a multiple of the billing unit
	TotalPrice int64    `json:"totalPrice"`
	Currency   Currency `json:"currency"`
	Quantity   int      `json:"quantity"`

	Breakdown Breakdown `json:"breakdown"`

	LeadTimeDays     int       `json:"leadTimeDays"`
	ValidUntil       time.Time `json:"validUntil"`
	MinOrderQuantity int       `json:"minOrderQuantity"`
}

// ValidationResult lists rule violations in the order they were found.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidationResult builds a result from collected violations.
func NewValidationResult(violations []string) ValidationResult {
	if len(violations) == 0 {
		return ValidationResult{Valid: true}
	}
	return ValidationResult{Valid: false, Errors: violations}
}
