package strategy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"packaging-quote/core/determinism"
	"packaging-quote/core/tables"
	"packaging-quote/core/types"
	"packaging-quote/internal/errors"
)

var one = decimal.NewFromInt(1)

// Base carries the identity of a family and the shared pipeline defaults.
type Base struct {
	id        string
	supported []string
	minOrder  int
	now       func() time.Time
}

func newBase(id string, minOrder int, supported []string, opts []Option) *Base {
	b := &Base{
		id:        id,
		supported: supported,
		minOrder:  minOrder,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ID returns the registry key
func (b *Base) ID() string { return b.id }

// SupportedTypes returns a copy of the accepted bag type ids
func (b *Base) SupportedTypes() []string {
	return append([]string(nil), b.supported...)
}

// MinOrderQuantity returns the family minimum
func (b *Base) MinOrderQuantity() int { return b.minOrder }

// Run executes the fixed pipeline with the family's stages.
func (b *Base) Run(s Stages, p types.CalculationParams) (types.QuoteResult, error) {
	if p.Quantity <= 0 {
		return types.QuoteResult{}, errors.Pricing(b.id+": quantity must be positive", nil).
			WithContext("quantity", p.Quantity)
	}

	material := s.MaterialCost(p)
	processing := s.ProcessingCost(p)
	printing := b.PrintingCost(p, s.PrintingMeters(p))
	setup := b.SetupCost(p)

	subtotal := material.Add(processing).Add(printing).Add(setup)
	adjusted := subtotal.Mul(b.PostProcessingMultiplier(p))
	if p.HasOption(tables.OptionMatte) {
		adjusted = adjusted.Add(s.MatteSurcharge(p))
	}

	final := ApplyMargins(adjusted)
	delivery := s.DeliveryCost(p)
	total := determinism.CeilToMultiple(final.Add(delivery), tables.BillingUnit)

	return types.QuoteResult{
		StrategyID: b.id,
		UnitPrice:  decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(p.Quantity))),
		TotalPrice: total,
		Currency:   tables.QuoteCurrency,
		Quantity:   p.Quantity,
		Breakdown: types.Breakdown{
			Material:   determinism.RoundWhole(material),
			Processing: determinism.RoundWhole(processing),
			Printing:   determinism.RoundWhole(printing),
			Setup:      determinism.RoundWhole(setup),
			Delivery:   determinism.RoundWhole(delivery),
			Subtotal:   determinism.RoundWhole(subtotal),
			Total:      total,
		},
		LeadTimeDays:     b.LeadTime(p),
		ValidUntil:       b.now().AddDate(0, 0, tables.QuoteValidityDays),
		MinOrderQuantity: b.minOrder,
	}, nil
}

// Convert turns a source-currency amount into the quote currency.
func Convert(source decimal.Decimal) decimal.Decimal {
	return source.Mul(tables.ExchangeRate)
}

// PrintingCost is max(colors × meters × rate, minimum charge), converted.
func (b *Base) PrintingCost(p types.CalculationParams, meters decimal.Decimal) decimal.Decimal {
	rate := tables.LookupPrinting(p.PrintingType)
	colors := decimal.NewFromInt(int64(tables.PrintingColors(p.PrintingColors, p.DoubleSided)))
	cost := decimal.Max(colors.Mul(meters).Mul(rate.PerColorPerMeter), rate.MinimumCharge)
	return Convert(cost)
}

// SetupCost charges the UV setup fee on small lots only.
func (b *Base) SetupCost(p types.CalculationParams) decimal.Decimal {
	if p.IsUVPrinting && p.Quantity < tables.SmallLotThreshold {
		return Convert(tables.UVSetupFee)
	}
	return decimal.Zero
}

// PostProcessingMultiplier is the product of the selected options'
// multipliers, unless the request carries an explicit override.
func (b *Base) PostProcessingMultiplier(p types.CalculationParams) decimal.Decimal {
	if p.PostProcessingMultiplier != nil && *p.PostProcessingMultiplier > 0 {
		return decimal.NewFromFloat(*p.PostProcessingMultiplier)
	}
	m := one
	for _, opt := range p.PostProcessingOptions {
		m = m.Mul(tables.OptionMultiplier(opt))
	}
	return m
}

// MatteSurchargeFor is roll width (m) × matte rate × metres, converted.
func (b *Base) MatteSurchargeFor(rollWidthM, meters decimal.Decimal) decimal.Decimal {
	return Convert(rollWidthM.Mul(tables.MatteCostPerMeter).Mul(meters))
}

// ApplyMargins stacks manufacturer margin, import duty and sales margin.
func ApplyMargins(base decimal.Decimal) decimal.Decimal {
	manufacturer := base.Mul(one.Add(tables.ManufacturerMargin))
	imported := manufacturer.Mul(one.Add(tables.DutyRate))
	return imported.Mul(one.Add(tables.SalesMargin))
}

// BoxDelivery ships weightKg in fixed-price boxes, scaled by destination.
func (b *Base) BoxDelivery(weightKg decimal.Decimal, location string) decimal.Decimal {
	if !weightKg.IsPositive() {
		return decimal.Zero
	}
	boxes := weightKg.Div(tables.PouchBoxMaxKg).Ceil()
	cost := boxes.Mul(tables.PouchBoxCost).Mul(tables.LocationMultiplier(location))
	return Convert(cost)
}

// LeadTime applies the adjustments in order; each floor only guards its own step.
// Finishing adds days only when the options actually raise the price.
func (b *Base) LeadTime(p types.CalculationParams) int {
	days := tables.BaseLeadTimeDays
	if p.IsExpress() {
		days = max(days-tables.ExpressReductionDays, tables.ExpressFloorDays)
	}
	if p.IsUVPrinting {
		days = max(days-tables.UVReductionDays, tables.UVFloorDays)
	}
	switch {
	case p.Quantity >= tables.LargeLotQuantity:
		days += tables.LargeLotExtraDays
	case p.Quantity >= tables.MediumLotQuantity:
		days += tables.MediumLotExtraDays
	}
	if b.PostProcessingMultiplier(p).GreaterThan(one) {
		days += tables.FinishingExtraDays
	}
	return days
}

// ValidateQuantity checks quantity against [minimum, MaxOrderQuantity].
func ValidateQuantity(quantity, minimum int, unit string) []string {
	var errs []string
	if quantity < minimum {
		errs = append(errs, fmt.Sprintf("quantity must be at least %d%s", minimum, unit))
	}
	if quantity > tables.MaxOrderQuantity {
		errs = append(errs, fmt.Sprintf("quantity must not exceed %d%s", tables.MaxOrderQuantity, unit))
	}
	return errs
}

// ValidateDimension checks one dimension against the shared range.
func ValidateDimension(name string, mm float64) []string {
	if mm < tables.MinDimensionMM || mm > tables.MaxDimensionMM {
		return []string{fmt.Sprintf("%s must be between %d and %d mm", name, tables.MinDimensionMM, tables.MaxDimensionMM)}
	}
	return nil
}

// ValidateCommon runs the checks every discrete-product family shares.
func (b *Base) ValidateCommon(p types.CalculationParams) []string {
	var errs []string
	errs = append(errs, ValidateQuantity(p.Quantity, tables.MinOrderQuantity, "")...)
	errs = append(errs, ValidateDimension("width", p.Width)...)
	errs = append(errs, ValidateDimension("height", p.Height)...)
	errs = append(errs, ValidateLayers(p.FilmLayers)...)
	return errs
}
