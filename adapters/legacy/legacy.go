// Package legacy translates the older quote request and result shapes
// to and from the engine's canonical types. Older callers used their own
// material and bag type ids, a free thickness value and a flat result
// with a fixed/variable cost split.
package legacy

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"packaging-quote/core/tables"
	"packaging-quote/core/types"
	"packaging-quote/internal/logging"
)

// Params is the older request shape
type Params struct {
	BagTypeID  string  `json:"bagTypeId"`
	MaterialID string  `json:"materialId"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Depth      float64 `json:"depth,omitempty"`
	Quantity   int     `json:"quantity"`

	// Thickness is the total sealant thickness in µm; only used when
	// ThicknessSelection and ThicknessMultiplier are both empty
	Thickness           float64 `json:"thickness,omitempty"`
	ThicknessSelection  string  `json:"thicknessSelection,omitempty"`
	ThicknessMultiplier float64 `json:"thicknessMultiplier,omitempty"`

	IsUVPrinting             bool     `json:"isUVPrinting,omitempty"`
	PostProcessingOptions    []string `json:"postProcessingOptions,omitempty"`
	PostProcessingMultiplier float64  `json:"postProcessingMultiplier,omitempty"`
	PrintingType             string   `json:"printingType,omitempty"`
	PrintingColors           int      `json:"printingColors,omitempty"`
	DoubleSided              bool     `json:"doubleSided,omitempty"`
	DeliveryLocation         string   `json:"deliveryLocation,omitempty"`
	Urgency                  string   `json:"urgency,omitempty"`
}

// Breakdown mirrors types.Breakdown in the older field order
type Breakdown struct {
	Material   int64 `json:"material"`
	Processing int64 `json:"processing"`
	Printing   int64 `json:"printing"`
	Setup      int64 `json:"setup"`
	Discount   int64 `json:"discount"`
	Delivery   int64 `json:"delivery"`
	Subtotal   int64 `json:"subtotal"`
	Total      int64 `json:"total"`
}

// Details is the fixed/variable split older dashboards expect
type Details struct {
	FixedCost           int64   `json:"fixedCost"`
	VariableCostPerUnit float64 `json:"variableCostPerUnit"`
	Surcharge           int64   `json:"surcharge"`
	Area                float64 `json:"area"`
}

// Result is the older result shape
type Result struct {
	UnitPrice        float64   `json:"unitPrice"`
	TotalPrice       int64     `json:"totalPrice"`
	Currency         string    `json:"currency"`
	Breakdown        Breakdown `json:"breakdown"`
	LeadTimeDays     int       `json:"leadTimeDays"`
	ValidUntil       time.Time `json:"validUntil"`
	MinOrderQuantity int       `json:"minOrderQuantity"`
	Details          Details   `json:"details"`

	ThicknessMultiplier      float64 `json:"thicknessMultiplier"`
	SelectedThicknessName    string  `json:"selectedThicknessName"`
	PostProcessingMultiplier float64 `json:"postProcessingMultiplier"`

	// MinimumPriceApplied is always false: per-stage minimums replaced
	// the old flat price floor
	MinimumPriceApplied bool `json:"minimumPriceApplied"`
}

var materialAliases = map[string]string{
	"opp-alu-foil":    "pet_al",
	"alu-vapor":       "pet_vmpet",
	"pet-transparent": "pet_ldpe",
	"kraft-pe":        "pet_ldpe",
}

var bagTypeAliases = map[string]string{
	"flat-pouch":     "flat_3_side",
	"standing-pouch": "stand_up",
	"gusset":         "box",
	"flat_with_zip":  "flat_3_side",
	"soft_pouch":     "flat_3_side",
}

var thicknessNames = map[types.ThicknessSelection]string{
	types.ThicknessLight:    "Light Weight (~100g)",
	types.ThicknessMedium:   "Standard (~500g)",
	types.ThicknessStandard: "Standard (~500g)",
	types.ThicknessHeavy:    "Heavy Duty (~800g)",
	types.ThicknessUltra:    "Ultra Heavy (800g+)",
}

// ToParams converts an older request to CalculationParams
func ToParams(lp Params) types.CalculationParams {
	p := types.CalculationParams{
		BagTypeID:             lp.BagTypeID,
		MaterialID:            lp.MaterialID,
		Width:                 lp.Width,
		Height:                lp.Height,
		Depth:                 lp.Depth,
		Quantity:              lp.Quantity,
		ThicknessSelection:    thicknessSelection(lp),
		IsUVPrinting:          lp.IsUVPrinting,
		PostProcessingOptions: append([]string(nil), lp.PostProcessingOptions...),
		PrintingType:          lp.PrintingType,
		PrintingColors:        lp.PrintingColors,
		DoubleSided:           lp.DoubleSided,
		DeliveryLocation:      lp.DeliveryLocation,
		Urgency:               types.Urgency(lp.Urgency),
	}

	if id, ok := materialAliases[lp.MaterialID]; ok {
		p.MaterialID = id
	}
	if id, ok := bagTypeAliases[lp.BagTypeID]; ok {
		p.BagTypeID = id
	}
	if lp.BagTypeID == "flat_with_zip" && !p.HasOption(tables.OptionZipper, tables.OptionZipperYes) {
		p.PostProcessingOptions = append(p.PostProcessingOptions, tables.OptionZipper)
	}
	if lp.PostProcessingMultiplier > 0 {
		m := lp.PostProcessingMultiplier
		p.PostProcessingMultiplier = &m
	}
	return p
}

func thicknessSelection(lp Params) types.ThicknessSelection {
	switch {
	case lp.ThicknessSelection != "":
		return types.ThicknessSelection(lp.ThicknessSelection)
	case lp.ThicknessMultiplier > 0:
		switch {
		case lp.ThicknessMultiplier <= 0.95:
			return types.ThicknessLight
		case lp.ThicknessMultiplier <= 1.05:
			return types.ThicknessMedium
		case lp.ThicknessMultiplier <= 1.15:
			return types.ThicknessHeavy
		default:
			return types.ThicknessUltra
		}
	case lp.Thickness > 0:
		// old sealant gauges: 60, 80, 100, 120 µm
		switch {
		case lp.Thickness <= 70:
			return types.ThicknessLight
		case lp.Thickness <= 90:
			return types.ThicknessMedium
		case lp.Thickness <= 110:
			return types.ThicknessHeavy
		default:
			return types.ThicknessUltra
		}
	}
	return ""
}

// FromQuote converts a quote for p to the older result shape
func FromQuote(q types.QuoteResult, p types.CalculationParams) Result {
	b := q.Breakdown
	fixed := b.Setup + b.Processing

	variable := decimal.Zero
	if q.Quantity > 0 {
		variable = decimal.NewFromInt(q.TotalPrice - fixed).Div(decimal.NewFromInt(int64(q.Quantity)))
	}

	name, ok := thicknessNames[p.ThicknessSelection]
	if !ok {
		name = thicknessNames[types.ThicknessMedium]
	}

	return Result{
		UnitPrice:        q.UnitPrice.InexactFloat64(),
		TotalPrice:       q.TotalPrice,
		Currency:         q.Currency.String(),
		Breakdown:        Breakdown(b),
		LeadTimeDays:     q.LeadTimeDays,
		ValidUntil:       q.ValidUntil,
		MinOrderQuantity: q.MinOrderQuantity,
		Details: Details{
			FixedCost:           fixed,
			VariableCostPerUnit: variable.InexactFloat64(),
			Surcharge:           b.Total - b.Subtotal - b.Delivery,
			Area:                p.Width * p.Height / 1e6,
		},
		ThicknessMultiplier:      tables.ThicknessMultiplier(p.ThicknessSelection).InexactFloat64(),
		SelectedThicknessName:    name,
		PostProcessingMultiplier: optionsMultiplier(p).InexactFloat64(),
	}
}

func optionsMultiplier(p types.CalculationParams) decimal.Decimal {
	if p.PostProcessingMultiplier != nil && *p.PostProcessingMultiplier > 0 {
		return decimal.NewFromFloat(*p.PostProcessingMultiplier)
	}
	m := decimal.NewFromInt(1)
	for _, opt := range p.PostProcessingOptions {
		m = m.Mul(tables.OptionMultiplier(opt))
	}
	return m
}

// Quoter prices canonical requests; *engine.Engine satisfies it
type Quoter interface {
	CalculatePrice(ctx context.Context, p types.CalculationParams) (types.QuoteResult, error)
}

// Adapter serves older callers on top of a Quoter
type Adapter struct {
	quoter Quoter
	logger *zap.Logger
}

// New creates an adapter; a nil logger disables logging
func New(q Quoter, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{quoter: q, logger: logger.Named("legacy")}
}

// Quote translates lp, prices it and translates the result back
func (a *Adapter) Quote(ctx context.Context, lp Params) (Result, error) {
	p := ToParams(lp)
	if p.MaterialID != lp.MaterialID || p.BagTypeID != lp.BagTypeID {
		a.logger.Debug("translated legacy ids",
			zap.String("material", lp.MaterialID+" -> "+p.MaterialID),
			logging.BagType(lp.BagTypeID+" -> "+p.BagTypeID))
	}

	q, err := a.quoter.CalculatePrice(ctx, p)
	if err != nil {
		return Result{}, err
	}
	return FromQuote(q, p), nil
}
