package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"packaging-quote/core/tables"
	"packaging-quote/core/types"
)

// PouchID is the registry key of the pouch family
const PouchID = "pouch"

// DefaultPouchTypes are the bag type ids the pouch family accepts
var DefaultPouchTypes = []string{
	"flat_3_side", "three_side", "flat_pouch", "zipper",
	"stand_up", "zipper_stand", "t_shape", "m_shape",
	"box", "side_gusset", "spout_pouch",
}

// Pouch prices finished bags cut from a laminated roll.
type Pouch struct {
	*Base
}

var (
	_ Strategy = (*Pouch)(nil)
	_ Stages   = (*Pouch)(nil)
)

// NewPouch creates the pouch strategy
func NewPouch(opts ...Option) *Pouch {
	return &Pouch{Base: newBase(PouchID, tables.MinOrderQuantity, DefaultPouchTypes, opts)}
}

// Validate runs the shared checks plus the pouch rules
func (s *Pouch) Validate(p types.CalculationParams) types.ValidationResult {
	errs := s.ValidateCommon(p)
	if p.Depth < 0 {
		errs = append(errs, "depth must not be negative")
	}
	errs = append(errs, validateSKUs(p)...)
	return types.NewValidationResult(errs)
}

func validateSKUs(p types.CalculationParams) []string {
	if len(p.SKUQuantities) == 0 {
		return nil
	}
	sum := 0
	for i, q := range p.SKUQuantities {
		if q <= 0 {
			return []string{fmt.Sprintf("sku %d quantity must be positive", i+1)}
		}
		sum += q
	}
	if sum != p.Quantity {
		return []string{fmt.Sprintf("sku quantities sum to %d but quantity is %d", sum, p.Quantity)}
	}
	return nil
}

// Calculate runs the pipeline with the pouch stages
func (s *Pouch) Calculate(p types.CalculationParams) (types.QuoteResult, error) {
	return s.Run(s, p)
}

// Pitch is the film length one pouch occupies, in mm.
func (s *Pouch) Pitch(p types.CalculationParams) decimal.Decimal {
	if tables.CanonicalPouchType(p.BagTypeID).FedLengthwise() {
		return decimal.NewFromFloat(p.Height)
	}
	return decimal.NewFromFloat(p.Width)
}

// TotalMeters is the film needed for the order plus the loss allowance.
// Each SKU is a separate print run, so each is rounded up on its own.
func (s *Pouch) TotalMeters(p types.CalculationParams) decimal.Decimal {
	pitch := s.Pitch(p)
	runs := p.SKUQuantities
	if len(runs) == 0 {
		runs = []int{p.Quantity}
	}
	meters := decimal.Zero
	for _, q := range runs {
		// q / (1000 / pitch), kept exact
		meters = meters.Add(decimal.NewFromInt(int64(q)).Mul(pitch).Div(mmPerMeter).Ceil())
	}
	return meters.Add(decimal.NewFromInt(tables.LossMeters))
}

// MaterialCost prices every ply over the total film length
func (s *Pouch) MaterialCost(p types.CalculationParams) decimal.Decimal {
	width := tables.RollWidthMeters(p.Width)
	return Convert(FilmCost(ResolveLayers(p), width, s.TotalMeters(p)))
}

// ProcessingCost is the bag-making minimum plus any zipper surcharge
func (s *Pouch) ProcessingCost(p types.CalculationParams) decimal.Decimal {
	pricing := tables.LookupPouchProcessing(tables.CanonicalPouchType(p.BagTypeID))
	cost := pricing.MinimumPrice
	if p.HasOption(tables.OptionZipper, tables.OptionZipperYes) {
		cost = cost.Add(pricing.ZipperSurcharge)
	}
	return Convert(cost)
}

// PrintingMeters equals the material length so both stages stay consistent
func (s *Pouch) PrintingMeters(p types.CalculationParams) decimal.Decimal {
	return s.TotalMeters(p)
}

// MatteSurcharge uses the pouch film length
func (s *Pouch) MatteSurcharge(p types.CalculationParams) decimal.Decimal {
	return s.MatteSurchargeFor(tables.RollWidthMeters(p.Width), s.TotalMeters(p))
}

// DeliveryCost ships the finished pouches by weight
func (s *Pouch) DeliveryCost(p types.CalculationParams) decimal.Decimal {
	return s.BoxDelivery(s.ShipmentWeightKg(p), p.DeliveryLocation)
}

// ShipmentWeightKg estimates finished-pouch weight from (width+15) × height per pouch.
func (s *Pouch) ShipmentWeightKg(p types.CalculationParams) decimal.Decimal {
	width := decimal.NewFromFloat(p.Width).Add(tables.PouchSealMarginMM)
	areaM2 := width.Mul(decimal.NewFromFloat(p.Height)).Div(mm2PerM2)
	// a 1 m wide strip of areaM2 metres has the pouch's area
	perPouch := FilmWeightKg(ResolveLayers(p), one, areaM2)
	return perPouch.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
