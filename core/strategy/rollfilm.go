package strategy

import (
	"github.com/shopspring/decimal"

	"packaging-quote/core/tables"
	"packaging-quote/core/types"
)

// RollFilmID is the registry key of the roll-film family
const RollFilmID = "roll_film"

// DefaultRollFilmTypes are the bag type ids the roll-film family accepts
var DefaultRollFilmTypes = []string{"roll_film", "film_roll", "roll"}

// RollFilm prices continuous laminated film sold by the metre.
type RollFilm struct {
	*Base
}

var (
	_ Strategy = (*RollFilm)(nil)
	_ Stages   = (*RollFilm)(nil)
)

// NewRollFilm creates the roll-film strategy
func NewRollFilm(opts ...Option) *RollFilm {
	return &RollFilm{Base: newBase(RollFilmID, tables.RollFilmMinMeters, DefaultRollFilmTypes, opts)}
}

// Validate replaces the shared checks: a roll has no height and its
// minimum is measured in metres.
func (s *RollFilm) Validate(p types.CalculationParams) types.ValidationResult {
	var errs []string
	errs = append(errs, ValidateQuantity(p.Quantity, tables.RollFilmMinMeters, " m")...)
	errs = append(errs, ValidateDimension("width", p.Width)...)
	errs = append(errs, ValidateLayers(p.FilmLayers)...)
	return types.NewValidationResult(errs)
}

// Calculate runs the pipeline with the roll-film stages
func (s *RollFilm) Calculate(p types.CalculationParams) (types.QuoteResult, error) {
	return s.Run(s, p)
}

// TotalMeters is the ordered length plus the loss allowance
func (s *RollFilm) TotalMeters(p types.CalculationParams) decimal.Decimal {
	return decimal.NewFromInt(int64(p.Quantity + tables.LossMeters))
}

// MaterialCost prices every ply over the total film length
func (s *RollFilm) MaterialCost(p types.CalculationParams) decimal.Decimal {
	width := tables.RollWidthMeters(p.Width)
	return Convert(FilmCost(ResolveLayers(p), width, s.TotalMeters(p)))
}

// ProcessingCost is lamination for every bond between plies plus slitting
func (s *RollFilm) ProcessingCost(p types.CalculationParams) decimal.Decimal {
	layers := ResolveLayers(p)
	meters := s.TotalMeters(p)

	lamination := decimal.Zero
	if bonds := len(layers) - 1; bonds > 0 {
		rate := tables.LaminationPerMeter
		if HasBarrierFoil(layers) {
			rate = tables.FoilLaminationPerMeter
		}
		lamination = tables.RollWidthMeters(p.Width).Mul(meters).Mul(rate).Mul(decimal.NewFromInt(int64(bonds)))
	}

	slitting := decimal.Max(tables.SlittingMinimumCharge, meters.Mul(tables.SlittingPerMeter))
	return Convert(lamination.Add(slitting))
}

// PrintingMeters is the full length including loss
func (s *RollFilm) PrintingMeters(p types.CalculationParams) decimal.Decimal {
	return s.TotalMeters(p)
}

// MatteSurcharge uses the roll-film length
func (s *RollFilm) MatteSurcharge(p types.CalculationParams) decimal.Decimal {
	return s.MatteSurchargeFor(tables.RollWidthMeters(p.Width), s.TotalMeters(p))
}

// DeliveredWeightKg weighs the shipped film only; loss film stays at the plant.
func (s *RollFilm) DeliveredWeightKg(p types.CalculationParams) decimal.Decimal {
	meters := decimal.NewFromInt(int64(p.Quantity))
	return FilmWeightKg(ResolveLayers(p), tables.RollWidthMeters(p.Width), meters)
}

// DeliveryCost splits the shipment into packages and prices each by bracket
func (s *RollFilm) DeliveryCost(p types.CalculationParams) decimal.Decimal {
	cost := decimal.Zero
	for _, pkg := range tables.SplitPackages(s.DeliveredWeightKg(p), tables.RollFilmPackageMaxKg) {
		cost = cost.Add(tables.BracketFor(pkg).Cost)
	}
	cost = cost.Mul(one.Add(tables.RollFilmDeliverySurcharge))
	return Convert(cost)
}
