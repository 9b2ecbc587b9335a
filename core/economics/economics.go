// Package economics suggests order quantities that use film more efficiently.
// It works on the output of a quote and never changes a price on its own.
package economics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"packaging-quote/core/tables"
	"packaging-quote/internal/errors"
)

const (
	// MinimumFilmUsage is the smallest run: 500 m secured plus the loss allowance
	MinimumFilmUsage = 900

	// RollMarginMM is unusable edge trim across a raw roll
	RollMarginMM = 20

	// RecommendUtilization marks parallel options worth recommending
	RecommendUtilization = 75.0
)

var (
	secondUnitShare  = decimal.RequireFromString("0.6")
	furtherUnitShare = decimal.RequireFromString("0.3")
	filmShare        = decimal.RequireFromString("0.7")
	otherShare       = decimal.RequireFromString("0.3")
	hundred          = decimal.NewFromInt(100)
)

// Recommendation classifies a suggestion
type Recommendation string

const (
	// RecommendEconomic means switching costs at most 10 % extra units
	RecommendEconomic Recommendation = "economic"
	// RecommendEither means 10 to 30 % extra units; offer both
	RecommendEither Recommendation = "either"
	// RecommendOrder means keep the ordered quantity
	RecommendOrder Recommendation = "order"
)

// QuantitySuggestion compares the ordered quantity with the quantity the
// minimum film run yields anyway.
type QuantitySuggestion struct {
	OrderQuantity       int             `json:"orderQuantity"`
	PouchesPerMeter     decimal.Decimal `json:"pouchesPerMeter"`
	EconomicQuantity    int             `json:"economicQuantity"`
	EconomicFilmUsage   int             `json:"economicFilmUsage"`
	WasteRate           decimal.Decimal `json:"wasteRate"`
	UnitPriceAtOrder    decimal.Decimal `json:"unitPriceAtOrder"`
	UnitPriceAtEconomic decimal.Decimal `json:"unitPriceAtEconomic"`
	Recommendation      Recommendation  `json:"recommendation"`
	RecommendedQuantity int             `json:"recommendedQuantity"`
	Reason              string          `json:"reason"`
}

// SuggestQuantity computes the economic quantity for a pouch of the given
// pitch (mm). totalPrice is the quote total for orderQuantity.
func SuggestQuantity(orderQuantity int, pitchMM float64, totalPrice int64) (QuantitySuggestion, error) {
	if orderQuantity <= 0 || pitchMM <= 0 {
		return QuantitySuggestion{}, errors.Newf(errors.TypeInput, "order quantity and pitch must be positive (got %d, %g)", orderQuantity, pitchMM)
	}

	perMeter := decimal.NewFromInt(1000).Div(decimal.NewFromFloat(pitchMM))
	economic := int(decimal.NewFromInt(MinimumFilmUsage).Mul(decimal.NewFromInt(1000)).
		Div(decimal.NewFromFloat(pitchMM)).Floor().IntPart())

	order := decimal.NewFromInt(int64(orderQuantity))
	total := decimal.NewFromInt(totalPrice)
	s := QuantitySuggestion{
		OrderQuantity:       orderQuantity,
		PouchesPerMeter:     perMeter,
		EconomicQuantity:    economic,
		EconomicFilmUsage:   MinimumFilmUsage,
		UnitPriceAtOrder:    total.Div(order),
		UnitPriceAtEconomic: total.Div(decimal.NewFromInt(int64(max(economic, 1)))),
	}

	if economic <= orderQuantity {
		s.WasteRate = decimal.Zero
		s.Recommendation = RecommendOrder
		s.RecommendedQuantity = orderQuantity
		s.Reason = fmt.Sprintf("order of %d already exceeds the minimum run of %d", orderQuantity, economic)
		return s, nil
	}

	extra := economic - orderQuantity
	s.WasteRate = decimal.NewFromInt(int64(extra)).Div(decimal.NewFromInt(int64(economic))).Mul(hundred)
	switch {
	case s.WasteRate.LessThanOrEqual(decimal.NewFromInt(10)):
		s.Recommendation = RecommendEconomic
		s.RecommendedQuantity = economic
		s.Reason = fmt.Sprintf("%d → %d units uses the same film (%d extra, %s%%)", orderQuantity, economic, extra, s.WasteRate.StringFixed(1))
	case s.WasteRate.LessThanOrEqual(decimal.NewFromInt(30)):
		s.Recommendation = RecommendEither
		s.RecommendedQuantity = orderQuantity
		s.Reason = fmt.Sprintf("%d as ordered, or %d for the same film (%s%% extra)", orderQuantity, economic, s.WasteRate.StringFixed(1))
	default:
		s.Recommendation = RecommendOrder
		s.RecommendedQuantity = orderQuantity
		s.Reason = fmt.Sprintf("keep %d; the economic quantity would add %s%% unwanted units", orderQuantity, s.WasteRate.StringFixed(1))
	}
	return s, nil
}

// ParallelDiscount prices count identical runs made side by side:
// the first at full price, the second at 60 %, each further one at 30 %.
func ParallelDiscount(base decimal.Decimal, count int) decimal.Decimal {
	if count <= 1 {
		return base
	}
	total := base.Add(base.Mul(secondUnitShare))
	if count > 2 {
		total = total.Add(base.Mul(furtherUnitShare).Mul(decimal.NewFromInt(int64(count - 2))))
	}
	return total
}

// ParallelOption is one way to run several rolls across a raw roll.
type ParallelOption struct {
	Count         int             `json:"count"`
	RollWidthMM   int             `json:"rollWidthMm"`
	Utilization   decimal.Decimal `json:"utilization"`
	EstimatedUnit decimal.Decimal `json:"estimatedUnitCost"`
	SavingsRate   decimal.Decimal `json:"savingsRate"`
	Recommended   bool            `json:"recommended"`
}

// FilmWidthMM is the width of film one product occupies across the roll.
// ok is false for shapes that are not produced in parallel.
func FilmWidthMM(pouchType tables.PouchType, rollFilm bool, width, depth float64) (float64, bool) {
	switch {
	case rollFilm:
		return width, true
	case pouchType == tables.PouchTShape:
		return width*2 + 22, true
	case pouchType == tables.PouchMShape, pouchType == tables.PouchBox:
		return (depth+width)*2 + 32, true
	default:
		return 0, false
	}
}

// ParallelOptions lists side-by-side production options for a film width,
// best utilization first. unitPrice is the current per-roll price.
func ParallelOptions(filmWidthMM float64, unitPrice decimal.Decimal) []ParallelOption {
	if filmWidthMM <= 0 {
		return nil
	}
	film := decimal.NewFromFloat(filmWidthMM)
	filmPart := unitPrice.Mul(filmShare)
	otherPart := unitPrice.Mul(otherShare)

	var options []ParallelOption
	for _, roll := range []int{tables.NarrowRollWidthMM, tables.WideRollWidthMM} {
		maxCount := int(decimal.NewFromInt(int64(roll - RollMarginMM)).Div(film).Floor().IntPart())
		for count := 2; count <= maxCount; count++ {
			utilization := film.Mul(decimal.NewFromInt(int64(count))).Div(decimal.NewFromInt(int64(roll))).Mul(hundred)
			estimated := ParallelDiscount(filmPart, count).Div(decimal.NewFromInt(int64(count))).Add(otherPart)
			savings := decimal.Zero
			if unitPrice.IsPositive() {
				savings = unitPrice.Sub(estimated).Div(unitPrice).Mul(hundred)
			}
			options = append(options, ParallelOption{
				Count:         count,
				RollWidthMM:   roll,
				Utilization:   utilization,
				EstimatedUnit: estimated,
				SavingsRate:   savings,
			})
		}
	}
	if len(options) == 0 {
		return nil
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Utilization.GreaterThan(options[j].Utilization)
	})
	best := options[0].Utilization
	for i := range options {
		u := options[i].Utilization
		options[i].Recommended = u.GreaterThanOrEqual(decimal.NewFromFloat(RecommendUtilization)) || u.Equal(best)
	}
	return options
}
