package tables

import (
	"sort"

	"github.com/shopspring/decimal"
)

// WeightBracket maps a shipment weight class to its cost in KRW.
type WeightBracket struct {
	WeightKg decimal.Decimal
	Cost     decimal.Decimal
}

func bracket(kg, cost int64) WeightBracket {
	return WeightBracket{WeightKg: decimal.NewFromInt(kg), Cost: decimal.NewFromInt(cost)}
}

// rollFilmBrackets is sorted by weight ascending.
var rollFilmBrackets = []WeightBracket{
	bracket(1, 23500),
	bracket(2, 29500),
	bracket(3, 35500),
	bracket(5, 47500),
	bracket(10, 69500),
	bracket(15, 88500),
	bracket(20, 104500),
	bracket(25, 114500),
	bracket(26, 118500),
}

var (
	// RollFilmPackageMaxKg is the heaviest single roll-film package
	RollFilmPackageMaxKg = decimal.NewFromInt(26)

	// RollFilmDeliverySurcharge is added to the summed package costs
	RollFilmDeliverySurcharge = decimal.RequireFromString("0.10")

	// PouchBoxMaxKg and PouchBoxCost price finished-pouch shipments
	PouchBoxMaxKg = decimal.NewFromInt(29)
	PouchBoxCost  = decimal.NewFromInt(127980)

	// PouchSealMarginMM is added to pouch width when estimating pouch area
	PouchSealMarginMM = decimal.NewFromInt(15)
)

// BracketFor returns the largest bracket whose weight does not exceed weightKg.
// Packages lighter than the smallest bracket are charged that bracket.
func BracketFor(weightKg decimal.Decimal) WeightBracket {
	i := sort.Search(len(rollFilmBrackets), func(i int) bool {
		return rollFilmBrackets[i].WeightKg.GreaterThan(weightKg)
	})
	if i == 0 {
		return rollFilmBrackets[0]
	}
	return rollFilmBrackets[i-1]
}

// SplitPackages splits a shipment into full packages of maxKg plus a remainder.
func SplitPackages(totalKg, maxKg decimal.Decimal) []decimal.Decimal {
	if !totalKg.IsPositive() {
		return nil
	}
	full := totalKg.Div(maxKg).Floor().IntPart()
	packages := make([]decimal.Decimal, 0, full+1)
	for i := int64(0); i < full; i++ {
		packages = append(packages, maxKg)
	}
	if rest := totalKg.Sub(maxKg.Mul(decimal.NewFromInt(full))); rest.IsPositive() {
		packages = append(packages, rest)
	}
	return packages
}

var locationMultipliers = map[string]decimal.Decimal{
	"domestic":      decimal.NewFromInt(1),
	"international": decimal.RequireFromString("1.8"),
}

// LocationMultiplier scales delivery cost by destination; unknown means domestic.
func LocationMultiplier(location string) decimal.Decimal {
	if m, ok := locationMultipliers[location]; ok {
		return m
	}
	return locationMultipliers["domestic"]
}
