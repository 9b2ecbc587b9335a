package tables

import (
	"github.com/shopspring/decimal"

	"packaging-quote/core/types"
)

var thicknessMultipliers = map[types.ThicknessSelection]decimal.Decimal{
	types.ThicknessLight:    decimal.RequireFromString("0.9"),
	types.ThicknessMedium:   decimal.NewFromInt(1),
	types.ThicknessStandard: decimal.NewFromInt(1),
	types.ThicknessHeavy:    decimal.RequireFromString("1.1"),
	types.ThicknessUltra:    decimal.RequireFromString("1.2"),
}

// ThicknessMultiplier returns the sealant scale for a selection; unknown is 1.
func ThicknessMultiplier(sel types.ThicknessSelection) decimal.Decimal {
	if m, ok := thicknessMultipliers[sel]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

var postProcessingMultipliers = map[string]decimal.Decimal{
	"zipper":         decimal.RequireFromString("1.12"),
	"zipper-yes":     decimal.RequireFromString("1.12"),
	"valve":          decimal.RequireFromString("1.08"),
	"valve-yes":      decimal.RequireFromString("1.08"),
	"glossy":         decimal.RequireFromString("1.06"),
	"matte":          decimal.RequireFromString("1.04"),
	"notch":          decimal.RequireFromString("1.03"),
	"notch-yes":      decimal.RequireFromString("1.03"),
	"corner-round":   decimal.RequireFromString("1.05"),
	"hang-hole":      decimal.RequireFromString("1.04"),
	"hang-hole-6mm":  decimal.RequireFromString("1.04"),
	"hang-hole-8mm":  decimal.RequireFromString("1.05"),
	"opening-top":    decimal.RequireFromString("1.02"),
	"opening-bottom": decimal.RequireFromString("1.03"),
}

// OptionMultiplier returns the cost multiplier of one post-processing option.
// "-no" variants and unknown ids cost nothing extra.
func OptionMultiplier(option string) decimal.Decimal {
	if m, ok := postProcessingMultipliers[option]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// Option ids the pipeline reacts to beyond their multiplier
const (
	OptionMatte     = "matte"
	OptionZipper    = "zipper"
	OptionZipperYes = "zipper-yes"
)
