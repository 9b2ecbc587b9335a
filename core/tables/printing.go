package tables

import "github.com/shopspring/decimal"

// PrintingRate is the price of one printing method, in KRW.
type PrintingRate struct {
	PerColorPerMeter decimal.Decimal
	MinimumCharge    decimal.Decimal
}

// DefaultPrintingType is used for empty or unknown printing types.
const DefaultPrintingType = "digital"

var printingRates = map[string]PrintingRate{
	"digital": {PerColorPerMeter: decimal.NewFromInt(475), MinimumCharge: decimal.NewFromInt(50000)},
	"gravure": {PerColorPerMeter: decimal.NewFromInt(300), MinimumCharge: decimal.NewFromInt(150000)},
}

// LookupPrinting returns the rate for a printing type.
func LookupPrinting(printingType string) PrintingRate {
	if r, ok := printingRates[printingType]; ok {
		return r
	}
	return printingRates[DefaultPrintingType]
}

// PrintingColors normalizes the colour count of a request.
func PrintingColors(colors int, doubleSided bool) int {
	if colors <= 0 {
		colors = 1
	}
	if doubleSided {
		colors *= 2
	}
	return colors
}
