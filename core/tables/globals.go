// Package tables holds the compiled-in cost tables and global tunables.
// Source-currency amounts are KRW; quotes are issued in JPY.
package tables

import (
	"github.com/shopspring/decimal"

	"packaging-quote/core/types"
)

const (
	// SourceCurrency is the currency every cost table is denominated in
	SourceCurrency = types.CurrencyKRW

	// QuoteCurrency is the currency of every QuoteResult
	QuoteCurrency = types.CurrencyJPY

	MinOrderQuantity = 100
	MaxOrderQuantity = 100000

	// RollFilmMinMeters is the roll-film minimum order, in metres
	RollFilmMinMeters = 500

	MinDimensionMM = 10
	MaxDimensionMM = 1000

	// LossMeters is film consumed by machine setup and waste on every run
	LossMeters = 400

	// SmallLotThreshold is the quantity below which the UV setup fee applies
	SmallLotThreshold = 3000

	// BillingUnit is the granularity totals are rounded up to
	BillingUnit = 100

	BaseLeadTimeDays     = 14
	ExpressReductionDays = 7
	ExpressFloorDays     = 7
	UVReductionDays      = 3
	UVFloorDays          = 5
	LargeLotQuantity     = 10000
	LargeLotExtraDays    = 7
	MediumLotQuantity    = 5000
	MediumLotExtraDays   = 3
	FinishingExtraDays   = 2

	QuoteValidityDays = 30
)

var (
	// ExchangeRate converts KRW into JPY
	ExchangeRate = decimal.RequireFromString("0.12")

	ManufacturerMargin = decimal.RequireFromString("0.40")
	DutyRate           = decimal.RequireFromString("0.05")
	SalesMargin        = decimal.RequireFromString("0.20")

	// UVSetupFee is charged on small UV-printed lots
	UVSetupFee = decimal.NewFromInt(125000)

	// MatteCostPerMeter is per metre of film length per metre of roll width
	MatteCostPerMeter = decimal.NewFromInt(20)
)
