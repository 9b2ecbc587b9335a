package tables

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PouchType is a canonical bag-making process
type PouchType string

const (
	PouchFlat3Side PouchType = "flat_3_side"
	PouchStandUp   PouchType = "stand_up"
	PouchTShape    PouchType = "t_shape"
	PouchMShape    PouchType = "m_shape"
	PouchBox       PouchType = "box"
	PouchOther     PouchType = "other"
)

// PouchProcessing is the conversion price of one canonical pouch type, in KRW.
type PouchProcessing struct {
	MinimumPrice    decimal.Decimal
	ZipperSurcharge decimal.Decimal
}

var pouchProcessing = map[PouchType]PouchProcessing{
	PouchFlat3Side: {decimal.NewFromInt(200000), decimal.NewFromInt(50000)},
	PouchStandUp:   {decimal.NewFromInt(250000), decimal.NewFromInt(30000)},
	PouchTShape:    {decimal.NewFromInt(440000), decimal.NewFromInt(40000)},
	PouchMShape:    {decimal.NewFromInt(440000), decimal.NewFromInt(40000)},
	PouchBox:       {decimal.NewFromInt(440000), decimal.NewFromInt(40000)},
	PouchOther:     {decimal.NewFromInt(200000), decimal.NewFromInt(50000)},
}

// CanonicalPouchType maps a product shape id onto a pouch type by substring.
// Checks run in a fixed order so ids such as "flat_box" resolve predictably.
func CanonicalPouchType(bagTypeID string) PouchType {
	id := strings.ToLower(bagTypeID)
	switch {
	case strings.Contains(id, "3_side"), strings.Contains(id, "flat"), strings.Contains(id, "three"):
		return PouchFlat3Side
	case strings.Contains(id, "stand"):
		return PouchStandUp
	case strings.Contains(id, "t_shape"):
		return PouchTShape
	case strings.Contains(id, "m_shape"):
		return PouchMShape
	case strings.Contains(id, "box"), strings.Contains(id, "gusset"):
		return PouchBox
	default:
		return PouchOther
	}
}

// LookupPouchProcessing returns the conversion prices for a pouch type.
func LookupPouchProcessing(t PouchType) PouchProcessing {
	if p, ok := pouchProcessing[t]; ok {
		return p
	}
	return pouchProcessing[PouchOther]
}

// FedLengthwise reports whether the shape runs through the machine by its height.
func (t PouchType) FedLengthwise() bool {
	return t == PouchTShape || t == PouchMShape || t == PouchBox
}

// Roll-film lamination and slitting, in KRW
var (
	LaminationPerMeter     = decimal.NewFromInt(75)
	FoilLaminationPerMeter = decimal.NewFromInt(95)
	SlittingPerMeter       = decimal.NewFromInt(10)
	SlittingMinimumCharge  = decimal.NewFromInt(30000)
)
