// Package types - Quote request and result types shared by every layer
package types

// Urgency selects the production lane
type Urgency string

const (
	UrgencyStandard Urgency = "standard"
	UrgencyExpress  Urgency = "express"
)

// ThicknessSelection perturbs the sealant plies of a laminate
type ThicknessSelection string

const (
	ThicknessLight    ThicknessSelection = "light"
	ThicknessMedium   ThicknessSelection = "medium"
	ThicknessStandard ThicknessSelection = "standard"
	ThicknessHeavy    ThicknessSelection = "heavy"
	ThicknessUltra    ThicknessSelection = "ultra"
)

// FilmStructureLayer is one ply of a laminate. Order is outermost first.
type FilmStructureLayer struct {
	// MaterialID identifies the ply material (PET, AL, LLDPE, ...)
	MaterialID string `json:"materialId" hcl:"material"`

	// Thickness is the ply thickness in micrometres
	Thickness float64 `json:"thickness" hcl:"thickness"`
}

// CalculationParams is one quote request. Callers build it per request
// and the engine never mutates it.
type CalculationParams struct {
	// BagTypeID identifies the product family or shape (flat_3_side, stand_up, roll_film, ...)
	BagTypeID string `json:"bagTypeId"`

	// MaterialID names a laminate recipe (pet_al, pet_ny_al, ...)
	MaterialID string `json:"materialId"`

	// Width, Height and Depth are in millimetres. Roll film ignores Height.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth,omitempty"`

	// Quantity is a unit count, or linear metres for roll film
	Quantity int `json:"quantity"`

	ThicknessSelection ThicknessSelection `json:"thicknessSelection,omitempty"`
	IsUVPrinting       bool               `json:"isUVPrinting,omitempty"`

	// PostProcessingOptions is an unordered set of option ids
	PostProcessingOptions []string `json:"postProcessingOptions,omitempty"`

	// PostProcessingMultiplier overrides the multiplier derived from the options
	PostProcessingMultiplier *float64 `json:"postProcessingMultiplier,omitempty"`

	PrintingType   string `json:"printingType,omitempty"`
	PrintingColors int    `json:"printingColors,omitempty"`
	DoubleSided    bool   `json:"doubleSided,omitempty"`

	DeliveryLocation string  `json:"deliveryLocation,omitempty"`
	Urgency          Urgency `json:"urgency,omitempty"`

	// SKUQuantities splits Quantity across designs of a multi-SKU order
	SKUQuantities []int `json:"skuQuantities,omitempty"`

	// FilmLayers overrides the recipe named by MaterialID
	FilmLayers []FilmStructureLayer `json:"filmLayers,omitempty"`
}

// HasOption reports whether any of ids is among the selected post-processing options.
func (p CalculationParams) HasOption(ids ...string) bool {
	for _, opt := range p.PostProcessingOptions {
		for _, id := range ids {
			if opt == id {
				return true
			}
		}
	}
	return false
}

// IsExpress reports whether the request asks for the express lane.
func (p CalculationParams) IsExpress() bool {
	return p.Urgency == UrgencyExpress
}
