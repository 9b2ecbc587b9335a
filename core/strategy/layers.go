package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"packaging-quote/core/tables"
	"packaging-quote/core/types"
)

var (
	micronsPerMM = decimal.NewFromInt(1000)
	mmPerMeter   = decimal.NewFromInt(1000)
	mm2PerM2     = decimal.NewFromInt(1000000)
)

// ResolveLayers returns the caller's plies or the recipe default, scaled for
// the thickness selection. The result is always a fresh slice.
func ResolveLayers(p types.CalculationParams) []types.FilmStructureLayer {
	var layers []types.FilmStructureLayer
	if len(p.FilmLayers) > 0 {
		layers = append(layers, p.FilmLayers...)
	} else {
		layers = tables.RecipeLayers(p.MaterialID)
	}
	return AdjustForThickness(layers, p.ThicknessSelection)
}

// AdjustForThickness scales sealant plies only, rounding to whole microns.
func AdjustForThickness(layers []types.FilmStructureLayer, sel types.ThicknessSelection) []types.FilmStructureLayer {
	mult := tables.ThicknessMultiplier(sel)
	out := make([]types.FilmStructureLayer, len(layers))
	for i, layer := range layers {
		out[i] = layer
		m, ok := tables.LookupMaterial(layer.MaterialID)
		if !ok || !m.Sealant || mult.Equal(one) {
			continue
		}
		scaled, _ := decimal.NewFromFloat(layer.Thickness).Mul(mult).Round(0).Float64()
		out[i].Thickness = scaled
	}
	return out
}

// FilmWeightKg is Σ thickness(mm) × width(m) × metres × density over the plies.
func FilmWeightKg(layers []types.FilmStructureLayer, widthM, meters decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, layer := range layers {
		m, ok := tables.LookupMaterial(layer.MaterialID)
		if !ok {
			continue
		}
		total = total.Add(plyWeight(layer, m, widthM.Mul(meters)))
	}
	return total
}

// FilmCost is Σ ply weight × unit price, in source currency.
func FilmCost(layers []types.FilmStructureLayer, widthM, meters decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, layer := range layers {
		m, ok := tables.LookupMaterial(layer.MaterialID)
		if !ok {
			continue
		}
		total = total.Add(plyWeight(layer, m, widthM.Mul(meters)).Mul(m.UnitPrice))
	}
	return total
}

func plyWeight(layer types.FilmStructureLayer, m tables.Material, areaM2 decimal.Decimal) decimal.Decimal {
	thicknessMM := decimal.NewFromFloat(layer.Thickness).Div(micronsPerMM)
	return thicknessMM.Mul(areaM2).Mul(m.Density)
}

// HasBarrierFoil reports whether any ply is foil.
func HasBarrierFoil(layers []types.FilmStructureLayer) bool {
	for _, layer := range layers {
		if m, ok := tables.LookupMaterial(layer.MaterialID); ok && m.BarrierFoil {
			return true
		}
	}
	return false
}

// ValidateLayers checks an explicit ply structure; nil is valid.
func ValidateLayers(layers []types.FilmStructureLayer) []string {
	var errs []string
	for i, layer := range layers {
		if _, ok := tables.LookupMaterial(layer.MaterialID); !ok {
			errs = append(errs, fmt.Sprintf("film layer %d: unknown material %q", i+1, layer.MaterialID))
		}
		if layer.Thickness <= 0 {
			errs = append(errs, fmt.Sprintf("film layer %d: thickness must be positive", i+1))
		}
	}
	return errs
}
