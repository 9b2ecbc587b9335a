package tables

import (
	"sort"

	"github.com/shopspring/decimal"

	"packaging-quote/core/types"
)

// Material describes one ply material.
type Material struct {
	ID string

	// Density in g/cm³, which equals kg per litre
	Density decimal.Decimal

	// UnitPrice in KRW per kg
	UnitPrice decimal.Decimal

	// Sealant plies are the ones scaled by the thickness selection
	Sealant bool

	// BarrierFoil plies raise the lamination price
	BarrierFoil bool
}

func material(id, density string, price int64) Material {
	return Material{
		ID:        id,
		Density:   decimal.RequireFromString(density),
		UnitPrice: decimal.NewFromInt(price),
	}
}

var materials = map[string]Material{
	"PET":   material("PET", "1.40", 2800),
	"AL":    withFoil(material("AL", "2.71", 7800)),
	"LLDPE": withSealant(material("LLDPE", "0.92", 2800)),
	"PE":    withSealant(material("PE", "0.92", 2600)),
	"NY":    material("NY", "1.16", 5400),
	"VMPET": material("VMPET", "1.40", 3600),
	"CPP":   withSealant(material("CPP", "0.90", 3000)),
}

func withSealant(m Material) Material {
	m.Sealant = true
	return m
}

func withFoil(m Material) Material {
	m.BarrierFoil = true
	return m
}

// LookupMaterial returns the material for a ply id.
func LookupMaterial(id string) (Material, bool) {
	m, ok := materials[id]
	return m, ok
}

// MaterialIDs returns the known ply ids in sorted order.
func MaterialIDs() []string {
	ids := make([]string, 0, len(materials))
	for id := range materials {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultRecipe is used when a material id names no known recipe.
const DefaultRecipe = "pet_al"

var recipes = map[string][]types.FilmStructureLayer{
	"pet_al":    {{MaterialID: "PET", Thickness: 12}, {MaterialID: "AL", Thickness: 7}, {MaterialID: "LLDPE", Thickness: 80}},
	"pet_ny_al": {{MaterialID: "PET", Thickness: 12}, {MaterialID: "NY", Thickness: 15}, {MaterialID: "AL", Thickness: 7}, {MaterialID: "LLDPE", Thickness: 80}},
	"pet_vmpet": {{MaterialID: "PET", Thickness: 12}, {MaterialID: "VMPET", Thickness: 12}, {MaterialID: "LLDPE", Thickness: 70}},
	"pet_ldpe":  {{MaterialID: "PET", Thickness: 12}, {MaterialID: "LLDPE", Thickness: 70}},
	"ny_lldpe":  {{MaterialID: "NY", Thickness: 15}, {MaterialID: "LLDPE", Thickness: 70}},
	"pet_cpp":   {{MaterialID: "PET", Thickness: 12}, {MaterialID: "CPP", Thickness: 60}},
}

// RecipeLayers returns a copy of the ply structure for a recipe id,
// falling back to DefaultRecipe.
func RecipeLayers(recipeID string) []types.FilmStructureLayer {
	layers, ok := recipes[recipeID]
	if !ok {
		layers = recipes[DefaultRecipe]
	}
	out := make([]types.FilmStructureLayer, len(layers))
	copy(out, layers)
	return out
}

// HasRecipe reports whether the recipe id is known.
func HasRecipe(recipeID string) bool {
	_, ok := recipes[recipeID]
	return ok
}

// RecipeIDs returns the known recipe ids in sorted order.
func RecipeIDs() []string {
	ids := make([]string, 0, len(recipes))
	for id := range recipes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

const (
	NarrowRollWidthMM = 590
	WideRollWidthMM   = 760

	// NarrowRollMaxProductWidthMM is the widest product cut from the narrow roll
	NarrowRollMaxProductWidthMM = 300
)

// RollWidthMeters picks the raw-film roll for a product width in mm.
func RollWidthMeters(productWidthMM float64) decimal.Decimal {
	width := WideRollWidthMM
	if productWidthMM <= NarrowRollMaxProductWidthMM {
		width = NarrowRollWidthMM
	}
	return decimal.NewFromInt(int64(width)).Div(decimal.NewFromInt(1000))
}
