package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"packaging-quote/adapters/request"
	"packaging-quote/core/engine"
	"packaging-quote/core/types"
	"packaging-quote/internal/config"
	"packaging-quote/internal/errors"
	"packaging-quote/internal/logging"
)

// requestFlags holds the request flags shared by quote and suggest
type requestFlags struct {
	file string
	vars []string

	bagType     string
	material    string
	width       float64
	height      float64
	depth       float64
	quantity    int
	thickness   string
	uv          bool
	options     []string
	multiplier  float64
	printing    string
	colors      int
	doubleSided bool
	delivery    string
	urgency     string
	skus        []int
	layers      []string

	format    string
	breakdown bool
}

func (f *requestFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.file, "file", "", "request file (.hcl or .json) with one or more quote blocks")
	fs.StringArrayVar(&f.vars, "var", nil, "request file variable as name=value (repeatable)")

	fs.StringVar(&f.bagType, "bag-type", "flat_3_side", "product type id (flat_3_side, stand_up, t_shape, m_shape, box, roll_film)")
	fs.StringVar(&f.material, "material", "pet_al", "laminate recipe id")
	fs.Float64Var(&f.width, "width", 0, "width in mm")
	fs.Float64Var(&f.height, "height", 0, "height in mm (ignored for roll film)")
	fs.Float64Var(&f.depth, "depth", 0, "gusset depth in mm")
	fs.IntVar(&f.quantity, "quantity", 0, "units, or metres for roll film")
	fs.StringVar(&f.thickness, "thickness", "", "thickness selection (light, medium, heavy, ultra)")
	fs.BoolVar(&f.uv, "uv", false, "UV printing")
	fs.StringSliceVar(&f.options, "option", nil, "post-processing option id (repeatable)")
	fs.Float64Var(&f.multiplier, "options-multiplier", 0, "override the post-processing multiplier")
	fs.StringVar(&f.printing, "printing", "", "printing type (digital, gravure)")
	fs.IntVar(&f.colors, "colors", 0, "printing colours")
	fs.BoolVar(&f.doubleSided, "double-sided", false, "print both sides")
	fs.StringVar(&f.delivery, "delivery", "", "delivery location (domestic, international)")
	fs.StringVar(&f.urgency, "urgency", "", "urgency (standard, express)")
	fs.IntSliceVar(&f.skus, "sku", nil, "per-design quantities of a multi-SKU order")
	fs.StringSliceVar(&f.layers, "layer", nil, "film ply as MATERIAL:MICRONS, outermost first (repeatable)")

	fs.StringVarP(&f.format, "format", "f", "", "output format (cli, json); default from config")
	fs.BoolVar(&f.breakdown, "breakdown", true, "show the cost breakdown")
}

// requests builds the requests from --file or from the individual flags
func (f *requestFlags) requests(cfg *config.Config) ([]request.Request, error) {
	if f.file != "" {
		d := request.NewDecoder(cfg.Quote)
		if err := d.ParseVariables(f.vars); err != nil {
			return nil, err
		}
		return d.DecodeFile(f.file)
	}

	layers, err := parseLayers(f.layers)
	if err != nil {
		return nil, err
	}
	p := types.CalculationParams{
		BagTypeID:             f.bagType,
		MaterialID:            f.material,
		Width:                 f.width,
		Height:                f.height,
		Depth:                 f.depth,
		Quantity:              f.quantity,
		ThicknessSelection:    types.ThicknessSelection(f.thickness),
		IsUVPrinting:          f.uv,
		PostProcessingOptions: f.options,
		PrintingType:          f.printing,
		PrintingColors:        f.colors,
		DoubleSided:           f.doubleSided,
		DeliveryLocation:      f.delivery,
		Urgency:               types.Urgency(f.urgency),
		SKUQuantities:         f.skus,
		FilmLayers:            layers,
	}
	if f.multiplier > 0 {
		m := f.multiplier
		p.PostProcessingMultiplier = &m
	}
	request.ApplyDefaults(&p, cfg.Quote)
	return []request.Request{{Label: "quote", Params: p}}, nil
}

func (f *requestFlags) outputFormat(cfg *config.Config) string {
	if f.format != "" {
		return f.format
	}
	return cfg.Output.DefaultFormat
}

func parseLayers(specs []string) ([]types.FilmStructureLayer, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	layers := make([]types.FilmStructureLayer, 0, len(specs))
	for _, spec := range specs {
		id, thickness, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, errors.Input(fmt.Sprintf("invalid layer %q, expected MATERIAL:MICRONS", spec))
		}
		microns, err := strconv.ParseFloat(thickness, 64)
		if err != nil {
			return nil, errors.Wrap(errors.TypeInput, fmt.Sprintf("invalid layer thickness in %q", spec), err)
		}
		layers = append(layers, types.FilmStructureLayer{MaterialID: strings.TrimSpace(id), Thickness: microns})
	}
	return layers, nil
}

func newEngine(cfg *config.Config) *engine.Engine {
	return engine.New(
		engine.WithLogger(logging.Named("engine")),
		engine.WithMaxCacheEntries(cfg.Engine.MaxCacheEntries),
	)
}

// reportError prints validation violations one per line before cobra
// prints the joined message
func reportError(cmd *cobra.Command, label string, err error) error {
	if violations := errors.Violations(err); len(violations) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: request rejected\n", label)
		for _, v := range violations {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", v)
		}
	}
	return fmt.Errorf("%s: %w", label, err)
}
