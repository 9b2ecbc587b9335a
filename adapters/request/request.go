// Package request decodes quote request files. Both HCL native syntax
// (.hcl) and its JSON form (.json) are accepted:
//
//	quote "sample" {
//	  bag_type = "stand_up"
//	  material = "pet_al"
//	  width    = 120
//	  height   = 180
//	  quantity = var.quantity
//
//	  layer {
//	    material  = "PET"
//	    thickness = 12
//	  }
//	}
//
// Values under var.* come from the caller, so one file can be priced at
// several quantities.
package request

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"packaging-quote/core/types"
	"packaging-quote/internal/config"
	"packaging-quote/internal/errors"
)

// Request is one labelled quote request
type Request struct {
	Label  string
	Params types.CalculationParams
}

type fileSchema struct {
	Quotes []quoteBlock `hcl:"quote,block"`
}

type quoteBlock struct {
	Label string `hcl:"label,label"`

	BagType  string  `hcl:"bag_type"`
	Material string  `hcl:"material"`
	Width    float64 `hcl:"width"`
	Height   float64 `hcl:"height,optional"`
	Depth    float64 `hcl:"depth,optional"`
	Quantity int     `hcl:"quantity"`

	Thickness    string   `hcl:"thickness,optional"`
	UVPrinting   bool     `hcl:"uv_printing,optional"`
	Options      []string `hcl:"options,optional"`
	Multiplier   *float64 `hcl:"options_multiplier,optional"`
	PrintingType string   `hcl:"printing_type,optional"`
	Colors       int      `hcl:"printing_colors,optional"`
	DoubleSided  bool     `hcl:"double_sided,optional"`
	Delivery     string   `hcl:"delivery,optional"`
	Urgency      string   `hcl:"urgency,optional"`
	SKUs         []int    `hcl:"sku_quantities,optional"`

	Layers []types.FilmStructureLayer `hcl:"layer,block"`
}

// Decoder parses request files
type Decoder struct {
	defaults config.QuoteDefaults
	vars     map[string]cty.Value
}

// NewDecoder creates a decoder that fills empty fields from defaults
func NewDecoder(defaults config.QuoteDefaults) *Decoder {
	return &Decoder{
		defaults: defaults,
		vars:     make(map[string]cty.Value),
	}
}

// SetVariable makes value available to request files as var.<name>
func (d *Decoder) SetVariable(name, value string) {
	d.vars[name] = cty.StringVal(value)
}

// ParseVariables turns "name=value" pairs into variables
func (d *Decoder) ParseVariables(pairs []string) error {
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return errors.Input(fmt.Sprintf("invalid variable %q, expected name=value", pair))
		}
		d.SetVariable(strings.TrimSpace(name), value)
	}
	return nil
}

// DecodeFile reads and decodes path; the extension selects the syntax
func (d *Decoder) DecodeFile(path string) ([]Request, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to read request file", err).
			WithContext("file", path)
	}
	return d.Decode(path, src)
}

// Decode parses src. filename is used for diagnostics and to pick
// between JSON (.json) and native syntax (anything else).
func (d *Decoder) Decode(filename string, src []byte) ([]Request, error) {
	// hclparse caches by filename, so every call gets its own parser
	parser := hclparse.NewParser()
	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, diagnosticsError("failed to parse request file", filename, diags)
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, d.evalContext(), &schema); diags.HasErrors() {
		return nil, diagnosticsError("failed to decode request file", filename, diags)
	}
	if len(schema.Quotes) == 0 {
		return nil, errors.Input("request file contains no quote blocks").WithContext("file", filename)
	}

	requests := make([]Request, 0, len(schema.Quotes))
	for _, q := range schema.Quotes {
		requests = append(requests, Request{Label: q.Label, Params: d.toParams(q)})
	}
	return requests, nil
}

func (d *Decoder) evalContext() *hcl.EvalContext {
	vars := cty.EmptyObjectVal
	if len(d.vars) > 0 {
		vars = cty.ObjectVal(d.vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": vars},
	}
}

func (d *Decoder) toParams(q quoteBlock) types.CalculationParams {
	p := types.CalculationParams{
		BagTypeID:                q.BagType,
		MaterialID:               q.Material,
		Width:                    q.Width,
		Height:                   q.Height,
		Depth:                    q.Depth,
		Quantity:                 q.Quantity,
		ThicknessSelection:       types.ThicknessSelection(q.Thickness),
		IsUVPrinting:             q.UVPrinting,
		PostProcessingOptions:    q.Options,
		PostProcessingMultiplier: q.Multiplier,
		PrintingType:             q.PrintingType,
		PrintingColors:           q.Colors,
		DoubleSided:              q.DoubleSided,
		DeliveryLocation:         q.Delivery,
		Urgency:                  types.Urgency(q.Urgency),
		SKUQuantities:            q.SKUs,
		FilmLayers:               q.Layers,
	}
	ApplyDefaults(&p, d.defaults)
	return p
}

// ApplyDefaults fills the fields of p that the caller left empty
func ApplyDefaults(p *types.CalculationParams, d config.QuoteDefaults) {
	if p.PrintingType == "" {
		p.PrintingType = d.PrintingType
	}
	if p.PrintingColors <= 0 {
		p.PrintingColors = d.PrintingColors
	}
	if p.Urgency == "" {
		p.Urgency = types.Urgency(d.Urgency)
	}
	if p.DeliveryLocation == "" {
		p.DeliveryLocation = d.DeliveryLocation
	}
	if p.ThicknessSelection == "" {
		p.ThicknessSelection = types.ThicknessSelection(d.ThicknessSelection)
	}
}

func diagnosticsError(message, filename string, diags hcl.Diagnostics) error {
	var details []string
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		details = append(details, fmt.Sprintf("%s:%d: %s: %s", filename, line, diag.Summary, diag.Detail))
	}
	return errors.Parsing(message, diags).
		WithContext("file", filename).
		WithContext("diagnostics", details)
}
