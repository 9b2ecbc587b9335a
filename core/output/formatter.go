// Package output renders quotes for people and for machines.
package output

import (
	"io"
	"sort"
	"sync"

	"packaging-quote/core/economics"
	"packaging-quote/core/types"
	"packaging-quote/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes every report in order
	Render(w io.Writer, reports []Report) error
}

// Report is one priced request together with its optional advice
type Report struct {
	// Label names the request (the HCL block label or "quote")
	Label string `json:"label"`

	// Request is the normalized input that was priced
	Request types.CalculationParams `json:"request"`

	// Quote is the engine result
	Quote types.QuoteResult `json:"quote"`

	// Suggestion is the economic-quantity advice, if requested
	Suggestion *economics.QuantitySuggestion `json:"suggestion,omitempty"`

	// Parallel lists side-by-side production options, if any
	Parallel []economics.ParallelOption `json:"parallelOptions,omitempty"`

	// ShowBreakdown prints the per-stage breakdown in the CLI table
	ShowBreakdown bool `json:"-"`
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry returns a registry with the CLI and JSON formatters
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(NewCLIFormatter())
	r.Register(NewJSONFormatter())
	return r
}

// Register adds a formatter, replacing one with the same format
func (r *Registry) Register(f Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotSupported("output format " + string(format))
	}
	return f, nil
}

// Formats lists the registered formats, sorted
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formats := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
