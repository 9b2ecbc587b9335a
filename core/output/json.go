package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter renders reports as an indented JSON document
type JSONFormatter struct {
	Indent string
}

// NewJSONFormatter creates a JSON formatter with two-space indentation
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Indent: "  "}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

type jsonDocument struct {
	Quotes []Report `json:"quotes"`
}

// Render writes {"quotes": [...]}; an empty input yields an empty array
func (f *JSONFormatter) Render(w io.Writer, reports []Report) error {
	if reports == nil {
		reports = []Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(jsonDocument{Quotes: reports})
}
