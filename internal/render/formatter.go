// Package render formats an engine.Result for display: a small
// Formatter interface with a factory picking the implementation by
// name.
package render

import (
	"fmt"
	"strings"

	"coldb/internal/engine"
)

// Format is an enum of the supported render formats.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formatter renders a query result to a display string.
type Formatter interface {
	FormatResult(engine.Result) (string, error)
}

// NewFormatter returns the Formatter for name. An empty name defaults
// to the table formatter.
func NewFormatter(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatTable:
		return tableFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported render format: %s; use 'table' or 'json'", name)
	}
}
