// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads sheet exports row by row. CSV files are decoded from
// the configured text encoding; XLSX workbooks are read directly so the
// export step can be skipped.
package source

import (
	"path/filepath"
	"strings"

	"github.com/pdiddy/portfolio-import/pkg/types"
)

// Source yields the rows of one sheet in order.
type Source interface {
	// Next returns the next row, or io.EOF after the last one. A blank line
	// in the input is returned as an empty row.
	Next() ([]string, error)

	// Name returns the path the rows are read from.
	Name() string

	// Close releases the underlying file.
	Close() error
}

// Format returns the source format implied by the path's extension.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return types.FormatXLSX
	default:
		return types.FormatCSV
	}
}

// Open opens path with the reader matching its extension.
func Open(path string, cfg types.SourceConfig) (Source, error) {
	if Format(path) == types.FormatXLSX {
		return OpenXLSX(path, cfg.Sheet)
	}
	return OpenCSV(path, cfg.Encoding)
}
