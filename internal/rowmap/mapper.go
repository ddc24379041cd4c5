// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rowmap converts a two-header-row sheet export into the portfolio
// import document. The first row holds client-facing titles and is ignored;
// the second assigns an attribute name to each column; every later row
// becomes one application record.
package rowmap

import (
	"strconv"
	"strings"

	"github.com/pdiddy/portfolio-import/internal/catalog"
	"github.com/pdiddy/portfolio-import/pkg/types"
)

// ColumnMapping assigns an attribute name to each column position. Columns
// with an empty name are ignored.
type ColumnMapping []string

// NewColumnMapping copies the mapping row.
func NewColumnMapping(row []string) ColumnMapping {
	m := make(ColumnMapping, len(row))
	copy(m, row)
	return m
}

// Attribute returns the name mapped to column i. It reports false for
// columns past the end of the mapping row.
func (m ColumnMapping) Attribute(i int) (string, bool) {
	if i < 0 || i >= len(m) {
		return "", false
	}
	return m[i], true
}

// Duplicates returns every non-empty name mapped to more than one column,
// with the 0-based column indexes that share it.
func (m ColumnMapping) Duplicates() map[string][]int {
	cols := make(map[string][]int)
	for i, name := range m {
		if name == "" {
			continue
		}
		cols[name] = append(cols[name], i)
	}
	for name, idx := range cols {
		if len(idx) < 2 {
			delete(cols, name)
		}
	}
	return cols
}

// Mapper classifies data rows against a catalog and a column mapping.
type Mapper struct {
	catalog *catalog.Catalog
	mapping ColumnMapping
}

// NewMapper returns a Mapper for one sheet.
func NewMapper(c *catalog.Catalog, m ColumnMapping) *Mapper {
	return &Mapper{catalog: c, mapping: m}
}

// MapRow builds the record for one data row. rowNum is the 1-based row
// position in the sheet and is only used for error reporting.
//
// Empty cells, unmapped columns and cells past the end of the mapping are
// skipped. Built-in
// attributes go to the top level, the numeric attribute as an int64; any
// other name goes to custom_fields. When two columns share a name the later
// one wins.
func (m *Mapper) MapRow(row []string, rowNum int) (types.AppRecord, error) {
	var rec types.AppRecord
	for i, v := range row {
		if v == "" {
			continue
		}
		attr, ok := m.mapping.Attribute(i)
		if !ok || attr == "" {
			continue
		}
		if !m.catalog.Contains(attr) {
			rec.SetCustom(attr, v)
			continue
		}
		if m.catalog.IsNumeric(attr) {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return types.AppRecord{}, &ParseError{
					Row:       rowNum,
					Column:    i + 1,
					Attribute: attr,
					Value:     v,
					Err:       err,
				}
			}
			rec.Set(attr, n)
			continue
		}
		rec.Set(attr, v)
	}
	return rec, nil
}
