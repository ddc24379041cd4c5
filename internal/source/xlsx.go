// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"
)

// XLSX reads the formatted cell values of one worksheet.
type XLSX struct {
	path  string
	sheet string
	f     *excelize.File
	rows  [][]string
	next  int
}

// OpenXLSX opens a workbook and loads the named sheet, or the first sheet
// when sheet is empty.
func OpenXLSX(path, sheet string) (*XLSX, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			f.Close()
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		f.Close()
		return nil, fmt.Errorf("sheet %q not found in %s", sheet, path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	return &XLSX{path: path, sheet: sheet, f: f, rows: rows}, nil
}

// Sheet returns the worksheet being read.
func (x *XLSX) Sheet() string {
	return x.sheet
}

// Next implements Source.
func (x *XLSX) Next() ([]string, error) {
	if x.next >= len(x.rows) {
		return nil, io.EOF
	}
	row := x.rows[x.next]
	x.next++
	if row == nil {
		row = []string{}
	}
	return row, nil
}

// Name implements Source.
func (x *XLSX) Name() string {
	return x.path
}

// Close implements Source.
func (x *XLSX) Close() error {
	return x.f.Close()
}
