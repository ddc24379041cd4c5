// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rowmap

import (
	"errors"
	"fmt"
)

// ErrNoMapping is returned when the source ends before the attribute mapping row.
var ErrNoMapping = errors.New("missing attribute mapping row")

// InputError reports a source that could not be opened, read or decoded.
// No output is written when it occurs.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ParseError reports a numeric attribute cell that is not an integer.
// Row and Column are 1-based positions in the source sheet.
type ParseError struct {
	Row       int
	Column    int
	Attribute string
	Value     string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %d: %s value %q is not an integer: %v", e.Row, e.Column, e.Attribute, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// OutputError reports a document that could not be encoded or written.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
