// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = "utf-8"

// StdinName is the Source name of rows read from standard input.
const StdinName = "<stdin>"

// CSV reads comma-separated rows. Rows may have differing lengths. Quotes
// must follow RFC 4180: a stray quote is a parse error, never a field that
// silently runs into the following lines.
type CSV struct {
	name      string
	closer    io.Closer
	lines     *lineCounter
	r         *csv.Reader
	checkUTF8 bool

	// nextLine is the input line at which the next record starts when no
	// blank lines intervene.
	nextLine int
	blanks   int
	queued   []string
	drained  bool
}

// OpenCSV opens a CSV file encoded with the given WHATWG encoding label.
// UTF-8 input is validated and may start with a byte order mark; a UTF-16
// byte order mark overrides the configured encoding.
func OpenCSV(path, encoding string) (*CSV, error) {
	decoder, checkUTF8, err := decoderFor(encoding)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	c := newCSV(path, f, decoder, checkUTF8)
	c.closer = f
	return c, nil
}

// NewCSV reads CSV rows from r, decoded like OpenCSV. Closing the returned
// source does not close r.
func NewCSV(name string, r io.Reader, encoding string) (*CSV, error) {
	decoder, checkUTF8, err := decoderFor(encoding)
	if err != nil {
		return nil, err
	}
	return newCSV(name, r, decoder, checkUTF8), nil
}

func decoderFor(encoding string) (transform.Transformer, bool, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, false, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return unicode.BOMOverride(transform.Nop), true, nil
	}
	return unicode.BOMOverride(enc.NewDecoder()), false, nil
}

func newCSV(name string, r io.Reader, decoder transform.Transformer, checkUTF8 bool) *CSV {
	lines := &lineCounter{r: transform.NewReader(r, decoder)}
	cr := csv.NewReader(lines)
	cr.FieldsPerRecord = -1

	return &CSV{
		name:      name,
		lines:     lines,
		r:         cr,
		checkUTF8: checkUTF8,
		nextLine:  1,
	}
}

// Next implements Source.
func (c *CSV) Next() ([]string, error) {
	if c.blanks > 0 {
		c.blanks--
		return []string{}, nil
	}
	if c.queued != nil {
		rec := c.queued
		c.queued = nil
		return rec, nil
	}
	if c.drained {
		return nil, io.EOF
	}

	rec, err := c.r.Read()
	if errors.Is(err, io.EOF) {
		// Blank lines after the last record are rows too.
		c.drained = true
		if trailing := c.lines.total() - (c.nextLine - 1); trailing > 0 {
			c.blanks = trailing - 1
			return []string{}, nil
		}
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}

	start, _ := c.r.FieldPos(0)
	last := len(rec) - 1
	lastLine, _ := c.r.FieldPos(last)
	gap := start - c.nextLine
	c.nextLine = lastLine + strings.Count(rec[last], "\n") + 1

	if c.checkUTF8 {
		for i, v := range rec {
			if !utf8.ValidString(v) {
				return nil, fmt.Errorf("line %d, column %d: invalid UTF-8 text", start, i+1)
			}
		}
	}

	// encoding/csv drops blank lines; surface them as empty rows so every
	// line after the headers still counts as a data row.
	if gap > 0 {
		c.blanks = gap - 1
		c.queued = rec
		return []string{}, nil
	}
	return rec, nil
}

// Name implements Source.
func (c *CSV) Name() string {
	return c.name
}

// Close implements Source.
func (c *CSV) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// lineCounter counts the lines of the decoded input as the csv reader
// consumes it. A final line without a newline still counts.
type lineCounter struct {
	r        io.Reader
	newlines int
	read     int64
	last     byte
}

func (l *lineCounter) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	if n > 0 {
		l.newlines += bytes.Count(p[:n], []byte{'\n'})
		l.read += int64(n)
		l.last = p[n-1]
	}
	return n, err
}

func (l *lineCounter) total() int {
	if l.read > 0 && l.last != '\n' {
		return l.newlines + 1
	}
	return l.newlines
}
