// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rowmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pdiddy/portfolio-import/internal/catalog"
	"github.com/pdiddy/portfolio-import/internal/source"
	"github.com/pdiddy/portfolio-import/pkg/types"
)

const (
	titleRow   = 1
	mappingRow = 2
)

// Summary holds the outcome of a successful ConvertFile run.
type Summary struct {
	InputPath       string
	OutputPath      string
	Rows            int
	CustomFieldRows int
}

// RunRecord converts the summary into a journal entry stamped with at.
func (s Summary) RunRecord(at time.Time) types.RunRecord {
	return types.RunRecord{
		InputPath:       s.InputPath,
		OutputPath:      s.OutputPath,
		Rows:            s.Rows,
		CustomFieldRows: s.CustomFieldRows,
		ConvertedAt:     at.UTC(),
	}
}

// OutputPath returns input with its extension replaced by ".json".
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
}

// Convert reads every row of src and returns the import document. The title
// row is ignored, the mapping row configures the mapper, and each later row
// adds exactly one record, empty rows included. Duplicate names in the
// mapping row are logged to logger (slog.Default when nil) and resolved
// last-write-wins.
func Convert(src source.Source, cat *catalog.Catalog, logger *slog.Logger) (types.Document, error) {
	if logger == nil {
		logger = slog.Default()
	}

	doc := types.NewDocument()
	var mapper *Mapper

	for rowNum := 1; ; rowNum++ {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return types.Document{}, &InputError{Path: src.Name(), Err: err}
		}

		switch rowNum {
		case titleRow:
			continue
		case mappingRow:
			mapping := NewColumnMapping(row)
			dups := mapping.Duplicates()
			for _, name := range slices.Sorted(maps.Keys(dups)) {
				logger.Warn("attribute mapped to several columns, last non-empty value wins",
					"source", src.Name(), "attribute", name, "columns", columnNumbers(dups[name]))
			}
			logger.Debug("column mapping", "source", src.Name(), "columns", len(mapping))
			mapper = NewMapper(cat, mapping)
			continue
		}

		rec, err := mapper.MapRow(row, rowNum)
		if err != nil {
			return types.Document{}, err
		}
		doc.Apps = append(doc.Apps, rec)
	}

	if mapper == nil {
		return types.Document{}, &InputError{Path: src.Name(), Err: ErrNoMapping}
	}
	return doc, nil
}

// columnNumbers converts 0-based column indexes to 1-based sheet columns.
func columnNumbers(idx []int) []int {
	out := make([]int, len(idx))
	for i, c := range idx {
		out[i] = c + 1
	}
	return out
}

// Encode serializes doc as compact JSON, or indented when pretty is set.
// HTML characters are not escaped.
func Encode(doc types.Document, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertFile converts cfg.InputPath and writes the document to
// cfg.OutputPath (or the ".json" sibling of the input). The whole document
// is built before anything is written, so a failed run never leaves a
// partial output file. On success it prints the processed row count to w.
func ConvertFile(cfg types.ConvertConfig, cat *catalog.Catalog, logger *slog.Logger, w io.Writer) (Summary, error) {
	outPath := cfg.OutputPath
	if outPath == "" {
		outPath = OutputPath(cfg.InputPath)
	}

	src, err := source.Open(cfg.InputPath, cfg.SourceConfig)
	if err != nil {
		return Summary{}, &InputError{Path: cfg.InputPath, Err: err}
	}
	defer src.Close()

	doc, err := Convert(src, cat, logger)
	if err != nil {
		return Summary{}, err
	}

	data, err := Encode(doc, cfg.Pretty)
	if err != nil {
		return Summary{}, &OutputError{Path: outPath, Err: err}
	}
	if err := writeFileAtomic(outPath, data); err != nil {
		return Summary{}, &OutputError{Path: outPath, Err: err}
	}

	summary := Summary{
		InputPath:       cfg.InputPath,
		OutputPath:      outPath,
		Rows:            len(doc.Apps),
		CustomFieldRows: doc.CustomFieldRows(),
	}
	fmt.Fprintf(w, "Processed %d row(s) of data and wrote to %s\n", summary.Rows, outPath)
	return summary, nil
}

// StdinPath names standard input and standard output on the command line
// and in run summaries.
const StdinPath = "-"

// ConvertStream converts CSV text read from in and writes the document to
// out. As with ConvertFile, nothing is written to out unless the whole input
// converts; the processed row count is printed to report.
func ConvertStream(cfg types.ConvertConfig, cat *catalog.Catalog, logger *slog.Logger, in io.Reader, out, report io.Writer) (Summary, error) {
	src, err := source.NewCSV(source.StdinName, in, cfg.Encoding)
	if err != nil {
		return Summary{}, &InputError{Path: source.StdinName, Err: err}
	}
	defer src.Close()

	doc, err := Convert(src, cat, logger)
	if err != nil {
		return Summary{}, err
	}

	data, err := Encode(doc, cfg.Pretty)
	if err != nil {
		return Summary{}, &OutputError{Path: stdoutName, Err: err}
	}
	if _, err := out.Write(data); err != nil {
		return Summary{}, &OutputError{Path: stdoutName, Err: err}
	}

	summary := Summary{
		InputPath:       StdinPath,
		OutputPath:      StdinPath,
		Rows:            len(doc.Apps),
		CustomFieldRows: doc.CustomFieldRows(),
	}
	fmt.Fprintf(report, "Processed %d row(s) of data\n", summary.Rows)
	return summary, nil
}

const stdoutName = "<stdout>"

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, replacing any existing file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
