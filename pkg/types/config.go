// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Supported source formats, selected from the input file extension.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// SourceConfig holds settings for reading the input sheet.
type SourceConfig struct {
	// Encoding names the text encoding of a CSV input (default "utf-8").
	// Any WHATWG label is accepted, e.g. "windows-1252" or "utf-16le".
	Encoding string `json:"encoding" yaml:"encoding" mapstructure:"encoding"`

	// Sheet is the worksheet to read from an XLSX input. Empty selects the
	// first sheet.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty" mapstructure:"sheet"`
}

// ConvertConfig holds settings for one conversion run.
type ConvertConfig struct {
	SourceConfig `yaml:",inline"`

	// InputPath is the sheet export to convert. Required.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the JSON file to write. Empty means the input path with
	// its extension replaced by ".json".
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Pretty indents the JSON output.
	Pretty bool `json:"pretty" yaml:"pretty"`
}

// AppConfig is the layout of portfolio-import.yaml.
type AppConfig struct {
	SourceConfig `yaml:",inline" mapstructure:",squash"`

	// CatalogFile points to a YAML attribute catalog replacing the built-in list.
	CatalogFile string `json:"catalog,omitempty" yaml:"catalog,omitempty" mapstructure:"catalog"`

	// HistoryDB is the SQLite run journal. Empty disables journaling.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty" mapstructure:"history_db"`

	// Pretty indents the JSON output.
	Pretty bool `json:"pretty" yaml:"pretty" mapstructure:"pretty"`

	// LogLevel is one of debug, info, warn, error (default warn).
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}
