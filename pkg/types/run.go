// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunRecord describes one completed conversion, as kept in the run journal.
type RunRecord struct {
	ID              int64     `json:"id" yaml:"id"`
	InputPath       string    `json:"input_path" yaml:"input_path"`
	OutputPath      string    `json:"output_path" yaml:"output_path"`
	Rows            int       `json:"rows" yaml:"rows"`
	CustomFieldRows int       `json:"custom_field_rows" yaml:"custom_field_rows"`
	ConvertedAt     time.Time `json:"converted_at" yaml:"converted_at"`
}
