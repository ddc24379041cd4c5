// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/portfolio-import/internal/catalog"
	"github.com/pdiddy/portfolio-import/internal/history"
	"github.com/pdiddy/portfolio-import/internal/rowmap"
	"github.com/pdiddy/portfolio-import/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <export.csv|export.xlsx|->",
	Short: "Convert a sheet export into an apps import document",
	Long: `Convert reads a sheet export whose first row holds column titles and
whose second row maps each column to a portfolio attribute, and writes one
application record per remaining row to a JSON file next to the input (or to
--output). The number of processed rows is printed on success.

With "-" as the input, CSV text is read from standard input, the document is
written to standard output and the row count goes to standard error.

Nothing is written if any row fails to convert, for example when a
total_users cell is not an integer.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

// convertSettings maps config keys to convert flags.
var convertSettings = map[string]string{
	"encoding":   "encoding",
	"sheet":      "sheet",
	"catalog":    "catalog",
	"pretty":     "pretty",
	"history_db": "history-db",
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, convertSettings); err != nil {
		return err
	}
	var app types.AppConfig
	if err := viper.Unmarshal(&app); err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}

	cat, err := catalog.LoadFile(app.CatalogFile)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if args[0] == rowmap.StdinPath && output != "" {
		return errors.New("--output cannot be used when reading from standard input")
	}
	cfg := types.ConvertConfig{
		SourceConfig: app.SourceConfig,
		InputPath:    args[0],
		OutputPath:   output,
		Pretty:       app.Pretty,
	}

	var summary rowmap.Summary
	if cfg.InputPath == rowmap.StdinPath {
		summary, err = rowmap.ConvertStream(cfg, cat, slog.Default(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	} else {
		summary, err = rowmap.ConvertFile(cfg, cat, slog.Default(), cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}

	if app.HistoryDB != "" {
		journal(cmd, app.HistoryDB, summary)
	}
	return nil
}

// journal records a finished run. The output file is already in place, so
// failures are logged rather than returned.
func journal(cmd *cobra.Command, path string, summary rowmap.Summary) {
	store, err := history.Open(path)
	if err != nil {
		slog.Warn("run not journaled", "history_db", path, "err", err)
		return
	}
	defer store.Close()

	id, err := store.Record(cmd.Context(), summary.RunRecord(time.Now()))
	if err != nil {
		slog.Warn("run not journaled", "history_db", path, "err", err)
		return
	}
	slog.Debug("run journaled", "history_db", path, "id", id)
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output JSON file (default: input path with .json extension)")
	convertCmd.Flags().String("encoding", "utf-8", "text encoding of a CSV input, e.g. utf-8, windows-1252, utf-16le")
	convertCmd.Flags().String("sheet", "", "worksheet to read from an XLSX input (default: first sheet)")
	convertCmd.Flags().String("catalog", "", "YAML attribute catalog replacing the built-in attribute list")
	convertCmd.Flags().Bool("pretty", false, "indent the JSON output")
	convertCmd.Flags().String("history-db", "", "SQLite run journal to record the conversion in (default: disabled)")

	rootCmd.AddCommand(convertCmd)
}
