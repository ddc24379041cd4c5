// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/portfolio-import/internal/history"
	"github.com/pdiddy/portfolio-import/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List conversions recorded in the run journal",
	Long: `History lists the most recent conversions recorded with --history-db
(or the history_db config key), newest first.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{"history_db": "history-db"}); err != nil {
		return err
	}
	path := viper.GetString("history_db")
	if path == "" {
		return fmt.Errorf("history database required: set --history-db or history_db")
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(cmd, runs, jsonOutput)
}

func formatHistoryOutput(cmd *cobra.Command, runs []types.RunRecord, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		if runs == nil {
			runs = []types.RunRecord{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-5s  %-20s  %-6s  %-6s  %s\n", "ID", "Converted", "Rows", "Custom", "Output")
	fmt.Fprintln(out, strings.Repeat("-", 80))
	for _, r := range runs {
		fmt.Fprintf(out, "%-5d  %-20s  %-6d  %-6d  %s\n",
			r.ID, r.ConvertedAt.Local().Format(time.DateTime), r.Rows, r.CustomFieldRows, r.OutputPath)
	}
	fmt.Fprintf(out, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	historyCmd.Flags().String("history-db", "", "SQLite run journal to read")
	historyCmd.Flags().Int("limit", history.DefaultLimit, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}
