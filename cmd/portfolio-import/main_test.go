// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/portfolio-import/internal/catalog"
	"github.com/pdiddy/portfolio-import/internal/rowmap"
	"github.com/pdiddy/portfolio-import/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "General info.csv")
	require.NoError(t, os.WriteFile(in, []byte(
		"Application,Users,Team,Owner\n"+
			"name,total_users,team,team\n"+
			"Acme,42,Platform,Core\n"+
			",,,\n"), 0o644))
	db := filepath.Join(dir, "state", "history.db")

	t.Run("missing input fails without output", func(t *testing.T) {
		missing := filepath.Join(dir, "missing.csv")
		out, err := execute(t, "convert", missing)
		require.Error(t, err)

		var ie *rowmap.InputError
		assert.ErrorAs(t, err, &ie)
		assert.Contains(t, out, "Error: reading "+missing)
		assert.NoFileExists(t, filepath.Join(dir, "missing.json"))
	})

	t.Run("convert writes document and journals the run", func(t *testing.T) {
		out, err := execute(t, "convert", in, "--history-db", db)
		require.NoError(t, err)

		jsonPath := filepath.Join(dir, "General info.json")
		assert.Contains(t, out, "Processed 2 row(s) of data and wrote to "+jsonPath)
		assert.Contains(t, out, "attribute=team")

		data, err := os.ReadFile(jsonPath)
		require.NoError(t, err)
		assert.Equal(t,
			`{"apps":[{"name":"Acme","total_users":42,"custom_fields":{"team":"Core"}},{}]}`+"\n",
			string(data))
	})

	t.Run("history lists the run", func(t *testing.T) {
		out, err := execute(t, "history", "--history-db", db, "--json")
		require.NoError(t, err)

		var runs []types.RunRecord
		require.NoError(t, json.Unmarshal([]byte(out), &runs))
		require.Len(t, runs, 1)
		assert.Equal(t, in, runs[0].InputPath)
		assert.Equal(t, 2, runs[0].Rows)
		assert.Equal(t, 1, runs[0].CustomFieldRows)
	})

	t.Run("catalog prints the built-in list", func(t *testing.T) {
		out, err := execute(t, "catalog", "--format", "json")
		require.NoError(t, err)

		var f catalog.File
		require.NoError(t, json.Unmarshal([]byte(out), &f))
		assert.Equal(t, catalog.Default().Names(), f.Attributes)
		assert.Equal(t, "total_users", f.NumericAttribute)
	})

	t.Run("version", func(t *testing.T) {
		out, err := execute(t, "version")
		require.NoError(t, err)
		assert.Equal(t, "portfolio-import dev\n", out)
	})

	t.Run("convert reads standard input", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		rootCmd.SetIn(strings.NewReader("Application,Users\nname,total_users\nAcme,3\n"))
		rootCmd.SetOut(&stdout)
		rootCmd.SetErr(&stderr)
		rootCmd.SetArgs([]string{"convert", "-"})
		t.Cleanup(func() { rootCmd.SetIn(nil) })

		require.NoError(t, rootCmd.Execute())
		assert.Equal(t, `{"apps":[{"name":"Acme","total_users":3}]}`+"\n", stdout.String())
		assert.Contains(t, stderr.String(), "Processed 1 row(s) of data")
	})

	t.Run("convert rejects --output with standard input", func(t *testing.T) {
		rootCmd.SetIn(strings.NewReader("T\nname\n"))
		t.Cleanup(func() { rootCmd.SetIn(nil) })

		_, err := execute(t, "convert", "-", "--output", filepath.Join(dir, "out.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--output")
		assert.NoFileExists(t, filepath.Join(dir, "out.json"))
	})
}
