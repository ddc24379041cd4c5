// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/portfolio-import/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the built-in attribute catalog",
	Long: `Catalog prints the attribute names the portfolio schema knows natively,
and the attribute converted to an integer. Mapping-row names outside this list
are imported as custom fields. The output is a valid --catalog file, so it can
be saved and edited.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{"catalog": "catalog"}); err != nil {
		return err
	}
	cat, err := catalog.LoadFile(viper.GetString("catalog"))
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	var data []byte
	switch format {
	case "yaml", "":
		data, err = yaml.Marshal(cat.Export())
	case "json":
		data, err = json.MarshalIndent(cat.Export(), "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func init() {
	catalogCmd.Flags().String("format", "yaml", "output format: yaml or json")
	catalogCmd.Flags().String("catalog", "", "YAML attribute catalog to print instead of the built-in one")

	rootCmd.AddCommand(catalogCmd)
}
