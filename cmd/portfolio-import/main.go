// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the portfolio-import CLI, which turns
// client sheet exports into application import documents.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the portfolio-import CLI.
var rootCmd = &cobra.Command{
	Use:   "portfolio-import",
	Short: "Convert client sheet exports into application portfolio import documents",
	Long: `portfolio-import converts a sheet export with two header rows into the
JSON document accepted by the portfolio apps sync command. The first row holds
the client's column titles and is ignored; the second row names the portfolio
attribute each column maps to. Columns mapped to unknown names are carried as
custom fields; columns left blank in the mapping row are ignored.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd, map[string]string{"log_level": "log-level"}); err != nil {
			return err
		}
		slog.SetDefault(newLogger(cmd.ErrOrStderr(), viper.GetString("log_level")))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./portfolio-import.yaml or ~/.config/portfolio-import/portfolio-import.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "diagnostic log level: debug, info, warn, error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("portfolio-import")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "portfolio-import"))
		}
	}

	viper.SetEnvPrefix("PORTFOLIO_IMPORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags binds config keys to the flags of the running command, so a flag
// given on the command line overrides the environment and the config file.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("binding %s: no flag --%s", key, flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}
	return nil
}

// newLogger returns a text logger on w. Unknown levels fall back to warn.
func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
