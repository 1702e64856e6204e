// Command tariffpipe extracts normalized tariff rows from hotel tariff
// PDFs, as a one-shot CLI, an HTTP service or an MCP server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/tariffpipe/ingest"
)

const version = "0.1.0"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:     "tariffpipe",
	Short:   "Hotel tariff table extraction pipeline",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "tariffpipe.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	// A .env beside the binary is the easiest place for MISTRAL_API_KEY
	// in development. Missing file is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the configured YAML file; an absent file at the default
// path falls back to defaults so the binary runs with zero setup.
func loadConfig() (*ingest.Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if !rootCmd.PersistentFlags().Changed("config") {
			return ingest.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config file %s not found", configPath)
	}
	return ingest.LoadConfig(configPath)
}
