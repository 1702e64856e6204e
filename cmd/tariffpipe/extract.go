package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/tariffpipe/artifacts"
	"github.com/hazyhaar/tariffpipe/ingest"
	"github.com/hazyhaar/tariffpipe/tariff"
)

var csvPath string

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract tariff rows from one PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()

		svc, err := ingest.NewService(cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rows := svc.Extract(cmd.Context(), tariff.Document{
			Name: filepath.Base(path),
			Data: data,
		})

		if csvPath != "" {
			if err := artifacts.WriteCSV(csvPath, rows); err != nil {
				return err
			}
			logger.Info("csv written", "path", csvPath, "rows", len(rows))
			return nil
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	},
}

func init() {
	extractCmd.Flags().StringVar(&csvPath, "csv", "", "write rows to this CSV file instead of JSON on stdout")
	rootCmd.AddCommand(extractCmd)
}
