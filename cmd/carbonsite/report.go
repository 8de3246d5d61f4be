// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/carbonsite/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Render a saved analysis report",
	Long: `Report reads a saved analysis report (the JSON written by
analyze --save) and renders it as a table, CSV, or YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading report: %w", err)
	}

	var r report.AnalysisReport
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("parsing report %s: %w", args[0], err)
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "":
		report.FormatTable(r, os.Stdout)
		return nil
	case "csv":
		return report.WriteCSV(r, os.Stdout)
	case "yaml":
		return report.WriteYAML(r, os.Stdout)
	case "json":
		return report.WriteJSON(r, os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use table, csv, yaml, or json", format)
	}
}

func init() {
	reportCmd.Flags().String("format", "table", "output format: table, csv, yaml, or json")

	rootCmd.AddCommand(reportCmd)
}
