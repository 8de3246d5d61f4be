// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/carbonsite/pkg/types"
)

// FormatTable writes the ranked sites as a human-readable table to w.
func FormatTable(r AnalysisReport, w io.Writer) {
	if len(r.Sites) == 0 {
		fmt.Fprintln(w, "No sites analyzed.")
		return
	}

	fmt.Fprintf(w, "Analysis %s — %s, %.0f TPY (profile %s)\n\n",
		r.RunID, r.ProjectType, r.TargetCapacityTPY, r.Profile)

	fmt.Fprintf(w, "%-4s  %-32s  %-7s  %-6s  %-12s  %-6s  %-8s  %s\n",
		"Rank", "Site", "Country", "Score", "NPV (EUR)", "IRR %", "Payback", "Policy")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, s := range r.Sites {
		name := s.Name
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-32s  %-7s  %-6.1f  %-12.0f  %-6.1f  %-8.1f  %s\n",
			s.Rank, name, s.Country, s.Composite,
			s.Finance.NPV, s.Finance.IRRPercent, s.Finance.PaybackYears,
			s.Policy.RiskLevel)
	}

	fmt.Fprintf(w, "\n%d sites ranked\n", len(r.Sites))

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
	if r.Narrative != "" {
		fmt.Fprintf(w, "\n%s\n", r.Narrative)
	}
}

// WriteJSON writes the report as indented JSON to w.
func WriteJSON(r AnalysisReport, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes the report as YAML to w.
func WriteYAML(r AnalysisReport, w io.Writer) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteCSV writes one row per ranked site. Sub-score columns are the
// sorted union of criterion names, so every row has the same shape.
func WriteCSV(r AnalysisReport, w io.Writer) error {
	cw := csv.NewWriter(w)
	criteria := criterionNames(r.Sites)

	header := []string{"Ranking", "Site_ID", "Name", "Country", "Total_Score"}
	for _, c := range criteria {
		header = append(header, "Score_"+c)
	}
	header = append(header,
		"NPV_EUR", "IRR_Percent", "Payback_Years",
		"Policy_Readiness", "Risk_Level")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, s := range r.Sites {
		row := []string{
			strconv.Itoa(s.Rank),
			s.SiteID,
			s.Name,
			s.Country,
			formatFloat(s.Composite),
		}
		for _, c := range criteria {
			row = append(row, formatFloat(s.SubScores[c]))
		}
		row = append(row,
			formatFloat(s.Finance.NPV),
			formatFloat(s.Finance.IRRPercent),
			formatFloat(s.Finance.PaybackYears),
			formatFloat(s.Policy.ReadinessScore),
			s.Policy.RiskLevel,
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", s.SiteID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Save writes the JSON, YAML, and CSV renderings under the configured
// output directory, named by run ID. Returns the written paths.
func Save(r AnalysisReport, cfg types.ReportConfig) ([]string, error) {
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = filepath.Join("output", "reports")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	base := filepath.Join(outDir, "analysis_"+r.RunID)
	writers := []struct {
		path  string
		write func(AnalysisReport, io.Writer) error
	}{
		{base + ".json", WriteJSON},
		{base + ".yaml", WriteYAML},
		{base + ".csv", WriteCSV},
	}

	var paths []string
	for _, wr := range writers {
		f, err := os.Create(wr.path)
		if err != nil {
			return paths, fmt.Errorf("creating %s: %w", wr.path, err)
		}
		if err := wr.write(r, f); err != nil {
			f.Close()
			return paths, fmt.Errorf("writing %s: %w", wr.path, err)
		}
		if err := f.Close(); err != nil {
			return paths, fmt.Errorf("closing %s: %w", wr.path, err)
		}
		paths = append(paths, wr.path)
	}

	return paths, nil
}
