// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/carbonsite/internal/catalog"
	"github.com/meshintel/carbonsite/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the candidate site catalog (import, list, find)",
	Long: `Catalog manages a local SQLite catalog of candidate sites. Use
subcommands to import sites from YAML/JSON files or the built-in sample
dataset, list them with filters, or search them by free text.`,
}

// --- import subcommand ---

var catalogImportCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import candidate sites into the catalog",
	Long: `Import reads candidate sites from YAML or JSON files and upserts them
into the catalog. Re-importing a site ID updates it in place. With
--sample, the built-in European industrial cluster dataset is imported
instead of files.`,
	RunE: runCatalogImport,
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	useSample, _ := cmd.Flags().GetBool("sample")
	if !useSample && len(args) == 0 {
		return fmt.Errorf("no input: provide site files or --sample")
	}

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	var total catalog.ImportSummary

	if useSample {
		summary, err := store.Import(ctx, catalog.SampleSites(), "sample")
		if err != nil {
			return err
		}
		total = summary
	}

	for _, path := range args {
		sites, err := catalog.LoadFile(path)
		if err != nil {
			return err
		}
		summary, err := store.Import(ctx, sites, path)
		if err != nil {
			return err
		}
		total.Imported += summary.Imported
		total.Updated += summary.Updated
		total.Failed += summary.Failed
	}

	fmt.Printf("Imported %d site(s), updated %d, failed %d\n",
		total.Imported, total.Updated, total.Failed)
	if total.HasFailures() {
		return fmt.Errorf("%d site(s) failed import", total.Failed)
	}
	return nil
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog sites with optional filters",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	countries, _ := cmd.Flags().GetStringSlice("country")
	facilityType, _ := cmd.Flags().GetString("facility-type")

	sites, err := store.List(context.Background(), catalog.Filter{
		Countries:    countries,
		FacilityType: facilityType,
	})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSites(sites, jsonOutput)
}

// --- find subcommand ---

var catalogFindCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Search catalog sites by free text",
	Long: `Find searches site names, regions, and descriptions with full-text
search and returns sites ranked by relevance.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCatalogFind,
}

func runCatalogFind(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	sites, err := store.Find(context.Background(), query, limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSites(sites, jsonOutput)
}

// --- shared helpers ---

func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = "data"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.CatalogConfig{
		DataDir:    dataDir,
		MaxResults: maxResults,
	}
}

func formatSites(sites []types.Site, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sites)
	}

	if len(sites) == 0 {
		fmt.Println("No sites found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-8s  %-32s  %-7s  %-20s  %s\n",
		"ID", "Name", "Country", "Facility", "Attributes")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, s := range sites {
		name := s.Name
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-8s  %-32s  %-7s  %-20s  %d\n",
			s.ID, name, s.Country, s.FacilityType, len(s.Attributes))
	}

	fmt.Fprintf(os.Stdout, "\n%d site(s)\n", len(sites))
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("data-dir", "data", "base directory for catalog data (contains index/)")
	catalogCmd.PersistentFlags().Int("max-results", 20, "default maximum number of find results")

	catalogImportCmd.Flags().Bool("sample", false, "import the built-in sample dataset")

	catalogListCmd.Flags().StringSlice("country", nil, "filter by country code (repeatable)")
	catalogListCmd.Flags().String("facility-type", "", "filter by facility type")
	catalogListCmd.Flags().Bool("json", false, "output sites as JSON")

	catalogFindCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogFindCmd.Flags().Bool("json", false, "output sites as JSON")

	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogFindCmd)

	rootCmd.AddCommand(catalogCmd)
}
