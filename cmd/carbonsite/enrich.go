// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meshintel/carbonsite/internal/catalog"
	"github.com/meshintel/carbonsite/internal/enrich"
	"github.com/meshintel/carbonsite/pkg/types"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich [site-ids...]",
	Short: "Fetch live attributes for catalog sites",
	Long: `Enrich fetches per-site attributes from external data sources: grid
carbon intensity (Electricity Maps), day-ahead power prices
(Energy-Charts), and proximity to known CO2 sources and offtakers.
Fetched attributes are stored in the catalog for later analysis.

Without arguments every catalog site is enriched. A failing backend
degrades to a warning; the affected attributes stay unset.`,
	RunE: runEnrich,
}

func runEnrich(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	var sites []types.Site
	if len(args) > 0 {
		sites, err = store.Get(ctx, args)
	} else {
		sites, err = store.List(ctx, catalog.Filter{})
	}
	if err != nil {
		return err
	}
	if len(sites) == 0 {
		return fmt.Errorf("no sites to enrich: import sites first")
	}

	cfg := enrichConfigFromFlags(cmd)
	enrichers := buildEnrichers(cmd, cfg)
	if len(enrichers) == 0 {
		return fmt.Errorf("all enrichment backends disabled")
	}

	cache := enrich.NewCache(cfg.CacheTTL, nil)
	result := enrich.Run(ctx, sites, enrichers, cache, os.Stdout)

	for siteID, attrs := range result.Attributes {
		if err := store.SetAttributes(ctx, siteID, attrs, "enrich"); err != nil {
			return fmt.Errorf("storing attributes for %s: %w", siteID, err)
		}
	}

	fmt.Printf("Enriched %d site(s), %d warning(s)\n", len(result.Attributes), len(result.Warnings))
	return nil
}

func enrichConfigFromFlags(cmd *cobra.Command) types.EnrichConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")
	apiKey, _ := cmd.Flags().GetString("electricity-maps-key")
	carbonIntensity, _ := cmd.Flags().GetBool("carbon-intensity")
	powerPrice, _ := cmd.Flags().GetBool("power-price")

	return types.EnrichConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: "carbonsite/" + version,
		},
		CacheTTL:              cacheTTL,
		EnableCarbonIntensity: carbonIntensity,
		EnablePowerPrice:      powerPrice,
		ElectricityMapsAPIKey: secretDefault("electricity-maps-api-key", apiKey),
	}
}

func buildEnrichers(cmd *cobra.Command, cfg types.EnrichConfig) []enrich.Enricher {
	client := &http.Client{Timeout: cfg.Timeout}

	var enrichers []enrich.Enricher
	if cfg.EnableCarbonIntensity {
		enrichers = append(enrichers, &enrich.CarbonIntensityBackend{Client: client, Config: cfg})
	}
	if cfg.EnablePowerPrice {
		enrichers = append(enrichers, &enrich.PowerPriceBackend{Client: client, Config: cfg})
	}
	if distances, _ := cmd.Flags().GetBool("distances"); distances {
		enrichers = append(enrichers, &enrich.DistanceEnricher{
			Sources:   catalog.SampleCO2Sources(),
			Offtakers: catalog.SampleOfftakers(),
		})
	}
	return enrichers
}

func init() {
	enrichCmd.Flags().String("data-dir", "data", "base directory for catalog data (contains index/)")
	enrichCmd.Flags().Int("max-results", 20, "default maximum number of find results")
	enrichCmd.Flags().Duration("timeout", 30*time.Second, "HTTP request timeout")
	enrichCmd.Flags().Duration("cache-ttl", enrich.DefaultCacheTTL, "attribute cache freshness window")
	enrichCmd.Flags().Bool("carbon-intensity", true, "fetch grid carbon intensity")
	enrichCmd.Flags().Bool("power-price", true, "fetch day-ahead power prices")
	enrichCmd.Flags().Bool("distances", true, "compute CO2 source and offtaker proximity")
	enrichCmd.Flags().String("electricity-maps-key", "", "Electricity Maps API key (default: .secrets/electricity-maps-api-key)")

	rootCmd.AddCommand(enrichCmd)
}
