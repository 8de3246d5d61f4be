// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meshintel/carbonsite/internal/advisor"
	"github.com/meshintel/carbonsite/internal/catalog"
	"github.com/meshintel/carbonsite/internal/finance"
	"github.com/meshintel/carbonsite/internal/policy"
	"github.com/meshintel/carbonsite/internal/report"
	"github.com/meshintel/carbonsite/internal/scoring"
	"github.com/meshintel/carbonsite/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [site-ids...]",
	Short: "Rank candidate sites and model project economics",
	Long: `Analyze runs the full evaluation pipeline over catalog sites: weighted
multi-criteria scoring, per-site financial modeling, EU policy
assessment, and advisory recommendations, assembled into one ranked
report.

Weights are given as --weight criterion=value pairs; criteria missing
from the weights default to zero, unrecognized names are ignored.
Results are recomputed from scratch on every run.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	sites, err := analysisSites(ctx, cmd, args)
	if err != nil {
		return err
	}

	projectType, _ := cmd.Flags().GetString("project")
	capacity, _ := cmd.Flags().GetFloat64("capacity")
	product, _ := cmd.Flags().GetString("product")
	project := policy.Project{
		ProductType:     product,
		CO2ReductionTPY: capacity,
		Year:            time.Now().Year(),
	}

	// Sites with no explicit regulatory score inherit the policy
	// readiness score so the scorer sees real signal instead of the
	// missing-attribute substitute. Non-EU sites stay unset.
	for i := range sites {
		if _, ok := sites[i].Attributes[types.AttrRegulatory]; ok {
			continue
		}
		assessment, err := policy.Assess(sites[i], project)
		if err != nil {
			continue
		}
		if sites[i].Attributes == nil {
			sites[i].Attributes = make(map[string]float64)
		}
		sites[i].Attributes[types.AttrRegulatory] = assessment.ReadinessScore
	}

	// Scoring.
	profileName, _ := cmd.Flags().GetString("profile")
	profile, err := scoring.ProfileByName(profileName)
	if err != nil {
		return err
	}

	weightArgs, _ := cmd.Flags().GetStringArray("weight")
	weights, err := parseWeights(weightArgs)
	if err != nil {
		return err
	}

	missingName, _ := cmd.Flags().GetString("missing")
	missing, err := scoring.ParseMissingPolicy(missingName)
	if err != nil {
		return err
	}

	scored, err := scoring.Score(sites, weights, scoring.Options{Profile: profile, Missing: missing})
	if err != nil {
		return err
	}

	topN, _ := cmd.Flags().GetInt("top")
	if topN > 0 && len(scored) > topN {
		scored = scored[:topN]
	}

	siteByID := make(map[string]types.Site, len(sites))
	for _, s := range sites {
		siteByID[s.ID] = s
	}

	// Finance and policy per ranked site. Policy failures (non-EU sites
	// under the EU framework) degrade to warnings.
	financeCfg := financeConfigFromFlags(cmd)

	var warnings []string
	financeBySite := make(map[string]finance.Metrics, len(scored))
	policyBySite := make(map[string]policy.Assessment, len(scored))
	for _, s := range scored {
		site := siteByID[s.SiteID]

		metrics, err := finance.Evaluate(site, financeCfg, projectType, capacity)
		if err != nil {
			return fmt.Errorf("financial model for %s: %w", s.SiteID, err)
		}
		financeBySite[s.SiteID] = metrics

		assessment, err := policy.Assess(site, project)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("policy: %v", err))
			continue
		}
		policyBySite[s.SiteID] = assessment
	}

	// Advisor: rule-based always, AI narrative when a key is configured.
	advReq := advisor.Request{
		ProjectType:       projectType,
		TargetCapacityTPY: capacity,
	}
	risks := make(map[string][]string, len(scored))
	mitigations := make(map[string][]string, len(scored))
	for _, s := range scored {
		site := siteByID[s.SiteID]
		sc := advisor.SiteContext{
			Rank:                s.Rank,
			SiteID:              s.SiteID,
			Name:                s.Name,
			Country:             s.Country,
			Composite:           s.Composite,
			InfrastructureScore: site.Attributes[types.AttrInfrastructure],
			PowerPriceEURMWh:    site.Attributes[types.AttrPowerPriceEURMWh],
			Finance:             financeBySite[s.SiteID],
			Policy:              policyBySite[s.SiteID],
		}
		advReq.Sites = append(advReq.Sites, sc)
		risks[s.SiteID] = advisor.SiteRisks(sc)
		mitigations[s.SiteID] = advisor.MitigationStrategies(sc)
	}

	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	advice := advisor.Advise(ctx, advisorBackend(cmd), advReq, maxRetries)
	warnings = append(warnings, advice.Warnings...)

	r := report.Build(report.Input{
		ProjectType:       projectType,
		TargetCapacityTPY: capacity,
		Profile:           profileName,
		Weights:           weights,
		MissingPolicy:     missingName,
		Scored:            scored,
		Finance:           financeBySite,
		Policy:            policyBySite,
		Risks:             risks,
		Mitigations:       mitigations,
		Narrative:         advice.Narrative,
		Recommendations:   advice.Recommendations,
		Warnings:          warnings,
	})

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := report.WriteJSON(r, os.Stdout); err != nil {
			return err
		}
	} else {
		report.FormatTable(r, os.Stdout)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		outDir, _ := cmd.Flags().GetString("output-dir")
		paths, err := report.Save(r, types.ReportConfig{OutputDir: outDir})
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(os.Stderr, "Saved %s\n", p)
		}
	}

	return nil
}

// analysisSites resolves the candidate set: the built-in sample dataset
// with --sample, specific catalog sites by ID, or the filtered catalog.
func analysisSites(ctx context.Context, cmd *cobra.Command, args []string) ([]types.Site, error) {
	if useSample, _ := cmd.Flags().GetBool("sample"); useSample {
		return catalog.SampleSites(), nil
	}

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if len(args) > 0 {
		return store.Get(ctx, args)
	}

	countries, _ := cmd.Flags().GetStringSlice("country")
	facilityType, _ := cmd.Flags().GetString("facility-type")
	return store.List(ctx, catalog.Filter{Countries: countries, FacilityType: facilityType})
}

// parseWeights converts repeated criterion=value flags into a weight map.
func parseWeights(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	weights := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q: want criterion=value", pair)
		}
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", pair, err)
		}
		weights[name] = w
	}
	return weights, nil
}

func financeConfigFromFlags(cmd *cobra.Command) types.FinanceConfig {
	discountRate, _ := cmd.Flags().GetFloat64("discount-rate")
	coPrice, _ := cmd.Flags().GetFloat64("co-price")
	equipmentCost, _ := cmd.Flags().GetFloat64("equipment-cost")
	return types.FinanceConfig{
		DiscountRate:           discountRate,
		COPriceEURTon:          coPrice,
		EquipmentCostPer100TPY: equipmentCost,
	}
}

// advisorBackend returns the AI backend, or nil when disabled or no key
// is configured.
func advisorBackend(cmd *cobra.Command) advisor.Backend {
	if noAI, _ := cmd.Flags().GetBool("no-ai"); noAI {
		return nil
	}
	keyFlag, _ := cmd.Flags().GetString("groq-key")
	apiKey := secretDefault("groq-api-key", keyFlag)
	if apiKey == "" {
		return nil
	}
	model, _ := cmd.Flags().GetString("model")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return &advisor.GroqBackend{
		APIKey: apiKey,
		Model:  model,
		Client: &http.Client{Timeout: timeout},
	}
}

func init() {
	analyzeCmd.Flags().String("data-dir", "data", "base directory for catalog data (contains index/)")
	analyzeCmd.Flags().Int("max-results", 20, "default maximum number of find results")
	analyzeCmd.Flags().Bool("sample", false, "analyze the built-in sample dataset instead of the catalog")
	analyzeCmd.Flags().StringSlice("country", nil, "filter by country code (repeatable)")
	analyzeCmd.Flags().String("facility-type", "", "filter by facility type")

	analyzeCmd.Flags().String("profile", "global", "criterion profile: global or eu")
	analyzeCmd.Flags().StringArray("weight", nil, "criterion weight as criterion=value (repeatable)")
	analyzeCmd.Flags().String("missing", "neutral", "missing-attribute policy: neutral, zero, or mean")
	analyzeCmd.Flags().Int("top", 5, "number of ranked sites to report (0 = all)")

	analyzeCmd.Flags().String("project", "CO2-to-CO pilot", "project type description")
	analyzeCmd.Flags().Float64("capacity", 100, "target CO2 input capacity in tons per year")
	analyzeCmd.Flags().String("product", "carbon_monoxide", "output product for CBAM scope matching")
	analyzeCmd.Flags().Float64("discount-rate", 0.10, "discount rate (WACC) for NPV")
	analyzeCmd.Flags().Float64("co-price", 800, "product sale price in EUR per ton")
	analyzeCmd.Flags().Float64("equipment-cost", 2_000_000, "equipment CAPEX per 100 TPY of capacity")

	analyzeCmd.Flags().Bool("no-ai", false, "skip the AI advisory narrative")
	analyzeCmd.Flags().String("groq-key", "", "Groq API key (default: .secrets/groq-api-key)")
	analyzeCmd.Flags().String("model", advisor.DefaultModel, "chat model for the AI advisor")
	analyzeCmd.Flags().Int("max-retries", 3, "retry attempts for the AI advisor")
	analyzeCmd.Flags().Duration("timeout", 60*time.Second, "HTTP request timeout for the AI advisor")

	analyzeCmd.Flags().Bool("json", false, "output the report as JSON")
	analyzeCmd.Flags().Bool("save", false, "save the report under the output directory")
	analyzeCmd.Flags().String("output-dir", "output/reports", "directory for saved reports")

	rootCmd.AddCommand(analyzeCmd)
}
