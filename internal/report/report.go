// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles analysis results into a single document and
// renders it as a table, CSV, JSON, or YAML. Reports are derived
// artifacts: every analysis run produces a fresh one and nothing feeds
// back into the catalog.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/meshintel/carbonsite/internal/finance"
	"github.com/meshintel/carbonsite/internal/policy"
	"github.com/meshintel/carbonsite/pkg/types"
)

// SiteReport is one ranked site with its full results.
type SiteReport struct {
	Rank      int                `json:"rank" yaml:"rank"`
	SiteID    string             `json:"site_id" yaml:"site_id"`
	Name      string             `json:"name" yaml:"name"`
	Country   string             `json:"country" yaml:"country"`
	Composite float64            `json:"composite_score" yaml:"composite_score"`
	SubScores map[string]float64 `json:"sub_scores" yaml:"sub_scores"`

	Finance finance.Metrics   `json:"finance" yaml:"finance"`
	Policy  policy.Assessment `json:"policy" yaml:"policy"`

	Risks       []string `json:"risks,omitempty" yaml:"risks,omitempty"`
	Mitigations []string `json:"mitigations,omitempty" yaml:"mitigations,omitempty"`
}

// AnalysisReport is the full document for one analysis run.
type AnalysisReport struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	ProjectType       string             `json:"project_type" yaml:"project_type"`
	TargetCapacityTPY float64            `json:"target_capacity_tpy" yaml:"target_capacity_tpy"`
	Profile           string             `json:"profile" yaml:"profile"`
	Weights           map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
	MissingPolicy     string             `json:"missing_policy,omitempty" yaml:"missing_policy,omitempty"`

	Sites []SiteReport `json:"sites" yaml:"sites"`

	Narrative       string   `json:"narrative,omitempty" yaml:"narrative,omitempty"`
	Recommendations []string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Warnings        []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Input collects the per-stage results Build assembles into a report.
// The maps are keyed by site ID; absent entries leave the corresponding
// report section zero.
type Input struct {
	ProjectType       string
	TargetCapacityTPY float64
	Profile           string
	Weights           map[string]float64
	MissingPolicy     string

	Scored      []types.ScoredSite
	Finance     map[string]finance.Metrics
	Policy      map[string]policy.Assessment
	Risks       map[string][]string
	Mitigations map[string][]string

	Narrative       string
	Recommendations []string
	Warnings        []string
}

// Build assembles the report, assigning a fresh run ID and timestamp.
// Scored sites are assumed already ranked.
func Build(in Input) AnalysisReport {
	r := AnalysisReport{
		RunID:             uuid.NewString(),
		GeneratedAt:       time.Now().UTC(),
		ProjectType:       in.ProjectType,
		TargetCapacityTPY: in.TargetCapacityTPY,
		Profile:           in.Profile,
		Weights:           in.Weights,
		MissingPolicy:     in.MissingPolicy,
		Narrative:         in.Narrative,
		Recommendations:   in.Recommendations,
		Warnings:          in.Warnings,
	}

	for _, s := range in.Scored {
		r.Sites = append(r.Sites, SiteReport{
			Rank:        s.Rank,
			SiteID:      s.SiteID,
			Name:        s.Name,
			Country:     s.Country,
			Composite:   s.Composite,
			SubScores:   s.SubScores,
			Finance:     in.Finance[s.SiteID],
			Policy:      in.Policy[s.SiteID],
			Risks:       in.Risks[s.SiteID],
			Mitigations: in.Mitigations[s.SiteID],
		})
	}

	return r
}

// criterionNames returns the sorted union of sub-score criterion names
// across all sites, for stable CSV columns.
func criterionNames(sites []SiteReport) []string {
	seen := map[string]bool{}
	for _, s := range sites {
		for name := range s.SubScores {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
