// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package advisor turns ranked analysis results into deployment
// recommendations and per-site risk notes. A generative AI backend
// supplies the narrative when configured; deterministic rules cover
// everything else, so advice never blocks a report.
package advisor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/meshintel/carbonsite/internal/finance"
	"github.com/meshintel/carbonsite/internal/policy"
)

// Backend abstracts the generative AI API so tests can supply a mock.
// Implementations return a free-form narrative for the full request.
type Backend interface {
	Advise(ctx context.Context, req Request) (string, error)
}

// Request carries the analysis context the advisor reasons over.
type Request struct {
	ProjectType       string
	TargetCapacityTPY float64
	Sites             []SiteContext
}

// SiteContext is one ranked site with its financial and policy results.
type SiteContext struct {
	Rank      int
	SiteID    string
	Name      string
	Country   string
	Composite float64

	InfrastructureScore float64
	PowerPriceEURMWh    float64

	Finance finance.Metrics
	Policy  policy.Assessment
}

// Advice is the advisor output for one analysis run.
type Advice struct {
	// Narrative is the AI-generated assessment, empty when the backend
	// is disabled or failed.
	Narrative string

	// Recommendations are deterministic project-level recommendations.
	Recommendations []string

	// Warnings records backend failures; they never fail the run.
	Warnings []string
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// Advise produces recommendations for the request. The AI backend is
// optional: when nil or failing after retries, the rule-based
// recommendations stand alone and the failure becomes a warning.
func Advise(ctx context.Context, backend Backend, req Request, maxRetries int) Advice {
	advice := Advice{Recommendations: Recommendations(req)}
	if backend == nil {
		return advice
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	narrative, err := adviseWithRetry(ctx, backend, req, maxRetries)
	if err != nil {
		advice.Warnings = append(advice.Warnings, fmt.Sprintf("advisor backend: %v", err))
		return advice
	}
	advice.Narrative = narrative
	return advice
}

// adviseWithRetry calls the backend with exponential backoff.
func adviseWithRetry(ctx context.Context, backend Backend, req Request, maxRetries int) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		narrative, err := backend.Advise(ctx, req)
		if err == nil {
			return narrative, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// Recommendations derives project-level recommendations from the
// ranked results. Deterministic: same request, same advice.
func Recommendations(req Request) []string {
	var recs []string

	if len(req.Sites) > 0 {
		top := req.Sites[0]
		recs = append(recs, fmt.Sprintf(
			"Primary recommendation: deploy at %s (%s) with score %.1f/100",
			top.Name, top.Country, top.Composite))
	}

	switch {
	case req.TargetCapacityTPY <= 100:
		recs = append(recs, "Consider starting with a smaller pilot to validate technology and market")
	case req.TargetCapacityTPY >= 500:
		recs = append(recs, "Large capacity may require additional financing and risk mitigation")
	}

	recs = append(recs,
		"Leverage EU Green Deal and regional incentives for project financing",
		"Position the project for CBAM competitive advantage in applicable sectors",
		"Explore EU Innovation Fund and regional grant opportunities",
		"Consider a JDA/JV structure with the host facility to share risks",
	)
	return recs
}

// SiteRisks derives risk notes for one site from its financial and
// policy results.
func SiteRisks(site SiteContext) []string {
	var risks []string

	if site.Finance.PaybackYears > 5 {
		risks = append(risks, "Long payback period may affect financing")
	}
	if site.Finance.IRRPercent < 15 {
		risks = append(risks, "Low IRR may not meet investor requirements")
	}
	if site.Policy.RiskLevel == "High" {
		risks = append(risks, "High policy uncertainty in target region")
	}
	if site.InfrastructureScore > 0 && site.InfrastructureScore < 70 {
		risks = append(risks, "Infrastructure limitations may increase costs")
	}
	if site.PowerPriceEURMWh > 90 {
		risks = append(risks, "Energy costs and availability concerns")
	}

	return risks
}

// MitigationStrategies pairs identified risks with countermeasures.
func MitigationStrategies(site SiteContext) []string {
	var strategies []string

	if site.Finance.PaybackYears > 5 {
		strategies = append(strategies,
			"Consider phased deployment to reduce initial CAPEX",
			"Explore government grants and incentives")
	}
	if site.Policy.RiskLevel == "High" {
		strategies = append(strategies,
			"Engage with local policymakers early",
			"Develop a flexible project design")
	}
	if site.InfrastructureScore > 0 && site.InfrastructureScore < 70 {
		strategies = append(strategies,
			"Partner with local infrastructure providers",
			"Consider a modular system design")
	}

	return strategies
}
