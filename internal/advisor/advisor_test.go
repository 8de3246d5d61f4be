// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package advisor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/carbonsite/internal/finance"
	"github.com/meshintel/carbonsite/internal/policy"
)

// mockBackend returns canned narratives or errors, failing the first
// failures calls.
type mockBackend struct {
	narrative string
	failures  int
	calls     int
}

func (m *mockBackend) Advise(_ context.Context, _ Request) (string, error) {
	m.calls++
	if m.calls <= m.failures {
		return "", fmt.Errorf("rate limited")
	}
	return m.narrative, nil
}

func rankedRequest() Request {
	return Request{
		ProjectType:       "CO2-to-CO pilot",
		TargetCapacityTPY: 100,
		Sites: []SiteContext{
			{Rank: 1, SiteID: "DE001", Name: "Ludwigshafen Chemical Park", Country: "DE", Composite: 87.3},
			{Rank: 2, SiteID: "NL001", Name: "Rotterdam Botlek", Country: "NL", Composite: 81.0},
		},
	}
}

func TestRecommendationsPrimarySite(t *testing.T) {
	recs := Recommendations(rankedRequest())
	require.NotEmpty(t, recs)
	assert.Equal(t, "Primary recommendation: deploy at Ludwigshafen Chemical Park (DE) with score 87.3/100", recs[0])
}

func TestRecommendationsCapacityBands(t *testing.T) {
	tests := []struct {
		name     string
		capacity float64
		want     string
		absent   string
	}{
		{"pilot scale", 100, "smaller pilot", "additional financing"},
		{"large scale", 500, "additional financing", "smaller pilot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := rankedRequest()
			req.TargetCapacityTPY = tt.capacity
			joined := fmt.Sprint(Recommendations(req))
			assert.Contains(t, joined, tt.want)
			assert.NotContains(t, joined, tt.absent)
		})
	}
}

func TestRecommendationsNoSites(t *testing.T) {
	recs := Recommendations(Request{TargetCapacityTPY: 200})
	for _, rec := range recs {
		assert.NotContains(t, rec, "Primary recommendation")
	}
	assert.NotEmpty(t, recs)
}

func TestSiteRisks(t *testing.T) {
	tests := []struct {
		name string
		site SiteContext
		want []string
	}{
		{
			name: "healthy site",
			site: SiteContext{
				Finance:             finance.Metrics{PaybackYears: 3, IRRPercent: 22},
				Policy:              policy.Assessment{RiskLevel: "Low"},
				InfrastructureScore: 85,
				PowerPriceEURMWh:    60,
			},
			want: nil,
		},
		{
			name: "slow payback and weak returns",
			site: SiteContext{
				Finance: finance.Metrics{PaybackYears: 8, IRRPercent: 9},
				Policy:  policy.Assessment{RiskLevel: "Low"},
			},
			want: []string{
				"Long payback period may affect financing",
				"Low IRR may not meet investor requirements",
			},
		},
		{
			name: "policy and infrastructure gaps",
			site: SiteContext{
				Finance:             finance.Metrics{PaybackYears: 3, IRRPercent: 20},
				Policy:              policy.Assessment{RiskLevel: "High"},
				InfrastructureScore: 55,
				PowerPriceEURMWh:    110,
			},
			want: []string{
				"High policy uncertainty in target region",
				"Infrastructure limitations may increase costs",
				"Energy costs and availability concerns",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SiteRisks(tt.site))
		})
	}
}

func TestSiteRisksUnknownInfrastructureSkipped(t *testing.T) {
	// A zero infrastructure score means unknown, not bad.
	site := SiteContext{
		Finance: finance.Metrics{PaybackYears: 3, IRRPercent: 20},
		Policy:  policy.Assessment{RiskLevel: "Low"},
	}
	assert.NotContains(t, SiteRisks(site), "Infrastructure limitations may increase costs")
}

func TestMitigationStrategiesPairRisks(t *testing.T) {
	site := SiteContext{
		Finance:             finance.Metrics{PaybackYears: 8},
		Policy:              policy.Assessment{RiskLevel: "High"},
		InfrastructureScore: 55,
	}
	strategies := MitigationStrategies(site)
	assert.Contains(t, strategies, "Consider phased deployment to reduce initial CAPEX")
	assert.Contains(t, strategies, "Engage with local policymakers early")
	assert.Contains(t, strategies, "Partner with local infrastructure providers")
}

func TestAdviseWithoutBackend(t *testing.T) {
	advice := Advise(context.Background(), nil, rankedRequest(), 3)
	assert.Empty(t, advice.Narrative)
	assert.Empty(t, advice.Warnings)
	assert.NotEmpty(t, advice.Recommendations)
}

func TestAdviseBackendNarrative(t *testing.T) {
	backend := &mockBackend{narrative: "Deploy at Ludwigshafen."}
	advice := Advise(context.Background(), backend, rankedRequest(), 3)
	assert.Equal(t, "Deploy at Ludwigshafen.", advice.Narrative)
	assert.Empty(t, advice.Warnings)
}

func TestAdviseRetriesTransientFailures(t *testing.T) {
	origBackoff := backoffBase
	backoffBase = time.Millisecond
	defer func() { backoffBase = origBackoff }()

	backend := &mockBackend{narrative: "ok", failures: 2}
	advice := Advise(context.Background(), backend, rankedRequest(), 3)
	assert.Equal(t, "ok", advice.Narrative)
	assert.Equal(t, 3, backend.calls)
}

func TestAdviseBackendFailureBecomesWarning(t *testing.T) {
	origBackoff := backoffBase
	backoffBase = time.Millisecond
	defer func() { backoffBase = origBackoff }()

	backend := &mockBackend{failures: 10}
	advice := Advise(context.Background(), backend, rankedRequest(), 2)
	assert.Empty(t, advice.Narrative)
	require.Len(t, advice.Warnings, 1)
	assert.Contains(t, advice.Warnings[0], "advisor backend")
	// Rule-based recommendations survive the failure.
	assert.NotEmpty(t, advice.Recommendations)
}
