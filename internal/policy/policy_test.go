// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/carbonsite/pkg/types"
)

func TestIsEUMember(t *testing.T) {
	assert.True(t, IsEUMember("DE"))
	assert.True(t, IsEUMember("nl"))
	assert.False(t, IsEUMember("GB"))
	assert.False(t, IsEUMember("US"))
	assert.False(t, IsEUMember(""))
}

func TestETSPriceTrend(t *testing.T) {
	assert.Equal(t, 85.0, ETSPrice(2023))
	assert.Equal(t, 96.0, ETSPrice(2026))
	assert.Equal(t, 115.0, ETSPrice(2030))
	// Outside the table falls back to the baseline.
	assert.Equal(t, 85.0, ETSPrice(2040))
	assert.Equal(t, 85.0, ETSPrice(2019))
}

func TestProductSectors(t *testing.T) {
	tests := []struct {
		product string
		want    []string
	}{
		{"methanol", []string{"chemicals"}},
		{"Methanol", []string{"chemicals"}},
		{"hydrogen", []string{"hydrogen"}},
		{"cement", []string{"cement"}},
		{"carbon_monoxide", []string{"chemicals"}},
		{"plastic", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductSectors(tt.product))
		})
	}
}

func TestAssessRejectsNonEUSite(t *testing.T) {
	site := types.Site{ID: "UK001", Country: "GB"}
	_, err := Assess(site, Project{ProductType: "methanol", CO2ReductionTPY: 100, Year: 2026})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the EU policy framework")
}

func TestAssessETSSavings(t *testing.T) {
	site := types.Site{ID: "DE001", Country: "DE"}
	a, err := Assess(site, Project{ProductType: "methanol", CO2ReductionTPY: 100, Year: 2026})
	require.NoError(t, err)

	assert.Equal(t, 96.0, a.ETSPriceEURTon)
	assert.Equal(t, 9_600.0, a.AnnualETSSavingsEUR)
	// 2027-2031: 100+105+110+115+85 (falls back past 2030) = 515 EUR/ton.
	assert.Equal(t, 51_500.0, a.FiveYearETSSavingsEUR)
}

func TestAssessCBAMAndIncentives(t *testing.T) {
	site := types.Site{ID: "NL001", Country: "NL"}
	a, err := Assess(site, Project{ProductType: "methanol", CO2ReductionTPY: 100, Year: 2026})
	require.NoError(t, err)

	assert.True(t, a.CBAMApplicable)
	assert.Equal(t, []string{"chemicals"}, a.CBAMSectors)
	assert.Equal(t, []string{"SDE++", "Topsector Energy"}, a.Grants)
	assert.Equal(t, 20.0, a.TaxBenefitPercent)
	assert.Equal(t, 85.0, a.StabilityScore)
}

func TestAssessCountryWithoutCuratedIncentives(t *testing.T) {
	site := types.Site{ID: "ES001", Country: "ES"}
	a, err := Assess(site, Project{ProductType: "methanol", CO2ReductionTPY: 100, Year: 2026})
	require.NoError(t, err)

	assert.Empty(t, a.Grants)
	assert.Equal(t, 0.0, a.TaxBenefitPercent)
	assert.Equal(t, defaultStability, a.StabilityScore)
}

func TestReadinessScore(t *testing.T) {
	tests := []struct {
		name            string
		etsPrice        float64
		cbam            bool
		carbonIntensity float64
		want            float64
	}{
		{"best case", 96, true, 150, 100},
		{"clean grid no cbam", 96, false, 150, 70},
		{"dirty grid", 96, true, 900, 70},
		{"midband intensity", 96, true, 500, 40 + 30 + 15},
		{"low ets price", 40, false, 900, 0},
		{"ets midband", 60, false, 150, 20 + 30},
		{"unknown intensity midpoint", 96, true, 0, 40 + 30 + 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, readinessScore(tt.etsPrice, tt.cbam, tt.carbonIntensity), 1e-9)
		})
	}
}

func TestAssessRiskLevels(t *testing.T) {
	// High ETS price + CBAM + clean grid lands in the Low risk band.
	clean := types.Site{ID: "DE001", Country: "DE", Attributes: map[string]float64{
		types.AttrCarbonIntensity: 150,
	}}
	a, err := Assess(clean, Project{ProductType: "methanol", CO2ReductionTPY: 100, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, "Low", a.RiskLevel)

	// Out-of-scope product with a dirty grid drops to High risk.
	dirty := types.Site{ID: "PL001", Country: "PL", Attributes: map[string]float64{
		types.AttrCarbonIntensity: 900,
	}}
	a, err = Assess(dirty, Project{ProductType: "plastic", CO2ReductionTPY: 100, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, "High", a.RiskLevel)
}
