// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package policy evaluates the EU regulatory environment for a
// candidate site: ETS allowance savings, CBAM applicability, national
// incentive programs, and an overall 0-100 readiness score. All inputs
// are static tables; the package does no I/O.
package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/meshintel/carbonsite/pkg/types"
)

// euMembers holds the ISO 3166-1 alpha-2 codes of the EU-27.
var euMembers = map[string]bool{
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true,
	"CZ": true, "DE": true, "DK": true, "EE": true, "FI": true,
	"FR": true, "GR": true, "HU": true, "IE": true, "IT": true,
	"LV": true, "LT": true, "LU": true, "MT": true, "NL": true,
	"PL": true, "PT": true, "RO": true, "SK": true, "SI": true,
	"ES": true, "SE": true,
}

// etsPriceTrend projects EU ETS allowance prices in EUR per ton.
var etsPriceTrend = map[int]float64{
	2023: 85.0,
	2024: 88.0,
	2025: 92.0,
	2026: 96.0,
	2027: 100.0,
	2028: 105.0,
	2029: 110.0,
	2030: 115.0,
}

// fallbackETSPrice is used for years outside the trend table.
const fallbackETSPrice = 85.0

// cbamSectors maps CBAM sectors to the products in their scope.
var cbamSectors = map[string][]string{
	"cement":      {"clinker", "cement", "lime"},
	"iron_steel":  {"iron_ore", "pig_iron", "steel_products"},
	"aluminium":   {"alumina", "aluminium"},
	"fertilisers": {"ammonia", "nitric_acid", "urea"},
	"electricity": {"electricity"},
	"hydrogen":    {"hydrogen"},
	"chemicals":   {"ethylene", "propylene", "benzene", "methanol", "carbon_monoxide"},
}

// Incentives describes one country's support programs.
type Incentives struct {
	Grants            []string
	TaxBenefitPercent float64
	StabilityScore    float64
}

// countryIncentives covers the markets with curated incentive data.
// Countries outside the table get defaultStability and no grants.
var countryIncentives = map[string]Incentives{
	"DE": {
		Grants:            []string{"KfW Energy Efficiency", "BMWK Innovation"},
		TaxBenefitPercent: 15.0,
		StabilityScore:    90,
	},
	"NL": {
		Grants:            []string{"SDE++", "Topsector Energy"},
		TaxBenefitPercent: 20.0,
		StabilityScore:    85,
	},
	"BE": {
		Grants:            []string{"Wallonia Green Deal", "Flanders Innovation"},
		TaxBenefitPercent: 18.0,
		StabilityScore:    80,
	},
	"FR": {
		Grants:            []string{"ADEME", "France Relance"},
		TaxBenefitPercent: 12.0,
		StabilityScore:    75,
	},
	"IT": {
		Grants:            []string{"Piano Nazionale", "Transizione 4.0"},
		TaxBenefitPercent: 10.0,
		StabilityScore:    70,
	},
}

const defaultStability = 70.0

// IsEUMember reports whether the country code belongs to the EU-27.
func IsEUMember(country string) bool {
	return euMembers[strings.ToUpper(country)]
}

// ETSPrice returns the projected allowance price for a year, falling
// back to the 2023 baseline outside the trend table.
func ETSPrice(year int) float64 {
	if price, ok := etsPriceTrend[year]; ok {
		return price
	}
	return fallbackETSPrice
}

// ProductSectors returns the CBAM sectors that cover a product type,
// sorted for deterministic output. Empty means out of scope.
func ProductSectors(productType string) []string {
	product := strings.ToLower(strings.TrimSpace(productType))
	var sectors []string
	for sector, products := range cbamSectors {
		for _, p := range products {
			if p == product {
				sectors = append(sectors, sector)
				break
			}
		}
	}
	sort.Strings(sectors)
	return sectors
}

// CountryIncentives returns the incentive programs for a country, and
// whether curated data exists for it.
func CountryIncentives(country string) (Incentives, bool) {
	inc, ok := countryIncentives[strings.ToUpper(country)]
	return inc, ok
}

// Project describes the facility under policy assessment.
type Project struct {
	// ProductType is the output product, matched against CBAM scope
	// (e.g. "methanol", "hydrogen", "carbon_monoxide").
	ProductType string

	// CO2ReductionTPY is the annual CO₂ reduction in tons.
	CO2ReductionTPY float64

	// Year anchors the ETS price lookup and the 5-year projection.
	Year int
}

// Assessment is the policy result for one site.
type Assessment struct {
	Country  string `json:"country"`
	EUMember bool   `json:"eu_member"`

	ETSPriceEURTon        float64 `json:"ets_price_eur_ton"`
	AnnualETSSavingsEUR   float64 `json:"annual_ets_savings_eur"`
	FiveYearETSSavingsEUR float64 `json:"five_year_ets_savings_eur"`

	CBAMApplicable bool     `json:"cbam_applicable"`
	CBAMSectors    []string `json:"cbam_sectors,omitempty"`

	Grants            []string `json:"grants,omitempty"`
	TaxBenefitPercent float64  `json:"tax_benefit_percent"`
	StabilityScore    float64  `json:"stability_score"`

	// ReadinessScore is 0-100: ETS price level (0-40), CBAM coverage
	// (0 or 30), grid emissions intensity (0-30).
	ReadinessScore float64 `json:"readiness_score"`
	RiskLevel      string  `json:"risk_level"`
}

// Assess evaluates the policy environment for one candidate site.
// Non-EU sites are rejected: the model only covers the EU framework.
func Assess(site types.Site, project Project) (Assessment, error) {
	country := strings.ToUpper(site.Country)
	if !IsEUMember(country) {
		return Assessment{}, fmt.Errorf("site %s: country %q is outside the EU policy framework", site.ID, site.Country)
	}

	etsPrice := ETSPrice(project.Year)
	sectors := ProductSectors(project.ProductType)

	a := Assessment{
		Country:             country,
		EUMember:            true,
		ETSPriceEURTon:      etsPrice,
		AnnualETSSavingsEUR: project.CO2ReductionTPY * etsPrice,
		CBAMApplicable:      len(sectors) > 0,
		CBAMSectors:         sectors,
		StabilityScore:      defaultStability,
	}

	for year := project.Year + 1; year <= project.Year+5; year++ {
		a.FiveYearETSSavingsEUR += project.CO2ReductionTPY * ETSPrice(year)
	}

	if inc, ok := CountryIncentives(country); ok {
		a.Grants = inc.Grants
		a.TaxBenefitPercent = inc.TaxBenefitPercent
		a.StabilityScore = inc.StabilityScore
	}

	a.ReadinessScore = readinessScore(etsPrice, a.CBAMApplicable, site.Attributes[types.AttrCarbonIntensity])
	a.RiskLevel = riskLevel(a.ReadinessScore)
	return a, nil
}

// readinessScore combines the ETS price level (0-40 points), CBAM
// coverage (0 or 30 points), and the site's grid carbon intensity
// (0-30 points, lower is better). A missing intensity scores the
// midpoint.
func readinessScore(etsPrice float64, cbamApplicable bool, carbonIntensity float64) float64 {
	var etsScore float64
	switch {
	case etsPrice >= 80:
		etsScore = 40
	case etsPrice <= 40:
		etsScore = 0
	default:
		etsScore = (etsPrice - 40) / 40 * 40
	}

	var cbamScore float64
	if cbamApplicable {
		cbamScore = 30
	}

	intensityScore := 15.0
	switch {
	case carbonIntensity <= 0:
		// unknown, keep the midpoint
	case carbonIntensity <= 200:
		intensityScore = 30
	case carbonIntensity >= 800:
		intensityScore = 0
	default:
		intensityScore = 30 - (carbonIntensity-200)/600*30
	}

	total := etsScore + cbamScore + intensityScore
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return total
}

// riskLevel maps a readiness score to a coarse risk band.
func riskLevel(readiness float64) string {
	switch {
	case readiness >= 75:
		return "Low"
	case readiness >= 50:
		return "Medium"
	default:
		return "High"
	}
}
