// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the carbonsite pipeline.
// See docs/ARCHITECTURE § Pipeline Interface, § Data Structures.
package types

// Recognized raw attribute keys. Enrichment backends write these; scoring
// profiles read them. Sites may carry additional keys; unknown keys are
// ignored by the scorer.
const (
	AttrDistanceToCO2SourceKm = "distance_to_co2_source_km"
	AttrDistanceToOfftakerKm  = "distance_to_offtaker_km"
	AttrCarbonIntensity       = "carbon_intensity_gco2_per_kwh"
	AttrPowerPriceEURMWh      = "power_price_eur_mwh"
	AttrEstimatedCostPerTon   = "estimated_cost_per_ton"
	AttrFinancialViability    = "financial_viability_score"
	AttrScalability           = "scalability_score"
	AttrInfrastructure        = "infrastructure_score"
	AttrRegulatory            = "regulatory_score"
	AttrCO2SourcesWithin100Km = "co2_sources_within_100km"
	AttrOfftakersWithin100Km  = "offtakers_within_100km"
)

// Site is a candidate industrial location under evaluation for facility
// siting. Sites are immutable for the duration of one analysis run: the
// catalog hands out fresh copies, and the scorer never writes to them.
type Site struct {
	// ID is a short stable identifier (e.g. "DE001").
	ID string `json:"id" yaml:"id"`

	// Name is the site's display name (e.g. "Ludwigshafen Chemical Park").
	Name string `json:"name" yaml:"name"`

	// Country is the ISO 3166-1 alpha-2 country code.
	Country string `json:"country" yaml:"country"`

	// Region is the subnational region or state.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Latitude and Longitude are the site coordinates in decimal degrees.
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`

	// FacilityType classifies the host facility (e.g. "Chemical", "Refinery").
	FacilityType string `json:"facility_type,omitempty" yaml:"facility_type,omitempty"`

	// Description is a free-text summary shown in reports.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Attributes maps raw attribute keys to numeric values. Missing keys
	// are not an error; the scorer applies its missing-attribute policy.
	Attributes map[string]float64 `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Clone returns a deep copy of the site, including its attribute map.
func (s Site) Clone() Site {
	c := s
	if s.Attributes != nil {
		c.Attributes = make(map[string]float64, len(s.Attributes))
		for k, v := range s.Attributes {
			c.Attributes[k] = v
		}
	}
	return c
}

// CO2Source is an industrial CO₂ emitter used by the distance enricher.
type CO2Source struct {
	Name         string  `json:"name" yaml:"name"`
	Latitude     float64 `json:"latitude" yaml:"latitude"`
	Longitude    float64 `json:"longitude" yaml:"longitude"`
	FacilityType string  `json:"facility_type" yaml:"facility_type"`

	// AnnualCO2Tons is the reported emission volume in tons per year.
	AnnualCO2Tons float64 `json:"annual_co2_tons" yaml:"annual_co2_tons"`
}

// Offtaker is a downstream buyer of the facility's output product.
type Offtaker struct {
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`

	// Product is the purchased product (e.g. "methanol", "carbon monoxide").
	Product string `json:"product" yaml:"product"`

	// DemandKtPerYear is the annual demand in kilotons.
	DemandKtPerYear float64 `json:"demand_kt_per_year" yaml:"demand_kt_per_year"`
}
