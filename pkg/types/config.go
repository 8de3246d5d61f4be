package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "carbonsite/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CatalogConfig holds settings for the candidate site catalog.
type CatalogConfig struct {
	// DataDir is the base directory for catalog data (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of find results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// EnrichConfig holds settings for the attribute enrichment stage.
type EnrichConfig struct {
	HTTPConfig `yaml:",inline"`

	// CacheTTL is how long fetched attributes stay fresh (default 24h).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// EnableCarbonIntensity controls the carbon intensity backend.
	EnableCarbonIntensity bool `json:"enable_carbon_intensity" yaml:"enable_carbon_intensity"`

	// EnablePowerPrice controls the day-ahead power price backend.
	EnablePowerPrice bool `json:"enable_power_price" yaml:"enable_power_price"`

	// ElectricityMapsAPIKey authenticates carbon intensity lookups.
	ElectricityMapsAPIKey string `json:"electricity_maps_api_key,omitempty" yaml:"electricity_maps_api_key,omitempty"`
}

// ScoringConfig holds settings for the scoring stage.
type ScoringConfig struct {
	// Profile selects the recognized criterion set: "global" or "eu".
	Profile string `json:"profile" yaml:"profile"`

	// Weights maps criterion name to a non-negative weight. Weights need
	// not sum to 1; the scorer normalizes them. Missing criteria default
	// to zero weight, unrecognized keys are ignored.
	Weights map[string]float64 `json:"weights" yaml:"weights"`

	// MissingPolicy selects the missing-attribute default: "neutral"
	// (0.5), "zero", or "mean".
	MissingPolicy string `json:"missing_policy" yaml:"missing_policy"`

	// TopN limits how many ranked sites downstream stages consume
	// (default 5). Zero keeps all.
	TopN int `json:"top_n" yaml:"top_n"`
}

// FinanceConfig holds default assumptions for the financial model.
type FinanceConfig struct {
	// DiscountRate is the WACC used for NPV (default 0.10).
	DiscountRate float64 `json:"discount_rate" yaml:"discount_rate"`

	// COPriceEURTon is the sale price of the output product (default 800).
	COPriceEURTon float64 `json:"co_price_eur_ton" yaml:"co_price_eur_ton"`

	// EquipmentCostPer100TPY scales equipment CAPEX with capacity
	// (default 2,000,000 € per 100 tons/year of capacity).
	EquipmentCostPer100TPY float64 `json:"equipment_cost_per_100tpy" yaml:"equipment_cost_per_100tpy"`
}

// AdvisorConfig holds settings for the LLM advisor stage.
type AdvisorConfig struct {
	// Model is the chat model identifier (default "llama-3.1-8b-instant").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the Groq API. Empty disables the
	// backend; the advisor falls back to rule-based recommendations.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ReportConfig holds settings for report generation.
type ReportConfig struct {
	// OutputDir is the directory for exported reports (default "output/reports").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// AnalysisConfig groups all stage configurations for one analysis request.
type AnalysisConfig struct {
	// ProjectType describes the facility under evaluation
	// (e.g. "CO2-to-CO pilot", "CO2-to-methanol").
	ProjectType string `json:"project_type" yaml:"project_type"`

	// TargetCapacityTPY is the target CO₂ input capacity in tons per year.
	TargetCapacityTPY float64 `json:"target_capacity_tpy" yaml:"target_capacity_tpy"`

	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Enrich  EnrichConfig  `json:"enrich" yaml:"enrich"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`
	Finance FinanceConfig `json:"finance" yaml:"finance"`
	Advisor AdvisorConfig `json:"advisor" yaml:"advisor"`
	Report  ReportConfig  `json:"report" yaml:"report"`
}
