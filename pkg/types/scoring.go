// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ScoredSite is one site's result from a scoring run. Results are produced
// fresh per analysis request and never mutated after creation; ordering is
// by composite score descending, ties broken by site ID ascending.
type ScoredSite struct {
	// SiteID identifies the scored site.
	SiteID string `json:"site_id" yaml:"site_id"`

	// Name is the site's display name, carried through for rendering.
	Name string `json:"name" yaml:"name"`

	// Country is the site's country code, carried through for rendering.
	Country string `json:"country,omitempty" yaml:"country,omitempty"`

	// Composite is the weighted overall score in [0, 100].
	Composite float64 `json:"composite" yaml:"composite"`

	// SubScores maps criterion name to its normalized value in [0, 1].
	SubScores map[string]float64 `json:"sub_scores" yaml:"sub_scores"`

	// Rank is the 1-based position in the ordered result list.
	Rank int `json:"rank" yaml:"rank"`
}
