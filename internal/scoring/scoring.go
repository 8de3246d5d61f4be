// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring ranks candidate sites with a weighted min-max scoring
// formula. The scorer is a pure function over its inputs: no I/O, no
// shared state, deterministic output for identical (sites, weights).
// See docs/ARCHITECTURE § Scoring.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/meshintel/carbonsite/pkg/types"
)

// Weights maps criterion name to a non-negative weight. Weights need not
// sum to 1; Score normalizes by the total. Unrecognized keys are ignored
// and absent keys count as zero weight.
type Weights map[string]float64

// MissingPolicy selects the normalized value substituted when a site does
// not carry a criterion's attribute.
type MissingPolicy int

const (
	// MissingNeutral substitutes 0.5, the neutral midpoint. Default.
	MissingNeutral MissingPolicy = iota

	// MissingZero substitutes 0, so absent data contributes nothing.
	MissingZero

	// MissingMean substitutes the catalog-wide mean of the criterion's
	// normalized values, or 0.5 when no site carries the attribute.
	MissingMean
)

// ParseMissingPolicy resolves a policy name from configuration.
func ParseMissingPolicy(name string) (MissingPolicy, error) {
	switch name {
	case "", "neutral":
		return MissingNeutral, nil
	case "zero":
		return MissingZero, nil
	case "mean":
		return MissingMean, nil
	default:
		return MissingNeutral, fmt.Errorf("unknown missing-attribute policy %q (want neutral, zero, or mean)", name)
	}
}

// Options tunes a scoring run. The zero value selects the global profile
// and the neutral missing-attribute policy.
type Options struct {
	// Profile is the recognized criterion set. Empty uses GlobalProfile.
	Profile []Criterion

	// Missing selects the missing-attribute substitution.
	Missing MissingPolicy
}

// Score computes a composite 0-100 score for every candidate site and
// returns the results ordered by score descending, ties broken by site ID
// ascending. Every input site yields exactly one result; no site is
// silently dropped.
//
// Per criterion, raw values are min-max normalized across the candidate
// set, inverting criteria where lower is better. A criterion with no
// variance (max == min) normalizes to 1.0 for every site: absence of
// discriminating signal must not zero out the score. The composite is
// 100·Σ(wᶜ·nᶜ)/Σwᶜ over nonzero-weight criteria; when the total weight is
// zero it falls back to the unweighted mean of all sub-scores.
func Score(sites []types.Site, weights Weights, opts Options) ([]types.ScoredSite, error) {
	if len(sites) == 0 {
		return nil, ErrEmptyCatalog
	}

	profile := opts.Profile
	if len(profile) == 0 {
		profile = GlobalProfile()
	}

	if err := validateWeights(weights, profile); err != nil {
		return nil, err
	}

	spans, err := attributeSpans(sites, profile)
	if err != nil {
		return nil, err
	}

	// Normalize per site and criterion. Missing attributes are marked and
	// resolved afterwards so MissingMean can see the full column.
	normalized := make([]map[string]float64, len(sites))
	missing := make([]map[string]bool, len(sites))
	for i, site := range sites {
		normalized[i] = make(map[string]float64, len(profile))
		missing[i] = make(map[string]bool)
		for _, c := range profile {
			raw, ok := site.Attributes[c.Attribute]
			if !ok {
				missing[i][c.Name] = true
				continue
			}
			normalized[i][c.Name] = normalize(raw, spans[c.Name], c.Direction)
		}
	}

	fillMissing(normalized, missing, profile, opts.Missing)

	results := make([]types.ScoredSite, len(sites))
	for i, site := range sites {
		results[i] = types.ScoredSite{
			SiteID:    site.ID,
			Name:      site.Name,
			Country:   site.Country,
			Composite: composite(normalized[i], weights, profile),
			SubScores: normalized[i],
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Composite != results[j].Composite {
			return results[i].Composite > results[j].Composite
		}
		return results[i].SiteID < results[j].SiteID
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return results, nil
}

// span holds the observed value range of one criterion across the sites
// that carry its attribute.
type span struct {
	min, max float64
	n        int
}

func validateWeights(weights Weights, profile []Criterion) error {
	recognized := make(map[string]bool, len(profile))
	for _, c := range profile {
		recognized[c.Name] = true
	}
	for name, w := range weights {
		if !recognized[name] {
			continue
		}
		switch {
		case math.IsNaN(w):
			return &ValidationError{Criterion: name, Reason: "weight is NaN"}
		case math.IsInf(w, 0):
			return &ValidationError{Criterion: name, Reason: "weight is infinite"}
		case w < 0:
			return &ValidationError{Criterion: name, Reason: fmt.Sprintf("weight is negative (%v)", w)}
		}
	}
	return nil
}

// attributeSpans computes min and max per criterion over the sites that
// carry the attribute, rejecting non-finite raw values.
func attributeSpans(sites []types.Site, profile []Criterion) (map[string]span, error) {
	spans := make(map[string]span, len(profile))
	for _, c := range profile {
		s := span{min: math.Inf(1), max: math.Inf(-1)}
		for _, site := range sites {
			raw, ok := site.Attributes[c.Attribute]
			if !ok {
				continue
			}
			if math.IsNaN(raw) || math.IsInf(raw, 0) {
				return nil, &ValidationError{SiteID: site.ID, Criterion: c.Name, Reason: fmt.Sprintf("attribute %s is not finite", c.Attribute)}
			}
			s.min = math.Min(s.min, raw)
			s.max = math.Max(s.max, raw)
			s.n++
		}
		spans[c.Name] = s
	}
	return spans, nil
}

// normalize maps a raw value into [0, 1] within its span, inverting for
// lower-is-better criteria. A degenerate span (max == min) yields 1.0.
func normalize(raw float64, s span, dir Direction) float64 {
	if s.max == s.min {
		return 1.0
	}
	if dir == LowerIsBetter {
		return (s.max - raw) / (s.max - s.min)
	}
	return (raw - s.min) / (s.max - s.min)
}

// fillMissing substitutes sub-scores for absent attributes in place.
func fillMissing(normalized []map[string]float64, missing []map[string]bool, profile []Criterion, policy MissingPolicy) {
	for _, c := range profile {
		var fill float64
		switch policy {
		case MissingZero:
			fill = 0
		case MissingMean:
			sum, n := 0.0, 0
			for i := range normalized {
				if !missing[i][c.Name] {
					sum += normalized[i][c.Name]
					n++
				}
			}
			if n > 0 {
				fill = sum / float64(n)
			} else {
				fill = 0.5
			}
		default:
			fill = 0.5
		}
		for i := range normalized {
			if missing[i][c.Name] {
				normalized[i][c.Name] = fill
			}
		}
	}
}

// composite combines sub-scores into the 0-100 weighted score, falling
// back to the unweighted mean when the total weight is zero.
func composite(subScores map[string]float64, weights Weights, profile []Criterion) float64 {
	var weighted, total float64
	for _, c := range profile {
		w := weights[c.Name]
		if w == 0 {
			continue
		}
		weighted += w * subScores[c.Name]
		total += w
	}

	var score float64
	if total > 0 {
		score = 100 * weighted / total
	} else {
		sum := 0.0
		for _, c := range profile {
			sum += subScores[c.Name]
		}
		score = 100 * sum / float64(len(profile))
	}

	return math.Min(100, math.Max(0, score))
}
