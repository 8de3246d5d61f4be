// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"fmt"

	"github.com/meshintel/carbonsite/pkg/types"
)

// Direction states whether larger or smaller raw values are better for a
// criterion. Distance, cost, and carbon intensity criteria are
// LowerIsBetter; pre-computed quality scores are HigherIsBetter.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// Criterion is one named dimension of evaluation. Name is the key used in
// weight maps and sub-score output; Attribute is the raw attribute key read
// from the site. The direction is carried here rather than hardcoded in the
// normalization so new criteria need no scorer changes.
type Criterion struct {
	Name      string
	Attribute string
	Direction Direction
}

// GlobalProfile returns the five-criterion set used for worldwide
// screening. Financial viability, scalability, and policy readiness are
// directly-supplied pre-computed scores; the two proximity criteria are
// derived from enriched distances.
func GlobalProfile() []Criterion {
	return []Criterion{
		{Name: "co2_availability", Attribute: types.AttrDistanceToCO2SourceKm, Direction: LowerIsBetter},
		{Name: "offtaker_proximity", Attribute: types.AttrDistanceToOfftakerKm, Direction: LowerIsBetter},
		{Name: "financial_viability", Attribute: types.AttrFinancialViability, Direction: HigherIsBetter},
		{Name: "scalability", Attribute: types.AttrScalability, Direction: HigherIsBetter},
		{Name: "policy_readiness", Attribute: types.AttrRegulatory, Direction: HigherIsBetter},
	}
}

// EUProfile returns the four-criterion set used for EU screening, where
// grid carbon intensity replaces CO₂ source proximity as the lead signal.
func EUProfile() []Criterion {
	return []Criterion{
		{Name: "carbon_intensity", Attribute: types.AttrCarbonIntensity, Direction: LowerIsBetter},
		{Name: "buyer_proximity", Attribute: types.AttrDistanceToOfftakerKm, Direction: LowerIsBetter},
		{Name: "infrastructure", Attribute: types.AttrInfrastructure, Direction: HigherIsBetter},
		{Name: "regulatory", Attribute: types.AttrRegulatory, Direction: HigherIsBetter},
	}
}

// ProfileByName resolves a profile name from configuration.
func ProfileByName(name string) ([]Criterion, error) {
	switch name {
	case "", "global":
		return GlobalProfile(), nil
	case "eu":
		return EUProfile(), nil
	default:
		return nil, fmt.Errorf("unknown scoring profile %q (want global or eu)", name)
	}
}
