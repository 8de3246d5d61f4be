// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"fmt"
	"math"

	"github.com/meshintel/carbonsite/pkg/types"
)

const (
	earthRadiusKm = 6371.0

	// proximityRadiusKm is the radius used for the source and offtaker
	// density counts.
	proximityRadiusKm = 100.0
)

// DistanceEnricher derives proximity attributes from the built-in CO₂
// source and offtaker datasets. It is a pure computation: no network.
type DistanceEnricher struct {
	Sources   []types.CO2Source
	Offtakers []types.Offtaker
}

// Name returns the backend identifier.
func (e *DistanceEnricher) Name() string { return "distance" }

// Enrich computes nearest-neighbor distances and 100 km density counts
// against the configured datasets.
func (e *DistanceEnricher) Enrich(_ context.Context, site types.Site) (map[string]float64, error) {
	if len(e.Sources) == 0 && len(e.Offtakers) == 0 {
		return nil, fmt.Errorf("no CO2 source or offtaker datasets configured")
	}

	attrs := make(map[string]float64)

	if len(e.Sources) > 0 {
		nearest := math.Inf(1)
		within := 0.0
		for _, src := range e.Sources {
			d := haversineKm(site.Latitude, site.Longitude, src.Latitude, src.Longitude)
			nearest = math.Min(nearest, d)
			if d <= proximityRadiusKm {
				within++
			}
		}
		attrs[types.AttrDistanceToCO2SourceKm] = nearest
		attrs[types.AttrCO2SourcesWithin100Km] = within
	}

	if len(e.Offtakers) > 0 {
		nearest := math.Inf(1)
		within := 0.0
		for _, o := range e.Offtakers {
			d := haversineKm(site.Latitude, site.Longitude, o.Latitude, o.Longitude)
			nearest = math.Min(nearest, d)
			if d <= proximityRadiusKm {
				within++
			}
		}
		attrs[types.AttrDistanceToOfftakerKm] = nearest
		attrs[types.AttrOfftakersWithin100Km] = within
	}

	return attrs, nil
}

// haversineKm returns the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
