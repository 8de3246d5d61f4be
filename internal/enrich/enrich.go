// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fetches raw per-criterion attributes for candidate sites
// from external data sources. Enrichment runs strictly before scoring;
// a failing backend degrades to missing attributes and never fails the
// analysis. See docs/ARCHITECTURE § Enrichment.
package enrich

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/meshintel/carbonsite/pkg/types"
)

// Enricher fetches a set of raw attributes for one site. Each data source
// (carbon intensity, power price, distances) implements this interface per
// the Strategy pattern.
type Enricher interface {
	Name() string
	Enrich(ctx context.Context, site types.Site) (map[string]float64, error)
}

// Result holds the merged attributes and failure statistics of one
// enrichment run.
type Result struct {
	// Attributes maps site ID to the attributes fetched for that site.
	Attributes map[string]map[string]float64

	// Warnings lists backend failures in "site/backend: reason" form.
	Warnings []string
}

// Run enriches every site with every enricher, merging results per site.
// Backends for one site run concurrently; sites are processed in order so
// progress output stays readable. A backend error is reported as a warning
// on w and leaves the affected attributes unset: the scorer's
// missing-attribute policy takes over from there.
func Run(ctx context.Context, sites []types.Site, enrichers []Enricher, cache *Cache, w io.Writer) Result {
	result := Result{Attributes: make(map[string]map[string]float64, len(sites))}

	for _, site := range sites {
		attrs, warnings := enrichSite(ctx, site, enrichers, cache)
		if len(attrs) > 0 {
			result.Attributes[site.ID] = attrs
		}
		for _, warning := range warnings {
			fmt.Fprintf(w, "warning: %s\n", warning)
		}
		result.Warnings = append(result.Warnings, warnings...)
		fmt.Fprintf(w, "enriched %s (%d attributes)\n", site.ID, len(attrs))
	}

	return result
}

func enrichSite(ctx context.Context, site types.Site, enrichers []Enricher, cache *Cache) (map[string]float64, []string) {
	type backendResult struct {
		name  string
		attrs map[string]float64
		err   error
	}

	ch := make(chan backendResult, len(enrichers))
	for _, e := range enrichers {
		go func(e Enricher) {
			if cache != nil {
				if attrs, ok := cache.Get(e.Name(), site.ID); ok {
					ch <- backendResult{name: e.Name(), attrs: attrs}
					return
				}
			}
			attrs, err := e.Enrich(ctx, site)
			if err == nil && cache != nil {
				cache.Put(e.Name(), site.ID, attrs)
			}
			ch <- backendResult{name: e.Name(), attrs: attrs, err: err}
		}(e)
	}

	merged := make(map[string]float64)
	var warnings []string
	for range enrichers {
		br := <-ch
		if br.err != nil {
			warnings = append(warnings, fmt.Sprintf("%s/%s: %v", site.ID, br.name, br.err))
			continue
		}
		for k, v := range br.attrs {
			merged[k] = v
		}
	}

	sort.Strings(warnings)
	if len(merged) == 0 {
		return nil, warnings
	}
	return merged, warnings
}
