// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/meshintel/carbonsite/internal/httputil"
	"github.com/meshintel/carbonsite/pkg/types"
)

// carbonIntensityBase is the Electricity Maps latest-intensity endpoint.
// Declared as a var so tests can substitute an httptest server.
var carbonIntensityBase = "https://api.electricitymaps.com/v3/carbon-intensity/latest"

// CarbonIntensityBackend looks up the latest grid carbon intensity at a
// site's coordinates.
type CarbonIntensityBackend struct {
	Client *http.Client
	Config types.EnrichConfig
}

// Name returns the backend identifier.
func (b *CarbonIntensityBackend) Name() string { return "carbon_intensity" }

// Enrich fetches the carbon intensity for the site's location and maps it
// to the carbon_intensity_gco2_per_kwh attribute.
func (b *CarbonIntensityBackend) Enrich(ctx context.Context, site types.Site) (map[string]float64, error) {
	params := url.Values{
		"lat": {fmt.Sprintf("%.4f", site.Latitude)},
		"lon": {fmt.Sprintf("%.4f", site.Longitude)},
	}
	reqURL := carbonIntensityBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.Config.UserAgent)
	if b.Config.ElectricityMapsAPIKey != "" {
		req.Header.Set("auth-token", b.Config.ElectricityMapsAPIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("carbon intensity request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carbon intensity API returned HTTP %d", resp.StatusCode)
	}

	var cir carbonIntensityResponse
	if err := json.NewDecoder(resp.Body).Decode(&cir); err != nil {
		return nil, fmt.Errorf("parsing carbon intensity response: %w", err)
	}
	if cir.CarbonIntensity <= 0 {
		return nil, fmt.Errorf("carbon intensity API returned no value for zone %q", cir.Zone)
	}

	return map[string]float64{
		types.AttrCarbonIntensity: cir.CarbonIntensity,
	}, nil
}

// Electricity Maps API JSON structure.
type carbonIntensityResponse struct {
	Zone            string  `json:"zone"`
	CarbonIntensity float64 `json:"carbonIntensity"`
	Datetime        string  `json:"datetime"`
	IsEstimated     bool    `json:"isEstimated"`
}
