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

// powerPriceBase is the Energy-Charts day-ahead price endpoint. Declared
// as a var so tests can substitute an httptest server.
var powerPriceBase = "https://api.energy-charts.info/price"

// biddingZones maps country codes to day-ahead bidding zones. Countries
// outside the table fall back to their country code, which the API
// accepts for single-zone countries.
var biddingZones = map[string]string{
	"DE": "DE-LU",
	"LU": "DE-LU",
	"IT": "IT-North",
	"SE": "SE3",
	"NO": "NO2",
	"DK": "DK1",
}

// PowerPriceBackend looks up the latest day-ahead wholesale power price
// for a site's bidding zone.
type PowerPriceBackend struct {
	Client *http.Client
	Config types.EnrichConfig
}

// Name returns the backend identifier.
func (b *PowerPriceBackend) Name() string { return "power_price" }

// Enrich fetches the most recent day-ahead price for the site's country
// and maps it to the power_price_eur_mwh attribute.
func (b *PowerPriceBackend) Enrich(ctx context.Context, site types.Site) (map[string]float64, error) {
	if site.Country == "" {
		return nil, fmt.Errorf("site has no country code for bidding zone lookup")
	}
	zone := site.Country
	if bz, ok := biddingZones[site.Country]; ok {
		zone = bz
	}

	params := url.Values{"bzn": {zone}}
	reqURL := powerPriceBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.Config.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("power price request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("power price API returned HTTP %d", resp.StatusCode)
	}

	var ppr powerPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&ppr); err != nil {
		return nil, fmt.Errorf("parsing power price response: %w", err)
	}
	if len(ppr.Price) == 0 {
		return nil, fmt.Errorf("power price API returned no prices for zone %q", zone)
	}

	return map[string]float64{
		types.AttrPowerPriceEURMWh: ppr.Price[len(ppr.Price)-1],
	}, nil
}

// Energy-Charts API JSON structure. Prices are EUR/MWh aligned with the
// unix_seconds timestamps.
type powerPriceResponse struct {
	UnixSeconds []int64   `json:"unix_seconds"`
	Price       []float64 `json:"price"`
	Unit        string    `json:"unit"`
}
