// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/carbonsite/pkg/types"
)

func TestCarbonIntensityEnrich(t *testing.T) {
	var gotQuery map[string]string
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"lat": r.URL.Query().Get("lat"),
			"lon": r.URL.Query().Get("lon"),
		}
		gotToken = r.Header.Get("auth-token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"zone":"DE","carbonIntensity":312.4,"datetime":"2026-03-01T12:00:00Z","isEstimated":false}`))
	}))
	defer server.Close()

	origBase := carbonIntensityBase
	carbonIntensityBase = server.URL
	defer func() { carbonIntensityBase = origBase }()

	b := &CarbonIntensityBackend{
		Client: server.Client(),
		Config: types.EnrichConfig{ElectricityMapsAPIKey: "test-key"},
	}
	site := types.Site{ID: "DE001", Latitude: 49.4875, Longitude: 8.4660}

	attrs, err := b.Enrich(context.Background(), site)
	require.NoError(t, err)

	assert.Equal(t, 312.4, attrs[types.AttrCarbonIntensity])
	assert.Equal(t, "49.4875", gotQuery["lat"])
	assert.Equal(t, "8.4660", gotQuery["lon"])
	assert.Equal(t, "test-key", gotToken)
}

func TestCarbonIntensityEnrichNoAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("auth-token"))
		w.Write([]byte(`{"zone":"NL","carbonIntensity":280.0}`))
	}))
	defer server.Close()

	origBase := carbonIntensityBase
	carbonIntensityBase = server.URL
	defer func() { carbonIntensityBase = origBase }()

	b := &CarbonIntensityBackend{Client: server.Client()}
	attrs, err := b.Enrich(context.Background(), types.Site{ID: "NL001"})
	require.NoError(t, err)
	assert.Equal(t, 280.0, attrs[types.AttrCarbonIntensity])
}

func TestCarbonIntensityEnrichZeroValue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"zone":"XX","carbonIntensity":0}`))
	}))
	defer server.Close()

	origBase := carbonIntensityBase
	carbonIntensityBase = server.URL
	defer func() { carbonIntensityBase = origBase }()

	b := &CarbonIntensityBackend{Client: server.Client()}
	_, err := b.Enrich(context.Background(), types.Site{ID: "XX001"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value")
}

func TestCarbonIntensityEnrichServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	origBase := carbonIntensityBase
	carbonIntensityBase = server.URL
	defer func() { carbonIntensityBase = origBase }()

	b := &CarbonIntensityBackend{Client: server.Client()}
	_, err := b.Enrich(context.Background(), types.Site{ID: "DE001"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}
