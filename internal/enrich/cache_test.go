// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHitWithinTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCache(time.Hour, clock)

	c.Put("carbon_intensity", "DE001", map[string]float64{"carbon_intensity_gco2_per_kwh": 350})

	clock.Advance(59 * time.Minute)
	attrs, ok := c.Get("carbon_intensity", "DE001")
	require.True(t, ok)
	assert.Equal(t, 350.0, attrs["carbon_intensity_gco2_per_kwh"])
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCache(time.Hour, clock)

	c.Put("power_price", "DE001", map[string]float64{"power_price_eur_mwh": 82.5})

	clock.Advance(61 * time.Minute)
	_, ok := c.Get("power_price", "DE001")
	assert.False(t, ok)
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	c := NewCache(time.Hour, clockwork.NewFakeClock())

	c.Put("power_price", "DE001", map[string]float64{"power_price_eur_mwh": 82.5})

	_, ok := c.Get("power_price", "NL001")
	assert.False(t, ok)
	_, ok = c.Get("carbon_intensity", "DE001")
	assert.False(t, ok)
}

func TestCacheCopiesAttributeMaps(t *testing.T) {
	c := NewCache(time.Hour, clockwork.NewFakeClock())

	stored := map[string]float64{"power_price_eur_mwh": 82.5}
	c.Put("power_price", "DE001", stored)
	stored["power_price_eur_mwh"] = -1

	attrs, ok := c.Get("power_price", "DE001")
	require.True(t, ok)
	assert.Equal(t, 82.5, attrs["power_price_eur_mwh"])

	// Mutating the returned map must not poison later reads either.
	attrs["power_price_eur_mwh"] = -1
	attrs2, ok := c.Get("power_price", "DE001")
	require.True(t, ok)
	assert.Equal(t, 82.5, attrs2["power_price_eur_mwh"])
}

func TestNewCacheDefaults(t *testing.T) {
	c := NewCache(0, nil)
	assert.Equal(t, DefaultCacheTTL, c.ttl)
	assert.NotNil(t, c.clock)
}
