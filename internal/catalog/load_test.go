package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantIDs []string
		errMsg  string
	}{
		{
			name: "yaml list",
			file: "sites.yaml",
			content: `- id: DE001
  name: Ludwigshafen
  country: DE
  latitude: 49.48
  longitude: 8.43
  attributes:
    regulatory_score: 95
- id: NL001
  name: Rotterdam
  country: NL
  latitude: 51.92
  longitude: 4.48
`,
			wantIDs: []string{"DE001", "NL001"},
		},
		{
			name: "yaml document with sites key",
			file: "sites.yml",
			content: `sites:
  - id: BE001
    name: Antwerp
    latitude: 51.22
    longitude: 4.40
`,
			wantIDs: []string{"BE001"},
		},
		{
			name:    "json list",
			file:    "sites.json",
			content: `[{"id": "IT001", "name": "Porto Marghera", "latitude": 45.44, "longitude": 12.33}]`,
			wantIDs: []string{"IT001"},
		},
		{
			name:    "unsupported extension",
			file:    "sites.csv",
			content: "id,name\nX,Y\n",
			errMsg:  "unsupported site file format",
		},
		{
			name:    "missing id",
			file:    "bad.yaml",
			content: "- name: Nameless\n  latitude: 1\n  longitude: 2\n",
			errMsg:  "missing id",
		},
		{
			name:    "latitude out of range",
			file:    "badlat.yaml",
			content: "- id: X1\n  name: Far North\n  latitude: 123\n  longitude: 2\n",
			errMsg:  "latitude",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)

			sites, err := LoadFile(path)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			require.Len(t, sites, len(tt.wantIDs))
			for i, id := range tt.wantIDs {
				assert.Equal(t, id, sites[i].ID)
			}
		})
	}
}

func TestLoadFileAttributesSurvive(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sites.yaml", `- id: DE001
  name: Ludwigshafen
  latitude: 49.48
  longitude: 8.43
  attributes:
    carbon_intensity_gco2_per_kwh: 381
    distance_to_offtaker_km: 8
`)
	sites, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.InDelta(t, 381.0, sites[0].Attributes["carbon_intensity_gco2_per_kwh"], 1e-9)
	assert.InDelta(t, 8.0, sites[0].Attributes["distance_to_offtaker_km"], 1e-9)
}
