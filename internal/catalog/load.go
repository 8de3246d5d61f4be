// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/carbonsite/pkg/types"
)

// LoadFile reads candidate sites from a YAML or JSON file, selected by
// extension. The file holds either a bare site list or a document with a
// top-level "sites" key.
func LoadFile(path string) ([]types.Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site file: %w", err)
	}

	var sites []types.Site
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		sites, err = parseYAML(data)
	case ".json":
		sites, err = parseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported site file format %q (want .yaml, .yml, or .json)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i, site := range sites {
		if err := validateSite(site); err != nil {
			return nil, fmt.Errorf("%s: site %d: %w", path, i+1, err)
		}
	}
	return sites, nil
}

// siteDocument is the wrapped file form with a top-level sites key.
type siteDocument struct {
	Sites []types.Site `json:"sites" yaml:"sites"`
}

func parseYAML(data []byte) ([]types.Site, error) {
	var doc siteDocument
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Sites) > 0 {
		return doc.Sites, nil
	}
	var sites []types.Site
	if err := yaml.Unmarshal(data, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

func parseJSON(data []byte) ([]types.Site, error) {
	var doc siteDocument
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Sites) > 0 {
		return doc.Sites, nil
	}
	var sites []types.Site
	if err := json.Unmarshal(data, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

func validateSite(site types.Site) error {
	if site.ID == "" {
		return fmt.Errorf("missing id")
	}
	if site.Name == "" {
		return fmt.Errorf("site %s: missing name", site.ID)
	}
	if site.Latitude < -90 || site.Latitude > 90 {
		return fmt.Errorf("site %s: latitude %v out of range", site.ID, site.Latitude)
	}
	if site.Longitude < -180 || site.Longitude > 180 {
		return fmt.Errorf("site %s: longitude %v out of range", site.ID, site.Longitude)
	}
	return nil
}
