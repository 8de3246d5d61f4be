// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import "testing"

func TestProfileByName(t *testing.T) {
	tests := []struct {
		name      string
		wantLen   int
		wantFirst string
		wantErr   bool
	}{
		{"global", 5, "co2_availability", false},
		{"", 5, "co2_availability", false},
		{"eu", 4, "carbon_intensity", false},
		{"apac", 0, "", true},
	}
	for _, tt := range tests {
		profile, err := ProfileByName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ProfileByName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if len(profile) != tt.wantLen {
			t.Errorf("ProfileByName(%q) returned %d criteria, want %d", tt.name, len(profile), tt.wantLen)
		}
		if profile[0].Name != tt.wantFirst {
			t.Errorf("ProfileByName(%q) first criterion = %q, want %q", tt.name, profile[0].Name, tt.wantFirst)
		}
	}
}

func TestProfileDirections(t *testing.T) {
	// Distance, cost, and carbon intensity criteria must invert; quality
	// scores must not. A direction flip here silently reverses rankings,
	// so pin each one.
	wantGlobal := map[string]Direction{
		"co2_availability":    LowerIsBetter,
		"offtaker_proximity":  LowerIsBetter,
		"financial_viability": HigherIsBetter,
		"scalability":         HigherIsBetter,
		"policy_readiness":    HigherIsBetter,
	}
	for _, c := range GlobalProfile() {
		if c.Direction != wantGlobal[c.Name] {
			t.Errorf("global criterion %s direction = %v, want %v", c.Name, c.Direction, wantGlobal[c.Name])
		}
	}

	wantEU := map[string]Direction{
		"carbon_intensity": LowerIsBetter,
		"buyer_proximity":  LowerIsBetter,
		"infrastructure":   HigherIsBetter,
		"regulatory":       HigherIsBetter,
	}
	for _, c := range EUProfile() {
		if c.Direction != wantEU[c.Name] {
			t.Errorf("eu criterion %s direction = %v, want %v", c.Name, c.Direction, wantEU[c.Name])
		}
	}
}
