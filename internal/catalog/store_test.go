package catalog

import (
	"context"
	"testing"

	"github.com/meshintel/carbonsite/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.CatalogConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustImport(t *testing.T, store *Store, sites []types.Site) {
	t.Helper()
	summary, err := store.Import(context.Background(), sites, "test")
	if err != nil {
		t.Fatal(err)
	}
	if summary.HasFailures() {
		t.Fatalf("import failed for %d site(s)", summary.Failed)
	}
}

// --- tests ---

func TestImportAndList(t *testing.T) {
	store := testStore(t)
	mustImport(t, store, SampleSites())

	sites, err := store.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(sites) != 5 {
		t.Fatalf("List() returned %d sites, want 5", len(sites))
	}
	// Ordered by ID.
	if sites[0].ID != "BE001" || sites[4].ID != "NL001" {
		t.Errorf("List() order = %s..%s, want BE001..NL001", sites[0].ID, sites[4].ID)
	}
	// Attributes round-trip.
	for _, s := range sites {
		if s.ID == "DE001" {
			if got := s.Attributes[types.AttrScalability]; got != 97 {
				t.Errorf("DE001 scalability = %v, want 97", got)
			}
		}
	}
}

func TestImportCountsUpdates(t *testing.T) {
	store := testStore(t)
	sites := SampleSites()

	summary, err := store.Import(context.Background(), sites, "sample")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Imported != 5 || summary.Updated != 0 {
		t.Errorf("first import: got %+v, want 5 imported", summary)
	}

	summary, err = store.Import(context.Background(), sites[:2], "sample")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Imported != 0 || summary.Updated != 2 {
		t.Errorf("re-import: got %+v, want 2 updated", summary)
	}
}

func TestImportRejectsIncompleteSites(t *testing.T) {
	store := testStore(t)

	summary, err := store.Import(context.Background(), []types.Site{
		{ID: "OK1", Name: "Valid"},
		{ID: "", Name: "No ID"},
		{ID: "NONAME"},
	}, "test")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Imported != 1 || summary.Failed != 2 {
		t.Errorf("summary = %+v, want 1 imported, 2 failed", summary)
	}
}

func TestListFilters(t *testing.T) {
	store := testStore(t)
	mustImport(t, store, SampleSites())

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"by country", Filter{Countries: []string{"DE", "NL"}}, []string{"DE001", "NL001"}},
		{"by facility type", Filter{FacilityType: "Refinery"}, []string{"FR001", "NL001"}},
		{"combined", Filter{Countries: []string{"NL"}, FacilityType: "Refinery"}, []string{"NL001"}},
		{"no match", Filter{Countries: []string{"SE"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sites, err := store.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List() error: %v", err)
			}
			var ids []string
			for _, s := range sites {
				ids = append(ids, s.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("List() = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("List() = %v, want %v", ids, tt.want)
					break
				}
			}
		})
	}
}

func TestGet(t *testing.T) {
	store := testStore(t)
	mustImport(t, store, SampleSites())

	sites, err := store.Get(context.Background(), []string{"NL001", "DE001"})
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(sites) != 2 || sites[0].ID != "NL001" || sites[1].ID != "DE001" {
		t.Errorf("Get() preserved order incorrectly: %+v", sites)
	}

	if _, err := store.Get(context.Background(), []string{"XX999"}); err == nil {
		t.Error("Get() with unknown ID succeeded, want error")
	}
}

func TestFind(t *testing.T) {
	store := testStore(t)
	mustImport(t, store, SampleSites())

	sites, err := store.Find(context.Background(), "port", 0)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if len(sites) == 0 {
		t.Fatal("Find(port) returned no sites")
	}
	for _, s := range sites {
		if s.ID == "NL001" {
			return
		}
	}
	t.Errorf("Find(port) missed NL001, got %+v", sites)
}

func TestSetAttributes(t *testing.T) {
	store := testStore(t)
	mustImport(t, store, []types.Site{{ID: "S1", Name: "Bare Site"}})

	attrs := map[string]float64{
		types.AttrCarbonIntensity:      220,
		types.AttrDistanceToOfftakerKm: 14.5,
	}
	if err := store.SetAttributes(context.Background(), "S1", attrs, "carbon_intensity"); err != nil {
		t.Fatalf("SetAttributes() error: %v", err)
	}

	sites, err := store.Get(context.Background(), []string{"S1"})
	if err != nil {
		t.Fatal(err)
	}
	if got := sites[0].Attributes[types.AttrCarbonIntensity]; got != 220 {
		t.Errorf("carbon intensity = %v, want 220", got)
	}

	// Overwrite keeps the latest value.
	if err := store.SetAttributes(context.Background(), "S1",
		map[string]float64{types.AttrCarbonIntensity: 180}, "carbon_intensity"); err != nil {
		t.Fatal(err)
	}
	sites, err = store.Get(context.Background(), []string{"S1"})
	if err != nil {
		t.Fatal(err)
	}
	if got := sites[0].Attributes[types.AttrCarbonIntensity]; got != 180 {
		t.Errorf("carbon intensity after overwrite = %v, want 180", got)
	}
}
