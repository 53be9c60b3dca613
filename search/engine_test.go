package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/toran/types"
)

// mockProvider implements ItemProvider for testing
type mockProvider struct {
	items []types.Item
	calls int
}

func (m *mockProvider) Items() []types.Item {
	m.calls++
	return m.items
}

func TestEngineSearchEmptyQueryReturnsAll(t *testing.T) {
	provider := &mockProvider{items: types.SeedItems()}
	results := NewEngine(provider).Search(Options{})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if len(r.MatchedFields) != 0 {
			t.Errorf("expected no matched fields without query, got %v", r.MatchedFields)
		}
	}
	if provider.calls != 1 {
		t.Errorf("expected provider to be read once, got %d", provider.calls)
	}
}

func TestEngineSearchMatchedFields(t *testing.T) {
	items := []types.Item{
		{SKU: "FAN-9", Name: "Fan Regulator", Category: types.Accessories, Loc: "S9"},
		{SKU: "FAN-001", Name: "Ceiling Fan A", Category: types.Fans, Loc: "S1"},
	}
	results := SearchItems(items, Options{Query: "fan"})

	want := [][]string{
		{"sku", "name"},
		{"sku", "name", "category"},
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, r := range results {
		if diff := cmp.Diff(want[i], r.MatchedFields); diff != "" {
			t.Errorf("result %d matched fields (-want +got):\n%s", i, diff)
		}
	}
}

func TestEngineSearchHighlight(t *testing.T) {
	results := SearchItems(types.SeedItems(), Options{
		Query:           "fan",
		EnableHighlight: true,
	})
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}

	want := map[string]string{
		"sku":      "**FAN**-001",
		"name":     "Ceiling **Fan** A",
		"category": "**Fan**s",
	}
	if diff := cmp.Diff(want, results[0].Highlights); diff != "" {
		t.Errorf("highlights mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineSearchCustomMarkers(t *testing.T) {
	results := SearchItems(types.SeedItems(), Options{
		Query:                "bulb",
		EnableHighlight:      true,
		HighlightStartMarker: "[",
		HighlightEndMarker:   "]",
	})
	if len(results) != 1 || results[0].Highlights["name"] != "LED [Bulb] 9W" {
		t.Errorf("unexpected highlight: %+v", results)
	}
}

func TestHighlightRepeatedMatches(t *testing.T) {
	got := highlight("Fan fan FAN", "fan", "<", ">")
	if got != "<Fan> <fan> <FAN>" {
		t.Errorf("got %q", got)
	}
}
