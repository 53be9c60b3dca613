package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/toran/types"
)

func skus(items []types.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.SKU)
	}
	return out
}

func TestFilter(t *testing.T) {
	seed := types.SeedItems()

	tests := []struct {
		name     string
		query    string
		category types.Category
		want     []string
	}{
		{name: "no constraints returns everything", want: []string{"FAN-001", "LGT-101", "BEL-55"}},
		{name: "fan lower case", query: "fan", want: []string{"FAN-001"}},
		{name: "fan upper case", query: "FAN", want: []string{"FAN-001"}},
		{name: "fan mixed case", query: "fAn", want: []string{"FAN-001"}},
		{name: "matches category text", query: "bells", want: []string{"BEL-55"}},
		{name: "matches location", query: "s3", want: []string{"LGT-101"}},
		{name: "matches across field boundary", query: "001 ceiling", want: []string{"FAN-001"}},
		{name: "category only", category: types.Lights, want: []string{"LGT-101"}},
		{name: "category and query must both hold", query: "fan", category: types.Bells, want: []string{}},
		{name: "category with no items", category: types.Accessories, want: []string{}},
		{name: "no match", query: "toaster", want: []string{}},
		{name: "shelf prefix matches all", query: "s", want: []string{"FAN-001", "LGT-101", "BEL-55"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := skus(Filter(seed, tt.query, tt.category))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%q, %q) mismatch (-want +got):\n%s", tt.query, tt.category, diff)
			}
		})
	}
}

func TestFilterFanReturnsExactlySeedFan(t *testing.T) {
	got := Filter(types.SeedItems(), "fan", "")
	if len(got) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(got))
	}
	if diff := cmp.Diff(types.SeedItems()[0], got[0]); diff != "" {
		t.Errorf("unexpected match (-want +got):\n%s", diff)
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	items := types.SeedItems()
	before := types.CloneItems(items)
	_ = Filter(items, "s", "")
	if diff := cmp.Diff(before, items); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}

func TestFilterEmptyLocation(t *testing.T) {
	items := []types.Item{{SKU: "ACC-1", Name: "Cable", Category: types.Accessories}}
	if got := Filter(items, "cable", ""); len(got) != 1 {
		t.Errorf("expected item without location to match, got %d", len(got))
	}
}

func TestMatchesExpectsLowerCaseNeedle(t *testing.T) {
	item := types.SeedItems()[1]
	if !matches(item, "led", "") {
		t.Error("expected led to match")
	}
	if matches(item, "led", types.Fans) {
		t.Error("expected category mismatch")
	}
}
