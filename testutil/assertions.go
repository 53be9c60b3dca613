package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/toran/inventory"
	"github.com/arthur-debert/toran/types"
)

// SKUs returns the SKUs of items in order
func SKUs(items []types.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.SKU)
	}
	return out
}

// AssertSKUs checks that items hold exactly the given SKUs, in order
func AssertSKUs(t testing.TB, items []types.Item, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, SKUs(items)); diff != "" {
		t.Errorf("SKU mismatch (-want +got):\n%s", diff)
	}
}

// AssertItemCount checks the number of items with an optional context message
func AssertItemCount(t testing.TB, items []types.Item, want int, context ...string) {
	t.Helper()
	if len(items) != want {
		msg := ""
		if len(context) > 0 {
			msg = " " + context[0]
		}
		t.Errorf("expected %d items%s, got %d: %v", want, msg, len(items), SKUs(items))
	}
}

// AssertItemExists checks that an item with sku is in items
func AssertItemExists(t testing.TB, items []types.Item, sku string) {
	t.Helper()
	if _, ok := inventory.Find(items, sku); !ok {
		t.Errorf("expected %s in %v", sku, SKUs(items))
	}
}

// AssertItemNotExists checks that no item with sku is in items
func AssertItemNotExists(t testing.TB, items []types.Item, sku string) {
	t.Helper()
	if _, ok := inventory.Find(items, sku); ok {
		t.Errorf("expected %s to be absent from %v", sku, SKUs(items))
	}
}

// AssertItemsEqual diffs two item lists field by field
func AssertItemsEqual(t testing.TB, want, got []types.Item) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

// AssertStats compares the aggregates of a store
func AssertStats(t testing.TB, store *inventory.Store, want inventory.Stats) {
	t.Helper()
	if diff := cmp.Diff(want, store.Stats()); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}
