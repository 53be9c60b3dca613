// Package testutil provides shared fixtures and assertions for package tests
package testutil

import (
	_ "embed"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/toran/inventory"
	"github.com/arthur-debert/toran/inventory/storage"
	"github.com/arthur-debert/toran/types"
)

//go:embed testdata/catalog.json
var catalogJSON []byte

// CatalogData provides typed access to the catalog fixture
type CatalogData struct {
	// Seed records
	CeilingFan types.Item // FAN-001, qty 12
	LEDBulb    types.Item // LGT-101, qty 48
	DoorBell   types.Item // BEL-55, qty 8

	// Low stock
	PedestalFan types.Item // FAN-207, qty 2
	TubeLight   types.Item // LGT-330, qty 4, blank price

	// Lenient numbers
	Regulator types.Item // ACC-9, qty "abc", price "n/a", no location
	Chime     types.Item // BEL-90, qty "7 pcs", price 899.5

	// Items in fixture order
	Items []types.Item

	// BySKU indexes every item
	BySKU map[string]types.Item
}

type fixtureData struct {
	Items []types.Item `json:"items"`
}

// Catalog decodes the catalog fixture
func Catalog(t testing.TB) *CatalogData {
	t.Helper()

	var data fixtureData
	if err := json.Unmarshal(catalogJSON, &data); err != nil {
		t.Fatalf("failed to parse catalog fixture: %v", err)
	}

	c := &CatalogData{
		Items: data.Items,
		BySKU: make(map[string]types.Item, len(data.Items)),
	}
	for _, it := range data.Items {
		c.BySKU[it.SKU] = it
	}

	c.CeilingFan = c.mustGet(t, "FAN-001")
	c.LEDBulb = c.mustGet(t, "LGT-101")
	c.DoorBell = c.mustGet(t, "BEL-55")
	c.PedestalFan = c.mustGet(t, "FAN-207")
	c.TubeLight = c.mustGet(t, "LGT-330")
	c.Regulator = c.mustGet(t, "ACC-9")
	c.Chime = c.mustGet(t, "BEL-90")
	return c
}

func (c *CatalogData) mustGet(t testing.TB, sku string) types.Item {
	t.Helper()
	it, ok := c.BySKU[sku]
	if !ok {
		t.Fatalf("catalog fixture is missing %s", sku)
	}
	return it
}

// LoadCatalog returns an in-memory store holding the catalog fixture
func LoadCatalog(t testing.TB) (*inventory.Store, *CatalogData) {
	t.Helper()

	catalog := Catalog(t)
	store, err := inventory.Open(storage.NewMemory(), inventory.WithSeed(func() []types.Item {
		return types.CloneItems(catalog.Items)
	}))
	if err != nil {
		t.Fatalf("failed to open catalog store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, catalog
}

// NewSeededStore returns a store on a fresh memory KV holding the demo seed.
// The KV is returned so tests can inspect what was persisted.
func NewSeededStore(t testing.TB) (*inventory.Store, storage.KV) {
	t.Helper()

	kv := storage.NewMemory()
	store, err := inventory.Open(kv)
	if err != nil {
		t.Fatalf("failed to open seeded store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, kv
}
