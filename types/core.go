package types

import "strings"

// Persistence keys shared by every storage backend
const (
	// InventoryKey holds the JSON encoded snapshot of the inventory
	InventoryKey = "toran_inventory_v1"

	// ThemeKey holds the theme preference ("dark" or "light")
	ThemeKey = "toran_theme"
)

// Item represents a single inventory record
type Item struct {
	SKU      string   `json:"sku" yaml:"sku"`           // Unique identifier, immutable once created
	Name     string   `json:"name" yaml:"name"`         // Display name, required
	Category Category `json:"category" yaml:"category"` // One of the fixed categories
	Qty      Quantity `json:"qty" yaml:"qty"`           // Units in stock, kept as entered
	Price    Price    `json:"price" yaml:"price"`       // Unit price, may be blank
	Loc      string   `json:"loc" yaml:"loc"`           // Free text shelf location
}

// NewItem returns an item holding the defaults of a fresh entry form
func NewItem() Item {
	return Item{
		Category: Fans,
		Qty:      "1",
	}
}

// Units returns the quantity parsed leniently, 0 when it is not numeric
func (i Item) Units() int {
	return ParseIntOrZero(string(i.Qty))
}

// Haystack returns the text the free-text search looks into
func (i Item) Haystack() string {
	return strings.Join([]string{i.SKU, i.Name, string(i.Category), i.Loc}, " ")
}

// Field returns the textual value of a column by its export name.
// Unknown column names yield an empty string.
func (i Item) Field(column string) string {
	switch column {
	case "sku":
		return i.SKU
	case "name":
		return i.Name
	case "category":
		return string(i.Category)
	case "qty":
		return string(i.Qty)
	case "price":
		return string(i.Price)
	case "loc":
		return i.Loc
	default:
		return ""
	}
}

// Columns lists the item fields in export order
var Columns = []string{"sku", "name", "category", "qty", "price", "loc"}

// SeedItems returns the demo records written on first start
func SeedItems() []Item {
	return []Item{
		{SKU: "FAN-001", Name: "Ceiling Fan A", Category: Fans, Qty: "12", Price: "1499", Loc: "S1"},
		{SKU: "LGT-101", Name: "LED Bulb 9W", Category: Lights, Qty: "48", Price: "199", Loc: "S3"},
		{SKU: "BEL-55", Name: "Door Bell Model X", Category: Bells, Qty: "8", Price: "349", Loc: "S2"},
	}
}

// CloneItems returns a copy of items that can be modified freely
func CloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
