package inventory

import (
	"fmt"

	"github.com/arthur-debert/toran/internal/validation"
	"github.com/arthur-debert/toran/types"
)

// The functions in this file are the pure state transitions of the store.
// They never modify the slice they receive; on error the input is returned
// unchanged so callers can keep using it.

// Add prepends item, rejecting blank required fields and duplicate SKUs
func Add(items []types.Item, item types.Item) ([]types.Item, error) {
	if err := validation.ValidateNew(item); err != nil {
		return items, err
	}
	if _, found := Find(items, item.SKU); found {
		return items, fmt.Errorf("%w: %s", types.ErrDuplicateSKU, item.SKU)
	}

	out := make([]types.Item, 0, len(items)+1)
	out = append(out, item)
	out = append(out, items...)
	return out, nil
}

// Update replaces the item whose SKU matches sku. The replacement keeps the
// original SKU whatever item.SKU holds. Unknown SKUs yield ErrNotFound.
func Update(items []types.Item, sku string, item types.Item) ([]types.Item, error) {
	idx := indexOf(items, sku)
	if idx < 0 {
		return items, fmt.Errorf("%w: %s", types.ErrNotFound, sku)
	}
	item.SKU = sku
	if err := validation.ValidateEdit(item); err != nil {
		return items, err
	}

	out := types.CloneItems(items)
	out[idx] = item
	return out, nil
}

// Delete removes the item whose SKU matches sku. A missing SKU is a no-op.
func Delete(items []types.Item, sku string) []types.Item {
	idx := indexOf(items, sku)
	if idx < 0 {
		return items
	}

	out := make([]types.Item, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	return out
}

// Find returns the item with the given SKU
func Find(items []types.Item, sku string) (types.Item, bool) {
	idx := indexOf(items, sku)
	if idx < 0 {
		return types.Item{}, false
	}
	return items[idx], true
}

func indexOf(items []types.Item, sku string) int {
	for i, it := range items {
		if it.SKU == sku {
			return i
		}
	}
	return -1
}
