// Package search derives the visible subset of the inventory from a
// free-text query and an optional category constraint.
package search

import (
	"strings"

	"github.com/arthur-debert/toran/types"
)

// Filter returns the items that match query and category, in their original
// order. An empty category or query places no constraint. The query is
// matched case-insensitively as a substring of "sku name category loc".
func Filter(items []types.Item, query string, category types.Category) []types.Item {
	needle := strings.ToLower(query)
	out := make([]types.Item, 0, len(items))
	for _, it := range items {
		if matches(it, needle, category) {
			out = append(out, it)
		}
	}
	return out
}

// matches expects needle to be lower-cased already
func matches(item types.Item, needle string, category types.Category) bool {
	if category != "" && item.Category != category {
		return false
	}
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Haystack()), needle)
}
