package search

import "github.com/arthur-debert/toran/types"

// SearchFields lists the item fields the query is matched against
var SearchFields = []string{"sku", "name", "category", "loc"}

// Options configures a search
type Options struct {
	// Query is the free text to look for; empty matches everything
	Query string

	// Category restricts results to one category; empty means all
	Category types.Category

	// EnableHighlight fills Result.Highlights with marked-up field text
	EnableHighlight bool

	// HighlightStartMarker and HighlightEndMarker wrap each match.
	// Both default to "**".
	HighlightStartMarker string
	HighlightEndMarker   string
}

// Result is a matching item with the fields the query was found in
type Result struct {
	Item types.Item

	// MatchedFields lists fields containing the whole query. It can be empty
	// when the query only matches across a field boundary.
	MatchedFields []string

	// Highlights maps field name to text with match markers
	Highlights map[string]string
}

// ItemProvider supplies the items to search
type ItemProvider interface {
	Items() []types.Item
}
