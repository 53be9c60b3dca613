package search

import (
	"strings"

	"github.com/arthur-debert/toran/types"
)

// Engine runs searches over an ItemProvider and reports match details
type Engine struct {
	provider ItemProvider
}

// NewEngine creates a new search engine with the given item provider
func NewEngine(provider ItemProvider) *Engine {
	return &Engine{
		provider: provider,
	}
}

// Search applies the filter rule of Filter and annotates each match.
// Results keep the provider's order; there is no ranking.
func (e *Engine) Search(options Options) []Result {
	items := Filter(e.provider.Items(), options.Query, options.Category)

	startMarker := options.HighlightStartMarker
	endMarker := options.HighlightEndMarker
	if startMarker == "" {
		startMarker = "**"
	}
	if endMarker == "" {
		endMarker = "**"
	}

	results := make([]Result, 0, len(items))
	needle := strings.ToLower(options.Query)
	for _, it := range items {
		result := Result{Item: it, MatchedFields: []string{}}
		if options.EnableHighlight {
			result.Highlights = make(map[string]string)
		}
		if needle != "" {
			for _, field := range SearchFields {
				value := it.Field(field)
				if !strings.Contains(strings.ToLower(value), needle) {
					continue
				}
				result.MatchedFields = append(result.MatchedFields, field)
				if options.EnableHighlight {
					result.Highlights[field] = highlight(value, needle, startMarker, endMarker)
				}
			}
		}
		results = append(results, result)
	}
	return results
}

// highlight wraps every case-insensitive occurrence of needle in value.
// needle must be lower-cased and non-empty.
func highlight(value, needle, startMarker, endMarker string) string {
	lower := strings.ToLower(value)
	if len(lower) != len(value) {
		// Lower-casing changed byte offsets; mark the whole field instead
		return startMarker + value + endMarker
	}

	var b strings.Builder
	pos := 0
	for {
		idx := strings.Index(lower[pos:], needle)
		if idx < 0 {
			b.WriteString(value[pos:])
			return b.String()
		}
		start := pos + idx
		end := start + len(needle)
		b.WriteString(value[pos:start])
		b.WriteString(startMarker)
		b.WriteString(value[start:end])
		b.WriteString(endMarker)
		pos = end
	}
}

// staticProvider serves a fixed item list
type staticProvider []types.Item

func (p staticProvider) Items() []types.Item { return p }

// SearchItems is a convenience function to search a plain item list
func SearchItems(items []types.Item, options Options) []Result {
	return NewEngine(staticProvider(items)).Search(options)
}
