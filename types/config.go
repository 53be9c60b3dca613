package types

import (
	"fmt"
	"strings"
)

// Category groups inventory items for filtering
type Category string

const (
	Fans        Category = "Fans"
	Lights      Category = "Lights"
	Bells       Category = "Bells"
	Accessories Category = "Accessories"
)

// Categories lists every valid category in display order
var Categories = []Category{Fans, Lights, Bells, Accessories}

// String returns the string representation of the Category
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether c is one of the fixed categories
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a category name, ignoring case.
// An empty name resolves to the empty category (no constraint).
func ParseCategory(name string) (Category, error) {
	if name == "" {
		return "", nil
	}
	for _, known := range Categories {
		if strings.EqualFold(string(known), name) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q (valid: Fans, Lights, Bells, Accessories)", ErrValidation, name)
}

// NextCategory cycles through "" and the fixed categories, used by filter toggles
func NextCategory(c Category) Category {
	if c == "" {
		return Categories[0]
	}
	for i, known := range Categories {
		if known == c && i+1 < len(Categories) {
			return Categories[i+1]
		}
	}
	return ""
}
