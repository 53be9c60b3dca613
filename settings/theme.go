// Package settings persists user preferences next to the inventory
package settings

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/toran/inventory/storage"
	"github.com/arthur-debert/toran/types"
)

// Theme is the color scheme preference
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// DefaultTheme is used when nothing valid is stored
const DefaultTheme = Light

// String returns the string representation of the Theme
func (t Theme) String() string {
	return string(t)
}

// Toggled returns the other theme
func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// ParseTheme resolves a theme name, ignoring case and surrounding space
func ParseTheme(name string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(name))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("%w: unknown theme %q (valid: dark, light)", types.ErrValidation, name)
	}
}

// Load reads the stored theme. Anything other than an exact "dark" or
// "light" yields DefaultTheme.
func Load(kv storage.KV) (Theme, error) {
	value, found, err := kv.Get(types.ThemeKey)
	if err != nil {
		return DefaultTheme, fmt.Errorf("failed to read theme: %w", err)
	}
	if !found {
		return DefaultTheme, nil
	}
	switch Theme(value) {
	case Dark, Light:
		return Theme(value), nil
	default:
		return DefaultTheme, nil
	}
}

// Save stores theme
func Save(kv storage.KV, theme Theme) error {
	if theme != Dark && theme != Light {
		return fmt.Errorf("%w: unknown theme %q", types.ErrValidation, theme)
	}
	if err := kv.Set(types.ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Toggle flips the stored theme and returns the new value
func Toggle(kv storage.KV) (Theme, error) {
	current, err := Load(kv)
	if err != nil {
		return current, err
	}
	next := current.Toggled()
	if err := Save(kv, next); err != nil {
		return current, err
	}
	return next, nil
}
