// Package formats renders command output. Each format is registered by
// name and selected with the --format flag.
package formats

import (
	"fmt"
	"io"
	"sort"

	"github.com/arthur-debert/toran/inventory"
	"github.com/arthur-debert/toran/types"
)

// Format defines how items and summaries are written for the user
type Format struct {
	// Name is the format identifier (alphanumeric, dashes, underscores, lowercase)
	Name string

	// Extension is the file extension including the dot (e.g., ".json")
	Extension string

	// Items writes an item list in display order
	Items func(w io.Writer, items []types.Item) error

	// Stats writes the inventory summary
	Stats func(w io.Writer, stats inventory.Stats) error
}

// registry holds all available formats
var registry = make(map[string]*Format)

// Default is the format used when none is configured
const Default = "table"

// Register adds a new format to the registry
func Register(format *Format) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}
	if format.Items == nil || format.Stats == nil {
		return fmt.Errorf("format %q must render items and stats", format.Name)
	}
	if format.Extension != "" && format.Extension[0] != '.' {
		format.Extension = "." + format.Extension
	}
	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns a format by name
func Get(name string) (*Format, error) {
	format, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, List())
	}
	return format, nil
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isValidFormatName checks if a format name is valid
func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

func mustRegister(format *Format) {
	if err := Register(format); err != nil {
		panic(err)
	}
}

func init() {
	mustRegister(Table)
	mustRegister(JSON)
	mustRegister(YAML)
	mustRegister(CSV)
}
