package formats

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/toran/inventory"
	"github.com/arthur-debert/toran/inventory/export"
	"github.com/arthur-debert/toran/types"
)

// JSON writes indented JSON, using the snapshot encoding for items
var JSON = &Format{
	Name:      "json",
	Extension: ".json",
	Items: func(w io.Writer, items []types.Item) error {
		if items == nil {
			items = []types.Item{}
		}
		return writeJSON(w, items)
	},
	Stats: func(w io.Writer, stats inventory.Stats) error {
		return writeJSON(w, stats)
	},
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes YAML documents
var YAML = &Format{
	Name:      "yaml",
	Extension: ".yaml",
	Items: func(w io.Writer, items []types.Item) error {
		if items == nil {
			items = []types.Item{}
		}
		return writeYAML(w, items)
	},
	Stats: func(w io.Writer, stats inventory.Stats) error {
		return writeYAML(w, stats)
	},
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// CSV writes the export layout, followed by a newline for terminals
var CSV = &Format{
	Name:      "csv",
	Extension: ".csv",
	Items: func(w io.Writer, items []types.Item) error {
		_, err := fmt.Fprintf(w, "%s\n", export.CSV(items))
		return err
	},
	Stats: func(w io.Writer, stats inventory.Stats) error {
		_, err := fmt.Fprintf(w, "item_types,total_units,low_stock\n%d,%d,%d\n",
			stats.ItemTypes, stats.TotalUnits, stats.LowStock)
		return err
	},
}
