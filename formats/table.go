package formats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/arthur-debert/toran/inventory"
	"github.com/arthur-debert/toran/types"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	lowStockStyle = cellStyle.Foreground(lipgloss.Color("#e53935"))
)

// tableHeaders are the column titles in types.Columns order
var tableHeaders = []string{"SKU", "Name", "Category", "Qty", "Price", "Location"}

// Table renders bordered tables for terminals. Rows of low stock items
// are highlighted.
var Table = &Format{
	Name:      "table",
	Extension: ".txt",
	Items: func(w io.Writer, items []types.Item) error {
		if len(items) == 0 {
			_, err := fmt.Fprintln(w, "No items found.")
			return err
		}

		rows := make([][]string, 0, len(items))
		for _, it := range items {
			row := make([]string, len(types.Columns))
			for i, column := range types.Columns {
				row[i] = it.Field(column)
			}
			rows = append(rows, row)
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(tableHeaders...).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case row >= 0 && row < len(items) && inventory.IsLowStock(items[row]):
					return lowStockStyle
				default:
					return cellStyle
				}
			})

		_, err := fmt.Fprintln(w, t.String())
		return err
	},
	Stats: func(w io.Writer, stats inventory.Stats) error {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Metric", "Value").
			Row("Item types", strconv.Itoa(stats.ItemTypes)).
			Row("Total units", strconv.Itoa(stats.TotalUnits)).
			Row(fmt.Sprintf("Low stock (<%d)", inventory.LowStockThreshold), strconv.Itoa(stats.LowStock)).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		_, err := fmt.Fprintln(w, t.String())
		return err
	},
}
