// Package export turns the inventory into downloadable artifacts: the CSV
// file and a zip bundle holding the CSV plus the JSON snapshot.
package export

import (
	"strings"

	"github.com/arthur-debert/toran/types"
)

// Header is the first line of every CSV export
var Header = strings.Join(types.Columns, ",")

// CSV renders items as comma separated lines in store order.
// Fields are written verbatim: values holding commas, quotes or line breaks
// are not quoted, so such values do not survive a read back. Lines are
// joined with "\n" and there is no trailing newline.
func CSV(items []types.Item) []byte {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, Header)
	for _, it := range items {
		fields := make([]string, len(types.Columns))
		for i, column := range types.Columns {
			fields[i] = it.Field(column)
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return []byte(strings.Join(lines, "\n"))
}
