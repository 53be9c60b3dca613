// Package imports reads CSV exports (or export bundles) back into the
// record store.
package imports

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/toran/inventory/export"
	"github.com/arthur-debert/toran/types"
)

// Read parses the CSV layout written by export.CSV. The header line is
// required and every other non-blank line must have exactly six fields.
// Fields are taken verbatim, matching the unquoted export.
func Read(r io.Reader) ([]types.Item, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	items := []types.Item{}
	lineNo := 0
	sawHeader := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !sawHeader {
			if line != export.Header {
				return nil, fmt.Errorf("line %d: expected header %q, got %q", lineNo, export.Header, line)
			}
			sawHeader = true
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != len(types.Columns) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", lineNo, len(types.Columns), len(fields))
		}
		category, err := types.ParseCategory(fields[2])
		if err != nil {
			// Kept raw so validation reports it per row
			category = types.Category(fields[2])
		}
		items = append(items, types.Item{
			SKU:      fields[0],
			Name:     fields[1],
			Category: category,
			Qty:      types.Quantity(fields[3]),
			Price:    types.Price(fields[4]),
			Loc:      fields[5],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if !sawHeader {
		return nil, fmt.Errorf("empty input: missing header")
	}
	return items, nil
}

// ReadFile reads items from a .csv export or a .zip export bundle
func ReadFile(path string) ([]types.Item, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		archive, err := export.ExtractArchive(path)
		if err != nil {
			return nil, err
		}
		return archive.Items, nil
	case ".csv", ".txt", "":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		return Read(f)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}
