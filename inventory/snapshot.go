package inventory

import (
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/toran/types"
)

// EncodeSnapshot serializes the full item list, in order, as a JSON array
func EncodeSnapshot(items []types.Item) ([]byte, error) {
	if items == nil {
		items = []types.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot written by EncodeSnapshot.
// A JSON null decodes to an empty list.
func DecodeSnapshot(data []byte) ([]types.Item, error) {
	var items []types.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if items == nil {
		items = []types.Item{}
	}
	return items, nil
}
