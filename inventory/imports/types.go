package imports

import (
	"time"

	"github.com/arthur-debert/toran/types"
)

// Store is the part of the record store an import writes to
type Store interface {
	Add(item types.Item) error
	Items() []types.Item
}

// Options configures the import behavior
type Options struct {
	// DryRun checks every row against the current items without writing
	DryRun bool `json:"dry_run,omitempty"`
}

// Result contains the results of an import operation
type Result struct {
	// Imported lists the SKUs added, in input order
	Imported []string `json:"imported"`

	// Failed contains rows that were rejected with the reason
	Failed []Failure `json:"failed"`

	Summary Summary `json:"summary"`
}

// Failure is a row that could not be imported
type Failure struct {
	SKU   string `json:"sku"`
	Error string `json:"error"`

	// Duplicate is set when the SKU already existed
	Duplicate bool `json:"duplicate,omitempty"`
}

// Summary provides statistics about the import operation
type Summary struct {
	TotalItems        int       `json:"total_items"`
	SuccessfulImports int       `json:"successful_imports"`
	FailedImports     int       `json:"failed_imports"`
	DryRun            bool      `json:"dry_run,omitempty"`
	ProcessingTime    string    `json:"processing_time"`
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
}
