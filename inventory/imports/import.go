package imports

import (
	"errors"
	"slices"
	"time"

	"github.com/arthur-debert/toran/inventory"
	"github.com/arthur-debert/toran/types"
)

// Apply adds items to store so that they appear in input order at the top
// of the list. Since every add prepends, items are applied last to first.
// Duplicate SKUs and invalid rows are recorded in the result and do not stop
// the import; any other error (such as a failed write) aborts and is
// returned with the partial result.
func Apply(store Store, items []types.Item) (*Result, error) {
	return ApplyWithOptions(store, items, Options{})
}

// ApplyWithOptions is Apply with explicit options
func ApplyWithOptions(store Store, items []types.Item, options Options) (*Result, error) {
	startTime := time.Now()
	result := &Result{
		Imported: make([]string, 0, len(items)),
		Failed:   make([]Failure, 0),
		Summary: Summary{
			TotalItems: len(items),
			DryRun:     options.DryRun,
			StartedAt:  startTime,
		},
	}

	// Dry runs apply the pure reducer to a private copy
	var planned []types.Item
	if options.DryRun {
		planned = store.Items()
	}

	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		var err error
		if options.DryRun {
			planned, err = inventory.Add(planned, item)
		} else {
			err = store.Add(item)
		}

		switch {
		case err == nil:
			result.Imported = append(result.Imported, item.SKU)
		case errors.Is(err, types.ErrDuplicateSKU):
			result.Failed = append(result.Failed, Failure{SKU: item.SKU, Error: err.Error(), Duplicate: true})
		case errors.Is(err, types.ErrValidation):
			result.Failed = append(result.Failed, Failure{SKU: item.SKU, Error: err.Error()})
		default:
			finish(result, startTime)
			return result, err
		}
	}

	finish(result, startTime)
	return result, nil
}

// finish restores input order and fills in the summary
func finish(result *Result, startTime time.Time) {
	slices.Reverse(result.Imported)
	slices.Reverse(result.Failed)
	result.Summary.SuccessfulImports = len(result.Imported)
	result.Summary.FailedImports = len(result.Failed)
	result.Summary.CompletedAt = time.Now()
	result.Summary.ProcessingTime = result.Summary.CompletedAt.Sub(startTime).String()
}
