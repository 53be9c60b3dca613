package types

import "errors"

// Sentinel errors returned by the record store. Callers match them with errors.Is;
// the returned errors carry the offending field or SKU as context.
var (
	// ErrValidation reports a missing or invalid required field
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateSKU reports an add whose SKU is already present
	ErrDuplicateSKU = errors.New("sku already exists")

	// ErrNotFound reports an update addressed to an unknown SKU
	ErrNotFound = errors.New("item not found")
)
