package validation

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/toran/types"
)

// ValidateNew checks an item about to be added to the store.
// Only the SKU, name and category are constrained; qty, price and loc are free text.
func ValidateNew(item types.Item) error {
	if strings.TrimSpace(item.SKU) == "" {
		return fmt.Errorf("%w: sku is required", types.ErrValidation)
	}
	return validateFields(item)
}

// ValidateEdit checks the replacement of an existing item. The SKU is not
// validated because edits cannot change it.
func ValidateEdit(item types.Item) error {
	return validateFields(item)
}

// validateFields checks everything except the SKU
func validateFields(item types.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", types.ErrValidation)
	}
	if !item.Category.IsValid() {
		return fmt.Errorf("%w: invalid category %q", types.ErrValidation, item.Category)
	}
	return nil
}
