package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/toran/types"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "add", "edit", "export")
	Cause       string   // The underlying cause (e.g., "sku already exists")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for invalid flag or argument values
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
	}
}

// NewNotFoundError creates an error for an unknown SKU
func NewNotFoundError(operation, sku string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("item with SKU %q not found", sku),
		Suggestions: suggestions,
		Underlying:  types.ErrNotFound,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation string, underlying error) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       "configuration error",
		Details:     underlying.Error(),
		Suggestions: []string{CommonSuggestions.CheckConfig, CommonSuggestions.CheckFlags},
		Underlying:  underlying,
	}
}

// NewStoreError creates an error for storage failures
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "store operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		errStr := strings.ToLower(underlying.Error())
		switch {
		case strings.Contains(errStr, "no such file"):
			cause = "data file not found"
		case strings.Contains(errStr, "permission denied"):
			cause = "insufficient permissions to access the data file"
		case strings.Contains(errStr, "lock"):
			cause = "data file is currently locked by another process"
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError maps record store errors to CLI errors. Validation, duplicate and
// unknown SKU errors get their own cause; anything else is a store error.
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	switch {
	case errors.Is(err, types.ErrDuplicateSKU):
		return &CLIError{
			Operation: operation,
			Cause:     err.Error(),
			Suggestions: append([]string{
				"Use 'toran edit <sku>' to change the existing item",
				"Run 'toran list -q <sku>' to see it",
			}, suggestions...),
			Underlying: err,
		}
	case errors.Is(err, types.ErrValidation):
		return &CLIError{
			Operation:   operation,
			Cause:       err.Error(),
			Suggestions: append([]string{CommonSuggestions.RunHelp}, suggestions...),
			Underlying:  err,
		}
	case errors.Is(err, types.ErrNotFound):
		return &CLIError{
			Operation:   operation,
			Cause:       err.Error(),
			Suggestions: append([]string{CommonSuggestions.CheckSKU}, suggestions...),
			Underlying:  err,
		}
	}

	return NewStoreError(operation, err, suggestions...)
}

// Common error messages and suggestions
var (
	CommonSuggestions = struct {
		CheckSKU    string
		CheckFile   string
		CheckConfig string
		CheckFlags  string
		RunHelp     string
		CheckPerms  string
		TryDryRun   string
	}{
		CheckSKU:    "Verify the SKU exists (try 'toran list' first)",
		CheckFile:   "Verify --file points to a valid data file",
		CheckConfig: "Check your configuration file or TORAN_* environment variables",
		CheckFlags:  "Check command line flags and their values",
		RunHelp:     "Run command with --help for usage information",
		CheckPerms:  "Check file permissions and directory access",
		TryDryRun:   "Use --dry-run to preview the operation",
	}
)
