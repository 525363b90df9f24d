package validation

import (
	"errors"
	"slices"
	"strings"
)

// SortValidationErrors sorts the provided validation errors by line and column number lowest to highest.
// Errors that are not *Error keep their relative order and are moved after the validation errors.
func SortValidationErrors(allErrors []error) {
	if len(allErrors) == 0 {
		return
	}

	var validErrs []*Error
	var otherErrs []error
	for _, err := range allErrors {
		var vErr *Error
		if errors.As(err, &vErr) {
			validErrs = append(validErrs, vErr)
		} else {
			otherErrs = append(otherErrs, err)
		}
	}

	slices.SortStableFunc(validErrs, compareValidationErrors)

	idx := 0
	for _, vErr := range validErrs {
		allErrors[idx] = vErr
		idx++
	}
	for _, err := range otherErrs {
		allErrors[idx] = err
		idx++
	}
}

// compareValidationErrors compares two validation errors by line, column, severity, rule,
// message variant, underlying message and document location.
func compareValidationErrors(a, b *Error) int {
	if a.GetLineNumber() != b.GetLineNumber() {
		return a.GetLineNumber() - b.GetLineNumber()
	}
	if a.GetColumnNumber() != b.GetColumnNumber() {
		return a.GetColumnNumber() - b.GetColumnNumber()
	}
	if a.Severity != b.Severity {
		return int(a.Severity) - int(b.Severity)
	}
	if c := strings.Compare(a.Rule, b.Rule); c != 0 {
		return c
	}
	if c := strings.Compare(a.MessageID, b.MessageID); c != 0 {
		return c
	}
	if c := strings.Compare(errorMessage(a), errorMessage(b)); c != 0 {
		return c
	}
	return strings.Compare(a.DocumentLocation, b.DocumentLocation)
}

func errorMessage(e *Error) string {
	if e.UnderlyingError == nil {
		return ""
	}
	return e.UnderlyingError.Error()
}
