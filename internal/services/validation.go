package services

import (
	"math"
	"slices"
	"strconv"
	"strings"

	apperrors "fintrack/internal/errors"
)

// maxAmount is the largest value a NUMERIC(14,2) column holds.
const maxAmount = 999999999999.99

func fieldInvalid(field, message string) error {
	return apperrors.WithDetails(apperrors.ErrValidation, apperrors.FieldError{Field: field, Message: message})
}

func requirePositive(field string, v float64) error {
	if v <= 0 {
		return fieldInvalid(field, "must be greater than 0")
	}
	return requireStorableAmount(field, v)
}

func requireNonNegative(field string, v float64) error {
	if v < 0 {
		return fieldInvalid(field, "must be greater than or equal to 0")
	}
	return requireStorableAmount(field, v)
}

// requireStorableAmount rejects amounts the store would round or overflow.
func requireStorableAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v > maxAmount {
		return fieldInvalid(field, "must be less than or equal to 999999999999.99")
	}
	digits := strconv.FormatFloat(v, 'f', -1, 64)
	if _, frac, ok := strings.Cut(digits, "."); ok && len(frac) > 2 {
		return fieldInvalid(field, "must have at most 2 decimal places")
	}
	return nil
}

func requireText(field, v string, max int) error {
	if v == "" {
		return fieldInvalid(field, "field required")
	}
	if len([]rune(v)) > max {
		return fieldInvalid(field, "too long")
	}
	return nil
}

// clearNullable sets each column named in clear to NULL, ignoring names that
// are not among the nullable columns.
func clearNullable(changes map[string]interface{}, clear []string, nullable ...string) {
	for _, column := range clear {
		if slices.Contains(nullable, column) {
			changes[column] = nil
		}
	}
}
