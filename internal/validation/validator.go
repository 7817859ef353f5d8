// Package validation checks the shape of decoded JSON operation values.
//
// Values are expected to come from a json.Decoder with UseNumber enabled, so
// numbers arrive as json.Number. float64 is accepted as well for callers that
// decode without it.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ValidationResult holds the outcome of validating one operation value.
// Only the first failure is recorded.
type ValidationResult struct {
	Valid   bool
	Field   string
	Message string
}

// NewValidationResult creates a passing validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{Valid: true}
}

// AddError marks the result as invalid. Later errors do not overwrite the first one.
func (v *ValidationResult) AddError(field, message string) {
	if !v.Valid {
		return
	}
	v.Valid = false
	v.Field = field
	v.Message = message
}

// Integer converts a decoded JSON value to an int64.
// Integral floats such as 6.0 or 1e3 are accepted; fractions, non-numbers and
// values outside (MinInt64, MaxInt64] are not.
func Integer(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, i != math.MinInt64
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return integralFloat(f)
	case float64:
		return integralFloat(n)
	case int:
		return int64(n), int64(n) != math.MinInt64
	case int64:
		return n, n != math.MinInt64
	default:
		return 0, false
	}
}

// 2^63 is exactly representable, so f < 2^63 keeps the conversion in range.
func integralFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.Exp2(63) || f <= -math.Exp2(63) {
		return 0, false
	}
	return int64(f), true
}

// ValidateCount validates a non-negative integer no larger than max.
func ValidateCount(field string, v any, max int) (int, *ValidationResult) {
	result := NewValidationResult()

	n, ok := Integer(v)
	if !ok || n < 0 {
		result.AddError(field, fmt.Sprintf("%s requires a non-negative integer", field))
		return 0, result
	}

	if n > int64(max) {
		result.AddError(field, fmt.Sprintf("%s supports at most %d terms", field, max))
		return 0, result
	}

	return int(n), result
}

// ValidateIntegers validates a non-empty array of integers.
func ValidateIntegers(field string, v any) ([]int64, *ValidationResult) {
	result := NewValidationResult()

	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		result.AddError(field, fmt.Sprintf("%s requires a non-empty array of integers", field))
		return nil, result
	}

	nums := make([]int64, len(items))
	for i, item := range items {
		n, ok := Integer(item)
		if !ok {
			result.AddError(field, fmt.Sprintf("%s array must contain only integers", field))
			return nil, result
		}
		nums[i] = n
	}

	return nums, result
}

// ValidateNonZero rejects arrays containing a zero element.
func ValidateNonZero(field string, nums []int64) *ValidationResult {
	result := NewValidationResult()

	for _, n := range nums {
		if n == 0 {
			result.AddError(field, fmt.Sprintf("%s cannot be calculated with zero", field))
			break
		}
	}

	return result
}

// ValidateQuestion validates a string with non-whitespace content.
// The returned question is trimmed.
func ValidateQuestion(field string, v any) (string, *ValidationResult) {
	result := NewValidationResult()

	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		result.AddError(field, fmt.Sprintf("%s requires a non-empty question string", field))
		return "", result
	}

	return strings.TrimSpace(s), result
}
