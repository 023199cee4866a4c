package domain

import (
	"math"
	"strings"

	"go.trai.ch/zerr"
)

// SmallNumber is the absolute tolerance below which an attribute write is not a change.
const SmallNumber = 1e-8

// ComparisonKind selects how a new attribute value is compared against a threshold.
type ComparisonKind uint8

const (
	// CompareNone passes every value; only the presence of a change matters.
	CompareNone ComparisonKind = iota
	// CompareGreaterThan passes when the new value is strictly above the threshold.
	CompareGreaterThan
	// CompareLessThan passes when the new value is strictly below the threshold.
	CompareLessThan
	// CompareGreaterOrEqual passes when the new value is at or above the threshold.
	CompareGreaterOrEqual
	// CompareLessOrEqual passes when the new value is at or below the threshold.
	CompareLessOrEqual
	// CompareNotEqual passes when the new value differs from the threshold.
	CompareNotEqual
	// CompareExactlyEqual passes when the new value is bit-for-bit equal to the threshold.
	CompareExactlyEqual
)

var comparisonNames = [...]string{
	CompareNone:           "none",
	CompareGreaterThan:    "greater_than",
	CompareLessThan:       "less_than",
	CompareGreaterOrEqual: "greater_or_equal",
	CompareLessOrEqual:    "less_or_equal",
	CompareNotEqual:       "not_equal",
	CompareExactlyEqual:   "exactly_equal",
}

// String returns the configuration name of the comparison.
func (k ComparisonKind) String() string {
	if int(k) < len(comparisonNames) {
		return comparisonNames[k]
	}
	return "unknown"
}

// ParseComparison converts a configuration name into a ComparisonKind.
// The empty string maps to CompareNone.
func ParseComparison(name string) (ComparisonKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return CompareNone, nil
	}
	for kind, candidate := range comparisonNames {
		if candidate == normalized {
			return ComparisonKind(kind), nil
		}
	}
	return CompareNone, zerr.With(ErrUnknownComparison, "comparison", name)
}

// Evaluate applies the comparison to newValue. Equality is exact, with no tolerance.
//
//nolint:cyclop // flat truth table
func Evaluate(kind ComparisonKind, newValue, threshold float64) bool {
	switch kind {
	case CompareGreaterThan:
		return newValue > threshold
	case CompareGreaterOrEqual:
		return newValue >= threshold
	case CompareLessThan:
		return newValue < threshold
	case CompareLessOrEqual:
		return newValue <= threshold
	case CompareNotEqual:
		return newValue != threshold
	case CompareExactlyEqual:
		return newValue == threshold
	default:
		return true
	}
}

// IsNearlyEqual reports whether two values differ by no more than SmallNumber.
func IsNearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= SmallNumber
}
