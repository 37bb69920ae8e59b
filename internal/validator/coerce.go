// Package validator holds the form-input coercion rules. They are explicit
// on purpose: non-numeric numeric fields become 0 instead of failing the
// whole request.
package validator

import (
	"strconv"
	"strings"
	"time"
)

// Float parses a currency/number form value. Garbage and empty input
// coerce to 0.
func Float(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// Int parses an integer form value, coercing garbage to 0.
func Int(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// Int64 parses an id-sized integer form value, coercing garbage to 0.
func Int64(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Date parses a YYYY-MM-DD form value. Empty or invalid input is nil.
func Date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}
