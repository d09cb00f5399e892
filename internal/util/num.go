package util

import (
	"math"
	"strconv"
	"strings"
)

// SafeFloat coerces a raw attribute value to a float64 without ever failing.
// nil, empty strings and the literal "n/a" (any case) come back as zero, as
// does anything that does not parse.
func SafeFloat(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" || strings.EqualFold(s, "n/a") {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// SafeInt is SafeFloat truncated toward zero (float-then-int, not rounded).
func SafeInt(v any) int {
	return int(SafeFloat(v))
}

// SafeIntSlice splits a whitespace-separated string and converts each field
// with SafeInt. Non-string input yields an empty slice.
func SafeIntSlice(v any) []int {
	s, ok := v.(string)
	if !ok {
		return []int{}
	}
	fields := strings.Fields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		out = append(out, SafeInt(f))
	}
	return out
}

// RoundHalfUp rounds with exact .5 fractions always going toward positive
// infinity, unlike math.Round's half-away-from-zero and the banker's
// rounding of strconv formatting.
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
