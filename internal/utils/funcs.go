package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	errMismatchedLensFmt = "mismatched lengths: len(y) = %d, len(u) = %d"
	errEmptyFloatList    = "empty list of values"
	errBadFloatFmt       = "cannot parse '%s' as a float: %v"
)

// IsIn reports whether s is one of the strings in arr.
func IsIn(s string, arr []string) bool {
	for _, x := range arr {
		if s == x {
			return true
		}
	}
	return false
}

// YLogYdU computes y*log(y/u) elementwise. The term is defined to be 0
// where y == 0, which keeps deviance formulas total at the boundary of
// the count families' domains.
func YLogYdU(y, u []float64) ([]float64, error) {
	if len(y) != len(u) {
		return nil, fmt.Errorf(errMismatchedLensFmt, len(y), len(u))
	}
	out := make([]float64, len(y))
	for i, yi := range y {
		if yi == 0 {
			continue
		}
		out[i] = yi * math.Log(yi/u[i])
	}
	return out, nil
}

// ParseFloats parses a comma-separated list of numbers, e.g. "0.5,2,10".
func ParseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) == 1 && strings.TrimSpace(parts[0]) == "" {
		return nil, fmt.Errorf(errEmptyFloatList)
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf(errBadFloatFmt, p, err)
		}
		out[i] = f
	}
	return out, nil
}
