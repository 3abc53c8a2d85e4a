// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// A Number is the text of a JSON number, exactly as it appeared in the
// input. Keeping the text allows values too large for any native type to
// be copied without loss.
type Number string

// String returns the text of n.
func (n Number) String() string { return string(n) }

// IsInt reports whether n is lexically an integer, having neither a
// fraction nor an exponent.
func (n Number) IsInt() bool { return !strings.ContainsAny(string(n), ".eE") }

// Int64 parses n as a signed 64-bit integer.
func (n Number) Int64() (int64, error) { return strconv.ParseInt(string(n), 10, 64) }

// Float64 parses n as a 64-bit floating-point value.
func (n Number) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }

// Decimal parses n as an arbitrary-precision decimal value.
func (n Number) Decimal() (decimal.Decimal, error) { return decimal.NewFromString(string(n)) }

// Value converts n to a Go value. An integer that fits is an int64.
// Otherwise, if useFloat is true and n is a finite float64, the result is a
// float64. Anything else is a decimal.Decimal, which preserves every digit.
func (n Number) Value(useFloat bool) (any, error) {
	if n.IsInt() {
		if v, err := n.Int64(); err == nil {
			return v, nil
		}
	}
	if useFloat {
		if v, err := n.Float64(); err == nil && !math.IsInf(v, 0) {
			return v, nil
		}
	}
	return n.Decimal()
}
