// Package types defines the scalar value handling for minil.
// Every value is a float64; this package owns how literals are
// parsed and how values are rendered by print.
package types

import (
	"math"
	"strconv"

	"github.com/coregx/coregex"
)

// Number Parsing and Formatting

// numLiteral is the full grammar of a numeric literal. strconv.ParseFloat
// alone also accepts forms the language does not ("0x1p3", "1_000", "Inf").
var numLiteral = mustCompile(`^(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic("types: bad pattern " + pattern + ": " + err.Error())
	}
	return re
}

// ParseNum parses a numeric literal as produced by the lexer.
// Accepts decimal integers, decimals with an optional leading or
// trailing dot, and an optional exponent.
func ParseNum(s string) (float64, error) {
	if !numLiteral.MatchString(s) {
		return 0, &strconv.NumError{Func: "ParseNum", Num: s, Err: strconv.ErrSyntax}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// FormatNum renders n the way print shows it: integral values without
// a decimal point, everything else with six significant digits.
func FormatNum(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case n == math.Trunc(n) && math.Abs(n) < 1e15:
		// Integer - format without decimal
		return strconv.FormatInt(int64(n), 10)
	default:
		return strconv.FormatFloat(n, 'g', 6, 64)
	}
}

// AppendNum appends the rendering of n to dst.
func AppendNum(dst []byte, n float64) []byte {
	return append(dst, FormatNum(n)...)
}
