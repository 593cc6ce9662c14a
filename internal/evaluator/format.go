package evaluator

import (
	"math"
	"strconv"
)

// ErrorText is the result text shown for any failed evaluation.
const ErrorText = "Error"

const (
	expUpper = 1e10
	expLower = 1e-9
)

// FormatResult renders a value for the result line.
//
// Nonzero magnitudes at or above 1e10, or below 1e-9, use exponential
// notation with 8 fractional digits ("1.23456789e+10"). Everything else is
// rounded to 9 significant digits and printed in the shortest plain decimal
// form. Non-finite values render as ErrorText.
func FormatResult(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrorText
	}
	abs := math.Abs(v)
	if abs != 0 && (abs >= expUpper || abs < expLower) {
		return strconv.FormatFloat(v, 'e', 8, 64)
	}
	if v == 0 {
		return "0"
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 9, 64), 64)
	if err != nil {
		return ErrorText
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
