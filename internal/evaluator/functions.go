package evaluator

import (
	"fmt"
	"math"

	"github.com/roach88/lcdcalc/internal/ir"
)

// applyFunction evaluates a single-argument function. Domain errors are not
// checked here; NaN propagates to the finiteness check.
func applyFunction(name string, x float64, mode ir.AngleMode) (float64, error) {
	switch name {
	case "sin":
		return math.Sin(toRadians(x, mode)), nil
	case "cos":
		return math.Cos(toRadians(x, mode)), nil
	case "tan":
		return math.Tan(toRadians(x, mode)), nil
	case "asin":
		return fromRadians(math.Asin(x), mode), nil
	case "acos":
		return fromRadians(math.Acos(x), mode), nil
	case "atan":
		return fromRadians(math.Atan(x), mode), nil
	case "ln":
		return math.Log(x), nil
	case "log":
		return math.Log10(x), nil
	case "sqrt":
		return math.Sqrt(x), nil
	case "inv":
		return 1 / x, nil
	default:
		return 0, &EvalError{Code: ErrCodeUnknownFunction, Message: fmt.Sprintf("unknown function %s", name)}
	}
}

func toRadians(x float64, mode ir.AngleMode) float64 {
	if mode == ir.AngleDegrees {
		return x * math.Pi / 180
	}
	return x
}

func fromRadians(x float64, mode ir.AngleMode) float64 {
	if mode == ir.AngleDegrees {
		return x * 180 / math.Pi
	}
	return x
}

// applyBinary evaluates a op b. Division by zero follows IEEE-754.
func applyBinary(symbol string, a, b float64) (float64, error) {
	switch symbol {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		return a / b, nil
	case "^":
		return math.Pow(a, b), nil
	default:
		return 0, &EvalError{Code: ErrCodeUnknownOperator, Message: fmt.Sprintf("unknown operator %s", symbol)}
	}
}

// Factorial returns n! for a non-negative integer n. Large n overflows to +Inf.
func Factorial(n float64) (float64, error) {
	if n < 0 {
		return 0, &EvalError{Code: ErrCodeNegativeFactorial, Message: fmt.Sprintf("factorial of negative number %g", n)}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return 0, &EvalError{Code: ErrCodeNonIntegerFactorial, Message: fmt.Sprintf("factorial of non-integer %g", n)}
	}
	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
		if math.IsInf(result, 1) {
			break
		}
	}
	return result, nil
}
