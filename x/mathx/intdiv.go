package mathx

import "golang.org/x/exp/constraints"

// RoundDiv returns floor((a + b/2)/b), classic rounding for positives.
// A zero divisor yields 0.
func RoundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// Percent returns part as a rounded percentage of whole.
func Percent[T constraints.Unsigned](part, whole T) T {
	return RoundDiv(part*100, whole)
}
