package curve

import (
	"github.com/shopspring/decimal"

	"conicPool/internal/numeric"
)

var (
	two  = decimal.NewFromInt(2)
	four = decimal.NewFromInt(4)
)

// SolveQuadratic solves a·t² + b·t + c = 0 and returns the smallest positive root.
// A single positive root is returned when the other one is non-positive.
func SolveQuadratic(num numeric.Context, a, b, c decimal.Decimal) (decimal.Decimal, error) {
	if a.IsZero() {
		return decimal.Zero, &UnsolvableCurveError{A: a, B: b, C: c}
	}

	disc := b.Mul(b).Sub(four.Mul(a).Mul(c))
	root, ok := num.Sqrt(disc)
	if !ok {
		return decimal.Zero, &UnsolvableCurveError{A: a, B: b, C: c}
	}

	denom := two.Mul(a)
	r1 := num.Quo(b.Neg().Add(root), denom)
	r2 := num.Quo(b.Neg().Sub(root), denom)

	switch {
	case r1.IsPositive() && r2.IsPositive():
		return decimal.Min(r1, r2), nil
	case r1.IsPositive():
		return r1, nil
	case r2.IsPositive():
		return r2, nil
	default:
		return decimal.Zero, &UnsolvableCurveError{A: a, B: b, C: c}
	}
}
