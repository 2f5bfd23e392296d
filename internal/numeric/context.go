package numeric

import (
	"math"

	"github.com/shopspring/decimal"
)

// Quantum is the number of decimal places used for tolerance comparisons.
const Quantum int32 = 8

const maxSqrtIterations = 200

// Rounding selects how quotients are rounded to the context precision.
type Rounding uint8

const (
	RoundHalfUp Rounding = iota
	RoundDown
)

// Context carries the precision every division and square root is computed at.
type Context struct {
	Places int32
	Mode   Rounding
}

// Default keeps 30 decimal places, rounding half away from zero.
var Default = Context{Places: 30, Mode: RoundHalfUp}

// Quo divides a by b at the context precision. b must be non-zero.
func (c Context) Quo(a, b decimal.Decimal) decimal.Decimal {
	if c.Mode == RoundDown {
		q, _ := a.QuoRem(b, c.Places)
		return q
	}
	return a.DivRound(b, c.Places)
}

// Round rounds v to the context precision.
func (c Context) Round(v decimal.Decimal) decimal.Decimal {
	if c.Mode == RoundDown {
		return v.Truncate(c.Places)
	}
	return v.Round(c.Places)
}

// Sqrt returns the square root of v at the context precision.
// ok is false when v is negative.
func (c Context) Sqrt(v decimal.Decimal) (decimal.Decimal, bool) {
	if v.IsNegative() {
		return decimal.Zero, false
	}
	if v.IsZero() {
		return decimal.Zero, true
	}

	guess := v
	if f := v.InexactFloat64(); f > 0 && !math.IsInf(f, 0) {
		if s := math.Sqrt(f); s > 0 {
			guess = decimal.NewFromFloat(s)
		}
	}

	work := Context{Places: c.Places + 4, Mode: RoundHalfUp}
	epsilon := decimal.New(1, -(c.Places + 2))
	two := decimal.NewFromInt(2)
	for i := 0; i < maxSqrtIterations; i++ {
		next := work.Quo(guess.Add(work.Quo(v, guess)), two)
		if next.Sub(guess).Abs().LessThanOrEqual(epsilon) {
			guess = next
			break
		}
		guess = next
	}
	return c.Round(guess), true
}

// Truncate cuts v to the comparison quantum.
func Truncate(v decimal.Decimal) decimal.Decimal {
	return v.Truncate(Quantum)
}

// Within reports whether a and b differ by at most tol.
func Within(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}
