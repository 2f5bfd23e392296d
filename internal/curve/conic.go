package curve

import (
	"fmt"

	"github.com/shopspring/decimal"

	"conicPool/internal/numeric"
)

// Coefficients define the conic a·x² + b·x·y + c·y² + d·x + e·y + f = 0.
type Coefficients struct {
	A decimal.Decimal `json:"a"`
	B decimal.Decimal `json:"b"`
	C decimal.Decimal `json:"c"`
	D decimal.Decimal `json:"d"`
	E decimal.Decimal `json:"e"`
	F decimal.Decimal `json:"f"`
}

// ParseCoefficients parses the six coefficients in a, b, c, d, e, f order.
func ParseCoefficients(values []string) (Coefficients, error) {
	if len(values) != 6 {
		return Coefficients{}, fmt.Errorf("expected 6 coefficients, got %d", len(values))
	}
	parsed := make([]decimal.Decimal, 6)
	for i, value := range values {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return Coefficients{}, fmt.Errorf("coefficient %d: %w", i, err)
		}
		parsed[i] = d
	}
	return Coefficients{A: parsed[0], B: parsed[1], C: parsed[2], D: parsed[3], E: parsed[4], F: parsed[5]}, nil
}

// Strings returns the coefficients in a, b, c, d, e, f order.
func (c Coefficients) Strings() []string {
	return []string{c.A.String(), c.B.String(), c.C.String(), c.D.String(), c.E.String(), c.F.String()}
}

// Curve is an immutable conic trading curve. It is safe for concurrent use.
type Curve struct {
	coeffs   Coefficients
	num      numeric.Context
	identity decimal.Decimal
}

// New builds a curve and derives its identity utility, the positive
// x-coordinate where the conic meets the line y = x.
func New(coeffs Coefficients, num numeric.Context) (*Curve, error) {
	k := &Curve{coeffs: coeffs, num: num}

	identity, err := k.identityUtility()
	if err != nil {
		return nil, err
	}
	k.identity = identity
	return k, nil
}

func (k *Curve) identityUtility() (decimal.Decimal, error) {
	c := k.coeffs
	abc := c.A.Add(c.B).Add(c.C)
	de := c.D.Add(c.E)

	var identity decimal.Decimal
	if !abc.IsZero() {
		root, err := SolveQuadratic(k.num, abc, de, c.F)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrConstruction, err)
		}
		identity = root
	} else {
		if de.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: d + e is zero", ErrConstruction)
		}
		identity = k.num.Quo(c.F.Neg(), de)
	}

	if !identity.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: identity utility %s", ErrConstruction, identity)
	}
	return identity, nil
}

// Coefficients returns the conic coefficients.
func (k *Curve) Coefficients() Coefficients { return k.coeffs }

// IdentityUtility returns the utility at the curve's intersection with y = x.
func (k *Curve) IdentityUtility() decimal.Decimal { return k.identity }

// Context returns the numeric context the curve computes with.
func (k *Curve) Context() numeric.Context { return k.num }

// Utility returns the scale-normalized utility of the reserve pair (x, y).
func (k *Curve) Utility(x, y decimal.Decimal) (decimal.Decimal, error) {
	if !x.IsPositive() {
		return decimal.Zero, invalidReserve("x reserve %s", x)
	}
	if y.IsNegative() {
		return decimal.Zero, invalidReserve("y reserve %s", y)
	}

	c := k.coeffs
	m := k.num.Quo(y, x)
	linear := c.D.Add(c.E.Mul(m))

	var xPrime decimal.Decimal
	switch {
	case !c.A.Add(c.B).Add(c.C).IsZero():
		quad := c.A.Add(c.B.Mul(m)).Add(c.C.Mul(m).Mul(m))
		root, err := SolveQuadratic(k.num, quad, linear, c.F)
		if err != nil {
			return decimal.Zero, err
		}
		xPrime = root
	case c.B.IsZero():
		if linear.IsZero() {
			return decimal.Zero, invalidReserve("degenerate conic at ratio %s", m)
		}
		xPrime = k.num.Quo(c.F.Neg(), linear)
	default:
		// a + b + c = 0 with b != 0 has no valid branch.
		return decimal.Zero, invalidReserve("conic has no valid branch")
	}

	if !xPrime.IsPositive() {
		return decimal.Zero, invalidReserve("x' %s", xPrime)
	}
	return k.num.Round(k.num.Quo(k.identity, xPrime).Mul(x)), nil
}

// Y returns the y reserve consistent with reserve x at the target utility.
func (k *Curve) Y(x, utility decimal.Decimal) (decimal.Decimal, error) {
	if !utility.IsPositive() {
		return decimal.Zero, invalidReserve("utility %s", utility)
	}
	xPrime := k.num.Quo(x, utility).Mul(k.identity)
	if !xPrime.IsPositive() {
		return decimal.Zero, invalidReserve("x' %s", xPrime)
	}

	c := k.coeffs
	constant := c.A.Mul(xPrime).Mul(xPrime).Add(c.D.Mul(xPrime)).Add(c.F)
	linear := c.B.Mul(xPrime).Add(c.E)

	yPrime, err := k.solveAxis(c.C, linear, constant)
	if err != nil {
		return decimal.Zero, err
	}
	if !yPrime.IsPositive() {
		return decimal.Zero, invalidReserve("y' %s", yPrime)
	}
	return k.num.Round(k.num.Quo(yPrime, xPrime).Mul(x)), nil
}

// X returns the x reserve consistent with reserve y at the target utility.
func (k *Curve) X(y, utility decimal.Decimal) (decimal.Decimal, error) {
	if !utility.IsPositive() {
		return decimal.Zero, invalidReserve("utility %s", utility)
	}
	yPrime := k.num.Quo(y, utility).Mul(k.identity)
	if !yPrime.IsPositive() {
		return decimal.Zero, invalidReserve("y' %s", yPrime)
	}

	c := k.coeffs
	constant := c.C.Mul(yPrime).Mul(yPrime).Add(c.E.Mul(yPrime)).Add(c.F)
	linear := c.B.Mul(yPrime).Add(c.D)

	xPrime, err := k.solveAxis(c.A, linear, constant)
	if err != nil {
		return decimal.Zero, err
	}
	if !xPrime.IsPositive() {
		return decimal.Zero, invalidReserve("x' %s", xPrime)
	}
	return k.num.Round(k.num.Quo(xPrime, yPrime).Mul(y)), nil
}

// solveAxis solves quad·t² + linear·t + constant = 0, falling back to the
// linear form when the squared term vanishes.
func (k *Curve) solveAxis(quad, linear, constant decimal.Decimal) (decimal.Decimal, error) {
	if !quad.IsZero() {
		return SolveQuadratic(k.num, quad, linear, constant)
	}
	if linear.IsZero() {
		return decimal.Zero, invalidReserve("degenerate linear term")
	}
	return k.num.Quo(constant.Neg(), linear), nil
}
