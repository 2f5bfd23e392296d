package curve

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnsolvableCurve is returned when a quadratic has no positive real root.
	ErrUnsolvableCurve = errors.New("unsolvable curve")
	// ErrConstruction is returned when a curve does not meet y = x in the positive quadrant.
	ErrConstruction = errors.New("curve does not intersect y = x in Q1")
	// ErrInvalidReserveState is returned when an inverted reserve or utility leaves the valid domain.
	ErrInvalidReserveState = errors.New("invalid reserve state")
)

// UnsolvableCurveError carries the coefficients of the quadratic that could not be solved.
type UnsolvableCurveError struct {
	A, B, C decimal.Decimal
}

func (e *UnsolvableCurveError) Error() string {
	return fmt.Sprintf("cannot solve quadratic: a = %s, b = %s, c = %s", e.A, e.B, e.C)
}

func (e *UnsolvableCurveError) Unwrap() error {
	return ErrUnsolvableCurve
}

func invalidReserve(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidReserveState, fmt.Sprintf(format, args...))
}
