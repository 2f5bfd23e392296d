package calibrate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"conicPool/internal/curve"
	"conicPool/internal/numeric"
)

// Ray is a price boundary between two neighbouring slices.
type Ray struct {
	Price decimal.Decimal `json:"price"`
	Slope decimal.Decimal `json:"slope"`
}

// Slice is one segment of the curve, the hyperbola (x + A)(y + B) = 1.
type Slice struct {
	Kappa        decimal.Decimal    `json:"kappa"`
	A            decimal.Decimal    `json:"a"`
	B            decimal.Decimal    `json:"b"`
	Coefficients curve.Coefficients `json:"coefficients"`
}

// Result holds the rays and slices derived from a price/liquidity schedule.
type Result struct {
	Rays   []Ray   `json:"rays"`
	Slices []Slice `json:"slices"`
}

// Segments derives ray slopes and slice offsets for a concentrated liquidity
// schedule. prices are the n-1 ascending ray prices, liquidity the n slice weights.
func Segments(num numeric.Context, prices, liquidity []decimal.Decimal) (Result, error) {
	if err := validate(prices, liquidity); err != nil {
		return Result{}, err
	}

	nSlices := len(liquidity)
	nRays := nSlices - 1

	sqrtPrices := make([]decimal.Decimal, nRays)
	for i, price := range prices {
		root, _ := num.Sqrt(price)
		sqrtPrices[i] = root
	}

	minLiquidity := liquidity[0]
	for _, l := range liquidity[1:] {
		minLiquidity = decimal.Min(minLiquidity, l)
	}
	kappa := make([]decimal.Decimal, nSlices)
	for i, l := range liquidity {
		kappa[i] = num.Quo(l, minLiquidity)
	}

	rays := make([]Ray, nRays)
	for i := 0; i < nRays; i++ {
		numerator := kappa[i].Mul(sqrtPrices[i])
		for j := 0; j < i; j++ {
			numerator = numerator.Add(sqrtPrices[j].Mul(kappa[j].Sub(kappa[j+1])))
		}
		denom := num.Quo(kappa[i+1], sqrtPrices[i])
		for l := i + 1; l < nRays; l++ {
			denom = denom.Add(num.Quo(kappa[l+1].Sub(kappa[l]), sqrtPrices[l]))
		}
		if denom.IsZero() {
			return Result{}, fmt.Errorf("ray %d: zero slope denominator", i)
		}
		rays[i] = Ray{Price: prices[i], Slope: num.Quo(numerator, denom)}
	}

	slices := make([]Slice, nSlices)
	for i := 0; i < nSlices; i++ {
		a := decimal.Zero
		if i < nSlices-1 {
			sum := decimal.Zero
			for j := i; j < nSlices-1; j++ {
				sum = sum.Add(num.Quo(kappa[j].Sub(kappa[j+1]), sqrtPrices[j]))
			}
			a = num.Quo(sum, kappa[i])
		}

		b := decimal.Zero
		if i > 0 {
			sum := decimal.Zero
			for j := 0; j < i; j++ {
				sum = sum.Add(sqrtPrices[j].Mul(kappa[j+1].Sub(kappa[j])))
			}
			b = num.Quo(sum, kappa[i])
		}

		slices[i] = Slice{Kappa: kappa[i], A: a, B: b, Coefficients: Hyperbola(num, a, b)}
	}

	return Result{Rays: rays, Slices: slices}, nil
}

// Hyperbola expands (x + a)(y + b) = 1 into conic coefficients.
func Hyperbola(num numeric.Context, a, b decimal.Decimal) curve.Coefficients {
	return curve.Coefficients{
		A: decimal.Zero,
		B: decimal.NewFromInt(1),
		C: decimal.Zero,
		D: b,
		E: a,
		F: num.Round(a.Mul(b)).Sub(decimal.NewFromInt(1)),
	}
}

func validate(prices, liquidity []decimal.Decimal) error {
	if len(liquidity) < 2 {
		return fmt.Errorf("at least two liquidity slices are required")
	}
	if len(prices) != len(liquidity)-1 {
		return fmt.Errorf("expected %d prices for %d slices, got %d", len(liquidity)-1, len(liquidity), len(prices))
	}
	for i, price := range prices {
		if !price.IsPositive() {
			return fmt.Errorf("price %d must be positive", i)
		}
		if i > 0 && !price.GreaterThan(prices[i-1]) {
			return fmt.Errorf("prices must be ascending at index %d", i)
		}
	}
	for i, l := range liquidity {
		if !l.IsPositive() {
			return fmt.Errorf("liquidity %d must be positive", i)
		}
	}
	return nil
}
