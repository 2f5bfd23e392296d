package calibrate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conicPool/internal/curve"
	"conicPool/internal/numeric"
)

func decs(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, decimal.RequireFromString(v))
	}
	return out
}

func TestSegmentsStablecoinSchedule(t *testing.T) {
	prices := decs("0.9", "0.99", "0.999", "1.001", "1.01", "1.1")
	liquidity := decs("0.5", "9.5", "20", "40", "20", "9", "1")

	res, err := Segments(numeric.Default, prices, liquidity)
	require.NoError(t, err)
	require.Len(t, res.Rays, 6)
	require.Len(t, res.Slices, 7)

	tol := decimal.RequireFromString("0.000000001")
	slopes := decs("0.23556117333974966", "0.5907233746972149", "0.6894648252035613",
		"0.7371595993865371", "0.8543269262765468", "1.6032354750276085")
	for i, want := range slopes {
		assert.True(t, numeric.Within(res.Rays[i].Slope, want, tol), "ray %d slope %s want %s", i, res.Rays[i].Slope, want)
	}

	wantA := decs("-2.973240493904518", "0.8421276561634613", "0.9276554896887305", "0.964077932500752",
		"0.928655490313731", "0.8475223015516375", "0")
	wantB := decs("0", "0.8987525981531183", "0.9492758886037066", "0.9743878817705838",
		"0.9482758884787066", "0.8789616207045725", "-0.47981619902006045")
	for i := range res.Slices {
		assert.True(t, numeric.Within(res.Slices[i].A, wantA[i], tol), "slice %d a %s want %s", i, res.Slices[i].A, wantA[i])
		assert.True(t, numeric.Within(res.Slices[i].B, wantB[i], tol), "slice %d b %s want %s", i, res.Slices[i].B, wantB[i])
	}
	assert.True(t, res.Slices[0].Kappa.Equal(decimal.NewFromInt(1)))
}

func TestSegmentCoefficientsBuildCurve(t *testing.T) {
	prices := decs("0.9", "0.99", "0.999", "1.001", "1.01", "1.1")
	liquidity := decs("0.5", "9.5", "20", "40", "20", "9", "1")

	res, err := Segments(numeric.Default, prices, liquidity)
	require.NoError(t, err)

	// The last slice (x)(y - 0.4798) = 1 crosses y = x in Q1.
	k, err := curve.New(res.Slices[6].Coefficients, numeric.Default)
	require.NoError(t, err)
	assert.True(t, k.IdentityUtility().IsPositive())
}

func TestHyperbola(t *testing.T) {
	c := Hyperbola(numeric.Default, decimal.RequireFromString("0.5"), decimal.RequireFromString("2"))
	assert.True(t, c.B.Equal(decimal.NewFromInt(1)))
	assert.True(t, c.D.Equal(decimal.NewFromInt(2)))
	assert.True(t, c.E.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, c.F.IsZero())
}

func TestSegmentsValidation(t *testing.T) {
	tests := []struct {
		name      string
		prices    []decimal.Decimal
		liquidity []decimal.Decimal
	}{
		{name: "too few slices", prices: nil, liquidity: decs("1")},
		{name: "length mismatch", prices: decs("1"), liquidity: decs("1", "2", "3")},
		{name: "descending prices", prices: decs("1.1", "0.9"), liquidity: decs("1", "2", "3")},
		{name: "zero price", prices: decs("0"), liquidity: decs("1", "2")},
		{name: "zero liquidity", prices: decs("1"), liquidity: decs("0", "2")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Segments(numeric.Default, tt.prices, tt.liquidity)
			assert.Error(t, err)
		})
	}
}
