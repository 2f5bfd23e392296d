package dex

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conicPool/internal/curve"
)

func TestToWei(t *testing.T) {
	assert.Equal(t, "1000000000000000000000", ToWei(decimal.NewFromInt(1000)).String())
	assert.Equal(t, "1", ToWei(decimal.RequireFromString("0.0000000000000000019")).String())
	assert.Equal(t, "-1500000000000000000", ToWei(decimal.RequireFromString("-1.5")).String())

	back := FromWei(big.NewInt(1500000000000000000))
	assert.True(t, back.Equal(decimal.RequireFromString("1.5")))
}

func TestToFixed64x64(t *testing.T) {
	one, err := ToFixed64x64(decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551616", one.String())

	half, err := ToFixed64x64(decimal.RequireFromString("-0.5"))
	require.NoError(t, err)
	assert.Equal(t, "-9223372036854775808", half.String())

	assert.True(t, FromFixed64x64(half, 18).Equal(decimal.RequireFromString("-0.5")))

	_, err = ToFixed64x64(decimal.New(1, 40))
	assert.Error(t, err)

	_, err = ToFixed64x64String("not a number")
	assert.Error(t, err)
}

func TestPackDeployParams(t *testing.T) {
	coeffs, err := curve.ParseCoefficients([]string{
		"0.7129785111362054",
		"1.4023717661989632",
		"0.7129785111362054",
		"-30408.265249329583",
		"-30408.265249329583",
		"324200000",
	})
	require.NoError(t, err)

	data, err := PackDeployParams(coeffs)
	require.NoError(t, err)
	assert.Len(t, data, 6*32)

	parsed, err := DemoPoolABI()
	require.NoError(t, err)
	values, err := parsed.Constructor.Inputs.Unpack(data)
	require.NoError(t, err)
	require.Len(t, values, 1)

	params, ok := values[0].([6]*big.Int)
	require.True(t, ok, "unexpected type %T", values[0])
	assert.True(t, params[3].Sign() < 0)

	want, err := ToFixed64x64String("324200000")
	require.NoError(t, err)
	assert.Equal(t, want.String(), params[5].String())
}
