package dex

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

const weiDecimals = 18

var (
	oneEther  = new(big.Int).Exp(big.NewInt(10), big.NewInt(weiDecimals), nil)
	twoTo64   = new(big.Int).Lsh(big.NewInt(1), 64)
	int128Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	int128Min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// ToWei scales v to 18 decimals, truncating the remainder.
func ToWei(v decimal.Decimal) *big.Int {
	return v.Shift(weiDecimals).Truncate(0).BigInt()
}

// FromWei converts an 18-decimal integer back to a decimal.
func FromWei(v *big.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v, -weiDecimals)
}

// ToFixed64x64 converts v to signed 64.64 fixed point through its wei value,
// rounding toward zero like the deployment script.
func ToFixed64x64(v decimal.Decimal) (*big.Int, error) {
	fixed := new(big.Int).Mul(ToWei(v), twoTo64)
	fixed.Quo(fixed, oneEther)
	if fixed.Cmp(int128Max) > 0 || fixed.Cmp(int128Min) < 0 {
		return nil, fmt.Errorf("value %s overflows int128", v)
	}
	return fixed, nil
}

// ToFixed64x64String parses value and converts it to 64.64 fixed point.
func ToFixed64x64String(value string) (*big.Int, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", value, err)
	}
	return ToFixed64x64(d)
}

// FromFixed64x64 converts a 64.64 fixed point integer to a decimal.
func FromFixed64x64(v *big.Int, places int32) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v, 0).DivRound(decimal.NewFromBigInt(twoTo64, 0), places)
}
