package pool

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conicPool/internal/curve"
	"conicPool/internal/numeric"
)

var tolerance = dec("0.00000001")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func referenceCurve(t *testing.T) *curve.Curve {
	t.Helper()
	coeffs, err := curve.ParseCoefficients([]string{
		"0.7129785111362054",
		"1.4023717661989632",
		"0.7129785111362054",
		"-30408.265249329583",
		"-30408.265249329583",
		"324200000",
	})
	require.NoError(t, err)
	k, err := curve.New(coeffs, numeric.Default)
	require.NoError(t, err)
	return k
}

func newPool(t *testing.T, feeX, feeY string) *Pool {
	t.Helper()
	p, err := New(referenceCurve(t), Config{
		FeeX:     dec(feeX),
		FeeY:     dec(feeY),
		BalanceX: dec("1000"),
		BalanceY: dec("1000"),
	})
	require.NoError(t, err)
	return p
}

func TestNewSeedsTotalSupply(t *testing.T) {
	p := newPool(t, "0", "0")
	assert.True(t, p.Balances().TotalSupply.Equal(dec("2000")))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	k := referenceCurve(t)

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "fee of one", cfg: Config{FeeX: dec("1"), BalanceX: dec("1"), BalanceY: dec("1")}},
		{name: "negative fee", cfg: Config{FeeY: dec("-0.1"), BalanceX: dec("1"), BalanceY: dec("1")}},
		{name: "negative balance", cfg: Config{BalanceX: dec("-1"), BalanceY: dec("1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(k, tt.cfg)
			assert.True(t, errors.Is(err, ErrInvalidAmount))
		})
	}

	_, err := New(nil, Config{})
	assert.Error(t, err)
}

func TestSwapReferenceScenario(t *testing.T) {
	p := newPool(t, "0", "0")
	before, err := p.Utility()
	require.NoError(t, err)

	out, err := p.Swap(dec("100"), TokenX)
	require.NoError(t, err)

	bal := p.Balances()
	assert.True(t, bal.X.Equal(dec("1100")), "x balance %s", bal.X)
	assert.True(t, out.LessThan(dec("100")), "amount out %s", out)
	assert.True(t, numeric.Within(out, dec("99.175799415702606132527226529"), tolerance), "amount out %s", out)
	assert.True(t, bal.Y.Equal(dec("1000").Sub(out)))
	assert.True(t, bal.TotalSupply.Equal(dec("2000")))

	after, err := p.Utility()
	require.NoError(t, err)
	assert.True(t, numeric.Within(before, after, tolerance), "utility %s -> %s", before, after)
}

func TestSwapBothDirectionsConserveUtility(t *testing.T) {
	p := newPool(t, "0", "0")

	for i, step := range []struct {
		amount string
		token  Token
	}{
		{amount: "50", token: TokenY},
		{amount: "120.5", token: TokenX},
		{amount: "3", token: TokenY},
	} {
		before, err := p.Utility()
		require.NoError(t, err)

		_, err = p.Swap(dec(step.amount), step.token)
		require.NoError(t, err, "step %d", i)

		after, err := p.Utility()
		require.NoError(t, err)
		assert.True(t, numeric.Within(before, after, tolerance), "step %d utility %s -> %s", i, before, after)
	}
}

func TestDepositWithdrawSymmetry(t *testing.T) {
	for _, token := range []Token{TokenX, TokenY} {
		t.Run(token.String(), func(t *testing.T) {
			p := newPool(t, "0", "0")

			minted, err := p.Deposit(dec("100"), token)
			require.NoError(t, err)
			assert.True(t, minted.IsPositive())
			assert.True(t, p.Balances().TotalSupply.Equal(dec("2000").Add(minted)))

			withdrawn, err := p.Withdraw(minted, token)
			require.NoError(t, err)
			assert.True(t, numeric.Within(withdrawn, dec("100"), dec("0.000001")), "withdrawn %s", withdrawn)

			bal := p.Balances()
			assert.True(t, numeric.Within(bal.X, dec("1000"), dec("0.000001")))
			assert.True(t, numeric.Within(bal.Y, dec("1000"), dec("0.000001")))
			assert.True(t, bal.TotalSupply.Equal(dec("2000")))
		})
	}
}

func TestDepositMintAmount(t *testing.T) {
	p := newPool(t, "0", "0")
	minted, err := p.Deposit(dec("100"), TokenX)
	require.NoError(t, err)
	assert.True(t, numeric.Within(minted, dec("99.80242876996357230043562496"), tolerance), "minted %s", minted)
	assert.True(t, p.Balances().X.Equal(dec("1100")))
}

func TestFeeMonotonicity(t *testing.T) {
	fees := []string{"0", "0.003", "0.01", "0.5"}

	var prevWithdraw, prevSwap decimal.Decimal
	for i, fee := range fees {
		withdrawn, err := newPool(t, "0", fee).Withdraw(dec("100"), TokenY)
		require.NoError(t, err)
		out, err := newPool(t, "0", fee).Swap(dec("100"), TokenX)
		require.NoError(t, err)

		if i > 0 {
			assert.True(t, withdrawn.LessThan(prevWithdraw), "withdraw fee %s: %s !< %s", fee, withdrawn, prevWithdraw)
			assert.True(t, out.LessThan(prevSwap), "swap fee %s: %s !< %s", fee, out, prevSwap)
		}
		prevWithdraw, prevSwap = withdrawn, out
	}
}

func TestWithdrawFeeStaysInReserves(t *testing.T) {
	p := newPool(t, "0", "0.01")
	withdrawn, err := p.Withdraw(dec("100"), TokenY)
	require.NoError(t, err)

	gross := dec("99.782578775843798025236137511")
	assert.True(t, numeric.Within(withdrawn, gross.Mul(dec("0.99")), tolerance), "withdrawn %s", withdrawn)

	bal := p.Balances()
	assert.True(t, bal.Y.Equal(dec("1000").Sub(withdrawn)))
	assert.True(t, bal.X.Equal(dec("1000")))
	assert.True(t, bal.TotalSupply.Equal(dec("1900")))
}

func TestWithdrawExceedsSupply(t *testing.T) {
	for _, amount := range []string{"2000", "2500"} {
		t.Run(amount, func(t *testing.T) {
			p := newPool(t, "0", "0")
			before := p.Balances()

			_, err := p.Withdraw(dec(amount), TokenX)
			assert.True(t, errors.Is(err, ErrWithdrawExceedsMaximum))
			assert.Equal(t, before, p.Balances())
		})
	}
}

func TestFailedSwapLeavesStateUntouched(t *testing.T) {
	p := newPool(t, "0", "0")
	before := p.Balances()

	_, err := p.Swap(dec("100000"), TokenX)
	require.Error(t, err)
	assert.True(t, errors.Is(err, curve.ErrUnsolvableCurve) || errors.Is(err, curve.ErrInvalidReserveState), "err %v", err)
	assert.Equal(t, before, p.Balances())
}

func TestInvalidInputs(t *testing.T) {
	p := newPool(t, "0", "0")

	_, err := p.Deposit(decimal.Zero, TokenX)
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	_, err = p.Withdraw(dec("-1"), TokenY)
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	_, err = p.Swap(dec("1"), Token(7))
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	assert.True(t, p.Balances().TotalSupply.Equal(dec("2000")))
}

func TestDepositIntoEmptyPool(t *testing.T) {
	p, err := New(referenceCurve(t), Config{})
	require.NoError(t, err)

	_, err = p.Deposit(dec("10"), TokenX)
	assert.True(t, errors.Is(err, curve.ErrInvalidReserveState))
}

func TestParseToken(t *testing.T) {
	for input, want := range map[string]Token{"x": TokenX, "X": TokenX, "0": TokenX, "y": TokenY, " 1 ": TokenY} {
		got, err := ParseToken(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseToken("z")
	assert.True(t, errors.Is(err, ErrInvalidAmount))
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{X: dec("1100"), Y: dec("900.824200584297"), TotalSupply: dec("2000")}
	assert.Equal(t, "1100.00000000 X\n900.82420058 Y\n2000.00000000 LP tokens", s.String())
}
