package pool

import (
	"fmt"

	"github.com/shopspring/decimal"

	"conicPool/internal/curve"
	"conicPool/internal/numeric"
)

var one = decimal.NewFromInt(1)

// Config holds the fee rates and initial reserves of a pool.
type Config struct {
	FeeX     decimal.Decimal
	FeeY     decimal.Decimal
	BalanceX decimal.Decimal
	BalanceY decimal.Decimal
}

// Pool is a two-token liquidity pool priced by a conic curve.
// It is not safe for concurrent use; callers serialize access.
type Pool struct {
	curve       *curve.Curve
	num         numeric.Context
	feeX        decimal.Decimal
	feeY        decimal.Decimal
	balX        decimal.Decimal
	balY        decimal.Decimal
	totalSupply decimal.Decimal
}

// New builds a pool seeded with total supply x + y.
func New(k *curve.Curve, cfg Config) (*Pool, error) {
	if k == nil {
		return nil, fmt.Errorf("curve is nil")
	}
	if err := validateFee(cfg.FeeX); err != nil {
		return nil, fmt.Errorf("x fee: %w", err)
	}
	if err := validateFee(cfg.FeeY); err != nil {
		return nil, fmt.Errorf("y fee: %w", err)
	}
	if cfg.BalanceX.IsNegative() || cfg.BalanceY.IsNegative() {
		return nil, fmt.Errorf("%w: negative initial balance", ErrInvalidAmount)
	}

	return &Pool{
		curve:       k,
		num:         k.Context(),
		feeX:        cfg.FeeX,
		feeY:        cfg.FeeY,
		balX:        cfg.BalanceX,
		balY:        cfg.BalanceY,
		totalSupply: cfg.BalanceX.Add(cfg.BalanceY),
	}, nil
}

func validateFee(fee decimal.Decimal) error {
	if fee.IsNegative() || fee.GreaterThanOrEqual(one) {
		return fmt.Errorf("%w: fee %s outside [0, 1)", ErrInvalidAmount, fee)
	}
	return nil
}

// Curve returns the pricing curve.
func (p *Pool) Curve() *curve.Curve { return p.curve }

// Balances returns a snapshot of reserves and LP supply.
func (p *Pool) Balances() Snapshot {
	return Snapshot{X: p.balX, Y: p.balY, TotalSupply: p.totalSupply}
}

// Utility returns the curve utility of the current reserves.
func (p *Pool) Utility() (decimal.Decimal, error) {
	return p.curve.Utility(p.balX, p.balY)
}

// Deposit adds amount of token to its reserve and returns the LP shares minted.
func (p *Pool) Deposit(amount decimal.Decimal, token Token) (decimal.Decimal, error) {
	if err := checkInput(amount, token); err != nil {
		return decimal.Zero, err
	}

	newX, newY := p.balX, p.balY
	if token == TokenX {
		newX = newX.Add(amount)
	} else {
		newY = newY.Add(amount)
	}

	current, err := p.curve.Utility(p.balX, p.balY)
	if err != nil {
		return decimal.Zero, fmt.Errorf("current utility: %w", err)
	}
	next, err := p.curve.Utility(newX, newY)
	if err != nil {
		return decimal.Zero, fmt.Errorf("new utility: %w", err)
	}

	minted := p.num.Round(p.num.Quo(next, current).Sub(one).Mul(p.totalSupply))

	p.totalSupply = p.totalSupply.Add(minted)
	p.balX, p.balY = newX, newY
	return minted, nil
}

// Withdraw burns amount LP shares and pays out token, net of the token's fee.
func (p *Pool) Withdraw(amount decimal.Decimal, token Token) (decimal.Decimal, error) {
	if err := checkInput(amount, token); err != nil {
		return decimal.Zero, err
	}
	if amount.GreaterThanOrEqual(p.totalSupply) {
		return decimal.Zero, fmt.Errorf("%w: burn %s of supply %s", ErrWithdrawExceedsMaximum, amount, p.totalSupply)
	}

	current, err := p.curve.Utility(p.balX, p.balY)
	if err != nil {
		return decimal.Zero, fmt.Errorf("current utility: %w", err)
	}
	next := one.Sub(p.num.Quo(amount, p.totalSupply)).Mul(current)

	oldBal, newBal, err := p.invert(token, p.balX, p.balY, next)
	if err != nil {
		return decimal.Zero, err
	}
	if numeric.Truncate(oldBal).LessThan(numeric.Truncate(newBal)) {
		return decimal.Zero, fmt.Errorf("%w: %s balance %s below %s", ErrWithdrawExceedsMaximum, token, oldBal, newBal)
	}

	withdrawn := p.num.Round(oldBal.Sub(newBal).Mul(one.Sub(p.fee(token))))

	p.totalSupply = p.totalSupply.Sub(amount)
	p.adjust(token, withdrawn.Neg())
	return withdrawn, nil
}

// Swap sells amount of tokenIn and returns the amount of the other token paid out.
func (p *Pool) Swap(amount decimal.Decimal, tokenIn Token) (decimal.Decimal, error) {
	if err := checkInput(amount, tokenIn); err != nil {
		return decimal.Zero, err
	}

	util, err := p.curve.Utility(p.balX, p.balY)
	if err != nil {
		return decimal.Zero, fmt.Errorf("current utility: %w", err)
	}

	newX, newY := p.balX, p.balY
	if tokenIn == TokenX {
		newX = newX.Add(amount)
	} else {
		newY = newY.Add(amount)
	}

	out := tokenIn.Other()
	oldBal, newBal, err := p.invert(out, newX, newY, util)
	if err != nil {
		return decimal.Zero, err
	}
	if numeric.Truncate(oldBal).LessThan(numeric.Truncate(newBal)) {
		return decimal.Zero, fmt.Errorf("%w: %s balance %s below %s", ErrSwapExceedsMaximum, out, oldBal, newBal)
	}

	amountOut := p.num.Round(oldBal.Sub(newBal).Mul(one.Sub(p.fee(out))))

	p.adjust(tokenIn, amount)
	p.adjust(out, amountOut.Neg())
	return amountOut, nil
}

// invert solves the curve for token's reserve at utility, holding the other
// reserve of (x, y) fixed. It returns the token's current and solved balance.
func (p *Pool) invert(token Token, x, y, utility decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if token == TokenX {
		newX, err := p.curve.X(y, utility)
		if err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("solve x: %w", err)
		}
		return p.balX, newX, nil
	}
	newY, err := p.curve.Y(x, utility)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("solve y: %w", err)
	}
	return p.balY, newY, nil
}

func (p *Pool) fee(token Token) decimal.Decimal {
	if token == TokenX {
		return p.feeX
	}
	return p.feeY
}

func (p *Pool) adjust(token Token, delta decimal.Decimal) {
	if token == TokenX {
		p.balX = p.balX.Add(delta)
	} else {
		p.balY = p.balY.Add(delta)
	}
}

func checkInput(amount decimal.Decimal, token Token) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount %s must be positive", ErrInvalidAmount, amount)
	}
	if !token.valid() {
		return fmt.Errorf("%w: unknown token %d", ErrInvalidAmount, uint8(token))
	}
	return nil
}
