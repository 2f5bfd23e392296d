package pool

import "errors"

var (
	// ErrWithdrawExceedsMaximum is returned when a withdrawal needs more reserves than the pool holds.
	ErrWithdrawExceedsMaximum = errors.New("withdraw amount exceeds maximum")
	// ErrSwapExceedsMaximum is returned when a swap output exceeds the available reserve.
	ErrSwapExceedsMaximum = errors.New("swap amount exceeds maximum")
	// ErrInvalidAmount is returned for non-positive amounts, unknown tokens or out-of-range fees.
	ErrInvalidAmount = errors.New("invalid amount")
)
