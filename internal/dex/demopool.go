package dex

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"conicPool/internal/chain"
	"conicPool/internal/pool"
)

// ContractCaller performs read-only contract calls.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// DemoPoolConfig controls how quotes are fetched.
type DemoPoolConfig struct {
	Address      common.Address
	BlockNumber  *big.Int
	MaxRetries   int
	RetryBackoff time.Duration
}

// DemoPool quotes pool operations against a deployed demo pool contract.
// The contract is stateless: balances are passed with every call.
type DemoPool struct {
	cfg    DemoPoolConfig
	caller ContractCaller
	logger *zap.Logger
}

func NewDemoPool(cfg DemoPoolConfig, caller ContractCaller, logger *zap.Logger) *DemoPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DemoPool{cfg: cfg, caller: caller, logger: logger}
}

// Deposit quotes the LP shares minted for a single-sided deposit.
func (d *DemoPool) Deposit(ctx context.Context, bal pool.Snapshot, amount decimal.Decimal, token pool.Token) (decimal.Decimal, error) {
	return d.quote(ctx, "deposit", ToWei(bal.X), ToWei(bal.Y), ToWei(bal.TotalSupply), ToWei(amount), uint8(token))
}

// Withdraw quotes the tokens paid out for burning amount LP shares.
func (d *DemoPool) Withdraw(ctx context.Context, bal pool.Snapshot, amount decimal.Decimal, token pool.Token) (decimal.Decimal, error) {
	return d.quote(ctx, "withdraw", ToWei(bal.X), ToWei(bal.Y), ToWei(bal.TotalSupply), ToWei(amount), uint8(token))
}

// Swap quotes the output amount for selling amount of token.
func (d *DemoPool) Swap(ctx context.Context, bal pool.Snapshot, amount decimal.Decimal, token pool.Token) (decimal.Decimal, error) {
	return d.quote(ctx, "swap", ToWei(bal.X), ToWei(bal.Y), ToWei(amount), uint8(token))
}

func (d *DemoPool) quote(ctx context.Context, method string, args ...interface{}) (decimal.Decimal, error) {
	if d.caller == nil {
		return decimal.Zero, fmt.Errorf("contract caller is nil")
	}
	parsed, err := DemoPoolABI()
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse demo pool abi: %w", err)
	}

	var values []interface{}
	err = chain.WithRetry(ctx, d.cfg.MaxRetries, d.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		values, err = callPoolMethod(ctx, d.caller, d.cfg.Address, parsed, method, d.cfg.BlockNumber, args...)
		if err != nil {
			d.logger.Warn("demo pool call failed", zap.String("method", method), zap.Error(err))
		}
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	if len(values) != 1 {
		return decimal.Zero, fmt.Errorf("%s return size %d", method, len(values))
	}
	out, ok := values[0].(*big.Int)
	if !ok {
		return decimal.Zero, fmt.Errorf("%s unexpected type %T", method, values[0])
	}
	return FromWei(out), nil
}

func callPoolMethod(ctx context.Context, caller ContractCaller, address common.Address, poolABI abi.ABI, method string, block *big.Int, args ...interface{}) ([]interface{}, error) {
	data, err := poolABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &address, Data: data}
	resp, err := caller.CallContract(ctx, msg, block)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := poolABI.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}
