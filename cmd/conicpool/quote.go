package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"conicPool/internal/chain"
	"conicPool/internal/config"
	"conicPool/internal/dex"
	"conicPool/internal/model"
	"conicPool/internal/numeric"
	"conicPool/internal/pool"
)

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadQuote(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if !common.IsHexAddress(cfg.Address) {
		return fmt.Errorf("invalid pool address %q", cfg.Address)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(cfg.Amount))
	if err != nil {
		return fmt.Errorf("%w: parse amount %q", pool.ErrInvalidAmount, cfg.Amount)
	}
	token, err := pool.ParseToken(cfg.Token)
	if err != nil {
		return err
	}
	op := strings.ToLower(strings.TrimSpace(cfg.Op))

	p, err := buildPool(cfg.Pool)
	if err != nil {
		return err
	}
	bal := p.Balances()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	chainID, err := chainClient.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}

	var block *big.Int
	if cfg.Block > 0 {
		block = new(big.Int).SetUint64(cfg.Block)
	} else {
		latest, err := chainClient.LatestBlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("get latest block: %w", err)
		}
		block = new(big.Int).SetUint64(latest)
	}

	address := common.HexToAddress(cfg.Address)
	code, err := chainClient.CodeAt(ctx, address, block)
	if err != nil {
		return fmt.Errorf("get code: %w", err)
	}
	if len(code) == 0 {
		return fmt.Errorf("no contract at %s on chain %s", address.Hex(), chainID)
	}

	logger.Info("quote start",
		zap.String("chain_id", chainID.String()),
		zap.String("address", address.Hex()),
		zap.String("block", block.String()),
		zap.String("op", op),
		zap.String("token", token.String()),
		zap.String("amount", amount.String()),
	)

	demo := dex.NewDemoPool(dex.DemoPoolConfig{
		Address:      address,
		BlockNumber:  block,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, chainClient, logger)

	var local, remote decimal.Decimal
	var localErr, remoteErr error
	switch op {
	case model.OpDeposit:
		remote, remoteErr = demo.Deposit(ctx, bal, amount, token)
		local, localErr = p.Deposit(amount, token)
	case model.OpWithdraw:
		remote, remoteErr = demo.Withdraw(ctx, bal, amount, token)
		local, localErr = p.Withdraw(amount, token)
	case model.OpSwap:
		remote, remoteErr = demo.Swap(ctx, bal, amount, token)
		local, localErr = p.Swap(amount, token)
	default:
		return fmt.Errorf("unknown operation %q", cfg.Op)
	}

	if localErr != nil {
		logger.Warn("local operation failed", zap.String("op", op), zap.Error(localErr))
	}
	if remoteErr != nil {
		return fmt.Errorf("quote demo pool: %w", remoteErr)
	}

	fields := []zap.Field{
		zap.String("op", op),
		zap.String("token", token.String()),
		zap.String("amount", amount.String()),
		zap.String("remote", remote.String()),
	}
	if localErr == nil {
		diff := remote.Sub(local)
		fields = append(fields,
			zap.String("local", local.String()),
			zap.String("diff", diff.String()),
			zap.Bool("within_quantum", numeric.Truncate(diff).IsZero()),
		)
	}
	logger.Info("quote complete", fields...)

	fmt.Fprintln(cmd.OutOrStdout(), remote.String())
	return nil
}
