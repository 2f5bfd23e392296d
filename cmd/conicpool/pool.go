package main

import (
	"fmt"

	"conicPool/internal/config"
	"conicPool/internal/curve"
	"conicPool/internal/pool"
)

func buildPool(cfg config.PoolConfig) (*pool.Pool, error) {
	num, err := cfg.Numeric()
	if err != nil {
		return nil, err
	}
	coeffs, err := curve.ParseCoefficients(cfg.Coefficients)
	if err != nil {
		return nil, err
	}
	k, err := curve.New(coeffs, num)
	if err != nil {
		return nil, fmt.Errorf("build curve: %w", err)
	}

	feeX, feeY, err := cfg.Fees()
	if err != nil {
		return nil, err
	}
	balX, balY, err := cfg.Balances()
	if err != nil {
		return nil, err
	}

	p, err := pool.New(k, pool.Config{FeeX: feeX, FeeY: feeY, BalanceX: balX, BalanceY: balY})
	if err != nil {
		return nil, fmt.Errorf("build pool: %w", err)
	}
	return p, nil
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
