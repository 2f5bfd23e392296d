package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"conicPool/internal/calibrate"
	"conicPool/internal/config"
	"conicPool/internal/curve"
	"conicPool/internal/numeric"
)

func runCalibrate(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadCalibrate(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if len(cfg.Prices) == 0 {
		return fmt.Errorf("prices are required")
	}
	prices, err := config.ParseDecimals("prices", cfg.Prices)
	if err != nil {
		return err
	}
	liquidity, err := config.ParseDecimals("liquidity", cfg.Liquidity)
	if err != nil {
		return err
	}

	num := numeric.Context{Places: cfg.Precision, Mode: numeric.RoundHalfUp}
	result, err := calibrate.Segments(num, prices, liquidity)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd.OutOrStdout(), cfg.Out)
	if err != nil {
		return err
	}
	defer closeOut()

	enc := json.NewEncoder(out)
	usable := 0
	for i, slice := range result.Slices {
		if _, err := curve.New(slice.Coefficients, num); err != nil {
			logger.Warn("slice has no identity point",
				zap.Int("slice", i),
				zap.String("kappa", slice.Kappa.String()),
				zap.Error(err),
			)
		} else {
			usable++
		}
		if err := enc.Encode(slice); err != nil {
			return fmt.Errorf("write slice %d: %w", i, err)
		}
	}

	logger.Info("calibrate complete",
		zap.Int("rays", len(result.Rays)),
		zap.Int("slices", len(result.Slices)),
		zap.Int("usable", usable),
		zap.String("out", cfg.Out),
	)
	return nil
}

func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	return file, file.Close, nil
}
