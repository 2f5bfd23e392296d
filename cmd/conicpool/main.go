package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "conicpool",
		Short:        "Conic-curve two-asset liquidity pool toolkit",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a scenario of deposits, withdrawals and swaps against a pool",
		RunE:  runSimulate,
	}

	addPoolFlags(simulateCmd)
	simulateCmd.Flags().String("scenario", "", "scenario JSON path")
	simulateCmd.Flags().String("out", "./data/operations.jsonl", "operation journal JSONL path")
	simulateCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for the operation journal")
	simulateCmd.Flags().String("run-id", "", "run identifier, generated when empty")
	simulateCmd.Flags().Int("batch-size", 100, "operations per journal write")
	simulateCmd.Flags().Bool("stop-on-error", false, "abort on the first failed operation")
	simulateCmd.Flags().String("metrics-out", "", "optional Prometheus textfile path")

	root.AddCommand(simulateCmd)

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Fit hyperbola slices to a piecewise liquidity profile",
		RunE:  runCalibrate,
	}

	calibrateCmd.Flags().StringSlice("prices", nil, "ascending ray prices (comma-separated)")
	calibrateCmd.Flags().StringSlice("liquidity", nil, "liquidity weight per slice (comma-separated)")
	calibrateCmd.Flags().Int32("precision", 30, "decimal places for intermediate results")
	calibrateCmd.Flags().String("out", "", "output JSONL path, stdout when empty")
	calibrateCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(calibrateCmd)

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "ABI-encode curve coefficients as demo pool constructor params",
		RunE:  runEncode,
	}

	encodeCmd.Flags().StringSlice("coefficients", nil, "curve coefficients a,b,c,d,e,f")
	encodeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(encodeCmd)

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Compare a local pool operation with the deployed demo pool",
		RunE:  runQuote,
	}

	addPoolFlags(quoteCmd)
	quoteCmd.Flags().String("rpc", "", "RPC URL")
	quoteCmd.Flags().String("address", "", "demo pool contract address")
	quoteCmd.Flags().Uint64("block", 0, "block number to call at, 0 means latest")
	quoteCmd.Flags().String("op", "swap", "operation (deposit, withdraw, swap)")
	quoteCmd.Flags().String("token", "x", "token (x or y)")
	quoteCmd.Flags().String("amount", "", "operation amount")
	quoteCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	quoteCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")

	root.AddCommand(quoteCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPoolFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("coefficients", nil, "curve coefficients a,b,c,d,e,f")
	cmd.Flags().String("fee-x", "0", "fee fraction charged on x input")
	cmd.Flags().String("fee-y", "0", "fee fraction charged on y input")
	cmd.Flags().String("balance-x", "1000", "initial x reserve")
	cmd.Flags().String("balance-y", "1000", "initial y reserve")
	cmd.Flags().Int32("precision", 30, "decimal places for divisions and square roots")
	cmd.Flags().String("rounding", "half-up", "rounding mode (half-up, down)")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
