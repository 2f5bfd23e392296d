package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"conicPool/internal/config"
	"conicPool/internal/model"
	"conicPool/internal/simulate"
	"conicPool/internal/storage"
	"conicPool/internal/storage/postgres"
)

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSimulate(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Scenario == "" {
		return fmt.Errorf("scenario path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}

	sc, err := model.LoadScenario(cfg.Scenario)
	if err != nil {
		return err
	}

	p, err := buildPool(cfg.Pool)
	if err != nil {
		return err
	}
	initial := p.Balances()

	runID := cfg.RunID
	if runID == "" {
		runID = fmt.Sprintf("run-%d", time.Now().UnixNano())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks := storage.Multi{storage.NewJsonlStorage(cfg.Out)}

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		if _, found, err := store.LoadRun(ctx, runID); err != nil {
			return fmt.Errorf("load run: %w", err)
		} else if found {
			logger.Warn("run id already stored, overwriting", zap.String("run_id", runID))
		}
		sinks = append(sinks, store)
	}

	reg := prometheus.NewRegistry()
	metrics := simulate.NewMetrics(reg)

	runner := simulate.NewRunner(simulate.Config{
		RunID:       runID,
		BatchSize:   cfg.BatchSize,
		StopOnError: cfg.StopOnError,
	}, p, sinks, metrics, logger)

	logger.Info("simulate start",
		zap.String("run_id", runID),
		zap.String("scenario", cfg.Scenario),
		zap.Int("operations", len(sc.Operations)),
		zap.Strings("coefficients", cfg.Pool.Coefficients),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Int("batch_size", cfg.BatchSize),
	)

	startedAt := time.Now().UTC()
	summary, runErr := runner.Run(ctx, sc)

	if store != nil {
		feeX, feeY, _ := cfg.Pool.Fees()
		run := model.Run{
			RunID:        runID,
			Scenario:     sc.Name,
			Coefficients: p.Curve().Coefficients().Strings(),
			FeeX:         feeX.String(),
			FeeY:         feeY.String(),
			BalanceX:     initial.X.String(),
			BalanceY:     initial.Y.String(),
			TotalSupply:  p.Balances().TotalSupply.String(),
			Operations:   summary.Operations,
			Failures:     summary.Failures,
			StartedAt:    startedAt,
			FinishedAt:   time.Now().UTC(),
		}
		if err := store.SaveRun(ctx, run); err != nil {
			logger.Error("save run failed", zap.Error(err))
		}
	}

	if cfg.MetricsOut != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsOut, reg); err != nil {
			logger.Error("write metrics failed", zap.String("path", cfg.MetricsOut), zap.Error(err))
		}
	}

	if runErr != nil {
		return runErr
	}

	fmt.Fprintln(cmd.OutOrStdout(), summary.Final.String())
	return nil
}
