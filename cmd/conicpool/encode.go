package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"conicPool/internal/config"
	"conicPool/internal/curve"
	"conicPool/internal/dex"
)

func runEncode(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadEncode(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	coeffs, err := curve.ParseCoefficients(cfg.Coefficients)
	if err != nil {
		return err
	}

	params, err := dex.DeployParams(coeffs)
	if err != nil {
		return err
	}
	for i, p := range params {
		logger.Debug("fixed point coefficient", zap.Int("index", i), zap.String("value", p.String()))
	}

	data, err := dex.PackDeployParams(coeffs)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))
	return nil
}
