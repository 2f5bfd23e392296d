package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// SimulateConfig holds configuration for the simulate command.
type SimulateConfig struct {
	Pool        PoolConfig
	Scenario    string
	Out         string
	PGDSN       string
	RunID       string
	BatchSize   int
	StopOnError bool
	MetricsOut  string
	LogLevel    string
}

// LoadSimulate merges config file, environment variables, and flags into SimulateConfig.
func LoadSimulate(cfgFile string, flags *pflag.FlagSet) (SimulateConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		setPoolDefaults(v)
		v.SetDefault("out", "./data/operations.jsonl")
		v.SetDefault("batch-size", 100)
		v.SetDefault("stop-on-error", false)
	})
	if err != nil {
		return SimulateConfig{}, err
	}

	cfg := SimulateConfig{
		Pool:        loadPool(v),
		Scenario:    v.GetString("scenario"),
		Out:         v.GetString("out"),
		PGDSN:       v.GetString("pg-dsn"),
		RunID:       v.GetString("run-id"),
		BatchSize:   v.GetInt("batch-size"),
		StopOnError: v.GetBool("stop-on-error"),
		MetricsOut:  v.GetString("metrics-out"),
		LogLevel:    v.GetString("log-level"),
	}

	return cfg, nil
}
