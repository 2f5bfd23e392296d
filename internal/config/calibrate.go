package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CalibrateConfig holds configuration for the calibrate command.
type CalibrateConfig struct {
	Prices    []string
	Liquidity []string
	Precision int32
	Out       string
	LogLevel  string
}

// LoadCalibrate merges config file, environment variables, and flags into CalibrateConfig.
func LoadCalibrate(cfgFile string, flags *pflag.FlagSet) (CalibrateConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		v.SetDefault("precision", 30)
		v.SetDefault("log-level", "info")
	})
	if err != nil {
		return CalibrateConfig{}, err
	}

	cfg := CalibrateConfig{
		Prices:    getStringSlice(v, "prices"),
		Liquidity: getStringSlice(v, "liquidity"),
		Precision: v.GetInt32("precision"),
		Out:       v.GetString("out"),
		LogLevel:  v.GetString("log-level"),
	}

	return cfg, nil
}
