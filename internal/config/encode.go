package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EncodeConfig holds configuration for the encode command.
type EncodeConfig struct {
	Coefficients []string
	LogLevel     string
}

// LoadEncode merges config file, environment variables, and flags into EncodeConfig.
func LoadEncode(cfgFile string, flags *pflag.FlagSet) (EncodeConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		v.SetDefault("coefficients", DefaultCoefficients)
		v.SetDefault("log-level", "info")
	})
	if err != nil {
		return EncodeConfig{}, err
	}

	return EncodeConfig{
		Coefficients: getStringSlice(v, "coefficients"),
		LogLevel:     v.GetString("log-level"),
	}, nil
}
