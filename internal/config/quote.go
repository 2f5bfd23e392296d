package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// QuoteConfig holds configuration for the quote command.
type QuoteConfig struct {
	Pool         PoolConfig
	RPCURL       string
	Address      string
	Block        uint64
	Op           string
	Token        string
	Amount       string
	MaxRetries   int
	RetryBackoff time.Duration
	LogLevel     string
}

// LoadQuote merges config file, environment variables, and flags into QuoteConfig.
func LoadQuote(cfgFile string, flags *pflag.FlagSet) (QuoteConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		setPoolDefaults(v)
		v.SetDefault("op", "swap")
		v.SetDefault("token", "x")
		v.SetDefault("max-retries", 5)
		v.SetDefault("retry-backoff", 500*time.Millisecond)
	})
	if err != nil {
		return QuoteConfig{}, err
	}

	cfg := QuoteConfig{
		Pool:         loadPool(v),
		RPCURL:       v.GetString("rpc"),
		Address:      v.GetString("address"),
		Block:        v.GetUint64("block"),
		Op:           v.GetString("op"),
		Token:        v.GetString("token"),
		Amount:       v.GetString("amount"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}
