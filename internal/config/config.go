package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"conicPool/internal/numeric"
)

const envPrefix = "CONICPOOL"

// DefaultCoefficients describe a symmetric curve centred on a 1:1 price.
var DefaultCoefficients = []string{
	"0.7129785111362054",
	"1.4023717661989632",
	"0.7129785111362054",
	"-30408.265249329583",
	"-30408.265249329583",
	"324200000",
}

// PoolConfig holds the curve and pool parameters shared by the commands.
type PoolConfig struct {
	Coefficients []string
	FeeX         string
	FeeY         string
	BalanceX     string
	BalanceY     string
	Precision    int32
	Rounding     string
}

// Numeric returns the precision context described by the config.
func (c PoolConfig) Numeric() (numeric.Context, error) {
	if c.Precision <= numeric.Quantum {
		return numeric.Context{}, fmt.Errorf("precision must exceed %d places, got %d", numeric.Quantum, c.Precision)
	}
	mode, err := parseRounding(c.Rounding)
	if err != nil {
		return numeric.Context{}, err
	}
	return numeric.Context{Places: c.Precision, Mode: mode}, nil
}

// Fees parses the x and y fee fractions.
func (c PoolConfig) Fees() (decimal.Decimal, decimal.Decimal, error) {
	feeX, err := parseDecimal("fee-x", c.FeeX)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	feeY, err := parseDecimal("fee-y", c.FeeY)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return feeX, feeY, nil
}

// Balances parses the initial x and y reserves.
func (c PoolConfig) Balances() (decimal.Decimal, decimal.Decimal, error) {
	x, err := parseDecimal("balance-x", c.BalanceX)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	y, err := parseDecimal("balance-y", c.BalanceY)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return x, y, nil
}

// ParseDecimals parses every value as a decimal, naming the offending key on failure.
func ParseDecimals(key string, values []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, 0, len(values))
	for i, value := range values {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func parseDecimal(key, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseRounding(input string) (numeric.Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "half-up":
		return numeric.RoundHalfUp, nil
	case "down":
		return numeric.RoundDown, nil
	default:
		return 0, fmt.Errorf("unknown rounding %q (want half-up or down)", input)
	}
}

func setPoolDefaults(v *viper.Viper) {
	v.SetDefault("coefficients", DefaultCoefficients)
	v.SetDefault("fee-x", "0")
	v.SetDefault("fee-y", "0")
	v.SetDefault("balance-x", "1000")
	v.SetDefault("balance-y", "1000")
	v.SetDefault("precision", int(numeric.Default.Places))
	v.SetDefault("rounding", "half-up")
	v.SetDefault("log-level", "info")
}

func loadPool(v *viper.Viper) PoolConfig {
	return PoolConfig{
		Coefficients: getStringSlice(v, "coefficients"),
		FeeX:         v.GetString("fee-x"),
		FeeY:         v.GetString("fee-y"),
		BalanceX:     v.GetString("balance-x"),
		BalanceY:     v.GetString("balance-y"),
		Precision:    v.GetInt32("precision"),
		Rounding:     v.GetString("rounding"),
	}
}

// newViper layers flags, CONICPOOL_* environment variables and an optional
// config file. defaults runs before flags are bound.
func newViper(cfgFile string, flags *pflag.FlagSet, defaults func(*viper.Viper)) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if defaults != nil {
		defaults(v)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("conicpool")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
