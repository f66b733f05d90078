// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"

	"github.com/rovshanmuradov/bonding-curve/internal/curve"
	"github.com/rovshanmuradov/bonding-curve/internal/fixedpoint"
	"github.com/rovshanmuradov/bonding-curve/internal/types"
)

type Config struct {
	Curve            string               `mapstructure:"curve"`
	CurrentSupply    uint64               `mapstructure:"current_supply"`
	MaximumMarketCap uint64               `mapstructure:"maximum_market_cap"`
	ReserveBalance   uint64               `mapstructure:"reserve_balance"`
	ReserveRatio     float64              `mapstructure:"reserve_ratio"`
	TokenMint        string               `mapstructure:"token_mint"`
	Amounts          []uint64             `mapstructure:"amounts"`
	Direction        string               `mapstructure:"direction"`
	Slippage         types.SlippageConfig `mapstructure:"slippage"`
	DebugLogging     bool                 `mapstructure:"debug_logging"`
	LogFile          string               `mapstructure:"log_file"`
	PriceRecord      string               `mapstructure:"price_record"`
	LoadPrice        string               `mapstructure:"load_price"`
	ExportDir        string               `mapstructure:"export_dir"`
	ExportFormat     string               `mapstructure:"export_format"`
	Workers          int                  `mapstructure:"workers"`

	// Filled by validate.
	Mint           solana.PublicKey     `mapstructure:"-"`
	TradeDirection curve.TradeDirection `mapstructure:"-"`
}

const (
	// 1B tokens with 6 decimals.
	DefaultTotalSupply uint64 = 1_000_000_000 * 1_000_000
	// 50 SOL in lamports.
	DefaultMaximumMarketCap uint64 = 50 * 1_000_000_000
	DefaultReserveRatio           = 0.9
	DefaultWorkers                = 4
	envPrefix                     = "BONDING_CURVE"
)

// ErrNoAmounts возникает, когда не задано ни одной суммы для котировки
var ErrNoAmounts = errors.New("amounts is empty")

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"curve":              string(curve.KindConstant),
		"current_supply":     DefaultTotalSupply / 100,
		"maximum_market_cap": DefaultMaximumMarketCap,
		"reserve_balance":    DefaultMaximumMarketCap,
		"reserve_ratio":      DefaultReserveRatio,
		"token_mint":         "",
		"amounts":            []uint64{DefaultMaximumMarketCap},
		"direction":          string(curve.BtoA),
		"slippage.type":      string(types.SlippageNone),
		"slippage.value":     0.0,
		"debug_logging":      false,
		"log_file":           "",
		"price_record":       "",
		"load_price":         "",
		"export_dir":         "",
		"export_format":      "csv",
		"workers":            DefaultWorkers,
	}
}

// Default returns the built-in sample: a constant curve selling 1% of the
// supply for the maximum market cap.
func Default() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig reads a JSON config. An empty path uses defaults and the
// environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the fields and fills the parsed ones.
func (c *Config) Validate() error {
	c.Curve = strings.ToLower(strings.TrimSpace(c.Curve))
	switch curve.Kind(c.Curve) {
	case curve.KindConstant:
	case curve.KindBancor:
		if math.IsNaN(c.ReserveRatio) || c.ReserveRatio <= 0 || c.ReserveRatio > 1 {
			return fmt.Errorf("reserve_ratio must be in (0, 1], got %v", c.ReserveRatio)
		}
	default:
		return fmt.Errorf("unsupported curve: %q", c.Curve)
	}

	if c.CurrentSupply == 0 {
		return fmt.Errorf("current_supply must be positive: %w", fixedpoint.ErrDivisionByZero)
	}
	if len(c.Amounts) == 0 {
		return ErrNoAmounts
	}
	if c.Workers < 0 {
		return errors.New("invalid workers count")
	}
	if c.Workers == 0 {
		c.Workers = 1
	}

	switch strings.ToLower(c.ExportFormat) {
	case "csv", "json":
		c.ExportFormat = strings.ToLower(c.ExportFormat)
	default:
		return fmt.Errorf("unsupported export_format: %q", c.ExportFormat)
	}

	direction, err := curve.ParseTradeDirection(c.Direction)
	if err != nil {
		return fmt.Errorf("invalid direction: %w", err)
	}
	c.TradeDirection = direction

	if err := c.Slippage.Validate(); err != nil {
		return fmt.Errorf("invalid slippage: %w", err)
	}

	if c.TokenMint != "" {
		mint, err := solana.PublicKeyFromBase58(c.TokenMint)
		if err != nil {
			return fmt.Errorf("invalid token_mint: %w", err)
		}
		c.Mint = mint
	}

	return nil
}

// CurveParams returns the model inputs.
func (c *Config) CurveParams() curve.Params {
	return curve.Params{
		CurrentSupply:    c.CurrentSupply,
		MaximumMarketCap: c.MaximumMarketCap,
		ReserveBalance:   c.ReserveBalance,
		ReserveRatio:     c.ReserveRatio,
	}
}
