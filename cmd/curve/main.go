// ====================================
// File: cmd/curve/main.go
// ====================================
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/bonding-curve/internal/app"
	"github.com/rovshanmuradov/bonding-curve/internal/config"
	"github.com/rovshanmuradov/bonding-curve/internal/curve"
	"github.com/rovshanmuradov/bonding-curve/internal/logger"
	"github.com/rovshanmuradov/bonding-curve/internal/ui/style"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	// Без аргументов печатаем цену эталонной постоянной кривой
	if len(args) == 0 {
		return printSample(out)
	}

	fs := flag.NewFlagSet("curve", flag.ContinueOnError)
	fs.SetOutput(out)

	var (
		configPath = fs.String("config", "", "path to a JSON config")
		curveName  = fs.String("curve", "", "pricing model: constant or bancor")
		supply     = fs.Uint64("supply", 0, "current supply of token A")
		marketCap  = fs.Uint64("cap", 0, "maximum market cap in token B (constant curve)")
		reserve    = fs.Uint64("reserve", 0, "reserve balance of token B (bancor curve)")
		ratio      = fs.Float64("ratio", 0, "reserve ratio in (0, 1] (bancor curve)")
		amount     = fs.Uint64("amount", 0, "amount to quote")
		direction  = fs.String("direction", "", "AtoB or BtoA")
		savePrice  = fs.String("save-price", "", "write the initial price record to this path")
		loadPrice  = fs.String("load-price", "", "quote from a saved price record")
		exportDir  = fs.String("export", "", "export quotes to this directory")
		format     = fs.String("format", "", "export format: csv or json")
		workers    = fs.Int("workers", 0, "number of concurrent quotes")
		debug      = fs.Bool("debug", false, "enable debug logging")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	// Флаги перекрывают файл и окружение, только если заданы явно
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "curve":
			cfg.Curve = *curveName
		case "supply":
			cfg.CurrentSupply = *supply
		case "cap":
			cfg.MaximumMarketCap = *marketCap
		case "reserve":
			cfg.ReserveBalance = *reserve
		case "ratio":
			cfg.ReserveRatio = *ratio
		case "amount":
			cfg.Amounts = []uint64{*amount}
		case "direction":
			cfg.Direction = *direction
		case "save-price":
			cfg.PriceRecord = *savePrice
		case "load-price":
			cfg.LoadPrice = *loadPrice
		case "export":
			cfg.ExportDir = *exportDir
		case "format":
			cfg.ExportFormat = *format
		case "workers":
			cfg.Workers = *workers
		case "debug":
			cfg.DebugLogging = *debug
		}
	})

	if err := cfg.Validate(); err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	logCfg.LogFile = cfg.LogFile
	logCfg.Development = cfg.DebugLogging

	appLogger, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.WithComponent("cli").Info("Starting bonding curve quote",
		zap.String("curve", cfg.Curve),
		zap.String("direction", cfg.TradeDirection.String()))

	opLogger := appLogger.WithOperation("quote")
	if !cfg.Mint.IsZero() {
		opLogger = opLogger.With(zap.Stringer("token_mint", cfg.Mint))
	}

	runner := app.NewRunner(cfg, opLogger, out)
	if _, err := runner.Run(ctx); err != nil {
		opLogger.Error("Quote failed", zap.Error(err))
		return err
	}

	return nil
}

// printSample не читает конфиг и окружение
func printSample(out io.Writer) error {
	calc, err := curve.NewConstantCurve(config.DefaultTotalSupply/100, config.DefaultMaximumMarketCap)
	if err != nil {
		return err
	}

	price, err := calc.InitialPrice()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, price.Float64())
	return err
}
