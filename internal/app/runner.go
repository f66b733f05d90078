// internal/app/runner.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/bonding-curve/internal/config"
	"github.com/rovshanmuradov/bonding-curve/internal/curve"
	"github.com/rovshanmuradov/bonding-curve/internal/export"
	"github.com/rovshanmuradov/bonding-curve/internal/metrics"
	"github.com/rovshanmuradov/bonding-curve/internal/quote"
	"github.com/rovshanmuradov/bonding-curve/internal/ui/style"
)

type Runner struct {
	logger  *zap.Logger
	config  *config.Config
	metrics *metrics.Collector
	prices  *export.PriceExporter
	quotes  *export.QuoteExporter
	out     io.Writer
}

// NewRunner принимает провалидированный cfg, logger и вывод для таблицы
func NewRunner(cfg *config.Config, logger *zap.Logger, out io.Writer) *Runner {
	return &Runner{
		logger:  logger,
		config:  cfg,
		metrics: metrics.NewCollector(),
		prices:  export.NewPriceExporter(logger),
		quotes:  export.NewQuoteExporter(logger),
		out:     out,
	}
}

// Metrics returns the collector the run records into.
func (r *Runner) Metrics() *metrics.Collector {
	return r.metrics
}

// Run prices the configured curve, quotes every amount and writes the result.
func (r *Runner) Run(ctx context.Context) ([]*quote.Quote, error) {
	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := r.newService()
	if err != nil {
		return nil, err
	}

	if r.config.PriceRecord != "" {
		if err := r.prices.Save(r.config.PriceRecord, svc.Price()); err != nil {
			return nil, err
		}
	}

	reqs := make([]quote.Request, 0, len(r.config.Amounts))
	for _, amount := range r.config.Amounts {
		reqs = append(reqs, quote.Request{Amount: amount, Direction: r.config.TradeDirection})
	}

	r.logger.Info(fmt.Sprintf("Quoting %d amounts with %d workers", len(reqs), r.config.Workers))

	quotes, err := svc.QuoteBatch(shutdownCtx, reqs, r.config.Workers)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			r.logger.Info("Quoting interrupted")
		}
		return nil, err
	}

	if _, err := fmt.Fprintln(r.out, style.RenderPrice(svc.Kind(), svc.Price())); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(r.out, style.RenderQuotes(quotes)); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	if r.config.ExportDir != "" {
		if _, err := r.quotes.ExportQuotes(quotes, export.ExportOptions{
			Format:    export.ExportFormat(r.config.ExportFormat),
			OutputDir: r.config.ExportDir,
		}); err != nil {
			return nil, err
		}
	}

	if snapshot, err := r.metrics.Snapshot(); err == nil {
		r.logger.Debug("Metrics", zap.Any("snapshot", snapshot))
	}

	return quotes, nil
}

// newService builds the quote service from a saved price or from the curve.
func (r *Runner) newService() (*quote.Service, error) {
	kind := curve.Kind(r.config.Curve)

	if r.config.LoadPrice != "" {
		price, err := r.prices.Load(r.config.LoadPrice)
		if err != nil {
			return nil, err
		}
		return quote.NewServiceFromPrice(kind, price, r.config.Slippage, r.metrics, r.logger)
	}

	calc, err := curve.NewByName(r.config.Curve, r.config.CurveParams())
	if err != nil {
		return nil, fmt.Errorf("failed to build %s curve: %w", r.config.Curve, err)
	}

	return quote.NewService(calc, r.config.Slippage, r.metrics, r.logger)
}
