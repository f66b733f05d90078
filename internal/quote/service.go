// ==================================
// File: internal/quote/service.go
// ==================================
package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/bonding-curve/internal/curve"
	"github.com/rovshanmuradov/bonding-curve/internal/fixedpoint"
	"github.com/rovshanmuradov/bonding-curve/internal/metrics"
	"github.com/rovshanmuradov/bonding-curve/internal/types"
)

// Request asks for the output of amount in the given direction.
type Request struct {
	Amount    uint64
	Direction curve.TradeDirection
}

// Quote is the result of one conversion at the service price.
type Quote struct {
	ID           string
	Curve        curve.Kind
	Direction    curve.TradeDirection
	AmountIn     uint64
	AmountOut    uint64
	MinAmountOut uint64
	Price        fixedpoint.Number
	CreatedAt    time.Time
}

// Service quotes conversions at a fixed price. The price is computed once,
// so a Service is safe for concurrent use.
type Service struct {
	kind     curve.Kind
	price    fixedpoint.Number
	slippage types.SlippageConfig
	metrics  *metrics.Collector
	logger   *zap.Logger
}

// NewService computes the initial price of calc and returns a service for it.
func NewService(calc curve.Calculator, slippage types.SlippageConfig, collector *metrics.Collector, logger *zap.Logger) (*Service, error) {
	if calc == nil {
		return nil, errors.New("calculator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	price, err := calc.InitialPrice()
	if err != nil {
		return nil, fmt.Errorf("failed to calculate initial price: %w", err)
	}

	return NewServiceFromPrice(calc.Kind(), price, slippage, collector, logger)
}

// NewServiceFromPrice returns a service for a known price, e.g. one loaded
// from a price record.
func NewServiceFromPrice(kind curve.Kind, price fixedpoint.Number, slippage types.SlippageConfig, collector *metrics.Collector, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := slippage.Validate(); err != nil {
		return nil, err
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}

	collector.SetInitialPrice(string(kind), price.Float64())

	logger.Debug("Initial price calculated",
		zap.String("curve", string(kind)),
		zap.Stringer("price", price),
		zap.Int32("scale", price.Scale()))

	return &Service{
		kind:     kind,
		price:    price,
		slippage: slippage,
		metrics:  collector,
		logger:   logger.Named("quote"),
	}, nil
}

// Price returns the price every quote uses.
func (s *Service) Price() fixedpoint.Number {
	return s.price
}

// Kind returns the curve the price came from.
func (s *Service) Kind() curve.Kind {
	return s.kind
}

// Quote converts one amount.
func (s *Service) Quote(req Request) (*Quote, error) {
	out, err := curve.TokenOut(s.price, req.Amount, req.Direction)
	if err != nil {
		s.metrics.RecordQuoteError(string(s.kind), req.Direction.String(), err)
		s.logger.Warn("Failed to calculate token out",
			zap.Uint64("amount_in", req.Amount),
			zap.String("direction", req.Direction.String()),
			zap.String("kind", metrics.ErrorKind(err)),
			zap.Error(err))
		return nil, err
	}

	minOut, err := types.CalculateMinAmountOut(out, s.slippage)
	if err != nil {
		s.metrics.RecordQuoteError(string(s.kind), req.Direction.String(), err)
		return nil, fmt.Errorf("failed to apply slippage: %w", err)
	}

	q := &Quote{
		ID:           uuid.New().String(),
		Curve:        s.kind,
		Direction:    req.Direction,
		AmountIn:     req.Amount,
		AmountOut:    out,
		MinAmountOut: minOut,
		Price:        s.price,
		CreatedAt:    time.Now(),
	}

	s.metrics.RecordQuote(string(s.kind), req.Direction.String())
	s.logger.Debug("Quote calculated",
		zap.String("id", q.ID),
		zap.String("direction", q.Direction.String()),
		zap.Uint64("amount_in", q.AmountIn),
		zap.Uint64("amount_out", q.AmountOut),
		zap.Uint64("min_amount_out", q.MinAmountOut))

	return q, nil
}

// QuoteBatch quotes every request with at most workers running at once.
// Results keep the order of reqs. The first error cancels the remaining work.
func (s *Service) QuoteBatch(ctx context.Context, reqs []Request, workers int) ([]*Quote, error) {
	if workers <= 0 {
		workers = 1
	}

	quotes := make([]*Quote, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			q, err := s.Quote(req)
			if err != nil {
				return fmt.Errorf("quote %d (amount %d): %w", i, req.Amount, err)
			}
			quotes[i] = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("Quotes calculated",
		zap.String("curve", string(s.kind)),
		zap.Int("count", len(quotes)),
		zap.Int("workers", workers))

	return quotes, nil
}
