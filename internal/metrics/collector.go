// internal/metrics/collector.go
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rovshanmuradov/bonding-curve/internal/fixedpoint"
)

// Error kinds used as the "kind" label.
const (
	KindDivisionByZero = "division_by_zero"
	KindOverflow       = "overflow"
	KindInvalidInput   = "invalid_input"
	KindOther          = "other"
)

// Collector owns the pricing metrics on a private registry.
type Collector struct {
	registry     *prometheus.Registry
	quotes       *prometheus.CounterVec
	quoteErrors  *prometheus.CounterVec
	initialPrice *prometheus.GaugeVec
}

// NewCollector создает новый экземпляр коллектора метрик
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		quotes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bonding_curve_quotes_total",
				Help: "Number of computed quotes",
			},
			[]string{"curve", "direction"},
		),
		quoteErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bonding_curve_quote_errors_total",
				Help: "Number of failed quotes by error kind",
			},
			[]string{"curve", "direction", "kind"},
		),
		initialPrice: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bonding_curve_initial_price",
				Help: "Initial price of token A in token B",
			},
			[]string{"curve"},
		),
	}

	c.registry.MustRegister(c.quotes, c.quoteErrors, c.initialPrice)

	return c
}

// Registry returns the registry the metrics live in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordQuote counts a successful quote.
func (c *Collector) RecordQuote(curve, direction string) {
	c.quotes.WithLabelValues(curve, direction).Inc()
}

// RecordQuoteError counts a failed quote under the kind of err.
func (c *Collector) RecordQuoteError(curve, direction string, err error) {
	c.quoteErrors.WithLabelValues(curve, direction, ErrorKind(err)).Inc()
}

// SetInitialPrice stores the last initial price of a curve.
func (c *Collector) SetInitialPrice(curve string, price float64) {
	c.initialPrice.WithLabelValues(curve).Set(price)
}

// QuotesCounter returns the quote counter for one label pair.
func (c *Collector) QuotesCounter(curve, direction string) prometheus.Counter {
	return c.quotes.WithLabelValues(curve, direction)
}

// QuoteErrorsCounter returns the error counter for one label set.
func (c *Collector) QuoteErrorsCounter(curve, direction, kind string) prometheus.Counter {
	return c.quoteErrors.WithLabelValues(curve, direction, kind)
}

// InitialPriceGauge returns the price gauge of a curve.
func (c *Collector) InitialPriceGauge(curve string) prometheus.Gauge {
	return c.initialPrice.WithLabelValues(curve)
}

// Reset сбрасывает все метрики (полезно для тестирования)
func (c *Collector) Reset() {
	c.quotes.Reset()
	c.quoteErrors.Reset()
	c.initialPrice.Reset()
}

// Snapshot sums every metric family by name.
func (c *Collector) Snapshot() (map[string]float64, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	out := make(map[string]float64, len(families))
	for _, mf := range families {
		var total float64
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			}
		}
		out[mf.GetName()] = total
	}

	return out, nil
}

// ErrorKind maps an error to its label value.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, fixedpoint.ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, fixedpoint.ErrOverflow):
		return KindOverflow
	case errors.Is(err, fixedpoint.ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindOther
	}
}
