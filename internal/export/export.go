package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/bonding-curve/internal/curve"
	"github.com/rovshanmuradov/bonding-curve/internal/quote"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format          ExportFormat
	StartTime       time.Time
	EndTime         time.Time
	DirectionFilter curve.TradeDirection // AtoB or BtoA, empty for both
	OutputDir       string
}

// QuoteExporter writes computed quotes to disk.
type QuoteExporter struct {
	logger *zap.Logger
}

// NewQuoteExporter creates a new quote exporter
func NewQuoteExporter(logger *zap.Logger) *QuoteExporter {
	return &QuoteExporter{
		logger: logger,
	}
}

// ExportQuotes exports quotes based on the provided options
func (qe *QuoteExporter) ExportQuotes(quotes []*quote.Quote, options ExportOptions) (string, error) {
	filtered := qe.filterQuotes(quotes, options)

	if len(filtered) == 0 {
		return "", fmt.Errorf("no quotes match the export criteria")
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
	})

	filename := qe.generateFilename(options)
	outputPath := filepath.Join(options.OutputDir, filename)

	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	switch options.Format {
	case FormatCSV:
		err = qe.exportToCSV(filtered, outputPath)
	case FormatJSON:
		err = qe.exportToJSON(filtered, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}

	if err != nil {
		return "", err
	}

	qe.logger.Info("Quotes exported",
		zap.String("file", outputPath),
		zap.Int("count", len(filtered)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

func (qe *QuoteExporter) filterQuotes(quotes []*quote.Quote, options ExportOptions) []*quote.Quote {
	var filtered []*quote.Quote

	for _, q := range quotes {
		if q == nil {
			continue
		}
		if !options.StartTime.IsZero() && q.CreatedAt.Before(options.StartTime) {
			continue
		}
		if !options.EndTime.IsZero() && q.CreatedAt.After(options.EndTime) {
			continue
		}
		if options.DirectionFilter != "" && q.Direction != options.DirectionFilter {
			continue
		}

		filtered = append(filtered, q)
	}

	return filtered
}

func (qe *QuoteExporter) generateFilename(options ExportOptions) string {
	timestamp := time.Now().Format("20060102_150405")

	prefix := "quotes_all"
	if options.DirectionFilter != "" {
		prefix = fmt.Sprintf("quotes_%s", options.DirectionFilter)
	}

	return fmt.Sprintf("%s_%s.%s", prefix, timestamp, options.Format)
}

// CSVHeaders returns the column names of a quote row.
func CSVHeaders() []string {
	return []string{"id", "created_at", "curve", "direction", "amount_in", "amount_out", "min_amount_out", "price"}
}

func toCSV(q *quote.Quote) []string {
	return []string{
		q.ID,
		q.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(q.Curve),
		q.Direction.String(),
		strconv.FormatUint(q.AmountIn, 10),
		strconv.FormatUint(q.AmountOut, 10),
		strconv.FormatUint(q.MinAmountOut, 10),
		q.Price.String(),
	}
}

func (qe *QuoteExporter) exportToCSV(quotes []*quote.Quote, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, q := range quotes {
		if err := writer.Write(toCSV(q)); err != nil {
			return fmt.Errorf("failed to write quote: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// jsonQuote is the JSON shape of a quote. The price is kept as a decimal
// string so no precision is lost.
type jsonQuote struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Curve        string    `json:"curve"`
	Direction    string    `json:"direction"`
	AmountIn     uint64    `json:"amount_in"`
	AmountOut    uint64    `json:"amount_out"`
	MinAmountOut uint64    `json:"min_amount_out"`
	Price        string    `json:"price"`
	PriceScale   int32     `json:"price_scale"`
}

func (qe *QuoteExporter) exportToJSON(quotes []*quote.Quote, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	rows := make([]jsonQuote, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, jsonQuote{
			ID:           q.ID,
			CreatedAt:    q.CreatedAt,
			Curve:        string(q.Curve),
			Direction:    q.Direction.String(),
			AmountIn:     q.AmountIn,
			AmountOut:    q.AmountOut,
			MinAmountOut: q.MinAmountOut,
			Price:        q.Price.String(),
			PriceScale:   q.Price.Scale(),
		})
	}

	exportData := struct {
		ExportTime time.Time     `json:"export_time"`
		QuoteCount int           `json:"quote_count"`
		Quotes     []jsonQuote   `json:"quotes"`
		Summary    ExportSummary `json:"summary"`
	}{
		ExportTime: time.Now(),
		QuoteCount: len(quotes),
		Quotes:     rows,
		Summary:    CalculateSummary(quotes),
	}

	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// ExportSummary contains totals per direction for exported quotes
type ExportSummary struct {
	TotalQuotes  int       `json:"total_quotes"`
	AtoBCount    int       `json:"a_to_b_count"`
	BtoACount    int       `json:"b_to_a_count"`
	AtoBIn       uint64    `json:"a_to_b_in"`
	AtoBOut      uint64    `json:"a_to_b_out"`
	BtoAIn       uint64    `json:"b_to_a_in"`
	BtoAOut      uint64    `json:"b_to_a_out"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	UniqueCurves int       `json:"unique_curves"`
}

// CalculateSummary totals quotes by direction. quotes must be sorted by time.
// Sums saturate at the uint64 maximum.
func CalculateSummary(quotes []*quote.Quote) ExportSummary {
	summary := ExportSummary{
		TotalQuotes: len(quotes),
	}

	if len(quotes) == 0 {
		return summary
	}

	summary.StartDate = quotes[0].CreatedAt
	summary.EndDate = quotes[len(quotes)-1].CreatedAt

	curves := make(map[curve.Kind]bool)

	for _, q := range quotes {
		curves[q.Curve] = true

		switch q.Direction {
		case curve.AtoB:
			summary.AtoBCount++
			summary.AtoBIn = addSat(summary.AtoBIn, q.AmountIn)
			summary.AtoBOut = addSat(summary.AtoBOut, q.AmountOut)
		case curve.BtoA:
			summary.BtoACount++
			summary.BtoAIn = addSat(summary.BtoAIn, q.AmountIn)
			summary.BtoAOut = addSat(summary.BtoAOut, q.AmountOut)
		}
	}

	summary.UniqueCurves = len(curves)

	return summary
}

func addSat(a, b uint64) uint64 {
	if a+b < a {
		return ^uint64(0)
	}
	return a + b
}
