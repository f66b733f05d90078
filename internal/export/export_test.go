package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/bonding-curve/internal/curve"
	"github.com/rovshanmuradov/bonding-curve/internal/fixedpoint"
	"github.com/rovshanmuradov/bonding-curve/internal/quote"
)

func TestQuoteExportCSV(t *testing.T) {
	exporter := NewQuoteExporter(zap.NewNop())
	tempDir := t.TempDir()

	quotes := generateTestQuotes(t)

	outputPath, err := exporter.ExportQuotes(quotes, ExportOptions{
		Format:    FormatCSV,
		OutputDir: tempDir,
	})
	if err != nil {
		t.Fatalf("Failed to export quotes: %v", err)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatalf("Failed to open export file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) != len(quotes)+1 {
		t.Fatalf("Expected %d rows, got %d", len(quotes)+1, len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(CSVHeaders(), ",") {
		t.Errorf("Unexpected header: %v", records[0])
	}
	// Oldest first.
	if records[1][0] != "q1" || records[1][5] != "5000" || records[1][7] != "0.005" {
		t.Errorf("Unexpected first row: %v", records[1])
	}
}

func TestQuoteExportJSON(t *testing.T) {
	exporter := NewQuoteExporter(zap.NewNop())
	tempDir := t.TempDir()

	quotes := generateTestQuotes(t)

	outputPath, err := exporter.ExportQuotes(quotes, ExportOptions{
		Format:    FormatJSON,
		OutputDir: tempDir,
	})
	if err != nil {
		t.Fatalf("Failed to export quotes: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read export file: %v", err)
	}

	var data struct {
		QuoteCount int           `json:"quote_count"`
		Summary    ExportSummary `json:"summary"`
		Quotes     []struct {
			Price      string `json:"price"`
			PriceScale int32  `json:"price_scale"`
		} `json:"quotes"`
	}
	if err := json.Unmarshal(content, &data); err != nil {
		t.Fatalf("Failed to decode export: %v", err)
	}

	if data.QuoteCount != 3 || data.Summary.TotalQuotes != 3 {
		t.Errorf("Expected 3 quotes, got %d / %d", data.QuoteCount, data.Summary.TotalQuotes)
	}
	if data.Quotes[0].Price != "0.005" || data.Quotes[0].PriceScale != 3 {
		t.Errorf("Unexpected price: %+v", data.Quotes[0])
	}
}

func TestQuoteExportFilters(t *testing.T) {
	exporter := NewQuoteExporter(zap.NewNop())
	tempDir := t.TempDir()

	quotes := generateTestQuotes(t)

	filtered := exporter.filterQuotes(quotes, ExportOptions{DirectionFilter: curve.BtoA})
	if len(filtered) != 1 || filtered[0].ID != "q2" {
		t.Errorf("Direction filter returned %d quotes", len(filtered))
	}

	filtered = exporter.filterQuotes(quotes, ExportOptions{
		StartTime: time.Now().Add(-50 * time.Minute),
		EndTime:   time.Now().Add(-25 * time.Minute),
	})
	if len(filtered) != 1 || filtered[0].ID != "q2" {
		t.Errorf("Time filter returned %d quotes", len(filtered))
	}

	_, err := exporter.ExportQuotes(quotes, ExportOptions{
		Format:    FormatCSV,
		StartTime: time.Now().Add(time.Hour),
		OutputDir: tempDir,
	})
	if err == nil {
		t.Error("Expected error when no quotes match")
	}

	_, err = exporter.ExportQuotes(quotes, ExportOptions{
		Format:    ExportFormat("xml"),
		OutputDir: tempDir,
	})
	if err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestExportSummaryCalculation(t *testing.T) {
	quotes := generateTestQuotes(t)

	summary := CalculateSummary(quotes)

	if summary.TotalQuotes != 3 {
		t.Errorf("Expected 3 total quotes, got %d", summary.TotalQuotes)
	}
	if summary.AtoBCount != 2 || summary.BtoACount != 1 {
		t.Errorf("Expected 2 AtoB and 1 BtoA, got %d and %d", summary.AtoBCount, summary.BtoACount)
	}
	if summary.AtoBIn != 2_000_000 || summary.AtoBOut != 10_000 {
		t.Errorf("Unexpected AtoB totals: in %d out %d", summary.AtoBIn, summary.AtoBOut)
	}
	if summary.BtoAIn != 5_000 || summary.BtoAOut != 1_000_000 {
		t.Errorf("Unexpected BtoA totals: in %d out %d", summary.BtoAIn, summary.BtoAOut)
	}
	if summary.UniqueCurves != 1 {
		t.Errorf("Expected 1 curve, got %d", summary.UniqueCurves)
	}
	if addSat(^uint64(0), 1) != ^uint64(0) {
		t.Error("Expected saturating sum")
	}
}

func TestFilenameGeneration(t *testing.T) {
	exporter := NewQuoteExporter(zap.NewNop())

	tests := []struct {
		options  ExportOptions
		expected string
	}{
		{
			options:  ExportOptions{Format: FormatCSV},
			expected: "quotes_all",
		},
		{
			options:  ExportOptions{Format: FormatJSON, DirectionFilter: curve.AtoB},
			expected: "quotes_AtoB",
		},
	}

	for _, tt := range tests {
		filename := exporter.generateFilename(tt.options)
		if !strings.HasPrefix(filename, tt.expected) {
			t.Errorf("Expected filename to start with %s, got %s", tt.expected, filename)
		}

		expectedExt := "." + string(tt.options.Format)
		if !strings.HasSuffix(filename, expectedExt) {
			t.Errorf("Expected filename to end with %s, got %s", expectedExt, filename)
		}
	}
}

// Helper function to generate test quotes at price 0.005
func generateTestQuotes(t *testing.T) []*quote.Quote {
	t.Helper()

	price, err := fixedpoint.New(0.005)
	if err != nil {
		t.Fatalf("Failed to create price: %v", err)
	}

	now := time.Now()
	// Deliberately out of order.
	return []*quote.Quote{
		{
			ID:        "q3",
			Curve:     curve.KindConstant,
			Direction: curve.AtoB,
			AmountIn:  1_000_000,
			AmountOut: 5_000,
			Price:     price,
			CreatedAt: now.Add(-10 * time.Minute),
		},
		{
			ID:        "q1",
			Curve:     curve.KindConstant,
			Direction: curve.AtoB,
			AmountIn:  1_000_000,
			AmountOut: 5_000,
			Price:     price,
			CreatedAt: now.Add(-time.Hour),
		},
		{
			ID:        "q2",
			Curve:     curve.KindConstant,
			Direction: curve.BtoA,
			AmountIn:  5_000,
			AmountOut: 1_000_000,
			Price:     price,
			CreatedAt: now.Add(-30 * time.Minute),
		},
	}
}
