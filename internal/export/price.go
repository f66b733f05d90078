package export

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/bonding-curve/internal/fixedpoint"
)

// PriceExporter stores a price as a fixedpoint record of fixedpoint.Size bytes.
type PriceExporter struct {
	logger *zap.Logger
}

// NewPriceExporter creates a new price exporter
func NewPriceExporter(logger *zap.Logger) *PriceExporter {
	return &PriceExporter{
		logger: logger,
	}
}

// Save writes price to path, replacing the file.
func (pe *PriceExporter) Save(path string, price fixedpoint.Number) error {
	data, err := price.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to encode price: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write price record: %w", err)
	}

	pe.logger.Info("Price record saved",
		zap.String("file", path),
		zap.Stringer("price", price),
		zap.Int32("scale", price.Scale()))

	return nil
}

// Load reads a price written by Save.
func (pe *PriceExporter) Load(path string) (fixedpoint.Number, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixedpoint.Number{}, fmt.Errorf("failed to read price record: %w", err)
	}

	var price fixedpoint.Number
	if err := price.UnmarshalBinary(data); err != nil {
		return fixedpoint.Number{}, fmt.Errorf("failed to decode price record %s: %w", path, err)
	}

	pe.logger.Debug("Price record loaded",
		zap.String("file", path),
		zap.Stringer("price", price))

	return price, nil
}
