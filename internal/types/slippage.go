// internal/types/slippage.go
package types

import (
	"fmt"
	"math"
)

// SlippageType определяет тип политики проскальзывания
type SlippageType string

const (
	// SlippageFixed использует фиксированное значение minAmountOut
	SlippageFixed SlippageType = "fixed"
	// SlippagePercent использует процент от ожидаемого выхода
	SlippagePercent SlippageType = "percent"
	// SlippageNone не использует ограничение minAmountOut
	SlippageNone SlippageType = "none"
)

// SlippageConfig конфигурирует политику проскальзывания
type SlippageConfig struct {
	// Type определяет тип политики проскальзывания
	Type SlippageType `json:"type" mapstructure:"type"`
	// Value содержит значение для выбранной политики:
	// - для SlippageFixed: точное значение minAmountOut
	// - для SlippagePercent: процент допустимого проскальзывания (например, 1.0 = 1%)
	// - для SlippageNone: игнорируется
	Value float64 `json:"value" mapstructure:"value"`
}

// Validate checks the policy value.
func (c SlippageConfig) Validate() error {
	if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) || c.Value < 0 {
		return fmt.Errorf("invalid slippage value: %v", c.Value)
	}

	switch c.Type {
	case SlippageNone, "":
		return nil
	case SlippageFixed:
		if c.Value >= math.Ldexp(1, 64) {
			return fmt.Errorf("fixed slippage %v does not fit uint64", c.Value)
		}
		return nil
	case SlippagePercent:
		if c.Value > 100 {
			return fmt.Errorf("slippage percent must be between 0 and 100, got %v", c.Value)
		}
		return nil
	default:
		return fmt.Errorf("unknown slippage type: %s", c.Type)
	}
}

// CalculateMinAmountOut вычисляет minAmountOut на основе политики проскальзывания
func CalculateMinAmountOut(expectedAmount uint64, config SlippageConfig) (uint64, error) {
	if err := config.Validate(); err != nil {
		return 0, err
	}

	switch config.Type {
	case SlippageFixed:
		return uint64(config.Value), nil
	case SlippagePercent:
		// Например, если проскальзывание 1% (value = 1.0), то минимум будет 99% от ожидаемого
		multiplier := 1.0 - (config.Value / 100.0)
		minimum := math.Floor(float64(expectedAmount) * multiplier)
		if minimum >= float64(expectedAmount) {
			return expectedAmount, nil
		}
		return uint64(minimum), nil
	default:
		// без ограничения
		return 0, nil
	}
}
