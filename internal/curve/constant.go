// internal/curve/constant.go
package curve

import (
	"fmt"

	"github.com/rovshanmuradov/bonding-curve/internal/fixedpoint"
)

// ConstantCurve prices every remaining token the same:
// selling currentSupply tokens brings exactly maximumMarketCap.
type ConstantCurve struct {
	currentSupply    float64
	maximumMarketCap float64
}

// NewConstantCurve создает модель с фиксированной ценой.
func NewConstantCurve(currentSupply, maximumMarketCap uint64) (*ConstantCurve, error) {
	if currentSupply == 0 {
		return nil, fmt.Errorf("constant curve: current supply: %w", fixedpoint.ErrDivisionByZero)
	}

	return &ConstantCurve{
		currentSupply:    float64(currentSupply),
		maximumMarketCap: float64(maximumMarketCap),
	}, nil
}

// InitialPrice = maximumMarketCap / currentSupply.
func (c *ConstantCurve) InitialPrice() (fixedpoint.Number, error) {
	if c.currentSupply == 0 {
		return fixedpoint.Number{}, fmt.Errorf("constant curve: %w", fixedpoint.ErrDivisionByZero)
	}

	price, err := fixedpoint.New(c.maximumMarketCap / c.currentSupply)
	if err != nil {
		return fixedpoint.Number{}, fmt.Errorf("constant curve: %w", err)
	}

	return price, nil
}

func (c *ConstantCurve) Kind() Kind {
	return KindConstant
}
