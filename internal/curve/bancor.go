// internal/curve/bancor.go
package curve

import (
	"fmt"
	"math"

	"github.com/rovshanmuradov/bonding-curve/internal/fixedpoint"
)

// BancorCurve is the connector weighted model:
//
//	price = reserveBalance / (currentSupply * reserveRatio)
//
// Only the spot price is modeled. Conversions use the shared TokenOut at
// that single price point, not the bonding curve integral.
type BancorCurve struct {
	reserveRatio         float64
	tokenACurrentSupply  float64
	tokenBReserveBalance float64
}

// NewBancorCurve creates the model. reserveRatio must be in (0, 1].
func NewBancorCurve(currentSupply, reserveBalance uint64, reserveRatio float64) (*BancorCurve, error) {
	if math.IsNaN(reserveRatio) || math.IsInf(reserveRatio, 0) || reserveRatio < 0 || reserveRatio > 1 {
		return nil, fmt.Errorf("bancor curve: %w: reserve ratio %v outside (0, 1]", fixedpoint.ErrInvalidInput, reserveRatio)
	}
	if currentSupply == 0 {
		return nil, fmt.Errorf("bancor curve: current supply: %w", fixedpoint.ErrDivisionByZero)
	}
	if reserveRatio == 0 {
		return nil, fmt.Errorf("bancor curve: reserve ratio: %w", fixedpoint.ErrDivisionByZero)
	}

	return &BancorCurve{
		reserveRatio:         reserveRatio,
		tokenACurrentSupply:  float64(currentSupply),
		tokenBReserveBalance: float64(reserveBalance),
	}, nil
}

// InitialPrice = reserveBalance / (currentSupply * reserveRatio).
func (b *BancorCurve) InitialPrice() (fixedpoint.Number, error) {
	denominator := b.tokenACurrentSupply * b.reserveRatio
	if denominator == 0 {
		return fixedpoint.Number{}, fmt.Errorf("bancor curve: %w", fixedpoint.ErrDivisionByZero)
	}

	quotient := b.tokenBReserveBalance / denominator
	if math.IsInf(quotient, 0) {
		return fixedpoint.Number{}, fmt.Errorf("bancor curve: price %v: %w", quotient, fixedpoint.ErrOverflow)
	}

	price, err := fixedpoint.New(quotient)
	if err != nil {
		return fixedpoint.Number{}, fmt.Errorf("bancor curve: %w", err)
	}

	return price, nil
}

func (b *BancorCurve) Kind() Kind {
	return KindBancor
}
