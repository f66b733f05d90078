// ==================================
// File: internal/curve/calculator.go
// ==================================
package curve

import (
	"fmt"
	"strings"

	"github.com/rovshanmuradov/bonding-curve/internal/fixedpoint"
)

// TradeDirection определяет направление обмена.
//
// Token A is the launched token, token B is the reserve (base) asset.
// The price reported by a Calculator is B per A.
type TradeDirection string

const (
	// AtoB converts an amount of A into B: price * amount.
	AtoB TradeDirection = "AtoB"
	// BtoA converts an amount of B into A: amount / price.
	BtoA TradeDirection = "BtoA"
)

// ParseTradeDirection accepts "AtoB" or "BtoA" in any case.
func ParseTradeDirection(s string) (TradeDirection, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, string(AtoB)):
		return AtoB, nil
	case strings.EqualFold(s, string(BtoA)):
		return BtoA, nil
	default:
		return "", fmt.Errorf("%w: unknown trade direction %q", fixedpoint.ErrInvalidInput, s)
	}
}

func (d TradeDirection) String() string {
	return string(d)
}

// Calculator is implemented by every pricing model.
type Calculator interface {
	// InitialPrice returns the spot price of A in B. It never mutates the model.
	InitialPrice() (fixedpoint.Number, error)
	// Kind returns the model name.
	Kind() Kind
}

// TokenOut converts amount into the other asset at price.
//
// It depends only on its arguments, so every model shares it. AtoB scales
// the raw price by amount. BtoA goes through fixedpoint.Number.InverseDiv and
// therefore through float64.
func TokenOut(price fixedpoint.Number, amount uint64, direction TradeDirection) (uint64, error) {
	var (
		out fixedpoint.Number
		err error
	)

	switch direction {
	case AtoB:
		out, err = price.Mul(amount)
	case BtoA:
		out, err = price.InverseDiv(amount)
	default:
		return 0, fmt.Errorf("%w: unknown trade direction %q", fixedpoint.ErrInvalidInput, string(direction))
	}
	if err != nil {
		return 0, fmt.Errorf("token out %s: %w", direction, err)
	}

	result, err := out.Uint64()
	if err != nil {
		return 0, fmt.Errorf("token out %s: %w", direction, err)
	}

	return result, nil
}
