// =============================
// File: internal/curve/factory.go
// =============================
package curve

import (
	"fmt"
	"strings"
)

// Kind names a pricing model.
type Kind string

const (
	KindConstant Kind = "constant"
	KindBancor   Kind = "bancor"
)

// Params holds the raw integer inputs of every model.
type Params struct {
	CurrentSupply    uint64
	MaximumMarketCap uint64
	ReserveBalance   uint64
	ReserveRatio     float64
}

// NewByName создаёт модель кривой по имени
func NewByName(name string, p Params) (Calculator, error) {
	var (
		calc Calculator
		err  error
	)

	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case KindConstant:
		calc, err = NewConstantCurve(p.CurrentSupply, p.MaximumMarketCap)
	case KindBancor:
		calc, err = NewBancorCurve(p.CurrentSupply, p.ReserveBalance, p.ReserveRatio)
	default:
		return nil, fmt.Errorf("curve %q is not supported", name)
	}
	if err != nil {
		return nil, err
	}

	return calc, nil
}
