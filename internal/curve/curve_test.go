package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/bonding-curve/internal/fixedpoint"
)

const (
	totalSupply      uint64 = 1_000_000_000 * 1_000_000 // 1B tokens, 6 decimals
	maximumMarketCap uint64 = 50 * 1_000_000_000        // 50 SOL in lamports
)

func TestConstantCurveSellFractionToMeetMaximumCap(t *testing.T) {
	sellFraction := totalSupply / 3

	c, err := NewConstantCurve(sellFraction, maximumMarketCap)
	require.NoError(t, err)

	price, err := c.InitialPrice()
	require.NoError(t, err)

	tokenOut, err := TokenOut(price, maximumMarketCap, BtoA)
	require.NoError(t, err)
	assert.Equal(t, sellFraction, tokenOut,
		"we are only selling this fraction to migrate")

	solOut, err := TokenOut(price, tokenOut, AtoB)
	require.NoError(t, err)
	assert.Equal(t, maximumMarketCap, solOut,
		"we reached the target market cap")
}

func TestConstantCurveSamplePrice(t *testing.T) {
	c, err := NewConstantCurve(totalSupply/100, maximumMarketCap)
	require.NoError(t, err)

	price, err := c.InitialPrice()
	require.NoError(t, err)

	assert.Equal(t, 0.005, price.Float64())
	assert.Equal(t, int32(3), price.Scale())
	assert.Equal(t, KindConstant, c.Kind())
}

func TestBancorCurvePriceRegression(t *testing.T) {
	b, err := NewBancorCurve(totalSupply, maximumMarketCap, 0.9)
	require.NoError(t, err)

	price, err := b.InitialPrice()
	require.NoError(t, err)

	want, err := fixedpoint.New(0.00005555555555555556)
	require.NoError(t, err)

	assert.True(t, price.Equal(want), "got %s scale %d", price, price.Scale())
	assert.Equal(t, KindBancor, b.Kind())
}

func TestZeroSupply(t *testing.T) {
	_, err := NewConstantCurve(0, maximumMarketCap)
	assert.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)

	_, err = NewBancorCurve(0, maximumMarketCap, 0.5)
	assert.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)

	var zero ConstantCurve
	_, err = zero.InitialPrice()
	assert.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)

	var zeroBancor BancorCurve
	_, err = zeroBancor.InitialPrice()
	assert.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)
}

func TestBancorReserveRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		err   error
	}{
		{"zero", 0, fixedpoint.ErrDivisionByZero},
		{"negative", -0.1, fixedpoint.ErrInvalidInput},
		{"above one", 1.5, fixedpoint.ErrInvalidInput},
		{"nan", math.NaN(), fixedpoint.ErrInvalidInput},
		{"one", 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBancorCurve(totalSupply, maximumMarketCap, tt.ratio)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBancorCurveInfinitePrice(t *testing.T) {
	b, err := NewBancorCurve(1, 10, math.SmallestNonzeroFloat64)
	require.NoError(t, err)

	_, err = b.InitialPrice()
	assert.ErrorIs(t, err, fixedpoint.ErrOverflow)
}

func TestTokenOutDirections(t *testing.T) {
	price, err := fixedpoint.New(0.005)
	require.NoError(t, err)

	tests := []struct {
		name      string
		amount    uint64
		direction TradeDirection
		want      uint64
	}{
		{"a to b", 1_000_000, AtoB, 5_000},
		{"b to a", 5_000, BtoA, 1_000_000},
		{"a to b small", 1_000, AtoB, 5},
		{"b to a small", 1_000, BtoA, 200_000},
		{"zero amount", 0, AtoB, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenOut(price, tt.amount, tt.direction)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenOutErrors(t *testing.T) {
	zero, err := fixedpoint.New(0)
	require.NoError(t, err)

	_, err = TokenOut(zero, 100, BtoA)
	assert.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)

	huge, err := fixedpoint.New(1e19)
	require.NoError(t, err)

	_, err = TokenOut(huge, 10, AtoB)
	assert.ErrorIs(t, err, fixedpoint.ErrOverflow)

	_, err = TokenOut(huge, 10, TradeDirection("sideways"))
	assert.ErrorIs(t, err, fixedpoint.ErrInvalidInput)
}

func TestConstantCurveZeroCap(t *testing.T) {
	c, err := NewConstantCurve(totalSupply, 0)
	require.NoError(t, err)

	price, err := c.InitialPrice()
	require.NoError(t, err)
	assert.True(t, price.IsZero())

	_, err = TokenOut(price, 1, BtoA)
	assert.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)
}

func TestParseTradeDirection(t *testing.T) {
	d, err := ParseTradeDirection("atob")
	require.NoError(t, err)
	assert.Equal(t, AtoB, d)

	d, err = ParseTradeDirection(" BtoA ")
	require.NoError(t, err)
	assert.Equal(t, BtoA, d)

	_, err = ParseTradeDirection("sideways")
	assert.ErrorIs(t, err, fixedpoint.ErrInvalidInput)
}

func TestNewByName(t *testing.T) {
	calc, err := NewByName("Bancor", Params{
		CurrentSupply:  totalSupply,
		ReserveBalance: maximumMarketCap,
		ReserveRatio:   0.9,
	})
	require.NoError(t, err)
	assert.Equal(t, KindBancor, calc.Kind())

	calc, err = NewByName("constant", Params{CurrentSupply: totalSupply, MaximumMarketCap: maximumMarketCap})
	require.NoError(t, err)
	assert.Equal(t, KindConstant, calc.Kind())

	calc, err = NewByName("constant", Params{})
	assert.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)
	assert.Nil(t, calc)

	_, err = NewByName("uniswap", Params{CurrentSupply: 1})
	assert.Error(t, err)
}
