// =====================================
// File: internal/fixedpoint/number.go
// =====================================
package fixedpoint

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"
)

var (
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

	// 2^64 and 2^128 are exact in float64.
	uint64Limit  = math.Ldexp(1, 64)
	uint128Limit = math.Ldexp(1, 128)
)

// Number is a base 10 fixed point value: raw / 10^scale.
//
// Numbers are immutable. Every operation returns a new Number.
type Number struct {
	raw   bin.Uint128
	scale int32
}

// New builds a Number from a float.
//
// The scale is the count of digits after the decimal point in the shortest
// decimal representation of value. The raw integer is value * 10^scale with
// the fraction dropped (truncated, never rounded). Values near the float64
// minimum can have a scale above 308; their raw integer is the digits of the
// shortest form.
func New(value float64) (Number, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Number{}, fmt.Errorf("%w: non-finite value %v", ErrInvalidInput, value)
	}
	if value < 0 {
		return Number{}, fmt.Errorf("%w: negative value %v", ErrInvalidInput, value)
	}

	scale := scaleOf(value)

	raw, err := wrap(value, scale)
	if err != nil {
		return Number{}, err
	}

	return Number{raw: raw, scale: scale}, nil
}

// FromRaw builds a Number from an unscaled integer and a scale.
func FromRaw(raw *big.Int, scale int32) (Number, error) {
	u, err := toUint128(raw)
	if err != nil {
		return Number{}, err
	}

	return Number{raw: u, scale: scale}, nil
}

// scaleOf returns the number of fractional digits of the shortest
// round-trip decimal form of value.
func scaleOf(value float64) int32 {
	s := strconv.FormatFloat(value, 'f', -1, 64)

	_, frac, found := strings.Cut(s, ".")
	if !found {
		return 0
	}

	return int32(len(frac))
}

// maxFloatScale is the largest scale for which 10^scale is a finite float64.
// Only values close to the float64 minimum have a longer fraction.
const maxFloatScale = 308

func wrap(value float64, scale int32) (bin.Uint128, error) {
	if scale > maxFloatScale {
		// The shortest decimal form has exactly scale fractional digits, so
		// shifting it by scale gives the integer without a float product.
		return toUint128(decimal.NewFromFloat(value).Shift(scale).BigInt())
	}

	scaled := value * math.Pow10(int(scale))
	if math.IsInf(scaled, 0) || scaled >= uint128Limit {
		return bin.Uint128{}, fmt.Errorf("%w: %v with scale %d exceeds 128 bits", ErrOverflow, value, scale)
	}

	// big.Float.Int truncates toward zero.
	i, _ := new(big.Float).SetFloat64(scaled).Int(nil)

	return toUint128(i)
}

// Mul multiplies the value by an integer factor. The scale is kept.
func (n Number) Mul(by uint64) (Number, error) {
	product := new(big.Int).Mul(n.Raw(), new(big.Int).SetUint64(by))

	raw, err := toUint128(product)
	if err != nil {
		return Number{}, fmt.Errorf("mul by %d: %w", by, err)
	}

	return Number{raw: raw, scale: n.scale}, nil
}

// Div divides the raw integer by by, truncating toward zero. The scale is kept.
func (n Number) Div(by uint64) (Number, error) {
	if by == 0 {
		return Number{}, fmt.Errorf("div: %w", ErrDivisionByZero)
	}

	quotient := new(big.Int).Quo(n.Raw(), new(big.Int).SetUint64(by))

	raw, err := toUint128(quotient)
	if err != nil {
		return Number{}, err
	}

	return Number{raw: raw, scale: n.scale}, nil
}

// InverseDiv returns by / n.
//
// The quotient is computed in float64 and a fresh Number is built from it, so
// the scale is derived again and float rounding applies. This is the only
// operation that leaves integer arithmetic.
func (n Number) InverseDiv(by uint64) (Number, error) {
	divisor := n.Float64()
	if divisor == 0 {
		return Number{}, fmt.Errorf("inverse div %d: %w", by, ErrDivisionByZero)
	}

	result, err := New(float64(by) / divisor)
	if err != nil {
		return Number{}, fmt.Errorf("inverse div %d: %w", by, err)
	}

	return result, nil
}

// Float64 returns raw / 10^scale.
//
// Zero is zero at any scale. Scales whose power of ten is not a finite
// float64 go through the exact decimal value instead.
func (n Number) Float64() float64 {
	if n.IsZero() {
		return 0
	}
	if n.scale > maxFloatScale || n.scale < -maxFloatScale {
		f, _ := n.Decimal().Float64()
		return f
	}

	raw, _ := new(big.Float).SetInt(n.Raw()).Float64()

	return raw / math.Pow10(int(n.scale))
}

// Uint64 rounds the value half away from zero.
func (n Number) Uint64() (uint64, error) {
	rounded := math.Round(n.Float64())
	if math.IsNaN(rounded) {
		return 0, fmt.Errorf("%w: value is not a number", ErrInvalidInput)
	}
	if rounded >= uint64Limit {
		return 0, fmt.Errorf("%w: %v does not fit uint64", ErrOverflow, rounded)
	}

	return uint64(rounded), nil
}

// Uint128 rounds the value half away from zero.
func (n Number) Uint128() (bin.Uint128, error) {
	rounded := math.Round(n.Float64())
	if math.IsNaN(rounded) {
		return bin.Uint128{}, fmt.Errorf("%w: value is not a number", ErrInvalidInput)
	}
	if rounded >= uint128Limit {
		return bin.Uint128{}, fmt.Errorf("%w: %v does not fit uint128", ErrOverflow, rounded)
	}

	i, _ := new(big.Float).SetFloat64(rounded).Int(nil)

	return toUint128(i)
}

// Equal reports whether both the raw integer and the scale match.
// 1.5 with scale 1 and 1.50 with scale 2 are different numbers.
func (n Number) Equal(other Number) bool {
	return n.raw.Lo == other.raw.Lo &&
		n.raw.Hi == other.raw.Hi &&
		n.scale == other.scale
}

// Scale returns the number of decimal digits.
func (n Number) Scale() int32 {
	return n.scale
}

// Raw returns a copy of the unscaled integer.
func (n Number) Raw() *big.Int {
	return toBig(n.raw)
}

// IsZero reports whether the raw integer is zero.
func (n Number) IsZero() bool {
	return n.raw.Lo == 0 && n.raw.Hi == 0
}

// Decimal returns the exact decimal value.
func (n Number) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(n.Raw(), -n.scale)
}

// String prints the exact value with scale fractional digits.
func (n Number) String() string {
	if n.scale <= 0 {
		return n.Decimal().String()
	}

	return n.Decimal().StringFixed(n.scale)
}

func toBig(u bin.Uint128) *big.Int {
	i := new(big.Int).SetUint64(u.Hi)
	i.Lsh(i, 64)

	return i.Or(i, new(big.Int).SetUint64(u.Lo))
}

func toUint128(i *big.Int) (bin.Uint128, error) {
	if i.Sign() < 0 {
		return bin.Uint128{}, fmt.Errorf("%w: value must be unsigned", ErrInvalidInput)
	}
	if i.Cmp(maxUint128) > 0 {
		return bin.Uint128{}, fmt.Errorf("%w: value %s exceeds 128 bits", ErrOverflow, i.String())
	}

	lo := new(big.Int).And(i, new(big.Int).SetUint64(math.MaxUint64))
	hi := new(big.Int).Rsh(i, 64)

	return bin.Uint128{Lo: lo.Uint64(), Hi: hi.Uint64()}, nil
}
