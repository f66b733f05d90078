// Package fixedpoint implements the scaled integer decimal used for curve prices.
//
// A Number is
//
//	number = raw / 10^scale
//
// where raw is an unsigned 128-bit integer and scale is the count of decimal
// digits. For example 1.23 is raw 123 with scale 2.
//
// The scale is derived once, when a Number is built from a float64, from the
// shortest decimal string of that float. Mul and Div work on raw only and
// keep the scale. InverseDiv goes through float64 and builds a new Number, so
// its result carries a freshly derived scale.
//
// Equality is structural: two Numbers are equal when raw and scale both match.
//
// Encoding
//
// A Number is stored as a fixed 20 byte record, the Borsh layout of
//
//	struct { raw u128; scale i32 }
//
// both little endian:
//
//	| 0 ... 15        | 16 ... 19   |
//	|-----------------|-------------|
//	| raw (u128, LE)  | scale (i32) |
package fixedpoint
