// Package fixed implements unsigned 16.16 fixed-point numbers.
//
// Conversions from and to floating point are meant to run once on the host,
// outside any hot loop. Everything else in this package (Mul, Floor, Frac,
// FromInt) only uses integer addition, shifts, masks and a widened multiply,
// so code built on it can run on hardware without a floating-point unit.
package fixed

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	xfixed "golang.org/x/image/math/fixed"
)

// Fixed is an unsigned fixed-point number with 16 integer bits and 16
// fractional bits, capable of representing 0 to 65535.99998474.
//
// A value v represents (v >> 16) + (v & 0xFFFF) / 65536.
type Fixed uint32

const (
	// FracBits is the number of fractional bits.
	FracBits = 16
	// FracMask selects the fractional field.
	FracMask Fixed = 1<<FracBits - 1
	// IntMask selects the integer field.
	IntMask Fixed = ^FracMask
	// One is 1.0, the multiplicative identity.
	One Fixed = 1 << FracBits
	// MaxWhole is the largest integer part a Fixed can hold.
	MaxWhole = 1<<(32-FracBits) - 1
	// Max is the highest Fixed: 65535.99998474.
	Max Fixed = math.MaxUint32
)

// scale is 2^FracBits as a float.
const scale = float64(One)

// FromFloat converts a float into a Fixed. The integer part is floor(v) and
// the fraction is the rounded remainder scaled by 2^16.
//
// v must be in [0, 65536); anything else wraps silently. Use InRange to check
// first when the input is not trusted.
//
// T is inferred from the argument, so an untyped whole constant such as 255
// does not compile; write 255.0 or use FromInt.
func FromFloat[T constraints.Float](v T) Fixed {
	f := float64(v)
	w := math.Floor(f)
	whole := Fixed(uint32(w)) << FracBits
	frac := Fixed(uint32(math.Round((f - w) * scale)))
	return whole + frac
}

// Float converts a Fixed into a float. The fractional term needs a floating
// division since it rarely divides evenly.
func Float[T constraints.Float](f Fixed) T {
	whole := T(f >> FracBits)
	frac := T(f & FracMask)
	return whole + frac/T(scale)
}

// InRange reports whether v can be represented by FromFloat without wrapping.
func InRange[T constraints.Float](v T) bool {
	return v >= 0 && float64(v) < MaxWhole+1
}

// FromInt converts a whole number into a Fixed using only a shift.
// n must be in [0, MaxWhole].
func FromInt(n int) Fixed {
	return Fixed(uint32(n) << FracBits)
}

// Ratio returns num/den as a Fixed. It is the host-side helper for scale
// factors: the division happens once in floating point and the result is
// converted. den must be positive.
func Ratio(num, den int) Fixed {
	return FromFloat(float64(num) / float64(den))
}

// Mul multiplies two fixed-point numbers.
//
// The raw product of two 16.16 values is scaled by 2^32 and needs up to 64
// bits. Bits [16, 48) of it are the product rescaled to 2^16.
func Mul(a, b Fixed) Fixed {
	return Fixed(uint32((uint64(a) * uint64(b)) >> FracBits))
}

// Mul is the method form of Mul.
func (a Fixed) Mul(b Fixed) Fixed {
	return Mul(a, b)
}

// Floor drops the fractional field, keeping the result in fixed-point units.
func (f Fixed) Floor() Fixed { return f & IntMask }

// Frac returns only the fractional field, a value in [0, One).
func (f Fixed) Frac() Fixed { return f & FracMask }

// Int returns the integer part as a plain int.
func (f Fixed) Int() int { return int(f >> FracBits) }

func (f Fixed) String() string {
	return fmt.Sprintf("%.5f", Float[float64](f))
}

// Int26_6 converts f to the 26.6 format used by golang.org/x/image/font,
// dropping the 10 lowest fractional bits.
func (f Fixed) Int26_6() xfixed.Int26_6 {
	return xfixed.Int26_6(int32(f >> (FracBits - 6)))
}

// FromInt26_6 converts a 26.6 value into a Fixed. Negative values are out of
// range and return 0; values whose integer part exceeds MaxWhole wrap.
func FromInt26_6(x xfixed.Int26_6) Fixed {
	if x < 0 {
		return 0
	}
	return Fixed(uint32(x) << (FracBits - 6))
}
