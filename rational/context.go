// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package rational

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundingMode selects how MathContext discards digits.
type RoundingMode int

const (
	// HalfEven rounds to nearest, ties to even (banker's rounding).
	HalfEven RoundingMode = iota
	// HalfUp rounds to nearest, ties away from zero.
	HalfUp
	// Down truncates toward zero.
	Down
)

// DefaultDigits is the precision used by inexact operations (division,
// roots) when a MathContext asks for unlimited precision.
const DefaultDigits = 34

// MathContext is a precision request for decimal arithmetic: Precision is a
// number of significant digits (0 means unlimited) and Rounding the mode
// used to drop the rest.
type MathContext struct {
	Precision int32
	Rounding  RoundingMode
}

// Standard contexts, matching the IEEE 754 decimal formats.
var (
	Decimal32  = MathContext{Precision: 7, Rounding: HalfEven}
	Decimal64  = MathContext{Precision: 16, Rounding: HalfEven}
	Decimal128 = MathContext{Precision: 34, Rounding: HalfEven}
	Unlimited  = MathContext{}
)

// digits returns the precision inexact operations should work to.
func (mc MathContext) digits() int32 {
	if mc.Precision <= 0 {
		return DefaultDigits
	}
	return mc.Precision
}

// Working returns a context with extra guard digits for intermediate results.
func (mc MathContext) Working() MathContext {
	return MathContext{Precision: mc.digits() + 5, Rounding: HalfEven}
}

// Round rounds d to mc.Precision significant digits. An unlimited context
// returns d unchanged.
func (mc MathContext) Round(d decimal.Decimal) decimal.Decimal {
	if mc.Precision <= 0 || d.IsZero() {
		return d
	}
	places := mc.Precision - magnitude(d)
	if places >= -d.Exponent() {
		// already within precision
		return d
	}
	return roundPlaces(d, places, mc.Rounding)
}

// Quo returns a / b rounded to the precision of mc (DefaultDigits when
// unlimited). b must not be zero.
func (mc MathContext) Quo(a, b decimal.Decimal) decimal.Decimal {
	if a.IsZero() {
		return decimal.Zero
	}
	p := mc.digits()
	// the quotient's leading digit lies at magnitude(a)-magnitude(b) or one above
	places := p - (magnitude(a) - magnitude(b)) + 2
	q := a.DivRound(b, places)
	return MathContext{Precision: p, Rounding: mc.Rounding}.Round(q)
}

// Mul returns a * b rounded by mc.
func (mc MathContext) Mul(a, b decimal.Decimal) decimal.Decimal {
	return mc.Round(a.Mul(b))
}

// magnitude is the number of digits left of the decimal point of the most
// significant digit of d, i.e. floor(log10(|d|)) + 1.
func magnitude(d decimal.Decimal) int32 {
	return int32(d.NumDigits()) + d.Exponent()
}

func roundPlaces(d decimal.Decimal, places int32, mode RoundingMode) decimal.Decimal {
	x := d.Shift(places)
	switch mode {
	case HalfUp:
		x = x.Round(0)
	case Down:
		x = x.Truncate(0)
	default:
		x = x.RoundBank(0)
	}
	return x.Shift(-places)
}

// DecimalRoot returns the nth root of value to the precision of mc using
// Newton-Raphson refinement from a float64 estimate. Iteration stops once the
// relative correction drops below the requested precision. Negative values
// and n <= 0 fail with ErrInvalid.
func DecimalRoot(n int, value decimal.Decimal, mc MathContext) (decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, ErrInvalid.New("root index %d", n)
	}
	if value.IsNegative() {
		return decimal.Zero, ErrInvalid.New("root of negative value %s", value)
	}
	if value.IsZero() {
		return decimal.Zero, nil
	}
	if n == 1 {
		return mc.Round(value), nil
	}
	p := mc.digits()
	wc := MathContext{Precision: p + 5, Rounding: HalfEven}
	x := rootEstimate(n, value)
	dn := decimal.NewFromInt(int64(n))
	dn1 := decimal.NewFromInt(int64(n - 1))
	tolerance := decimal.New(1, -(p + 1))
	for i := 0; i < 200; i++ {
		// x' = ((n-1)x + value/x^(n-1)) / n
		next := wc.Quo(dn1.Mul(x).Add(wc.Quo(value, powInt(x, n-1, wc))), dn)
		delta := next.Sub(x).Abs()
		x = next
		if delta.LessThanOrEqual(tolerance.Mul(x.Abs())) {
			break
		}
	}
	return MathContext{Precision: p, Rounding: mc.Rounding}.Round(x), nil
}

// rootEstimate seeds Newton's method; values outside float64 range fall back
// to a power of ten with the right magnitude.
func rootEstimate(n int, value decimal.Decimal) decimal.Decimal {
	f := value.InexactFloat64()
	if f > 0 && !math.IsInf(f, 0) {
		if r := math.Pow(f, 1/float64(n)); r > 0 && !math.IsInf(r, 0) {
			return decimal.NewFromFloat(r)
		}
	}
	return decimal.New(1, magnitude(value)/int32(n))
}

// powInt returns x^k for k >= 0, rounding each product by mc.
func powInt(x decimal.Decimal, k int, mc MathContext) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for k > 0 {
		if k&1 == 1 {
			result = mc.Mul(result, x)
		}
		k >>= 1
		if k > 0 {
			x = mc.Mul(x, x)
		}
	}
	return result
}
