// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package rational provides the exact arithmetic the unit engine is built on:
// a machine-width Fraction with explicit overflow detection, an
// arbitrary-precision BigFraction, integer powers and roots, and the
// MathContext that drives decimal rounding.
package rational

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strconv"
	"strings"

	"github.com/kbolino/rat128"
)

// Fraction is a rational number with 64-bit numerator and denominator.
//
// Fraction shares rat128.N's layout: the denominator is biased by 1, so the
// zero value is 0/1. Arithmetic goes through rat128 and falls back to
// big.Rat only when rat128 cannot hold an operand or intermediate.
// Fractions are always in lowest terms with a positive denominator and can
// be compared with == and !=.
type Fraction struct {
	m int64
	n int64
}

// Common values.
var (
	Zero = Fraction{}
	One  = Fraction{1, 0}
)

// Reduce returns num/den in lowest terms with the sign carried by the
// numerator. A zero denominator fails with ErrInvalid; a result that does not
// fit (e.g. 1/MinInt64) fails with ErrOverflow.
func Reduce(num, den int64) (Fraction, error) {
	if den == 0 {
		return Fraction{}, ErrInvalid.New("zero denominator in %d/%d", num, den)
	}
	if num == 0 {
		return Fraction{}, nil
	}
	neg := (num < 0) != (den < 0)
	a, b := abs64u(num), abs64u(den)
	d := gcd64(a, b)
	a, b = a/d, b/d
	if b > math.MaxInt64 {
		return Fraction{}, ErrOverflow.New("denominator of %d/%d", num, den)
	}
	if neg {
		if a > 1<<63 {
			return Fraction{}, ErrOverflow.New("numerator of %d/%d", num, den)
		}
		return Fraction{-int64(a), int64(b) - 1}, nil
	}
	if a > math.MaxInt64 {
		return Fraction{}, ErrOverflow.New("numerator of %d/%d", num, den)
	}
	return Fraction{int64(a), int64(b) - 1}, nil
}

// New is like Reduce but panics on error.
func New(num, den int64) Fraction {
	f, err := Reduce(num, den)
	if err != nil {
		panic(err)
	}
	return f
}

// Int returns n/1.
func Int(n int64) Fraction {
	return Fraction{n, 0}
}

// Parse parses "p", "-p" or "p/q" in base 10.
func Parse(s string) (Fraction, error) {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	m, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return Fraction{}, ErrInvalid.New("parsing numerator of %q: %v", s, err)
	}
	if !found {
		return Int(m), nil
	}
	n, err := strconv.ParseInt(den, 10, 64)
	if err != nil {
		return Fraction{}, ErrInvalid.New("parsing denominator of %q: %v", s, err)
	}
	return Reduce(m, n)
}

// fromRat narrows a big.Rat into a Fraction.
func fromRat(r *big.Rat) (Fraction, error) {
	if !r.Num().IsInt64() {
		return Fraction{}, ErrOverflow.New("numerator of %s", r.RatString())
	}
	if !r.Denom().IsInt64() {
		return Fraction{}, ErrOverflow.New("denominator of %s", r.RatString())
	}
	return Reduce(r.Num().Int64(), r.Denom().Int64())
}

// Num returns the numerator of x.
func (x Fraction) Num() int64 {
	return x.m
}

// Den returns the denominator of x, which is always positive.
func (x Fraction) Den() int64 {
	return x.n + 1
}

// IsZero reports whether x == 0.
func (x Fraction) IsZero() bool {
	return x.m == 0
}

// IsOne reports whether x == 1.
func (x Fraction) IsOne() bool {
	return x == One
}

// IsInt reports whether the denominator of x is 1.
func (x Fraction) IsInt() bool {
	return x.n == 0
}

// Sign returns -1, 0 or 1.
func (x Fraction) Sign() int {
	switch {
	case x.m < 0:
		return -1
	case x.m > 0:
		return 1
	}
	return 0
}

// TryNeg returns -x. Negating a MinInt64 numerator fails with ErrOverflow.
func (x Fraction) TryNeg() (Fraction, error) {
	if x.m == math.MinInt64 {
		return Fraction{}, ErrOverflow.New("negating %s", x)
	}
	return Fraction{-x.m, x.n}, nil
}

// Neg is like TryNeg but panics on error.
func (x Fraction) Neg() Fraction {
	return must(x.TryNeg())
}

// TryInv returns 1/x. The reciprocal of zero fails with ErrInvalid.
func (x Fraction) TryInv() (Fraction, error) {
	if x.m == 0 {
		return Fraction{}, ErrInvalid.New("reciprocal of zero")
	}
	return Reduce(x.Den(), x.m)
}

// Inv is like TryInv but panics on error.
func (x Fraction) Inv() Fraction {
	return must(x.TryInv())
}

// n128 returns x as a rat128.N. A MinInt64 numerator has no rat128
// magnitude, so ok is false and callers take the big.Rat path.
func (x Fraction) n128() (v rat128.N, ok bool) {
	if x.m == math.MinInt64 {
		return rat128.N{}, false
	}
	return rat128.New(x.m, x.Den()), true
}

func fromN(v rat128.N) Fraction {
	return Fraction{v.Num(), v.Den() - 1}
}

// binary computes x op y in 128-bit intermediate precision, retrying with
// big.Rat when rat128 overflows. The exact result may still fit once reduced.
func binary(x, y Fraction, op func(rat128.N, rat128.N) (rat128.N, error),
	wide func(*big.Rat, *big.Rat, *big.Rat) *big.Rat) (Fraction, error) {
	if a, ok := x.n128(); ok {
		if b, ok := y.n128(); ok {
			if v, err := op(a, b); err == nil {
				return fromN(v), nil
			}
		}
	}
	return fromRat(wide(new(big.Rat), x.Rat(), y.Rat()))
}

// TryAdd returns x + y, or ErrOverflow.
func (x Fraction) TryAdd(y Fraction) (Fraction, error) {
	return binary(x, y, rat128.N.TryAdd, (*big.Rat).Add)
}

// Add is like TryAdd but panics on error.
func (x Fraction) Add(y Fraction) Fraction {
	return must(x.TryAdd(y))
}

// TrySub returns x - y, or ErrOverflow.
func (x Fraction) TrySub(y Fraction) (Fraction, error) {
	return binary(x, y, rat128.N.TrySub, (*big.Rat).Sub)
}

// Sub is like TrySub but panics on error.
func (x Fraction) Sub(y Fraction) Fraction {
	return must(x.TrySub(y))
}

// TryMul returns x * y, or ErrOverflow.
func (x Fraction) TryMul(y Fraction) (Fraction, error) {
	return binary(x, y, rat128.N.TryMul, (*big.Rat).Mul)
}

// Mul is like TryMul but panics on error.
func (x Fraction) Mul(y Fraction) Fraction {
	return must(x.TryMul(y))
}

// TryDiv returns x / y. Division by zero fails with ErrInvalid.
func (x Fraction) TryDiv(y Fraction) (Fraction, error) {
	if y.m == 0 {
		return Fraction{}, ErrInvalid.New("division of %s by zero", x)
	}
	return binary(x, y, rat128.N.TryDiv, (*big.Rat).Quo)
}

// Div is like TryDiv but panics on error.
func (x Fraction) Div(y Fraction) Fraction {
	return must(x.TryDiv(y))
}

// Pow returns x^n. Negative n inverts x first.
func (x Fraction) Pow(n int) (Fraction, error) {
	if n < 0 {
		inv, err := x.TryInv()
		if err != nil {
			return Fraction{}, err
		}
		if n == math.MinInt {
			return Fraction{}, ErrOverflow.New("exponent %d", n)
		}
		return inv.Pow(-n)
	}
	num, err := IntPow(x.Num(), n)
	if err != nil {
		return Fraction{}, err
	}
	den, err := IntPow(x.Den(), n)
	if err != nil {
		return Fraction{}, err
	}
	// coprime factors stay coprime
	return Reduce(num, den)
}

// Cmp returns -1 if x < y, 0 if x == y and 1 if x > y.
func (x Fraction) Cmp(y Fraction) int {
	if x == y {
		return 0
	}
	if a, ok := x.n128(); ok {
		if b, ok := y.n128(); ok {
			if d, err := a.TrySub(b); err == nil {
				return d.Sign()
			}
		}
	}
	return x.Rat().Cmp(y.Rat())
}

// Float64 returns the nearest float64 to x.
func (x Fraction) Float64() float64 {
	if v, ok := x.n128(); ok {
		f, _ := v.Float64()
		return f
	}
	return float64(x.m) / float64(x.Den())
}

// Rat returns x as a new big.Rat.
func (x Fraction) Rat() *big.Rat {
	return big.NewRat(x.Num(), x.Den())
}

// Big returns x as a BigFraction.
func (x Fraction) Big() BigFraction {
	return BigFraction{x.Rat()}
}

// String returns "m" for integers and "m/n" otherwise.
func (x Fraction) String() string {
	if x.n == 0 {
		return strconv.FormatInt(x.m, 10)
	}
	return fmt.Sprintf("%d/%d", x.Num(), x.Den())
}

// IntPow returns base^exp using square-and-multiply. Negative exponents fail
// with ErrInvalid; callers invert first. Results outside int64 fail with
// ErrOverflow.
func IntPow(base int64, exp int) (int64, error) {
	if exp < 0 {
		return 0, ErrInvalid.New("negative exponent %d", exp)
	}
	result := int64(1)
	b := base
	var err error
	for exp > 0 {
		if exp&1 == 1 {
			if result, err = mulCheck(result, b); err != nil {
				return 0, ErrOverflow.New("%d^%d", base, exp)
			}
		}
		exp >>= 1
		if exp > 0 {
			if b, err = mulCheck(b, b); err != nil {
				return 0, ErrOverflow.New("%d^%d", base, exp)
			}
		}
	}
	return result, nil
}

// mulCheck multiplies with 128-bit intermediate precision.
func mulCheck(a, b int64) (int64, error) {
	hi, lo := bits.Mul64(abs64u(a), abs64u(b))
	if hi != 0 {
		return 0, ErrOverflow.New("%d*%d", a, b)
	}
	if (a < 0) != (b < 0) {
		if lo > 1<<63 {
			return 0, ErrOverflow.New("%d*%d", a, b)
		}
		return -int64(lo), nil
	}
	if lo > math.MaxInt64 {
		return 0, ErrOverflow.New("%d*%d", a, b)
	}
	return int64(lo), nil
}

func must(x Fraction, err error) Fraction {
	if err != nil {
		panic(err)
	}
	return x
}
