// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package converter

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mikecarlton/units/rational"
)

// ratio multiplies by a machine-width fraction.
type ratio struct {
	f rational.Fraction
}

// scale multiplies by an arbitrary-precision fraction that does not fit a
// ratio.
type scale struct {
	f  rational.BigFraction
	fl float64
}

// Ratio returns the converter x -> x * num/den. A zero multiplier fails with
// ErrInvalid and a multiplier of 1 returns Identity.
func Ratio(num, den int64) (Converter, error) {
	if num == 0 {
		return nil, ErrInvalid.New("zero scale %d/%d", num, den)
	}
	f, err := rational.Reduce(num, den)
	if err != nil {
		return nil, err
	}
	if f.IsOne() {
		return Identity, nil
	}
	return ratio{f: f}, nil
}

// Scale returns the converter x -> x * f. A zero multiplier fails with
// ErrInvalid and a multiplier of 1 returns Identity. Multipliers that fit in
// 64 bits use the ratio form.
func Scale(f rational.BigFraction) (Converter, error) {
	if f.IsZero() {
		return nil, ErrInvalid.New("zero scale")
	}
	if f.IsOne() {
		return Identity, nil
	}
	if r, err := f.Fraction(); err == nil {
		return ratio{f: r}, nil
	}
	return scale{f: f, fl: f.Float64()}, nil
}

// MustScale is like Scale but panics on error; for package-level tables.
func MustScale(f rational.BigFraction) Converter {
	c, err := Scale(f)
	if err != nil {
		panic(err)
	}
	return c
}

func (r ratio) Convert(x float64) float64 {
	if r.f.IsInt() {
		return x * float64(r.f.Num())
	}
	return x * float64(r.f.Num()) / float64(r.f.Den())
}

func (r ratio) ConvertDecimal(x decimal.Decimal, mc rational.MathContext) (decimal.Decimal, error) {
	num := x.Mul(decimal.NewFromInt(r.f.Num()))
	if r.f.IsInt() {
		return mc.Round(num), nil
	}
	return mc.Quo(num, decimal.NewFromInt(r.f.Den())), nil
}

func (r ratio) Inverse() Converter {
	return MustScale(reciprocal(r.f.Big()))
}

func (r ratio) IsLinear() bool                       { return true }
func (r ratio) IsIdentity() bool                     { return false }
func (r ratio) Scale() (rational.BigFraction, error) { return r.f.Big(), nil }
func (r ratio) Then(next Converter) Converter        { return Then(r, next) }
func (r ratio) Key() string                          { return "*" + r.f.String() }
func (r ratio) String() string                       { return "x * " + r.f.String() }

func (s scale) Convert(x float64) float64 { return x * s.fl }

func (s scale) ConvertDecimal(x decimal.Decimal, mc rational.MathContext) (decimal.Decimal, error) {
	num := x.Mul(decimal.NewFromBigInt(s.f.Num(), 0))
	if s.f.IsInt() {
		return mc.Round(num), nil
	}
	return mc.Quo(num, decimal.NewFromBigInt(s.f.Den(), 0)), nil
}

func (s scale) Inverse() Converter {
	return MustScale(reciprocal(s.f))
}

func (s scale) IsLinear() bool                       { return true }
func (s scale) IsIdentity() bool                     { return false }
func (s scale) Scale() (rational.BigFraction, error) { return s.f, nil }
func (s scale) Then(next Converter) Converter        { return Then(s, next) }
func (s scale) Key() string                          { return "*" + s.f.String() }
func (s scale) String() string                       { return "x * " + s.f.String() }

// powerOfInt multiplies by base^exp; it is the converter of prefixes.
type powerOfInt struct {
	base int
	exp  int
}

// PowerOfInt returns the converter x -> x * base^exp. The base must be at
// least 2; an exponent of 0 returns Identity.
func PowerOfInt(base, exp int) (Converter, error) {
	if base < 2 {
		return nil, ErrInvalid.New("power base %d", base)
	}
	if exp == 0 {
		return Identity, nil
	}
	return powerOfInt{base: base, exp: exp}, nil
}

func (p powerOfInt) Convert(x float64) float64 {
	// divide for negative exponents so that 10^-3 stays exact where possible
	if p.exp < 0 {
		return x / math.Pow(float64(p.base), float64(-p.exp))
	}
	return x * math.Pow(float64(p.base), float64(p.exp))
}

func (p powerOfInt) ConvertDecimal(x decimal.Decimal, mc rational.MathContext) (decimal.Decimal, error) {
	if p.base == 10 {
		return mc.Round(x.Shift(int32(p.exp))), nil
	}
	s, err := p.Scale()
	if err != nil {
		return decimal.Zero, err
	}
	return MustScale(s).ConvertDecimal(x, mc)
}

func (p powerOfInt) Inverse() Converter            { return powerOfInt{base: p.base, exp: -p.exp} }
func (p powerOfInt) IsLinear() bool                { return true }
func (p powerOfInt) IsIdentity() bool              { return false }
func (p powerOfInt) Then(next Converter) Converter { return Then(p, next) }
func (p powerOfInt) Key() string                   { return fmt.Sprintf("*%d^%d", p.base, p.exp) }
func (p powerOfInt) String() string                { return fmt.Sprintf("x * %d^%d", p.base, p.exp) }

func (p powerOfInt) Scale() (rational.BigFraction, error) {
	return rational.BigInt(int64(p.base)).Pow(p.exp)
}

// reciprocal inverts a multiplier already known to be nonzero.
func reciprocal(f rational.BigFraction) rational.BigFraction {
	r, err := f.Inv()
	if err != nil {
		panic(err)
	}
	return r
}
