// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package converter implements the transform algebra behind unit
// conversion: invertible scalar functions that can be evaluated in float64
// or in arbitrary-precision decimal, and that simplify when composed.
//
// Composition merges what can be merged exactly: offsets add, rational
// scales multiply, powers of the same base add exponents and roots combine
// over a common index. Anything else is kept as an ordered sequence.
// Constructors return Identity (by reference) whenever the result is the
// identity function.
package converter

import (
	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"

	"github.com/mikecarlton/units/rational"
)

// Error classes returned by this package.
var (
	// ErrInvalid is rejected algebra input: a zero scale, a root index
	// below 1, a negative power or the root of a non-linear converter.
	ErrInvalid = errs.Class("invalid converter")
	// ErrUnsupported is returned when asking for the exact scale of a
	// converter that has none.
	ErrUnsupported = errs.Class("unsupported operation")
)

// Converter is an invertible function from a magnitude in one unit to the
// magnitude in another.
type Converter interface {
	// Convert applies the converter in float64 precision.
	Convert(x float64) float64
	// ConvertDecimal applies the converter with the precision of mc.
	ConvertDecimal(x decimal.Decimal, mc rational.MathContext) (decimal.Decimal, error)
	// Inverse returns the converter undoing this one.
	Inverse() Converter
	// IsLinear reports whether the converter is a pure multiplication.
	IsLinear() bool
	// IsIdentity reports whether the converter leaves values unchanged.
	IsIdentity() bool
	// Scale returns the exact multiplier of a linear converter. Non-linear
	// converters, and linear ones with an irrational multiplier, fail with
	// ErrUnsupported.
	Scale() (rational.BigFraction, error)
	// Then returns the converter applying this one and then next.
	Then(next Converter) Converter
	// Key is a value-based signature; converters with equal keys are equal.
	Key() string
	String() string
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Converter) bool {
	return a.Key() == b.Key()
}

// Then returns the composition applying first and then next, simplified.
func Then(first, next Converter) Converter {
	if first.IsIdentity() {
		return next
	}
	if next.IsIdentity() {
		return first
	}
	var out []Converter
	for _, s := range stepsOf(first) {
		out = push(out, s)
	}
	for _, s := range stepsOf(next) {
		out = push(out, s)
	}
	switch len(out) {
	case 0:
		return Identity
	case 1:
		return out[0]
	}
	return compose{steps: out}
}

// Chain composes converters left to right.
func Chain(cs ...Converter) Converter {
	result := Identity
	for _, c := range cs {
		result = Then(result, c)
	}
	return result
}

// Raise returns c raised to the rational exponent e: c is inverted for
// negative exponents, then raised to the numerator, then rooted by the
// denominator. The two steps are applied in that order and never fused.
func Raise(c Converter, e rational.Fraction) (Converter, error) {
	if e.IsZero() {
		return Identity, nil
	}
	if e.Sign() < 0 {
		c = c.Inverse()
		e = e.Neg()
	}
	n := e.Num()
	if n > int64(maxExponent) || e.Den() > int64(maxExponent) {
		return nil, ErrInvalid.New("exponent %s out of range", e)
	}
	p, err := Power(c, int(n))
	if err != nil || e.Den() == 1 {
		return p, err
	}
	return Root(p, int(e.Den()))
}

// maxExponent bounds the integer exponents and root indices accepted by
// Raise.
const maxExponent = 1 << 16

// stepsOf flattens a composition.
func stepsOf(c Converter) []Converter {
	if s, ok := c.(compose); ok {
		return s.steps
	}
	return []Converter{c}
}

// push appends s to a simplified sequence, merging it with the tail for as
// long as merges succeed.
func push(out []Converter, s Converter) []Converter {
	cur := s
	for len(out) > 0 {
		m, ok := merge(out[len(out)-1], cur)
		if !ok {
			break
		}
		out = out[:len(out)-1]
		if m.IsIdentity() {
			return out
		}
		cur = m
	}
	return append(out, cur)
}

// merge returns the single converter equivalent to a followed by b, if the
// algebra allows one.
func merge(a, b Converter) (Converter, bool) {
	if a.IsIdentity() {
		return b, true
	}
	if b.IsIdentity() {
		return a, true
	}
	if oa, ok := a.(offset); ok {
		if ob, ok := b.(offset); ok {
			return Offset(oa.v.Add(ob.v)), true
		}
		return nil, false
	}
	if pa, ok := a.(powerOfInt); ok {
		if pb, ok := b.(powerOfInt); ok && pa.base == pb.base {
			c, err := PowerOfInt(pa.base, pa.exp+pb.exp)
			return c, err == nil
		}
	}
	ra, ok := asRoot(a)
	if !ok {
		return nil, false
	}
	rb, ok := asRoot(b)
	if !ok {
		return nil, false
	}
	l := lcm(ra.n, rb.n)
	x, err := ra.a.Pow(l / ra.n)
	if err != nil {
		return nil, false
	}
	y, err := rb.a.Pow(l / rb.n)
	if err != nil {
		return nil, false
	}
	c, err := rootOf(x.Mul(y), l)
	return c, err == nil
}

// asRoot views an exactly scaled linear converter as a root of index 1.
func asRoot(c Converter) (root, bool) {
	switch v := c.(type) {
	case root:
		return v, true
	case ratio, scale, powerOfInt:
		s, err := c.Scale()
		if err != nil {
			return root{}, false
		}
		return root{a: s, n: 1}, true
	}
	return root{}, false
}

func lcm(a, b int) int {
	x, y := a, b
	for y != 0 {
		x, y = y, x%y
	}
	return a / x * b
}
