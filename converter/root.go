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

// root multiplies by the nth root of a, where a has no exact rational nth
// root. approx caches the float64 root for the fast path.
type root struct {
	a      rational.BigFraction
	n      int
	approx float64
}

// Root returns the nth root of the converter c. n must be at least 1 and c
// must be linear, else ErrInvalid. Root(c, 1) is c, the root of Identity is
// Identity and exact roots collapse to a scale.
func Root(c Converter, n int) (Converter, error) {
	switch {
	case n < 1:
		return nil, ErrInvalid.New("root index %d of %s", n, c)
	case !c.IsLinear():
		return nil, ErrInvalid.New("root of non-linear converter %s", c)
	case n == 1:
		return c, nil
	case c.IsIdentity():
		return Identity, nil
	}
	if v, ok := c.(root); ok {
		return rootOf(v.a, v.n*n)
	}
	s, err := c.Scale()
	if err != nil {
		return nil, ErrInvalid.Wrap(err)
	}
	return rootOf(s, n)
}

// rootOf builds a^(1/n) in lowest terms: exact roots are extracted from the
// index until none remain.
func rootOf(a rational.BigFraction, n int) (Converter, error) {
	for d := 2; d <= n; d++ {
		for n%d == 0 {
			r, ok := a.NthRoot(d)
			if !ok {
				break
			}
			a, n = r, n/d
		}
	}
	if n == 1 {
		return Scale(a)
	}
	if a.Sign() < 0 && n%2 == 0 {
		return nil, ErrInvalid.New("even root %d of negative scale %s", n, a)
	}
	if a.IsZero() {
		return nil, ErrInvalid.New("zero scale")
	}
	approx := math.Pow(math.Abs(a.Float64()), 1/float64(n))
	if a.Sign() < 0 {
		approx = -approx
	}
	return root{a: a, n: n, approx: approx}, nil
}

func (r root) Convert(x float64) float64 { return x * r.approx }

func (r root) ConvertDecimal(x decimal.Decimal, mc rational.MathContext) (decimal.Decimal, error) {
	wc := mc.Working()
	v, err := rational.DecimalRoot(r.n, r.a.Abs().Decimal(wc), wc)
	if err != nil {
		return decimal.Zero, err
	}
	if r.a.Sign() < 0 {
		v = v.Neg()
	}
	return mc.Round(x.Mul(v)), nil
}

func (r root) Inverse() Converter {
	c, err := rootOf(reciprocal(r.a), r.n)
	if err != nil {
		panic(err)
	}
	return c
}

func (r root) IsLinear() bool                { return true }
func (r root) IsIdentity() bool              { return false }
func (r root) Then(next Converter) Converter { return Then(r, next) }
func (r root) Key() string                   { return fmt.Sprintf("*%s^1/%d", r.a, r.n) }
func (r root) String() string                { return fmt.Sprintf("x * (%s)^(1/%d)", r.a, r.n) }

func (r root) Scale() (rational.BigFraction, error) {
	return rational.BigFraction{}, ErrUnsupported.New("scale of %s is irrational", r)
}
