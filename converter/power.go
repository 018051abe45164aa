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

// power applies c n times.
type power struct {
	c Converter
	n int
}

// Power returns the converter applying c n times (n >= 0). Power(c, 0) is
// Identity and Power(c, 1) is c. Offsets and exactly scaled converters fold
// into a single converter of the same kind.
func Power(c Converter, n int) (Converter, error) {
	switch {
	case n < 0:
		return nil, ErrInvalid.New("negative power %d of %s", n, c)
	case n == 0 || c.IsIdentity():
		return Identity, nil
	case n == 1:
		return c, nil
	}
	switch v := c.(type) {
	case offset:
		return Offset(v.v.Mul(rational.BigInt(int64(n)))), nil
	case powerOfInt:
		if v.exp > math.MaxInt32 || v.exp < math.MinInt32 || n > math.MaxInt32 {
			return nil, rational.ErrOverflow.New("%s to the power %d", v, n)
		}
		return PowerOfInt(v.base, v.exp*n)
	case ratio, scale:
		s, _ := c.Scale()
		p, err := s.Pow(n)
		if err != nil {
			return nil, err
		}
		return Scale(p)
	case root:
		p, err := v.a.Pow(n)
		if err != nil {
			return nil, err
		}
		return rootOf(p, v.n)
	case power:
		return Power(v.c, v.n*n)
	}
	return power{c: c, n: n}, nil
}

func (p power) Convert(x float64) float64 {
	for i := 0; i < p.n; i++ {
		x = p.c.Convert(x)
	}
	return x
}

func (p power) ConvertDecimal(x decimal.Decimal, mc rational.MathContext) (decimal.Decimal, error) {
	wc := mc.Working()
	var err error
	for i := 0; i < p.n; i++ {
		if x, err = p.c.ConvertDecimal(x, wc); err != nil {
			return decimal.Zero, err
		}
	}
	return mc.Round(x), nil
}

func (p power) Inverse() Converter            { return power{c: p.c.Inverse(), n: p.n} }
func (p power) IsLinear() bool                { return p.c.IsLinear() }
func (p power) IsIdentity() bool              { return false }
func (p power) Then(next Converter) Converter { return Then(p, next) }
func (p power) Key() string                   { return fmt.Sprintf("(%s)^%d", p.c.Key(), p.n) }
func (p power) String() string                { return fmt.Sprintf("(%s)^%d", p.c, p.n) }

func (p power) Scale() (rational.BigFraction, error) {
	if !p.IsLinear() {
		return rational.BigFraction{}, ErrUnsupported.New("scale of non-linear converter %s", p)
	}
	s, err := p.c.Scale()
	if err != nil {
		return rational.BigFraction{}, err
	}
	return s.Pow(p.n)
}
