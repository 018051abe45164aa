// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package converter

import (
	"github.com/shopspring/decimal"

	"github.com/mikecarlton/units/rational"
)

// offset adds a constant.
type offset struct {
	v rational.BigFraction
	f float64
}

// Offset returns the converter x -> x + v. Offset(0) is Identity.
func Offset(v rational.BigFraction) Converter {
	if v.IsZero() {
		return Identity
	}
	return offset{v: v, f: v.Float64()}
}

func (o offset) Convert(x float64) float64 { return x + o.f }

func (o offset) ConvertDecimal(x decimal.Decimal, mc rational.MathContext) (decimal.Decimal, error) {
	return mc.Round(x.Add(o.v.Decimal(mc.Working()))), nil
}

func (o offset) Inverse() Converter { return Offset(o.v.Neg()) }
func (o offset) IsLinear() bool     { return false }
func (o offset) IsIdentity() bool   { return false }

func (o offset) Scale() (rational.BigFraction, error) {
	return rational.BigFraction{}, ErrUnsupported.New("scale of non-linear converter %s", o)
}

func (o offset) Then(next Converter) Converter { return Then(o, next) }
func (o offset) Key() string                   { return "+" + o.v.String() }

func (o offset) String() string {
	if o.v.Sign() < 0 {
		return "x - " + o.v.Abs().String()
	}
	return "x + " + o.v.String()
}
