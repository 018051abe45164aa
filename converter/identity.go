// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package converter

import (
	"github.com/shopspring/decimal"

	"github.com/mikecarlton/units/rational"
)

type identity struct{}

// Identity is the converter that leaves every value unchanged. Every
// simplification that reduces to the identity returns this value, so it can
// be compared with ==.
var Identity Converter = identity{}

func (identity) Convert(x float64) float64 { return x }

func (identity) ConvertDecimal(x decimal.Decimal, _ rational.MathContext) (decimal.Decimal, error) {
	return x, nil
}

func (identity) Inverse() Converter                   { return Identity }
func (identity) IsLinear() bool                       { return true }
func (identity) IsIdentity() bool                     { return true }
func (identity) Scale() (rational.BigFraction, error) { return rational.BigInt(1), nil }
func (identity) Then(next Converter) Converter        { return next }
func (identity) Key() string                          { return "1" }
func (identity) String() string                       { return "identity" }
