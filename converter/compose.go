// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package converter

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mikecarlton/units/rational"
)

// compose applies steps in order. It holds at least two steps and no two
// adjacent steps can be merged.
type compose struct {
	steps []Converter
}

func (c compose) Convert(x float64) float64 {
	for _, s := range c.steps {
		x = s.Convert(x)
	}
	return x
}

func (c compose) ConvertDecimal(x decimal.Decimal, mc rational.MathContext) (decimal.Decimal, error) {
	wc := mc.Working()
	var err error
	for _, s := range c.steps {
		if x, err = s.ConvertDecimal(x, wc); err != nil {
			return decimal.Zero, err
		}
	}
	return mc.Round(x), nil
}

// Inverse undoes the steps in reverse order.
func (c compose) Inverse() Converter {
	steps := make([]Converter, len(c.steps))
	for i, s := range c.steps {
		steps[len(steps)-1-i] = s.Inverse()
	}
	return compose{steps: steps}
}

func (c compose) IsLinear() bool {
	for _, s := range c.steps {
		if !s.IsLinear() {
			return false
		}
	}
	return true
}

func (c compose) IsIdentity() bool {
	for _, s := range c.steps {
		if !s.IsIdentity() {
			return false
		}
	}
	return true
}

func (c compose) Scale() (rational.BigFraction, error) {
	if !c.IsLinear() {
		return rational.BigFraction{}, ErrUnsupported.New("scale of non-linear converter %s", c)
	}
	result := rational.BigInt(1)
	for _, s := range c.steps {
		f, err := s.Scale()
		if err != nil {
			return rational.BigFraction{}, err
		}
		result = result.Mul(f)
	}
	return result, nil
}

func (c compose) Then(next Converter) Converter { return Then(c, next) }

func (c compose) Key() string {
	keys := make([]string, len(c.steps))
	for i, s := range c.steps {
		keys[i] = s.Key()
	}
	return strings.Join(keys, ";")
}

func (c compose) String() string {
	parts := make([]string, len(c.steps))
	for i, s := range c.steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, " then ")
}
