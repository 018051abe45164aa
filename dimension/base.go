// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package dimension

import "github.com/mikecarlton/units/rational"

// Base is a fundamental dimension: either one of the seven physical base
// dimensions or a named dimension that is algebraically independent of every
// other base.
type Base struct {
	symbol string
	name   string
	order  int
}

// named dimensions sort after the physical ones
const namedOrder = 100

// The physical base dimensions.
var (
	Length            = &Base{symbol: "L", name: "length", order: 0}
	Mass              = &Base{symbol: "M", name: "mass", order: 1}
	Time              = &Base{symbol: "T", name: "time", order: 2}
	ElectricCurrent   = &Base{symbol: "I", name: "electric current", order: 3}
	Temperature       = &Base{symbol: "Θ", name: "temperature", order: 4}
	AmountOfSubstance = &Base{symbol: "N", name: "amount of substance", order: 5}
	LuminousIntensity = &Base{symbol: "J", name: "luminous intensity", order: 6}
)

// Physical lists the physical base dimensions in canonical order.
var Physical = []*Base{Length, Mass, Time, ElectricCurrent, Temperature, AmountOfSubstance, LuminousIntensity}

// Named returns the application-defined base dimension identified by name.
// Dimensions created with the same name are equal.
func Named(name string) *Base {
	return &Base{symbol: "[" + name + "]", name: name, order: namedOrder}
}

// Symbol returns the symbol, e.g. "L", or "[name]" for named dimensions.
func (b *Base) Symbol() string { return b.symbol }

// Name returns the descriptive name, e.g. "length".
func (b *Base) Name() string { return b.name }

// IsPhysical reports whether b is one of the seven physical base dimensions.
func (b *Base) IsPhysical() bool { return b.order < namedOrder }

func (b *Base) less(o *Base) bool {
	if b.order != o.order {
		return b.order < o.order
	}
	return b.name < o.name
}

func (b *Base) Terms() []Term                  { return []Term{{Base: b, Exp: rational.One}} }
func (b *Base) Multiply(d Dimension) Dimension { return multiply(b, d) }
func (b *Base) Divide(d Dimension) Dimension   { return divide(b, d) }
func (b *Base) Pow(n int) Dimension            { return pow(b, n) }
func (b *Base) Root(n int) (Dimension, error)  { return root(b, n) }
func (b *Base) Inverse() Dimension             { return pow(b, -1) }
func (b *Base) Key() string                    { return b.symbol }
func (b *Base) String() string                 { return b.symbol }
