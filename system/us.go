// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package system

import (
	"github.com/mikecarlton/units/unit"
)

// US builds the United States customary units on top of si and registers
// them. Every unit has an exact definition in SI units: the inch is 2.54 cm,
// the pound 0.45359237 kg and the gallon 231 cubic inches.
func US(ctx *unit.Context, si *System) (*System, error) {
	siBuilder := &builder{sys: si}
	m := siBuilder.lookup("m")
	kg := siBuilder.lookup("kg")
	k := siBuilder.lookup("K")
	if siBuilder.err != nil {
		return nil, siBuilder.err
	}

	b := newBuilder("US", ctx)
	scaled := func(u *unit.Unit, num, den int64) func() (*unit.Unit, error) {
		return func() (*unit.Unit, error) { return u.ScaleBy(ratio(num, den)) }
	}

	in := b.def("in", "inch", scaled(m, 254, 10000))
	ft := b.def("ft", "foot", scaled(in, 12, 1))
	b.def("yd", "yard", scaled(ft, 3, 1))
	b.def("mi", "mile", scaled(ft, 5280, 1))

	lb := b.def("lb", "pound", scaled(kg, 45359237, 100000000))
	b.def("oz", "ounce", scaled(lb, 1, 16))

	gal := b.def("gal", "gallon", func() (*unit.Unit, error) {
		in3, err := in.Pow(3)
		if err != nil {
			return nil, err
		}
		return in3.ScaleBy(ratio(231, 1))
	})
	qt := b.def("qt", "quart", scaled(gal, 1, 4))
	pt := b.def("pt", "pint", scaled(qt, 1, 2))
	cup := b.def("cup", "cup", scaled(pt, 1, 2))
	floz := b.def("fl oz", "fluid ounce", scaled(cup, 1, 8))

	degF := b.def("°F", "degree Fahrenheit", func() (*unit.Unit, error) {
		rankine, err := k.ScaleBy(ratio(5, 9))
		if err != nil {
			return nil, err
		}
		return rankine.Shift(ratio(45967, 100))
	})
	deltaF := b.def("°FΔ", "delta Fahrenheit", scaled(k, 5, 9))

	b.alias("floz", floz)
	b.alias("foz", floz)
	b.alias("degF", degF)
	b.alias("dF", deltaF)
	return b.register()
}
