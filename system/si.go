// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package system

import (
	"github.com/mikecarlton/units/dimension"
	"github.com/mikecarlton/units/unit"
)

// SI builds the International System of Units on ctx and registers it: the
// seven base units, the radian and steradian, the named coherent derived
// units and the accepted non-SI units of everyday use.
func SI(ctx *unit.Context) (*System, error) {
	b := newBuilder("SI", ctx)
	base := func(symbol, name string, d *dimension.Base) *unit.Unit {
		if b.err != nil {
			return nil
		}
		u, err := ctx.NewBase(symbol, name, d)
		if err != nil {
			b.err = err
			return nil
		}
		b.add(u)
		return u
	}
	alternate := func(symbol, name string) *unit.Unit {
		if b.err != nil {
			return nil
		}
		u, err := ctx.NewAlternate(symbol, name, ctx.One())
		if err != nil {
			b.err = err
			return nil
		}
		b.add(u)
		return u
	}

	m := base("m", "metre", dimension.Length)
	kg := base("kg", "kilogram", dimension.Mass)
	s := base("s", "second", dimension.Time)
	a := base("A", "ampere", dimension.ElectricCurrent)
	k := base("K", "kelvin", dimension.Temperature)
	mol := base("mol", "mole", dimension.AmountOfSubstance)
	cd := base("cd", "candela", dimension.LuminousIntensity)

	alternate("rad", "radian")
	sr := alternate("sr", "steradian")

	b.def("g", "gram", func() (*unit.Unit, error) { return kg.ScaleBy(ratio(1, 1000)) })

	b.def("Hz", "hertz", product(factor{s, -1}))
	n := b.def("N", "newton", product(factor{kg, 1}, factor{m, 1}, factor{s, -2}))
	b.def("Pa", "pascal", product(factor{n, 1}, factor{m, -2}))
	j := b.def("J", "joule", product(factor{n, 1}, factor{m, 1}))
	w := b.def("W", "watt", product(factor{j, 1}, factor{s, -1}))
	c := b.def("C", "coulomb", product(factor{a, 1}, factor{s, 1}))
	v := b.def("V", "volt", product(factor{w, 1}, factor{a, -1}))
	b.def("F", "farad", product(factor{c, 1}, factor{v, -1}))
	b.def("Ω", "ohm", product(factor{v, 1}, factor{a, -1}))
	b.def("S", "siemens", product(factor{a, 1}, factor{v, -1}))
	wb := b.def("Wb", "weber", product(factor{v, 1}, factor{s, 1}))
	b.def("T", "tesla", product(factor{wb, 1}, factor{m, -2}))
	b.def("H", "henry", product(factor{wb, 1}, factor{a, -1}))
	lm := b.def("lm", "lumen", product(factor{cd, 1}, factor{sr, 1}))
	b.def("lx", "lux", product(factor{lm, 1}, factor{m, -2}))
	b.def("Bq", "becquerel", product(factor{s, -1}))
	b.def("Gy", "gray", product(factor{j, 1}, factor{kg, -1}))
	b.def("Sv", "sievert", product(factor{j, 1}, factor{kg, -1}))
	b.def("kat", "katal", product(factor{mol, 1}, factor{s, -1}))

	degC := b.def("°C", "degree Celsius", func() (*unit.Unit, error) { return k.Shift(ratio(27315, 100)) })
	deltaC := b.def("°CΔ", "delta Celsius", func() (*unit.Unit, error) { return k, nil })
	l := b.def("L", "litre", func() (*unit.Unit, error) {
		dm, err := m.WithPrefix(unit.Deci)
		if err != nil {
			return nil, err
		}
		return dm.Pow(3)
	})
	b.def("min", "minute", func() (*unit.Unit, error) { return s.ScaleBy(ratio(60, 1)) })
	h := b.def("h", "hour", func() (*unit.Unit, error) { return s.ScaleBy(ratio(3600, 1)) })
	b.def("d", "day", func() (*unit.Unit, error) { return s.ScaleBy(ratio(86400, 1)) })

	b.alias("degC", degC)
	b.alias("dC", deltaC)
	b.alias("l", l)
	b.alias("hr", h)
	b.alias("Ohm", b.lookup("Ω"))
	return b.register()
}
