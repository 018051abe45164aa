// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package system defines systems of units, collections of named units built
// on a unit.Context and registered with it.
package system

import (
	"sort"

	"github.com/mikecarlton/units/enumerable"
	"github.com/mikecarlton/units/rational"
	"github.com/mikecarlton/units/unit"
)

// System is a named collection of units. Lookup also resolves the
// system's aliases, such as "C" for "°C".
type System struct {
	name    string
	ctx     *unit.Context
	units   []*unit.Unit
	aliases map[string]*unit.Unit
}

// Name returns the system name.
func (s *System) Name() string { return s.name }

// Context returns the Context the system's units belong to.
func (s *System) Context() *unit.Context { return s.ctx }

// Units returns the units defined by the system, sorted by symbol.
func (s *System) Units() []*unit.Unit {
	out := append([]*unit.Unit(nil), s.units...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Symbol() < out[j].Symbol()
	})
	return out
}

// Lookup returns the unit with the given symbol or alias. Symbols registered
// on the Context by other systems resolve too.
func (s *System) Lookup(symbol string) (*unit.Unit, bool) {
	if u, ok := s.aliases[symbol]; ok {
		return u, true
	}
	return s.ctx.Lookup(symbol)
}

// Compatible returns the system's units that convert to and from u.
func (s *System) Compatible(u *unit.Unit) []*unit.Unit {
	return enumerable.Filter(s.Units(), u.IsCompatible)
}

// Aliases returns the alternative symbols of the system, sorted.
func (s *System) Aliases() []string {
	out := make([]string, 0, len(s.aliases))
	for a := range s.aliases {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// builder accumulates units for a system; the first error sticks and turns
// the remaining definitions into no-ops.
type builder struct {
	sys *System
	err error
}

func newBuilder(name string, ctx *unit.Context) *builder {
	return &builder{sys: &System{name: name, ctx: ctx, aliases: make(map[string]*unit.Unit)}}
}

// def labels the unit returned by build and adds it to the system.
func (b *builder) def(symbol, name string, build func() (*unit.Unit, error)) *unit.Unit {
	if b.err != nil {
		return nil
	}
	u, err := build()
	if err == nil {
		u, err = u.Labeled(symbol, name)
	}
	if err != nil {
		b.err = err
		return nil
	}
	b.sys.units = append(b.sys.units, u)
	return u
}

// add adds units that already carry their symbol.
func (b *builder) add(units ...*unit.Unit) {
	if b.err != nil {
		return
	}
	b.sys.units = append(b.sys.units, units...)
}

// lookup returns a unit already added to the system.
func (b *builder) lookup(symbol string) *unit.Unit {
	for _, u := range b.sys.units {
		if u.Symbol() == symbol {
			return u
		}
	}
	if b.err == nil {
		b.err = unit.ErrInvalid.New("%s has no unit %q", b.sys.name, symbol)
	}
	return nil
}

func (b *builder) alias(symbol string, u *unit.Unit) {
	if b.err != nil {
		return
	}
	b.sys.aliases[symbol] = u
}

// register publishes the system's units on its Context.
func (b *builder) register() (*System, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.sys.ctx.Register(b.sys.units...); err != nil {
		return nil, err
	}
	return b.sys, nil
}

// ratio is shorthand for exact definitions.
func ratio(num, den int64) rational.BigFraction {
	return rational.MustBig(num, den)
}

// factor is a unit raised to an integer exponent.
type factor struct {
	u   *unit.Unit
	exp int
}

// product returns a builder for the product of factors, e.g.
// product(factor{kg, 1}, factor{m, 1}, factor{s, -2}).
func product(fs ...factor) func() (*unit.Unit, error) {
	return func() (*unit.Unit, error) {
		result := fs[0].u.Context().One()
		for _, f := range fs {
			p, err := f.u.Pow(f.exp)
			if err != nil {
				return nil, err
			}
			if result, err = result.Multiply(p); err != nil {
				return nil, err
			}
		}
		return result, nil
	}
}
