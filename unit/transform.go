// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"github.com/mikecarlton/units/converter"
	"github.com/mikecarlton/units/rational"
)

// Transform returns the unit whose values convert to values of u with c.
// Transforming a transformed unit composes the converters onto the same
// parent instead of stacking wrappers. The identity converter returns u.
func (u *Unit) Transform(c converter.Converter) (*Unit, error) {
	return u.transform(c, "", "")
}

// WithPrefix returns u scaled by prefix p, e.g. km for kilo and m.
func (u *Unit) WithPrefix(p Prefix) (*Unit, error) {
	c, err := converter.PowerOfInt(p.Base, p.Exp)
	if err != nil {
		return nil, ErrInvalid.Wrap(err)
	}
	symbol, name := "", ""
	if u.symbol != "" {
		symbol = p.Symbol + u.symbol
	}
	if u.name != "" {
		name = p.Name + u.name
	}
	return u.transform(c, symbol, name)
}

// Shift returns u with its origin moved: a value x of the result is x+v in
// u, e.g. °C is K shifted by 273.15.
func (u *Unit) Shift(v rational.BigFraction) (*Unit, error) {
	return u.Transform(converter.Offset(v))
}

// ScaleBy returns u multiplied by f: a value x of the result is x·f in u.
// A zero factor fails with ErrInvalid.
func (u *Unit) ScaleBy(f rational.BigFraction) (*Unit, error) {
	c, err := converter.Scale(f)
	if err != nil {
		return nil, ErrInvalid.Wrap(err)
	}
	return u.Transform(c)
}

func (u *Unit) transform(c converter.Converter, symbol, name string) (*Unit, error) {
	parent, conv := u, c
	if u.kind == transformedKind {
		parent, conv = u.parent, c.Then(u.conv)
	}
	if conv.IsIdentity() && symbol == "" {
		return parent, nil
	}
	t := &Unit{
		ctx:      u.ctx,
		id:       u.ctx.nextID.Add(1),
		kind:     transformedKind,
		symbol:   symbol,
		name:     name,
		key:      "(" + parent.key + ")" + conv.Key(),
		dim:      parent.dim,
		toSystem: conv.Then(parent.toSystem),
		system:   parent.system,
		parent:   parent,
		conv:     conv,
	}
	return t, nil
}

// Labeled returns a copy of u carrying symbol and name, ready to be
// registered. A labeled product keeps its signature, so registering it makes
// it the canonical instance for that signature.
func (u *Unit) Labeled(symbol, name string) (*Unit, error) {
	if symbol == "" {
		return nil, ErrInvalid.New("label of %s without symbol", u)
	}
	l := &Unit{
		ctx:      u.ctx,
		id:       u.ctx.nextID.Add(1),
		symbol:   symbol,
		name:     name,
		dim:      u.dim,
		toSystem: u.toSystem,
		system:   u.system,
	}
	switch u.kind {
	case productKind:
		l.kind = productKind
		l.key = u.key
		l.elements = u.elements
		if u.isReference() {
			l.system = l
		}
	case transformedKind:
		l.kind = transformedKind
		l.key = idKey(l.id)
		l.parent, l.conv = u.parent, u.conv
	default:
		l.kind = transformedKind
		l.key = idKey(l.id)
		l.parent, l.conv = u, converter.Identity
	}
	return l, nil
}
