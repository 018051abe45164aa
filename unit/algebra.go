// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"github.com/mikecarlton/units/converter"
	"github.com/mikecarlton/units/dimension"
	"github.com/mikecarlton/units/rational"
)

// Multiply returns u·v.
func (u *Unit) Multiply(v *Unit) (*Unit, error) {
	return productOf(u, rational.One, v, rational.One)
}

// Divide returns u/v.
func (u *Unit) Divide(v *Unit) (*Unit, error) {
	return productOf(u, rational.One, v, rational.Int(-1))
}

// Pow returns u^n.
func (u *Unit) Pow(n int) (*Unit, error) {
	return powerOf(u, rational.Int(int64(n)))
}

// Root returns the nth root of u. n must be positive.
func (u *Unit) Root(n int) (*Unit, error) {
	if n <= 0 {
		return nil, ErrInvalid.New("root index %d of %s", n, u)
	}
	return powerOf(u, rational.New(1, int64(n)))
}

// PowRational returns u^e.
func (u *Unit) PowRational(e rational.Fraction) (*Unit, error) {
	return powerOf(u, e)
}

// Inverse returns u^-1.
func (u *Unit) Inverse() (*Unit, error) {
	return powerOf(u, rational.Int(-1))
}

// productOf returns l^le · r^re. The operands are expanded into their
// elements, exponents are summed per operand and zero entries dropped. The
// result is looked up by signature before a new product is built, and
// products of system units are published as canonical.
func productOf(l *Unit, le rational.Fraction, r *Unit, re rational.Fraction) (*Unit, error) {
	if l.ctx != r.ctx {
		return nil, ErrInvalid.New("%s and %s belong to different contexts", l, r)
	}
	switch {
	case r == r.ctx.one:
		return powerOf(l, le)
	case l == l.ctx.one:
		return powerOf(r, re)
	}
	acc := newAccumulator()
	if err := acc.add(l, le); err != nil {
		return nil, err
	}
	if err := acc.add(r, re); err != nil {
		return nil, err
	}
	return l.ctx.resolve(acc.elements())
}

// powerOf returns u^e. An exponent of 0 returns One and 1 returns u.
func powerOf(u *Unit, e rational.Fraction) (*Unit, error) {
	if e.IsZero() {
		return u.ctx.one, nil
	}
	if e.IsOne() {
		return u, nil
	}
	acc := newAccumulator()
	if err := acc.add(u, e); err != nil {
		return nil, err
	}
	return u.ctx.resolve(acc.elements())
}

// resolve returns the unit for a sorted, merged decomposition.
func (ctx *Context) resolve(elements []Element) (*Unit, error) {
	switch {
	case len(elements) == 0:
		return ctx.one, nil
	case len(elements) == 1 && elements[0].Exp.IsOne():
		return elements[0].Unit, nil
	}
	key := signature(elements)
	if u, ok := ctx.canonicalFor(key); ok {
		ctx.metrics.canonicalHits.Inc()
		return u, nil
	}
	u, err := ctx.newProduct(elements, key)
	if err != nil {
		return nil, err
	}
	ctx.metrics.canonicalMisses.Inc()
	if u.kind == productKind && u.isReference() {
		return ctx.publish(u), nil
	}
	return u, nil
}

// newProduct builds a product unit. Nothing is published until the
// dimension and the system converter have both been computed. A product
// whose system converter is the identity is its system unit.
func (ctx *Context) newProduct(elements []Element, key string) (*Unit, error) {
	dim := dimension.None
	toSystem := converter.Identity
	allSystem := true
	for _, e := range elements {
		d, err := dimension.ProductOf(dim, rational.One, e.Unit.dim, e.Exp)
		if err != nil {
			return nil, err
		}
		dim = d
		c, err := converter.Raise(e.Unit.toSystem, e.Exp)
		if err != nil {
			return nil, ErrInvalid.Wrap(err)
		}
		toSystem = toSystem.Then(c)
		allSystem = allSystem && e.Unit.isReference()
	}
	u := &Unit{
		ctx:      ctx,
		id:       ctx.nextID.Add(1),
		kind:     productKind,
		key:      key,
		dim:      ctx.intern(dim),
		toSystem: toSystem,
		elements: elements,
	}
	if allSystem {
		u.system = u
		return u, nil
	}
	system, err := ctx.systemOf(elements)
	if err != nil {
		return nil, err
	}
	if toSystem.IsIdentity() {
		return system, nil
	}
	u.system = system
	return u, nil
}

// systemOf returns the product of the system units of elements.
func (ctx *Context) systemOf(elements []Element) (*Unit, error) {
	acc := newAccumulator()
	for _, e := range elements {
		if err := acc.add(e.Unit.system, e.Exp); err != nil {
			return nil, err
		}
	}
	return ctx.resolve(acc.elements())
}

// accumulator merges scaled elements additively by operand key.
type accumulator struct {
	exps  map[string]rational.Fraction
	units map[string]*Unit
}

func newAccumulator() *accumulator {
	return &accumulator{
		exps:  make(map[string]rational.Fraction),
		units: make(map[string]*Unit),
	}
}

func (a *accumulator) add(u *Unit, scale rational.Fraction) error {
	for _, e := range u.Elements() {
		x, err := e.Exp.TryMul(scale)
		if err != nil {
			return err
		}
		k := e.Unit.key
		sum, err := a.exps[k].TryAdd(x)
		if err != nil {
			return err
		}
		a.exps[k] = sum
		if _, ok := a.units[k]; !ok {
			a.units[k] = e.Unit
		}
	}
	return nil
}

func (a *accumulator) elements() []Element {
	out := make([]Element, 0, len(a.exps))
	for k, e := range a.exps {
		if e.IsZero() {
			continue
		}
		out = append(out, Element{Unit: a.units[k], Exp: e})
	}
	sortElements(out)
	return out
}
