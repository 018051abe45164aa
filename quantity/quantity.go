// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package quantity is arithmetic on measured values. A Quantity pairs a
// decimal magnitude with a unit and is tagged with a Kind, so that a
// Quantity[Length] cannot be built from seconds. All unit algebra is
// delegated to the unit package.
//
// Absolute temperatures (units whose conversion has an offset, such as °C)
// follow the calculator's rules: two values in the same unit add naively,
// an absolute plus a delta gives an absolute in the same scale, and two
// absolutes in different scales cannot be added.
package quantity

import (
	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"

	"github.com/mikecarlton/units/dimension"
	"github.com/mikecarlton/units/rational"
	"github.com/mikecarlton/units/unit"
)

// Error classes returned by this package.
var (
	// ErrKind is a unit whose dimension does not match the quantity kind.
	ErrKind = errs.Class("wrong kind of unit")
	// ErrAffine is arithmetic that has no meaning on absolute values, such
	// as adding °C to °F or multiplying two temperatures.
	ErrAffine = errs.Class("invalid operation on absolute quantity")
)

// DefaultMathContext is the precision of new quantities.
var DefaultMathContext = rational.Decimal64

// Quantity is an immutable magnitude in a unit of kind K.
type Quantity[K Kind] struct {
	value decimal.Decimal
	unit  *unit.Unit
	mc    rational.MathContext
}

// New returns value in u, failing with ErrKind when u's dimension is not
// the dimension of K.
func New[K Kind](value decimal.Decimal, u *unit.Unit) (Quantity[K], error) {
	if d := dimensionOf[K](); d != nil && !dimension.Equal(d, u.Dimension()) {
		return Quantity[K]{}, ErrKind.New("%s has dimension %s, want %s", u, u.Dimension(), d)
	}
	return Quantity[K]{value: value, unit: u, mc: DefaultMathContext}, nil
}

// FromFloat is New for a float64 magnitude.
func FromFloat[K Kind](value float64, u *unit.Unit) (Quantity[K], error) {
	return New[K](decimal.NewFromFloat(value), u)
}

// As re-tags q as kind K, checking the dimension of its unit.
func As[K Kind, F Kind](q Quantity[F]) (Quantity[K], error) {
	r, err := New[K](q.value, q.unit)
	r.mc = q.mc
	return r, err
}

// WithMathContext returns q computing with the precision of mc.
func (q Quantity[K]) WithMathContext(mc rational.MathContext) Quantity[K] {
	q.mc = mc
	return q
}

func (q Quantity[K]) Value() decimal.Decimal { return q.value }
func (q Quantity[K]) Unit() *unit.Unit       { return q.unit }
func (q Quantity[K]) Float64() float64       { return q.value.InexactFloat64() }

// String returns the magnitude followed by the unit, e.g. "212 °F".
func (q Quantity[K]) String() string {
	if u := q.unit.String(); u != "1" {
		return q.value.String() + " " + u
	}
	return q.value.String()
}

// To converts q to u.
func (q Quantity[K]) To(u *unit.Unit) (Quantity[K], error) {
	if u == q.unit {
		return q, nil
	}
	c, err := q.unit.ConverterTo(u)
	if err != nil {
		return Quantity[K]{}, err
	}
	v, err := c.ConvertDecimal(q.value, q.mc)
	if err != nil {
		return Quantity[K]{}, err
	}
	return Quantity[K]{value: v, unit: u, mc: q.mc}, nil
}

// Add returns q+o in the unit of q, or in the unit of o when only o is
// absolute.
func (q Quantity[K]) Add(o Quantity[K]) (Quantity[K], error) {
	return q.combine(o, false)
}

// Sub returns q-o in the unit of q. Subtracting an absolute value from a
// delta fails with ErrAffine.
func (q Quantity[K]) Sub(o Quantity[K]) (Quantity[K], error) {
	return q.combine(o, true)
}

func (q Quantity[K]) combine(o Quantity[K], subtract bool) (Quantity[K], error) {
	apply := func(a, b decimal.Decimal) decimal.Decimal {
		if subtract {
			return q.mc.Round(a.Sub(b))
		}
		return q.mc.Round(a.Add(b))
	}

	if q.unit == o.unit {
		return Quantity[K]{value: apply(q.value, o.value), unit: q.unit, mc: q.mc}, nil
	}
	if !q.unit.IsCompatible(o.unit) {
		return Quantity[K]{}, unit.ErrIncommensurable.New("%s and %s", q.unit, o.unit)
	}

	switch qa, oa := Absolute(q.unit), Absolute(o.unit); {
	case qa && oa:
		return Quantity[K]{}, ErrAffine.New("%s and %s are on different scales", q.unit, o.unit)
	case qa:
		d, err := o.deltaIn(q.unit)
		if err != nil {
			return Quantity[K]{}, err
		}
		return Quantity[K]{value: apply(q.value, d), unit: q.unit, mc: q.mc}, nil
	case oa:
		if subtract {
			return Quantity[K]{}, ErrAffine.New("cannot subtract absolute %s from %s", o.unit, q.unit)
		}
		d, err := q.deltaIn(o.unit)
		if err != nil {
			return Quantity[K]{}, err
		}
		return Quantity[K]{value: o.mc.Round(o.value.Add(d)), unit: o.unit, mc: q.mc}, nil
	}

	r, err := o.To(q.unit)
	if err != nil {
		return Quantity[K]{}, err
	}
	return Quantity[K]{value: apply(q.value, r.value), unit: q.unit, mc: q.mc}, nil
}

// deltaIn returns the linear quantity q as a difference in the scale of the
// absolute unit u: 18 °FΔ is 10 in °C.
func (q Quantity[K]) deltaIn(u *unit.Unit) (decimal.Decimal, error) {
	d, err := q.unit.SystemConverter().ConvertDecimal(q.value, q.mc)
	if err != nil {
		return decimal.Decimal{}, err
	}
	from := u.SystemConverter().Inverse()
	top, err := from.ConvertDecimal(d, q.mc)
	if err != nil {
		return decimal.Decimal{}, err
	}
	origin, err := from.ConvertDecimal(decimal.Zero, q.mc)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return q.mc.Round(top.Sub(origin)), nil
}

// Scale returns q with its magnitude multiplied by f.
func (q Quantity[K]) Scale(f decimal.Decimal) Quantity[K] {
	return Quantity[K]{value: q.mc.Mul(q.value, f), unit: q.unit, mc: q.mc}
}

// Cmp compares q and o after converting o to the unit of q.
func (q Quantity[K]) Cmp(o Quantity[K]) (int, error) {
	r, err := o.To(q.unit)
	if err != nil {
		return 0, err
	}
	return q.value.Cmp(r.value), nil
}

// Absolute reports whether u measures from an offset origin, like °C, so
// that its values are positions rather than differences.
func Absolute(u *unit.Unit) bool {
	return !u.SystemConverter().IsLinear()
}

// Multiply returns the product of a and b. A dimensionless operand scales
// the other; otherwise absolute operands fail with ErrAffine.
func Multiply[A, B Kind](a Quantity[A], b Quantity[B]) (Quantity[Any], error) {
	one := a.unit.Context().One()
	switch {
	case b.unit == one:
		return Quantity[Any]{value: a.mc.Mul(a.value, b.value), unit: a.unit, mc: a.mc}, nil
	case a.unit == one:
		return Quantity[Any]{value: a.mc.Mul(a.value, b.value), unit: b.unit, mc: a.mc}, nil
	case Absolute(a.unit) || Absolute(b.unit):
		return Quantity[Any]{}, ErrAffine.New("cannot multiply %s by %s", a.unit, b.unit)
	}
	u, err := a.unit.Multiply(b.unit)
	if err != nil {
		return Quantity[Any]{}, err
	}
	return Quantity[Any]{value: a.mc.Mul(a.value, b.value), unit: u, mc: a.mc}, nil
}

// Divide returns the quotient of a and b. Dividing absolute values of the
// same dimension gives the plain ratio of their magnitudes.
func Divide[A, B Kind](a Quantity[A], b Quantity[B]) (Quantity[Any], error) {
	if b.value.IsZero() {
		return Quantity[Any]{}, rational.ErrInvalid.New("division by zero")
	}
	value := a.mc.Quo(a.value, b.value)
	one := a.unit.Context().One()
	switch {
	case b.unit == one:
		return Quantity[Any]{value: value, unit: a.unit, mc: a.mc}, nil
	case Absolute(a.unit) || Absolute(b.unit):
		if !a.unit.IsCompatible(b.unit) {
			return Quantity[Any]{}, ErrAffine.New("cannot divide %s by %s", a.unit, b.unit)
		}
		return Quantity[Any]{value: value, unit: one, mc: a.mc}, nil
	}
	u, err := a.unit.Divide(b.unit)
	if err != nil {
		return Quantity[Any]{}, err
	}
	return Quantity[Any]{value: value, unit: u, mc: a.mc}, nil
}
