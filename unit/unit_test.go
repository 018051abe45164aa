// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mikecarlton/units/converter"
	"github.com/mikecarlton/units/dimension"
	"github.com/mikecarlton/units/rational"
	"github.com/mikecarlton/units/unit"
)

type fixture struct {
	ctx         *unit.Context
	m, kg, s, k *unit.Unit
	km, h, degC *unit.Unit
}

func newFixture(t *testing.T, opts ...unit.Option) fixture {
	t.Helper()
	ctx := unit.NewContext(opts...)
	base := func(symbol, name string, d *dimension.Base) *unit.Unit {
		u, err := ctx.NewBase(symbol, name, d)
		require.NoError(t, err)
		return u
	}
	f := fixture{
		ctx: ctx,
		m:   base("m", "metre", dimension.Length),
		kg:  base("kg", "kilogram", dimension.Mass),
		s:   base("s", "second", dimension.Time),
		k:   base("K", "kelvin", dimension.Temperature),
	}
	var err error
	f.km, err = f.m.WithPrefix(unit.Kilo)
	require.NoError(t, err)
	h, err := f.s.ScaleBy(rational.BigInt(3600))
	require.NoError(t, err)
	f.h, err = h.Labeled("h", "hour")
	require.NoError(t, err)
	c, err := f.k.Shift(rational.MustBig(27315, 100))
	require.NoError(t, err)
	f.degC, err = c.Labeled("°C", "degree Celsius")
	require.NoError(t, err)
	require.NoError(t, ctx.Register(f.m, f.kg, f.s, f.k, f.km, f.h, f.degC))
	return f
}

// must fails the test on error, e.g. must(t)(u.Multiply(v)).
func must(t *testing.T) func(*unit.Unit, error) *unit.Unit {
	return func(u *unit.Unit, err error) *unit.Unit {
		t.Helper()
		require.NoError(t, err)
		return u
	}
}

func (f fixture) newton(t *testing.T) *unit.Unit {
	t.Helper()
	s2 := must(t)(f.s.Pow(2))
	kgm := must(t)(f.kg.Multiply(f.m))
	return must(t)(kgm.Divide(s2))
}

func TestCanonicalProducts(t *testing.T) {
	f := newFixture(t)

	a := f.newton(t)
	s2 := must(t)(f.s.Pow(-2))
	b := must(t)(must(t)(f.m.Multiply(s2)).Multiply(f.kg))
	assert.Same(t, a, b)
	assert.True(t, a.IsSystemUnit())
	assert.Equal(t, "m·kg·s^-2", a.String())
	assert.Equal(t, "L·M·T^-2", a.Dimension().String())

	n, err := a.Labeled("N", "newton")
	require.NoError(t, err)
	require.NoError(t, f.ctx.Register(n))
	assert.Same(t, n, f.newton(t))
	assert.Same(t, n, must(t)(n.Multiply(f.ctx.One())))
	assert.Same(t, n, must(t)(f.ctx.One().Multiply(n)))
	assert.Same(t, n, must(t)(n.Divide(f.ctx.One())))

	// N·m expands N into its elements
	j := must(t)(n.Multiply(f.m))
	assert.Equal(t, "L^2·M·T^-2", j.Dimension().String())
	back := must(t)(j.Divide(f.m))
	assert.Same(t, n, back)
}

func TestAlgebraLaws(t *testing.T) {
	f := newFixture(t)
	units := []*unit.Unit{f.m, f.km, f.newton(t), f.h, must(t)(f.km.Divide(f.h))}
	for _, u := range units {
		t.Run(u.String(), func(t *testing.T) {
			sq := must(t)(u.Pow(2))
			assert.Equal(t, u.Key(), must(t)(sq.Root(2)).Key())
			if u.IsSystemUnit() {
				assert.Same(t, u, must(t)(sq.Root(2)))
			}
			assert.Same(t, f.ctx.One(), must(t)(u.Multiply(must(t)(u.Inverse()))))
			assert.Same(t, f.ctx.One(), must(t)(u.Pow(0)))
			assert.Same(t, u, must(t)(u.Pow(1)))
			assert.True(t, dimension.Equal(sq.Dimension(), u.Dimension().Pow(2)))
		})
	}

	_, err := f.m.Root(0)
	assert.True(t, unit.ErrInvalid.Has(err))
}

func TestOneKeepsNamedProducts(t *testing.T) {
	f := newFixture(t)
	dm := must(t)(f.m.WithPrefix(unit.Deci))
	litre := must(t)(must(t)(dm.Pow(3)).Labeled("L", "litre"))
	require.NoError(t, f.ctx.Register(litre))
	assert.False(t, litre.IsSystemUnit())

	one := f.ctx.One()
	assert.Same(t, litre, must(t)(litre.Multiply(one)))
	assert.Same(t, litre, must(t)(one.Multiply(litre)))
	assert.Same(t, litre, must(t)(litre.Divide(one)))
	assert.Equal(t, "L", must(t)(litre.Multiply(one)).Symbol())

	inv := must(t)(one.Divide(litre))
	assert.Equal(t, must(t)(litre.Inverse()).Key(), inv.Key())
	assert.Same(t, one, must(t)(one.Multiply(one)))
}

func TestIdentityProductsAreSystemUnits(t *testing.T) {
	f := newFixture(t)
	mm := must(t)(f.m.WithPrefix(unit.Milli))
	m2 := must(t)(f.m.Pow(2))

	kmmm := must(t)(f.km.Multiply(mm))
	assert.True(t, kmmm.SystemConverter().IsIdentity())
	assert.True(t, kmmm.IsSystemUnit())
	assert.Same(t, m2, kmmm)

	// a labeled copy of K converts to K with the identity
	dk := must(t)(f.k.Labeled("°CΔ", "delta Celsius"))
	assert.True(t, dk.IsSystemUnit())
	assert.Same(t, f.k, dk.SystemUnit())
	assert.Same(t, must(t)(f.k.Pow(2)), must(t)(dk.Pow(2)))

	// transformed units stay distinct
	assert.False(t, f.km.IsSystemUnit())
	assert.False(t, f.degC.IsSystemUnit())
}

func TestRationalExponents(t *testing.T) {
	f := newFixture(t)
	hz := must(t)(f.s.Inverse())
	sqrtHz := must(t)(hz.Root(2))
	assert.Equal(t, "T^-1/2", sqrtHz.Dimension().String())
	assert.True(t, sqrtHz.IsSystemUnit())

	perRootHour := must(t)(must(t)(f.h.Inverse()).Root(2))
	c, err := perRootHour.ConverterTo(sqrtHz)
	require.NoError(t, err)
	assert.InDelta(t, 1/60.0, c.Convert(1), 1e-15)

	_, err = f.degC.Root(2)
	assert.True(t, unit.ErrInvalid.Has(err))
	assert.True(t, converter.ErrInvalid.Has(err))
}

func TestConverterTo(t *testing.T) {
	f := newFixture(t)

	c, err := f.km.ConverterTo(f.m)
	require.NoError(t, err)
	assert.Equal(t, "*10^3", c.Key())
	assert.Equal(t, 1500.0, c.Convert(1.5))

	kmh := must(t)(f.km.Divide(f.h))
	ms := must(t)(f.m.Divide(f.s))
	c, err = kmh.ConverterTo(ms)
	require.NoError(t, err)
	assert.Equal(t, "*5/18", c.Key())
	back, err := ms.ConverterTo(kmh)
	require.NoError(t, err)
	assert.True(t, c.Then(back) == converter.Identity)

	d, err := c.ConvertDecimal(decimal.NewFromInt(90), rational.Decimal64)
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(25)), d.String())

	same, err := kmh.ConverterTo(kmh)
	require.NoError(t, err)
	assert.True(t, same == converter.Identity)

	_, err = f.km.ConverterTo(f.s)
	assert.True(t, unit.ErrIncommensurable.Has(err))
	_, err = kmh.Convert(1, f.kg)
	assert.True(t, unit.ErrIncommensurable.Has(err))
}

func TestTemperature(t *testing.T) {
	f := newFixture(t)
	rankine, err := f.k.ScaleBy(rational.MustBig(5, 9))
	require.NoError(t, err)
	degF, err := rankine.Shift(rational.MustBig(45967, 100))
	require.NoError(t, err)

	parent, conv := degF.Parent()
	assert.Same(t, f.k, parent)
	assert.False(t, conv.IsLinear())
	assert.Same(t, f.k, degF.SystemUnit())

	x, err := f.degC.Convert(100, f.k)
	require.NoError(t, err)
	assert.InDelta(t, 373.15, x, 1e-9)

	x, err = degF.Convert(212, f.degC)
	require.NoError(t, err)
	assert.InDelta(t, 100, x, 1e-9)

	c, err := degF.ConverterTo(f.degC)
	require.NoError(t, err)
	d, err := c.ConvertDecimal(decimal.RequireFromString("-40"), rational.Decimal64)
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(-40)), d.String())
}

func TestTransformCollapses(t *testing.T) {
	f := newFixture(t)
	mm := must(t)(f.km.ScaleBy(rational.MustBig(1, 1000000)))
	parent, conv := mm.Parent()
	assert.Same(t, f.m, parent)
	assert.Equal(t, "*1/1000", conv.Key())

	back := must(t)(mm.ScaleBy(rational.BigInt(1000)))
	assert.Same(t, f.m, back)

	same := must(t)(f.m.Transform(converter.Identity))
	assert.Same(t, f.m, same)

	_, err := f.m.ScaleBy(rational.BigFraction{})
	assert.True(t, unit.ErrInvalid.Has(err))
}

func TestAlternateUnits(t *testing.T) {
	f := newFixture(t)
	rad, err := f.ctx.NewAlternate("rad", "radian", f.ctx.One())
	require.NoError(t, err)
	sr, err := f.ctx.NewAlternate("sr", "steradian", f.ctx.One())
	require.NoError(t, err)

	assert.True(t, rad.IsSystemUnit())
	assert.True(t, rad.IsCompatible(f.ctx.One()))
	assert.NotSame(t, f.m, must(t)(rad.Multiply(f.m)))
	assert.NotEqual(t, must(t)(rad.Pow(2)).Key(), sr.Key())

	_, err = f.ctx.NewAlternate("x", "", f.km)
	assert.True(t, unit.ErrInvalid.Has(err))
}

func TestRegistry(t *testing.T) {
	f := newFixture(t)

	u, ok := f.ctx.Lookup("km")
	require.True(t, ok)
	assert.Same(t, f.km, u)
	u, ok = f.ctx.ByName("hour")
	require.True(t, ok)
	assert.Same(t, f.h, u)
	_, ok = f.ctx.Lookup("furlong")
	assert.False(t, ok)

	assert.NoError(t, f.ctx.Register(f.m))
	dup, err := f.s.Labeled("m", "")
	require.NoError(t, err)
	assert.True(t, unit.ErrInvalid.Has(f.ctx.Register(dup)))
	anon := must(t)(f.m.Multiply(f.s))
	assert.True(t, unit.ErrInvalid.Has(f.ctx.Register(anon)))

	// a name may not be taken twice within one call either
	a := must(t)(f.m.Labeled("ma", "twin"))
	b := must(t)(f.s.Labeled("sa", "twin"))
	assert.True(t, unit.ErrInvalid.Has(f.ctx.Register(a, b)))
	_, ok = f.ctx.Lookup("ma")
	assert.False(t, ok)
	_, ok = f.ctx.ByName("twin")
	assert.False(t, ok)

	symbols := make([]string, 0)
	for _, u := range f.ctx.Units() {
		symbols = append(symbols, u.Symbol())
	}
	assert.Equal(t, []string{"K", "h", "kg", "km", "m", "s", "°C"}, symbols)

	assert.True(t, f.ctx.Forget("km"))
	assert.False(t, f.ctx.Forget("km"))
	_, ok = f.ctx.Lookup("km")
	assert.False(t, ok)

	other := unit.NewContext()
	_, err = f.m.Multiply(other.One())
	assert.True(t, unit.ErrInvalid.Has(err))
}

func TestConcurrentCanonicalization(t *testing.T) {
	f := newFixture(t, unit.WithCanonicalCacheSize(8), unit.WithConverterCacheSize(2))

	const workers = 32
	results := make([]*unit.Unit, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			kgm, err := f.kg.Multiply(f.m)
			if err != nil {
				return err
			}
			s2, err := f.s.Pow(2)
			if err != nil {
				return err
			}
			results[i], err = kgm.Divide(s2)
			if err != nil {
				return err
			}
			_, err = f.km.ConverterTo(f.m)
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, u := range results[1:] {
		assert.Same(t, results[0], u)
	}
}

func TestPrefixes(t *testing.T) {
	ps := unit.Prefixes("dam")
	require.Len(t, ps, 2)
	assert.Equal(t, unit.Deka, ps[0])
	assert.Equal(t, unit.Deci, ps[1])

	ps = unit.Prefixes("Kib")
	require.NotEmpty(t, ps)
	assert.Equal(t, unit.Kibi, ps[0])

	assert.Empty(t, unit.Prefixes("m"))

	f := newFixture(t)
	mib, err := f.m.WithPrefix(unit.Mebi)
	require.NoError(t, err)
	assert.Equal(t, "Mim", mib.Symbol())
	assert.Equal(t, "mebimetre", mib.Name())
	x, err := mib.Convert(1, f.m)
	require.NoError(t, err)
	assert.Equal(t, 1048576.0, x)
}
