// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package parse_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/errs"

	"github.com/mikecarlton/units/parse"
	"github.com/mikecarlton/units/system"
	"github.com/mikecarlton/units/unit"
)

func parser(t testing.TB) (*unit.Context, *parse.Parser) {
	t.Helper()
	ctx := unit.NewContext()
	si, err := system.SI(ctx)
	require.NoError(t, err)
	us, err := system.US(ctx, si)
	require.NoError(t, err)
	return ctx, parse.New(ctx, si, us)
}

func TestParseNamedProducts(t *testing.T) {
	ctx, p := parser(t)
	n, _ := ctx.Lookup("N")
	hz, _ := ctx.Lookup("Hz")

	tests := []struct {
		input string
		want  *unit.Unit
	}{
		{"kg·m/s^2", n},
		{"kg*m/s^2", n},
		{"kg.m.s^-2", n},
		{"m·kg/s·s", n},
		{"/s", hz},
		{"s^-1", hz},
		{"num", ctx.One()},
		{"1", ctx.One()},
		{"m/m", ctx.One()},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := p.Parse(test.input)
			require.NoError(t, err)
			assert.Same(t, test.want, got)
		})
	}
}

func TestParseKeepsNamedUnits(t *testing.T) {
	ctx, p := parser(t)
	tests := []struct {
		input  string
		symbol string
	}{
		{"L", "L"},
		{"gal", "gal"},
		{"N", "N"},
		{"°C", "°C"},
		{"h", "h"},
		{"L^1", "L"},
		{"1·L", "L"},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			named, ok := ctx.Lookup(test.symbol)
			require.True(t, ok)

			got, err := p.Parse(test.input)
			require.NoError(t, err)
			assert.Same(t, named, got)
			assert.Equal(t, test.symbol, parse.Format(got))
		})
	}
}

func TestParseExponents(t *testing.T) {
	ctx, p := parser(t)
	m, _ := ctx.Lookup("m")

	half, err := p.Parse("m^(1/2)")
	require.NoError(t, err)
	bare, err := p.Parse("m^1/2")
	require.NoError(t, err)
	assert.Equal(t, half.Key(), bare.Key())
	assert.Equal(t, "m^(1/2)", parse.Format(half))

	squared, err := half.Pow(2)
	require.NoError(t, err)
	assert.Same(t, m, squared)

	// a '/' after an integer exponent followed by a symbol is a separator
	area, err := p.Parse("m^2/s")
	require.NoError(t, err)
	assert.Equal(t, "m^2/s", parse.Format(area))

	// everything after '/' is in the denominator
	jkk, err := p.Parse("J/kg·K")
	require.NoError(t, err)
	j, _ := ctx.Lookup("J")
	kg, _ := ctx.Lookup("kg")
	k, _ := ctx.Lookup("K")
	kgk, err := kg.Multiply(k)
	require.NoError(t, err)
	want, err := j.Divide(kgk)
	require.NoError(t, err)
	assert.Same(t, want, jkk)
}

func TestParsePrefixes(t *testing.T) {
	ctx, p := parser(t)
	m, _ := ctx.Lookup("m")
	s, _ := ctx.Lookup("s")

	tests := []struct {
		input  string
		target *unit.Unit
		value  float64
	}{
		{"km", m, 1000},
		{"mm", m, 0.001},
		{"dam", m, 10},
		{"µm", m, 1e-6},
		{"um", m, 1e-6},
		{"ms", s, 0.001},
		{"min", s, 60},
		{"1000·m", m, 1000},
		{"m/1000", m, 0.001},
		{"2.5e1·s", s, 25},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			u, err := p.Parse(test.input)
			require.NoError(t, err)
			got, err := u.Convert(1, test.target)
			require.NoError(t, err)
			assert.InDelta(t, test.value, got, 1e-12)
		})
	}

	cd, err := p.Resolve("cd")
	require.NoError(t, err)
	assert.Equal(t, "candela", cd.Name())
	km, err := p.Resolve("km")
	require.NoError(t, err)
	assert.Equal(t, "kilometre", km.Name())
}

func TestParseAliases(t *testing.T) {
	ctx, p := parser(t)
	degC, _ := ctx.Lookup("°C")
	for _, input := range []string{"°C", "degC"} {
		u, err := p.Parse(input)
		require.NoError(t, err)
		assert.Same(t, degC, u, input)
	}

	speed, err := p.Parse("mi/h")
	require.NoError(t, err)
	ms, err := p.Parse("m/s")
	require.NoError(t, err)
	got, err := speed.Convert(1, ms)
	require.NoError(t, err)
	assert.InDelta(t, 0.44704, got, 1e-12)
}

func TestParseErrors(t *testing.T) {
	_, p := parser(t)
	tests := []struct {
		input string
		class *errs.Class
	}{
		{"", &parse.ErrSyntax},
		{"m/s/s", &parse.ErrSyntax},
		{"m·", &parse.ErrSyntax},
		{"m s", &parse.ErrSyntax},
		{"m^0", &parse.ErrSyntax},
		{"m^1/0", &parse.ErrSyntax},
		{"0·m", &parse.ErrSyntax},
		{"m/0", &parse.ErrSyntax},
		{"furlong", &parse.ErrUnknownUnit},
		{"kg·furlong", &parse.ErrUnknownUnit},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			u, err := p.Parse(test.input)
			assert.Nil(t, u)
			assert.True(t, test.class.Has(err), "got %v", err)
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	_, p := parser(t)
	for _, input := range []string{
		"km/h", "m^2/s", "/s·m", "kg·m^(1/2)/s^(3/2)", "ft^3/lb", "mol/L",
		"W/m^2·K", "N·m", "Ω·m", "µs^-2", "°C", "rad/s",
	} {
		t.Run(input, func(t *testing.T) {
			u, err := p.Parse(input)
			require.NoError(t, err)
			formatted := parse.Format(u)
			v, err := p.Parse(formatted)
			require.NoError(t, err, "reparsing %q", formatted)
			assert.Equal(t, u.Key(), v.Key(), "%q formatted as %q", input, formatted)
			assert.True(t, u.IsCompatible(v))
		})
	}
}

func ExampleFormat() {
	ctx := unit.NewContext()
	si, _ := system.SI(ctx)
	p := parse.New(ctx, si)

	for _, input := range []string{"kg·m/s^2", "km/h", "/s", "m^(1/2)"} {
		u, err := p.Parse(input)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(parse.Format(u))
	}
	// Output:
	// N
	// km/h
	// Hz
	// m^(1/2)
}
