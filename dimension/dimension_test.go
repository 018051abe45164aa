// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package dimension_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikecarlton/units/dimension"
	"github.com/mikecarlton/units/rational"
)

var (
	L = dimension.Length
	M = dimension.Mass
	T = dimension.Time
)

func TestProductString(t *testing.T) {
	tests := []struct {
		name string
		dim  dimension.Dimension
		want string
	}{
		{"length", L, "L"},
		{"speed", L.Divide(T), "L·T^-1"},
		{"force", M.Multiply(L).Divide(T.Pow(2)), "L·M·T^-2"},
		{"order independent", T.Pow(-2).Multiply(M).Multiply(L), "L·M·T^-2"},
		{"none", L.Divide(L), "1"},
		{"named", dimension.Named("information").Divide(T), "T^-1·[information]"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, test.dim.String())
		})
	}
}

func TestCanonicalForms(t *testing.T) {
	// a single base with exponent 1 collapses to the base itself
	d := L.Multiply(T).Divide(T)
	assert.Same(t, L, d)

	assert.Same(t, dimension.None, L.Pow(0))
	assert.Same(t, dimension.None, L.Multiply(L.Inverse()))

	p := L.Pow(2)
	assert.Same(t, p, mustPower(t, p, rational.One))
}

func TestLaws(t *testing.T) {
	dims := []dimension.Dimension{
		L,
		M.Multiply(L).Divide(T.Pow(2)),
		L.Pow(3),
		dimension.None,
		dimension.Named("currency").Multiply(dimension.Temperature),
		mustRoot(t, L, 2),
	}

	for _, d := range dims {
		t.Run(d.String(), func(t *testing.T) {
			sq := d.Pow(2)
			back, err := sq.Root(2)
			require.NoError(t, err)
			assert.True(t, dimension.Equal(d, back), "pow(2).root(2) = %s", back)

			assert.True(t, dimension.Equal(dimension.None, d.Multiply(d.Pow(-1))))
			assert.True(t, dimension.Equal(d.Inverse(), dimension.None.Divide(d)))

			// commutativity and associativity
			other := dimension.ElectricCurrent.Divide(L)
			assert.Equal(t, d.Multiply(other).Key(), other.Multiply(d).Key())
			assert.Equal(t,
				d.Multiply(other).Multiply(T).Key(),
				d.Multiply(other.Multiply(T)).Key())
		})
	}
}

func TestRationalExponents(t *testing.T) {
	d, err := dimension.ProductOf(L, rational.New(1, 2), M, rational.New(-3, 4))
	require.NoError(t, err)
	assert.Equal(t, "L^1/2·M^-3/4", d.String())

	exps := dimension.Exponents(d)
	assert.Equal(t, rational.New(1, 2), exps["L"])
	assert.Equal(t, rational.New(-3, 4), exps["M"])

	sq, err := dimension.PowerOf(d, rational.Int(4))
	require.NoError(t, err)
	assert.Equal(t, "L^2·M^-3", sq.String())
}

func TestRootErrors(t *testing.T) {
	for _, n := range []int{0, -2} {
		_, err := L.Root(n)
		assert.True(t, dimension.ErrInvalid.Has(err), "root(%d): %v", n, err)
	}
}

func TestNamedDimensions(t *testing.T) {
	a := dimension.Named("information")
	b := dimension.Named("information")
	assert.True(t, dimension.Equal(a, b))
	assert.False(t, dimension.Equal(a, dimension.Named("currency")))
	assert.False(t, a.IsPhysical())
	assert.True(t, dimension.Equal(dimension.None, a.Divide(b)))
}

func mustRoot(t *testing.T, d dimension.Dimension, n int) dimension.Dimension {
	t.Helper()
	r, err := d.Root(n)
	require.NoError(t, err)
	return r
}

func mustPower(t *testing.T, d dimension.Dimension, e rational.Fraction) dimension.Dimension {
	t.Helper()
	r, err := dimension.PowerOf(d, e)
	require.NoError(t, err)
	return r
}
