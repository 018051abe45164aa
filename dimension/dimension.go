// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package dimension models physical dimensions as immutable vectors of
// rational exponents over base dimensions.
//
// A Dimension is either a *Base (one of the seven physical base dimensions,
// or an application-defined named dimension) or a *Product of bases raised
// to nonzero rational exponents. Equality is structural: two dimensions are
// equal when their Key values are equal, regardless of how they were built.
package dimension

import (
	"sort"
	"strings"

	"github.com/zeebo/errs"

	"github.com/mikecarlton/units/rational"
)

// ErrInvalid is returned for rejected algebra input, such as a root index
// that is not positive.
var ErrInvalid = errs.Class("invalid dimension")

// Dimension is an immutable vector of rational exponents over base
// dimensions.
type Dimension interface {
	// Terms returns the base dimensions with their exponents, sorted by base.
	Terms() []Term
	// Multiply returns the product of the receiver and d.
	Multiply(d Dimension) Dimension
	// Divide returns the quotient of the receiver and d.
	Divide(d Dimension) Dimension
	// Pow returns the receiver raised to n.
	Pow(n int) Dimension
	// Root returns the nth root of the receiver; n must be positive.
	Root(n int) (Dimension, error)
	// Inverse returns the receiver raised to -1.
	Inverse() Dimension
	// Key is the canonical signature used for equality and caching.
	Key() string
	String() string
}

// Term is one base dimension of a Dimension together with its exponent.
type Term struct {
	Base *Base
	Exp  rational.Fraction
}

// Equal reports whether a and b are the same dimension.
func Equal(a, b Dimension) bool {
	return a.Key() == b.Key()
}

// Exponents returns the exponent map of d keyed by base symbol, for
// formatters.
func Exponents(d Dimension) map[string]rational.Fraction {
	terms := d.Terms()
	m := make(map[string]rational.Fraction, len(terms))
	for _, t := range terms {
		m[t.Base.Symbol()] = t.Exp
	}
	return m
}

// ProductOf returns l^le · r^re. Each operand is expanded into its base
// terms scaled by its exponent, exponents are summed per base and zero
// entries dropped. An empty result is None and a single base with exponent 1
// is returned as the base itself.
func ProductOf(l Dimension, le rational.Fraction, r Dimension, re rational.Fraction) (Dimension, error) {
	acc := newAccumulator()
	if err := acc.add(l, le); err != nil {
		return nil, err
	}
	if err := acc.add(r, re); err != nil {
		return nil, err
	}
	return acc.result(), nil
}

// PowerOf returns d^e. An exponent of 0 returns None and 1 returns d.
func PowerOf(d Dimension, e rational.Fraction) (Dimension, error) {
	if e.IsZero() {
		return None, nil
	}
	if e.IsOne() {
		return d, nil
	}
	acc := newAccumulator()
	if err := acc.add(d, e); err != nil {
		return nil, err
	}
	return acc.result(), nil
}

// multiply, divide, pow and root back the Dimension methods of both Base and
// Product. Exponent overflow is the only failure and panics, like the
// non-Try arithmetic of package rational.
func multiply(l, r Dimension) Dimension {
	return mustDim(ProductOf(l, rational.One, r, rational.One))
}

func divide(l, r Dimension) Dimension {
	return mustDim(ProductOf(l, rational.One, r, rational.Int(-1)))
}

func pow(d Dimension, n int) Dimension {
	return mustDim(PowerOf(d, rational.Int(int64(n))))
}

func root(d Dimension, n int) (Dimension, error) {
	if n <= 0 {
		return nil, ErrInvalid.New("root index %d of %s", n, d)
	}
	return PowerOf(d, rational.New(1, int64(n)))
}

func mustDim(d Dimension, err error) Dimension {
	if err != nil {
		panic(err)
	}
	return d
}

// accumulator merges scaled terms additively.
type accumulator struct {
	exps  map[string]rational.Fraction
	bases map[string]*Base
}

func newAccumulator() *accumulator {
	return &accumulator{
		exps:  make(map[string]rational.Fraction),
		bases: make(map[string]*Base),
	}
}

func (a *accumulator) add(d Dimension, scale rational.Fraction) error {
	for _, t := range d.Terms() {
		e, err := t.Exp.TryMul(scale)
		if err != nil {
			return err
		}
		k := t.Base.Key()
		sum, err := a.exps[k].TryAdd(e)
		if err != nil {
			return err
		}
		a.exps[k] = sum
		if _, ok := a.bases[k]; !ok {
			a.bases[k] = t.Base
		}
	}
	return nil
}

func (a *accumulator) result() Dimension {
	terms := make([]Term, 0, len(a.exps))
	for k, e := range a.exps {
		if e.IsZero() {
			continue
		}
		terms = append(terms, Term{Base: a.bases[k], Exp: e})
	}
	switch {
	case len(terms) == 0:
		return None
	case len(terms) == 1 && terms[0].Exp.IsOne():
		return terms[0].Base
	}
	sortTerms(terms)
	return &Product{terms: terms, key: termsKey(terms)}
}

func sortTerms(terms []Term) {
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].Base.less(terms[j].Base)
	})
}

// termsKey renders sorted terms, e.g. "L·T^-2" or "M^1/2".
func termsKey(terms []Term) string {
	var sb strings.Builder
	for i, t := range terms {
		if i > 0 {
			sb.WriteString("·")
		}
		sb.WriteString(t.Base.Key())
		if !t.Exp.IsOne() {
			sb.WriteString("^")
			sb.WriteString(t.Exp.String())
		}
	}
	return sb.String()
}
