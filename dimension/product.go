// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package dimension

// Product is a composite dimension: base dimensions raised to nonzero
// rational exponents. It never holds a zero exponent, and it never holds a
// single base with exponent 1 (that is the Base itself).
type Product struct {
	terms []Term
	key   string
}

// None is the dimension of dimensionless quantities.
var None Dimension = &Product{}

func (p *Product) Terms() []Term {
	out := make([]Term, len(p.terms))
	copy(out, p.terms)
	return out
}

func (p *Product) Multiply(d Dimension) Dimension { return multiply(p, d) }
func (p *Product) Divide(d Dimension) Dimension   { return divide(p, d) }
func (p *Product) Pow(n int) Dimension            { return pow(p, n) }
func (p *Product) Root(n int) (Dimension, error)  { return root(p, n) }
func (p *Product) Inverse() Dimension             { return pow(p, -1) }
func (p *Product) Key() string                    { return p.key }

func (p *Product) String() string {
	if len(p.terms) == 0 {
		return "1"
	}
	return p.key
}
