// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package parse builds units from text such as "kg·m/s^2", "km/h" or
// "m^(1/2)". It performs no algebra of its own: every term is resolved to a
// unit and combined with the unit package's multiply and power operations.
//
// The grammar is
//
//	expr     := ['/'] term { sep term }
//	sep      := '.' | '*' | '·' | '/'
//	term     := number | symbol [ '^' exponent ]
//	exponent := int | '(' int '/' int ')' | int '/' int
//
// Every term after the first '/' belongs to the denominator, so "J/kg·K" is
// J/(kg·K); a second '/' is an error.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"

	"github.com/mikecarlton/units/rational"
	"github.com/mikecarlton/units/unit"
)

// Error classes returned by this package.
var (
	ErrSyntax      = errs.Class("syntax error")
	ErrUnknownUnit = errs.Class("unknown unit")
)

// DOT is the separator used when formatting products.
const DOT = "·"

// asciiMicro spells micro as a plain "u", as in "um" or "us".
var asciiMicro = unit.Prefix{Symbol: "u", Name: "micro", Base: 10, Exp: -6}

var (
	sepRe  = regexp.MustCompile(`^[.*·/]`)
	termRe = regexp.MustCompile(`^(?:(\d+(?:\.\d+)?(?:[eE][-+]?\d+)?)|([°\p{L}_]+)(?:\^(?:\((-?\d+)/(\d+)\)|(-?\d+)(?:/(\d+))?))?)`)
)

// Resolver finds a unit by its exact symbol. Both *unit.Context and
// *system.System are resolvers.
type Resolver interface {
	Lookup(symbol string) (*unit.Unit, bool)
}

// Parser turns unit expressions into units of a single Context.
type Parser struct {
	ctx       *unit.Context
	resolvers []Resolver
}

// New returns a Parser resolving symbols through resolvers in order. With no
// resolvers, symbols are looked up on ctx.
func New(ctx *unit.Context, resolvers ...Resolver) *Parser {
	if len(resolvers) == 0 {
		resolvers = []Resolver{ctx}
	}
	return &Parser{ctx: ctx, resolvers: resolvers}
}

// Context returns the Context parsed units belong to.
func (p *Parser) Context() *unit.Context { return p.ctx }

// Parse returns the unit described by expr. "num" and "1" denote the
// dimensionless One.
func (p *Parser) Parse(expr string) (*unit.Unit, error) {
	input := strings.TrimSpace(expr)
	if input == "" {
		return nil, ErrSyntax.New("empty unit expression")
	}
	if input == "num" { // remove units
		return p.ctx.One(), nil
	}

	var result *unit.Unit
	factor := rational.BigInt(1)
	sign := 1
	pos := 0
	if input[0] == '/' && len(input) > 1 { // no numerator
		pos = 1
		sign = -1
	}

	for {
		match := termRe.FindStringSubmatch(input[pos:])
		if match == nil || match[0] == "" {
			return nil, ErrSyntax.New("unexpected %q at offset %d in %q", input[pos:], pos, input)
		}

		if match[1] != "" {
			n, err := literal(match[1])
			if err != nil {
				return nil, err
			}
			if sign < 0 {
				if n, err = n.Inv(); err != nil {
					return nil, ErrSyntax.New("zero divisor in %q", input)
				}
			}
			factor = factor.Mul(n)
		} else {
			exp, err := exponent(match[3:])
			if err != nil {
				return nil, err
			}
			if sign < 0 {
				exp = exp.Neg()
			}
			u, err := p.Resolve(match[2])
			if err != nil {
				return nil, err
			}
			if u, err = u.PowRational(exp); err != nil {
				return nil, err
			}
			if result == nil { // first unit term keeps its identity
				result = u
			} else if result, err = result.Multiply(u); err != nil {
				return nil, err
			}
		}

		pos += len(match[0])
		if pos == len(input) { // end of input
			break
		}

		sep := sepRe.FindString(input[pos:])
		if sep == "" {
			return nil, ErrSyntax.New("unexpected %q at offset %d in %q", input[pos:], pos, input)
		}
		if sep == "/" {
			if sign < 0 {
				return nil, ErrSyntax.New("second '/' in %q", input)
			}
			sign = -1
		}
		pos += len(sep)
		if pos == len(input) {
			return nil, ErrSyntax.New("trailing %q in %q", sep, input)
		}
	}

	if result == nil {
		result = p.ctx.One()
	}
	if factor.IsOne() {
		return result, nil
	}
	if factor.IsZero() {
		return nil, ErrSyntax.New("zero factor in %q", input)
	}
	return result.ScaleBy(factor)
}

// Resolve returns the unit for a single symbol: an exact match from the
// resolvers, or else a prefix followed by a known symbol, as in "km" or
// "KiB". Longer prefixes are tried first.
func (p *Parser) Resolve(symbol string) (*unit.Unit, error) {
	if u, ok := p.lookup(symbol); ok {
		return u, nil
	}

	prefixes := unit.Prefixes(symbol)
	if len(symbol) > 1 && symbol[0] == 'u' {
		prefixes = append(prefixes, asciiMicro)
	}
	for _, prefix := range prefixes {
		if u, ok := p.lookup(symbol[len(prefix.Symbol):]); ok {
			return u.WithPrefix(prefix)
		}
	}
	return nil, ErrUnknownUnit.New("%q", symbol)
}

func (p *Parser) lookup(symbol string) (*unit.Unit, bool) {
	for _, r := range p.resolvers {
		if u, ok := r.Lookup(symbol); ok {
			return u, true
		}
	}
	return nil, false
}

func literal(s string) (rational.BigFraction, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return rational.BigFraction{}, ErrSyntax.Wrap(err)
	}
	return rational.BigFromDecimal(d), nil
}

// exponent decodes the four exponent groups of termRe: parenthesized
// numerator and denominator, then bare numerator and denominator.
func exponent(groups []string) (rational.Fraction, error) {
	num, den := groups[0], groups[1]
	if num == "" {
		num, den = groups[2], groups[3]
	}
	if num == "" {
		return rational.Int(1), nil
	}
	if den == "" {
		den = "1"
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return rational.Fraction{}, ErrSyntax.Wrap(err)
	}
	d, err := strconv.ParseInt(den, 10, 64)
	if err != nil {
		return rational.Fraction{}, ErrSyntax.Wrap(err)
	}
	e, err := rational.Reduce(n, d)
	if err != nil {
		return rational.Fraction{}, ErrSyntax.Wrap(err)
	}
	if e.IsZero() {
		return rational.Fraction{}, ErrSyntax.New("zero exponent")
	}
	return e, nil
}

// Format writes u in the grammar accepted by Parse: its symbol when it has
// one, otherwise its elements with the numerator first and a single '/'
// before the denominator.
func Format(u *unit.Unit) string {
	if u.Symbol() != "" {
		return u.Symbol()
	}
	elements := u.Elements()
	if len(elements) == 0 {
		return "1"
	}
	if len(elements) == 1 && elements[0].Unit == u {
		return u.String()
	}

	var num, den []string
	for _, e := range elements {
		s := Format(e.Unit)
		exp := e.Exp
		negative := exp.Sign() < 0
		if negative {
			exp = exp.Neg()
		}
		switch {
		case exp.IsOne():
		case exp.IsInt():
			s += "^" + exp.String()
		default:
			s += "^(" + exp.String() + ")"
		}
		if negative {
			den = append(den, s)
		} else {
			num = append(num, s)
		}
	}

	result := strings.Join(num, DOT)
	if len(den) > 0 {
		result += "/" + strings.Join(den, DOT)
	}
	return result
}
