// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package unit implements units of measurement as immutable algebraic
// values: base units, alternate system units, transformed (including
// prefixed) units and products of units raised to rational exponents.
//
// Every unit belongs to the Context that built it. The Context keeps one
// canonical instance per compound signature, so products built from system
// units compare equal by pointer and resolve to registered named units,
// e.g. kg·m·s^-2 resolves to N once N is registered.
package unit

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/errs"
	"golang.org/x/sync/singleflight"

	"github.com/mikecarlton/units/converter"
	"github.com/mikecarlton/units/dimension"
	"github.com/mikecarlton/units/rational"
)

// Error classes returned by this package.
var (
	// ErrIncommensurable is returned when units of different dimension are
	// converted or combined additively.
	ErrIncommensurable = errs.Class("incommensurable units")
	// ErrInvalid is rejected algebra input.
	ErrInvalid = errs.Class("invalid unit")
)

type kind int

const (
	baseKind kind = iota
	alternateKind
	transformedKind
	productKind
)

// Element is one factor of a unit's multiplicative decomposition.
type Element struct {
	Unit *Unit
	Exp  rational.Fraction
}

// Unit is an immutable unit of measurement. Units are created by a Context
// and by the algebra methods of other units; the zero value is not usable.
type Unit struct {
	ctx    *Context
	id     uint64
	kind   kind
	symbol string
	name   string
	key    string
	dim    dimension.Dimension

	// toSystem converts values of this unit to its system unit.
	toSystem converter.Converter
	system   *Unit

	// parent and conv describe a transformed unit: conv converts values of
	// the unit to values of parent.
	parent *Unit
	conv   converter.Converter

	// elements is the sorted decomposition of a product unit.
	elements []Element

	convOnce sync.Once
	convs    *lru.Cache[*Unit, converter.Converter]
	flight   singleflight.Group
}

// Context returns the Context that built u.
func (u *Unit) Context() *Context { return u.ctx }

// Symbol returns the unit symbol; anonymous compounds have none.
func (u *Unit) Symbol() string { return u.symbol }

// Name returns the display name, if any.
func (u *Unit) Name() string { return u.name }

// Dimension returns the dimension of u.
func (u *Unit) Dimension() dimension.Dimension { return u.dim }

// Key is the canonical signature of u within its Context. Products share
// the key of their sorted (operand, exponent) decomposition.
func (u *Unit) Key() string { return u.key }

// SystemUnit returns the unscaled reference unit for u's dimension.
func (u *Unit) SystemUnit() *Unit { return u.system }

// SystemConverter returns the converter from u to its system unit.
func (u *Unit) SystemConverter() converter.Converter { return u.toSystem }

// IsSystemUnit reports whether u converts to its system unit with the
// identity, as K and a labeled copy of K both do.
func (u *Unit) IsSystemUnit() bool {
	return u.toSystem.IsIdentity()
}

// isReference reports whether u is its own system unit.
func (u *Unit) isReference() bool {
	return u.system == u
}

// IsCompatible reports whether values of u convert to values of v, that is
// whether the two units have equal dimensions.
func (u *Unit) IsCompatible(v *Unit) bool {
	return dimension.Equal(u.dim, v.dim)
}

// Elements returns the multiplicative decomposition of u. Base, alternate
// and transformed units decompose to themselves with exponent 1.
func (u *Unit) Elements() []Element {
	if u.kind != productKind {
		return []Element{{Unit: u, Exp: rational.One}}
	}
	out := make([]Element, len(u.elements))
	copy(out, u.elements)
	return out
}

// Parent returns the unit a transformed unit is derived from and the
// converter from u to it. Other units return themselves and Identity.
func (u *Unit) Parent() (*Unit, converter.Converter) {
	if u.kind == transformedKind {
		return u.parent, u.conv
	}
	return u, converter.Identity
}

// String returns the symbol, or a rendering of the decomposition for
// anonymous units, e.g. "kg·m·s^-2".
func (u *Unit) String() string {
	if u.symbol != "" {
		return u.symbol
	}
	switch u.kind {
	case productKind:
		if len(u.elements) == 0 {
			return "1"
		}
		return formatElements(u.elements)
	case transformedKind:
		return u.parent.String() + u.conv.Key()
	}
	return u.key
}

func formatElements(elements []Element) string {
	parts := make([]string, len(elements))
	for i, e := range elements {
		s := e.Unit.String()
		if e.Unit.symbol == "" && (e.Unit.kind == productKind || e.Unit.kind == transformedKind) {
			s = "(" + s + ")"
		}
		if !e.Exp.IsOne() {
			if e.Exp.IsInt() {
				s += "^" + e.Exp.String()
			} else {
				s += "^(" + e.Exp.String() + ")"
			}
		}
		parts[i] = s
	}
	return strings.Join(parts, "·")
}

// signature returns the canonical key of a sorted decomposition.
func signature(elements []Element) string {
	var sb strings.Builder
	for i, e := range elements {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(e.Unit.key)
		if !e.Exp.IsOne() {
			sb.WriteByte('^')
			sb.WriteString(e.Exp.String())
		}
	}
	return sb.String()
}

func sortElements(elements []Element) {
	sort.Slice(elements, func(i, j int) bool {
		return elements[i].Unit.key < elements[j].Unit.key
	})
}

// idKey is the key of units identified by their own identity.
func idKey(id uint64) string {
	return "#" + strconv.FormatUint(id, 10)
}
