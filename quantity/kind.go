// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package quantity

import (
	"github.com/mikecarlton/units/dimension"
)

// Kind tags a Quantity with the dimension its unit must have. Kinds are
// empty struct types; a nil Dimension accepts any unit.
type Kind interface {
	Dimension() dimension.Dimension
}

// Any accepts units of every dimension. Products and quotients of
// quantities are of kind Any until re-tagged with As.
type Any struct{}

type (
	Dimensionless struct{}
	Length        struct{}
	Mass          struct{}
	Time          struct{}
	Temperature   struct{}
	Area          struct{}
	Volume        struct{}
	Speed         struct{}
	Force         struct{}
)

var (
	area   = dimension.Length.Pow(2)
	volume = dimension.Length.Pow(3)
	speed  = dimension.Length.Divide(dimension.Time)
	force  = dimension.Mass.Multiply(dimension.Length).Divide(dimension.Time.Pow(2))
)

func (Any) Dimension() dimension.Dimension           { return nil }
func (Dimensionless) Dimension() dimension.Dimension { return dimension.None }
func (Length) Dimension() dimension.Dimension        { return dimension.Length }
func (Mass) Dimension() dimension.Dimension          { return dimension.Mass }
func (Time) Dimension() dimension.Dimension          { return dimension.Time }
func (Temperature) Dimension() dimension.Dimension   { return dimension.Temperature }
func (Area) Dimension() dimension.Dimension          { return area }
func (Volume) Dimension() dimension.Dimension        { return volume }
func (Speed) Dimension() dimension.Dimension         { return speed }
func (Force) Dimension() dimension.Dimension         { return force }

// dimensionOf returns the dimension required by kind K.
func dimensionOf[K Kind]() dimension.Dimension {
	var k K
	return k.Dimension()
}
