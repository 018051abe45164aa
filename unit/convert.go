// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mikecarlton/units/converter"
)

// ConverterTo returns the converter from values of u to values of target.
// Converting a unit to itself is the identity and never touches a cache.
// Units of different dimension fail with ErrIncommensurable before any
// cache is consulted. Results are cached per source unit, keyed by target.
func (u *Unit) ConverterTo(target *Unit) (converter.Converter, error) {
	if u == target {
		return converter.Identity, nil
	}
	if !u.IsCompatible(target) {
		return nil, ErrIncommensurable.New("%s (%s) and %s (%s)", u, u.dim, target, target.dim)
	}
	cache := u.converters()
	if c, ok := cache.Get(target); ok {
		u.ctx.metrics.converterHits.Inc()
		return c, nil
	}
	v, _, _ := u.flight.Do(strconv.FormatUint(target.id, 10), func() (interface{}, error) {
		if c, ok := cache.Peek(target); ok {
			return c, nil
		}
		u.ctx.metrics.converterMisses.Inc()
		c := u.toSystem.Then(target.toSystem.Inverse())
		cache.Add(target, c)
		return c, nil
	})
	return v.(converter.Converter), nil
}

// Convert converts x from u to target in float64 precision.
func (u *Unit) Convert(x float64, target *Unit) (float64, error) {
	c, err := u.ConverterTo(target)
	if err != nil {
		return 0, err
	}
	return c.Convert(x), nil
}

func (u *Unit) converters() *lru.Cache[*Unit, converter.Converter] {
	u.convOnce.Do(func() {
		u.convs, _ = lru.New[*Unit, converter.Converter](u.ctx.converterSize)
	})
	return u.convs
}
