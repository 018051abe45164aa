// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mikecarlton/units/quantity"
)

func binaryOp(op string, left, right Value) (Value, error) {
	switch op {
	case "+":
		return left.Add(right)
	case "-":
		return left.Sub(right)
	case "*":
		return quantity.Multiply(left, right)
	case "/":
		return quantity.Divide(left, right)
	case "**":
		return power(left, right)
	default:
		panic(fmt.Sprintf("Unimplemented binary op: '%s'", op))
	}
}

func unaryOp(op string, v Value) (Value, error) {
	one := v.Unit().Context().One()
	switch op {
	case "chs":
		return v.Scale(decimal.NewFromInt(-1)), nil
	case "r":
		numerator, err := quantity.New[quantity.Any](decimal.NewFromInt(1), one)
		if err != nil {
			return Value{}, err
		}
		return quantity.Divide(numerator.WithMathContext(mathContext), v)
	case "n":
		r, err := quantity.New[quantity.Any](v.Value(), one)
		return r.WithMathContext(mathContext), err
	default:
		panic(fmt.Sprintf("Unimplemented unary op: '%s'", op))
	}
}

// power raises left to a dimensionless integer exponent; the units are
// raised with it.
func power(left, right Value) (Value, error) {
	one := left.Unit().Context().One()
	if right.Unit() != one || !isIntegral(right.Value()) {
		return Value{}, fmt.Errorf("can only raise to integral dimensionless powers, got %s", right)
	}
	if right.Value().Abs().GreaterThan(decimal.NewFromInt(1 << 16)) {
		return Value{}, fmt.Errorf("exponent %s out of range", right)
	}
	n := int(right.Value().IntPart())
	k := n
	if k < 0 {
		k = -k
	}
	if left.Unit() != one && quantity.Absolute(left.Unit()) {
		return Value{}, quantity.ErrAffine.New("cannot raise %s to a power", left.Unit())
	}

	u, err := left.Unit().Pow(n)
	if err != nil {
		return Value{}, err
	}
	value := left.Value().Pow(decimal.NewFromInt(int64(k)))
	if n < 0 {
		if value.IsZero() {
			return Value{}, fmt.Errorf("division by zero")
		}
		value = mathContext.Quo(decimal.NewFromInt(1), value)
	}
	r, err := quantity.New[quantity.Any](mathContext.Round(value), u)
	return r.WithMathContext(mathContext), err
}
