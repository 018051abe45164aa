// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mikecarlton/units/enumerable"
	"github.com/mikecarlton/units/parse"
	"github.com/mikecarlton/units/quantity"
	"github.com/mikecarlton/units/rational"
	"github.com/mikecarlton/units/unit"
)

// Value is a number with units; unitless numbers have the unit One.
type Value = quantity.Quantity[quantity.Any]

// mathContext is the precision of every calculation; display precision is
// applied when printing.
var mathContext = rational.Decimal128

type Stack struct {
	env    *env
	values []Value
}

func newStack(e *env) *Stack {
	return &Stack{env: e, values: []Value{}}
}

var STACKALIAS = map[string]string{
	"dup": "d",
	"pop": "p",
	"num": "n",
	"•":   "*",
	"·":   "*",
	".":   "*",
	"pow": "**",
}

var STACKOP = map[string]func(*Stack) error{
	"x": func(s *Stack) error { return s.exchange() },
	"d": func(s *Stack) error { return s.dup() },
	"p": func(s *Stack) error {
		if _, err := s.pop(); err != nil {
			return fmt.Errorf("stack is empty for '%s'", "pop")
		}
		return nil
	},
}

var BINARYOP = map[string]bool{"+": true, "-": true, "*": true, "/": true, "**": true}

var UNARYOP = map[string]bool{"chs": true, "r": true, "n": true}

// eval applies one argument: a number or constant is pushed, an operator
// applied and anything else is parsed as units.
func (s *Stack) eval(arg string) error {
	if num, ok := parseNumber(arg); ok {
		return s.pushNumber(num)
	}
	if arg == "pi" {
		return s.pushNumber(pi)
	}

	op := arg
	if alias, ok := STACKALIAS[op]; ok {
		op = alias
	}
	if f, ok := STACKOP[op]; ok {
		return f(s)
	}
	if BINARYOP[op] {
		return s.binaryOp(op)
	}
	if UNARYOP[op] {
		return s.unaryOp(op)
	}
	if strings.HasPrefix(arg, "@") && len(arg) > 1 {
		op = arg[1:]
		if alias, ok := STACKALIAS[op]; ok {
			op = alias
		}
		if BINARYOP[op] {
			return s.reduce(op)
		}
	}

	u, err := s.env.parser.Parse(arg)
	if parse.ErrSyntax.Has(err) || parse.ErrUnknownUnit.Has(err) {
		return fmt.Errorf("unrecognized argument '%s'", arg)
	}
	if err != nil {
		return err
	}
	return s.apply(arg, u)
}

func (s *Stack) pushNumber(n decimal.Decimal) error {
	v, err := quantity.New[quantity.Any](n, s.env.ctx.One())
	if err != nil {
		return err
	}
	s.push(v.WithMathContext(mathContext))
	return nil
}

func (s *Stack) binaryOp(op string) error {
	right, _ := s.pop()
	left, err := s.pop()
	if err != nil {
		return fmt.Errorf("not enough arguments for binary operation '%s'", op)
	}

	result, err := binaryOp(op, left, right)
	if err != nil {
		return err
	}
	s.trace(op, result)
	s.push(result)
	return nil
}

func (s *Stack) unaryOp(op string) error {
	value, err := s.pop()
	if err != nil {
		return fmt.Errorf("not enough arguments for unary operation '%s'", op)
	}

	result, err := unaryOp(op, value)
	if err != nil {
		return err
	}
	s.trace(op, result)
	s.push(result)
	return nil
}

// apply gives a unitless top of stack the units u and converts any other.
func (s *Stack) apply(arg string, u *unit.Unit) error {
	value, err := s.pop()
	if err != nil {
		return fmt.Errorf("not enough arguments for '%s'", arg)
	}

	var result Value
	if value.Unit() == s.env.ctx.One() {
		result, err = quantity.New[quantity.Any](value.Value(), u)
		result = result.WithMathContext(mathContext)
	} else {
		result, err = value.To(u)
	}
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", value, arg, err)
	}
	s.trace(arg, result)
	s.push(result)
	return nil
}

// reduce combines all values on the stack with op, left to right.
func (s *Stack) reduce(op string) error {
	if len(s.values) < 2 {
		return fmt.Errorf("not enough arguments for reduction operation '@%s'", op)
	}

	var err error
	result := enumerable.Reduce(s.values[1:], s.values[0], func(acc Value, v Value) Value {
		if err != nil {
			return acc
		}
		var r Value
		if r, err = binaryOp(op, acc, v); err != nil {
			return acc
		}
		return r
	})
	if err != nil {
		return err
	}

	s.trace("@"+op, result)
	s.values = []Value{result}
	return nil
}

func (s *Stack) trace(op string, v Value) {
	s.env.log.WithField("op", op).WithField("result", v.String()).Trace("applied")
}

func (s *Stack) push(v Value) {
	s.values = append(s.values, v)
}

func (s *Stack) pop() (Value, error) {
	if len(s.values) == 0 {
		return Value{}, fmt.Errorf("stack is empty")
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]

	return v, nil
}

func (s *Stack) dup() error {
	if len(s.values) < 1 {
		return fmt.Errorf("stack is empty for '%s'", "duplicate")
	}

	s.values = append(s.values, s.values[len(s.values)-1])
	return nil
}

func (s *Stack) exchange() error {
	if len(s.values) < 2 {
		return fmt.Errorf("not enough arguments for '%s'", "exchange")
	}

	s.values[len(s.values)-1], s.values[len(s.values)-2] = s.values[len(s.values)-2], s.values[len(s.values)-1]
	return nil
}

// ColumnWidths tracks integer and fractional part widths for alignment
type ColumnWidths struct {
	integerWidth    int
	fractionalWidth int
}

// maxWidths returns the widths of each displayed base over all values.
func (s *Stack) maxWidths(bases []int) map[int]ColumnWidths {
	widths := make(map[int]ColumnWidths)
	for _, base := range bases {
		var w ColumnWidths
		for _, value := range s.values {
			if base != 10 && !isIntegral(value.Value()) {
				continue
			}
			intPart, fracPart := splitNumber(s.format(value, base))
			w.integerWidth = max(w.integerWidth, len(intPart))
			w.fractionalWidth = max(w.fractionalWidth, len(fracPart))
		}
		widths[base] = w
	}
	return widths
}

func (s *Stack) format(v Value, base int) string {
	return format(v.Value(), base, s.env.opts.Precision, s.env.opts.Group)
}

// print writes the stack, top first, with the units digits aligned.
func (s *Stack) print(out io.Writer) {
	bases := s.env.opts.bases()
	widths := s.maxWidths(bases)
	one := s.env.ctx.One()

	for i := len(s.values) - 1; i >= 0; i-- {
		value := s.values[i]
		separator := ""

		for _, base := range bases {
			if base != 10 && !isIntegral(value.Value()) {
				continue
			}

			intPart, fracPart := splitNumber(s.format(value, base))
			colWidth := widths[base]
			fmt.Fprintf(out, "%s%*s%s", separator, colWidth.integerWidth, intPart, fracPart)

			if padding := colWidth.fractionalWidth - len(fracPart); padding > 0 {
				fmt.Fprintf(out, "%*s", padding, "")
			}
			separator = "  "
		}

		if value.Unit() != one {
			fmt.Fprintf(out, " %s", parse.Format(value.Unit()))
		}
		fmt.Fprintln(out)
	}
}
