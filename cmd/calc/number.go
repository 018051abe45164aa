// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mikecarlton/units/rational"
)

// MAGNITUDE holds the binary magnitude suffixes: K is 1024, M is 1024^2 ...
const MAGNITUDE = "KMGTPEZY"

var pi = decimal.RequireFromString("3.14159265358979323846264338327950288")

var (
	hexRe     = regexp.MustCompile(`^([-+]?)0[xX]([0-9a-fA-F]+)`)
	octalRe   = regexp.MustCompile(`^([-+]?)0[oO]([0-7]+)`)
	binaryRe  = regexp.MustCompile(`^([-+]?)0[bB]([01]+)`)
	decimalRe = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)
)

// NewFromString parses the number at the start of input, including an
// optional binary magnitude suffix, and returns it with the unparsed
// remainder. It returns nil if input does not start with a number.
func NewFromString(input string) (*decimal.Decimal, string) {
	var n decimal.Decimal
	var rest string

	switch {
	case hexRe.MatchString(input):
		n, rest = parseInteger(hexRe, input, 16)
	case octalRe.MatchString(input):
		n, rest = parseInteger(octalRe, input, 8)
	case binaryRe.MatchString(input):
		n, rest = parseInteger(binaryRe, input, 2)
	default:
		match := decimalRe.FindString(input)
		if match == "" {
			return nil, input
		}
		var err error
		if n, err = decimal.NewFromString(match); err != nil {
			return nil, input
		}
		rest = input[len(match):]
	}

	if rest != "" {
		if i := strings.IndexByte(MAGNITUDE, rest[0]); i >= 0 {
			factor := decimal.NewFromInt(1024).Pow(decimal.NewFromInt(int64(i + 1)))
			n = n.Mul(factor)
			rest = rest[1:]
		}
	}
	return &n, rest
}

func parseInteger(re *regexp.Regexp, input string, base int) (decimal.Decimal, string) {
	match := re.FindStringSubmatch(input)
	i, _ := new(big.Int).SetString(match[2], base)
	if match[1] == "-" {
		i.Neg(i)
	}
	return decimal.NewFromBigInt(i, 0), input[len(match[0]):]
}

// parseNumber returns the number in input when all of input is a number,
// either as NewFromString accepts it or in base 60.
func parseNumber(input string) (decimal.Decimal, bool) {
	if strings.Contains(input, ":") {
		if n, ok := parseBase60(input); ok {
			return *n, true
		}
		return decimal.Decimal{}, false
	}
	n, rest := NewFromString(input)
	if n == nil || rest != "" {
		return decimal.Decimal{}, false
	}
	return *n, true
}

// parseBase60 parses minutes:seconds as fractional minutes and
// hours:minutes:seconds as fractional hours. Every part but the last must be
// a non-negative integer; the last may have a fraction.
func parseBase60(input string) (*decimal.Decimal, bool) {
	parts := strings.Split(input, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, false
	}

	total := rational.BigInt(0)
	scale := rational.BigInt(1)
	for i, part := range parts {
		var value decimal.Decimal
		if i < len(parts)-1 {
			if !isNonNegativeInteger(part) {
				return nil, false
			}
			value = decimal.RequireFromString(part)
		} else {
			v, err := decimal.NewFromString(part)
			if err != nil || v.IsNegative() || strings.HasPrefix(part, "-") {
				return nil, false
			}
			value = v
		}
		term, err := rational.BigFromDecimal(value).Quo(scale)
		if err != nil {
			return nil, false
		}
		total = total.Add(term)
		scale = scale.Mul(rational.BigInt(60))
	}

	result := total.Decimal(rational.Decimal64)
	return &result, true
}

func isNonNegativeInteger(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isIntegral(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}

// toString formats d in base 2, 8, 10 or 16. Bases other than 10 only apply
// to integers; other values fall back to decimal.
func toString(d decimal.Decimal, base int) string {
	if base == 10 || !isIntegral(d) {
		return d.String()
	}

	i := d.BigInt()
	sign := ""
	if i.Sign() < 0 {
		sign = "-"
		i.Neg(i)
	}
	prefix := map[int]string{2: "0b", 8: "0o", 16: "0x"}[base]
	return sign + prefix + i.Text(base)
}

// format renders d for display: decimal values are rounded to precision
// places and, with group, use ',' between thousands; other bases group with
// '_' every four digits.
func format(d decimal.Decimal, base, precision int, group bool) string {
	if base == 10 {
		d = d.Round(int32(precision))
	}
	str := toString(d, base)
	if !group {
		return str
	}
	if base == 10 {
		return groupDecimal(str)
	}

	sign, digits := "", str
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	prefix, digits := digits[:2], digits[2:]
	return sign + prefix + groupDigits(digits, 4, "_")
}

var printer = message.NewPrinter(language.English)

func groupDecimal(str string) string {
	intPart, fracPart := splitNumber(str)
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return str
	}
	if n.IsInt64() {
		grouped := printer.Sprintf("%d", n.Int64())
		if intPart == "-0" {
			grouped = "-0"
		}
		return grouped + fracPart
	}
	sign, digits := "", intPart
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	return sign + groupDigits(digits, 3, ",") + fracPart
}

func groupDigits(digits string, size int, sep string) string {
	var sb strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%size == 0 {
			sb.WriteString(sep)
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// splitNumber splits a number string into integer and fractional parts,
// the fractional part including the decimal point.
func splitNumber(str string) (string, string) {
	if strings.Contains(str, ".") {
		parts := strings.SplitN(str, ".", 2)
		return parts[0], "." + parts[1]
	}
	return str, ""
}
