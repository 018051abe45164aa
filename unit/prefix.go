// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"sort"
	"strings"
)

// Prefix is a scale factor of the form Base^Exp written before a unit
// symbol.
type Prefix struct {
	Symbol string
	Name   string
	Base   int
	Exp    int
}

// Metric prefixes.
var (
	Quecto = Prefix{"q", "quecto", 10, -30}
	Ronto  = Prefix{"r", "ronto", 10, -27}
	Yocto  = Prefix{"y", "yocto", 10, -24}
	Zepto  = Prefix{"z", "zepto", 10, -21}
	Atto   = Prefix{"a", "atto", 10, -18}
	Femto  = Prefix{"f", "femto", 10, -15}
	Pico   = Prefix{"p", "pico", 10, -12}
	Nano   = Prefix{"n", "nano", 10, -9}
	Micro  = Prefix{"µ", "micro", 10, -6}
	Milli  = Prefix{"m", "milli", 10, -3}
	Centi  = Prefix{"c", "centi", 10, -2}
	Deci   = Prefix{"d", "deci", 10, -1}
	Deka   = Prefix{"da", "deka", 10, 1}
	Hecto  = Prefix{"h", "hecto", 10, 2}
	Kilo   = Prefix{"k", "kilo", 10, 3}
	Mega   = Prefix{"M", "mega", 10, 6}
	Giga   = Prefix{"G", "giga", 10, 9}
	Tera   = Prefix{"T", "tera", 10, 12}
	Peta   = Prefix{"P", "peta", 10, 15}
	Exa    = Prefix{"E", "exa", 10, 18}
	Zetta  = Prefix{"Z", "zetta", 10, 21}
	Yotta  = Prefix{"Y", "yotta", 10, 24}
	Ronna  = Prefix{"R", "ronna", 10, 27}
	Quetta = Prefix{"Q", "quetta", 10, 30}
)

// Binary prefixes.
var (
	Kibi = Prefix{"Ki", "kibi", 2, 10}
	Mebi = Prefix{"Mi", "mebi", 2, 20}
	Gibi = Prefix{"Gi", "gibi", 2, 30}
	Tebi = Prefix{"Ti", "tebi", 2, 40}
	Pebi = Prefix{"Pi", "pebi", 2, 50}
	Exbi = Prefix{"Ei", "exbi", 2, 60}
	Zebi = Prefix{"Zi", "zebi", 2, 70}
	Yobi = Prefix{"Yi", "yobi", 2, 80}
)

// MetricPrefixes lists the metric prefixes from smallest to largest.
var MetricPrefixes = []Prefix{
	Quecto, Ronto, Yocto, Zepto, Atto, Femto, Pico, Nano, Micro, Milli, Centi, Deci,
	Deka, Hecto, Kilo, Mega, Giga, Tera, Peta, Exa, Zetta, Yotta, Ronna, Quetta,
}

// BinaryPrefixes lists the binary prefixes from smallest to largest.
var BinaryPrefixes = []Prefix{Kibi, Mebi, Gibi, Tebi, Pebi, Exbi, Zebi, Yobi}

// byLength holds every prefix, longest symbol first.
var byLength = func() []Prefix {
	all := append(append([]Prefix{}, BinaryPrefixes...), MetricPrefixes...)
	sort.SliceStable(all, func(i, j int) bool {
		return len(all[i].Symbol) > len(all[j].Symbol)
	})
	return all
}()

// Prefixes returns every prefix splitting symbol, longest prefix first, so
// that callers can try each remainder in turn.
func Prefixes(symbol string) []Prefix {
	var out []Prefix
	for _, p := range byLength {
		if len(symbol) > len(p.Symbol) && strings.HasPrefix(symbol, p.Symbol) {
			out = append(out, p)
		}
	}
	return out
}

func (p Prefix) String() string { return p.Symbol }
