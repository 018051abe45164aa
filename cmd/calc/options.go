// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// Options are the calculator settings: defaults, then the config file, then
// command line flags.
type Options struct {
	Precision  int               `toml:"precision"`
	Group      bool              `toml:"group"`
	Trace      bool              `toml:"trace"`
	Verbose    int               `toml:"verbose"`
	ShowHex    bool              `toml:"hex"`
	ShowOctal  bool              `toml:"octal"`
	ShowBinary bool              `toml:"binary"`
	Database   string            `toml:"database"`
	Aliases    map[string]string `toml:"aliases"`
}

// defaultAliases resolve the calculator's short temperature names; "C" and
// "F" are otherwise coulomb and farad.
var defaultAliases = map[string]string{
	"C":   "°C",
	"F":   "°F",
	"day": "d",
	"sec": "s",
}

func defaultOptions() Options {
	aliases := make(map[string]string, len(defaultAliases))
	for k, v := range defaultAliases {
		aliases[k] = v
	}
	return Options{
		Precision: 4,
		Aliases:   aliases,
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "calc", "config.toml")
}

// loadConfig merges the TOML file at path into opts. A missing file is not
// an error.
func loadConfig(path string, opts *Options) error {
	if path == "" {
		return nil
	}

	var file Options
	md, err := toml.DecodeFile(path, &file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown settings in %s: %v", path, undecoded)
	}

	if md.IsDefined("precision") {
		opts.Precision = file.Precision
	}
	if md.IsDefined("group") {
		opts.Group = file.Group
	}
	if md.IsDefined("trace") {
		opts.Trace = file.Trace
	}
	if md.IsDefined("verbose") {
		opts.Verbose = file.Verbose
	}
	if md.IsDefined("hex") {
		opts.ShowHex = file.ShowHex
	}
	if md.IsDefined("octal") {
		opts.ShowOctal = file.ShowOctal
	}
	if md.IsDefined("binary") {
		opts.ShowBinary = file.ShowBinary
	}
	if md.IsDefined("database") {
		opts.Database = file.Database
	}
	for k, v := range file.Aliases {
		opts.Aliases[k] = v
	}
	return nil
}

// flagValues holds the command line flags before they are merged.
type flagValues struct {
	config string
	Options
}

func (f *flagValues) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.config, "config", defaultConfigPath(), "Configuration file")
	fs.IntVarP(&f.Precision, "precision", "p", 4, "Set display precision for floating point numbers")
	fs.BoolVarP(&f.Group, "group", "g", false, "Use ',' to group decimal numbers, '_' to group others")
	fs.BoolVarP(&f.Trace, "trace", "t", false, "Trace operations")
	fs.CountVarP(&f.Verbose, "verbose", "v", "Verbose output (repeat for additional output)")
	fs.BoolVarP(&f.ShowHex, "hex", "x", false, "Show hex representation of integers")
	fs.BoolVarP(&f.ShowOctal, "octal", "o", false, "Show octal representation of integers")
	fs.BoolVarP(&f.ShowBinary, "binary", "b", false, "Show binary representation of integers")
	fs.StringVar(&f.Database, "db", "", "Unit definitions database (default ~/data/units.sqlite3)")
}

// resolve returns the effective options: defaults, then the config file,
// then the flags that were set.
func (f *flagValues) resolve(fs *pflag.FlagSet) (Options, error) {
	opts := defaultOptions()
	if err := loadConfig(f.config, &opts); err != nil {
		return opts, err
	}

	if fs.Changed("precision") {
		opts.Precision = f.Precision
	}
	if fs.Changed("group") {
		opts.Group = f.Group
	}
	if fs.Changed("trace") {
		opts.Trace = f.Trace
	}
	if fs.Changed("verbose") {
		opts.Verbose = f.Verbose
	}
	if fs.Changed("hex") {
		opts.ShowHex = f.ShowHex
	}
	if fs.Changed("octal") {
		opts.ShowOctal = f.ShowOctal
	}
	if fs.Changed("binary") {
		opts.ShowBinary = f.ShowBinary
	}
	if fs.Changed("db") {
		opts.Database = f.Database
	}
	if opts.Precision < 0 {
		return opts, fmt.Errorf("precision must not be negative, got %d", opts.Precision)
	}
	return opts, nil
}

// bases returns the bases to display, decimal first.
func (o Options) bases() []int {
	bases := []int{10}
	if o.ShowHex {
		bases = append(bases, 16)
	}
	if o.ShowBinary {
		bases = append(bases, 2)
	}
	if o.ShowOctal {
		bases = append(bases, 8)
	}
	return bases
}

func heredoc(text string) string {
	lines := strings.Split(strings.TrimRight(text, " \t\n"), "\n")

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			leadingSpaces := len(line) - len(strings.TrimLeft(line, " "))
			if minIndent == -1 || leadingSpaces < minIndent {
				minIndent = leadingSpaces
			}
		}
	}

	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		}
	}
	return strings.TrimLeft(strings.Join(lines, "\n"), "\n")
}

var help = heredoc(`
        An RPN calculator with units.

        Constants:
          pi

        Numbers:
          Decimal numbers (with optional exponent: [eE][-+]?[0-9]+)
          Hexadecimal integers (leading 0x or 0X)
          Octal integers (leading 0o or 0O)
          Binary integers (leading 0b or 0B)
          Base 60: m:s (fractional minutes) or h:m:s (fractional hours)

          Numbers can have a final binary magnitude factor (KMGTPEZY) for
          kilo-, mega-, giga-, tera-, peta-, exa-, zetta- or yotta-byte

        Stack Operations:
          x: exchange top 2 elements of the stack
          d: duplicate top element of the stack (aliased as dup)
          p: pop top element off of the stack (aliased as pop)

        Binary numerical operations (prepend with '@' to reduce the stack):
          + - * /
          *   (aliased as ., · and •)
          **  (aliased as pow, integer dimensionless exponents only)

        Unary numerical operations:
          n     (number: remove any units, aliased as num)
          chs   (change sign)
          r     (reciprocal)

        Units:
          Units are applied if current top of stack does not have any units
          Otherwise the current top of stack is converted to the units

          Units are written as products and quotients of symbols with
          optional exponents, e.g. m/s^2, kg·m^2/s^2, m^(1/2)
          SI units take metric prefixes (km, µs or us, mg) and binary ones (Ki, Mi)

          temperature
            celsius (C or °C), delta celsius (dC or °CΔ)
            fahrenheit (F or °F), delta fahrenheit (dF or °FΔ)
          time
            seconds (s), minutes (min), hours (h or hr), days (day)

          See 'calc units' for every known unit and 'calc define' to add one.
`)
