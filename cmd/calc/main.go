// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Command calc is an RPN calculator with units.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mikecarlton/units/catalog"
	"github.com/mikecarlton/units/enumerable"
	"github.com/mikecarlton/units/parse"
	"github.com/mikecarlton/units/system"
	"github.com/mikecarlton/units/unit"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v, exiting\n", err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	var flags flagValues

	// setup resolves the options and builds the environment for a command.
	setup := func(cmd *cobra.Command) (*env, error) {
		opts, err := flags.resolve(cmd.Flags())
		if err != nil {
			return nil, err
		}
		return newEnv(opts, out)
	}

	cmd := &cobra.Command{
		Use:           "calc [OPTIONS] ARGUMENTS...",
		Short:         "An RPN calculator with units",
		Long:          help,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			return e.evaluate(args)
		},
	}
	flags.register(cmd.PersistentFlags())
	cmd.Flags().SetInterspersed(false)

	cmd.AddCommand(
		newDefineCommand(setup),
		newForgetCommand(setup),
		newUnitsCommand(setup),
	)
	return cmd
}

// evaluate runs the arguments through the stack and prints it.
func (e *env) evaluate(args []string) error {
	stack := newStack(e)
	for _, arg := range args {
		e.log.WithField("arg", arg).Trace("evaluating")
		if err := stack.eval(arg); err != nil {
			return err
		}
	}
	stack.print(e.out)
	return nil
}

func newDefineCommand(setup func(*cobra.Command) (*env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "define SYMBOL DEFINITION [NAME]",
		Short: "Define a unit and save it in the unit catalog",
		Long: heredoc(`
            Define a unit from an expression of known units, e.g.

              calc define furlong 660·ft
              calc define fpf furlong/day "furlongs per day"
        `),
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			if e.catalog == nil {
				return fmt.Errorf("no unit catalog")
			}

			d := catalog.Definition{Symbol: args[0], Definition: args[1]}
			if len(args) > 2 {
				d.Name = args[2]
			}
			u, err := e.catalog.Define(e.parser, d)
			if err != nil {
				return err
			}
			e.log.WithField("symbol", u.Symbol()).Info("defined unit")
			fmt.Fprintln(e.out, describe(u))
			return nil
		},
	}
}

func newForgetCommand(setup func(*cobra.Command) (*env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "forget SYMBOL",
		Short: "Remove a unit from the unit catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			if e.catalog == nil {
				return fmt.Errorf("no unit catalog")
			}

			removed, err := e.catalog.Delete(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("unit '%s' is not in the catalog", args[0])
			}
			e.ctx.Forget(args[0])
			return nil
		},
	}
}

func newUnitsCommand(setup func(*cobra.Command) (*env, error)) *cobra.Command {
	var systemName string
	cmd := &cobra.Command{
		Use:   "units [UNIT]",
		Short: "List known units, or those convertible to UNIT",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			units := e.ctx.Units()
			if systemName != "" {
				if units, err = e.systemUnits(systemName); err != nil {
					return err
				}
			}
			if len(args) == 1 {
				u, err := e.parser.Parse(args[0])
				if err != nil {
					return err
				}
				units = enumerable.Filter(units, u.IsCompatible)
			}
			lines := enumerable.Map(units, describe)
			fmt.Fprintln(e.out, strings.Join(lines, "\n"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&systemName, "system", "s", "", "Only list units of this system (SI or US)")
	return cmd
}

// systemUnits returns the units of the named system.
func (e *env) systemUnits(name string) ([]*unit.Unit, error) {
	for _, s := range e.systems {
		if strings.EqualFold(s.Name(), name) {
			return s.Units(), nil
		}
	}
	names := enumerable.Map(e.systems, (*system.System).Name)
	return nil, fmt.Errorf("unknown system '%s', expected one of %s", name, strings.Join(names, ", "))
}

// describe returns a line such as "mi  mile  = 1609.344 m".
func describe(u *unit.Unit) string {
	line := u.Symbol()
	if u.Name() != "" {
		line += "  " + u.Name()
	}
	if u.IsSystemUnit() {
		return line
	}

	target := u.SystemUnit()
	c, err := u.ConverterTo(target)
	if err != nil {
		return line
	}
	v, err := c.ConvertDecimal(decimal.NewFromInt(1), mathContext)
	if err != nil {
		return line
	}
	return fmt.Sprintf("%s  = %s %s", line, v.Round(10).String(), parse.Format(target))
}
