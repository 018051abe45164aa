// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/mikecarlton/units/catalog"
	"github.com/mikecarlton/units/parse"
	"github.com/mikecarlton/units/system"
	"github.com/mikecarlton/units/unit"
)

// env is everything a calculation needs: the unit systems, the parser and
// the user's unit catalog.
type env struct {
	opts     Options
	log      *logrus.Logger
	out      io.Writer
	ctx      *unit.Context
	systems  []*system.System
	parser   *parse.Parser
	catalog  *catalog.Catalog
	registry *prometheus.Registry
}

// resolvers looks symbols up in each resolver in turn.
type resolvers []parse.Resolver

func (rs resolvers) Lookup(symbol string) (*unit.Unit, bool) {
	for _, r := range rs {
		if u, ok := r.Lookup(symbol); ok {
			return u, true
		}
	}
	return nil, false
}

// aliases maps calculator shorthands such as "C" to unit symbols.
type aliases struct {
	table  map[string]string
	target parse.Resolver
}

func (a aliases) Lookup(symbol string) (*unit.Unit, bool) {
	if target, ok := a.table[symbol]; ok {
		return a.target.Lookup(target)
	}
	return nil, false
}

func newLogger(opts Options) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case opts.Trace:
		log.SetLevel(logrus.TraceLevel)
	case opts.Verbose > 1:
		log.SetLevel(logrus.DebugLevel)
	case opts.Verbose == 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// newEnv builds the SI and US systems, then opens and loads the unit
// catalog. A catalog that cannot be opened is logged and skipped.
func newEnv(opts Options, out io.Writer) (*env, error) {
	e := &env{
		opts:     opts,
		log:      newLogger(opts),
		out:      out,
		ctx:      unit.NewContext(),
		registry: prometheus.NewRegistry(),
	}
	for _, c := range e.ctx.Collectors() {
		e.registry.MustRegister(c)
	}

	si, err := system.SI(e.ctx)
	if err != nil {
		return nil, err
	}
	us, err := system.US(e.ctx, si)
	if err != nil {
		return nil, err
	}
	e.systems = []*system.System{si, us}
	e.log.WithField("units", len(e.ctx.Units())).Debug("registered unit systems")

	// systems fall back to ctx, where catalog units are registered
	chain := resolvers{si, us}
	e.parser = parse.New(e.ctx, aliases{table: opts.Aliases, target: chain}, chain)

	path, err := e.databasePath()
	if err != nil {
		e.log.WithError(err).Warn("unit catalog disabled")
		return e, nil
	}
	if e.catalog, err = catalog.Open(path, catalog.WithLogger(e.log)); err != nil {
		e.log.WithError(err).Warn("unit catalog disabled")
		return e, nil
	}
	if _, err := e.catalog.Load(e.parser); err != nil {
		e.log.WithError(err).Debug("some catalog units were not loaded")
	}
	return e, nil
}

func (e *env) databasePath() (string, error) {
	path := e.opts.Database
	if path == "" {
		return catalog.DefaultPath()
	}
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(homeDir, path[2:])
	}
	return path, nil
}

// close logs the unit cache statistics and closes the catalog.
func (e *env) close() {
	if e.log.IsLevelEnabled(logrus.DebugLevel) {
		families, err := e.registry.Gather()
		if err != nil {
			e.log.WithError(err).Debug("failed to gather metrics")
		}
		for _, mf := range families {
			for _, m := range mf.GetMetric() {
				e.log.WithField("value", m.GetCounter().GetValue()).Debug(mf.GetName())
			}
		}
	}
	if e.catalog != nil {
		if err := e.catalog.Close(); err != nil {
			e.log.WithError(err).Warn("failed to close unit catalog")
		}
	}
}
