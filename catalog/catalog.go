// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package catalog persists user-defined units in a SQLite database. Each
// row holds a symbol, a descriptive name and a definition in the unit
// grammar, e.g. ("furlong", "furlong", "660·ft").
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/errs"

	"github.com/mikecarlton/units/parse"
	"github.com/mikecarlton/units/unit"
)

// Definition is a stored unit definition.
type Definition struct {
	Symbol     string
	Name       string
	Definition string
	CreatedAt  time.Time
}

// Catalog is an open definitions database.
type Catalog struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// Option configures Open.
type Option func(*Catalog)

// WithLogger sets the logger; the default is the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Catalog) { c.log = log }
}

// DefaultPath returns ~/data/units.sqlite3.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, "data", "units.sqlite3"), nil
}

// Open opens the database at path, creating it and its directory if needed.
func Open(path string, opts ...Option) (*Catalog, error) {
	c := &Catalog{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(c)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS units (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		definition TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	c.db = db
	c.log.WithField("path", path).Debug("opened unit catalog")
	return c, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Save stores d, replacing any definition with the same symbol.
func (c *Catalog) Save(d Definition) error {
	query := `
	INSERT OR REPLACE INTO units (symbol, name, definition)
	VALUES (?, ?, ?)
	`
	if _, err := c.db.Exec(query, d.Symbol, d.Name, d.Definition); err != nil {
		return fmt.Errorf("failed to save %q: %w", d.Symbol, err)
	}
	c.log.WithFields(logrus.Fields{"symbol": d.Symbol, "definition": d.Definition}).Debug("saved unit")
	return nil
}

// Get returns the definition of symbol, or nil if there is none.
func (c *Catalog) Get(symbol string) (*Definition, error) {
	query := `
	SELECT symbol, name, definition, created_at
	FROM units
	WHERE symbol = ?
	`

	var d Definition
	err := c.db.QueryRow(query, symbol).Scan(&d.Symbol, &d.Name, &d.Definition, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns every definition in the order they were first saved, so that
// definitions come after the units they refer to.
func (c *Catalog) List() ([]Definition, error) {
	rows, err := c.db.Query(`SELECT symbol, name, definition, created_at FROM units ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Definition
	for rows.Next() {
		var d Definition
		if err := rows.Scan(&d.Symbol, &d.Name, &d.Definition, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete removes the definition of symbol and reports whether there was one.
func (c *Catalog) Delete(symbol string) (bool, error) {
	res, err := c.db.Exec(`DELETE FROM units WHERE symbol = ?`, symbol)
	if err != nil {
		return false, fmt.Errorf("failed to delete %q: %w", symbol, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	c.log.WithField("symbol", symbol).Debug("deleted unit")
	return n > 0, nil
}

// Define parses d, registers the unit on the parser's Context and saves d.
// Nothing is saved when the definition does not parse or register.
func (c *Catalog) Define(p *parse.Parser, d Definition) (*unit.Unit, error) {
	u, err := build(p, d)
	if err != nil {
		return nil, err
	}
	if err := c.Save(d); err != nil {
		p.Context().Forget(d.Symbol)
		return nil, err
	}
	return u, nil
}

// Load registers every stored definition on the parser's Context. A
// definition that fails is logged and skipped; the failures are returned
// together with the units that loaded.
func (c *Catalog) Load(p *parse.Parser) ([]*unit.Unit, error) {
	defs, err := c.List()
	if err != nil {
		return nil, err
	}

	var group errs.Group
	var out []*unit.Unit
	for _, d := range defs {
		u, err := build(p, d)
		if err != nil {
			c.log.WithError(err).WithField("symbol", d.Symbol).Warn("skipping unit definition")
			group.Add(err)
			continue
		}
		out = append(out, u)
	}
	c.log.WithField("count", len(out)).Debug("loaded unit catalog")
	return out, group.Err()
}

func build(p *parse.Parser, d Definition) (*unit.Unit, error) {
	u, err := p.Parse(d.Definition)
	if err != nil {
		return nil, fmt.Errorf("failed to define %q: %w", d.Symbol, err)
	}
	if u, err = u.Labeled(d.Symbol, d.Name); err != nil {
		return nil, err
	}
	if err := p.Context().Register(u); err != nil {
		return nil, err
	}
	return u, nil
}
