// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"sort"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mikecarlton/units/converter"
	"github.com/mikecarlton/units/dimension"
)

// Default cache bounds.
const (
	DefaultCanonicalCacheSize = 4096
	DefaultConverterCacheSize = 64
)

// Context is a registry of units: it indexes registered units by symbol and
// name, keeps the canonical instance of every compound built from system
// units and bounds the memory spent on anonymous compounds and per-unit
// converter caches. A Context is safe for concurrent use.
type Context struct {
	nextID        atomic.Uint64
	converterSize int

	mu      sync.RWMutex
	symbols map[string]*Unit
	names   map[string]*Unit
	named   map[string]*Unit // signature -> registered product unit

	canonical *lru.Cache[string, *Unit]
	dims      *lru.Cache[string, dimension.Dimension]

	one     *Unit
	metrics metrics
}

type metrics struct {
	canonicalHits   prometheus.Counter
	canonicalMisses prometheus.Counter
	converterHits   prometheus.Counter
	converterMisses prometheus.Counter
}

// Option configures a Context.
type Option func(*options)

type options struct {
	canonicalSize int
	converterSize int
	constLabels   prometheus.Labels
}

// WithCanonicalCacheSize bounds the number of anonymous compound units and
// dimensions kept in the canonical cache. Non-positive sizes are ignored.
func WithCanonicalCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.canonicalSize = n
		}
	}
}

// WithConverterCacheSize bounds the number of converters cached per source
// unit. Non-positive sizes are ignored.
func WithConverterCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.converterSize = n
		}
	}
}

// WithMetricLabels attaches constant labels to the Context's metrics, so
// that several contexts can share one prometheus registry.
func WithMetricLabels(labels prometheus.Labels) Option {
	return func(o *options) {
		o.constLabels = labels
	}
}

// NewContext returns an empty Context holding only the dimensionless unit
// One.
func NewContext(opts ...Option) *Context {
	o := options{
		canonicalSize: DefaultCanonicalCacheSize,
		converterSize: DefaultConverterCacheSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	ctx := &Context{
		converterSize: o.converterSize,
		symbols:       make(map[string]*Unit),
		names:         make(map[string]*Unit),
		named:         make(map[string]*Unit),
		metrics:       newMetrics(o.constLabels),
	}
	// sizes are positive so New cannot fail
	ctx.canonical, _ = lru.New[string, *Unit](o.canonicalSize)
	ctx.dims, _ = lru.New[string, dimension.Dimension](o.canonicalSize)
	ctx.one = &Unit{
		ctx:      ctx,
		id:       ctx.nextID.Add(1),
		kind:     productKind,
		dim:      dimension.None,
		toSystem: converter.Identity,
	}
	ctx.one.system = ctx.one
	return ctx
}

func newMetrics(labels prometheus.Labels) metrics {
	counter := func(subsystem, name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "units",
			Subsystem:   subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	return metrics{
		canonicalHits:   counter("canonical", "hits_total", "Compound units resolved to an existing canonical instance."),
		canonicalMisses: counter("canonical", "misses_total", "Compound units constructed anew."),
		converterHits:   counter("converter", "hits_total", "Conversions served from a per-unit converter cache."),
		converterMisses: counter("converter", "misses_total", "Conversions computed and cached."),
	}
}

// Collectors returns the Context's cache metrics for registration with a
// prometheus registry.
func (ctx *Context) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ctx.metrics.canonicalHits,
		ctx.metrics.canonicalMisses,
		ctx.metrics.converterHits,
		ctx.metrics.converterMisses,
	}
}

// One returns the dimensionless multiplicative identity unit.
func (ctx *Context) One() *Unit { return ctx.one }

// NewBase returns a new base unit of dimension d. A base unit is its own
// system unit.
func (ctx *Context) NewBase(symbol, name string, d dimension.Dimension) (*Unit, error) {
	if symbol == "" {
		return nil, ErrInvalid.New("base unit without symbol")
	}
	u := &Unit{
		ctx:      ctx,
		id:       ctx.nextID.Add(1),
		kind:     baseKind,
		symbol:   symbol,
		name:     name,
		dim:      ctx.intern(d),
		toSystem: converter.Identity,
	}
	u.key = idKey(u.id)
	u.system = u
	return u, nil
}

// NewAlternate returns a system unit with the dimension of parent that is
// nevertheless distinct from it, such as the radian for the dimensionless
// One. parent must be a system unit.
func (ctx *Context) NewAlternate(symbol, name string, parent *Unit) (*Unit, error) {
	if symbol == "" {
		return nil, ErrInvalid.New("alternate unit without symbol")
	}
	if parent.ctx != ctx {
		return nil, ErrInvalid.New("%s belongs to another context", parent)
	}
	if !parent.isReference() {
		return nil, ErrInvalid.New("alternate unit %s of non-system unit %s", symbol, parent)
	}
	u := &Unit{
		ctx:      ctx,
		id:       ctx.nextID.Add(1),
		kind:     alternateKind,
		symbol:   symbol,
		name:     name,
		dim:      parent.dim,
		toSystem: converter.Identity,
	}
	u.key = idKey(u.id)
	u.system = u
	return u, nil
}

// Register indexes units by symbol and name. Registered products built from
// system units become the canonical instance for their signature, replacing
// any anonymous instance already cached. Registering a unit twice is a
// no-op; a symbol or name already taken by another unit fails with
// ErrInvalid and leaves the Context unchanged.
func (ctx *Context) Register(units ...*Unit) error {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	batch := make(map[string]*Unit, len(units))
	names := make(map[string]*Unit, len(units))
	for _, u := range units {
		if u.ctx != ctx {
			return ErrInvalid.New("%s belongs to another context", u)
		}
		if u.symbol == "" {
			return ErrInvalid.New("cannot register anonymous unit %s", u)
		}
		if prev, ok := ctx.symbols[u.symbol]; ok && prev != u {
			return ErrInvalid.New("symbol %q already registered", u.symbol)
		}
		if prev, ok := batch[u.symbol]; ok && prev != u {
			return ErrInvalid.New("symbol %q registered twice", u.symbol)
		}
		batch[u.symbol] = u
		if u.name == "" {
			continue
		}
		if prev, ok := ctx.names[u.name]; ok && prev != u {
			return ErrInvalid.New("name %q already registered", u.name)
		}
		if prev, ok := names[u.name]; ok && prev != u {
			return ErrInvalid.New("name %q registered twice", u.name)
		}
		names[u.name] = u
	}
	for _, u := range units {
		ctx.symbols[u.symbol] = u
		if u.name != "" {
			ctx.names[u.name] = u
		}
		if u.kind == productKind && u.isReference() {
			if _, ok := ctx.named[u.key]; !ok {
				ctx.named[u.key] = u
			}
			ctx.canonical.Remove(u.key)
		}
	}
	return nil
}

// Forget removes the unit registered under symbol from the symbol and name
// indexes and, if it was canonical for its signature, from the named table.
// It reports whether a unit was removed.
func (ctx *Context) Forget(symbol string) bool {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	u, ok := ctx.symbols[symbol]
	if !ok {
		return false
	}
	delete(ctx.symbols, symbol)
	if ctx.names[u.name] == u {
		delete(ctx.names, u.name)
	}
	if ctx.named[u.key] == u {
		delete(ctx.named, u.key)
	}
	return true
}

// Lookup returns the unit registered under symbol.
func (ctx *Context) Lookup(symbol string) (*Unit, bool) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	u, ok := ctx.symbols[symbol]
	return u, ok
}

// ByName returns the unit registered under name.
func (ctx *Context) ByName(name string) (*Unit, bool) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	u, ok := ctx.names[name]
	return u, ok
}

// Units returns the registered units sorted by symbol.
func (ctx *Context) Units() []*Unit {
	ctx.mu.RLock()
	units := make([]*Unit, 0, len(ctx.symbols))
	for _, u := range ctx.symbols {
		units = append(units, u)
	}
	ctx.mu.RUnlock()

	sort.Slice(units, func(i, j int) bool {
		return units[i].symbol < units[j].symbol
	})
	return units
}

// canonicalFor returns the canonical instance for a product signature.
// Registered named units win over cached anonymous ones.
func (ctx *Context) canonicalFor(key string) (*Unit, bool) {
	ctx.mu.RLock()
	u, ok := ctx.named[key]
	ctx.mu.RUnlock()
	if ok {
		return u, true
	}
	return ctx.canonical.Peek(key)
}

// publish inserts u as the canonical instance for its signature unless
// another goroutine got there first, in which case that instance is
// returned.
func (ctx *Context) publish(u *Unit) *Unit {
	if prev, ok, _ := ctx.canonical.PeekOrAdd(u.key, u); ok {
		return prev
	}
	return u
}

// intern returns the canonical instance of a product dimension.
func (ctx *Context) intern(d dimension.Dimension) dimension.Dimension {
	if _, ok := d.(*dimension.Product); !ok || d == dimension.None {
		return d
	}
	if prev, ok, _ := ctx.dims.PeekOrAdd(d.Key(), d); ok {
		return prev
	}
	return d
}
