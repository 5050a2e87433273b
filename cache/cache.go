// Package cache implements the time-bounded memoization of GETs that sits
// between the Redfish tree view and the transport: CachedGet, UncachedGet,
// EnsureFresh and ClearAll, with at-most-one in-flight fetch per URI.
package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/brendoncarroll/stdctx/logctx"
	"golang.org/x/sync/singleflight"

	"github.com/openredfish/dellicius/clock"
	"github.com/openredfish/dellicius/transport"
)

const defaultCapacity = 4096

// Durable is an optional persistence overlay beneath the in-memory cache,
// letting a cold process reuse entries a previous run already fetched. A
// durable entry is still subject to the same maxAge freshness rule as an
// in-memory one; it is consulted on miss, never in place of the rule.
type Durable interface {
	Put(ctx context.Context, uri string, body []byte, insertedAt time.Time) error
	Get(ctx context.Context, uri string) (body []byte, insertedAt time.Time, ok bool, err error)
}

// Getter is the Cached Getter (C3): a shared, concurrency-safe memoization
// of GET by absolute URI.
type Getter struct {
	transport transport.Transport
	clock     clock.Clock
	maxAge    time.Duration
	durable   Durable

	mu  sync.Mutex
	lru *lru.Cache

	sf singleflight.Group
}

// Option configures a Getter.
type Option func(*Getter)

// WithDurable attaches a persistence overlay.
func WithDurable(d Durable) Option {
	return func(g *Getter) { g.durable = d }
}

// WithCapacity bounds the number of URIs held in memory at once.
func WithCapacity(n int) Option {
	return func(g *Getter) { g.lru, _ = lru.New(n) }
}

// New creates a Getter fetching through t, with entries considered fresh
// for up to maxAge.
func New(t transport.Transport, c clock.Clock, maxAge time.Duration, opts ...Option) *Getter {
	g := &Getter{transport: t, clock: c, maxAge: maxAge}
	for _, opt := range opts {
		opt(g)
	}
	if g.lru == nil {
		g.lru, _ = lru.New(defaultCapacity)
	}
	return g
}

// CachedGet returns the body for uri, fetching through the transport only
// on a miss or after the entry has aged past maxAge.
func (g *Getter) CachedGet(ctx context.Context, uri string) (*Entry, error) {
	base, _ := splitFragment(uri)
	if e := g.peek(base); e != nil {
		return e, nil
	}
	v, err, _ := g.sf.Do(base, func() (interface{}, error) {
		if e := g.peek(base); e != nil {
			return e, nil
		}
		return g.fetch(ctx, base)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

// UncachedGet always issues a transport fetch and never populates the
// cache.
func (g *Getter) UncachedGet(ctx context.Context, uri string) (*Entry, error) {
	base, _ := splitFragment(uri)
	resp, err := g.transport.Get(ctx, base)
	if err != nil {
		return nil, err
	}
	if resp.Code/100 != 2 {
		return nil, statusError(resp.Code, base)
	}
	return &Entry{URI: base, Body: resp.Body, InsertedAt: g.clock.Now()}, nil
}

// EnsureFresh re-resolves uri if the currently cached entry (if any) has
// aged past maxAge, and otherwise returns it unchanged. It performs no
// additional fetch when called immediately after a fresh fetch.
func (g *Getter) EnsureFresh(ctx context.Context, uri string) (*Entry, error) {
	return g.CachedGet(ctx, uri)
}

// ClearAll evicts every in-memory cache entry. It is a consistent snapshot
// operation: a concurrent CachedGet observes either the old or the new,
// empty, state. An attached Durable overlay is not cleared, so a later miss
// may still be served from a durable entry that is within maxAge.
func (g *Getter) ClearAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lru.Purge()
}

func (g *Getter) peek(uri string) *Entry {
	g.mu.Lock()
	v, ok := g.lru.Get(uri)
	g.mu.Unlock()
	if !ok {
		return nil
	}
	e := v.(*Entry)
	if e.freshAt(g.clock.Now(), g.maxAge) {
		return e
	}
	return nil
}

func (g *Getter) fetch(ctx context.Context, uri string) (*Entry, error) {
	now := g.clock.Now()
	if g.durable != nil {
		if body, insertedAt, ok, err := g.durable.Get(ctx, uri); err != nil {
			logctx.Debugf(ctx, "cache: durable lookup failed for %s: %v", uri, err)
		} else if ok {
			e := &Entry{URI: uri, Body: body, InsertedAt: insertedAt}
			if e.freshAt(now, g.maxAge) {
				logctx.Debugf(ctx, "cache: durable hit for %s", uri)
				g.mu.Lock()
				g.lru.Add(uri, e)
				g.mu.Unlock()
				return e, nil
			}
		}
	}
	resp, err := g.transport.Get(ctx, uri)
	if err != nil {
		return nil, err
	}
	if resp.Code/100 != 2 {
		return nil, statusError(resp.Code, uri)
	}
	e := &Entry{URI: uri, Body: resp.Body, InsertedAt: now}
	g.mu.Lock()
	g.lru.Add(uri, e)
	g.mu.Unlock()
	if g.durable != nil {
		if err := g.durable.Put(ctx, uri, resp.Body, now); err != nil {
			logctx.Debugf(ctx, "cache: durable write failed for %s: %v", uri, err)
		}
	}
	return e, nil
}
