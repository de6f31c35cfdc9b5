// Package memory implements store.Gateway over in-process rows. It backs the
// package tests and local runs seeded from a JSON fixture.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/diretoriaja/portal/pkg/store"
)

type Gateway struct {
	mu       sync.RWMutex
	data     map[string][]store.Row
	failures map[string]error
	delays   map[string]time.Duration
}

func New() *Gateway {
	return &Gateway{
		data:     make(map[string][]store.Row),
		failures: make(map[string]error),
		delays:   make(map[string]time.Duration),
	}
}

// Load seeds the gateway from a JSON object mapping collection names to
// arrays of rows.
func Load(r io.Reader) (*Gateway, error) {
	var raw map[string][]map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	g := New()
	for collection, rows := range raw {
		for _, row := range rows {
			g.Insert(collection, store.Row(row))
		}
	}
	return g, nil
}

func (g *Gateway) Insert(collection string, rows ...store.Row) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range rows {
		g.data[collection] = append(g.data[collection], maps.Clone(r))
	}
}

// Fail makes every later call on collection return err wrapped with
// store.ErrUpstreamUnavailable. A nil err clears the failure.
func (g *Gateway) Fail(collection string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		delete(g.failures, collection)
		return
	}
	g.failures[collection] = err
}

// Delay makes every later call on collection wait d or until the context ends.
func (g *Gateway) Delay(collection string, d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.delays[collection] = d
}

func (g *Gateway) before(ctx context.Context, collection string) error {
	g.mu.RLock()
	failure := g.failures[collection]
	delay := g.delays[collection]
	g.mu.RUnlock()

	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w: %w", collection, store.ErrUpstreamUnavailable, ctx.Err())
		case <-t.C:
		}
	}
	if failure != nil {
		return fmt.Errorf("%s: %w: %w", collection, store.ErrUpstreamUnavailable, failure)
	}
	return ctx.Err()
}

func (g *Gateway) Find(ctx context.Context, collection string, q store.Query) ([]store.Row, error) {
	if err := q.Validate(collection); err != nil {
		return nil, err
	}
	if err := g.before(ctx, collection); err != nil {
		return nil, err
	}

	g.mu.RLock()
	matched := g.match(collection, q.Filters)
	g.mu.RUnlock()

	if len(q.OrderBy) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			return less(matched[i], matched[j], q.OrderBy)
		})
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	if len(q.Columns) > 0 {
		for i, r := range matched {
			projected := make(store.Row, len(q.Columns))
			for _, c := range q.Columns {
				if v, ok := r[c]; ok {
					projected[c] = v
				}
			}
			matched[i] = projected
		}
	}
	return matched, nil
}

func (g *Gateway) Count(ctx context.Context, collection string, filters []store.Filter) (int64, error) {
	if err := store.ValidateIdentifier(collection); err != nil {
		return 0, err
	}
	if err := store.ValidateFilters(filters); err != nil {
		return 0, err
	}
	if err := g.before(ctx, collection); err != nil {
		return 0, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	return int64(len(g.match(collection, filters))), nil
}

func (g *Gateway) GetOne(ctx context.Context, collection string, filters []store.Filter) (store.Row, error) {
	rows, err := g.Find(ctx, collection, store.Query{Filters: filters, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return rows[0], nil
}

func (g *Gateway) UpdateField(ctx context.Context, collection string, filters []store.Filter, field string, value any) (int64, error) {
	if err := store.ValidateIdentifier(field); err != nil {
		return 0, err
	}
	if err := store.ValidateFilters(filters); err != nil {
		return 0, err
	}
	if err := g.before(ctx, collection); err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	var n int64
	for _, r := range g.data[collection] {
		if matches(r, filters) {
			r[field] = value
			n++
		}
	}
	return n, nil
}

// match returns copies of the matching rows. Callers hold at least a read lock.
func (g *Gateway) match(collection string, filters []store.Filter) []store.Row {
	var out []store.Row
	for _, r := range g.data[collection] {
		if matches(r, filters) {
			out = append(out, maps.Clone(r))
		}
	}
	return out
}

func matches(r store.Row, filters []store.Filter) bool {
	for _, f := range filters {
		v := r[f.Field]
		switch f.Op {
		case store.OpEq:
			if v == nil || compare(v, f.Value) != 0 {
				return false
			}
		case store.OpGte:
			if v == nil || compare(v, f.Value) < 0 {
				return false
			}
		case store.OpNotNull:
			if v == nil {
				return false
			}
		case store.OpIsNull:
			if v != nil {
				return false
			}
		}
	}
	return true
}

// less orders rows by each key in turn. Nulls sort last in both directions.
func less(a, b store.Row, order []store.Order) bool {
	for _, o := range order {
		va, vb := a[o.Field], b[o.Field]
		switch {
		case va == nil && vb == nil:
			continue
		case va == nil:
			return false
		case vb == nil:
			return true
		}
		c := compare(va, vb)
		if c == 0 {
			continue
		}
		if o.Ascending {
			return c < 0
		}
		return c > 0
	}
	return false
}
