// Package pool dispatches wallet RPC queries across a set of
// interchangeable backends in round-robin order.
package pool

import (
	"context"
	"errors"
	"sync"
)

// Queryable is anything that can execute a named wallet method with ordered
// parameters: a connected client, or a Pool of them.
type Queryable interface {
	Query(ctx context.Context, method string, params ...interface{}) (interface{}, error)
}

// ErrNoServers is returned by Query when the pool has no registered members.
var ErrNoServers = errors.New("No Server instances available in the pool.")

// Pool rotates over its members in insertion order, handing each Query to
// the next one. It satisfies Queryable itself, so a Pool can stand wherever
// a single client would.
//
// The mutex keeps the cursor and member list coherent under concurrent use;
// rotation order is deterministic only under non-concurrent Add.
type Pool struct {
	mu      sync.Mutex
	members []Queryable
	index   int
}

func New() *Pool {
	return &Pool{}
}

// Add appends q to the rotation and returns the pool for chained
// registration. Members are never removed or reordered, and Add leaves the
// cursor alone.
func (p *Pool) Add(q Queryable) *Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.members = append(p.members, q)
	return p
}

// Get returns the member the cursor points at and advances the cursor,
// wrapping against the member count at the moment of the call. An empty
// pool returns nil and stays untouched.
func (p *Pool) Get() Queryable {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.members)
	if n == 0 {
		return nil
	}
	q := p.members[p.index%n]
	p.index = (p.index + 1) % n
	return q
}

// Count reports the number of registered members, wherever the cursor is.
func (p *Pool) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.members)
}

// Query forwards one call to the next member in rotation. The member's
// result or error comes back verbatim: no retries, no wrapping, no logging.
func (p *Pool) Query(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	q := p.Get()
	if q == nil {
		return nil, ErrNoServers
	}
	return q.Query(ctx, method, params...)
}

var _ Queryable = (*Pool)(nil)
