// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package counter simulates the "people inquired this week" figure. It is
// presentational; the numbers are not derived from real inquiries.
package counter

import (
	"math/rand/v2"
	"sync"
)

const (
	DefaultBase = 47

	// an update tick grows the base only when the draw exceeds this
	growCutoff = 0.7
)

// RandSource is the subset of *rand.Rand the counter needs.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

// Counter holds the base count shown on the page.
type Counter struct {
	mu   sync.Mutex
	base int
	rnd  RandSource
}

// New creates a counter at base. rnd may be nil.
func New(base int, rnd RandSource) *Counter {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Counter{base: base, rnd: rnd}
}

// Value is the current base count.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base
}

// Update grows the base by 1 to 3 with probability 0.3. It reports whether
// the base changed.
func (c *Counter) Update() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rnd.Float64() <= growCutoff {
		return c.base, false
	}
	c.base += c.rnd.IntN(3) + 1
	return c.base, true
}

// Fluctuation returns a transient display value 1 to 5 above the base. The
// base itself is unchanged.
func (c *Counter) Fluctuation() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base + c.rnd.IntN(5) + 1
}
