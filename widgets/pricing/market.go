// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pricing

import (
	"math"
	"math/rand/v2"
	"sync"
)

// MaxFluctuation is the half-width of the simulated price band (±2%).
const MaxFluctuation = 0.02

// RandSource yields values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Change is one simulated price movement.
type Change struct {
	Title string `json:"title"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// Market drifts card prices around their configured base. The movement is
// cosmetic and carries no business meaning.
type Market struct {
	mu      sync.Mutex
	base    map[string]int
	current map[string]int
	order   []string
	rnd     RandSource
}

// NewMarket starts every card at its configured price. rnd may be nil.
func NewMarket(cards []Card, rnd RandSource) *Market {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m := &Market{
		base:    make(map[string]int, len(cards)),
		current: make(map[string]int, len(cards)),
		rnd:     rnd,
	}
	for _, c := range cards {
		m.base[c.Title] = c.Price
		m.current[c.Title] = c.Price
		m.order = append(m.order, c.Title)
	}
	return m
}

// Fluctuate moves every price to a fresh point within the band around its
// base and returns the prices that actually changed.
func (m *Market) Fluctuate() []Change {
	m.mu.Lock()
	defer m.mu.Unlock()

	var changes []Change
	for _, title := range m.order {
		base := m.base[title]
		f := (m.rnd.Float64() - 0.5) * 2 * MaxFluctuation
		next := int(math.Round(float64(base) * (1 + f)))
		if next != m.current[title] {
			changes = append(changes, Change{Title: title, From: m.current[title], To: next})
			m.current[title] = next
		}
	}
	return changes
}

// Prices returns the current price per title.
func (m *Market) Prices() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]int, len(m.current))
	for k, v := range m.current {
		out[k] = v
	}
	return out
}
