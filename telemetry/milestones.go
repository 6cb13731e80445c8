// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telemetry

import (
	"slices"
	"sync"
)

// Default thresholds
var (
	ScrollMilestones = []int{25, 50, 75, 90, 100}
	DwellMilestones  = []int{30, 60, 120, 300} // seconds
)

// Milestones reports each threshold the first time a reading reaches it.
type Milestones struct {
	mu         sync.Mutex
	thresholds []int
	reached    map[int]bool
	max        int
}

func NewMilestones(thresholds []int) *Milestones {
	t := slices.Clone(thresholds)
	slices.Sort(t)
	return &Milestones{thresholds: t, reached: make(map[int]bool, len(t))}
}

// Observe records a reading and returns the thresholds crossed for the first
// time, in ascending order.
func (m *Milestones) Observe(reading int) []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reading > m.max {
		m.max = reading
	}

	var crossed []int
	for _, t := range m.thresholds {
		if reading >= t && !m.reached[t] {
			m.reached[t] = true
			crossed = append(crossed, t)
		}
	}
	return crossed
}

// Max is the highest reading seen.
func (m *Milestones) Max() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.max
}

// EngagementLevel buckets time on page.
func EngagementLevel(seconds int) string {
	switch {
	case seconds >= 300:
		return "high"
	case seconds >= 120:
		return "medium"
	case seconds >= 30:
		return "low"
	default:
		return "minimal"
	}
}
