// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stickybar

import "sync"

// Threshold is the scroll percentage past which the bar shows.
const Threshold = 30.0

// Bar is the sticky contact bar.
type Bar struct {
	mu      sync.Mutex
	visible bool
}

// Scroll updates the bar for a scroll position in percent and reports
// whether its visibility changed.
func (b *Bar) Scroll(percent float64) (visible, changed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case percent > Threshold && !b.visible:
		b.visible = true
		changed = true
	case percent <= Threshold && b.visible:
		b.visible = false
		changed = true
	}
	return b.visible, changed
}

func (b *Bar) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}
