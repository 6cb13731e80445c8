// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package exitintent

import (
	"fmt"
	"sync"
	"time"
)

// Threshold is how close to the top edge, in pixels, the pointer must leave.
const Threshold = 5

// HoldStart is where the "we're holding this price" timer starts.
const HoldStart = 47*time.Minute + 32*time.Second

// Popup shows at most once per visit.
type Popup struct {
	mu      sync.Mutex
	shown   bool
	visible bool
	started time.Time
	now     func() time.Time
}

// View is the popup state.
type View struct {
	Visible   bool   `json:"visible"`
	Shown     bool   `json:"shown"`
	HoldTimer string `json:"hold_timer"`
}

// New starts the hold timer at the visit start. now may be nil.
func New(now func() time.Time) *Popup {
	if now == nil {
		now = time.Now
	}
	return &Popup{now: now, started: now()}
}

// MouseLeave handles the pointer leaving the document at clientY. It
// reports whether this call opened the popup.
func (p *Popup) MouseLeave(clientY float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shown || clientY > Threshold {
		return false
	}
	p.shown = true
	p.visible = true
	return true
}

// Close hides the popup. Close button, backdrop and Escape all land here.
func (p *Popup) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = false
}

func (p *Popup) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	return View{
		Visible:   p.visible,
		Shown:     p.shown,
		HoldTimer: HoldTimer(p.now().Sub(p.started)),
	}
}

// HoldTimer renders the hold countdown after elapsed, as m:ss, stopping at
// 0:00.
func HoldTimer(elapsed time.Duration) string {
	left := HoldStart - elapsed.Truncate(time.Second)
	if left < 0 {
		left = 0
	}
	minutes := int(left / time.Minute)
	seconds := int((left % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
