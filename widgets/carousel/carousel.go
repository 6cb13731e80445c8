// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package carousel tracks which testimonial a visitor is looking at.
//
// Auto-rotation is not driven by a timer. The active slide is derived from
// the time elapsed since the last interaction, so a session that is never
// polled costs nothing.
package carousel

import (
	"errors"
	"sync"
	"time"
)

const (
	AutoRotateInterval = 5 * time.Second
	RestartDelay       = 1 * time.Second
	SwipeThreshold     = 50 // pixels
)

var ErrOutOfRange = errors.New("slide index out of range")

// View is the rendered state of the carousel.
type View struct {
	Index      int    `json:"index"`
	Count      int    `json:"count"`
	Indicators []bool `json:"indicators"`
	Paused     bool   `json:"paused"`
}

type Carousel struct {
	mu     sync.Mutex
	count  int
	base   int
	anchor time.Time
	paused bool
	now    func() time.Time
}

// New creates a carousel over count slides. now may be nil.
func New(count int, now func() time.Time) *Carousel {
	if now == nil {
		now = time.Now
	}
	return &Carousel{count: count, now: now, anchor: now()}
}

// rotates reports whether the carousel has anything to rotate through.
func (c *Carousel) rotates() bool {
	return c.count > 1
}

func (c *Carousel) currentLocked() int {
	if !c.rotates() {
		return 0
	}
	if c.paused {
		return c.base
	}
	elapsed := c.now().Sub(c.anchor)
	if elapsed < 0 {
		return c.base
	}
	steps := int(elapsed / AutoRotateInterval)
	return (c.base + steps) % c.count
}

// Current returns the active slide.
func (c *Carousel) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

// goTo makes index active and restarts auto-rotation after RestartDelay.
func (c *Carousel) goTo(index int) {
	c.base = index
	c.anchor = c.now().Add(RestartDelay)
}

func (c *Carousel) Next() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rotates() {
		c.goTo((c.currentLocked() + 1) % c.count)
	}
	return c.viewLocked()
}

func (c *Carousel) Prev() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rotates() {
		cur := c.currentLocked()
		if cur == 0 {
			c.goTo(c.count - 1)
		} else {
			c.goTo(cur - 1)
		}
	}
	return c.viewLocked()
}

// GoTo jumps to a slide, as clicking an indicator does.
func (c *Carousel) GoTo(index int) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= c.count {
		return c.viewLocked(), ErrOutOfRange
	}
	c.goTo(index)
	return c.viewLocked(), nil
}

// Swipe handles a touch gesture. Swiping left (start right of end) moves
// forward. Gestures shorter than SwipeThreshold are ignored.
func (c *Carousel) Swipe(startX, endX float64) View {
	diff := startX - endX
	switch {
	case diff > SwipeThreshold:
		return c.Next()
	case diff < -SwipeThreshold:
		return c.Prev()
	default:
		return c.View()
	}
}

// Pause stops auto-rotation while the pointer is over the carousel.
func (c *Carousel) Pause() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused {
		c.base = c.currentLocked()
		c.paused = true
	}
	return c.viewLocked()
}

// Resume restarts auto-rotation from the current slide.
func (c *Carousel) Resume() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused {
		c.paused = false
		c.anchor = c.now()
	}
	return c.viewLocked()
}

func (c *Carousel) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Carousel) viewLocked() View {
	cur := c.currentLocked()
	v := View{
		Index:      cur,
		Count:      c.count,
		Indicators: make([]bool, c.count),
		Paused:     c.paused,
	}
	if c.count > 0 {
		v.Indicators[cur] = true
	}
	return v
}
