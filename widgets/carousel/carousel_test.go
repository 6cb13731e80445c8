// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package carousel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
	return &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestAutoRotate(t *testing.T) {
	clk := newClock()
	c := New(3, clk.now)

	assert.Equal(t, 0, c.Current())
	clk.advance(AutoRotateInterval - time.Millisecond)
	assert.Equal(t, 0, c.Current())
	clk.advance(time.Millisecond)
	assert.Equal(t, 1, c.Current())
	clk.advance(2 * AutoRotateInterval)
	assert.Equal(t, 0, c.Current())
}

func TestNavigationWraps(t *testing.T) {
	clk := newClock()
	c := New(3, clk.now)

	assert.Equal(t, 2, c.Prev().Index)
	assert.Equal(t, 0, c.Next().Index)
	assert.Equal(t, 1, c.Next().Index)

	v := c.View()
	assert.Equal(t, []bool{false, true, false}, v.Indicators)
	assert.Equal(t, 3, v.Count)
}

func TestManualNavigationRestartsRotation(t *testing.T) {
	clk := newClock()
	c := New(3, clk.now)

	clk.advance(4 * time.Second)
	c.Next()

	// the next automatic advance waits for the restart delay plus a full interval
	clk.advance(AutoRotateInterval)
	assert.Equal(t, 1, c.Current())
	clk.advance(RestartDelay)
	assert.Equal(t, 2, c.Current())
}

func TestGoTo(t *testing.T) {
	c := New(3, newClock().now)

	v, err := c.GoTo(2)
	assert.NoError(t, err)
	assert.Equal(t, 2, v.Index)

	for _, i := range []int{-1, 3} {
		v, err = c.GoTo(i)
		assert.True(t, errors.Is(err, ErrOutOfRange), "index %d", i)
		assert.Equal(t, 2, v.Index)
	}
}

func TestSwipe(t *testing.T) {
	tests := []struct {
		name         string
		startX, endX float64
		want         int
	}{
		{"left swipe moves forward", 300, 200, 1},
		{"right swipe moves back", 200, 300, 2},
		{"short gesture ignored", 200, 160, 0},
		{"exactly threshold ignored", 250, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(3, newClock().now)
			assert.Equal(t, tt.want, c.Swipe(tt.startX, tt.endX).Index)
		})
	}
}

func TestPauseResume(t *testing.T) {
	clk := newClock()
	c := New(3, clk.now)

	clk.advance(AutoRotateInterval)
	v := c.Pause()
	assert.True(t, v.Paused)
	assert.Equal(t, 1, v.Index)

	clk.advance(time.Minute)
	assert.Equal(t, 1, c.Current())

	v = c.Resume()
	assert.False(t, v.Paused)
	assert.Equal(t, 1, v.Index)
	clk.advance(AutoRotateInterval)
	assert.Equal(t, 2, c.Current())
}

func TestFewSlides(t *testing.T) {
	clk := newClock()

	single := New(1, clk.now)
	clk.advance(time.Hour)
	assert.Equal(t, 0, single.Next().Index)
	assert.Equal(t, []bool{true}, single.View().Indicators)

	empty := New(0, clk.now)
	assert.Empty(t, empty.Prev().Indicators)
	_, err := empty.GoTo(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
