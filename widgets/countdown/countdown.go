// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package countdown

import (
	"fmt"
	"time"
)

// DefaultOffset is how far past start the special pricing ends.
const DefaultOffset = 2*24*time.Hour + 14*time.Hour

// ExpiredMessage replaces the digits once the deadline passes.
const ExpiredMessage = "Special pricing expired!"

// Remaining is the countdown as displayed, each unit zero padded.
type Remaining struct {
	Days    string `json:"days"`
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds"`
	Expired bool   `json:"expired"`
	Message string `json:"message,omitempty"`
}

// Timer counts down to a fixed deadline.
type Timer struct {
	Target time.Time
}

// New sets the deadline offset after start. A zero offset means
// DefaultOffset.
func New(start time.Time, offset time.Duration) Timer {
	if offset == 0 {
		offset = DefaultOffset
	}
	return Timer{Target: start.Add(offset)}
}

// At returns what the timer shows at now.
func (t Timer) At(now time.Time) Remaining {
	d := t.Target.Sub(now)
	if d < 0 {
		return Remaining{Expired: true, Message: ExpiredMessage}
	}

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second

	return Remaining{
		Days:    pad(int(days)),
		Hours:   pad(int(hours)),
		Minutes: pad(int(minutes)),
		Seconds: pad(int(seconds)),
	}
}

func pad(n int) string {
	return fmt.Sprintf("%02d", n)
}
