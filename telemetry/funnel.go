// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telemetry

import (
	"context"
	"sync"
)

// FunnelReport counts the stages of the conversion funnel. Rates are
// percentages.
type FunnelReport struct {
	PageViews             int     `json:"page_views"`
	SectionViews          int     `json:"section_views"`
	CTAClicks             int     `json:"cta_clicks"`
	FormStarts            int     `json:"form_starts"`
	FormCompletions       int     `json:"form_completions"`
	ExitIntents           int     `json:"exit_intents"`
	CTAConversionRate     float64 `json:"cta_conversion_rate"`
	FormConversionRate    float64 `json:"form_conversion_rate"`
	OverallConversionRate float64 `json:"overall_conversion_rate"`
}

// Funnel keeps every event it sees and reports funnel counts on demand.
// Capacity bounds memory; the oldest events are dropped first.
type Funnel struct {
	mu       sync.Mutex
	events   []Event
	capacity int
	counts   map[string]int
}

// stages are the event names the report reads.
var stages = map[string]bool{
	EventPageView:      true,
	EventSectionView:   true,
	EventCTAClick:      true,
	EventFormStarted:   true,
	EventFormCompleted: true,
	EventExitIntent:    true,
}

// NewFunnel creates a recorder holding at most capacity events. Stage counts
// cover every event ever seen regardless of capacity.
func NewFunnel(capacity int) *Funnel {
	if capacity <= 0 {
		capacity = 1000
	}
	return &Funnel{capacity: capacity, counts: make(map[string]int)}
}

func (f *Funnel) Track(_ context.Context, e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if stages[e.Name] {
		f.counts[e.Name]++
	}
	if len(f.events) == f.capacity {
		copy(f.events, f.events[1:])
		f.events = f.events[:len(f.events)-1]
	}
	f.events = append(f.events, e)
}

// Events returns the retained events, oldest first.
func (f *Funnel) Events() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

// Report computes the funnel.
func (f *Funnel) Report() FunnelReport {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := FunnelReport{
		PageViews:       f.counts[EventPageView],
		SectionViews:    f.counts[EventSectionView],
		CTAClicks:       f.counts[EventCTAClick],
		FormStarts:      f.counts[EventFormStarted],
		FormCompletions: f.counts[EventFormCompleted],
		ExitIntents:     f.counts[EventExitIntent],
	}

	if r.PageViews > 0 {
		r.CTAConversionRate = percent(r.CTAClicks, r.PageViews)
		r.OverallConversionRate = percent(r.FormCompletions, r.PageViews)
	}
	if r.FormStarts > 0 {
		r.FormConversionRate = percent(r.FormCompletions, r.FormStarts)
	}
	return r
}

func percent(n, d int) float64 {
	return float64(n) / float64(d) * 100
}
