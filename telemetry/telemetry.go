// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telemetry

import (
	"context"
	"log/slog"
	"time"
)

// Event names emitted by the landing page
const (
	EventPageView           = "page_view"
	EventSectionView        = "section_view"
	EventCTAClick           = "cta_click"
	EventFormStarted        = "form_started"
	EventFormCompleted      = "form_completed"
	EventFormAbandoned      = "form_abandoned"
	EventFormSubmit         = "form_submit"
	EventFormStepCompleted  = "form_step_completed"
	EventInterestSelected   = "interest_selected"
	EventExitIntent         = "exit_intent_triggered"
	EventPricingCardSelect  = "pricing_card_selected"
	EventScrollMilestone    = "scroll_milestone"
	EventTimeOnPage         = "time_on_page"
	EventPageLoadTime       = "page_load_time"
	EventCarouselNavigation = "testimonial_viewed"
)

// Event categories
const (
	CategoryEngagement      = "engagement"
	CategoryFormInteraction = "form_interaction"
	CategoryPerformance     = "performance"
)

// Event is one analytics hit.
type Event struct {
	Name       string         `json:"event"`
	Category   string         `json:"event_category,omitempty"`
	Label      string         `json:"event_label,omitempty"`
	Value      int            `json:"value,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Sink receives events. Implementations must not block for long; Track is
// called on request paths.
type Sink interface {
	Track(ctx context.Context, e Event)
}

// Emit sends e to sink if there is one. A nil sink means analytics are not
// installed, which is not an error.
func Emit(ctx context.Context, sink Sink, e Event) {
	if sink == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	sink.Track(ctx, e)
}

// Multi fans an event out to every sink.
type Multi []Sink

func (m Multi) Track(ctx context.Context, e Event) {
	for _, s := range m {
		if s != nil {
			s.Track(ctx, e)
		}
	}
}

// LogSink writes events to the structured log.
type LogSink struct {
	Logger *slog.Logger
}

func (l LogSink) Track(ctx context.Context, e Event) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "conversion event",
		"event", e.Name,
		"category", e.Category,
		"label", e.Label,
		"value", e.Value,
		"properties", e.Properties,
	)
}
