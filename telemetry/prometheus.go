// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telemetry

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// OtherLabel replaces event names and labels the sink does not track
// individually.
const OtherLabel = "other"

// MaxLabelsPerEvent caps the distinct label values kept for one event name.
const MaxLabelsPerEvent = 20

var knownEvents = map[string]bool{
	EventPageView:           true,
	EventSectionView:        true,
	EventCTAClick:           true,
	EventFormStarted:        true,
	EventFormCompleted:      true,
	EventFormAbandoned:      true,
	EventFormSubmit:         true,
	EventFormStepCompleted:  true,
	EventInterestSelected:   true,
	EventExitIntent:         true,
	EventPricingCardSelect:  true,
	EventScrollMilestone:    true,
	EventTimeOnPage:         true,
	EventPageLoadTime:       true,
	EventCarouselNavigation: true,
}

// Known reports whether name is one of the events the page emits.
func Known(name string) bool {
	return knownEvents[name]
}

// PrometheusSink counts events by name and label. Names outside the known
// set and labels past MaxLabelsPerEvent are folded into OtherLabel.
type PrometheusSink struct {
	events *prometheus.CounterVec
	values *prometheus.CounterVec

	mu     sync.Mutex
	labels map[string]map[string]struct{}
}

// NewPrometheusSink registers its collectors on reg.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	s := &PrometheusSink{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landing",
			Name:      "events_total",
			Help:      "Analytics events received, by event name and label.",
		}, []string{"event", "label"}),
		values: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landing",
			Name:      "event_value_total",
			Help:      "Sum of the value attached to analytics events.",
		}, []string{"event"}),
		labels: make(map[string]map[string]struct{}),
	}

	for _, c := range []prometheus.Collector{s.events, s.values} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *PrometheusSink) Track(_ context.Context, e Event) {
	name, label := s.bound(e.Name, e.Label)
	s.events.WithLabelValues(name, label).Inc()
	if e.Value > 0 {
		s.values.WithLabelValues(name).Add(float64(e.Value))
	}
}

func (s *PrometheusSink) bound(name, label string) (string, string) {
	if !Known(name) {
		return OtherLabel, ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen, ok := s.labels[name]
	if !ok {
		seen = make(map[string]struct{})
		s.labels[name] = seen
	}
	if _, ok := seen[label]; ok {
		return name, label
	}
	if len(seen) >= MaxLabelsPerEvent {
		return name, OtherLabel
	}
	seen[label] = struct{}{}
	return name, label
}
