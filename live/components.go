// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"time"

	"github.com/danielhkuo/domain-landing/session"
	"github.com/danielhkuo/domain-landing/widgets/countdown"
	"github.com/danielhkuo/domain-landing/widgets/counter"
	"github.com/danielhkuo/domain-landing/widgets/pricing"
)

// Tick intervals of the simulated widgets.
const (
	PriceInterval       = 30 * time.Second
	CounterInterval     = 30 * time.Second
	FluctuationInterval = 5 * time.Second
	CountdownInterval   = time.Second
	SweepInterval       = time.Minute
)

// Publisher receives live updates. *Hub implements it.
type Publisher interface {
	Publish(kind string, data any)
}

// PriceFeed drifts card prices and publishes the ones that moved.
type PriceFeed struct {
	Market *pricing.Market
	Out    Publisher
}

func (PriceFeed) Name() string { return "pricing" }

func (f PriceFeed) Init(s *Scheduler) error {
	return s.Every(PriceInterval, f.Tick)
}

func (f PriceFeed) Tick() {
	if changes := f.Market.Fluctuate(); len(changes) > 0 {
		f.Out.Publish(UpdatePrice, changes)
	}
}

// CounterFeed grows the inquiry counter and publishes the transient
// fluctuation in between.
type CounterFeed struct {
	Counter *counter.Counter
	Out     Publisher
}

func (CounterFeed) Name() string { return "inquiry-counter" }

func (f CounterFeed) Init(s *Scheduler) error {
	if err := s.Every(CounterInterval, f.Update); err != nil {
		return err
	}
	return s.Every(FluctuationInterval, f.Flicker)
}

func (f CounterFeed) Update() {
	if v, changed := f.Counter.Update(); changed {
		f.Out.Publish(UpdateCounter, map[string]int{"count": v})
	}
}

func (f CounterFeed) Flicker() {
	f.Out.Publish(UpdateFlicker, map[string]int{"count": f.Counter.Fluctuation()})
}

// CountdownFeed publishes the special pricing countdown every second.
type CountdownFeed struct {
	Timer countdown.Timer
	Now   func() time.Time
	Out   Publisher
}

func (CountdownFeed) Name() string { return "countdown" }

func (f CountdownFeed) Init(s *Scheduler) error {
	return s.Every(CountdownInterval, f.Tick)
}

func (f CountdownFeed) Tick() {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	f.Out.Publish(UpdateCountdown, f.Timer.At(now()))
}

// Sweeper expires idle page sessions.
type Sweeper struct {
	Store *session.Store
}

func (Sweeper) Name() string { return "session-sweeper" }

func (w Sweeper) Init(s *Scheduler) error {
	return s.Every(SweepInterval, func() { w.Store.Sweep() })
}
