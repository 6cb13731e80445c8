// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Component is a page widget with background behaviour. Init registers its
// periodic jobs; widgets without any need not implement it.
type Component interface {
	Name() string
	Init(s *Scheduler) error
}

// Scheduler runs periodic jobs.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
	}
}

// Every runs job at a fixed interval, at one second granularity.
func (s *Scheduler) Every(interval time.Duration, job func()) error {
	if interval < time.Second {
		return fmt.Errorf("interval %s is shorter than one second", interval)
	}
	if _, err := s.cron.AddFunc("@every "+interval.String(), job); err != nil {
		return fmt.Errorf("scheduling job: %w", err)
	}
	return nil
}

// Jobs is the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs or ctx, whichever comes
// first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Boot initializes every component in order and stops at the first error.
func Boot(s *Scheduler, components ...Component) error {
	for _, c := range components {
		if err := c.Init(s); err != nil {
			return fmt.Errorf("initializing %s: %w", c.Name(), err)
		}
		slog.Info("component ready", "component", c.Name())
	}
	return nil
}
