// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/domain-landing/content"
	"github.com/danielhkuo/domain-landing/form"
	"github.com/danielhkuo/domain-landing/telemetry"
	"github.com/danielhkuo/domain-landing/widgets/carousel"
	"github.com/danielhkuo/domain-landing/widgets/exitintent"
	"github.com/danielhkuo/domain-landing/widgets/pricing"
	"github.com/danielhkuo/domain-landing/widgets/stickybar"
)

// DefaultTTL is how long an idle page session is kept.
const DefaultTTL = 30 * time.Minute

var ErrNotFound = errors.New("session not found")

// Session is the state of one page view: the inquiry form and every widget
// a visitor can interact with.
type Session struct {
	ID        string
	CreatedAt time.Time

	Form       *form.Form
	Carousel   *carousel.Carousel
	ExitIntent *exitintent.Popup
	Pricing    *pricing.Selection
	StickyBar  *stickybar.Bar
	Scroll     *telemetry.Milestones
	Dwell      *telemetry.Milestones

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen is the time of the most recent request for this session.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

// Options configures a Store.
type Options struct {
	TTL     time.Duration
	Content *content.Content
	Sink    telemetry.Sink
	Now     func() time.Time
}

// Store keeps page sessions in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     Options
}

func NewStore(opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{sessions: make(map[string]*Session), opts: opts}
}

// Create starts a new session.
func (st *Store) Create() *Session {
	now := st.opts.Now()

	var cards []pricing.Card
	testimonials := 0
	if c := st.opts.Content; c != nil {
		cards = c.Pricing
		testimonials = len(c.Testimonials)
	}

	s := &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		Form:       form.New(form.WithClock(st.opts.Now), form.WithSink(st.opts.Sink)),
		Carousel:   carousel.New(testimonials, st.opts.Now),
		ExitIntent: exitintent.New(st.opts.Now),
		Pricing:    pricing.NewSelection(cards),
		StickyBar:  &stickybar.Bar{},
		Scroll:     telemetry.NewMilestones(telemetry.ScrollMilestones),
		Dwell:      telemetry.NewMilestones(telemetry.DwellMilestones),
		lastSeen:   now,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

// Get returns a live session and marks it as seen.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	s.touch(st.opts.Now())
	return s, nil
}

// Delete ends a session.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (st *Store) Sweep() int {
	cutoff := st.opts.Now().Add(-st.opts.TTL)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		slog.Info("expired page sessions", "removed", removed, "remaining", len(st.sessions))
	}
	return removed
}

// Len is the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
