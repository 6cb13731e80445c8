// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/domain-landing/telemetry"
)

// Submit control labels
const (
	SubmitLabel = "Send Inquiry"
	BusyLabel   = "Sending..."
)

// SuccessBannerTTL is how long a success banner stays up.
const SuccessBannerTTL = 5 * time.Second

var ErrEmptyInquiryType = errors.New("inquiry type is required")

// BannerKind is the style of a form-level message.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is the message shown above the form. Only success banners expire.
type Banner struct {
	Kind      BannerKind `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// StepIndicator is one dot of the progress bar.
type StepIndicator struct {
	Step     int  `json:"step"`
	Active   bool `json:"active"`
	Complete bool `json:"complete"`
}

// Controls describes the navigation buttons.
type Controls struct {
	ShowPrev       bool   `json:"show_prev"`
	ShowNext       bool   `json:"show_next"`
	ShowSubmit     bool   `json:"show_submit"`
	SubmitDisabled bool   `json:"submit_disabled"`
	SubmitLabel    string `json:"submit_label"`
}

// View is everything the page needs to render the form.
type View struct {
	CurrentStep int             `json:"current_step"`
	TotalSteps  int             `json:"total_steps"`
	Progress    []StepIndicator `json:"progress"`
	Fields      []Field         `json:"fields"`
	Controls    Controls        `json:"controls"`
	Banner      *Banner         `json:"banner,omitempty"`
	InFlight    bool            `json:"in_flight"`
	Submissions int             `json:"submissions"`
}

// Form guards a State for use from concurrent requests. Every call behaves
// as if it ran on the page's single event loop.
type Form struct {
	mu          sync.Mutex
	state       *State
	banner      *Banner
	submissions int
	started     bool
	abandoned   bool

	now  func() time.Time
	sink telemetry.Sink
}

// Option configures a Form.
type Option func(*Form)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

// WithSink attaches an analytics sink. Without one no events are emitted.
func WithSink(sink telemetry.Sink) Option {
	return func(f *Form) { f.sink = sink }
}

// WithDefinitions replaces the default three step layout.
func WithDefinitions(defs []Definition) Option {
	return func(f *Form) { f.state = NewState(defs) }
}

// New creates a form at step 1.
func New(opts ...Option) *Form {
	f := &Form{now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	if f.state == nil {
		f.state = NewState(DefaultDefinitions())
	}
	return f
}

// View snapshots the form. An expired success banner is dropped here.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

func (f *Form) viewLocked() View {
	s := f.state

	if f.banner != nil && f.banner.ExpiresAt != nil && !f.now().Before(*f.banner.ExpiresAt) {
		f.banner = nil
	}

	v := View{
		CurrentStep: s.CurrentStep,
		TotalSteps:  s.TotalSteps,
		Fields:      s.Fields(),
		InFlight:    s.InFlight,
		Submissions: f.submissions,
		Controls: Controls{
			ShowPrev:       s.CurrentStep > 1,
			ShowNext:       !s.OnLastStep(),
			ShowSubmit:     s.OnLastStep(),
			SubmitDisabled: s.InFlight,
			SubmitLabel:    SubmitLabel,
		},
	}
	if s.InFlight {
		v.Controls.SubmitLabel = BusyLabel
	}
	for i := 1; i <= s.TotalSteps; i++ {
		v.Progress = append(v.Progress, StepIndicator{
			Step:     i,
			Active:   i == s.CurrentStep,
			Complete: i < s.CurrentStep,
		})
	}
	if f.banner != nil {
		b := *f.banner
		v.Banner = &b
	}
	return v
}

// Input records a keystroke-level change to a field.
func (f *Form) Input(ctx context.Context, name, value string) (Field, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	field, err := f.state.Input(name, value)
	if err != nil {
		return Field{}, err
	}

	if !f.started && strings.TrimSpace(value) != "" {
		f.started = true
		telemetry.Emit(ctx, f.sink, telemetry.Event{
			Name:       telemetry.EventFormStarted,
			Category:   telemetry.CategoryFormInteraction,
			Properties: map[string]any{"form_type": "contact_form"},
			Timestamp:  f.now(),
		})
	}
	return field, nil
}

// Blur validates a field when it loses focus.
func (f *Form) Blur(name string) (Field, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Blur(name)
}

// SelectInquiry sets the inquiry type, which reveals or hides the offer
// amount field.
func (f *Form) SelectInquiry(ctx context.Context, inquiryType string) (View, error) {
	inquiryType = strings.TrimSpace(inquiryType)
	if inquiryType == "" {
		return View{}, ErrEmptyInquiryType
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.state.Input(FieldInquiryType, inquiryType); err != nil {
		return View{}, err
	}

	telemetry.Emit(ctx, f.sink, telemetry.Event{
		Name:      telemetry.EventInterestSelected,
		Category:  telemetry.CategoryFormInteraction,
		Label:     inquiryType,
		Value:     1,
		Timestamp: f.now(),
	})
	return f.viewLocked(), nil
}

// SuggestOffer fills the offer amount from one of the suggestion buttons.
func (f *Form) SuggestOffer(amount string) (Field, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Input(FieldOfferAmount, amount)
}

// Fill sets many values at once, as a plain form post does. Unknown names
// are ignored.
func (f *Form) Fill(values map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, v := range values {
		// only ErrUnknownField can come back here
		_, _ = f.state.Input(name, v)
	}
}

// Next advances to the following step when the current one validates.
func (f *Form) Next(ctx context.Context) (StepOutcome, View) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.state.Next()
	if out.Advanced {
		telemetry.Emit(ctx, f.sink, telemetry.Event{
			Name:      telemetry.EventFormStepCompleted,
			Category:  telemetry.CategoryFormInteraction,
			Label:     fmt.Sprintf("step_%d", out.From),
			Value:     out.From,
			Timestamp: f.now(),
		})
	}
	return out, f.viewLocked()
}

// Prev goes back one step.
func (f *Form) Prev() (bool, View) {
	f.mu.Lock()
	defer f.mu.Unlock()

	moved := f.state.Prev()
	return moved, f.viewLocked()
}

// DismissBanner removes the current banner, as the close button does.
func (f *Form) DismissBanner() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banner = nil
}

// Abandon records that the visitor left. It reports whether the form counts
// as abandoned: started, never submitted and not already reported.
func (f *Form) Abandon(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.started || f.submissions > 0 || f.abandoned {
		return false
	}
	f.abandoned = true
	telemetry.Emit(ctx, f.sink, telemetry.Event{
		Name:       telemetry.EventFormAbandoned,
		Category:   telemetry.CategoryFormInteraction,
		Label:      fmt.Sprintf("step_%d", f.state.CurrentStep),
		Properties: map[string]any{"form_type": "contact_form"},
		Timestamp:  f.now(),
	})
	return true
}

// OnLastStep reports whether submit is the active control.
func (f *Form) OnLastStep() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.OnLastStep()
}

// showBanner replaces any existing banner. Callers hold f.mu.
func (f *Form) showBanner(kind BannerKind, message string) {
	b := &Banner{Kind: kind, Message: message}
	if kind == BannerSuccess {
		expires := f.now().Add(SuccessBannerTTL)
		b.ExpiresAt = &expires
	}
	f.banner = b
}
