// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/domain-landing/telemetry"
)

// DefaultSource tags every payload sent from the landing page.
const DefaultSource = "domain-sales-landing"

// Banner messages
const (
	MsgSubmitted    = "Thank you! Your message has been sent. We'll respond within 2 hours."
	MsgSubmitFailed = "Sorry, there was an error sending your message. Please try again or contact us directly."
)

// isoLayout matches what browsers produce for Date.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

var (
	ErrInFlight   = errors.New("a submission is already in flight")
	ErrInvalid    = errors.New("form has invalid fields")
	ErrSubmission = errors.New("submission failed")
)

// Payload is the immutable snapshot sent to the submitter. It serializes as a
// flat object: the field values plus timestamp, source and domain.
type Payload struct {
	Fields    map[string]string
	Timestamp time.Time
	Source    string
	Domain    string
}

// Value returns the named field value.
func (p Payload) Value(name string) string {
	return p.Fields[name]
}

// InquiryType is the conversion label, "contact" when none was chosen.
func (p Payload) InquiryType() string {
	if t := p.Fields[FieldInquiryType]; t != "" {
		return t
	}
	return "contact"
}

func (p Payload) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(p.Fields)+3)
	for k, v := range p.Fields {
		flat[k] = v
	}
	flat["timestamp"] = p.Timestamp.UTC().Format(isoLayout)
	flat["source"] = p.Source
	flat["domain"] = p.Domain
	return json.Marshal(flat)
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	p.Source = flat["source"]
	p.Domain = flat["domain"]
	if ts := flat["timestamp"]; ts != "" {
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return fmt.Errorf("parsing timestamp: %w", err)
		}
		p.Timestamp = t
	}

	delete(flat, "source")
	delete(flat, "domain")
	delete(flat, "timestamp")
	p.Fields = flat
	return nil
}

// Response is what the remote end answers.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Submitter delivers a payload somewhere.
type Submitter interface {
	Submit(ctx context.Context, p Payload) (Response, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, p Payload) (Response, error)

func (fn SubmitterFunc) Submit(ctx context.Context, p Payload) (Response, error) {
	return fn(ctx, p)
}

// Outcome describes a finished submission attempt.
type Outcome struct {
	Payload  *Payload `json:"payload,omitempty"`
	Response Response `json:"response"`
	Invalid  []string `json:"invalid,omitempty"`
	View     View     `json:"view"`
}

// Pipeline validates, serializes and submits a form.
type Pipeline struct {
	submitter Submitter
	sink      telemetry.Sink
	source    string
	host      string
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithConversionSink attaches the sink that receives form_submit events.
func WithConversionSink(sink telemetry.Sink) PipelineOption {
	return func(p *Pipeline) { p.sink = sink }
}

// WithSource overrides the source tag. An empty source keeps DefaultSource.
func WithSource(source string) PipelineOption {
	return func(p *Pipeline) {
		if source != "" {
			p.source = source
		}
	}
}

// WithDefaultHost is used when a submission does not carry a host.
func WithDefaultHost(host string) PipelineOption {
	return func(p *Pipeline) { p.host = host }
}

func NewPipeline(s Submitter, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{submitter: s, source: DefaultSource}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit runs one attempt. At most one attempt per form is in flight; a call
// made while another is pending returns ErrInFlight and touches nothing.
// Validation finishes before the submitter is called, and the submitter runs
// without holding the form lock.
func (p *Pipeline) Submit(ctx context.Context, f *Form, host string) (Outcome, error) {
	if host == "" {
		host = p.host
	}

	f.mu.Lock()
	if f.state.InFlight {
		f.mu.Unlock()
		return Outcome{}, ErrInFlight
	}

	if invalid := f.state.ValidateAll(); len(invalid) > 0 {
		f.showBanner(BannerError, MsgGeneric)
		out := Outcome{Invalid: invalid, View: f.viewLocked()}
		f.mu.Unlock()
		return out, ErrInvalid
	}

	f.state.InFlight = true
	payload := Payload{
		Fields:    f.state.Values(),
		Timestamp: f.now(),
		Source:    p.source,
		Domain:    host,
	}
	f.mu.Unlock()

	resp, err := p.call(ctx, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.InFlight = false

	out := Outcome{Payload: &payload, Response: resp}

	if err == nil && !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "submission rejected"
		}
		err = errors.New(msg)
	}
	if err != nil {
		slog.Error("form submission failed", "error", err, "domain", host)
		f.showBanner(BannerError, MsgSubmitFailed)
		out.View = f.viewLocked()
		return out, fmt.Errorf("%w: %v", ErrSubmission, err)
	}

	f.showBanner(BannerSuccess, MsgSubmitted)
	f.state.Clear()
	f.state.CurrentStep = 1
	f.submissions++

	telemetry.Emit(ctx, p.sink, telemetry.Event{
		Name:     telemetry.EventFormSubmit,
		Category: telemetry.CategoryEngagement,
		Label:    payload.InquiryType(),
		Value:    1,
		Properties: map[string]any{
			"type":   payload.InquiryType(),
			"domain": host,
		},
		Timestamp: f.now(),
	})
	telemetry.Emit(ctx, p.sink, telemetry.Event{
		Name:       telemetry.EventFormCompleted,
		Category:   telemetry.CategoryFormInteraction,
		Properties: map[string]any{"form_type": "contact_form"},
		Timestamp:  f.now(),
	})

	out.View = f.viewLocked()
	return out, nil
}

// call invokes the submitter, turning a panic into an error so the in-flight
// flag is always released.
func (p *Pipeline) call(ctx context.Context, payload Payload) (resp Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("submitter panicked: %v", r)
		}
	}()
	return p.submitter.Submit(ctx, payload)
}
