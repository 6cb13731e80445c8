// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/domain-landing/telemetry"
)

var start = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingSink struct {
	mu     sync.Mutex
	events []telemetry.Event
}

func (r *recordingSink) Track(_ context.Context, e telemetry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}

// readyForm returns a form on its last step with a valid offer
func readyForm(t *testing.T, opts ...Option) *Form {
	t.Helper()
	ctx := context.Background()

	f := New(opts...)
	for name, v := range map[string]string{
		FieldFirstName: "Jane",
		FieldLastName:  "Doe",
		FieldEmail:     "jane@example.com",
	} {
		_, err := f.Input(ctx, name, v)
		require.NoError(t, err)
	}
	out, _ := f.Next(ctx)
	require.True(t, out.Advanced)

	_, err := f.SelectInquiry(ctx, InquiryOffer)
	require.NoError(t, err)
	_, err = f.SuggestOffer("5000")
	require.NoError(t, err)
	out, _ = f.Next(ctx)
	require.True(t, out.Advanced)
	require.True(t, f.OnLastStep())
	return f
}

func TestPipeline_Success(t *testing.T) {
	sink := &recordingSink{}
	clock := func() time.Time { return start }
	f := readyForm(t, WithClock(clock), WithSink(sink))

	var got Payload
	p := NewPipeline(SubmitterFunc(func(_ context.Context, pl Payload) (Response, error) {
		got = pl
		return Response{Success: true, Message: "ok"}, nil
	}), WithConversionSink(sink), WithDefaultHost("premiumdomain.com"))

	out, err := p.Submit(context.Background(), f, "")
	require.NoError(t, err)

	want := Payload{
		Fields: map[string]string{
			FieldFirstName:   "Jane",
			FieldLastName:    "Doe",
			FieldEmail:       "jane@example.com",
			FieldInquiryType: InquiryOffer,
			FieldOfferAmount: "5000",
			FieldPhone:       "",
			FieldCompany:     "",
			FieldMessage:     "",
		},
		Timestamp: start,
		Source:    DefaultSource,
		Domain:    "premiumdomain.com",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, out.View.Submissions)
	assert.Equal(t, 1, out.View.CurrentStep)
	require.NotNil(t, out.View.Banner)
	assert.Equal(t, BannerSuccess, out.View.Banner.Kind)
	assert.Equal(t, start.Add(SuccessBannerTTL), *out.View.Banner.ExpiresAt)

	assert.Equal(t, []string{
		telemetry.EventFormStarted,
		telemetry.EventFormStepCompleted,
		telemetry.EventInterestSelected,
		telemetry.EventFormStepCompleted,
		telemetry.EventFormSubmit,
		telemetry.EventFormCompleted,
	}, sink.names())

	conversion := sink.events[4]
	assert.Equal(t, InquiryOffer, conversion.Label)
	assert.Equal(t, 1, conversion.Value)
	assert.Equal(t, "premiumdomain.com", conversion.Properties["domain"])
}

func TestPipeline_InvalidNeverCallsSubmitter(t *testing.T) {
	f := New()
	called := false
	p := NewPipeline(SubmitterFunc(func(context.Context, Payload) (Response, error) {
		called = true
		return Response{Success: true}, nil
	}))

	out, err := p.Submit(context.Background(), f, "example.com")
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.False(t, called)
	assert.Nil(t, out.Payload)
	assert.Equal(t, []string{FieldFirstName, FieldLastName, FieldEmail, FieldInquiryType}, out.Invalid)
	assert.Equal(t, MsgGeneric, out.View.Banner.Message)
	assert.False(t, out.View.InFlight)
}

func TestPipeline_Failures(t *testing.T) {
	tests := []struct {
		name      string
		submitter SubmitterFunc
	}{
		{"error", func(context.Context, Payload) (Response, error) {
			return Response{}, errors.New("network down")
		}},
		{"rejected", func(context.Context, Payload) (Response, error) {
			return Response{Success: false, Message: "spam"}, nil
		}},
		{"rejected without message", func(context.Context, Payload) (Response, error) {
			return Response{}, nil
		}},
		{"panic", func(context.Context, Payload) (Response, error) {
			panic("submitter bug")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			f := readyForm(t)
			p := NewPipeline(tt.submitter, WithConversionSink(sink))

			out, err := p.Submit(context.Background(), f, "example.com")
			assert.True(t, errors.Is(err, ErrSubmission))
			assert.NotNil(t, out.Payload)
			assert.False(t, out.View.InFlight)
			assert.Equal(t, BannerError, out.View.Banner.Kind)
			assert.Equal(t, MsgSubmitFailed, out.View.Banner.Message)
			assert.Equal(t, 3, out.View.CurrentStep)
			assert.Zero(t, out.View.Submissions)
			assert.Empty(t, sink.names())

			// the form can be submitted again
			p = NewPipeline(SubmitterFunc(func(context.Context, Payload) (Response, error) {
				return Response{Success: true}, nil
			}))
			_, err = p.Submit(context.Background(), f, "example.com")
			assert.NoError(t, err)
		})
	}
}

func TestPipeline_OneInFlight(t *testing.T) {
	f := readyForm(t)
	entered := make(chan struct{})
	release := make(chan struct{})

	p := NewPipeline(SubmitterFunc(func(context.Context, Payload) (Response, error) {
		close(entered)
		<-release
		return Response{Success: true}, nil
	}))

	errc := make(chan error, 1)
	go func() {
		_, err := p.Submit(context.Background(), f, "example.com")
		errc <- err
	}()
	<-entered

	// the lock is not held while the submitter runs
	v := f.View()
	assert.True(t, v.InFlight)
	assert.True(t, v.Controls.SubmitDisabled)
	assert.Equal(t, BusyLabel, v.Controls.SubmitLabel)

	_, err := p.Submit(context.Background(), f, "example.com")
	assert.True(t, errors.Is(err, ErrInFlight))

	close(release)
	require.NoError(t, <-errc)
	assert.False(t, f.View().InFlight)
	assert.Equal(t, SubmitLabel, f.View().Controls.SubmitLabel)
}

func TestPipeline_ContextCancel(t *testing.T) {
	f := readyForm(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(SubmitterFunc(func(ctx context.Context, _ Payload) (Response, error) {
		return Response{}, ctx.Err()
	}))
	_, err := p.Submit(ctx, f, "")
	assert.True(t, errors.Is(err, ErrSubmission))
	assert.False(t, f.View().InFlight)
}

func TestPayloadJSON(t *testing.T) {
	p := Payload{
		Fields:    map[string]string{FieldEmail: "jane@example.com", FieldMessage: "hi"},
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 123_000_000, time.FixedZone("EST", -5*3600)),
		Source:    DefaultSource,
		Domain:    "premiumdomain.com",
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var flat map[string]string
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, map[string]string{
		"email":     "jane@example.com",
		"message":   "hi",
		"timestamp": "2025-03-01T17:00:00.123Z",
		"source":    "domain-sales-landing",
		"domain":    "premiumdomain.com",
	}, flat)

	var back Payload
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Timestamp.Equal(p.Timestamp))
	assert.Equal(t, p.Fields, back.Fields)
	assert.Equal(t, "contact", back.InquiryType())
}

func TestPipeline_Source(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"", DefaultSource},
		{"partner-listing", "partner-listing"},
	}
	for _, tt := range tests {
		var got Payload
		p := NewPipeline(SubmitterFunc(func(_ context.Context, pl Payload) (Response, error) {
			got = pl
			return Response{Success: true}, nil
		}), WithSource(tt.source))

		_, err := p.Submit(context.Background(), readyForm(t), "example.com")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Source)
		assert.Equal(t, "example.com", got.Domain)
	}
}
