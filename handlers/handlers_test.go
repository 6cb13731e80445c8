// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/domain-landing/cliparse"
	"github.com/danielhkuo/domain-landing/db"
	"github.com/danielhkuo/domain-landing/form"
	"github.com/danielhkuo/domain-landing/session"
	"github.com/danielhkuo/domain-landing/submitters"
	"github.com/danielhkuo/domain-landing/telemetry"
	"github.com/danielhkuo/domain-landing/testutil"
	"github.com/danielhkuo/domain-landing/widgets/countdown"
	"github.com/danielhkuo/domain-landing/widgets/counter"
	"github.com/danielhkuo/domain-landing/widgets/pricing"
)

var testStart = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	svc    *Services
	cfg    cliparse.Config
	db     *sqlx.DB
	clock  *testutil.Clock
	funnel *telemetry.Funnel
}

// newTestEnv wires Services the way main does, on a temp database and a
// manual clock. A nil submitter stores inquiries in the database.
func newTestEnv(t *testing.T, submitter form.Submitter) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	cfg := testutil.GetTestConfig()
	clock := testutil.NewClock(testStart)
	c := testutil.LoadTestContent(t)
	funnel := telemetry.NewFunnel(1000)
	events := db.NewEventRepo(conn)
	sink := telemetry.Multi{funnel, events}
	repo := db.NewInquiryRepo(conn)

	if submitter == nil {
		submitter = submitters.NewStore(repo)
	}

	svc := &Services{
		Content: c,
		Sessions: session.NewStore(session.Options{
			TTL:     cfg.SessionTTL,
			Content: c,
			Sink:    sink,
			Now:     clock.Now,
		}),
		Pipeline: form.NewPipeline(submitter,
			form.WithConversionSink(sink),
			form.WithDefaultHost(c.Domain)),
		Sink:      sink,
		Funnel:    funnel,
		Market:    pricing.NewMarket(c.Pricing, nil),
		Counter:   counter.New(c.InquiryCounterBase, nil),
		Countdown: countdown.New(clock.Now(), c.CountdownOffset),
		Inquiries: repo,
		Events:    events,
		Now:       clock.Now,
	}

	return &testEnv{svc: svc, cfg: cfg, db: conn, clock: clock, funnel: funnel}
}

// newSession creates a page session directly in the store
func (e *testEnv) newSession(t *testing.T) string {
	t.Helper()
	return e.svc.Sessions.Create().ID
}

// serve runs h on a request carrying the given path values
func serve(h http.HandlerFunc, method, target string, body any, pathValues ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, target, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}

	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func serveRequest(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// captureSubmitter records every payload it receives
type captureSubmitter struct {
	mu       sync.Mutex
	payloads []form.Payload
	resp     form.Response
	err      error
}

func (c *captureSubmitter) Submit(_ context.Context, p form.Payload) (form.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, p)
	if c.err != nil {
		return form.Response{}, c.err
	}
	if !c.resp.Success && c.resp.Message == "" {
		return form.Response{Success: true, Message: "ok"}, nil
	}
	return c.resp, nil
}

func (c *captureSubmitter) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.payloads)
}

func eventCount(f *telemetry.Funnel, name string) int {
	n := 0
	for _, e := range f.Events() {
		if e.Name == name {
			n++
		}
	}
	return n
}

func fieldByName(v form.View, name string) (form.Field, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return form.Field{}, false
}
