// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/domain-landing/models"
	"github.com/danielhkuo/domain-landing/telemetry"
	"github.com/danielhkuo/domain-landing/testutil"
	"github.com/danielhkuo/domain-landing/widgets/carousel"
	"github.com/danielhkuo/domain-landing/widgets/countdown"
)

func TestCarouselActions(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewWidgetHandler(env.svc, env.cfg)
	id := env.newSession(t)

	tests := []struct {
		name           string
		action         string
		body           any
		expectedStatus int
		expectedIndex  int
	}{
		{"next", "next", nil, http.StatusOK, 1},
		{"prev", "prev", nil, http.StatusOK, 0},
		{"prev wraps", "prev", nil, http.StatusOK, 2},
		{"goto", "goto", models.GoToRequest{Index: 1}, http.StatusOK, 1},
		{"goto out of range", "goto", models.GoToRequest{Index: 9}, http.StatusBadRequest, 0},
		{"short swipe ignored", "swipe", models.SwipeRequest{StartX: 200, EndX: 180}, http.StatusOK, 1},
		{"swipe left", "swipe", models.SwipeRequest{StartX: 300, EndX: 100}, http.StatusOK, 2},
		{"unknown action", "spin", nil, http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h.CarouselAction, "POST", "/", tt.body, "id", id, "action", tt.action)
			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var view carousel.View
			testutil.AssertJSON(t, w, &view)
			assert.Equal(t, tt.expectedIndex, view.Index)
			assert.Equal(t, 3, view.Count)
			assert.True(t, view.Indicators[tt.expectedIndex])
		})
	}

	// the ignored swipe is not a navigation
	assert.Equal(t, 5, eventCount(env.funnel, telemetry.EventCarouselNavigation))
}

func TestCarouselPauseAndRotation(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewWidgetHandler(env.svc, env.cfg)
	id := env.newSession(t)

	env.clock.Advance(carousel.AutoRotateInterval)
	w := serve(h.GetCarousel, "GET", "/", nil, "id", id)
	var view carousel.View
	testutil.AssertJSON(t, w, &view)
	assert.Equal(t, 1, view.Index)

	w = serve(h.CarouselAction, "POST", "/", nil, "id", id, "action", "pause")
	testutil.AssertJSON(t, w, &view)
	assert.True(t, view.Paused)

	env.clock.Advance(3 * carousel.AutoRotateInterval)
	w = serve(h.GetCarousel, "GET", "/", nil, "id", id)
	testutil.AssertJSON(t, w, &view)
	assert.Equal(t, 1, view.Index)

	serve(h.CarouselAction, "POST", "/", nil, "id", id, "action", "resume")
	env.clock.Advance(carousel.AutoRotateInterval)
	w = serve(h.GetCarousel, "GET", "/", nil, "id", id)
	testutil.AssertJSON(t, w, &view)
	assert.Equal(t, 2, view.Index)
	assert.False(t, view.Paused)

	assert.Zero(t, eventCount(env.funnel, telemetry.EventCarouselNavigation))
}

func TestCountdown(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewWidgetHandler(env.svc, env.cfg)

	w := serve(h.Countdown, "GET", "/countdown", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var rem countdown.Remaining
	testutil.AssertJSON(t, w, &rem)
	assert.Equal(t, countdown.Remaining{Days: "02", Hours: "14", Minutes: "00", Seconds: "00"}, rem)

	env.clock.Advance(63 * time.Hour)
	w = serve(h.Countdown, "GET", "/countdown", nil)
	testutil.AssertJSON(t, w, &rem)
	assert.True(t, rem.Expired)
	assert.Equal(t, countdown.ExpiredMessage, rem.Message)
}

func TestExitIntent(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewWidgetHandler(env.svc, env.cfg)
	id := env.newSession(t)

	// leaving through the side does nothing
	w := serve(h.ExitIntentLeave, "POST", "/", models.MouseLeaveRequest{ClientY: 300}, "id", id)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ExitIntentResponse
	testutil.AssertJSON(t, w, &resp)
	assert.False(t, resp.Opened)
	assert.False(t, resp.Popup.Visible)

	w = serve(h.ExitIntentLeave, "POST", "/", models.MouseLeaveRequest{ClientY: 2}, "id", id)
	testutil.AssertJSON(t, w, &resp)
	assert.True(t, resp.Opened)
	assert.True(t, resp.Popup.Visible)
	assert.Equal(t, "47:32", resp.Popup.HoldTimer)

	w = serve(h.ExitIntentClose, "POST", "/", nil, "id", id)
	testutil.AssertJSON(t, w, &resp)
	assert.False(t, resp.Popup.Visible)
	assert.True(t, resp.Popup.Shown)

	// once per visit
	w = serve(h.ExitIntentLeave, "POST", "/", models.MouseLeaveRequest{ClientY: 0}, "id", id)
	testutil.AssertJSON(t, w, &resp)
	assert.False(t, resp.Opened)

	env.clock.Advance(90 * time.Second)
	w = serve(h.GetExitIntent, "GET", "/", nil, "id", id)
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "46:02", resp.Popup.HoldTimer)

	assert.Equal(t, 1, eventCount(env.funnel, telemetry.EventExitIntent))
	for _, e := range env.funnel.Events() {
		if e.Name == telemetry.EventExitIntent {
			assert.Equal(t, "popup_shown", e.Label)
			assert.Equal(t, 1, e.Value)
		}
	}
	assert.Equal(t, 1, env.funnel.Report().ExitIntents)
}

func TestScroll(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewWidgetHandler(env.svc, env.cfg)
	id := env.newSession(t)

	w := serve(h.Scroll, "POST", "/", models.ScrollRequest{Percent: 20}, "id", id)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ScrollResponse
	testutil.AssertJSON(t, w, &resp)
	assert.False(t, resp.StickyBarVisible)
	assert.Empty(t, resp.Milestones)

	w = serve(h.Scroll, "POST", "/", models.ScrollRequest{Percent: 55}, "id", id)
	testutil.AssertJSON(t, w, &resp)
	assert.True(t, resp.StickyBarVisible)
	assert.Equal(t, []int{25, 50}, resp.Milestones)

	// scrolling back up hides the bar but milestones are reported once
	w = serve(h.Scroll, "POST", "/", models.ScrollRequest{Percent: 10}, "id", id)
	testutil.AssertJSON(t, w, &resp)
	assert.False(t, resp.StickyBarVisible)
	assert.Empty(t, resp.Milestones)

	w = serve(h.Scroll, "POST", "/", models.ScrollRequest{Percent: 60}, "id", id)
	testutil.AssertJSON(t, w, &resp)
	assert.Empty(t, resp.Milestones)

	w = serve(h.Scroll, "POST", "/", models.ScrollRequest{Percent: 150}, "id", id)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	assert.Equal(t, 2, eventCount(env.funnel, telemetry.EventScrollMilestone))
}

func TestHeartbeat(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewWidgetHandler(env.svc, env.cfg)
	id := env.newSession(t)

	w := serve(h.Heartbeat, "POST", "/", nil, "id", id)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.HeartbeatResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, 0, resp.Seconds)
	assert.Equal(t, "minimal", resp.Engagement)

	env.clock.Advance(130 * time.Second)
	w = serve(h.Heartbeat, "POST", "/", nil, "id", id)
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, 130, resp.Seconds)
	assert.Equal(t, []int{30, 60, 120}, resp.Milestones)
	assert.Equal(t, "medium", resp.Engagement)

	assert.Equal(t, 3, eventCount(env.funnel, telemetry.EventTimeOnPage))
}

func TestInquiryCount(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewWidgetHandler(env.svc, env.cfg)

	w := serve(h.InquiryCount, "GET", "/inquiry-count", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.InquiryCountResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, env.svc.Content.InquiryCounterBase, resp.Count)
}
