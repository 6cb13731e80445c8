// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/danielhkuo/domain-landing/cliparse"
	"github.com/danielhkuo/domain-landing/middleware"
	"github.com/danielhkuo/domain-landing/models"
	"github.com/danielhkuo/domain-landing/telemetry"
	"github.com/danielhkuo/domain-landing/widgets/carousel"
)

type WidgetHandler struct {
	svc *Services
	cfg cliparse.Config
}

func NewWidgetHandler(svc *Services, cfg cliparse.Config) *WidgetHandler {
	return &WidgetHandler{svc: svc, cfg: cfg}
}

// GetCarousel handles GET /sessions/{id}/carousel
func (h *WidgetHandler) GetCarousel(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, s.Carousel.View())
}

// CarouselAction handles POST /sessions/{id}/carousel/{action}
// for next, prev, goto, swipe, pause and resume.
func (h *WidgetHandler) CarouselAction(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	var view carousel.View
	navigated := true

	switch r.PathValue("action") {
	case "next":
		view = s.Carousel.Next()
	case "prev":
		view = s.Carousel.Prev()
	case "goto":
		var req models.GoToRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		v, err := s.Carousel.GoTo(req.Index)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		view = v
	case "swipe":
		var req models.SwipeRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		before := s.Carousel.Current()
		view = s.Carousel.Swipe(req.StartX, req.EndX)
		navigated = view.Index != before
	case "pause":
		view, navigated = s.Carousel.Pause(), false
	case "resume":
		view, navigated = s.Carousel.Resume(), false
	default:
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown carousel action")
		return
	}

	if navigated {
		telemetry.Emit(r.Context(), h.svc.Sink, telemetry.Event{
			Name:      telemetry.EventCarouselNavigation,
			Category:  telemetry.CategoryEngagement,
			Label:     strconv.Itoa(view.Index),
			Timestamp: h.svc.now(),
		})
	}
	middleware.JSONResponse(w, http.StatusOK, view)
}

// Countdown handles GET /countdown
func (h *WidgetHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.svc.Countdown.At(h.svc.now()))
}

// GetExitIntent handles GET /sessions/{id}/exit-intent
func (h *WidgetHandler) GetExitIntent(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ExitIntentResponse{Popup: s.ExitIntent.View()})
}

// ExitIntentLeave handles POST /sessions/{id}/exit-intent/leave
func (h *WidgetHandler) ExitIntentLeave(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	var req models.MouseLeaveRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	opened := s.ExitIntent.MouseLeave(req.ClientY)
	if opened {
		telemetry.Emit(r.Context(), h.svc.Sink, telemetry.Event{
			Name:      telemetry.EventExitIntent,
			Category:  telemetry.CategoryEngagement,
			Label:     "popup_shown",
			Value:     1,
			Timestamp: h.svc.now(),
		})
	}
	middleware.JSONResponse(w, http.StatusOK, models.ExitIntentResponse{
		Opened: opened,
		Popup:  s.ExitIntent.View(),
	})
}

// ExitIntentClose handles POST /sessions/{id}/exit-intent/close
func (h *WidgetHandler) ExitIntentClose(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	s.ExitIntent.Close()
	middleware.JSONResponse(w, http.StatusOK, models.ExitIntentResponse{Popup: s.ExitIntent.View()})
}

// Scroll handles POST /sessions/{id}/scroll
func (h *WidgetHandler) Scroll(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	var req models.ScrollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if math.IsNaN(req.Percent) || req.Percent < 0 || req.Percent > 100 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "percent must be between 0 and 100")
		return
	}

	visible, _ := s.StickyBar.Scroll(req.Percent)
	crossed := s.Scroll.Observe(int(math.Round(req.Percent)))
	for _, m := range crossed {
		telemetry.Emit(r.Context(), h.svc.Sink, telemetry.Event{
			Name:      telemetry.EventScrollMilestone,
			Category:  telemetry.CategoryEngagement,
			Label:     strconv.Itoa(m) + "%",
			Value:     m,
			Timestamp: h.svc.now(),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.ScrollResponse{
		StickyBarVisible: visible,
		Milestones:       nonNil(crossed),
	})
}

// Heartbeat handles POST /sessions/{id}/heartbeat. Time on page is measured
// from the session start.
func (h *WidgetHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	seconds := int(h.svc.now().Sub(s.CreatedAt).Seconds())
	crossed := s.Dwell.Observe(seconds)
	for _, m := range crossed {
		telemetry.Emit(r.Context(), h.svc.Sink, telemetry.Event{
			Name:      telemetry.EventTimeOnPage,
			Category:  telemetry.CategoryEngagement,
			Label:     strconv.Itoa(m) + "s",
			Value:     m,
			Timestamp: h.svc.now(),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.HeartbeatResponse{
		Seconds:    seconds,
		Milestones: nonNil(crossed),
		Engagement: telemetry.EngagementLevel(seconds),
	})
}

// InquiryCount handles GET /inquiry-count
func (h *WidgetHandler) InquiryCount(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.InquiryCountResponse{Count: h.svc.Counter.Value()})
}

func nonNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
