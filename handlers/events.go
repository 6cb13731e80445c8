// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"regexp"

	"github.com/danielhkuo/domain-landing/auth"
	"github.com/danielhkuo/domain-landing/cliparse"
	"github.com/danielhkuo/domain-landing/middleware"
	"github.com/danielhkuo/domain-landing/models"
	"github.com/danielhkuo/domain-landing/telemetry"
)

var eventNameRE = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

type EventsHandler struct {
	svc *Services
	cfg cliparse.Config
}

func NewEventsHandler(svc *Services, cfg cliparse.Config) *EventsHandler {
	return &EventsHandler{svc: svc, cfg: cfg}
}

// Track handles POST /events for analytics the browser observes directly
// (section views, CTA clicks, page load time).
func (h *EventsHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req models.TrackEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !eventNameRE.MatchString(req.Event) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event must be a snake_case name")
		return
	}

	props := clientProperties(r, h.cfg)
	for k, v := range req.Properties {
		props[k] = v
	}

	telemetry.Emit(r.Context(), h.svc.Sink, telemetry.Event{
		Name:       req.Event,
		Category:   req.Category,
		Label:      req.Label,
		Value:      req.Value,
		Properties: props,
		Timestamp:  h.svc.now(),
	})
	w.WriteHeader(http.StatusAccepted)
}

// Funnel handles GET /funnel
func (h *EventsHandler) Funnel(w http.ResponseWriter, r *http.Request) {
	if h.svc.Funnel == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Funnel tracking is not enabled")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.svc.Funnel.Report())
}

// clientProperties describes the caller without storing its address.
func clientProperties(r *http.Request, cfg cliparse.Config) map[string]any {
	props := map[string]any{}
	if cfg.IPHashSalt != "" {
		props["ip_hash"] = auth.HashIP(middleware.GetClientIP(r), cfg.IPHashSalt)
	}
	if ua := r.UserAgent(); ua != "" {
		props["user_agent"] = ua
	}
	if ref := r.Referer(); ref != "" {
		props["referrer"] = ref
	}
	return props
}
