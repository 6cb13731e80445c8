// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/domain-landing/cliparse"
	"github.com/danielhkuo/domain-landing/middleware"
	"github.com/danielhkuo/domain-landing/models"
	"github.com/danielhkuo/domain-landing/session"
	"github.com/danielhkuo/domain-landing/telemetry"
)

type SessionHandler struct {
	svc *Services
	cfg cliparse.Config
}

func NewSessionHandler(svc *Services, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{svc: svc, cfg: cfg}
}

// Create handles POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.svc.Sessions.Create()

	telemetry.Emit(r.Context(), h.svc.Sink, telemetry.Event{
		Name:       telemetry.EventPageView,
		Category:   telemetry.CategoryEngagement,
		Label:      h.svc.Content.Domain,
		Properties: clientProperties(r, h.cfg),
		Timestamp:  s.CreatedAt,
	})

	slog.Info("page session created", "session_id", s.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: s.ID,
		CreatedAt: s.CreatedAt,
	})
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snapshot(s))
}

// Delete handles DELETE /sessions/{id}, sent when the page unloads.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	s.Form.Abandon(r.Context())

	if err := h.svc.Sessions.Delete(s.ID); err != nil {
		// raced with another delete or the sweeper
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func snapshot(s *session.Session) models.SessionResponse {
	return models.SessionResponse{
		SessionID:        s.ID,
		CreatedAt:        s.CreatedAt,
		Form:             s.Form.View(),
		Carousel:         s.Carousel.View(),
		ExitIntent:       s.ExitIntent.View(),
		SelectedCard:     s.Pricing.Selected(),
		Comparing:        s.Pricing.Comparing(),
		StickyBarVisible: s.StickyBar.Visible(),
		MaxScroll:        s.Scroll.Max(),
	}
}
