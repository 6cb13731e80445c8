// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielhkuo/domain-landing/content"
	"github.com/danielhkuo/domain-landing/db"
	"github.com/danielhkuo/domain-landing/form"
	"github.com/danielhkuo/domain-landing/middleware"
	"github.com/danielhkuo/domain-landing/session"
	"github.com/danielhkuo/domain-landing/telemetry"
	"github.com/danielhkuo/domain-landing/widgets/countdown"
	"github.com/danielhkuo/domain-landing/widgets/counter"
	"github.com/danielhkuo/domain-landing/widgets/pricing"
)

// Services is everything the handlers share. Sink, Inquiries, Events, Live
// and Metrics may be nil.
type Services struct {
	Content   *content.Content
	Sessions  *session.Store
	Pipeline  *form.Pipeline
	Sink      telemetry.Sink
	Funnel    *telemetry.Funnel
	Market    *pricing.Market
	Counter   *counter.Counter
	Countdown countdown.Timer
	Inquiries *db.InquiryRepo
	Events    *db.EventRepo
	Live      http.Handler
	Metrics   http.Handler
	Now       func() time.Time
}

func (s *Services) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// loadSession resolves the {id} path value. It writes the error response
// and returns nil when there is no such session.
func loadSession(w http.ResponseWriter, r *http.Request, store *session.Store) *session.Session {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return nil
	}

	s, err := store.Get(id)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return nil
	}
	return s
}

// formError maps form package errors to responses.
func formError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, form.ErrUnknownField):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, form.ErrEmptyInquiryType):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, form.ErrInFlight):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Form error")
	}
}
