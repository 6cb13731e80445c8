// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/domain-landing/auth"
	"github.com/danielhkuo/domain-landing/cliparse"
	"github.com/danielhkuo/domain-landing/middleware"
	"github.com/danielhkuo/domain-landing/models"
)

type InquiryHandler struct {
	svc *Services
	cfg cliparse.Config
}

func NewInquiryHandler(svc *Services, cfg cliparse.Config) *InquiryHandler {
	return &InquiryHandler{svc: svc, cfg: cfg}
}

// authorized checks X-Admin-Key and writes 401 when it is wrong.
func (h *InquiryHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(h.svc.Content.Domain, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// List handles GET /inquiries?limit=&offset=
// Requires X-Admin-Key.
func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	if h.svc.Inquiries == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Inquiries are not stored in this mode")
		return
	}

	limit, err := queryInt(r, "limit", 50)
	if err != nil || limit < 1 || limit > 500 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be between 1 and 500")
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "offset must not be negative")
		return
	}

	inquiries, err := h.svc.Inquiries.List(r.Context(), limit, offset)
	if err != nil {
		slog.Error("failed to list inquiries", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	total, err := h.svc.Inquiries.Count(r.Context())
	if err != nil {
		slog.Error("failed to count inquiries", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListInquiriesResponse{
		Inquiries: inquiries,
		Total:     total,
	})
}

// RecentEvents handles GET /events?limit=
// Requires X-Admin-Key.
func (h *InquiryHandler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	if h.svc.Events == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Events are not stored")
		return
	}

	limit, err := queryInt(r, "limit", 100)
	if err != nil || limit < 1 || limit > 1000 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be between 1 and 1000")
		return
	}

	events, err := h.svc.Events.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.RecentEventsResponse{Events: events})
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
