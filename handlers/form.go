// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/danielhkuo/domain-landing/cliparse"
	"github.com/danielhkuo/domain-landing/form"
	"github.com/danielhkuo/domain-landing/middleware"
	"github.com/danielhkuo/domain-landing/models"
)

type FormHandler struct {
	svc *Services
	cfg cliparse.Config
}

func NewFormHandler(svc *Services, cfg cliparse.Config) *FormHandler {
	return &FormHandler{svc: svc, cfg: cfg}
}

// GetForm handles GET /sessions/{id}/form
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, s.Form.View())
}

// Input handles PUT /sessions/{id}/form/fields/{name}
func (h *FormHandler) Input(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	var req models.FieldInputRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	field, err := s.Form.Input(r.Context(), r.PathValue("name"), req.Value)
	if err != nil {
		formError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, field)
}

// Blur handles POST /sessions/{id}/form/fields/{name}/blur
func (h *FormHandler) Blur(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	field, err := s.Form.Blur(r.PathValue("name"))
	if err != nil {
		formError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, field)
}

// SelectInquiry handles POST /sessions/{id}/form/inquiry-type
func (h *FormHandler) SelectInquiry(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	var req models.InquiryTypeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !h.svc.Content.HasInquiryType(req.Value) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown inquiry type")
		return
	}

	view, err := s.Form.SelectInquiry(r.Context(), req.Value)
	if err != nil {
		formError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, view)
}

// OfferSuggestion handles POST /sessions/{id}/form/offer-suggestion
func (h *FormHandler) OfferSuggestion(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	var req models.OfferSuggestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Amount <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	field, err := s.Form.SuggestOffer(strconv.Itoa(req.Amount))
	if err != nil {
		formError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, field)
}

// Next handles POST /sessions/{id}/form/next
func (h *FormHandler) Next(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	out, view := s.Form.Next(r.Context())
	status := http.StatusOK
	if len(out.Invalid) > 0 {
		status = http.StatusUnprocessableEntity
	}
	middleware.JSONResponse(w, status, models.StepResponse{Step: out, View: view})
}

// Prev handles POST /sessions/{id}/form/prev
func (h *FormHandler) Prev(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	moved, view := s.Form.Prev()
	middleware.JSONResponse(w, http.StatusOK, models.PrevResponse{Moved: moved, View: view})
}

// DismissBanner handles DELETE /sessions/{id}/form/banner
func (h *FormHandler) DismissBanner(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	s.Form.DismissBanner()
	middleware.JSONResponse(w, http.StatusOK, s.Form.View())
}

// Submit handles POST /sessions/{id}/form/submit?host=
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	if !s.Form.OnLastStep() {
		middleware.ErrorResponse(w, http.StatusConflict, "Form is not on its last step")
		return
	}

	out, err := h.svc.Pipeline.Submit(r.Context(), s.Form, r.URL.Query().Get("host"))
	writeOutcome(w, out, err)
}

// Contact handles POST /contact, the single page contact form. It runs the
// same pipeline on a throwaway form.
func (h *FormHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Fields) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "fields are required")
		return
	}
	if t := req.Fields[form.FieldInquiryType]; t != "" && !h.svc.Content.HasInquiryType(t) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown inquiry type")
		return
	}

	f := form.New(
		form.WithClock(h.svc.now),
		form.WithSink(h.svc.Sink),
		form.WithDefinitions(form.ContactDefinitions()),
	)
	f.Fill(req.Fields)

	out, err := h.svc.Pipeline.Submit(r.Context(), f, req.Host)
	writeOutcome(w, out, err)
}

func writeOutcome(w http.ResponseWriter, out form.Outcome, err error) {
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusOK, out)
	case errors.Is(err, form.ErrInvalid):
		middleware.JSONResponse(w, http.StatusUnprocessableEntity, out)
	case errors.Is(err, form.ErrSubmission):
		middleware.JSONResponse(w, http.StatusBadGateway, out)
	default:
		formError(w, err)
	}
}
