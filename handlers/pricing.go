// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/domain-landing/cliparse"
	"github.com/danielhkuo/domain-landing/middleware"
	"github.com/danielhkuo/domain-landing/models"
	"github.com/danielhkuo/domain-landing/telemetry"
	"github.com/danielhkuo/domain-landing/widgets/pricing"
)

type PricingHandler struct {
	svc *Services
	cfg cliparse.Config
}

func NewPricingHandler(svc *Services, cfg cliparse.Config) *PricingHandler {
	return &PricingHandler{svc: svc, cfg: cfg}
}

// List handles GET /pricing?currency=USD|EUR&session=
func (h *PricingHandler) List(w http.ResponseWriter, r *http.Request) {
	cur := pricing.USD
	if q := r.URL.Query().Get("currency"); q != "" {
		var err error
		if cur, err = pricing.ParseCurrency(q); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	// the selected card is only known for a live session
	selected := ""
	if id := r.URL.Query().Get("session"); id != "" {
		if s, err := h.svc.Sessions.Get(id); err == nil {
			selected = s.Pricing.Selected()
		}
	}

	var prices map[string]int
	if h.svc.Market != nil {
		prices = h.svc.Market.Prices()
	}

	middleware.JSONResponse(w, http.StatusOK,
		pricing.Render(h.svc.Content.Pricing, prices, h.svc.Content.Tooltips, cur, selected))
}

// Select handles POST /sessions/{id}/pricing/select
func (h *PricingHandler) Select(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	var req models.SelectCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.Pricing.Select(req.Title); err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	telemetry.Emit(r.Context(), h.svc.Sink, telemetry.Event{
		Name:      telemetry.EventPricingCardSelect,
		Category:  telemetry.CategoryEngagement,
		Label:     req.Title,
		Value:     1,
		Timestamp: h.svc.now(),
	})

	middleware.JSONResponse(w, http.StatusOK, models.SelectCardResponse{Selected: s.Pricing.Selected()})
}

// Compare handles POST /sessions/{id}/pricing/compare
func (h *PricingHandler) Compare(w http.ResponseWriter, r *http.Request) {
	s := loadSession(w, r, h.svc.Sessions)
	if s == nil {
		return
	}

	comparing := s.Pricing.ToggleCompare()
	middleware.JSONResponse(w, http.StatusOK, models.CompareResponse{
		Comparing: comparing,
		Label:     pricing.CompareLabel(comparing),
	})
}
