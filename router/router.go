// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/domain-landing/cliparse"
	"github.com/danielhkuo/domain-landing/handlers"
	"github.com/danielhkuo/domain-landing/middleware"
	"github.com/danielhkuo/domain-landing/models"
)

func NewRouter(svc *handlers.Services, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(svc, cfg)
	formHandler := handlers.NewFormHandler(svc, cfg)
	pricingHandler := handlers.NewPricingHandler(svc, cfg)
	widgetHandler := handlers.NewWidgetHandler(svc, cfg)
	eventsHandler := handlers.NewEventsHandler(svc, cfg)
	inquiryHandler := handlers.NewInquiryHandler(svc, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Status:   "ok",
			Domain:   svc.Content.Domain,
			Sessions: svc.Sessions.Len(),
		})
	})

	// Page sessions
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.Create))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.Get))
	mux.HandleFunc("DELETE /sessions/{id}", middleware.WithLogging(sessionHandler.Delete))

	// Inquiry form
	mux.HandleFunc("GET /sessions/{id}/form", middleware.WithLogging(formHandler.GetForm))
	mux.HandleFunc("PUT /sessions/{id}/form/fields/{name}", middleware.WithLogging(formHandler.Input))
	mux.HandleFunc("POST /sessions/{id}/form/fields/{name}/blur", middleware.WithLogging(formHandler.Blur))
	mux.HandleFunc("POST /sessions/{id}/form/inquiry-type", middleware.WithLogging(formHandler.SelectInquiry))
	mux.HandleFunc("POST /sessions/{id}/form/offer-suggestion", middleware.WithLogging(formHandler.OfferSuggestion))
	mux.HandleFunc("POST /sessions/{id}/form/next", middleware.WithLogging(formHandler.Next))
	mux.HandleFunc("POST /sessions/{id}/form/prev", middleware.WithLogging(formHandler.Prev))
	mux.HandleFunc("POST /sessions/{id}/form/submit", middleware.WithLogging(formHandler.Submit))
	mux.HandleFunc("DELETE /sessions/{id}/form/banner", middleware.WithLogging(formHandler.DismissBanner))
	mux.HandleFunc("POST /contact", middleware.WithLogging(formHandler.Contact))

	// Pricing
	mux.HandleFunc("GET /pricing", middleware.WithLogging(pricingHandler.List))
	mux.HandleFunc("POST /sessions/{id}/pricing/select", middleware.WithLogging(pricingHandler.Select))
	mux.HandleFunc("POST /sessions/{id}/pricing/compare", middleware.WithLogging(pricingHandler.Compare))

	// Widgets
	mux.HandleFunc("GET /sessions/{id}/carousel", middleware.WithLogging(widgetHandler.GetCarousel))
	mux.HandleFunc("POST /sessions/{id}/carousel/{action}", middleware.WithLogging(widgetHandler.CarouselAction))
	mux.HandleFunc("GET /countdown", middleware.WithLogging(widgetHandler.Countdown))
	mux.HandleFunc("GET /sessions/{id}/exit-intent", middleware.WithLogging(widgetHandler.GetExitIntent))
	mux.HandleFunc("POST /sessions/{id}/exit-intent/leave", middleware.WithLogging(widgetHandler.ExitIntentLeave))
	mux.HandleFunc("POST /sessions/{id}/exit-intent/close", middleware.WithLogging(widgetHandler.ExitIntentClose))
	mux.HandleFunc("POST /sessions/{id}/scroll", middleware.WithLogging(widgetHandler.Scroll))
	mux.HandleFunc("POST /sessions/{id}/heartbeat", middleware.WithLogging(widgetHandler.Heartbeat))
	mux.HandleFunc("GET /inquiry-count", middleware.WithLogging(widgetHandler.InquiryCount))

	// Analytics
	mux.HandleFunc("POST /events", middleware.WithLogging(eventsHandler.Track))
	mux.HandleFunc("GET /funnel", middleware.WithLogging(eventsHandler.Funnel))

	// Admin
	mux.HandleFunc("GET /inquiries", middleware.WithLogging(inquiryHandler.List))
	mux.HandleFunc("GET /events", middleware.WithLogging(inquiryHandler.RecentEvents))

	// Live feed and metrics, not request logged
	if svc.Live != nil {
		mux.Handle("GET /ws", svc.Live)
	}
	if svc.Metrics != nil {
		mux.Handle("GET /metrics", svc.Metrics)
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("domain-landing API v1 for " + svc.Content.Domain))
	})

	return mux
}
