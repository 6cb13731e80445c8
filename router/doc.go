// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the landing page API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

# Endpoints

Health:

	GET /health

Page sessions:

	POST   /sessions      - Start a page view
	GET    /sessions/{id} - Form and widget snapshot
	DELETE /sessions/{id} - Page unload

Inquiry form:

	GET    /sessions/{id}/form                    - Form view
	PUT    /sessions/{id}/form/fields/{name}      - Field input
	POST   /sessions/{id}/form/fields/{name}/blur - Field blur
	POST   /sessions/{id}/form/inquiry-type       - Pick the interest
	POST   /sessions/{id}/form/offer-suggestion   - Suggested offer button
	POST   /sessions/{id}/form/next               - Next step
	POST   /sessions/{id}/form/prev               - Previous step
	POST   /sessions/{id}/form/submit             - Submit
	DELETE /sessions/{id}/form/banner             - Dismiss the banner
	POST   /contact                               - One-shot contact form

Pricing and widgets:

	GET  /pricing                         - Cards (?currency=, ?session=)
	POST /sessions/{id}/pricing/select    - Select a card
	POST /sessions/{id}/pricing/compare   - Toggle compare mode
	GET  /sessions/{id}/carousel          - Testimonial carousel
	POST /sessions/{id}/carousel/{action} - next, prev, goto, swipe, pause, resume
	GET  /countdown                       - Special pricing countdown
	GET  /sessions/{id}/exit-intent       - Exit popup state
	POST /sessions/{id}/exit-intent/leave - Pointer left the page
	POST /sessions/{id}/exit-intent/close - Close the popup
	POST /sessions/{id}/scroll            - Scroll position
	POST /sessions/{id}/heartbeat         - Time on page
	GET  /inquiry-count                   - Weekly inquiry counter

Analytics and admin:

	POST /events    - Browser side analytics
	GET  /funnel    - Funnel report
	GET  /inquiries - Stored inquiries (requires X-Admin-Key)
	GET  /events    - Recent stored events (requires X-Admin-Key)

Live updates and metrics, when configured:

	GET /ws      - WebSocket feed of price, counter and countdown updates
	GET /metrics - Prometheus metrics
*/
package router
