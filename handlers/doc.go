// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the landing page API.

# Handler Types

Each handler is a struct holding the shared Services and the Config:

  - SessionHandler: Page sessions (create, snapshot, unload)
  - FormHandler: The multi-step inquiry form and the one-shot contact form
  - PricingHandler: Pricing cards, card selection and the compare toggle
  - WidgetHandler: Carousel, countdown, exit intent, scroll and dwell time
  - EventsHandler: Browser side analytics and the funnel report
  - InquiryHandler: Stored inquiries and events for the domain owner

Handlers are created via constructor functions:

	formHandler := handlers.NewFormHandler(svc, cfg)

# Page Sessions

Every page view creates a session holding the form and widget state:

	POST   /sessions      → Create (emits page_view)
	GET    /sessions/{id} → Get
	DELETE /sessions/{id} → Delete (emits form_abandoned when applicable)

Sessions idle for longer than the TTL are swept in the background.

# Form Flow

	PUT  /sessions/{id}/form/fields/{name}      → Input
	POST /sessions/{id}/form/fields/{name}/blur → Blur
	POST /sessions/{id}/form/next               → Next (422 when the step is invalid)
	POST /sessions/{id}/form/prev               → Prev
	POST /sessions/{id}/form/submit             → Submit (409 unless on the last step)

Submission outcomes map to status codes:

  - 200: Delivered; the view carries the success banner
  - 409: Another submission for the same form is in flight
  - 422: Invalid fields; the outcome lists them
  - 502: The submitter failed; the view carries the error banner

# Admin

GET /inquiries and GET /events require the X-Admin-Key header. The key is
derived from the domain, see package auth.

# Error Handling

All errors return JSON:

	{"error": "Not Found", "message": "Session not found"}
*/
package handlers
