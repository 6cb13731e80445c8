// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

Form and widget views keep the types of their own packages (form.View,
carousel.View, ...); this package holds the envelopes around them.

# Request Types

  - FieldInputRequest, InquiryTypeRequest: value
  - OfferSuggestionRequest: amount
  - ContactRequest: fields (map[string]string), host
  - SelectCardRequest: title
  - GoToRequest, SwipeRequest: carousel navigation
  - MouseLeaveRequest: client_y
  - ScrollRequest: percent
  - TrackEventRequest: event, category, label, value, properties

# Response Types

  - CreateSessionResponse: session_id, created_at
  - SessionResponse: form, carousel, exit intent and pricing state
  - StepResponse, PrevResponse: step navigation with the form view
  - ExitIntentResponse: whether the popup opened, and its state
  - ScrollResponse, HeartbeatResponse: newly crossed milestones
  - SelectCardResponse, CompareResponse
  - InquiryCountResponse
  - ListInquiriesResponse
  - HealthResponse
  - ErrorResponse: error, message

# Domain Types

  - Inquiry: persisted contact form submission
  - StoredEvent: persisted telemetry event

# Constants

Submission modes:

	SubmitStore = "store"
	SubmitStub  = "stub"
	SubmitHTTP  = "http"
*/
package models
