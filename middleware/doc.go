// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

One line per request with method, path, status and duration_ms. 5xx
responses are logged at error level.

# CORS Middleware

Enable cross-origin requests from the sites embedding the landing page:

	server := http.Server{
		Handler: middleware.CORS(mux, cfg.CORSOrigins...),
	}

With no origins every origin is allowed. Allows methods GET, POST, PUT,
DELETE, OPTIONS with headers Content-Type, Authorization, X-Admin-Key,
X-Session-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (at most MaxBodyBytes; an empty body is
ErrEmptyBody):

	var req models.FieldInputRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the visitor address (first X-Forwarded-For hop, X-Real-IP, then
RemoteAddr):

	ip := middleware.GetClientIP(r)

Hashed with auth.HashIP before it is attached to telemetry.
*/
package middleware
