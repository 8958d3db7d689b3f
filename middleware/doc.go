// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

WithLogging tags each request with an X-Request-ID (kept if the client sent
one) and logs start and completion with status and duration_ms:

	r.Use(middleware.WithLogging)

# CORS

CORS reflects allowed origins and answers preflight requests itself. An empty
allow list accepts any origin:

	r.Use(middleware.CORS(cfg.AllowedOrigins))

# Auth

RequireAuth validates the bearer token and RequireRole checks its role:

	r.With(middleware.RequireAuth(tokens), middleware.RequireRole(auth.RoleAdmin))

UserID reads the caller back out of the request context.

# Rate Limiting

RateLimit keeps a token bucket per client IP:

	r.With(middleware.RateLimit(middleware.NewIPRateLimiter(1, 5))).Post("/api/login", h)

# Metrics

Instrument records request counts and latency labelled by chi route pattern.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidPolicy, "message")

Parse JSON request bodies:

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidJSON, "Invalid JSON")
		return
	}

# Client IP Extraction

GetClientIP handles X-Forwarded-For and X-Real-IP.
*/
package middleware
