// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zenithc-git/soccer-Seeker/auth"
	"github.com/zenithc-git/soccer-Seeker/cliparse"
	"github.com/zenithc-git/soccer-Seeker/metrics"
	"github.com/zenithc-git/soccer-Seeker/middleware"
	"github.com/zenithc-git/soccer-Seeker/store"
	"github.com/zenithc-git/soccer-Seeker/testutil"
)

type testEnv struct {
	store   *store.Store
	cfg     cliparse.Config
	tokens  *auth.TokenService
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testutil.GetTestConfig()
	cfg.UploadDir = t.TempDir()

	return &testEnv{
		store:   store.New(testutil.SetupTestDB(t)),
		cfg:     cfg,
		tokens:  auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		metrics: metrics.New(),
	}
}

// withURLParams attaches chi route parameters to a request built outside a router
func withURLParams(req *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// serveAuthed runs h behind RequireAuth so middleware.UserID works
func (e *testEnv) serveAuthed(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	middleware.RequireAuth(e.tokens)(h).ServeHTTP(w, req)
	return w
}
