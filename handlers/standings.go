// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/zenithc-git/soccer-Seeker/metrics"
	"github.com/zenithc-git/soccer-Seeker/middleware"
	"github.com/zenithc-git/soccer-Seeker/models"
	"github.com/zenithc-git/soccer-Seeker/standings"
	"github.com/zenithc-git/soccer-Seeker/store"
)

type StandingsHandler struct {
	store   *store.Store
	metrics *metrics.Metrics
}

func NewStandingsHandler(st *store.Store, m *metrics.Metrics) *StandingsHandler {
	return &StandingsHandler{store: st, metrics: m}
}

// ListSeasons handles GET /api/seasons
func (h *StandingsHandler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.store.ListSeasons(r.Context())
	if err != nil {
		slog.Error("failed to list seasons", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	years := make([]int, len(seasons))
	for i, s := range seasons {
		years[i] = s.EndYear
	}

	middleware.JSONResponse(w, http.StatusOK, models.SeasonsResponse{Seasons: years})
}

// GetStandings handles GET /api/standings?season=&type=&limit=
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	season, ok := seasonParam(w, r)
	if !ok {
		return
	}

	// Reject a bad policy before touching the database
	policy, err := standings.ParsePolicy(r.URL.Query().Get("type"))
	if err != nil {
		h.metrics.ObserveRank("", false)
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidPolicy, err.Error())
		return
	}

	limit, _, err := queryInt(r, "limit")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	rows, err := rankSeason(r.Context(), h.store, season, policy)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Season not found")
		return
	}
	if err != nil {
		slog.Error("failed to rank season", "season", season, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	h.metrics.ObserveRank(string(policy), true)

	rows = standings.Top(rows, limit)
	out := make([]models.StandingRow, len(rows))
	for i, row := range rows {
		out[i] = toStandingRow(row)
	}

	slog.Debug("standings ranked", "season", season, "type", policy, "rows", len(out))

	middleware.JSONResponse(w, http.StatusOK, models.StandingsResponse{
		Season: season,
		Type:   string(policy),
		Count:  len(out),
		Rows:   out,
	})
}
