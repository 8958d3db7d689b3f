// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/zenithc-git/soccer-Seeker/analytics"
	"github.com/zenithc-git/soccer-Seeker/cliparse"
	"github.com/zenithc-git/soccer-Seeker/metrics"
	"github.com/zenithc-git/soccer-Seeker/middleware"
	"github.com/zenithc-git/soccer-Seeker/models"
	"github.com/zenithc-git/soccer-Seeker/store"
)

type AnalyticsHandler struct {
	store   *store.Store
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewAnalyticsHandler(st *store.Store, cfg cliparse.Config, m *metrics.Metrics) *AnalyticsHandler {
	return &AnalyticsHandler{store: st, cfg: cfg, metrics: m}
}

// ProMetrics handles GET /api/pro_metrics?season=&team_id|team_name
// Premium roles only; the router enforces that.
func (h *AnalyticsHandler) ProMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	season, ok := seasonParam(w, r)
	if !ok {
		return
	}
	team, err := resolveTeam(ctx, h.store, r)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.metrics.ObserveProMetrics(metrics.OutcomeNotFound)
		}
		writeTeamError(w, err)
		return
	}

	row, err := h.store.TeamSeason(ctx, team.ID, season)
	if errors.Is(err, store.ErrNotFound) {
		h.metrics.ObserveProMetrics(metrics.OutcomeNotFound)
		middleware.ErrorResponse(w, http.StatusNotFound,
			fmt.Sprintf("No %s record for %s", store.SeasonName(season), team.Name))
		return
	}
	if err != nil {
		slog.Error("failed to load team season", "team_id", team.ID, "season", season, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	m, log := analytics.Compute(analytics.Input{
		GoalsFor:     row.GoalsFor,
		GoalsAgainst: row.GoalsAgainst,
		Played:       row.Played,
		Points:       row.Points,
	}, h.cfg.Exponent)

	if m == nil {
		h.metrics.ObserveProMetrics(metrics.OutcomeNoMatches)
		middleware.JSONResponse(w, http.StatusUnprocessableEntity, models.NoValidMatchesResponse{
			ErrorResponse: models.ErrorResponse{
				Error:   http.StatusText(http.StatusUnprocessableEntity),
				Message: analytics.ErrNoValidMatches.Error(),
				Code:    models.CodeNoValidMatches,
			},
			Team:   team.Name,
			Season: season,
			Log:    log,
		})
		return
	}
	h.metrics.ObserveProMetrics(metrics.OutcomeOK)

	slog.Debug("pro metrics computed", "team", team.Name, "season", season, "delta", m.DeltaPoints)

	middleware.JSONResponse(w, http.StatusOK, models.ProMetricsResponse{
		Team:   team.Name,
		Season: season,
		Metrics: &models.ProMetrics{
			Exponent:             m.Exponent,
			Played:               m.Played,
			GF:                   m.GoalsFor,
			GA:                   m.GoalsAgainst,
			Points:               m.Points,
			ExpWinRate:           m.ExpectedWinRate,
			ActualWinRate:        m.ActualWinRate,
			ExpPoints:            m.ExpectedPoints,
			DeltaPoints:          m.DeltaPoints,
			ExpPointsPerMatch:    m.ExpectedPointsPerMatch,
			ActualPointsPerMatch: m.ActualPointsPerMatch,
		},
		Log:       log,
		Narrative: analytics.Narrative(m),
	})
}
