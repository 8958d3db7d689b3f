// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithc-git/soccer-Seeker/metrics"
	"github.com/zenithc-git/soccer-Seeker/models"
	"github.com/zenithc-git/soccer-Seeker/testutil"
)

func TestProMetrics(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedSeason(t, env.store, 2024,
		testutil.Line{Team: "Even", Played: 10, Won: 3, Drawn: 1, Lost: 6, GoalsFor: 10, GoalsAgainst: 10, Points: 10},
		testutil.Line{Team: "Idle"},
	)
	handler := NewAnalyticsHandler(env.store, env.cfg, env.metrics)

	w := httptest.NewRecorder()
	handler.ProMetrics(w, httptest.NewRequest("GET", "/api/pro_metrics?season=2024&team_name=Even", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ProMetricsResponse
	testutil.AssertJSON(t, w, &resp)

	assert.Equal(t, "Even", resp.Team)
	assert.Equal(t, 2024, resp.Season)
	require.NotNil(t, resp.Metrics)
	assert.Equal(t, 2.7, resp.Metrics.Exponent)
	assert.Equal(t, 0.5, resp.Metrics.ExpWinRate)
	assert.Equal(t, 15.0, resp.Metrics.ExpPoints)
	assert.Equal(t, -5.0, resp.Metrics.DeltaPoints)
	assert.Equal(t, 1.5, resp.Metrics.ExpPointsPerMatch)
	assert.Equal(t, 1.0, resp.Metrics.ActualPointsPerMatch)
	assert.Equal(t, 0.3333, resp.Metrics.ActualWinRate)
	assert.GreaterOrEqual(t, len(resp.Log), 8)
	assert.Contains(t, resp.Narrative, "Below model")

	assert.Equal(t, 1.0, prom.ToFloat64(env.metrics.ProMetricsTotal.WithLabelValues(metrics.OutcomeOK)))
}

func TestProMetricsNoValidMatches(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedSeason(t, env.store, 2024, testutil.Line{Team: "Idle"})
	handler := NewAnalyticsHandler(env.store, env.cfg, env.metrics)

	w := httptest.NewRecorder()
	handler.ProMetrics(w, httptest.NewRequest("GET", "/api/pro_metrics?season=2024&team_name=Idle", nil))

	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	var resp models.NoValidMatchesResponse
	testutil.AssertJSON(t, w, &resp)

	assert.Equal(t, models.CodeNoValidMatches, resp.Code)
	assert.Equal(t, "Idle", resp.Team)
	assert.Len(t, resp.Log, 1)
	assert.Equal(t, 1.0, prom.ToFloat64(env.metrics.ProMetricsTotal.WithLabelValues(metrics.OutcomeNoMatches)))
}

func TestProMetricsNotFound(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedSeason(t, env.store, 2024, testutil.SampleSeason()...)
	handler := NewAnalyticsHandler(env.store, env.cfg, env.metrics)

	for _, query := range []string{"season=2024&team_name=Nobody", "season=2020&team_name=A"} {
		w := httptest.NewRecorder()
		handler.ProMetrics(w, httptest.NewRequest("GET", "/api/pro_metrics?"+query, nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	}
	assert.Equal(t, 2.0, prom.ToFloat64(env.metrics.ProMetricsTotal.WithLabelValues(metrics.OutcomeNotFound)))

	w := httptest.NewRecorder()
	handler.ProMetrics(w, httptest.NewRequest("GET", "/api/pro_metrics?team_name=A", nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
