// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithc-git/soccer-Seeker/models"
	"github.com/zenithc-git/soccer-Seeker/store"
	"github.com/zenithc-git/soccer-Seeker/testutil"
)

func TestListTeams(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedSeason(t, env.store, 2024, testutil.SampleSeason()...)
	_, err := env.store.UpsertTeam(context.Background(), "Arsenal")
	require.NoError(t, err)

	handler := NewTeamHandler(env.store)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"A", "Arsenal", "B", "C"}},
		{"season=2024", []string{"A", "B", "C"}},
		{"q=ars", []string{"Arsenal"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ListTeams(w, httptest.NewRequest("GET", "/api/teams?"+tt.query, nil))

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.TeamsResponse
			testutil.AssertJSON(t, w, &resp)

			names := make([]string, len(resp.Teams))
			for i, team := range resp.Teams {
				names[i] = team.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}

	w := httptest.NewRecorder()
	handler.ListTeams(w, httptest.NewRequest("GET", "/api/teams?season=1900", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestTeamProfile(t *testing.T) {
	env := newTestEnv(t)
	ids := testutil.SeedSeason(t, env.store, 2024, testutil.SampleSeason()...)
	shirt := 9
	_, err := env.store.UpsertPlayer(context.Background(), &store.Player{TeamID: ids["B"], FirstName: "Bo", LastName: "Striker", ShirtNo: &shirt})
	require.NoError(t, err)

	handler := NewTeamHandler(env.store)

	w := httptest.NewRecorder()
	handler.TeamProfile(w, httptest.NewRequest("GET", "/api/team_profile?team_name=b&season=2024", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.TeamProfileResponse
	testutil.AssertJSON(t, w, &resp)

	assert.Equal(t, "B", resp.Team.Name)
	require.NotNil(t, resp.Stats)
	assert.Equal(t, 2, resp.Stats.Position)
	assert.Equal(t, "2023-2024", resp.Stats.SeasonName)
	assert.Equal(t, 2, resp.Stats.GD)
	require.Len(t, resp.Players, 1)
	assert.Equal(t, "Bo Striker", resp.Players[0].Name)
	assert.Equal(t, "B finished 2nd of 3 in 2023-2024 with 3 points (6 scored, 4 conceded).", resp.Narrative)

	// By id gives the same team
	w = httptest.NewRecorder()
	handler.TeamProfile(w, httptest.NewRequest("GET", "/api/team_profile?team_id="+strconv.FormatInt(ids["B"], 10)+"&season=2024", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestTeamProfileErrors(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedSeason(t, env.store, 2024, testutil.SampleSeason()...)
	handler := NewTeamHandler(env.store)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"missing season", "team_name=A", http.StatusBadRequest},
		{"missing team", "season=2024", http.StatusBadRequest},
		{"bad team id", "team_id=abc&season=2024", http.StatusBadRequest},
		{"unknown team", "team_name=Nobody&season=2024", http.StatusNotFound},
		{"unknown season", "team_name=A&season=1999", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.TeamProfile(w, httptest.NewRequest("GET", "/api/team_profile?"+tt.query, nil))
			testutil.AssertStatus(t, w, tt.status)
		})
	}
}

func TestTeamHistory(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedSeason(t, env.store, 2023, testutil.SampleSeason()...)
	testutil.SeedSeason(t, env.store, 2024,
		testutil.Line{Team: "A", Played: 1, Lost: 1, GoalsAgainst: 1},
		testutil.Line{Team: "B", Played: 1, Won: 1, GoalsFor: 1, Points: 3},
	)

	handler := NewTeamHandler(env.store)
	w := httptest.NewRecorder()
	handler.TeamHistory(w, httptest.NewRequest("GET", "/api/team_history?team_name=A", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.TeamHistoryResponse
	testutil.AssertJSON(t, w, &resp)

	require.Len(t, resp.Seasons, 2)
	assert.Equal(t, 2023, resp.Seasons[0].Season)
	assert.Equal(t, 1, resp.Seasons[0].Position)
	assert.Equal(t, 2024, resp.Seasons[1].Season)
	assert.Equal(t, 2, resp.Seasons[1].Position)
}

func TestTeamStatsPlot(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedSeason(t, env.store, 2023, testutil.SampleSeason()...)
	testutil.SeedSeason(t, env.store, 2024, testutil.SampleSeason()...)
	_, err := env.store.UpsertTeam(context.Background(), "Newcomers")
	require.NoError(t, err)

	handler := NewTeamHandler(env.store)

	for _, team := range []string{"A", "Newcomers"} {
		t.Run(team, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.TeamStatsPlot(w, httptest.NewRequest("GET", "/api/team_stats_plot?team_name="+team, nil))

			testutil.AssertStatus(t, w, http.StatusOK)
			assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
			_, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
			assert.NoError(t, err)
		})
	}

	w := httptest.NewRecorder()
	handler.TeamStatsPlot(w, httptest.NewRequest("GET", "/api/team_stats_plot?team_name=Ghosts", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
	assert.True(t, strings.Contains(w.Body.String(), "Team not found"))
}
