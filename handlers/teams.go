// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/zenithc-git/soccer-Seeker/charts"
	"github.com/zenithc-git/soccer-Seeker/middleware"
	"github.com/zenithc-git/soccer-Seeker/models"
	"github.com/zenithc-git/soccer-Seeker/standings"
	"github.com/zenithc-git/soccer-Seeker/store"
)

// historyWorkers bounds how many seasons TeamHistory ranks at once
const historyWorkers = 4

type TeamHandler struct {
	store *store.Store
}

func NewTeamHandler(st *store.Store) *TeamHandler {
	return &TeamHandler{store: st}
}

// ListTeams handles GET /api/teams?season=&q=
// A season lists that season's clubs; q searches names; neither lists all.
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	season, hasSeason, err := queryInt(r, "season")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "season must be a year such as 2024")
		return
	}
	keyword := strings.TrimSpace(r.URL.Query().Get("q"))

	var teams []store.Team
	switch {
	case hasSeason:
		teams, err = h.store.TeamsInSeason(ctx, season)
	case keyword != "":
		teams, err = h.store.SearchTeams(ctx, keyword, 20)
	default:
		teams, err = h.store.ListTeams(ctx)
	}
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Season not found")
		return
	}
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TeamsResponse{Teams: toTeams(teams)})
}

// TeamProfile handles GET /api/team_profile?team_id|team_name&season=
func (h *TeamHandler) TeamProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	season, ok := seasonParam(w, r)
	if !ok {
		return
	}
	team, err := resolveTeam(ctx, h.store, r)
	if err != nil {
		writeTeamError(w, err)
		return
	}

	var (
		stats   *store.TeamSeasonStats
		players []store.Player
		table   []standings.RankedRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = h.store.TeamSeason(gctx, team.ID, season)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = h.store.PlayersByTeam(gctx, team.ID)
		return err
	})
	g.Go(func() error {
		var err error
		table, err = rankSeason(gctx, h.store, season, standings.PolicyPoints)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound,
				fmt.Sprintf("No %s record for %s", store.SeasonName(season), team.Name))
			return
		}
		slog.Error("failed to load team profile", "team_id", team.ID, "season", season, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	position := 0
	if row, found := standings.Find(table, team.ID); found {
		position = row.Position
	}
	line := toLine(stats, position)

	middleware.JSONResponse(w, http.StatusOK, models.TeamProfileResponse{
		Team:      toTeam(team),
		Season:    season,
		Stats:     &line,
		Players:   toPlayers(players),
		Narrative: profileNarrative(team.Name, line, len(table)),
	})
}

func profileNarrative(team string, line models.TeamSeasonLine, teams int) string {
	if line.Position == 0 {
		return fmt.Sprintf("%s earned %d points in %s.", team, line.Points, line.SeasonName)
	}
	return fmt.Sprintf("%s finished %s of %d in %s with %d points (%d scored, %d conceded).",
		team, humanize.Ordinal(line.Position), teams, line.SeasonName,
		line.Points, line.GF, line.GA)
}

// TeamHistory handles GET /api/team_history?team_id|team_name
func (h *TeamHandler) TeamHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	team, err := resolveTeam(ctx, h.store, r)
	if err != nil {
		writeTeamError(w, err)
		return
	}

	rows, err := h.store.TeamHistory(ctx, team.ID)
	if err != nil {
		slog.Error("failed to load team history", "team_id", team.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Positions come from each season's ranked table
	lines := make([]models.TeamSeasonLine, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(historyWorkers)
	for i := range rows {
		g.Go(func() error {
			table, err := rankSeason(gctx, h.store, rows[i].Season.EndYear, standings.PolicyPoints)
			if err != nil {
				return err
			}
			position := 0
			if row, found := standings.Find(table, team.ID); found {
				position = row.Position
			}
			lines[i] = toLine(&rows[i], position)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("failed to rank team history", "team_id", team.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TeamHistoryResponse{
		Team:    toTeam(team),
		Seasons: lines,
	})
}

// TeamStatsPlot handles GET /api/team_stats_plot?team_id|team_name
// Responds with a PNG of points, goals for and goals against per season.
func (h *TeamHandler) TeamStatsPlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	team, err := resolveTeam(ctx, h.store, r)
	if err != nil {
		writeTeamError(w, err)
		return
	}

	rows, err := h.store.TeamHistory(ctx, team.ID)
	if err != nil {
		slog.Error("failed to load team history", "team_id", team.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	points := make([]charts.SeasonPoint, len(rows))
	for i, row := range rows {
		points[i] = charts.SeasonPoint{
			EndYear:      row.Season.EndYear,
			Points:       row.Points,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
		}
	}

	png, err := charts.TeamHistory(team.Name, points)
	if err != nil {
		slog.Error("failed to render chart", "team_id", team.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		slog.Warn("failed to write chart", "error", err)
	}
}
