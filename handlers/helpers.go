// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zenithc-git/soccer-Seeker/middleware"
	"github.com/zenithc-git/soccer-Seeker/models"
	"github.com/zenithc-git/soccer-Seeker/standings"
	"github.com/zenithc-git/soccer-Seeker/store"
)

var (
	errMissingTeam = errors.New("team_id or team_name is required")
	errBadTeamID   = errors.New("team_id must be an integer")
)

// queryInt reads an optional integer query parameter. ok is false when the
// parameter is absent or blank.
func queryInt(r *http.Request, name string) (n int, ok bool, err error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// seasonParam reads the required season query parameter and writes the error
// response itself when it is missing or malformed
func seasonParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	season, ok, err := queryInt(r, "season")
	if err != nil {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeBadRequest, "season must be a year such as 2024")
		return 0, false
	}
	if !ok {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeMissingSeason, "missing season")
		return 0, false
	}
	return season, true
}

// resolveTeam finds the team named by team_id, or failing that team_name
func resolveTeam(ctx context.Context, st *store.Store, r *http.Request) (*store.Team, error) {
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("team_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errBadTeamID
		}
		return st.TeamByID(ctx, id)
	}
	if name := strings.TrimSpace(q.Get("team_name")); name != "" {
		return st.TeamByName(ctx, name)
	}
	return nil, errMissingTeam
}

// writeTeamError maps resolveTeam failures onto responses
func writeTeamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errMissingTeam), errors.Is(err, errBadTeamID):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Team not found")
	default:
		slog.Error("failed to load team", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// rankSeason loads a season and ranks it under policy
func rankSeason(ctx context.Context, st *store.Store, season int, policy standings.Policy) ([]standings.RankedRow, error) {
	records, err := st.SeasonRecords(ctx, season)
	if err != nil {
		return nil, err
	}
	return standings.Rank(records, policy)
}

func idParam(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(models.DateLayout)
	return &s
}

func toTeam(t *store.Team) models.Team {
	return models.Team{ID: t.ID, Name: t.Name}
}

func toTeams(teams []store.Team) []models.Team {
	out := make([]models.Team, len(teams))
	for i := range teams {
		out[i] = toTeam(&teams[i])
	}
	return out
}

func toStandingRow(r standings.RankedRow) models.StandingRow {
	return models.StandingRow{
		Rank:   r.Position,
		TeamID: r.TeamID,
		Team:   r.TeamName,
		Played: r.Played,
		Won:    r.Won,
		Drawn:  r.Drawn,
		Lost:   r.Lost,
		GF:     r.GoalsFor,
		GA:     r.GoalsAgainst,
		GD:     r.GoalDifference,
		Points: r.Points,
	}
}

// toLine converts a stored row. position is the computed table position, 0
// when unknown.
func toLine(s *store.TeamSeasonStats, position int) models.TeamSeasonLine {
	line := models.TeamSeasonLine{
		Position:         position,
		OfficialPosition: s.Position,
		Played:           s.Played,
		Won:              s.Won,
		Drawn:            s.Drawn,
		Lost:             s.Lost,
		GF:               s.GoalsFor,
		GA:               s.GoalsAgainst,
		GD:               s.GoalsFor - s.GoalsAgainst,
		Points:           s.Points,
		Notes:            s.Notes,
	}
	if s.Season != nil {
		line.Season = s.Season.EndYear
		line.SeasonName = s.Season.Name
	}
	return line
}

func toPlayer(p *store.Player) models.Player {
	out := models.Player{
		ID:        p.ID,
		TeamID:    p.TeamID,
		Name:      p.FullName(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		ShirtNo:   p.ShirtNo,
		BirthDate: formatDate(p.BirthDate),
		Position:  p.Position,
	}
	if p.Team != nil {
		out.Team = p.Team.Name
	}
	return out
}

func toPlayers(players []store.Player) []models.Player {
	out := make([]models.Player, len(players))
	for i := range players {
		out[i] = toPlayer(&players[i])
	}
	return out
}

func toUser(u *store.User) models.User {
	return models.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Birthday:  formatDate(u.Birthday),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}
