// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zenithc-git/soccer-Seeker/auth"
	"github.com/zenithc-git/soccer-Seeker/middleware"
	"github.com/zenithc-git/soccer-Seeker/models"
	"github.com/zenithc-git/soccer-Seeker/standings"
	"github.com/zenithc-git/soccer-Seeker/store"
)

// AdminHandler edits reference data and accounts. Every route sits behind
// RequireRole(auth.RoleAdmin).
type AdminHandler struct {
	store *store.Store
}

func NewAdminHandler(st *store.Store) *AdminHandler {
	return &AdminHandler{store: st}
}

// UpdateStats handles PUT /api/admin/seasons/{season}/teams/{team_id}
func (h *AdminHandler) UpdateStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "season must be a year such as 2024")
		return
	}
	teamID, ok := idParam(chi.URLParam(r, "team_id"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team id must be a positive integer")
		return
	}

	var req models.UpdateStatsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidJSON, "Invalid JSON")
		return
	}

	row, err := h.store.TeamSeason(ctx, teamID, season)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No stats row for that team and season")
		return
	}
	if err != nil {
		slog.Error("failed to load stats row", "team_id", teamID, "season", season, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for _, f := range []struct {
		src *int
		dst *int
	}{
		{req.Played, &row.Played},
		{req.Won, &row.Won},
		{req.Drawn, &row.Drawn},
		{req.Lost, &row.Lost},
		{req.GF, &row.GoalsFor},
		{req.GA, &row.GoalsAgainst},
		{req.Points, &row.Points},
	} {
		if f.src == nil {
			continue
		}
		if *f.src < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "counts cannot be negative")
			return
		}
		*f.dst = *f.src
	}
	if req.Position != nil {
		row.Position = req.Position
		if *req.Position <= 0 {
			row.Position = nil
		}
	}
	if req.Notes != nil {
		row.Notes = req.Notes
		if strings.TrimSpace(*req.Notes) == "" {
			row.Notes = nil
		}
	}

	if err := h.store.UpdateTeamSeasonStats(ctx, row); err != nil {
		slog.Error("failed to update stats row", "id", row.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update stats")
		return
	}

	position := 0
	if table, err := rankSeason(ctx, h.store, season, standings.PolicyPoints); err == nil {
		if ranked, found := standings.Find(table, teamID); found {
			position = ranked.Position
		}
	} else {
		slog.Warn("failed to re-rank season after edit", "season", season, "error", err)
	}

	slog.Info("stats row updated", "team_id", teamID, "season", season, "by", middleware.UserID(ctx))
	middleware.JSONResponse(w, http.StatusOK, toLine(row, position))
}

// UpdatePlayer handles PUT /api/admin/players/{id}
func (h *AdminHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "player id must be a positive integer")
		return
	}

	var req models.UpdatePlayerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidJSON, "Invalid JSON")
		return
	}

	p, err := h.store.PlayerByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Player not found")
		return
	}
	if err != nil {
		slog.Error("failed to load player", "player_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.TeamID != nil && *req.TeamID != p.TeamID {
		team, err := h.store.TeamByID(ctx, *req.TeamID)
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "team_id does not exist")
			return
		}
		if err != nil {
			slog.Error("failed to load team", "team_id", *req.TeamID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		p.TeamID = team.ID
		p.Team = team
	}
	if req.FirstName != nil {
		p.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		p.LastName = strings.TrimSpace(*req.LastName)
	}
	if p.FirstName == "" && p.LastName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a player needs a name")
		return
	}
	if req.ShirtNo != nil {
		p.ShirtNo = req.ShirtNo
		if *req.ShirtNo <= 0 {
			p.ShirtNo = nil
		}
	}
	if req.BirthDate != nil {
		birth, err := parseDate(*req.BirthDate)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
			return
		}
		p.BirthDate = birth
	}
	if req.Position != nil {
		p.Position = req.Position
		if strings.TrimSpace(*req.Position) == "" {
			p.Position = nil
		}
	}

	if err := h.store.UpdatePlayer(ctx, p); err != nil {
		if errors.Is(err, store.ErrConflict) {
			middleware.ErrorResponse(w, http.StatusConflict, "Another player already has that team, name and shirt number")
			return
		}
		slog.Error("failed to update player", "player_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update player")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toPlayer(p))
}

// UpdateRole handles PUT /api/admin/users/{id}/role
// The new role applies to tokens issued after the change.
func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user id must be a positive integer")
		return
	}

	var req models.UpdateRoleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorCode(w, http.StatusBadRequest, models.CodeInvalidJSON, "Invalid JSON")
		return
	}
	role, err := auth.ParseRole(req.Role)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.UpdateRole(ctx, id, string(role)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to update role", "user_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update role")
		return
	}

	u, err := h.store.UserByID(ctx, id)
	if err != nil {
		slog.Error("failed to reload user", "user_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("role changed", "user_id", id, "role", role, "by", middleware.UserID(ctx))
	middleware.JSONResponse(w, http.StatusOK, toUser(u))
}
