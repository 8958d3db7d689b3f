// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zenithc-git/soccer-Seeker/middleware"
	"github.com/zenithc-git/soccer-Seeker/models"
	"github.com/zenithc-git/soccer-Seeker/store"
)

type PlayerHandler struct {
	store *store.Store
}

func NewPlayerHandler(st *store.Store) *PlayerHandler {
	return &PlayerHandler{store: st}
}

// ListPlayers handles GET /api/players?team_id=&initial=&q=&page=&page_size=
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := store.PlayerQuery{
		Initial: q.Get("initial"),
		Keyword: q.Get("q"),
	}

	if raw := q.Get("team_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "team_id must be an integer")
			return
		}
		query.TeamID = id
	}

	var err error
	if query.Page, _, err = queryInt(r, "page"); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	if query.PageSize, _, err = queryInt(r, "page_size"); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "page_size must be an integer")
		return
	}

	query.Normalize()

	players, total, err := h.store.SearchPlayers(r.Context(), query)
	if err != nil {
		slog.Error("failed to search players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PlayersResponse{
		Players:  toPlayers(players),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
}

// GetPlayer handles GET /api/players/{id}
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(chi.URLParam(r, "id"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "player id must be a positive integer")
		return
	}

	player, err := h.store.PlayerByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Player not found")
		return
	}
	if err != nil {
		slog.Error("failed to load player", "player_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toPlayer(player))
}
