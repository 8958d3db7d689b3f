// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"

	"github.com/zenithc-git/soccer-Seeker/auth"
	"github.com/zenithc-git/soccer-Seeker/cliparse"
	"github.com/zenithc-git/soccer-Seeker/handlers"
	"github.com/zenithc-git/soccer-Seeker/metrics"
	"github.com/zenithc-git/soccer-Seeker/middleware"
	"github.com/zenithc-git/soccer-Seeker/store"
	"github.com/zenithc-git/soccer-Seeker/web"
)

func NewRouter(db *bun.DB, cfg cliparse.Config, m *metrics.Metrics) http.Handler {
	st := store.New(db)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize handlers
	standingsHandler := handlers.NewStandingsHandler(st, m)
	teamHandler := handlers.NewTeamHandler(st)
	analyticsHandler := handlers.NewAnalyticsHandler(st, cfg, m)
	playerHandler := handlers.NewPlayerHandler(st)
	userHandler := handlers.NewUserHandler(st, cfg, tokens)
	adminHandler := handlers.NewAdminHandler(st)

	loginLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.LoginRate), cfg.LoginBurst)

	r := chi.NewRouter()
	r.Use(middleware.Recover)
	r.Use(middleware.WithLogging)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Instrument(m))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(web.Index)
	})

	r.Handle("/uploads/*", uploads(cfg.UploadDir))

	r.Route("/api", func(r chi.Router) {
		// Public reads
		r.Get("/seasons", standingsHandler.ListSeasons)
		r.Get("/standings", standingsHandler.GetStandings)
		r.Get("/teams", teamHandler.ListTeams)
		r.Get("/team_profile", teamHandler.TeamProfile)
		r.Get("/team_history", teamHandler.TeamHistory)
		r.Get("/players", playerHandler.ListPlayers)
		r.Get("/players/{id}", playerHandler.GetPlayer)

		// Accounts
		r.Post("/register", userHandler.Register)
		r.With(middleware.RateLimit(loginLimiter)).Post("/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))

			r.Get("/me", userHandler.Me)
			r.Put("/me", userHandler.UpdateMe)
			r.Post("/me/avatar", userHandler.UploadAvatar)
			r.Post("/me/password", userHandler.ChangePassword)
			r.Delete("/users/me", userHandler.DeleteMe)

			// Premium analytics
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleVIP, auth.RoleAdmin))
				r.Get("/team_stats_plot", teamHandler.TeamStatsPlot)
				r.Get("/pro_metrics", analyticsHandler.ProMetrics)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleAdmin))
				r.Get("/users", userHandler.ListUsers)
				r.Put("/admin/seasons/{season}/teams/{team_id}", adminHandler.UpdateStats)
				r.Put("/admin/players/{id}", adminHandler.UpdatePlayer)
				r.Put("/admin/users/{id}/role", adminHandler.UpdateRole)
			})
		})
	})

	return r
}

// uploads serves stored avatars without directory listings
func uploads(dir string) http.Handler {
	files := http.StripPrefix(handlers.AvatarURLPrefix, http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
