// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Machine-readable reasons carried in ErrorResponse.Code
const (
	CodeInvalidPolicy  = "invalid_policy"
	CodeNoValidMatches = "no_valid_matches"
	CodeMissingSeason  = "missing_season"
	CodeBadRequest     = "bad_request"
	CodeNotFound       = "not_found"
	CodeUnauthorized   = "unauthorized"
	CodeForbidden      = "forbidden"
	CodeRateLimited    = "rate_limited"
	CodeInvalidJSON    = "invalid_json"
	CodeConflict       = "conflict"
	CodeInvalidUpload  = "invalid_upload"
	CodeInternal       = "internal"
)

// DateLayout is the wire format for birthdays and birth dates
const DateLayout = "2006-01-02"

// Request types

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Birthday string `json:"birthday"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Nil fields are left unchanged
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Birthday *string `json:"birthday"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// Nil fields are left unchanged; gd is always derived
type UpdateStatsRequest struct {
	Position *int    `json:"position"`
	Played   *int    `json:"played"`
	Won      *int    `json:"won"`
	Drawn    *int    `json:"drawn"`
	Lost     *int    `json:"lost"`
	GF       *int    `json:"gf"`
	GA       *int    `json:"ga"`
	Points   *int    `json:"points"`
	Notes    *string `json:"notes"`
}

type UpdatePlayerRequest struct {
	TeamID    *int64  `json:"team_id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	ShirtNo   *int    `json:"shirt_no"`
	BirthDate *string `json:"birth_date"`
	Position  *string `json:"position"`
}

// Response types

type SeasonsResponse struct {
	Seasons []int `json:"seasons"`
}

type StandingRow struct {
	Rank   int    `json:"rank"`
	TeamID int64  `json:"team_id"`
	Team   string `json:"team"`
	Played int    `json:"played"`
	Won    int    `json:"won"`
	Drawn  int    `json:"drawn"`
	Lost   int    `json:"lost"`
	GF     int    `json:"gf"`
	GA     int    `json:"ga"`
	GD     int    `json:"gd"`
	Points int    `json:"points"`
}

type StandingsResponse struct {
	Season int           `json:"season"`
	Type   string        `json:"type"`
	Count  int           `json:"count"`
	Rows   []StandingRow `json:"rows"`
}

type TeamsResponse struct {
	Teams []Team `json:"teams"`
}

type TeamProfileResponse struct {
	Team      Team            `json:"team"`
	Season    int             `json:"season"`
	Stats     *TeamSeasonLine `json:"stats"`
	Players   []Player        `json:"players"`
	Narrative string          `json:"narrative"`
}

type TeamHistoryResponse struct {
	Team    Team             `json:"team"`
	Seasons []TeamSeasonLine `json:"seasons"`
}

type ProMetricsResponse struct {
	Team      string      `json:"team"`
	Season    int         `json:"season"`
	Metrics   *ProMetrics `json:"metrics"`
	Log       []string    `json:"log"`
	Narrative string      `json:"narrative"`
}

// NoValidMatchesResponse is the 422 body for a season with no matches played.
// The error fields are inlined next to the calculation log.
type NoValidMatchesResponse struct {
	ErrorResponse
	Team   string   `json:"team"`
	Season int      `json:"season"`
	Log    []string `json:"log"`
}

type PlayersResponse struct {
	Players  []Player `json:"players"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UsersResponse struct {
	Users []User `json:"users"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TeamSeasonLine is a stored season row. Position is computed from the
// ranked table; OfficialPosition is what the source published, if anything.
type TeamSeasonLine struct {
	Season           int     `json:"season"`
	SeasonName       string  `json:"season_name"`
	Position         int     `json:"position"`
	OfficialPosition *int    `json:"official_position,omitempty"`
	Played           int     `json:"played"`
	Won              int     `json:"won"`
	Drawn            int     `json:"drawn"`
	Lost             int     `json:"lost"`
	GF               int     `json:"gf"`
	GA               int     `json:"ga"`
	GD               int     `json:"gd"`
	Points           int     `json:"points"`
	Notes            *string `json:"notes,omitempty"`
}

type Player struct {
	ID        int64   `json:"id"`
	TeamID    int64   `json:"team_id"`
	Team      string  `json:"team,omitempty"`
	Name      string  `json:"name"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	ShirtNo   *int    `json:"shirt_no"`
	BirthDate *string `json:"birth_date,omitempty"`
	Position  *string `json:"position,omitempty"`
}

// ProMetrics uses the field names the front end reads
type ProMetrics struct {
	Exponent             float64 `json:"exponent"`
	Played               int     `json:"played"`
	GF                   int     `json:"gf"`
	GA                   int     `json:"ga"`
	Points               int     `json:"points"`
	ExpWinRate           float64 `json:"exp_win_rate"`
	ActualWinRate        float64 `json:"actual_win_rate"`
	ExpPoints            float64 `json:"exp_points"`
	DeltaPoints          float64 `json:"delta_points"`
	ExpPointsPerMatch    float64 `json:"exp_points_per_match"`
	ActualPointsPerMatch float64 `json:"actual_points_per_match"`
}

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Birthday  *string   `json:"birthday,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
