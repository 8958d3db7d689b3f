// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/zenithc-git/soccer-Seeker/standings"
)

// Season is one Premier League season, keyed by the calendar year it ends in
type Season struct {
	bun.BaseModel `bun:"table:seasons,alias:s"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	EndYear       int    `bun:"end_year,notnull,unique" json:"end_year"`
	Name          string `bun:"name,notnull,unique" json:"name"`
}

// SeasonName renders the conventional "2023-2024" label
func SeasonName(endYear int) string {
	return fmt.Sprintf("%d-%d", endYear-1, endYear)
}

type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	Name          string `bun:"name,notnull,unique" json:"name"`
}

// TeamSeasonStats is the stored aggregate line for one team in one season.
// Position is the officially published position and may be absent.
type TeamSeasonStats struct {
	bun.BaseModel `bun:"table:team_season_stats,alias:tss"`
	ID            int64   `bun:"id,pk,autoincrement" json:"id"`
	SeasonID      int64   `bun:"season_id,notnull,unique:season_team" json:"season_id"`
	TeamID        int64   `bun:"team_id,notnull,unique:season_team" json:"team_id"`
	Position      *int    `bun:"position" json:"position,omitempty"`
	Played        int     `bun:"played,notnull" json:"played"`
	Won           int     `bun:"won,notnull" json:"won"`
	Drawn         int     `bun:"drawn,notnull" json:"drawn"`
	Lost          int     `bun:"lost,notnull" json:"lost"`
	GoalsFor      int     `bun:"gf,notnull" json:"gf"`
	GoalsAgainst  int     `bun:"ga,notnull" json:"ga"`
	GoalDiff      int     `bun:"gd,notnull" json:"gd"`
	Points        int     `bun:"points,notnull" json:"points"`
	Notes         *string `bun:"notes,nullzero" json:"notes,omitempty"`

	Season *Season `bun:"rel:belongs-to,join:season_id=id" json:"-"`
	Team   *Team   `bun:"rel:belongs-to,join:team_id=id" json:"-"`
}

// Record converts the stored row into ranker input
func (s *TeamSeasonStats) Record() standings.Record {
	r := standings.Record{
		TeamID:         s.TeamID,
		Played:         s.Played,
		Won:            s.Won,
		Drawn:          s.Drawn,
		Lost:           s.Lost,
		GoalsFor:       s.GoalsFor,
		GoalsAgainst:   s.GoalsAgainst,
		GoalDifference: s.GoalDiff,
		Points:         s.Points,
	}
	if s.Team != nil {
		r.TeamName = s.Team.Name
	}
	return r
}

type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	TeamID        int64      `bun:"team_id,notnull,unique:team_player" json:"team_id"`
	FirstName     string     `bun:"first_name,notnull,unique:team_player" json:"first_name"`
	LastName      string     `bun:"last_name,notnull,unique:team_player" json:"last_name"`
	ShirtNo       *int       `bun:"shirt_no,unique:team_player" json:"shirt_no"`
	BirthDate     *time.Time `bun:"birth_date" json:"birth_date,omitempty"`
	Position      *string    `bun:"position,nullzero" json:"position,omitempty"`

	Team *Team `bun:"rel:belongs-to,join:team_id=id" json:"-"`
}

// FullName joins first and last name
func (p *Player) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Name          string     `bun:"name,notnull" json:"name"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          string     `bun:"role,notnull,default:'user'" json:"role"`
	Birthday      *time.Time `bun:"birthday" json:"birthday,omitempty"`
	AvatarURL     *string    `bun:"avatar_url,nullzero" json:"avatar_url,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
