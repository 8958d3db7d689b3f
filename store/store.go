// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/uptrace/bun"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/zenithc-git/soccer-Seeker/standings"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Store is the data access layer for seasons, teams, players and users
type Store struct {
	db *bun.DB
}

func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// notFound maps sql.ErrNoRows to ErrNotFound and wraps everything else
func notFound(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("store.%s: %w", op, err)
}

// affected turns a zero-row update into ErrNotFound
func affected(op string, res sql.Result, err error) error {
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("store.%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store.%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation recognises duplicate-key errors from either driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// ---- seasons ----

// ListSeasons returns every season, newest first
func (s *Store) ListSeasons(ctx context.Context) ([]Season, error) {
	var seasons []Season
	err := s.db.NewSelect().Model(&seasons).Order("end_year DESC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListSeasons: %w", err)
	}
	return seasons, nil
}

func (s *Store) SeasonByYear(ctx context.Context, endYear int) (*Season, error) {
	season := new(Season)
	err := s.db.NewSelect().Model(season).Where("end_year = ?", endYear).Limit(1).Scan(ctx)
	if err != nil {
		return nil, notFound("SeasonByYear", err)
	}
	return season, nil
}

// UpsertSeason returns the season ending in endYear, creating it if needed
func (s *Store) UpsertSeason(ctx context.Context, endYear int) (*Season, error) {
	if existing, err := s.SeasonByYear(ctx, endYear); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	season := &Season{EndYear: endYear, Name: SeasonName(endYear)}
	if _, err := s.db.NewInsert().Model(season).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return s.SeasonByYear(ctx, endYear)
		}
		return nil, fmt.Errorf("store.UpsertSeason: %w", err)
	}
	return season, nil
}

// ---- teams ----

func (s *Store) ListTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := s.db.NewSelect().Model(&teams).Order("name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("store.ListTeams: %w", err)
	}
	return teams, nil
}

// SearchTeams matches keyword anywhere in the team name, case-insensitively.
// limit <= 0 means no limit.
func (s *Store) SearchTeams(ctx context.Context, keyword string, limit int) ([]Team, error) {
	var teams []Team
	q := s.db.NewSelect().
		Model(&teams).
		Where("LOWER(t.name) LIKE ?", likePattern(keyword)).
		Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("store.SearchTeams: %w", err)
	}
	return teams, nil
}

// TeamsInSeason lists the teams that have a stats row for the season
func (s *Store) TeamsInSeason(ctx context.Context, endYear int) ([]Team, error) {
	season, err := s.SeasonByYear(ctx, endYear)
	if err != nil {
		return nil, err
	}

	sub := s.db.NewSelect().
		Model((*TeamSeasonStats)(nil)).
		Column("team_id").
		Where("season_id = ?", season.ID)

	var teams []Team
	err = s.db.NewSelect().
		Model(&teams).
		Where("t.id IN (?)", sub).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.TeamsInSeason: %w", err)
	}
	return teams, nil
}

func (s *Store) TeamByID(ctx context.Context, id int64) (*Team, error) {
	team := new(Team)
	if err := s.db.NewSelect().Model(team).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, notFound("TeamByID", err)
	}
	return team, nil
}

// TeamByName matches the exact name, ignoring case
func (s *Store) TeamByName(ctx context.Context, name string) (*Team, error) {
	team := new(Team)
	err := s.db.NewSelect().
		Model(team).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound("TeamByName", err)
	}
	return team, nil
}

// UpsertTeam returns the team with the given name, creating it if needed
func (s *Store) UpsertTeam(ctx context.Context, name string) (*Team, error) {
	name = strings.TrimSpace(name)
	if existing, err := s.TeamByName(ctx, name); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	team := &Team{Name: name}
	if _, err := s.db.NewInsert().Model(team).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return s.TeamByName(ctx, name)
		}
		return nil, fmt.Errorf("store.UpsertTeam: %w", err)
	}
	return team, nil
}

// ---- standings ----

// SeasonRecords loads every team's line for a season in ranker form
func (s *Store) SeasonRecords(ctx context.Context, endYear int) ([]standings.Record, error) {
	season, err := s.SeasonByYear(ctx, endYear)
	if err != nil {
		return nil, err
	}

	var rows []TeamSeasonStats
	err = s.db.NewSelect().
		Model(&rows).
		Relation("Team").
		Where("tss.season_id = ?", season.ID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.SeasonRecords: %w", err)
	}

	records := make([]standings.Record, len(rows))
	for i := range rows {
		records[i] = rows[i].Record()
	}
	return records, nil
}

// TeamSeason loads one team's stats row for a season, with Season and Team set
func (s *Store) TeamSeason(ctx context.Context, teamID int64, endYear int) (*TeamSeasonStats, error) {
	row := new(TeamSeasonStats)
	err := s.db.NewSelect().
		Model(row).
		Relation("Season").
		Relation("Team").
		Where("tss.team_id = ?", teamID).
		Where("season.end_year = ?", endYear).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound("TeamSeason", err)
	}
	return row, nil
}

// TeamHistory returns every season the team has a line for, oldest first
func (s *Store) TeamHistory(ctx context.Context, teamID int64) ([]TeamSeasonStats, error) {
	var rows []TeamSeasonStats
	err := s.db.NewSelect().
		Model(&rows).
		Relation("Season").
		Relation("Team").
		Where("tss.team_id = ?", teamID).
		Order("season.end_year ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.TeamHistory: %w", err)
	}
	return rows, nil
}

// UpsertTeamSeasonStats inserts or replaces the (season, team) line and
// reports whether a row was created. Goal difference is always derived from
// goals for and against.
func (s *Store) UpsertTeamSeasonStats(ctx context.Context, row *TeamSeasonStats) (bool, error) {
	row.GoalDiff = row.GoalsFor - row.GoalsAgainst

	exists, err := s.db.NewSelect().
		Model((*TeamSeasonStats)(nil)).
		Where("season_id = ?", row.SeasonID).
		Where("team_id = ?", row.TeamID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("store.UpsertTeamSeasonStats: %w", err)
	}

	_, err = s.db.NewInsert().
		Model(row).
		On("CONFLICT (season_id, team_id) DO UPDATE").
		Set("position = EXCLUDED.position").
		Set("played = EXCLUDED.played").
		Set("won = EXCLUDED.won").
		Set("drawn = EXCLUDED.drawn").
		Set("lost = EXCLUDED.lost").
		Set("gf = EXCLUDED.gf").
		Set("ga = EXCLUDED.ga").
		Set("gd = EXCLUDED.gd").
		Set("points = EXCLUDED.points").
		Set("notes = EXCLUDED.notes").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("store.UpsertTeamSeasonStats: %w", err)
	}
	return !exists, nil
}

// UpdateTeamSeasonStats writes an edited row back by ID
func (s *Store) UpdateTeamSeasonStats(ctx context.Context, row *TeamSeasonStats) error {
	row.GoalDiff = row.GoalsFor - row.GoalsAgainst
	res, err := s.db.NewUpdate().
		Model(row).
		Column("position", "played", "won", "drawn", "lost", "gf", "ga", "gd", "points", "notes").
		WherePK().
		Exec(ctx)
	return affected("UpdateTeamSeasonStats", res, err)
}

// ---- players ----

// PlayerQuery filters SearchPlayers. Zero values mean "any".
type PlayerQuery struct {
	TeamID   int64
	Initial  string
	Keyword  string
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps the page to 1 or more and the page size to 1..MaxPageSize
func (q *PlayerQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

func (s *Store) PlayersByTeam(ctx context.Context, teamID int64) ([]Player, error) {
	var players []Player
	err := s.db.NewSelect().
		Model(&players).
		Where("team_id = ?", teamID).
		OrderExpr("shirt_no IS NULL, shirt_no ASC, last_name ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.PlayersByTeam: %w", err)
	}
	return players, nil
}

func (s *Store) PlayerByID(ctx context.Context, id int64) (*Player, error) {
	player := new(Player)
	err := s.db.NewSelect().
		Model(player).
		Relation("Team").
		Where("p.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, notFound("PlayerByID", err)
	}
	return player, nil
}

// SearchPlayers returns one page of matching players plus the total match count
func (s *Store) SearchPlayers(ctx context.Context, query PlayerQuery) ([]Player, int, error) {
	query.Normalize()

	var players []Player
	q := s.db.NewSelect().Model(&players).Relation("Team")
	if query.TeamID != 0 {
		q = q.Where("p.team_id = ?", query.TeamID)
	}
	if initial := strings.TrimSpace(query.Initial); initial != "" {
		q = q.Where("LOWER(p.last_name) LIKE ?", strings.ToLower(initial[:1])+"%")
	}
	if kw := strings.TrimSpace(query.Keyword); kw != "" {
		q = q.Where("LOWER(p.first_name || ' ' || p.last_name) LIKE ?", likePattern(kw))
	}

	total, err := q.
		Order("p.last_name ASC", "p.first_name ASC", "p.id ASC").
		Limit(query.PageSize).
		Offset((query.Page - 1) * query.PageSize).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("store.SearchPlayers: %w", err)
	}
	return players, total, nil
}

// findPlayer matches on the natural key. A nil shirt number only matches nil.
func (s *Store) findPlayer(ctx context.Context, p *Player) (*Player, error) {
	existing := new(Player)
	q := s.db.NewSelect().
		Model(existing).
		Where("team_id = ?", p.TeamID).
		Where("first_name = ?", p.FirstName).
		Where("last_name = ?", p.LastName)
	if p.ShirtNo == nil {
		q = q.Where("shirt_no IS NULL")
	} else {
		q = q.Where("shirt_no = ?", *p.ShirtNo)
	}
	if err := q.Limit(1).Scan(ctx); err != nil {
		return nil, notFound("findPlayer", err)
	}
	return existing, nil
}

// UpsertPlayer inserts p, or refreshes birth date and position on the existing
// row with the same team, name and shirt number. It reports whether a row was
// created.
func (s *Store) UpsertPlayer(ctx context.Context, p *Player) (bool, error) {
	existing, err := s.findPlayer(ctx, p)
	switch {
	case err == nil:
		p.ID = existing.ID
		_, err = s.db.NewUpdate().
			Model(p).
			Column("birth_date", "position").
			WherePK().
			Exec(ctx)
		if err != nil {
			return false, fmt.Errorf("store.UpsertPlayer: %w", err)
		}
		return false, nil
	case errors.Is(err, ErrNotFound):
		if _, err := s.db.NewInsert().Model(p).Exec(ctx); err != nil {
			if isUniqueViolation(err) {
				return false, ErrConflict
			}
			return false, fmt.Errorf("store.UpsertPlayer: %w", err)
		}
		return true, nil
	default:
		return false, err
	}
}

// UpdatePlayer overwrites the editable columns of an existing player
func (s *Store) UpdatePlayer(ctx context.Context, p *Player) error {
	res, err := s.db.NewUpdate().
		Model(p).
		Column("team_id", "first_name", "last_name", "shirt_no", "birth_date", "position").
		WherePK().
		Exec(ctx)
	return affected("UpdatePlayer", res, err)
}

// DeletePlayers removes a team's squad and returns how many rows went
func (s *Store) DeletePlayers(ctx context.Context, teamID int64) (int64, error) {
	res, err := s.db.NewDelete().
		Model((*Player)(nil)).
		Where("team_id = ?", teamID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("store.DeletePlayers: %w", err)
	}
	return res.RowsAffected()
}

// ---- users ----

// CreateUser inserts u. Emails are stored lower-cased; a taken email is ErrConflict.
func (s *Store) CreateUser(ctx context.Context, u *User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = "user"
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	if _, err := s.UserByEmail(ctx, u.Email); err == nil {
		return ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	if _, err := s.db.NewInsert().Model(u).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("store.CreateUser: %w", err)
	}
	return nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (*User, error) {
	u := new(User)
	if err := s.db.NewSelect().Model(u).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, notFound("UserByID", err)
	}
	return u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	u := new(User)
	err := s.db.NewSelect().
		Model(u).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound("UserByEmail", err)
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.db.NewSelect().Model(&users).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("store.ListUsers: %w", err)
	}
	return users, nil
}

// UpdateUserProfile writes name and birthday
func (s *Store) UpdateUserProfile(ctx context.Context, u *User) error {
	res, err := s.db.NewUpdate().
		Model(u).
		Column("name", "birthday").
		WherePK().
		Exec(ctx)
	return affected("UpdateUserProfile", res, err)
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := s.db.NewUpdate().
		Model((*User)(nil)).
		Set("password_hash = ?", hash).
		Where("id = ?", id).
		Exec(ctx)
	return affected("UpdatePassword", res, err)
}

func (s *Store) UpdateAvatar(ctx context.Context, id int64, url string) error {
	res, err := s.db.NewUpdate().
		Model((*User)(nil)).
		Set("avatar_url = ?", url).
		Where("id = ?", id).
		Exec(ctx)
	return affected("UpdateAvatar", res, err)
}

func (s *Store) UpdateRole(ctx context.Context, id int64, role string) error {
	res, err := s.db.NewUpdate().
		Model((*User)(nil)).
		Set("role = ?", role).
		Where("id = ?", id).
		Exec(ctx)
	return affected("UpdateRole", res, err)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return affected("DeleteUser", res, err)
}
