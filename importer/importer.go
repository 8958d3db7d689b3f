// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zenithc-git/soccer-Seeker/store"
)

// Format is the container a player sheet arrives in
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported import format")

// FormatFromName picks the format from a file extension. Anything that is not
// .xlsx is read as CSV.
func FormatFromName(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Result counts what an import did with each data row
type Result struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

var standingsColumns = []string{
	"season_end_year", "team", "position", "played", "won", "drawn", "lost", "gf", "ga", "points",
}

// Standings loads a league table CSV. Seasons and teams are created on first
// sight; each (season, team) line is inserted or overwritten. The gd column is
// ignored and recomputed from gf and ga. A malformed or negative number aborts
// the import with the offending line.
func Standings(ctx context.Context, st *store.Store, r io.Reader) (Result, error) {
	var res Result

	rows, err := readCSV(r)
	if err != nil {
		return res, err
	}
	if len(rows) == 0 {
		return res, errors.New("standings file is empty")
	}

	cols := headerIndex(rows[0])
	for _, name := range standingsColumns {
		if _, ok := cols[name]; !ok {
			return res, fmt.Errorf("standings file is missing column %q", name)
		}
	}

	seasons := make(map[int]int64)
	teams := make(map[string]int64)

	for i, row := range rows[1:] {
		line := i + 2
		get := func(name string) string { return cell(row, cols, name) }

		teamName := get("team")
		if teamName == "" {
			res.Skipped++
			continue
		}

		nums := make(map[string]int, len(standingsColumns))
		for _, name := range standingsColumns {
			if name == "team" {
				continue
			}
			n, err := strconv.Atoi(get(name))
			if err != nil {
				return res, fmt.Errorf("line %d: invalid %s %q", line, name, get(name))
			}
			if n < 0 {
				return res, fmt.Errorf("line %d: %s must not be negative, got %d", line, name, n)
			}
			nums[name] = n
		}

		endYear := nums["season_end_year"]
		seasonID, ok := seasons[endYear]
		if !ok {
			season, err := st.UpsertSeason(ctx, endYear)
			if err != nil {
				return res, fmt.Errorf("line %d: %w", line, err)
			}
			seasonID = season.ID
			seasons[endYear] = seasonID
		}

		teamID, ok := teams[teamName]
		if !ok {
			team, err := st.UpsertTeam(ctx, teamName)
			if err != nil {
				return res, fmt.Errorf("line %d: %w", line, err)
			}
			teamID = team.ID
			teams[teamName] = teamID
		}

		position := nums["position"]
		stats := &store.TeamSeasonStats{
			SeasonID:     seasonID,
			TeamID:       teamID,
			Position:     &position,
			Played:       nums["played"],
			Won:          nums["won"],
			Drawn:        nums["drawn"],
			Lost:         nums["lost"],
			GoalsFor:     nums["gf"],
			GoalsAgainst: nums["ga"],
			Points:       nums["points"],
		}
		if notes := get("notes"); notes != "" {
			stats.Notes = &notes
		}
		created, err := st.UpsertTeamSeasonStats(ctx, stats)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		if created {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	slog.Info("standings imported",
		"inserted", res.Inserted,
		"updated", res.Updated,
		"skipped", res.Skipped,
		"seasons", len(seasons),
		"teams", len(teams),
	)
	return res, nil
}

type playerKey struct {
	teamID      int64
	first, last string
	shirt       int
	hasShirt    bool
}

// Players loads a squad list. Rows pointing at an unknown team, rows with no
// name at all and repeats of an earlier row are skipped. Existing players get
// their birth date and position refreshed.
func Players(ctx context.Context, st *store.Store, r io.Reader, format Format) (Result, error) {
	var res Result

	var rows [][]string
	var err error
	switch format {
	case FormatCSV, "":
		rows, err = readCSV(r)
	case FormatXLSX:
		rows, err = readXLSX(r)
	default:
		return res, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return res, err
	}
	if len(rows) == 0 {
		return res, errors.New("player file is empty")
	}

	cols := headerIndex(rows[0])
	if _, ok := cols["teamid"]; !ok {
		return res, errors.New("player file is missing column \"teamID\"")
	}

	known := make(map[int64]bool)
	seen := make(map[playerKey]bool)

	for _, row := range rows[1:] {
		get := func(name string) string { return cell(row, cols, name) }

		teamID, err := strconv.ParseInt(get("teamid"), 10, 64)
		if err != nil {
			res.Skipped++
			continue
		}

		exists, checked := known[teamID]
		if !checked {
			_, err := st.TeamByID(ctx, teamID)
			switch {
			case err == nil:
				exists = true
			case errors.Is(err, store.ErrNotFound):
				slog.Warn("skipping player with unknown team", "team_id", teamID)
			default:
				return res, err
			}
			known[teamID] = exists
		}
		if !exists {
			res.Skipped++
			continue
		}

		first, last := get("firstname"), get("lastname")
		if first == "" && last == "" {
			res.Skipped++
			continue
		}

		key := playerKey{teamID: teamID, first: first, last: last}
		p := &store.Player{TeamID: teamID, FirstName: first, LastName: last}
		if shirt, ok := parseShirt(get("shirtno")); ok {
			p.ShirtNo = &shirt
			key.shirt, key.hasShirt = shirt, true
		}
		if seen[key] {
			res.Skipped++
			continue
		}
		seen[key] = true

		p.BirthDate = ParseDate(get("birthdate"))
		if pos := get("position"); pos != "" {
			p.Position = &pos
		}

		created, err := st.UpsertPlayer(ctx, p)
		if err != nil {
			return res, err
		}
		if created {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	slog.Info("players imported", "inserted", res.Inserted, "updated", res.Updated, "skipped", res.Skipped)
	return res, nil
}

func parseShirt(s string) (int, bool) {
	if s == "" || strings.EqualFold(s, "NA") {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseDate reads YYYY/M/D or YYYY-M-D. Anything else is nil.
func ParseDate(s string) *time.Time {
	s = strings.ReplaceAll(strings.TrimSpace(s), "-", "/")
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006/1/2", s)
	if err != nil {
		return nil
	}
	return &t
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

// readXLSX returns the rows of the first sheet
func readXLSX(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("XLSX has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// headerIndex maps lower-cased column names to their index. A UTF-8 byte order
// mark on the first header is dropped.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
