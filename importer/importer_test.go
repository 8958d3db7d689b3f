// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package importer

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zenithc-git/soccer-Seeker/store"
	"github.com/zenithc-git/soccer-Seeker/testutil"
)

const standingsCSV = "\ufeffseason_end_year,team,position,played,won,drawn,lost,gf,ga,gd,points,notes\n" +
	"2024,Manchester City,1,38,28,7,3,96,34,0,91,\n" +
	"2024,Arsenal,2,38,28,5,5,91,29,62,89,\n" +
	"2023,Arsenal,2,38,26,6,6,88,43,,84,runners-up\n" +
	",,,,,,,,,,,\n"

func TestStandings(t *testing.T) {
	ctx := context.Background()
	st := store.New(testutil.SetupTestDB(t))

	res, err := Standings(ctx, st, strings.NewReader(standingsCSV))
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 3, Skipped: 1}, res)

	seasons, err := st.ListSeasons(ctx)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, "2022-2023", seasons[1].Name)

	city, err := st.TeamByName(ctx, "Manchester City")
	require.NoError(t, err)
	row, err := st.TeamSeason(ctx, city.ID, 2024)
	require.NoError(t, err)
	assert.Equal(t, 62, row.GoalDiff, "gd column is recomputed")
	require.NotNil(t, row.Position)
	assert.Equal(t, 1, *row.Position)

	arsenal, err := st.TeamByName(ctx, "Arsenal")
	require.NoError(t, err)
	row, err = st.TeamSeason(ctx, arsenal.ID, 2023)
	require.NoError(t, err)
	assert.Equal(t, 45, row.GoalDiff)
	require.NotNil(t, row.Notes)
	assert.Equal(t, "runners-up", *row.Notes)

	// Re-importing overwrites instead of duplicating.
	res, err = Standings(ctx, st, strings.NewReader(standingsCSV))
	require.NoError(t, err)
	assert.Equal(t, Result{Updated: 3, Skipped: 1}, res)
	records, err := st.SeasonRecords(ctx, 2024)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStandingsErrors(t *testing.T) {
	ctx := context.Background()
	st := store.New(testutil.SetupTestDB(t))

	_, err := Standings(ctx, st, strings.NewReader("season_end_year,team\n2024,Arsenal\n"))
	assert.ErrorContains(t, err, "missing column")

	bad := "season_end_year,team,position,played,won,drawn,lost,gf,ga,gd,points\n" +
		"2024,Arsenal,1,thirty-eight,28,5,5,91,29,62,89\n"
	_, err = Standings(ctx, st, strings.NewReader(bad))
	assert.ErrorContains(t, err, "line 2")

	_, err = Standings(ctx, st, strings.NewReader(""))
	assert.Error(t, err)
}

func TestStandingsRejectsNegativeCounts(t *testing.T) {
	ctx := context.Background()
	st := store.New(testutil.SetupTestDB(t))

	csv := "season_end_year,team,position,played,won,drawn,lost,gf,ga,gd,points\n" +
		"2024,Arsenal,2,38,28,5,5,91,29,62,89\n" +
		"2024,Burnley,19,10,5,0,5,-4,3,0,15\n"
	res, err := Standings(ctx, st, strings.NewReader(csv))
	assert.ErrorContains(t, err, "line 3")
	assert.ErrorContains(t, err, "gf must not be negative")
	assert.Equal(t, 1, res.Inserted)

	_, err = st.TeamByName(ctx, "Burnley")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func seedTeams(t *testing.T, st *store.Store) map[string]int64 {
	t.Helper()
	return testutil.SeedSeason(t, st, 2024, testutil.Line{Team: "Liverpool"}, testutil.Line{Team: "Brentford"})
}

func TestPlayersCSV(t *testing.T) {
	ctx := context.Background()
	st := store.New(testutil.SetupTestDB(t))
	ids := seedTeams(t, st)

	var b strings.Builder
	b.WriteString("teamID,firstName,lastName,shirtNo,birthDate,position\n")
	b.WriteString(itoa(ids["Liverpool"]) + ",Mohamed,Salah,11,1992/6/15,FW\n")
	b.WriteString(itoa(ids["Liverpool"]) + ",Mohamed,Salah,11,1992/6/15,FW\n")
	b.WriteString(itoa(ids["Liverpool"]) + ",Trent,Alexander-Arnold,NA,1998-10-7,DF\n")
	b.WriteString(itoa(ids["Brentford"]) + ",,,,,\n")
	b.WriteString("9999,Ghost,Player,1,,\n")
	b.WriteString("abc,Bad,Id,1,,\n")

	res, err := Players(ctx, st, strings.NewReader(b.String()), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 2, Skipped: 4}, res)

	squad, err := st.PlayersByTeam(ctx, ids["Liverpool"])
	require.NoError(t, err)
	require.Len(t, squad, 2)
	assert.Equal(t, "Salah", squad[0].LastName)
	require.NotNil(t, squad[0].BirthDate)
	assert.Equal(t, "1992-06-15", squad[0].BirthDate.Format("2006-01-02"))
	assert.Nil(t, squad[1].ShirtNo)
	require.NotNil(t, squad[1].BirthDate)
	assert.Equal(t, "1998-10-07", squad[1].BirthDate.Format("2006-01-02"))

	// A second run refreshes rather than inserts.
	res, err = Players(ctx, st, strings.NewReader(b.String()), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 2, res.Updated)
}

// buildXLSX writes rows into the first sheet of a new workbook
func buildXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, axis, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestPlayersXLSX(t *testing.T) {
	ctx := context.Background()
	st := store.New(testutil.SetupTestDB(t))
	ids := seedTeams(t, st)

	data := buildXLSX(t, [][]any{
		{"teamID", "firstName", "lastName", "shirtNo", "birthDate", "position"},
		{ids["Brentford"], "Bryan", "Mbeumo", 19, "1999/8/7", "FW"},
		{ids["Brentford"], "Mark", "Flekken", "", "", "GK"},
	})

	res, err := Players(ctx, st, bytes.NewReader(data), FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 2}, res)

	page, total, err := st.SearchPlayers(ctx, store.PlayerQuery{TeamID: ids["Brentford"]})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Flekken", page[0].LastName)
	assert.Nil(t, page[0].ShirtNo)
	require.NotNil(t, page[1].ShirtNo)
	assert.Equal(t, 19, *page[1].ShirtNo)
}

func TestPlayersUnsupportedFormat(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	_, err := Players(context.Background(), st, strings.NewReader(""), Format("ods"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFromName(t *testing.T) {
	assert.Equal(t, FormatXLSX, FormatFromName("squads.XLSX"))
	assert.Equal(t, FormatCSV, FormatFromName("squads.csv"))
	assert.Equal(t, FormatCSV, FormatFromName("squads"))
}

func TestParseDate(t *testing.T) {
	tests := map[string]string{
		"2001/2/3":     "2001-02-03",
		"2001-02-03":   "2001-02-03",
		" 1999/12/31 ": "1999-12-31",
	}
	for in, want := range tests {
		got := ParseDate(in)
		require.NotNil(t, got, in)
		assert.Equal(t, want, got.Format("2006-01-02"))
	}

	for _, in := range []string{"", "NA", "03/02/2001", "2001/13/1"} {
		assert.Nil(t, ParseDate(in), in)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
