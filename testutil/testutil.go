// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/zenithc-git/soccer-Seeker/auth"
	"github.com/zenithc-git/soccer-Seeker/cliparse"
	"github.com/zenithc-git/soccer-Seeker/db"
	"github.com/zenithc-git/soccer-Seeker/store"
)

// TestJWTSecret signs every token issued in tests
const TestJWTSecret = "test-jwt-secret"

// TestPassword is the password given to every user from CreateTestUser
const TestPassword = "correct-horse"

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// Each call gets its own database, closed when the test ends.
func SetupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "file::memory:",
		DatabaseType:   "sqlite",
		JWTSecret:      TestJWTSecret,
		TokenTTL:       time.Hour,
		UploadDir:      "",
		MaxAvatarBytes: 64 << 10,
		Exponent:       cliparse.DefaultExponent,
		LoginRate:      1000,
		LoginBurst:     1000,
		LogLevel:       "error",
	}
}

// CreateTestUser stores a user with a random name and email, the given role
// and TestPassword, and returns it with a signed token.
func CreateTestUser(t *testing.T, st *store.Store, role auth.Role) (*store.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	u := &store.User{
		Name:         gofakeit.Name(),
		Email:        uuid.NewString()[:8] + "." + gofakeit.Email(),
		PasswordHash: hash,
		Role:         string(role),
	}
	if err := st.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err := auth.NewTokenService(TestJWTSecret, time.Hour).Issue(u.ID, role)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return u, token
}

// Line is one team's season as SeedSeason writes it
type Line struct {
	Team         string
	Position     int
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

// SeedSeason writes a season and its lines, creating teams as needed, and
// returns team IDs by name.
func SeedSeason(t *testing.T, st *store.Store, endYear int, lines ...Line) map[string]int64 {
	t.Helper()
	ctx := context.Background()

	season, err := st.UpsertSeason(ctx, endYear)
	if err != nil {
		t.Fatalf("Failed to create season: %v", err)
	}

	ids := make(map[string]int64, len(lines))
	for _, l := range lines {
		team, err := st.UpsertTeam(ctx, l.Team)
		if err != nil {
			t.Fatalf("Failed to create team %s: %v", l.Team, err)
		}
		ids[l.Team] = team.ID

		row := &store.TeamSeasonStats{
			SeasonID:     season.ID,
			TeamID:       team.ID,
			Played:       l.Played,
			Won:          l.Won,
			Drawn:        l.Drawn,
			Lost:         l.Lost,
			GoalsFor:     l.GoalsFor,
			GoalsAgainst: l.GoalsAgainst,
			Points:       l.Points,
		}
		if l.Position > 0 {
			pos := l.Position
			row.Position = &pos
		}
		if _, err := st.UpsertTeamSeasonStats(ctx, row); err != nil {
			t.Fatalf("Failed to create stats for %s: %v", l.Team, err)
		}
	}
	return ids
}

// SampleSeason is a three-team table whose order depends on the policy
func SampleSeason() []Line {
	return []Line{
		{Team: "A", Position: 1, Played: 2, Won: 2, GoalsFor: 5, GoalsAgainst: 1, Points: 6},
		{Team: "B", Position: 2, Played: 2, Won: 1, Lost: 1, GoalsFor: 6, GoalsAgainst: 4, Points: 3},
		{Team: "C", Position: 3, Played: 2, Drawn: 2, GoalsFor: 0, GoalsAgainst: 0, Points: 2},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer builds the Authorization header for MakeRequest
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
