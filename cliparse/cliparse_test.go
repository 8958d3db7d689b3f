// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "DATABASE_URL", "DATABASE_TYPE", "JWT_SECRET", "TOKEN_TTL", "UPLOAD_DIR",
	"MAX_AVATAR_BYTES", "EXPONENT", "LOGIN_RATE", "LOGIN_BURST", "ALLOWED_ORIGINS",
	"LOG_LEVEL", "CONFIG_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func setRequired(t *testing.T) {
	t.Helper()
	clearEnv(t)
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, DefaultTokenTTL, cfg.TokenTTL)
	assert.Equal(t, DefaultExponent, cfg.Exponent)
	assert.Equal(t, int64(DefaultMaxAvatarBytes), cfg.MaxAvatarBytes)
	assert.Equal(t, DefaultLoginBurst, cfg.LoginBurst)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:other.db", "-jwt-secret", "cli", "-exponent", "2"})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port, "CLI should override env")
	assert.Equal(t, "file:other.db", cfg.DatabaseURL)
	assert.Equal(t, "cli", cfg.JWTSecret)
	assert.Equal(t, 2.0, cfg.Exponent)
}

func TestParseFlags_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seeker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database_url: postgres://seeker@localhost/seeker
database_type: postgres
jwt_secret: from-file
token_ttl: 30m
login_burst: 9
`), 0o600))

	clearEnv(t)
	t.Setenv("PORT", "7000")

	cfg, err := ParseFlags([]string{"-c", path})
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port, "env should override file")
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 9, cfg.LoginBurst)
}

func TestParseFlags_Missing(t *testing.T) {
	clearEnv(t)

	_, err := ParseFlags([]string{})
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "file:test.db")
	_, err = ParseFlags([]string{})
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestParseFlags_BadDatabaseType(t *testing.T) {
	setRequired(t)
	_, err := ParseFlags([]string{"-t", "mysql"})
	assert.ErrorContains(t, err, "mysql")
}
