// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = 3318
	DefaultDatabaseType   = "sqlite"
	DefaultTokenTTL       = 24 * time.Hour
	DefaultUploadDir      = "./uploads"
	DefaultMaxAvatarBytes = 2 << 20
	DefaultExponent       = 2.7
	DefaultLoginRate      = 1.0
	DefaultLoginBurst     = 5
	DefaultLogLevel       = "info"
)

type Config struct {
	Port           int           `yaml:"port"`
	DatabaseURL    string        `yaml:"database_url"`
	DatabaseType   string        `yaml:"database_type"`
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	UploadDir      string        `yaml:"upload_dir"`
	MaxAvatarBytes int64         `yaml:"max_avatar_bytes"`
	Exponent       float64       `yaml:"exponent"`
	LoginRate      float64       `yaml:"login_rate"`
	LoginBurst     int           `yaml:"login_burst"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	LogLevel       string        `yaml:"log_level"`
}

// ParseFlags builds the config. Precedence is flags, then environment (with
// .env loaded if present), then an optional YAML file, then defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var configFile, origins string

	fs := flag.NewFlagSet("soccer-seeker", flag.ContinueOnError)

	fs.StringVar(&configFile, "c", "", "YAML config file")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&origins, "origins", "", "Comma-separated allowed CORS origins")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")

	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 0, "Access token lifetime")
	fs.StringVar(&cfg.UploadDir, "uploads", "", "Avatar upload directory")
	fs.Float64Var(&cfg.Exponent, "exponent", 0, "Pythagorean exponent")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	var file Config
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = DefaultPort
		}
	}

	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), file.DatabaseURL)
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), file.DatabaseType, DefaultDatabaseType)
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	cfg.JWTSecret = firstNonEmpty(cfg.JWTSecret, os.Getenv("JWT_SECRET"), file.JWTSecret)
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.TokenTTL == 0 {
		if v := os.Getenv("TOKEN_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, errors.New("invalid TOKEN_TTL env variable")
			}
			cfg.TokenTTL = d
		} else if file.TokenTTL != 0 {
			cfg.TokenTTL = file.TokenTTL
		} else {
			cfg.TokenTTL = DefaultTokenTTL
		}
	}

	cfg.UploadDir = firstNonEmpty(cfg.UploadDir, os.Getenv("UPLOAD_DIR"), file.UploadDir, DefaultUploadDir)
	cfg.LogLevel = strings.ToLower(firstNonEmpty(cfg.LogLevel, os.Getenv("LOG_LEVEL"), file.LogLevel, DefaultLogLevel))

	var err error
	if cfg.MaxAvatarBytes, err = envInt64("MAX_AVATAR_BYTES", file.MaxAvatarBytes, DefaultMaxAvatarBytes); err != nil {
		return Config{}, err
	}
	if cfg.Exponent == 0 {
		if cfg.Exponent, err = envFloat("EXPONENT", file.Exponent, DefaultExponent); err != nil {
			return Config{}, err
		}
	}
	if cfg.LoginRate, err = envFloat("LOGIN_RATE", file.LoginRate, DefaultLoginRate); err != nil {
		return Config{}, err
	}
	burst, err := envInt64("LOGIN_BURST", int64(file.LoginBurst), DefaultLoginBurst)
	if err != nil {
		return Config{}, err
	}
	cfg.LoginBurst = int(burst)

	origins = firstNonEmpty(origins, os.Getenv("ALLOWED_ORIGINS"))
	if origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	} else {
		cfg.AllowedOrigins = file.AllowedOrigins
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envInt64(key string, fromFile, def int64) (int64, error) {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s env variable", key)
		}
		return n, nil
	}
	if fromFile != 0 {
		return fromFile, nil
	}
	return def, nil
}

func envFloat(key string, fromFile, def float64) (float64, error) {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s env variable", key)
		}
		return f, nil
	}
	if fromFile != 0 {
		return fromFile, nil
	}
	return def, nil
}
