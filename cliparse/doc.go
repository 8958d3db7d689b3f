// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite DSN or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - JWTSecret: HMAC secret for access tokens (required)
  - TokenTTL: Access token lifetime (default: 24h)
  - UploadDir: Where avatars are written (default: ./uploads)
  - MaxAvatarBytes: Upload size cap (default: 2 MiB)
  - Exponent: Pythagorean exponent (default: 2.7)
  - LoginRate, LoginBurst: Per-IP login throttle (default: 1/s, burst 5)
  - AllowedOrigins: CORS allow list (empty reflects any origin)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-c            YAML config file
	-p            Server port
	-d            Database URL
	-t            Database type
	-jwt-secret   JWT signing secret
	-token-ttl    Access token lifetime
	-uploads      Upload directory
	-exponent     Pythagorean exponent
	-origins      Comma-separated CORS origins
	-log-level    Log level

# Sources

Values are resolved in this order, first hit wins:

 1. CLI flags
 2. Environment variables (a .env file in the working directory is loaded first)
 3. The YAML file named by -c or CONFIG_FILE
 4. Built-in defaults

Environment names:

	PORT, DATABASE_URL, DATABASE_TYPE, JWT_SECRET, TOKEN_TTL, UPLOAD_DIR,
	MAX_AVATAR_BYTES, EXPONENT, LOGIN_RATE, LOGIN_BURST, ALLOWED_ORIGINS,
	LOG_LEVEL, CONFIG_FILE

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
