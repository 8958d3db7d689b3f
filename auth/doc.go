// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, access tokens and role checks.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(plain)
	err := auth.CheckPassword(hash, plain) // ErrInvalidCredentials on mismatch

Passwords shorter than MinPasswordLength are refused with ErrWeakPassword.

# Access Tokens

TokenService signs HS256 JWTs carrying the user ID (subject) and role:

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	token, err := tokens.Issue(user.ID, auth.RoleVIP)
	claims, err := tokens.Validate(token)

Validation maps library errors onto ErrExpiredToken, ErrInvalidSignature and
ErrInvalidToken. Nothing is kept in memory; logout is a client-side concern.

# Roles

	RoleUser   basic access
	RoleVIP    adds pro metrics and charts
	RoleAdmin  adds editing and user management

Only RoleUser and RoleVIP are SelfAssignable. Admin accounts are created with
seekerctl.

# ID Generation

Random hex IDs, used as token IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
