// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrInvalidSignature   = errors.New("invalid token signature")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid role")
)

// Role is an account's access level
type Role string

const (
	RoleUser  Role = "user"
	RoleVIP   Role = "vip_user"
	RoleAdmin Role = "admin"
)

// ParseRole accepts the three stored role names
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleVIP, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// Premium reports whether the role unlocks analytics and charts
func (r Role) Premium() bool {
	return r == RoleVIP || r == RoleAdmin
}

// SelfAssignable reports whether a user may pick the role at registration
func (r Role) SelfAssignable() bool {
	return r == RoleUser || r == RoleVIP
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}
