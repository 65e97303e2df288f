package domain

import (
	"strings"
	"time"
)

// Role is the closed set of account roles. Values read from storage pass
// through ParseRole before they reach the core.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole normalizes a stored or submitted role value. An empty value maps
// to RoleUser (the registration default); unknown values are rejected rather
// than defaulted.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser, "":
		return RoleUser, true
	default:
		return "", false
	}
}

// User is a registered principal. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenPair is the result of a successful login: a short-lived access token
// and a long-lived refresh token, signed with independent secrets.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
