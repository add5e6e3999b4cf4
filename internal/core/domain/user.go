package domain

import (
	"strings"
	"time"
)

// Principal is the authenticated caller's identity and role, resolved from a
// verified token by the auth middleware. Immutable for the rest of the request.
type Principal struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// User models an account. PasswordHash never leaves the core: the json tag
// excludes it from every payload regardless of the caller's role.
type User struct {
	ID           int       `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	IsAdmin      bool      `json:"is_admin" bson:"is_admin"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
	Version      int       `json:"version" bson:"version"`
	CreatedByID  int       `json:"created_by_id" bson:"created_by_id"`
	UpdatedByID  int       `json:"updated_by_id" bson:"updated_by_id"`
}

// Principal returns the request identity derived from this account.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

// NormalizeUsername applies the canonical form used for the unique username
// constraint: trimmed and lowercased.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
