package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// Session guard errors. A missing token and an unverifiable token are
// distinct failures and map to distinct HTTP codes (401 vs 410).
var ErrTokenMissing = errors.New("missing token")
var ErrTokenInvalid = errors.New("invalid token")

// RoleAllows is the single authorization predicate for the whole API.
// Admins pass every gate; clients only pass client-level gates.
func RoleAllows(have, want string) bool {
	if have == RoleAdmin {
		return true
	}
	return have == want
}

// User models a registered shopper or administrator.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	LoginCount   int64     `json:"login_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
