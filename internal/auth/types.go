package auth

import (
	"errors"
	"regexp"
	"time"
)

// usernamePattern defines the valid format for usernames:
// alphanumeric, dots, hyphens, underscores, 1-64 characters.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// maxUsernameLength is the maximum allowed username length.
const maxUsernameLength = 64

// IsValidUsername checks if a username meets format requirements.
// Usernames must be 1-64 characters, alphanumeric with dots, hyphens, underscores.
func IsValidUsername(username string) bool {
	return len(username) <= maxUsernameLength && usernamePattern.MatchString(username)
}

// Role represents a management API privilege tier, named after the
// standard Redfish account roles.
type Role string

const (
	// RoleAdministrator has full control including account management.
	RoleAdministrator Role = "Administrator"

	// RoleOperator can operate the unit (power control) but not manage accounts.
	RoleOperator Role = "Operator"

	// RoleReadOnly can only read resources.
	RoleReadOnly Role = "ReadOnly"
)

// ValidRoles is the set of assignable account roles.
var ValidRoles = []Role{RoleAdministrator, RoleOperator, RoleReadOnly}

// IsValidRole returns true if the role can be assigned to an account.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Account represents a management API login.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	Enabled      bool      `json:"enabled"`
	Builtin      bool      `json:"builtin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents a live token session created through the session
// service. The raw token is never stored — only its hash.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	TokenHash string    `json:"-"` // never serialised
	CreatedAt time.Time `json:"created_at"`
}

// Sentinel errors for auth operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("credentials required")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountProtected   = errors.New("built-in account cannot be deleted")
	ErrInvalidUsername    = errors.New("invalid username format")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSessionNotFound    = errors.New("session not found")
	ErrTokenInvalid       = errors.New("invalid token")
)
