// Package auth provides authentication and account management for the
// management API.
//
// It implements the Redfish account model (Administrator → Operator →
// ReadOnly) with:
//   - Argon2id password hashing (OWASP 2025 recommendation)
//   - Token sessions: HS256-signed tokens that clients treat as opaque
//     X-Auth-Token values, backed by a session row so deletion revokes
//     a token immediately
//   - A protected built-in administrator seeded on boot
//
// Accounts and sessions live in SQLite; with the default in-memory
// database every restart returns to the seeded administrator only.
package auth
