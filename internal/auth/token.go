package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session tokens are HS256 JWTs carrying the session id, but clients
// treat them as opaque X-Auth-Token values. The signature rejects
// forgeries cheaply; authority still comes from the session row, so
// deleting a session invalidates its token immediately.

// HashToken computes the SHA-256 hash of a raw token string for storage.
// Raw tokens are never stored — only their hashes.
func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

// MintSessionToken signs a token binding a session id to a username.
func MintSessionToken(secret []byte, sessionID, username string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"sub": username,
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies a token's signature and returns the
// embedded session id. Returns ErrTokenInvalid for anything that does
// not verify, including tokens signed with a different method.
func ParseSessionToken(secret []byte, raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrTokenInvalid
	}
	return sid, nil
}
