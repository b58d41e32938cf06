package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters for account passwords. The simulator hashes
// at first boot and on account creation only, so the memory-hard
// settings cost nothing on the request path.
const (
	argon2Iterations  = 3
	argon2MemoryKiB   = 64 * 1024
	argon2Parallelism = 1
	argon2SaltBytes   = 16
	argon2KeyBytes    = 32
)

// HashPassword derives an Argon2id hash of an account password and
// encodes it as a PHC string, e.g.
// $argon2id$v=19$m=65536,t=3,p=1$<salt>$<hash>.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argon2SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt,
		argon2Iterations, argon2MemoryKiB, argon2Parallelism, argon2KeyBytes)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2MemoryKiB, argon2Iterations, argon2Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether a candidate password matches a stored
// PHC hash. The stored parameters drive the derivation, so hashes
// written under older cost settings keep verifying after a parameter
// bump. Comparison is constant time.
func VerifyPassword(password, stored string) (bool, error) {
	salt, key, cost, err := parsePHC(stored)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt,
		cost.iterations, cost.memoryKiB, cost.parallelism, uint32(len(key))) //nolint:gosec // G115: key length always fits uint32

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

// argon2Cost carries the cost parameters recovered from a PHC string.
type argon2Cost struct {
	iterations  uint32
	memoryKiB   uint32
	parallelism uint8
}

// parsePHC splits a $argon2id$ PHC string into salt, derived key and
// cost parameters. Anything that is not well-formed Argon2id is
// rejected outright; there are no legacy hash formats to tolerate.
func parsePHC(stored string) (salt, key []byte, cost argon2Cost, err error) {
	fields := strings.Split(stored, "$")
	if len(fields) != 6 { //nolint:mnd // PHC strings have exactly 6 $-delimited fields
		return nil, nil, cost, fmt.Errorf("malformed password hash")
	}
	if fields[1] != "argon2id" {
		return nil, nil, cost, fmt.Errorf("unsupported hash algorithm %q", fields[1])
	}

	var version int
	if _, scanErr := fmt.Sscanf(fields[2], "v=%d", &version); scanErr != nil {
		return nil, nil, cost, fmt.Errorf("parsing hash version: %w", scanErr)
	}
	if version != argon2.Version {
		return nil, nil, cost, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, scanErr := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d",
		&cost.memoryKiB, &cost.iterations, &cost.parallelism); scanErr != nil {
		return nil, nil, cost, fmt.Errorf("parsing hash parameters: %w", scanErr)
	}

	if salt, err = base64.RawStdEncoding.DecodeString(fields[4]); err != nil {
		return nil, nil, cost, fmt.Errorf("decoding salt: %w", err)
	}
	if key, err = base64.RawStdEncoding.DecodeString(fields[5]); err != nil {
		return nil, nil, cost, fmt.Errorf("decoding hash: %w", err)
	}

	return salt, key, cost, nil
}
