package auth

import (
	"context"
	"fmt"
)

// SeedAdmin creates the built-in administrator account on boot if it
// does not exist. The account is flagged builtin so it cannot be
// deleted through the API.
func SeedAdmin(ctx context.Context, accounts AccountRepository, username, password string, logger Logger) error {
	if logger == nil {
		logger = noopLogger{}
	}

	if _, err := accounts.Get(ctx, username); err == nil {
		logger.Info("built-in administrator exists, skipping seed", "username", username)
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing administrator password: %w", err)
	}

	admin := &Account{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleAdministrator,
		Enabled:      true,
		Builtin:      true,
	}

	if err := accounts.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating built-in administrator: %w", err)
	}

	logger.Warn("built-in administrator seeded",
		"username", username,
		"action_required", "change the default password before exposing the API",
	)

	return nil
}
