package auth

import (
	"context"
	"fmt"
	"time"
)

// Logger interface for optional operation logging.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(msg string, args ...any) {}
func (noopLogger) Warn(msg string, args ...any) {}

// Service implements authentication and account management on top of
// the account and session repositories.
//
// Thread Safety:
//   - All methods are safe for concurrent use; state lives in SQLite.
type Service struct {
	accounts AccountRepository
	sessions SessionRepository
	secret   []byte
	logger   Logger
}

// NewService creates an auth service. The secret signs session tokens
// and must match across restarts only if sessions are persisted.
func NewService(accounts AccountRepository, sessions SessionRepository, secret []byte, logger Logger) *Service {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Service{
		accounts: accounts,
		sessions: sessions,
		secret:   secret,
		logger:   logger,
	}
}

// Authenticate verifies a username/password pair against the account
// store. Unknown usernames, disabled accounts and wrong passwords all
// return ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	account, err := s.accounts.Get(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !account.Enabled {
		return nil, ErrInvalidCredentials
	}

	ok, err := VerifyPassword(password, account.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

// CreateSession authenticates the credentials and opens a new token
// session. Returns the session and the raw token; the raw token is
// shown to the client exactly once and only its hash is stored.
func (s *Service) CreateSession(ctx context.Context, username, password string) (*Session, string, error) {
	account, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	session := &Session{
		ID:       newSessionID(),
		Username: account.Username,
	}

	token, err := MintSessionToken(s.secret, session.ID, account.Username, time.Now().UTC())
	if err != nil {
		return nil, "", err
	}
	session.TokenHash = HashToken(token)

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", err
	}

	s.logger.Info("session created", "session_id", session.ID, "username", account.Username)
	return session, token, nil
}

// ResolveToken maps a raw X-Auth-Token value to its live session.
// The token signature must verify, the session row must still exist and
// the stored hash must match, so a deleted session fails immediately.
func (s *Service) ResolveToken(ctx context.Context, raw string) (*Session, error) {
	if raw == "" {
		return nil, ErrTokenInvalid
	}

	sid, err := ParseSessionToken(s.secret, raw)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if session.TokenHash != HashToken(raw) {
		return nil, ErrTokenInvalid
	}

	return session, nil
}

// GetSession retrieves a session by id.
func (s *Service) GetSession(ctx context.Context, id string) (*Session, error) {
	return s.sessions.Get(ctx, id)
}

// ListSessions returns all live sessions in id order.
func (s *Service) ListSessions(ctx context.Context) ([]Session, error) {
	return s.sessions.List(ctx)
}

// DeleteSession removes a session, invalidating its token with no
// grace window.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("session deleted", "session_id", id)
	return nil
}

// CreateAccount validates and creates a new account. The role defaults
// to Operator when empty. Duplicate usernames return ErrAccountExists.
func (s *Service) CreateAccount(ctx context.Context, username, password string, role Role) (*Account, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if !IsValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	if role == "" {
		role = RoleOperator
	}
	if !IsValidRole(role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := &Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Enabled:      true,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account created", "username", username, "role", string(role))
	return account, nil
}

// GetAccount retrieves an account by username.
func (s *Service) GetAccount(ctx context.Context, username string) (*Account, error) {
	return s.accounts.Get(ctx, username)
}

// ListAccounts returns all accounts in username order.
func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	return s.accounts.List(ctx)
}

// DeleteAccount removes an account. The built-in administrator is
// protected and returns ErrAccountProtected.
func (s *Service) DeleteAccount(ctx context.Context, username string) error {
	account, err := s.accounts.Get(ctx, username)
	if err != nil {
		return err
	}
	if account.Builtin {
		return ErrAccountProtected
	}

	if err := s.accounts.Delete(ctx, username); err != nil {
		return err
	}

	s.logger.Info("account deleted", "username", username)
	return nil
}
