package auth

import (
	"context"
	"errors"
	"testing"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	db := testDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	seedTestAccount(t, db, "operator1", "secret", RoleOperator)

	got, err := repo.Get(ctx, "operator1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Role != RoleOperator {
		t.Errorf("Role = %v, want Operator", got.Role)
	}
	if !got.Enabled {
		t.Error("Enabled = false, want true")
	}
	if got.Builtin {
		t.Error("Builtin = true, want false")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestAccountRepository_DuplicateUsername(t *testing.T) {
	db := testDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	seedTestAccount(t, db, "dupe", "secret", RoleOperator)

	err := repo.Create(ctx, &Account{
		Username:     "dupe",
		PasswordHash: "x",
		Role:         RoleReadOnly,
		Enabled:      true,
	})
	if !errors.Is(err, ErrAccountExists) {
		t.Errorf("Create() duplicate error = %v, want ErrAccountExists", err)
	}
}

func TestAccountRepository_GetMissing(t *testing.T) {
	db := testDB(t)
	repo := NewAccountRepository(db)

	if _, err := repo.Get(context.Background(), "ghost"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("Get(ghost) error = %v, want ErrAccountNotFound", err)
	}
}

func TestAccountRepository_ListOrdered(t *testing.T) {
	db := testDB(t)
	repo := NewAccountRepository(db)

	seedTestAccount(t, db, "charlie", "secret", RoleOperator)
	seedTestAccount(t, db, "alice", "secret", RoleOperator)
	seedTestAccount(t, db, "bob", "secret", RoleOperator)

	accounts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"alice", "bob", "charlie"}
	if len(accounts) != len(want) {
		t.Fatalf("len(List()) = %d, want %d", len(accounts), len(want))
	}
	for i, name := range want {
		if accounts[i].Username != name {
			t.Errorf("accounts[%d] = %q, want %q", i, accounts[i].Username, name)
		}
	}
}

func TestAccountRepository_Delete(t *testing.T) {
	db := testDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	seedTestAccount(t, db, "victim", "secret", RoleOperator)

	if err := repo.Delete(ctx, "victim"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.Get(ctx, "victim"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrAccountNotFound", err)
	}

	if err := repo.Delete(ctx, "victim"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("Delete() missing error = %v, want ErrAccountNotFound", err)
	}
}

func TestSessionRepository_CreateGetDelete(t *testing.T) {
	db := testDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	seedTestAccount(t, db, "admin", "secret", RoleAdministrator)

	s := &Session{Username: "admin", TokenHash: HashToken("raw-token")}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(s.ID) != sessionIDLength {
		t.Errorf("generated id length = %d, want %d", len(s.ID), sessionIDLength)
	}

	got, err := repo.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Username != "admin" || got.TokenHash != s.TokenHash {
		t.Errorf("Get() = %+v, want username admin and matching hash", got)
	}

	if err := repo.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrSessionNotFound", err)
	}
	if err := repo.Delete(ctx, s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Delete() missing error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRepository_CascadeOnAccountDelete(t *testing.T) {
	db := testDB(t)
	accounts := NewAccountRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()

	seedTestAccount(t, db, "temp", "secret", RoleOperator)

	s := &Session{Username: "temp", TokenHash: HashToken("tok")}
	if err := sessions.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := accounts.Delete(ctx, "temp"); err != nil {
		t.Fatalf("account Delete() error = %v", err)
	}

	if _, err := sessions.Get(ctx, s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session survived account delete: error = %v, want ErrSessionNotFound", err)
	}
}
