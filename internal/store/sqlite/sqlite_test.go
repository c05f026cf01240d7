package sqlite

import (
	"context"
	"errors"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, "seller", "Sana", "sana@example.com", "hash")
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	if created.ID == 0 || created.Role != "seller" || created.Email != "sana@example.com" {
		t.Fatalf("unexpected account: %+v", created)
	}

	byEmail, err := s.GetAccountByEmail(ctx, "sana@example.com")
	if err != nil {
		t.Fatalf("failed to get account by email: %v", err)
	}
	if byEmail.ID != created.ID || byEmail.Name != "Sana" {
		t.Fatalf("unexpected account by email: %+v", byEmail)
	}

	byID, err := s.GetAccountByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to get account by id: %v", err)
	}
	if byID.Email != "sana@example.com" {
		t.Fatalf("unexpected account by id: %+v", byID)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateAccount(ctx, "customer", "A", "dup@example.com", "hash"); err != nil {
		t.Fatalf("failed to create first account: %v", err)
	}
	if _, err := s.CreateAccount(ctx, "seller", "B", "dup@example.com", "hash"); err == nil {
		t.Fatalf("expected duplicate email to be rejected")
	}
}

func TestGetMissingAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetAccountByEmail(ctx, "ghost@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := s.GetAccountByID(ctx, 42); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestInvalidRoleRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateAccount(ctx, "robot", "R", "r@example.com", "hash"); err == nil {
		t.Fatalf("expected role check to reject unknown role")
	}
}
