package store

import (
	"context"
	"time"
)

// Account is a durable marketplace identity. The realtime core never
// reads accounts directly; they back the token-issuing boundary the
// panels authenticate against before opening a socket.
type Account struct {
	ID           int64
	Role         string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Account roles.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// AccountStore is the persistence boundary for marketplace identities.
type AccountStore interface {
	CreateAccount(ctx context.Context, role, name, email, passwordHash string) (*Account, error)
	GetAccountByID(ctx context.Context, id int64) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
}

// Store is everything the application needs from persistence.
type Store interface {
	AccountStore
	Close() error
}
