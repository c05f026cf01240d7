package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marketwire/marketwire-server/internal/store"
)

var (
	// ErrInvalidCredentials is returned when email/password don't match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists is returned when signing up with a taken email.
	ErrAccountExists = errors.New("account already exists")
	// ErrInvalidRole is returned for roles signup does not accept.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidName is returned when the name doesn't meet constraints.
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidEmail is returned when the email doesn't meet constraints.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidPassword is returned when the password doesn't meet constraints.
	ErrInvalidPassword = errors.New("invalid password")
)

// Service provides authentication operations for the panel-facing API.
type Service struct {
	store     store.AccountStore
	jwtConfig *JWTConfig
}

// NewService creates a new authentication service.
func NewService(accountStore store.AccountStore, jwtConfig *JWTConfig) *Service {
	return &Service{
		store:     accountStore,
		jwtConfig: jwtConfig,
	}
}

// Signup creates a customer or seller account with a hashed password
// and returns a JWT token. Admin accounts are provisioned at startup,
// never through signup.
func (s *Service) Signup(ctx context.Context, role, name, email, password string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != store.RoleCustomer && role != store.RoleSeller {
		return "", ErrInvalidRole
	}

	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 64 {
		return "", ErrInvalidName
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) < 3 || !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}

	if len(password) < 6 {
		return "", ErrInvalidPassword
	}

	existing, err := s.store.GetAccountByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", ErrAccountExists
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	account, err := s.store.CreateAccount(ctx, role, name, email, hashedPassword)
	if err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}

	token, err := GenerateToken(s.jwtConfig, account.ID, account.Role, account.Name)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// Login validates credentials and returns a JWT token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if errPwd := ComparePassword(account.PasswordHash, password); errPwd != nil {
		return "", ErrInvalidCredentials
	}

	token, err := GenerateToken(s.jwtConfig, account.ID, account.Role, account.Name)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// EnsureAdmin provisions the configured admin account if it does not
// exist yet. A no-op when email is empty, so deployments without a
// configured admin still boot.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	if _, err := s.store.GetAccountByEmail(ctx, email); err == nil {
		return nil
	}

	if len(password) < 6 {
		return ErrInvalidPassword
	}
	if name == "" {
		name = "admin"
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.store.CreateAccount(ctx, store.RoleAdmin, name, email, hashedPassword); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	return nil
}

// ValidateToken parses and validates a JWT token issued by this service.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return ValidateToken(s.jwtConfig, tokenString)
}
