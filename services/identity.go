package services

import (
	"context"
	"errors"
)

// Errors an IdentityProvider reports for expected failures. Anything else is
// treated as an upstream failure.
var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
)

// Account is an identity provider's view of a user.
type Account struct {
	UID         string
	Email       string
	DisplayName string
}

// IdentityProvider owns accounts and checks passwords.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (*Account, error)
	VerifyPassword(ctx context.Context, email, password string) (*Account, error)
	GetAccount(ctx context.Context, uid string) (*Account, error)
	DeleteAccount(ctx context.Context, uid string) error
}
