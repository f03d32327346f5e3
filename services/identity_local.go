package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"wisewallet/backend/apperr"
	"wisewallet/backend/database"
	"wisewallet/backend/security"
)

// CredentialStore persists local accounts.
type CredentialStore interface {
	Create(ctx context.Context, c database.Credential) error
	GetByEmail(ctx context.Context, email string) (*database.Credential, error)
	GetByUID(ctx context.Context, uid string) (*database.Credential, error)
	Delete(ctx context.Context, uid string) error
}

// LocalIdentity keeps accounts in the application's own database with bcrypt hashes.
type LocalIdentity struct {
	store CredentialStore
	cost  int
	now   func() time.Time
}

func NewLocalIdentity(store CredentialStore, bcryptCost int) *LocalIdentity {
	return &LocalIdentity{store: store, cost: bcryptCost, now: time.Now}
}

func (p *LocalIdentity) CreateAccount(ctx context.Context, email, password, displayName string) (*Account, error) {
	hash, err := security.HashPassword(password, p.cost)
	if err != nil {
		return nil, err
	}
	cred := database.Credential{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    p.now().UTC(),
	}
	if err := p.store.Create(ctx, cred); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &Account{UID: cred.UID, Email: email, DisplayName: displayName}, nil
}

func (p *LocalIdentity) VerifyPassword(ctx context.Context, email, password string) (*Account, error) {
	cred, err := p.store.GetByEmail(ctx, email)
	if errors.Is(err, apperr.ErrRecordNotFound) {
		// burn a comparison so unknown emails take as long as wrong passwords
		_ = security.CheckPassword(dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := security.CheckPassword(cred.PasswordHash, password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &Account{UID: cred.UID, Email: cred.Email}, nil
}

func (p *LocalIdentity) GetAccount(ctx context.Context, uid string) (*Account, error) {
	cred, err := p.store.GetByUID(ctx, uid)
	if errors.Is(err, apperr.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Account{UID: cred.UID, Email: cred.Email}, nil
}

func (p *LocalIdentity) DeleteAccount(ctx context.Context, uid string) error {
	err := p.store.Delete(ctx, uid)
	if errors.Is(err, apperr.ErrRecordNotFound) {
		return ErrAccountNotFound
	}
	return err
}

// a well-formed cost 10 bcrypt hash that matches no real credential
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
