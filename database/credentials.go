package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"wisewallet/backend/apperr"
)

// Credential is a locally managed account: a uid, a login email and a bcrypt hash.
type Credential struct {
	UID          string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CredentialRepository backs the local identity provider.
type CredentialRepository struct {
	db *DB
}

func NewCredentialRepository(db *DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create stores c. Emails are compared case-insensitively; a taken email returns ErrDuplicate.
func (r *CredentialRepository) Create(ctx context.Context, c Credential) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO credentials (uid, email, password_hash, created_at) VALUES (?, ?, ?, ?)`),
		c.UID, normalizeEmail(c.Email), c.PasswordHash, c.CreatedAt.UTC())
	if IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	return r.get(ctx, "email", normalizeEmail(email))
}

func (r *CredentialRepository) GetByUID(ctx context.Context, uid string) (*Credential, error) {
	return r.get(ctx, "uid", uid)
}

func (r *CredentialRepository) Delete(ctx context.Context, uid string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM credentials WHERE uid = ?"), uid)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return expectOneRow(res)
}

func (r *CredentialRepository) get(ctx context.Context, column, value string) (*Credential, error) {
	var c Credential
	err := r.db.QueryRowContext(ctx, r.db.Rebind(
		"SELECT uid, email, password_hash, created_at FROM credentials WHERE "+column+" = ?"), value).
		Scan(&c.UID, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return &c, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
