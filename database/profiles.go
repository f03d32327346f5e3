package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wisewallet/backend/apperr"
	"wisewallet/backend/models"
)

// ProfileRepository stores user profiles keyed by the identity provider uid.
type ProfileRepository struct {
	db *DB
}

func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO users (id, name, email, university, major, graduation_year, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		u.ID, u.Name, u.Email, u.University, u.Major, u.GraduationYear,
		u.CreatedAt.UTC(), u.UpdatedAt.UTC())
	if IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Get(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
		SELECT id, name, email, university, major, graduation_year, created_at, updated_at
		FROM users WHERE id = ?`), uid).
		Scan(&u.ID, &u.Name, &u.Email, &u.University, &u.Major, &u.GraduationYear, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}
