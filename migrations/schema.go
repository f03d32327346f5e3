package migrations

import (
	"fmt"

	"wisewallet/backend/database"
)

// CreateUsers creates the profile table keyed by the identity provider's uid.
func CreateUsers(db *database.DB) error {
	err := execAll(db, `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			university TEXT NOT NULL DEFAULT '',
			major TEXT NOT NULL DEFAULT '',
			graduation_year TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// CreateCredentials creates the local identity provider's account table.
func CreateCredentials(db *database.DB) error {
	err := execAll(db, `
		CREATE TABLE IF NOT EXISTS credentials (
			uid TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create credentials table: %w", err)
	}
	return nil
}

// CreateExpenses creates the expenses table.
func CreateExpenses(db *database.DB) error {
	err := execAll(db, `
		CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			description TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			category TEXT NOT NULL,
			date TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create expenses table: %w", err)
	}
	return nil
}

// AddExpenseIndexes covers the per-user listing queries.
func AddExpenseIndexes(db *database.DB) error {
	err := execAll(db,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses (user_id, date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_category ON expenses (user_id, category)`,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense indexes: %w", err)
	}
	return nil
}
