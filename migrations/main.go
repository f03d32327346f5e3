package migrations

import (
	"fmt"
	"log"

	"wisewallet/backend/database"
)

// Migration is a named schema change applied at most once.
type Migration struct {
	Name string
	Fn   func(*database.DB) error
}

// All lists the migrations in the order they must be applied.
func All() []Migration {
	return []Migration{
		{"create_users", CreateUsers},
		{"create_credentials", CreateCredentials},
		{"create_expenses", CreateExpenses},
		{"add_expense_indexes", AddExpenseIndexes},
	}
}

// RunMigrations executes all migrations in the correct order
func RunMigrations(db *database.DB) error {
	return Run(db, All())
}

// Run applies every migration not yet recorded in the migrations table.
func Run(db *database.DB, migrations []Migration) error {
	log.Println("Running migrations...")

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, migration := range migrations {
		var count int
		err := db.QueryRow(db.Rebind("SELECT COUNT(*) FROM migrations WHERE name = ?"), migration.Name).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}

		if count > 0 {
			log.Printf("Skipping already applied migration: %s", migration.Name)
			continue
		}

		log.Printf("Applying migration: %s", migration.Name)
		if err := migration.Fn(db); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Name, err)
		}

		if _, err := db.Exec(db.Rebind("INSERT INTO migrations (name) VALUES (?)"), migration.Name); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
	}

	log.Println("All migrations completed successfully")
	return nil
}

// Applied returns the names of recorded migrations.
func Applied(db *database.DB) ([]string, error) {
	rows, err := db.Query("SELECT name FROM migrations ORDER BY applied_at, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func execAll(db *database.DB, statements ...string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
