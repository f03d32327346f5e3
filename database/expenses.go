package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"wisewallet/backend/apperr"
	"wisewallet/backend/models"
)

const expenseColumns = "id, user_id, description, amount, category, date, created_at, updated_at"

// ExpenseRepository stores expenses in the expenses table.
type ExpenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		e.ID, e.UserID, e.Description, e.Amount, e.Category,
		e.Date.UTC(), e.CreatedAt.UTC(), e.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) Get(ctx context.Context, id string) (*models.Expense, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind("SELECT "+expenseColumns+" FROM expenses WHERE id = ?"), id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// ListByUser returns the user's expenses, newest date first.
func (r *ExpenseRepository) ListByUser(ctx context.Context, uid string, filter models.ExpenseFilter) ([]models.Expense, error) {
	query := "SELECT " + expenseColumns + " FROM expenses WHERE user_id = ?"
	args := []any{uid}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if !filter.From.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.From.UTC())
	}
	if !filter.To.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.To.UTC())
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

// Update overwrites the mutable fields of an existing expense.
func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE expenses
		SET description = ?, amount = ?, category = ?, date = ?, updated_at = ?
		WHERE id = ?`),
		e.Description, e.Amount, e.Category, e.Date.UTC(), e.UpdatedAt.UTC(), e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return expectOneRow(res)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM expenses WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return expectOneRow(res)
}

// Categories returns the distinct categories the user has spent in.
func (r *ExpenseRepository) Categories(ctx context.Context, uid string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(
		"SELECT DISTINCT category FROM expenses WHERE user_id = ? ORDER BY category"), uid)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	return categories, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (*models.Expense, error) {
	var e models.Expense
	err := s.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Date = e.Date.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}
