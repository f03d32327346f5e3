package models

import "time"

// Expense is a server-persisted spending record owned by exactly one user.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnedBy reports whether uid owns the expense.
func (e *Expense) OwnedBy(uid string) bool {
	return e.UserID != "" && e.UserID == uid
}

// CategoryTotal is the sum of a user's expenses in one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// ExpenseSummary aggregates a user's expenses by category.
type ExpenseSummary struct {
	Total      float64         `json:"total"`
	Count      int             `json:"count"`
	Categories []CategoryTotal `json:"categories"`
}

// ExpenseFilter narrows a user's expense listing. Zero fields do not filter.
type ExpenseFilter struct {
	Category string
	From     time.Time
	To       time.Time
}
