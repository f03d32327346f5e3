// Package events publishes expense change notifications to RabbitMQ.
package events

import (
	"encoding/json"
	"time"

	"wisewallet/backend/models"
)

// ExpenseEvent announces that an expense was created, updated or deleted.
type ExpenseEvent struct {
	Type       string    `json:"type"`
	ExpenseID  string    `json:"expenseId"`
	UserID     string    `json:"userId"`
	Amount     float64   `json:"amount"`
	Category   string    `json:"category"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewExpenseEvent(eventType string, e *models.Expense, at time.Time) ExpenseEvent {
	return ExpenseEvent{
		Type:       eventType,
		ExpenseID:  e.ID,
		UserID:     e.UserID,
		Amount:     e.Amount,
		Category:   e.Category,
		OccurredAt: at.UTC(),
	}
}

func (m ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
