package models

import "time"

// Transaction is a journal entry for one spending or contribution event.
// It inherits icon and color from the budget or goal that produced it.
type Transaction struct {
	Name       string    `json:"name"`
	Date       string    `json:"date"`
	Amount     float64   `json:"amount"`
	Icon       string    `json:"icon"`
	Color      string    `json:"color"`
	Source     string    `json:"source"`
	SourceID   int64     `json:"sourceId"`
	RecordedAt time.Time `json:"recordedAt"`
}
