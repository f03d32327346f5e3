package models

import "math"

// Goal is a savings target with the amount contributed so far.
type Goal struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
	Amount      float64 `json:"amount"`
	SavedAmount float64 `json:"savedAmount"`
	// MonthlySaving is MonthlySavingFor(Amount).
	MonthlySaving float64 `json:"monthlySaving"`
	DateRange
}

// ProgressPercent is the saved fraction of the target, uncapped. A zero target yields 0.
func (g Goal) ProgressPercent() float64 {
	return ratio(g.SavedAmount, g.Amount)
}

// DisplayPercent is ProgressPercent clamped to [0, 1].
func (g Goal) DisplayPercent() float64 {
	return clamp01(g.ProgressPercent())
}

// Remaining may go negative once a goal is overfunded.
func (g Goal) Remaining() float64 {
	return g.Amount - g.SavedAmount
}

// MonthlySavingFor is the whole-currency amount to set aside each month to
// reach amount within a year.
func MonthlySavingFor(amount float64) float64 {
	return math.Round(amount / 12)
}

// GoalSummary totals every goal.
type GoalSummary struct {
	TotalAmount float64 `json:"totalAmount"`
	TotalSaved  float64 `json:"totalSaved"`
}

func NewGoalSummary(goals []Goal) GoalSummary {
	var s GoalSummary
	for _, g := range goals {
		s.TotalAmount += g.Amount
		s.TotalSaved += g.SavedAmount
	}
	return s
}
