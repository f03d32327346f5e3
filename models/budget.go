package models

import "time"

// DateRange is an optional start/end window. A zero bound is unset.
type DateRange struct {
	Start time.Time `json:"startDate,omitzero"`
	End   time.Time `json:"endDate,omitzero"`
}

// Budget is a monthly spending target for one category with its running total.
type Budget struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Icon            string  `json:"icon"`
	Color           string  `json:"color"`
	MonthlyBudget   float64 `json:"monthlyBudget"`
	MonthlySpending float64 `json:"monthlySpending"`
	DateRange
}

// ProgressPercent is spending as a fraction of the target, uncapped.
// A zero target yields 0.
func (b Budget) ProgressPercent() float64 {
	return ratio(b.MonthlySpending, b.MonthlyBudget)
}

// DisplayPercent is ProgressPercent clamped to [0, 1].
func (b Budget) DisplayPercent() float64 {
	return clamp01(b.ProgressPercent())
}

// IsOverspent reports whether spending exceeds the target.
func (b Budget) IsOverspent() bool {
	return b.MonthlySpending > b.MonthlyBudget
}

// Remaining is the target minus spending; negative when overspent.
func (b Budget) Remaining() float64 {
	return b.MonthlyBudget - b.MonthlySpending
}

// BudgetSummary is the aggregate view over every budget.
type BudgetSummary struct {
	TotalBudget   float64 `json:"totalBudget"`
	TotalSpending float64 `json:"totalSpending"`
	Remaining     float64 `json:"remaining"`
	SpentPercent  float64 `json:"spentPercent"`
	IsOverspent   bool    `json:"isOverspent"`
}

// NewBudgetSummary totals budgets. SpentPercent is clamped for display and the
// aggregate is only overspent when there is a positive total target.
func NewBudgetSummary(budgets []Budget) BudgetSummary {
	var s BudgetSummary
	for _, b := range budgets {
		s.TotalBudget += b.MonthlyBudget
		s.TotalSpending += b.MonthlySpending
	}
	s.Remaining = s.TotalBudget - s.TotalSpending
	s.SpentPercent = clamp01(ratio(s.TotalSpending, s.TotalBudget))
	s.IsOverspent = s.TotalBudget > 0 && s.TotalSpending > s.TotalBudget
	return s
}

func ratio(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
