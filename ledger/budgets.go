package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wisewallet/backend/apperr"
	"wisewallet/backend/models"
)

// ErrBudgetNotFound is returned when a mutation names a budget that does not exist.
var ErrBudgetNotFound = apperr.NotFound("Budget not found")

// BudgetInput describes a budget to add.
type BudgetInput struct {
	Category  models.Category
	Amount    float64
	StartDate time.Time
	EndDate   time.Time
}

type budgetEntry struct {
	id       int64
	category models.Category
	target   decimal.Decimal
	spent    decimal.Decimal
	window   models.DateRange
}

func (e *budgetEntry) view() models.Budget {
	return models.Budget{
		ID:              e.id,
		Name:            e.category.Name,
		Icon:            e.category.Icon,
		Color:           e.category.Color,
		MonthlyBudget:   e.target.InexactFloat64(),
		MonthlySpending: e.spent.InexactFloat64(),
		DateRange:       e.window,
	}
}

// BudgetLedger tracks budgets in insertion order and writes spending to a shared journal.
type BudgetLedger struct {
	budgets []*budgetEntry
	nextID  int64
	journal *TransactionJournal
	now     func() time.Time
}

// NewBudgetLedger creates a ledger that records spending into journal.
func NewBudgetLedger(journal *TransactionJournal, now func() time.Time) *BudgetLedger {
	if now == nil {
		now = time.Now
	}
	return &BudgetLedger{journal: journal, now: now, nextID: 1}
}

// AddBudget appends a budget with zero spending.
func (l *BudgetLedger) AddBudget(in BudgetInput) (models.Budget, error) {
	if strings.TrimSpace(in.Category.Name) == "" {
		return models.Budget{}, apperr.Validation(MsgSelectCategory)
	}
	amount, err := target(in.Amount)
	if err != nil {
		return models.Budget{}, err
	}
	window, err := dateWindow(in.StartDate, in.EndDate)
	if err != nil {
		return models.Budget{}, err
	}

	entry := &budgetEntry{
		id:       l.nextID,
		category: in.Category,
		target:   amount,
		spent:    decimal.Zero,
		window:   window,
	}
	l.nextID++
	l.budgets = append(l.budgets, entry)
	return entry.view(), nil
}

// RecordSpending adds amount to a budget's running total and prepends the matching
// transaction to the journal. Either both happen or neither does.
func (l *BudgetLedger) RecordSpending(budgetID int64, amount float64, description string) (models.Transaction, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return models.Transaction{}, apperr.Validation(MsgFillAllFields)
	}
	value, err := positive(amount)
	if err != nil {
		return models.Transaction{}, err
	}
	entry := l.find(budgetID)
	if entry == nil {
		return models.Transaction{}, ErrBudgetNotFound
	}

	now := l.now()
	tx := models.Transaction{
		Name:       description,
		Date:       now.Format(models.TransactionDateLayout),
		Amount:     value.InexactFloat64(),
		Icon:       entry.category.Icon,
		Color:      entry.category.Color,
		Source:     models.SourceBudget,
		SourceID:   entry.id,
		RecordedAt: now,
	}
	entry.spent = entry.spent.Add(value)
	l.journal.Append(tx)
	return tx, nil
}

// Get returns a single budget.
func (l *BudgetLedger) Get(budgetID int64) (models.Budget, error) {
	entry := l.find(budgetID)
	if entry == nil {
		return models.Budget{}, ErrBudgetNotFound
	}
	return entry.view(), nil
}

// Budgets returns every budget in display order.
func (l *BudgetLedger) Budgets() []models.Budget {
	out := make([]models.Budget, 0, len(l.budgets))
	for _, e := range l.budgets {
		out = append(out, e.view())
	}
	return out
}

// Summary totals targets and spending across all budgets.
func (l *BudgetLedger) Summary() models.BudgetSummary {
	var totalBudget, totalSpent decimal.Decimal
	for _, e := range l.budgets {
		totalBudget = totalBudget.Add(e.target)
		totalSpent = totalSpent.Add(e.spent)
	}
	// Sum in decimal, then derive the ratios from the exact totals.
	s := models.NewBudgetSummary([]models.Budget{{
		MonthlyBudget:   totalBudget.InexactFloat64(),
		MonthlySpending: totalSpent.InexactFloat64(),
	}})
	return s
}

// ResetAll clears every budget together with the journal.
func (l *BudgetLedger) ResetAll() {
	l.budgets = nil
	l.journal.Clear()
}

func (l *BudgetLedger) find(id int64) *budgetEntry {
	for _, e := range l.budgets {
		if e.id == id {
			return e
		}
	}
	return nil
}

func dateWindow(start, end time.Time) (models.DateRange, error) {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return models.DateRange{}, apperr.Validation(MsgInvalidDateSpan)
	}
	return models.DateRange{Start: start, End: end}, nil
}
