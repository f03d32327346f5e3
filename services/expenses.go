package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"wisewallet/backend/apperr"
	"wisewallet/backend/events"
	"wisewallet/backend/logger"
	"wisewallet/backend/models"
)

const publishTimeout = 5 * time.Second

// ExpenseRepository is implemented by the SQL and Firestore stores.
type ExpenseRepository interface {
	Create(ctx context.Context, e *models.Expense) error
	Get(ctx context.Context, id string) (*models.Expense, error)
	ListByUser(ctx context.Context, uid string, filter models.ExpenseFilter) ([]models.Expense, error)
	Update(ctx context.Context, e *models.Expense) error
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context, uid string) ([]string, error)
}

// EventPublisher announces completed expense mutations.
type EventPublisher interface {
	Publish(ctx context.Context, event events.ExpenseEvent) error
}

// ExpenseInput is the unparsed body of a create or update request.
type ExpenseInput struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

type expenseFields struct {
	description string
	amount      float64
	category    string
	date        time.Time
}

// ExpenseService enforces ownership over a user's expenses.
type ExpenseService struct {
	repo      ExpenseRepository
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
	newID     func() string
}

func NewExpenseService(repo ExpenseRepository, publisher EventPublisher, log *logger.Logger) *ExpenseService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ExpenseService{
		repo:      repo,
		publisher: publisher,
		log:       log.WithComponent(logger.ComponentExpenses),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *ExpenseService) Create(ctx context.Context, uid string, in ExpenseInput) (*models.Expense, error) {
	fields, err := parseExpenseInput(in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	e := &models.Expense{
		ID:          s.newID(),
		UserID:      uid,
		Description: fields.description,
		Amount:      fields.amount,
		Category:    fields.category,
		Date:        fields.date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		s.log.Error("failed to create expense", "user_id", uid, "error", err)
		return nil, apperr.Provider("Failed to create expense", err)
	}

	s.publish(ctx, models.EventExpenseCreated, e)
	return e, nil
}

// List returns every expense owned by uid, newest date first.
func (s *ExpenseService) List(ctx context.Context, uid string) ([]models.Expense, error) {
	return s.list(ctx, uid, models.ExpenseFilter{})
}

func (s *ExpenseService) ListByCategory(ctx context.Context, uid, category string) ([]models.Expense, error) {
	return s.list(ctx, uid, models.ExpenseFilter{Category: category})
}

// ListByDateRange returns expenses dated within [start, end]. A date-only end
// bound covers the whole of that day.
func (s *ExpenseService) ListByDateRange(ctx context.Context, uid, start, end string) ([]models.Expense, error) {
	from, _, err := parseDate(start)
	if err != nil {
		return nil, apperr.Validation("Invalid start date")
	}
	to, dateOnly, err := parseDate(end)
	if err != nil {
		return nil, apperr.Validation("Invalid end date")
	}
	if dateOnly {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	if from.After(to) {
		return nil, apperr.Validation("Start date must not be after end date")
	}
	return s.list(ctx, uid, models.ExpenseFilter{From: from, To: to})
}

// GetByID returns the expense when uid owns it. Absence is reported before ownership.
func (s *ExpenseService) GetByID(ctx context.Context, id, uid string) (*models.Expense, error) {
	return s.owned(ctx, id, uid)
}

func (s *ExpenseService) Update(ctx context.Context, id, uid string, in ExpenseInput) (*models.Expense, error) {
	e, err := s.owned(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	fields, err := parseExpenseInput(in)
	if err != nil {
		return nil, err
	}

	e.Description = fields.description
	e.Amount = fields.amount
	e.Category = fields.category
	e.Date = fields.date
	e.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, e); err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return nil, apperr.NotFound("Expense not found")
		}
		s.log.Error("failed to update expense", "user_id", uid, "expense_id", id, "error", err)
		return nil, apperr.Provider("Failed to update expense", err)
	}

	s.publish(ctx, models.EventExpenseUpdated, e)
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id, uid string) error {
	e, err := s.owned(ctx, id, uid)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return apperr.NotFound("Expense not found")
		}
		s.log.Error("failed to delete expense", "user_id", uid, "expense_id", id, "error", err)
		return apperr.Provider("Failed to delete expense", err)
	}

	s.publish(ctx, models.EventExpenseDeleted, e)
	return nil
}

// Categories lists the distinct categories uid has recorded expenses in, sorted by name.
func (s *ExpenseService) Categories(ctx context.Context, uid string) ([]string, error) {
	categories, err := s.repo.Categories(ctx, uid)
	if err != nil {
		s.log.Error("failed to list categories", "user_id", uid, "error", err)
		return nil, apperr.Provider("Failed to fetch categories", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// Summary totals the user's expenses per category, largest first.
func (s *ExpenseService) Summary(ctx context.Context, uid string) (*models.ExpenseSummary, error) {
	expenses, err := s.list(ctx, uid, models.ExpenseFilter{})
	if err != nil {
		return nil, err
	}

	type bucket struct {
		total decimal.Decimal
		count int
	}
	buckets := map[string]*bucket{}
	grand := decimal.Zero
	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		b, ok := buckets[e.Category]
		if !ok {
			b = &bucket{}
			buckets[e.Category] = b
		}
		b.total = b.total.Add(amount)
		b.count++
		grand = grand.Add(amount)
	}

	summary := &models.ExpenseSummary{
		Total:      grand.InexactFloat64(),
		Count:      len(expenses),
		Categories: make([]models.CategoryTotal, 0, len(buckets)),
	}
	for name, b := range buckets {
		summary.Categories = append(summary.Categories, models.CategoryTotal{
			Category: name,
			Total:    b.total.InexactFloat64(),
			Count:    b.count,
		})
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Category < b.Category
	})
	return summary, nil
}

func (s *ExpenseService) list(ctx context.Context, uid string, filter models.ExpenseFilter) ([]models.Expense, error) {
	expenses, err := s.repo.ListByUser(ctx, uid, filter)
	if err != nil {
		s.log.Error("failed to list expenses", "user_id", uid, "error", err)
		return nil, apperr.Provider("Failed to fetch expenses", err)
	}
	return expenses, nil
}

func (s *ExpenseService) owned(ctx context.Context, id, uid string) (*models.Expense, error) {
	e, err := s.repo.Get(ctx, id)
	if errors.Is(err, apperr.ErrRecordNotFound) {
		return nil, apperr.NotFound("Expense not found")
	}
	if err != nil {
		s.log.Error("failed to fetch expense", "expense_id", id, "error", err)
		return nil, apperr.Provider("Failed to fetch expense", err)
	}
	if !e.OwnedBy(uid) {
		return nil, apperr.Forbidden("Not authorized to access this expense")
	}
	return e, nil
}

// publish runs after the mutation is committed; failures are logged only.
func (s *ExpenseService) publish(ctx context.Context, eventType string, e *models.Expense) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := events.NewExpenseEvent(eventType, e, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish expense event",
			"event", eventType, "expense_id", e.ID, "user_id", e.UserID, "error", err)
	}
}

func parseExpenseInput(in ExpenseInput) (expenseFields, error) {
	f := expenseFields{
		description: strings.TrimSpace(in.Description),
		category:    strings.TrimSpace(in.Category),
	}
	if f.description == "" || f.category == "" || strings.TrimSpace(in.Amount) == "" || strings.TrimSpace(in.Date) == "" {
		return f, apperr.Validation("Description, amount, category and date are required")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return f, apperr.Validation("Amount must be a valid number")
	}
	f.amount = amount.InexactFloat64()

	date, _, err := parseDate(in.Date)
	if err != nil {
		return f, apperr.Validation("Invalid date")
	}
	f.date = date
	return f, nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp, returned in UTC.
func parseDate(s string) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}
