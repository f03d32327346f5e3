package firestoredb

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"wisewallet/backend/models"
)

type expenseDoc struct {
	UserID      string    `firestore:"userId"`
	Description string    `firestore:"description"`
	Amount      float64   `firestore:"amount"`
	Category    string    `firestore:"category"`
	Date        time.Time `firestore:"date"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func toExpenseDoc(e *models.Expense) expenseDoc {
	return expenseDoc{
		UserID:      e.UserID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date.UTC(),
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

func (d expenseDoc) expense(id string) models.Expense {
	return models.Expense{
		ID:          id,
		UserID:      d.UserID,
		Description: d.Description,
		Amount:      d.Amount,
		Category:    d.Category,
		Date:        d.Date.UTC(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// ExpenseRepository stores expenses as documents of the expenses collection.
type ExpenseRepository struct {
	client *firestore.Client
}

func NewExpenseRepository(client *firestore.Client) *ExpenseRepository {
	return &ExpenseRepository{client: client}
}

func (r *ExpenseRepository) col() *firestore.CollectionRef {
	return r.client.Collection(expensesCollection)
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	_, err := r.col().Doc(e.ID).Create(ctx, toExpenseDoc(e))
	return translate(err, "create expense")
}

func (r *ExpenseRepository) Get(ctx context.Context, id string) (*models.Expense, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err, "get expense")
	}
	var d expenseDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, translate(err, "decode expense")
	}
	e := d.expense(snap.Ref.ID)
	return &e, nil
}

// ListByUser returns the user's expenses, newest date first. The date range
// and category filters need a composite index on (userId, category, date).
func (r *ExpenseRepository) ListByUser(ctx context.Context, uid string, filter models.ExpenseFilter) ([]models.Expense, error) {
	q := r.col().Where("userId", "==", uid)
	if filter.Category != "" {
		q = q.Where("category", "==", filter.Category)
	}
	if !filter.From.IsZero() {
		q = q.Where("date", ">=", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		q = q.Where("date", "<=", filter.To.UTC())
	}
	q = q.OrderBy("date", firestore.Desc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	expenses := []models.Expense{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, translate(err, "query expenses")
		}
		var d expenseDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, translate(err, "decode expense")
		}
		expenses = append(expenses, d.expense(snap.Ref.ID))
	}

	// Firestore cannot add a second order on createdAt without another index.
	sort.SliceStable(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
	return expenses, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) error {
	_, err := r.col().Doc(e.ID).Update(ctx, []firestore.Update{
		{Path: "description", Value: e.Description},
		{Path: "amount", Value: e.Amount},
		{Path: "category", Value: e.Category},
		{Path: "date", Value: e.Date.UTC()},
		{Path: "updatedAt", Value: e.UpdatedAt.UTC()},
	})
	return translate(err, "update expense")
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx, firestore.Exists)
	return translate(err, "delete expense")
}

// Categories returns the distinct categories the user has spent in.
func (r *ExpenseRepository) Categories(ctx context.Context, uid string) ([]string, error) {
	expenses, err := r.ListByUser(ctx, uid, models.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	categories := []string{}
	for _, e := range expenses {
		if e.Category != "" && !seen[e.Category] {
			seen[e.Category] = true
			categories = append(categories, e.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}
