package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"wisewallet/backend/apperr"
	"wisewallet/backend/models"
)

type fakeIdentity struct {
	mu        sync.Mutex
	accounts  map[string]*Account
	passwords map[string]string
	next      int
	createErr error
	deleted   []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{accounts: map[string]*Account{}, passwords: map[string]string{}}
}

func (f *fakeIdentity) CreateAccount(_ context.Context, email, password, name string) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, a := range f.accounts {
		if strings.EqualFold(a.Email, email) {
			return nil, ErrEmailTaken
		}
	}
	f.next++
	a := &Account{UID: "uid-" + string(rune('0'+f.next)), Email: email, DisplayName: name}
	f.accounts[a.UID] = a
	f.passwords[a.UID] = password
	return a, nil
}

func (f *fakeIdentity) VerifyPassword(_ context.Context, email, password string) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for uid, a := range f.accounts {
		if strings.EqualFold(a.Email, email) && f.passwords[uid] == password {
			return a, nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (f *fakeIdentity) GetAccount(_ context.Context, uid string) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[uid]; ok {
		return a, nil
	}
	return nil, ErrAccountNotFound
}

func (f *fakeIdentity) DeleteAccount(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[uid]; !ok {
		return ErrAccountNotFound
	}
	delete(f.accounts, uid)
	f.deleted = append(f.deleted, uid)
	return nil
}

type fakeProfiles struct {
	mu        sync.Mutex
	users     map[string]models.User
	createErr error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{users: map[string]models.User{}}
}

func (f *fakeProfiles) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeProfiles) Get(_ context.Context, uid string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uid]
	if !ok {
		return nil, apperr.ErrRecordNotFound
	}
	return &u, nil
}

type fakeExpenses struct {
	mu      sync.Mutex
	records map[string]models.Expense
	failAll error
}

func newFakeExpenses() *fakeExpenses {
	return &fakeExpenses{records: map[string]models.Expense{}}
}

func (f *fakeExpenses) Create(_ context.Context, e *models.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	f.records[e.ID] = *e
	return nil
}

func (f *fakeExpenses) Get(_ context.Context, id string) (*models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	e, ok := f.records[id]
	if !ok {
		return nil, apperr.ErrRecordNotFound
	}
	return &e, nil
}

func (f *fakeExpenses) ListByUser(_ context.Context, uid string, filter models.ExpenseFilter) ([]models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := []models.Expense{}
	for _, e := range f.records {
		if e.UserID != uid {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeExpenses) Update(_ context.Context, e *models.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[e.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	f.records[e.ID] = *e
	return nil
}

func (f *fakeExpenses) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return apperr.ErrRecordNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeExpenses) Categories(_ context.Context, uid string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	seen := map[string]bool{}
	var out []string
	for _, e := range f.records {
		if e.UserID == uid && !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

var errUpstream = errors.New("upstream unavailable")
