// Package ledger holds the client-side budget, goal and transaction state.
//
// A Store is the single injectable owner of that state. Every mutation runs to
// completion under one lock and then notifies subscribers with a settled Snapshot,
// so views never observe a spending total without its journal entry or vice versa.
package ledger

import (
	"sync"
	"time"

	"wisewallet/backend/models"
)

// Snapshot is the fully settled state handed to subscribers.
type Snapshot struct {
	Budgets       []models.Budget      `json:"budgets"`
	BudgetSummary models.BudgetSummary `json:"budgetSummary"`
	Goals         []models.Goal        `json:"goals"`
	GoalSummary   models.GoalSummary   `json:"goalSummary"`
	Transactions  []models.Transaction `json:"transactions"`
}

// Listener receives a snapshot after each successful mutation.
type Listener func(Snapshot)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to date transactions.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithPalettePicker overrides how a goal color is chosen from the palette.
func WithPalettePicker(pick func(n int) int) Option {
	return func(s *Store) { s.pick = pick }
}

// Store owns the budget ledger, the goal ledger and their shared journal.
type Store struct {
	mu      sync.Mutex
	journal *TransactionJournal
	budgets *BudgetLedger
	goals   *GoalLedger

	now  func() time.Time
	pick func(n int) int

	subMu     sync.Mutex
	listeners map[int]Listener
	nextSub   int
}

func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now, listeners: make(map[int]Listener)}
	for _, opt := range opts {
		opt(s)
	}
	s.journal = NewTransactionJournal()
	s.budgets = NewBudgetLedger(s.journal, s.now)
	s.goals = NewGoalLedger(s.journal, s.now, s.pick)
	return s
}

// Subscribe registers fn for change notifications and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.listeners, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) AddBudget(in BudgetInput) (models.Budget, error) {
	s.mu.Lock()
	b, err := s.budgets.AddBudget(in)
	snap := s.settle(err)
	s.mu.Unlock()
	s.notify(snap)
	return b, err
}

// RecordSpending captures budgetID and amount at call time; a late caller can only
// ever touch the budget it named.
func (s *Store) RecordSpending(budgetID int64, amount float64, description string) (models.Transaction, error) {
	s.mu.Lock()
	tx, err := s.budgets.RecordSpending(budgetID, amount, description)
	snap := s.settle(err)
	s.mu.Unlock()
	s.notify(snap)
	return tx, err
}

// ResetBudgets clears budgets and the transaction journal as a pair.
func (s *Store) ResetBudgets() {
	s.mu.Lock()
	s.budgets.ResetAll()
	snap := s.settle(nil)
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Store) AddGoal(in GoalInput) (models.Goal, error) {
	s.mu.Lock()
	g, err := s.goals.AddGoal(in)
	snap := s.settle(err)
	s.mu.Unlock()
	s.notify(snap)
	return g, err
}

func (s *Store) AddProgress(goalID int64, amount float64) error {
	s.mu.Lock()
	err := s.goals.AddProgress(goalID, amount)
	snap := s.settle(err)
	s.mu.Unlock()
	s.notify(snap)
	return err
}

func (s *Store) ResetGoals() {
	s.mu.Lock()
	s.goals.ResetAll()
	snap := s.settle(nil)
	s.mu.Unlock()
	s.notify(snap)
}

// Budget returns a single budget by id.
func (s *Store) Budget(id int64) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgets.Get(id)
}

// Goal returns a single goal by id.
func (s *Store) Goal(id int64) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goals.Get(id)
}

// RecentTransactions returns up to n journal entries, newest first.
func (s *Store) RecentTransactions(n int) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.Recent(n)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// settle captures a snapshot after a successful mutation. Failed mutations change
// nothing and notify nobody.
func (s *Store) settle(err error) *Snapshot {
	if err != nil {
		return nil
	}
	snap := s.snapshotLocked()
	return &snap
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Budgets:       s.budgets.Budgets(),
		BudgetSummary: s.budgets.Summary(),
		Goals:         s.goals.Goals(),
		GoalSummary:   s.goals.Summary(),
		Transactions:  s.journal.All(),
	}
}

func (s *Store) notify(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.subMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(*snap)
	}
}
