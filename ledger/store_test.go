package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisewallet/backend/apperr"
	"wisewallet/backend/models"
)

var fixedNow = time.Date(2024, time.March, 18, 14, 30, 0, 0, time.UTC)

func newTestStore() *Store {
	return NewStore(
		WithClock(func() time.Time { return fixedNow }),
		WithPalettePicker(func(int) int { return 0 }),
	)
}

func category(t *testing.T, name string) models.Category {
	t.Helper()
	c, ok := models.FindCategory(models.BudgetCategories, name)
	require.True(t, ok, "unknown category %q", name)
	return c
}

func TestRecordSpendingGrocery(t *testing.T) {
	s := newTestStore()
	b, err := s.AddBudget(BudgetInput{Category: category(t, "Grocery"), Amount: 700})
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.MonthlySpending)

	tx, err := s.RecordSpending(b.ID, 560, "Walmart")
	require.NoError(t, err)

	got, err := s.Budget(b.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, got.ProgressPercent(), 1e-9)
	assert.False(t, got.IsOverspent())
	assert.Equal(t, 560.0, got.MonthlySpending)

	assert.Equal(t, "Walmart", tx.Name)
	assert.Equal(t, "Mar 18", tx.Date)
	assert.Equal(t, "cart", tx.Icon)
	assert.Equal(t, "#219653", tx.Color)
	assert.Equal(t, models.SourceBudget, tx.Source)
	assert.Equal(t, b.ID, tx.SourceID)
}

func TestRecordSpendingOverspent(t *testing.T) {
	s := newTestStore()
	b, err := s.AddBudget(BudgetInput{Category: category(t, "Transport"), Amount: 200})
	require.NoError(t, err)

	_, err = s.RecordSpending(b.ID, 250, "Uber")
	require.NoError(t, err)

	got, err := s.Budget(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.MonthlySpending)
	assert.True(t, got.IsOverspent())
	assert.True(t, s.Snapshot().BudgetSummary.IsOverspent)
}

func TestRecordSpendingAccumulatesAndPrepends(t *testing.T) {
	s := newTestStore()
	b, err := s.AddBudget(BudgetInput{Category: category(t, "Restaurant"), Amount: 500})
	require.NoError(t, err)

	amounts := []float64{0.1, 0.2, 12.5, 40}
	before := 0.0
	for i, amount := range amounts {
		_, err := s.RecordSpending(b.ID, amount, "meal")
		require.NoError(t, err)

		got, err := s.Budget(b.ID)
		require.NoError(t, err)
		assert.InDelta(t, before+amount, got.MonthlySpending, 1e-9)
		before = got.MonthlySpending

		txs := s.RecentTransactions(100)
		require.Len(t, txs, i+1)
		assert.Equal(t, amount, txs[0].Amount, "newest transaction must come first")
	}
	// decimal arithmetic keeps 0.1 + 0.2 exact
	got, _ := s.Budget(b.ID)
	assert.Equal(t, 52.8, got.MonthlySpending)
}

func TestRecordSpendingValidation(t *testing.T) {
	tests := []struct {
		name        string
		amount      float64
		description string
		wantMessage string
	}{
		{"zero amount", 0, "Coffee", MsgInvalidAmount},
		{"negative amount", -5, "Coffee", MsgInvalidAmount},
		{"not a number", math.NaN(), "Coffee", MsgInvalidAmount},
		{"infinite", math.Inf(1), "Coffee", MsgInvalidAmount},
		{"blank description", 5, "   ", MsgFillAllFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			b, err := s.AddBudget(BudgetInput{Category: category(t, "Bill"), Amount: 100})
			require.NoError(t, err)

			_, err = s.RecordSpending(b.ID, tt.amount, tt.description)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.wantMessage, apperr.MessageOf(err, ""))

			got, _ := s.Budget(b.ID)
			assert.Equal(t, 0.0, got.MonthlySpending, "failed mutation must not change the total")
			assert.Empty(t, s.RecentTransactions(10), "failed mutation must not write the journal")
		})
	}
}

func TestRecordSpendingUnknownBudget(t *testing.T) {
	s := newTestStore()
	_, err := s.RecordSpending(42, 10, "Ghost")
	assert.ErrorIs(t, err, ErrBudgetNotFound)
	assert.Empty(t, s.RecentTransactions(10))
}

func TestAddBudgetValidation(t *testing.T) {
	s := newTestStore()

	_, err := s.AddBudget(BudgetInput{Amount: 100})
	assert.Equal(t, MsgSelectCategory, apperr.MessageOf(err, ""))

	_, err = s.AddBudget(BudgetInput{Category: category(t, "Bill"), Amount: -1})
	assert.Equal(t, MsgInvalidAmount, apperr.MessageOf(err, ""))

	_, err = s.AddBudget(BudgetInput{
		Category:  category(t, "Bill"),
		Amount:    100,
		StartDate: fixedNow,
		EndDate:   fixedNow.AddDate(0, 0, -1),
	})
	assert.Equal(t, MsgInvalidDateSpan, apperr.MessageOf(err, ""))

	assert.Empty(t, s.Snapshot().Budgets)
}

func TestAddBudgetAssignsUniqueIDsInOrder(t *testing.T) {
	s := newTestStore()
	names := []string{"Transport", "Restaurant", "Grocery"}
	seen := map[int64]bool{}
	for _, name := range names {
		b, err := s.AddBudget(BudgetInput{Category: category(t, name), Amount: 100})
		require.NoError(t, err)
		assert.False(t, seen[b.ID], "id %d reused", b.ID)
		seen[b.ID] = true
	}

	snap := s.Snapshot()
	require.Len(t, snap.Budgets, 3)
	for i, name := range names {
		assert.Equal(t, name, snap.Budgets[i].Name)
	}
	assert.Equal(t, 300.0, snap.BudgetSummary.TotalBudget)
}

func TestZeroTargetBudget(t *testing.T) {
	s := newTestStore()
	b, err := s.AddBudget(BudgetInput{Category: category(t, "Beauty"), Amount: 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.ProgressPercent())

	_, err = s.RecordSpending(b.ID, 5, "Lipstick")
	require.NoError(t, err)
	got, _ := s.Budget(b.ID)
	assert.Equal(t, 0.0, got.ProgressPercent())
	assert.True(t, got.IsOverspent())
}

func TestResetBudgetsClearsJournal(t *testing.T) {
	s := newTestStore()
	b, err := s.AddBudget(BudgetInput{Category: category(t, "Grocery"), Amount: 700})
	require.NoError(t, err)
	_, err = s.RecordSpending(b.ID, 30, "Amazon")
	require.NoError(t, err)

	s.ResetBudgets()

	snap := s.Snapshot()
	assert.Empty(t, snap.Budgets)
	assert.Empty(t, snap.Transactions)
	_, err = s.RecordSpending(b.ID, 10, "After reset")
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestGoalScenarioOverfunded(t *testing.T) {
	s := newTestStore()
	g, err := s.AddGoal(GoalInput{Name: "Vacation", Icon: "airplane", Amount: 3000})
	require.NoError(t, err)
	assert.Equal(t, 0.0, g.SavedAmount)
	assert.Equal(t, 250.0, g.MonthlySaving)

	require.NoError(t, s.AddProgress(g.ID, 1000))
	require.NoError(t, s.AddProgress(g.ID, 2500))

	got, err := s.Goal(g.ID)
	require.NoError(t, err)
	assert.Equal(t, 3500.0, got.SavedAmount)
	assert.Equal(t, -500.0, got.Remaining())
	assert.Equal(t, 1.0, got.DisplayPercent())

	txs := s.RecentTransactions(10)
	require.Len(t, txs, 2)
	assert.Equal(t, 2500.0, txs[0].Amount)
	assert.Equal(t, models.SourceGoal, txs[0].Source)
	assert.Equal(t, "airplane", txs[0].Icon)
}

func TestAddGoalColor(t *testing.T) {
	s := newTestStore()

	picked, err := s.AddGoal(GoalInput{Name: "Buy boat", Amount: 10000})
	require.NoError(t, err)
	assert.Equal(t, models.GoalPalette[0], picked.Color)
	assert.Equal(t, models.DefaultIcon, picked.Icon)

	given, err := s.AddGoal(GoalInput{Name: "Buy house", Color: "#000000", Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, "#000000", given.Color)
}

func TestAddGoalRandomColorIsFromPalette(t *testing.T) {
	s := NewStore()
	for i := 0; i < 20; i++ {
		g, err := s.AddGoal(GoalInput{Name: "Graduation", Amount: 2000})
		require.NoError(t, err)
		assert.Contains(t, models.GoalPalette, g.Color)
	}
}

func TestGoalZeroAmountProgress(t *testing.T) {
	s := newTestStore()
	g, err := s.AddGoal(GoalInput{Name: "Nothing", Amount: 0})
	require.NoError(t, err)
	require.NoError(t, s.AddProgress(g.ID, 10))

	got, _ := s.Goal(g.ID)
	assert.Equal(t, 0.0, got.ProgressPercent())
	assert.False(t, math.IsNaN(got.DisplayPercent()))
}

func TestAddProgressFailures(t *testing.T) {
	s := newTestStore()
	g, err := s.AddGoal(GoalInput{Name: "Vacation", Amount: 3000})
	require.NoError(t, err)

	assert.ErrorIs(t, s.AddProgress(g.ID+1, 100), ErrGoalNotFound)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(s.AddProgress(g.ID, 0)))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(s.AddProgress(g.ID, math.NaN())))

	got, _ := s.Goal(g.ID)
	assert.Equal(t, 0.0, got.SavedAmount)
}

func TestResetGoals(t *testing.T) {
	s := newTestStore()
	g, err := s.AddGoal(GoalInput{Name: "Vacation", Amount: 3000})
	require.NoError(t, err)
	require.NoError(t, s.AddProgress(g.ID, 100))
	require.NoError(t, s.AddProgress(g.ID, 200))
	b, err := s.AddBudget(BudgetInput{Category: category(t, "Bill"), Amount: 50})
	require.NoError(t, err)

	s.ResetGoals()

	snap := s.Snapshot()
	assert.Empty(t, snap.Goals)
	assert.Len(t, snap.Budgets, 1)
	assert.Equal(t, b.ID, snap.Budgets[0].ID)
	assert.Equal(t, models.GoalSummary{}, snap.GoalSummary)

	// contributions outlive the goal they were recorded against
	txs := s.RecentTransactions(10)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		assert.Equal(t, models.SourceGoal, tx.Source)
		assert.Equal(t, g.ID, tx.SourceID)
	}
	_, err = s.Goal(g.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalSummaryTotalsInDecimal(t *testing.T) {
	s := newTestStore()
	a, err := s.AddGoal(GoalInput{Name: "Books", Amount: 0.1})
	require.NoError(t, err)
	b, err := s.AddGoal(GoalInput{Name: "Laptop", Amount: 0.2})
	require.NoError(t, err)
	require.NoError(t, s.AddProgress(a.ID, 0.05))
	require.NoError(t, s.AddProgress(b.ID, 0.1))

	assert.Equal(t, models.GoalSummary{TotalAmount: 0.3, TotalSaved: 0.15}, s.Snapshot().GoalSummary)
}

func TestSubscribe(t *testing.T) {
	s := newTestStore()

	var snaps []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		snaps = append(snaps, snap)
	})

	b, err := s.AddBudget(BudgetInput{Category: category(t, "Grocery"), Amount: 700})
	require.NoError(t, err)
	_, err = s.RecordSpending(b.ID, 100, "Market")
	require.NoError(t, err)

	// failed mutations do not notify
	_, err = s.RecordSpending(b.ID, -1, "Bad")
	require.Error(t, err)

	require.Len(t, snaps, 2)
	last := snaps[1]
	assert.Equal(t, 100.0, last.Budgets[0].MonthlySpending)
	require.Len(t, last.Transactions, 1)
	assert.Equal(t, "Market", last.Transactions[0].Name)

	unsubscribe()
	unsubscribe()
	s.ResetBudgets()
	assert.Len(t, snaps, 2)
}

func TestListenerMayReadStore(t *testing.T) {
	s := newTestStore()
	var seen int
	s.Subscribe(func(Snapshot) {
		seen = len(s.Snapshot().Budgets)
	})

	_, err := s.AddBudget(BudgetInput{Category: category(t, "Cloth"), Amount: 80})
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}
