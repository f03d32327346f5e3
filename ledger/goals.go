package ledger

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wisewallet/backend/apperr"
	"wisewallet/backend/models"
)

// ErrGoalNotFound is returned when a contribution names a goal that does not exist.
var ErrGoalNotFound = apperr.NotFound("Goal not found")

// GoalInput describes a goal to add. An empty Color picks one from models.GoalPalette.
type GoalInput struct {
	Name      string
	Icon      string
	Color     string
	Amount    float64
	StartDate time.Time
	EndDate   time.Time
}

type goalEntry struct {
	id     int64
	name   string
	icon   string
	color  string
	target decimal.Decimal
	saved  decimal.Decimal
	window models.DateRange
}

func (e *goalEntry) view() models.Goal {
	amount := e.target.InexactFloat64()
	return models.Goal{
		ID:            e.id,
		Name:          e.name,
		Icon:          e.icon,
		Color:         e.color,
		Amount:        amount,
		SavedAmount:   e.saved.InexactFloat64(),
		MonthlySaving: models.MonthlySavingFor(amount),
		DateRange:     e.window,
	}
}

// GoalLedger tracks savings goals in insertion order.
type GoalLedger struct {
	goals   []*goalEntry
	nextID  int64
	journal *TransactionJournal
	now     func() time.Time
	pick    func(n int) int
}

// NewGoalLedger creates a goal ledger. Contributions are written to journal when it is non-nil.
// pick chooses a palette index; nil uses math/rand.
func NewGoalLedger(journal *TransactionJournal, now func() time.Time, pick func(n int) int) *GoalLedger {
	if now == nil {
		now = time.Now
	}
	if pick == nil {
		pick = rand.IntN
	}
	return &GoalLedger{journal: journal, now: now, pick: pick, nextID: 1}
}

// AddGoal appends a goal with nothing saved yet.
func (l *GoalLedger) AddGoal(in GoalInput) (models.Goal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Goal{}, apperr.Validation(MsgSelectCategory)
	}
	amount, err := target(in.Amount)
	if err != nil {
		return models.Goal{}, err
	}
	window, err := dateWindow(in.StartDate, in.EndDate)
	if err != nil {
		return models.Goal{}, err
	}

	icon := in.Icon
	if icon == "" {
		icon = models.DefaultIcon
	}
	color := in.Color
	if color == "" {
		color = models.GoalPalette[l.pick(len(models.GoalPalette))]
	}

	entry := &goalEntry{
		id:     l.nextID,
		name:   name,
		icon:   icon,
		color:  color,
		target: amount,
		saved:  decimal.Zero,
		window: window,
	}
	l.nextID++
	l.goals = append(l.goals, entry)
	return entry.view(), nil
}

// AddProgress adds a contribution to a goal.
func (l *GoalLedger) AddProgress(goalID int64, amount float64) error {
	value, err := positive(amount)
	if err != nil {
		return err
	}
	entry := l.find(goalID)
	if entry == nil {
		return ErrGoalNotFound
	}

	entry.saved = entry.saved.Add(value)
	if l.journal != nil {
		now := l.now()
		l.journal.Append(models.Transaction{
			Name:       entry.name,
			Date:       now.Format(models.TransactionDateLayout),
			Amount:     value.InexactFloat64(),
			Icon:       entry.icon,
			Color:      entry.color,
			Source:     models.SourceGoal,
			SourceID:   entry.id,
			RecordedAt: now,
		})
	}
	return nil
}

func (l *GoalLedger) Get(goalID int64) (models.Goal, error) {
	entry := l.find(goalID)
	if entry == nil {
		return models.Goal{}, ErrGoalNotFound
	}
	return entry.view(), nil
}

func (l *GoalLedger) Goals() []models.Goal {
	out := make([]models.Goal, 0, len(l.goals))
	for _, e := range l.goals {
		out = append(out, e.view())
	}
	return out
}

func (l *GoalLedger) Summary() models.GoalSummary {
	var total, saved decimal.Decimal
	for _, e := range l.goals {
		total = total.Add(e.target)
		saved = saved.Add(e.saved)
	}
	return models.NewGoalSummary([]models.Goal{{
		Amount:      total.InexactFloat64(),
		SavedAmount: saved.InexactFloat64(),
	}})
}

// ResetAll clears the goal collection. The journal is only ever cleared as a
// whole, so contribution entries stay and keep the SourceID of a goal that no
// longer exists.
func (l *GoalLedger) ResetAll() {
	l.goals = nil
}

func (l *GoalLedger) find(id int64) *goalEntry {
	for _, e := range l.goals {
		if e.id == id {
			return e
		}
	}
	return nil
}
