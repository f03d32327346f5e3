package models

// Transaction sources
const (
	SourceBudget = "budget"
	SourceGoal   = "goal"
)

// Expense event types
const (
	EventExpenseCreated = "expense.created"
	EventExpenseUpdated = "expense.updated"
	EventExpenseDeleted = "expense.deleted"
)

// GoalPalette is the fixed set of colors a goal is assigned from when none is given.
var GoalPalette = []string{
	"#EB5757",
	"#F2C94C",
	"#2F80ED",
	"#56CCF2",
	"#F2994A",
	"#27AE60",
	"#9B51E0",
}

// DefaultIcon is used when a goal is created without an icon.
const DefaultIcon = "flag"

// TransactionDateLayout renders journal dates the way the transaction list shows them.
const TransactionDateLayout = "Jan 2"
