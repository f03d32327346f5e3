package ledger

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"wisewallet/backend/apperr"
)

// User-facing validation messages.
const (
	MsgFillAllFields   = "Please fill in all fields"
	MsgInvalidAmount   = "Please enter a valid amount"
	MsgSelectCategory  = "Please select a category"
	MsgInvalidDateSpan = "End date must not be before start date"
)

// ParseAmount parses user input into a strictly positive amount.
func ParseAmount(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, apperr.Validation(MsgFillAllFields)
	}
	d, err := decimal.NewFromString(input)
	if err != nil || !d.IsPositive() {
		return 0, apperr.Validation(MsgInvalidAmount)
	}
	return d.InexactFloat64(), nil
}

// positive converts a contribution amount, rejecting zero, negative and non-finite values.
func positive(amount float64) (decimal.Decimal, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return decimal.Zero, apperr.Validation(MsgInvalidAmount)
	}
	return decimal.NewFromFloat(amount), nil
}

// target converts a budget or goal target, which may be zero.
func target(amount float64) (decimal.Decimal, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return decimal.Zero, apperr.Validation(MsgInvalidAmount)
	}
	return decimal.NewFromFloat(amount), nil
}
