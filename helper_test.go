package expense

import (
	"testing"

	"github.com/etnz/expense/date"
	"github.com/google/go-cmp/cmp"
)

// today is the date pinned for all the tests of the package.
const today = "2026-10-14"

// cmpDates lets cmp compare dates with unexported fields.
var cmpDates = cmp.Comparer(func(a, b date.Date) bool { return a == b })

// E is a helper for test to create an expense from const.
func E(id int, description string, amount int, on string) Expense {
	d, err := date.Parse(on)
	if err != nil {
		panic(err)
	}
	return Expense{ID: id, Description: description, Amount: amount, Date: d}
}

// pinToday pins date.Today() for the duration of the test.
func pinToday(t *testing.T) {
	t.Helper()
	t.Setenv(date.EnvTestingToday, today)
}

// newTestLedger is a helper to create a ledger from expenses.
func newTestLedger(es ...Expense) *Ledger {
	l := NewLedger()
	l.Append(es...)
	return l
}
