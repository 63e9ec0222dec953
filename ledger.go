package expense

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/expense/date"
)

// Expense is a single ledger entry.
type Expense struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Amount      int       `json:"amount"` // whole currency units
	Date        date.Date `json:"date"`
}

// String returns the expense the way the list command prints it.
func (e Expense) String() string {
	return fmt.Sprintf("%d   %v   %s   %s", e.ID, e.Date, e.Description, FormatAmount(e.Amount))
}

// IDPolicy defines how Add assigns the id of a new expense.
type IDPolicy int

const (
	// CountID assigns the new size of the ledger. After a deletion it can
	// reuse an id that is still in the ledger.
	CountID IDPolicy = iota
	// NextID assigns one more than the highest id ever seen by the ledger, so
	// that a new id never collides with a surviving one.
	NextID
)

func (p IDPolicy) String() string {
	switch p {
	case CountID:
		return "count"
	case NextID:
		return "next"
	default:
		return "unknown"
	}
}

// ParseIDPolicy parses a string into an IDPolicy.
func ParseIDPolicy(s string) (IDPolicy, error) {
	switch strings.ToLower(s) {
	case "count":
		return CountID, nil
	case "next":
		return NextID, nil
	default:
		return 0, fmt.Errorf("unknown id policy: %q", s)
	}
}

// Ledger represents the ordered list of expenses.
//
// Insertion order is preserved: it is the listing order and, with CountID,
// determines the ids.
type Ledger struct {
	expenses []Expense
	seq      int // highest id known to be handed out
	policy   IDPolicy
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{expenses: make([]Expense, 0)}
}

// SetIDPolicy changes the policy used by Add.
func (l *Ledger) SetIDPolicy(p IDPolicy) { l.policy = p }

// IDPolicy returns the policy used by Add.
func (l *Ledger) IDPolicy() IDPolicy { return l.policy }

// Len returns the number of expenses.
func (l *Ledger) Len() int { return len(l.expenses) }

// Seq returns the highest id the ledger knows to have been handed out.
func (l *Ledger) Seq() int { return l.seq }

// Reserve records that ids up to n have already been handed out. It never
// lowers the counter.
func (l *Ledger) Reserve(n int) {
	if n > l.seq {
		l.seq = n
	}
}

// Append adds expenses as they are, without assigning ids or dates.
// Decoders use it to rebuild a ledger; duplicate ids are accepted.
func (l *Ledger) Append(es ...Expense) {
	for _, e := range es {
		l.expenses = append(l.expenses, e)
		l.Reserve(e.ID)
	}
}

// Validate checks the parameters of Add.
func Validate(description string, amount int) error {
	if description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidArgument)
	}
	if len(description) > MaxDescriptionSize {
		return fmt.Errorf("%w: description is longer than %d bytes", ErrInvalidArgument, MaxDescriptionSize)
	}
	if amount == 0 {
		return fmt.Errorf("%w: amount is required and cannot be zero", ErrInvalidArgument)
	}
	return nil
}

// Add appends a new expense dated today and returns its id.
//
// Parameters are expected to be valid, see Validate.
func (l *Ledger) Add(description string, amount int) int {
	id := l.nextID()
	l.Append(Expense{
		ID:          id,
		Description: description,
		Amount:      amount,
		Date:        date.Today(),
	})
	return id
}

func (l *Ledger) nextID() int {
	if l.policy != NextID {
		return len(l.expenses) + 1
	}
	id := l.seq
	for _, e := range l.expenses {
		id = max(id, e.ID)
	}
	return id + 1
}

// All returns a copy of all expenses in stored order.
func (l *Ledger) All() []Expense { return slices.Clone(l.expenses) }

// Filter selects expenses by the month and the year of their date.
// A zero field matches anything.
type Filter struct {
	Month time.Month
	Year  int
}

// Match reports whether the date d is selected by the filter.
func (f Filter) Match(d date.Date) bool {
	if f.Month != 0 && d.Month() != f.Month {
		return false
	}
	return f.Year == 0 || d.Year() == f.Year
}

// Summarize returns the total amount of the expenses matching the filter.
func (l *Ledger) Summarize(f Filter) int {
	total := 0
	for _, e := range l.expenses {
		if f.Match(e.Date) {
			total += e.Amount
		}
	}
	return total
}

// Delete removes the first expense with this id. It reports whether an
// expense was removed. Other ids are not renumbered.
func (l *Ledger) Delete(id int) bool {
	i := slices.IndexFunc(l.expenses, func(e Expense) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	l.expenses = slices.Delete(l.expenses, i, i+1)
	return true
}
