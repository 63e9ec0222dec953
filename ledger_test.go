package expense

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLedger_Add(t *testing.T) {
	pinToday(t)

	for _, policy := range []IDPolicy{NextID, CountID} {
		t.Run(policy.String(), func(t *testing.T) {
			l := newTestLedger(
				E(1, "Coffee", 5, "2026-09-01"),
				E(2, "Book", 20, "2026-09-02"),
				E(3, "Lunch", 12, "2026-10-01"),
			)
			l.SetIDPolicy(policy)

			id := l.Add("Train", 30)
			if id != 4 {
				t.Errorf("Add() = %d, want %d", id, 4)
			}
			if l.Len() != 4 {
				t.Errorf("Len() = %d, want %d", l.Len(), 4)
			}

			want := E(4, "Train", 30, today)
			got := l.All()[3]
			if diff := cmp.Diff(want, got, cmpDates); diff != "" {
				t.Errorf("Add() appended mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLedger_Add_EmptyLedger(t *testing.T) {
	pinToday(t)
	l := NewLedger()
	if id := l.Add("Coffee", 5); id != 1 {
		t.Errorf("Add() = %d, want 1", id)
	}
	if id := l.Add("Book", 20); id != 2 {
		t.Errorf("Add() = %d, want 2", id)
	}
}

// TestLedger_Add_AfterDelete shows how each policy behaves once an id has been skipped.
func TestLedger_Add_AfterDelete(t *testing.T) {
	pinToday(t)

	testCases := []struct {
		policy IDPolicy
		want   int
	}{
		{policy: CountID, want: 3}, // collides with the surviving id 3
		{policy: NextID, want: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.policy.String(), func(t *testing.T) {
			l := newTestLedger(
				E(1, "Coffee", 5, "2026-09-01"),
				E(2, "Book", 20, "2026-09-02"),
				E(3, "Lunch", 12, "2026-10-01"),
			)
			l.SetIDPolicy(tc.policy)
			if !l.Delete(2) {
				t.Fatalf("Delete(2) = false, want true")
			}
			if got := l.Add("Train", 30); got != tc.want {
				t.Errorf("Add() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLedger_Add_Reserved(t *testing.T) {
	pinToday(t)
	l := newTestLedger(E(1, "Coffee", 5, "2026-09-01"))
	l.Reserve(7) // id 7 was handed out and deleted in a previous run
	l.Reserve(3) // never lowers the counter

	if got := l.Add("Book", 20); got != 2 {
		t.Errorf("Add() with the default policy = %d, want 2", got)
	}

	l.SetIDPolicy(NextID)
	if got := l.Add("Lunch", 12); got != 8 {
		t.Errorf("Add() with next policy = %d, want 8", got)
	}
}

// TestLedger_Add_DefaultPolicy checks that a new ledger assigns the new size
// of the ledger as id.
func TestLedger_Add_DefaultPolicy(t *testing.T) {
	pinToday(t)
	l := NewLedger()
	if got := l.IDPolicy(); got != CountID {
		t.Errorf("IDPolicy() = %v, want %v", got, CountID)
	}

	l.Add("Coffee", 5)
	l.Add("Book", 20)
	if !l.Delete(1) {
		t.Fatalf("Delete(1) = false, want true")
	}
	if got := l.Add("Tea", 3); got != 2 {
		t.Errorf("Add() on a 1-entry ledger = %d, want 2", got)
	}

	want := []Expense{E(2, "Book", 20, today), E(2, "Tea", 3, today)}
	if diff := cmp.Diff(want, l.All(), cmpDates); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name        string
		description string
		amount      int
		wantErr     bool
	}{
		{name: "valid", description: "Coffee", amount: 5},
		{name: "negative amount", description: "Refund", amount: -5},
		{name: "missing description", description: "", amount: 5, wantErr: true},
		{name: "zero amount", description: "Coffee", amount: 0, wantErr: true},
		{name: "longest description", description: strings.Repeat("a", MaxDescriptionSize), amount: 5},
		{name: "description too long", description: strings.Repeat("a", MaxDescriptionSize+1), amount: 5, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.description, tc.amount)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Validate() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestLedger_All(t *testing.T) {
	es := []Expense{
		E(2, "Book", 20, "2026-09-02"),
		E(1, "Coffee", 5, "2026-09-01"),
	}
	l := newTestLedger(es...)

	got := l.All()
	if diff := cmp.Diff(es, got, cmpDates); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}

	// All returns a copy.
	got[0].Description = "changed"
	if l.All()[0].Description != "Book" {
		t.Errorf("All() exposed the ledger internal slice")
	}

	if got := NewLedger().All(); len(got) != 0 {
		t.Errorf("All() on empty ledger = %v, want empty", got)
	}
}

func TestLedger_Summarize(t *testing.T) {
	l := newTestLedger(
		E(1, "Coffee", 5, "2026-10-01"),
		E(2, "Book", 20, "2026-10-14"),
		E(3, "Lunch", 12, "2026-09-30"),
		E(4, "Gift", 100, "2025-10-20"),
		E(5, "Refund", -7, "2026-09-02"),
	)

	testCases := []struct {
		name   string
		filter Filter
		want   int
	}{
		{name: "all", filter: Filter{}, want: 130},
		{name: "october any year", filter: Filter{Month: time.October}, want: 125},
		{name: "september", filter: Filter{Month: time.September}, want: 5},
		{name: "no match", filter: Filter{Month: time.March}, want: 0},
		{name: "october 2026", filter: Filter{Month: time.October, Year: 2026}, want: 25},
		{name: "october 2025", filter: Filter{Month: time.October, Year: 2025}, want: 100},
		{name: "year only", filter: Filter{Year: 2026}, want: 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.Summarize(tc.filter); got != tc.want {
				t.Errorf("Summarize(%+v) = %d, want %d", tc.filter, got, tc.want)
			}
		})
	}

	if got := NewLedger().Summarize(Filter{}); got != 0 {
		t.Errorf("Summarize() on empty ledger = %d, want 0", got)
	}
}

func TestLedger_Delete(t *testing.T) {
	l := newTestLedger(
		E(1, "Coffee", 5, "2026-10-01"),
		E(2, "Book", 20, "2026-10-14"),
		E(3, "Lunch", 12, "2026-09-30"),
	)

	if l.Delete(42) {
		t.Errorf("Delete(42) = true, want false")
	}
	if l.Len() != 3 {
		t.Errorf("Delete(42) changed the ledger, Len() = %d", l.Len())
	}

	if !l.Delete(2) {
		t.Errorf("Delete(2) = false, want true")
	}
	want := []Expense{
		E(1, "Coffee", 5, "2026-10-01"),
		E(3, "Lunch", 12, "2026-09-30"), // not renumbered
	}
	if diff := cmp.Diff(want, l.All(), cmpDates); diff != "" {
		t.Errorf("Delete(2) mismatch (-want +got):\n%s", diff)
	}

	if l.Delete(2) {
		t.Errorf("second Delete(2) = true, want false")
	}
}

func TestLedger_Delete_Duplicates(t *testing.T) {
	l := newTestLedger(
		E(1, "Coffee", 5, "2026-10-01"),
		E(1, "Tea", 4, "2026-10-02"),
	)
	if !l.Delete(1) {
		t.Fatalf("Delete(1) = false, want true")
	}
	want := []Expense{E(1, "Tea", 4, "2026-10-02")}
	if diff := cmp.Diff(want, l.All(), cmpDates); diff != "" {
		t.Errorf("Delete(1) removed more than the first match (-want +got):\n%s", diff)
	}
}

func TestParseIDPolicy(t *testing.T) {
	for _, p := range []IDPolicy{NextID, CountID} {
		got, err := ParseIDPolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParseIDPolicy(%q) = %v, %v, want %v", p.String(), got, err, p)
		}
	}
	if _, err := ParseIDPolicy("random"); err == nil {
		t.Errorf("ParseIDPolicy(%q) succeeded, want error", "random")
	}
}

func TestExpense_String(t *testing.T) {
	testCases := []struct {
		e    Expense
		want string
	}{
		{e: E(1, "Coffee", 5, "2026-10-14"), want: "1   2026-10-14   Coffee   $5"},
		{e: E(12, "Rent", 1500, "2026-10-01"), want: "12   2026-10-01   Rent   $1500"},
		{e: E(3, "Refund", -3, "2026-10-02"), want: "3   2026-10-02   Refund   -$3"},
	}
	for _, tc := range testCases {
		if got := tc.e.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
