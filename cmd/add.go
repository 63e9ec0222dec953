package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/expense"
	"github.com/google/subcommands"
)

type addCmd struct {
	description string
	amount      int
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new expense dated today" }
func (*addCmd) Usage() string {
	return `expense-tracker add --description <desc> --amount <amt>

  Appends a new expense to the ledger. The expense is dated today and gets
  the number of expenses after the addition as id (see -id-policy).
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.description, "description", "", "Description of the expense (required).")
	f.IntVar(&c.amount, "amount", 0, "Amount in whole currency units (required, non zero).")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := expense.Validate(c.description, c.amount); err != nil {
		fmt.Fprintln(stdout, "Usage: expense-tracker add --description <desc> --amount <amt>")
		return subcommands.ExitUsageError
	}

	return withLedger(ctx, func(l *expense.Ledger) subcommands.ExitStatus {
		id := l.Add(c.description, c.amount)
		fmt.Fprintf(stdout, "Expense added successfully (ID: %d)\n", id)
		return subcommands.ExitSuccess
	})
}
