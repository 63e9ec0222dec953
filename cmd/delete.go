package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/expense"
	"github.com/google/subcommands"
)

type deleteCmd struct {
	id int
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete an expense" }
func (*deleteCmd) Usage() string {
	return `expense-tracker delete --id <id>

  Removes the expense with this id. Other expenses keep their ids.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.id, "id", 0, "Id of the expense to delete (required).")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 {
		fmt.Fprintln(stdout, "Usage: expense-tracker delete --id <id>")
		return subcommands.ExitUsageError
	}

	return withLedger(ctx, func(l *expense.Ledger) subcommands.ExitStatus {
		if l.Delete(c.id) {
			fmt.Fprintln(stdout, "Expense deleted successfully")
		} else {
			fmt.Fprintln(stdout, "Expense not found")
		}
		return subcommands.ExitSuccess
	})
}
