package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/expense"
	"github.com/google/subcommands"
)

// listHeader is printed before the expenses, even when there are none.
const listHeader = "ID   Date       Description   Amount"

type listCmd struct {
	markdown bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all expenses" }
func (*listCmd) Usage() string {
	return `expense-tracker list [-md]

  Lists all expenses in the order they were recorded.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.markdown, "md", false, "Render the list as a markdown table.")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(l *expense.Ledger) subcommands.ExitStatus {
		expenses := l.All()
		if c.markdown {
			printMarkdown(listMarkdown(expenses))
			return subcommands.ExitSuccess
		}

		fmt.Fprintln(stdout, listHeader)
		for _, e := range expenses {
			fmt.Fprintln(stdout, e)
		}
		return subcommands.ExitSuccess
	})
}

// markdownCell escapes text to fit in a markdown table cell.
var markdownCell = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// listMarkdown renders expenses as a markdown table.
func listMarkdown(expenses []expense.Expense) string {
	var b strings.Builder
	b.WriteString("| ID | Date | Description | Amount |\n")
	b.WriteString("|---:|:-----|:------------|-------:|\n")
	for _, e := range expenses {
		fmt.Fprintf(&b, "| %d | %v | %s | %s |\n", e.ID, e.Date, markdownCell.Replace(e.Description), expense.FormatAmount(e.Amount))
	}
	return b.String()
}
