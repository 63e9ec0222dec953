package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/expense"
	"github.com/etnz/expense/date"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	month int
	year  int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the total of expenses" }
func (*summaryCmd) Usage() string {
	return `expense-tracker summary [--month <1-12>] [--year <yyyy>]

  Displays the total of all expenses, or of the expenses of a given month.
  Without -year, a month matches in any year unless the global
  -summary-year flag is "current".
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.month, "month", 0, "Month of the year to summarize (1-12).")
	f.IntVar(&c.year, "year", 0, "Year to summarize.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// 0 is the "no filter" value, it cannot be given explicitly.
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if c.month < 0 || c.month > 12 || set["month"] && c.month == 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid month %d, want a value between 1 and 12\n", c.month)
		return subcommands.ExitUsageError
	}
	if c.year < 0 || set["year"] && c.year == 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid year %d\n", c.year)
		return subcommands.ExitUsageError
	}

	filter := expense.Filter{Month: time.Month(c.month), Year: c.year}
	if filter.Month != 0 && filter.Year == 0 && cfg.SummaryYear == SummaryCurrentYear {
		filter.Year = date.Today().Year()
	}

	return withLedger(ctx, func(l *expense.Ledger) subcommands.ExitStatus {
		fmt.Fprintf(stdout, "%s: %s\n", summaryLabel(filter), expense.FormatAmount(l.Summarize(filter)))
		return subcommands.ExitSuccess
	})
}

func summaryLabel(f expense.Filter) string {
	switch {
	case f.Month != 0 && f.Year != 0:
		return fmt.Sprintf("Total expenses for month %d of %d", f.Month, f.Year)
	case f.Month != 0:
		return fmt.Sprintf("Total expenses for month %d", f.Month)
	case f.Year != 0:
		return fmt.Sprintf("Total expenses for %d", f.Year)
	default:
		return "Total expenses"
	}
}
