package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/expense"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `expense-tracker fmt [-o <file>]

  Validates and formats the ledger. This command reads all expenses and
  writes them back in canonical form, escaping delimiters in descriptions.
  With -o, the ledger is written to another file instead; a .jsonl
  extension converts it to JSONL.

Usage Examples:
# Rewrites the default ledger file in place.
$ expense-tracker fmt

# Exports the ledger as JSONL.
$ expense-tracker fmt -o expenses.jsonl
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "", "Output file. Formats the ledger in place by default.")
}

func (c *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.outputFile == "" {
		status := withLedger(ctx, func(*expense.Ledger) subcommands.ExitStatus { return subcommands.ExitSuccess })
		if status == subcommands.ExitSuccess {
			fmt.Fprintf(stdout, "Ledger file %q has been formatted.\n", cfg.Path())
		}
		return status
	}

	store, closeStore, err := OpenStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading expenses: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	ledger, err := store.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading expenses: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := expense.NewFileStore(c.outputFile).Save(ctx, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving expenses: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Ledger file %q has been formatted.\n", c.outputFile)
	return subcommands.ExitSuccess
}
