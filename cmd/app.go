// Package cmd implements the CLI application to manage an expense ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/etnz/expense"
	"github.com/etnz/expense/sqlite"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// cfg is the application configuration, see Init.
var cfg = LoadConfig()

// stdout receives the command outputs. Tests replace it.
var stdout io.Writer = os.Stdout

// Init reads the configuration from the environment and registers the
// global flags on f. It must be called before f is parsed.
func Init(f *flag.FlagSet) {
	cfg = LoadConfig()
	cfg.RegisterFlags(f)
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
	c.Register(&topicCmd{}, "help")

	c.Register(&addCmd{}, "expenses")
	c.Register(&listCmd{}, "expenses")
	c.Register(&summaryCmd{}, "expenses")
	c.Register(&deleteCmd{}, "expenses")

	c.Register(&fmtCmd{}, "ledger")
}

// Execute runs the subcommand selected by args, the remaining command line
// arguments after the global flags.
func Execute(ctx context.Context, c *subcommands.Commander, args []string) subcommands.ExitStatus {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	setupLogging()

	if len(args) == 0 {
		fmt.Fprintln(stdout, "Usage: expense-tracker <command> [options]")
		return subcommands.ExitUsageError
	}

	if !hasCommand(c, args[0]) {
		if found, code := RunExtension(args[0], args[1:]); found {
			return subcommands.ExitStatus(code)
		}
		fmt.Fprintln(stdout, "Invalid command")
		return subcommands.ExitUsageError
	}
	return c.Execute(ctx)
}

// hasCommand reports whether name is a registered subcommand.
func hasCommand(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}

func setupLogging() {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// OpenStore opens the configured ledger store. The returned function closes it.
func OpenStore(ctx context.Context) (expense.Store, func() error, error) {
	switch cfg.Backend {
	case BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.Path())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return expense.NewFileStore(cfg.Path()), func() error { return nil }, nil
	}
}

// withLedger loads the ledger, applies f and saves the ledger back, even if
// f did not change it.
//
// If the ledger cannot be loaded, f is not called and nothing is saved.
func withLedger(ctx context.Context, f func(l *expense.Ledger) subcommands.ExitStatus) subcommands.ExitStatus {
	store, closeStore, err := OpenStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading expenses: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Warn("close-ledger", "file", cfg.Path(), "error", err)
		}
	}()

	ledger, err := store.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading expenses: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger.SetIDPolicy(cfg.Policy())

	status := f(ledger)

	if err := store.Save(ctx, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving expenses: %v\n", err)
		return subcommands.ExitFailure
	}
	return status
}
