// Command expense-tracker records, lists, summarizes and deletes expenses
// kept in a local ledger file.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/expense/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional, its variables do not override the environment.
	_ = godotenv.Load()

	cmd.Init(flag.CommandLine)
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	// Exits if the shell is asking for completions.
	cmd.Completion(commander, flag.CommandLine).Complete(commander.Name())

	flag.Parse()
	os.Exit(int(cmd.Execute(context.Background(), commander, flag.Args())))
}
