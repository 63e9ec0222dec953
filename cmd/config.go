package cmd

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/expense"
)

// Environment variables read by LoadConfig. They are also forwarded to
// extensions, see RunExtension.
const (
	EnvLedgerFile    = "EXPENSE_LEDGER_FILE"
	EnvBackend       = "EXPENSE_BACKEND"
	EnvIDPolicy      = "EXPENSE_ID_POLICY"
	EnvSummaryYear   = "EXPENSE_SUMMARY_YEAR"
	EnvMarkdownStyle = "EXPENSE_MARKDOWN_STYLE"
	EnvVerbose       = "EXPENSE_VERBOSE"
)

// Backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Default summary year modes.
const (
	SummaryAnyYear     = "any"
	SummaryCurrentYear = "current"
)

// Config holds the global settings of the application.
type Config struct {
	// LedgerFile is the backing file, the default depends on the backend.
	LedgerFile string
	// Backend is BackendFile or BackendSQLite.
	Backend string
	// IDPolicy is the id assignment policy, see expense.ParseIDPolicy.
	IDPolicy string
	// SummaryYear is the year used by summary -month when -year is not set.
	SummaryYear string
	// MarkdownStyle is the glamour style used to render markdown.
	MarkdownStyle string
	Verbose       bool
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() *Config {
	return &Config{
		LedgerFile:    getEnv(EnvLedgerFile, ""),
		Backend:       getEnv(EnvBackend, BackendFile),
		IDPolicy:      getEnv(EnvIDPolicy, expense.CountID.String()),
		SummaryYear:   getEnv(EnvSummaryYear, SummaryAnyYear),
		MarkdownStyle: getEnv(EnvMarkdownStyle, "dark"),
		Verbose:       getEnvBool(EnvVerbose, false),
	}
}

// RegisterFlags binds the global flags to the configuration, using current
// values as defaults.
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&c.LedgerFile, "ledger-file", c.LedgerFile, "Path to the ledger (default \"expenses.txt\", or \"expenses.db\" with the sqlite backend). A .jsonl file is stored in JSONL format.")
	f.StringVar(&c.Backend, "backend", c.Backend, "Storage backend (file, sqlite).")
	f.StringVar(&c.IDPolicy, "id-policy", c.IDPolicy, "Id assignment policy for new expenses (count, next).")
	f.StringVar(&c.SummaryYear, "summary-year", c.SummaryYear, "Year filtered by 'summary -month' when -year is not set (any, current).")
	f.BoolVar(&c.Verbose, "v", c.Verbose, "Enable verbose logging.")
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		errors = append(errors, fmt.Sprintf("invalid backend %q: must be one of %s, %s", c.Backend, BackendFile, BackendSQLite))
	}

	if _, err := expense.ParseIDPolicy(c.IDPolicy); err != nil {
		errors = append(errors, err.Error())
	}

	switch c.SummaryYear {
	case SummaryAnyYear, SummaryCurrentYear:
	default:
		errors = append(errors, fmt.Sprintf("invalid summary year %q: must be one of %s, %s", c.SummaryYear, SummaryAnyYear, SummaryCurrentYear))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}
	return nil
}

// Path returns the ledger path, applying the backend default.
func (c *Config) Path() string {
	if c.LedgerFile != "" {
		return c.LedgerFile
	}
	if c.Backend == BackendSQLite {
		return "expenses.db"
	}
	return "expenses.txt"
}

// Policy returns the parsed id policy, CountID if invalid.
func (c *Config) Policy() expense.IDPolicy {
	p, err := expense.ParseIDPolicy(c.IDPolicy)
	if err != nil {
		return expense.CountID
	}
	return p
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
