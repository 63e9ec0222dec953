package cmd

import (
	"flag"
	"strings"
	"testing"

	"github.com/etnz/expense"
	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvLedgerFile, "")
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvIDPolicy, "")
	t.Setenv(EnvSummaryYear, "")
	t.Setenv(EnvMarkdownStyle, "")
	t.Setenv(EnvVerbose, "")

	want := &Config{
		Backend:       BackendFile,
		IDPolicy:      "count",
		SummaryYear:   SummaryAnyYear,
		MarkdownStyle: "dark",
	}
	if diff := cmp.Diff(want, LoadConfig()); diff != "" {
		t.Errorf("LoadConfig() defaults mismatch (-want +got):\n%s", diff)
	}

	t.Setenv(EnvLedgerFile, "/tmp/ledger.db")
	t.Setenv(EnvBackend, BackendSQLite)
	t.Setenv(EnvIDPolicy, "next")
	t.Setenv(EnvSummaryYear, SummaryCurrentYear)
	t.Setenv(EnvMarkdownStyle, "light")
	t.Setenv(EnvVerbose, "true")

	want = &Config{
		LedgerFile:    "/tmp/ledger.db",
		Backend:       BackendSQLite,
		IDPolicy:      "next",
		SummaryYear:   SummaryCurrentYear,
		MarkdownStyle: "light",
		Verbose:       true,
	}
	if diff := cmp.Diff(want, LoadConfig()); diff != "" {
		t.Errorf("LoadConfig() from env mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_RegisterFlags(t *testing.T) {
	t.Setenv(EnvBackend, BackendSQLite)
	c := LoadConfig()
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(f)

	if err := f.Parse([]string{"-ledger-file", "a.txt", "-id-policy", "next", "-v"}); err != nil {
		t.Fatal(err)
	}
	if c.LedgerFile != "a.txt" || c.IDPolicy != "next" || !c.Verbose {
		t.Errorf("flags not applied: %+v", c)
	}
	if c.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want the environment value %q", c.Backend, BackendSQLite)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Backend: BackendFile, IDPolicy: "next", SummaryYear: SummaryAnyYear}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	invalid := Config{Backend: "postgres", IDPolicy: "random", SummaryYear: "last"}
	err := invalid.Validate()
	if err == nil {
		t.Fatal("Validate() of an invalid config succeeded, want error")
	}
	for _, want := range []string{`"postgres"`, `"random"`, `"last"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %s", err, want)
		}
	}
}

func TestConfig_Path(t *testing.T) {
	testCases := []struct {
		config Config
		want   string
	}{
		{config: Config{Backend: BackendFile}, want: "expenses.txt"},
		{config: Config{Backend: BackendSQLite}, want: "expenses.db"},
		{config: Config{Backend: BackendSQLite, LedgerFile: "my.db"}, want: "my.db"},
		{config: Config{Backend: BackendFile, LedgerFile: "my.jsonl"}, want: "my.jsonl"},
	}
	for _, tc := range testCases {
		if got := tc.config.Path(); got != tc.want {
			t.Errorf("%+v.Path() = %q, want %q", tc.config, got, tc.want)
		}
	}
}

func TestConfig_Policy(t *testing.T) {
	if got := (&Config{IDPolicy: "next"}).Policy(); got != expense.NextID {
		t.Errorf("Policy() = %v, want %v", got, expense.NextID)
	}
	if got := (&Config{IDPolicy: "bogus"}).Policy(); got != expense.CountID {
		t.Errorf("Policy() of an invalid policy = %v, want %v", got, expense.CountID)
	}
	if got := (&Config{}).Policy(); got != expense.CountID {
		t.Errorf("Policy() of an empty policy = %v, want %v", got, expense.CountID)
	}
}
