package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// ExtensionPrefix is prepended to an unknown subcommand to find its extension binary.
const ExtensionPrefix = "expense-tracker-"

// RunExtension attempts to find and execute an external expense-tracker-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		slog.Debug("extension not found in PATH", "command", externalCmdName, "error", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvLedgerFile+"="+cfg.Path())
	cmd.Env = append(cmd.Env, EnvBackend+"="+cfg.Backend)
	cmd.Env = append(cmd.Env, EnvIDPolicy+"="+cfg.IDPolicy)
	cmd.Env = append(cmd.Env, EnvSummaryYear+"="+cfg.SummaryYear)
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(cfg.Verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1 // an attempt was made, but it failed
	}

	return true, 0
}
