package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// Environment variables giving their default to the global flags. They are
// also passed to extensions.
const (
	EnvDB       = "IW_DB"
	EnvReturns  = "IW_RETURNS"
	EnvModel    = "IW_MODEL"
	EnvCurrency = "IW_CURRENCY"
	EnvLogLevel = "IW_LOG_LEVEL"
	EnvVerbose  = "IW_VERBOSE"

	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
)

// RunExtension attempts to find and execute an external iw-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "iw-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		logger.Debug().Err(err).Str("extension", name).Msg("extension not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = append(os.Environ(),
		EnvDB+"="+*dbPath,
		EnvReturns+"="+*returnsFile,
		EnvModel+"="+*modelName,
		EnvCurrency+"="+*currency,
		EnvLogLevel+"="+*logLevel,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
