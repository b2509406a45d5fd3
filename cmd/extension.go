package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// RunExtension attempts to find and execute an external dkbl-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The global configuration is passed to the extension as DKBL_* environment variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "dkbl-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	cmd.Env = append(os.Environ(),
		EnvOutput+"="+config.Output,
		EnvConfirm+"="+config.Confirm,
		EnvBank+"="+config.Bank,
		EnvVerbose+"="+strconv.FormatBool(config.Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
