package dispatch

import (
	"errors"
	"os/exec"
)

// exitCode extracts an exit status from a command error.
// Returns (code, nil) for ExitError, (0, err) for other errors, (0, nil) for nil.
// A process killed by a signal has no exit status; it is reported as 1 so
// the stage still counts as failed.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 0, err
}
