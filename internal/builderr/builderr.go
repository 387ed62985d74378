// Package builderr defines the typed errors returned across the build
// pipeline and maps them to process exit codes.
package builderr

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline error.
type Kind string

const (
	KindConfig       Kind = "config"
	KindToolNotFound Kind = "tool-not-found"
	KindExecution    Kind = "execution"
	KindStage        Kind = "stage"
	KindResourceCopy Kind = "resource-copy"
)

// Exit codes for failures that do not carry a process exit status.
const (
	ExitFailure     = 1
	ExitConfigError = 2
	ExitEnvError    = 3
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrConfig       = errors.New("configuration error")
	ErrToolNotFound = errors.New("tool not found")
	ErrExecution    = errors.New("execution failure")
	ErrStage        = errors.New("stage failure")
	ErrResourceCopy = errors.New("resource copy error")
)

// Error is a classified pipeline error.
type Error struct {
	Kind     Kind
	Op       string // stage or operation name, e.g. "compile"
	Path     string // file or tool involved, if any
	ExitCode int    // process exit status for KindStage
	Err      error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	switch {
	case e.Kind == KindStage && e.Err == nil:
		return fmt.Sprintf("%s: exited with status %d", msg, e.ExitCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	default:
		return fmt.Sprintf("%s: %s", msg, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return sentinel(e.Kind) == target
}

func sentinel(k Kind) error {
	switch k {
	case KindConfig:
		return ErrConfig
	case KindToolNotFound:
		return ErrToolNotFound
	case KindExecution:
		return ErrExecution
	case KindStage:
		return ErrStage
	case KindResourceCopy:
		return ErrResourceCopy
	}
	return nil
}

// Config returns a configuration error.
func Config(op string, format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Op: op, Err: fmt.Errorf(format, args...)}
}

// ToolNotFound reports a missing executable.
func ToolNotFound(op, tool string, err error) *Error {
	return &Error{Kind: KindToolNotFound, Op: op, Path: tool, Err: err}
}

// Execution reports a process that could not be spawned or waited on.
func Execution(op, tool string, err error) *Error {
	return &Error{Kind: KindExecution, Op: op, Path: tool, Err: err}
}

// Stage reports an external process that ran and exited non-zero.
func Stage(op string, exitCode int) *Error {
	return &Error{Kind: KindStage, Op: op, ExitCode: exitCode}
}

// ResourceCopy reports a failed asset copy.
func ResourceCopy(path string, err error) *Error {
	return &Error{Kind: KindResourceCopy, Op: "sync", Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// ExitCode maps err to the exit status the CLI should return.
// Stage failures propagate the external process status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var be *Error
	if !errors.As(err, &be) {
		return ExitFailure
	}
	switch be.Kind {
	case KindStage:
		if be.ExitCode > 0 && be.ExitCode < 256 {
			return be.ExitCode
		}
		return ExitFailure
	case KindConfig:
		return ExitConfigError
	case KindToolNotFound:
		return ExitEnvError
	default:
		return ExitFailure
	}
}
