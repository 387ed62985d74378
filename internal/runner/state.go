package runner

import (
	"time"

	"github.com/jorge-barreto/jbuild/internal/dispatch"
	"github.com/jorge-barreto/jbuild/internal/invoke"
	"github.com/jorge-barreto/jbuild/internal/resources"
	"github.com/jorge-barreto/jbuild/internal/source"
)

// State is a pipeline state.
type State string

const (
	StateIdle            State = "idle"
	StateResolving       State = "resolving"
	StateCompiling       State = "compiling"
	StateCompileFailed   State = "compile-failed"
	StateResourceSyncing State = "resource-syncing"
	StateRunning         State = "running"
	StateTesting         State = "testing"
	StateDocumenting     State = "documenting"
	StateDone            State = "done"
)

// StageRecord is the outcome of one external process. ExitCode is -1 when
// the process could not be launched.
type StageRecord struct {
	Stage    string
	ExitCode int
	Duration time.Duration
}

// Report describes one pipeline run. It lives in memory only.
type Report struct {
	RunID    string
	Target   source.Target
	States   []State
	Stages   []StageRecord
	Synced   int
	Started  time.Time
	Duration time.Duration
	Err      error
}

// Final returns the state the run ended in.
func (r *Report) Final() State {
	if len(r.States) == 0 {
		return StateIdle
	}
	return r.States[len(r.States)-1]
}

// Ran reports whether a stage with the given name was dispatched.
func (r *Report) Ran(stage string) bool {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return true
		}
	}
	return false
}

// Observer receives pipeline events. Rendering them is up to the
// implementation; the runner never prints stage output itself.
type Observer interface {
	Transition(from, to State)
	StageStart(inv invoke.Invocation)
	StageEnd(inv invoke.Invocation, res *dispatch.Result, elapsed time.Duration)
	StageError(inv invoke.Invocation, err error)
	Skipped(stage, reason string)
	Synced(copies []resources.Copy, dest string)
	Finished(rep *Report)
}

type nopObserver struct{}

func (nopObserver) Transition(State, State)                                    {}
func (nopObserver) StageStart(invoke.Invocation)                               {}
func (nopObserver) StageEnd(invoke.Invocation, *dispatch.Result, time.Duration) {}
func (nopObserver) StageError(invoke.Invocation, error)                        {}
func (nopObserver) Skipped(string, string)                                     {}
func (nopObserver) Synced([]resources.Copy, string)                            {}
func (nopObserver) Finished(*Report)                                           {}
