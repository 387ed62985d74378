package ux

import (
	"fmt"
	"time"

	"github.com/jorge-barreto/jbuild/internal/dispatch"
	"github.com/jorge-barreto/jbuild/internal/invoke"
	"github.com/jorge-barreto/jbuild/internal/resources"
	"github.com/jorge-barreto/jbuild/internal/runner"
)

// Console renders pipeline events to Out. Process output is shown only
// after the process exits: stdout first, then stderr.
type Console struct {
	Verbose bool
}

var _ runner.Observer = (*Console)(nil)

func (c *Console) Transition(from, to runner.State) {
	if c.Verbose {
		fmt.Fprintf(Out, "%s[%s]   %s -> %s%s\n", Dim, timestamp(), from, to, Reset)
	}
}

func (c *Console) StageStart(inv invoke.Invocation) {
	StageHeader(inv.Stage, inv.CommandLine())
}

func (c *Console) StageEnd(inv invoke.Invocation, res *dispatch.Result, elapsed time.Duration) {
	ProcessOutput(res.Stdout, res.Stderr)
	if res.OK() {
		StageComplete(inv.Stage, elapsed)
		return
	}
	StageFail(inv.Stage, fmt.Sprintf("exit code %d", res.ExitCode))
}

func (c *Console) StageError(inv invoke.Invocation, err error) {
	StageFail(inv.Stage, err.Error())
}

func (c *Console) Skipped(stage, reason string) {
	StageSkip(stage, reason)
}

func (c *Console) Synced(copies []resources.Copy, dest string) {
	if len(copies) == 0 && !c.Verbose {
		return
	}
	Synced(len(copies), dest)
}

func (c *Console) Finished(rep *runner.Report) {
	if rep.Err != nil {
		Failure(string(rep.Final()))
		return
	}
	Success(len(rep.Stages), rep.Duration)
}
