package ux

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jorge-barreto/jbuild/internal/dispatch"
	"github.com/jorge-barreto/jbuild/internal/invoke"
	"github.com/jorge-barreto/jbuild/internal/resources"
	"github.com/jorge-barreto/jbuild/internal/runner"
)

func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

func TestConsole_StageEndPrintsStdoutBeforeStderr(t *testing.T) {
	buf := captureOut(t)
	c := &Console{}
	inv := invoke.Invocation{Stage: invoke.StageCompile, Tool: "javac"}

	c.StageEnd(inv, &dispatch.Result{ExitCode: 0, Stdout: "out-line\n", Stderr: "err-line\n"}, time.Second)

	got := buf.String()
	o, e := strings.Index(got, "out-line"), strings.Index(got, "err-line")
	if o < 0 || e < 0 || o > e {
		t.Fatalf("expected stdout before stderr, got:\n%s", got)
	}
	if !strings.Contains(got, "compile complete") {
		t.Fatalf("missing completion line:\n%s", got)
	}
}

func TestConsole_StageEndFailure(t *testing.T) {
	buf := captureOut(t)
	c := &Console{}
	inv := invoke.Invocation{Stage: invoke.StageRun, Tool: "java"}

	c.StageEnd(inv, &dispatch.Result{ExitCode: 3}, time.Millisecond)

	if !strings.Contains(buf.String(), "run failed: exit code 3") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestConsole_StageStartShowsCommandLine(t *testing.T) {
	buf := captureOut(t)
	c := &Console{}
	c.StageStart(invoke.Invocation{Stage: invoke.StageDoc, Tool: "javadoc", Args: []string{"-d", "doc"}})

	if !strings.Contains(buf.String(), "javadoc -d doc") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestConsole_StageError(t *testing.T) {
	buf := captureOut(t)
	c := &Console{}
	c.StageError(invoke.Invocation{Stage: invoke.StageCompile}, errors.New("javac not found"))

	if !strings.Contains(buf.String(), "compile failed: javac not found") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestConsole_SyncedQuietWhenEmpty(t *testing.T) {
	buf := captureOut(t)
	c := &Console{}
	c.Synced(nil, "class/resources")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	c.Synced([]resources.Copy{{From: "src/a.css", To: "class/resources/a.css"}}, "class/resources")
	if !strings.Contains(buf.String(), "1 asset(s) copied to class/resources") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestConsole_TransitionsOnlyWhenVerbose(t *testing.T) {
	buf := captureOut(t)
	(&Console{}).Transition(runner.StateIdle, runner.StateResolving)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	(&Console{Verbose: true}).Transition(runner.StateIdle, runner.StateResolving)
	if !strings.Contains(buf.String(), "idle -> resolving") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestConsole_Finished(t *testing.T) {
	buf := captureOut(t)
	c := &Console{}

	c.Finished(&runner.Report{
		States: []runner.State{runner.StateIdle, runner.StateResolving, runner.StateCompiling, runner.StateCompileFailed},
		Err:    errors.New("boom"),
	})
	if !strings.Contains(buf.String(), "pipeline stopped in compile-failed") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	c.Finished(&runner.Report{Stages: []runner.StageRecord{{Stage: "compile"}, {Stage: "run"}}})
	if !strings.Contains(buf.String(), "2 stage(s) complete") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdefghijkl", 8); got != "abcde..." {
		t.Fatalf("truncate = %q", got)
	}
}
