package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/jorge-barreto/jbuild/internal/builderr"
	"github.com/jorge-barreto/jbuild/internal/invoke"
)

// Environment holds the execution context shared by every stage of a run.
type Environment struct {
	ProjectRoot string
	RunID       string
	filteredEnv []string // lazily populated base env (os.Environ minus JBUILD_*)
}

// Result holds the outcome of one tool invocation. Output is available only
// once the process has exited.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK reports whether the process exited zero.
func (r *Result) OK() bool { return r.ExitCode == 0 }

// BuildEnv returns the environment variables for child processes.
// It inherits the current environment and adds JBUILD_ variables describing
// the stage. The base environment is snapshotted once per Environment.
func BuildEnv(env *Environment, inv invoke.Invocation) []string {
	if env.filteredEnv == nil {
		for _, e := range os.Environ() {
			key := strings.SplitN(e, "=", 2)[0]
			if strings.HasPrefix(key, "JBUILD_") {
				continue
			}
			env.filteredEnv = append(env.filteredEnv, e)
		}
	}
	result := make([]string, len(env.filteredEnv), len(env.filteredEnv)+4)
	copy(result, env.filteredEnv)
	result = append(result,
		"JBUILD_PROJECT_ROOT="+env.ProjectRoot,
		"JBUILD_RUN_ID="+env.RunID,
		"JBUILD_STAGE="+inv.Stage,
		"JBUILD_OUTPUT_DIR="+inv.OutputDir,
	)
	return result
}

// Dispatcher runs tool invocations. Tests can substitute a mock.
type Dispatcher interface {
	Dispatch(ctx context.Context, inv invoke.Invocation, env *Environment) (*Result, error)
}

// DefaultDispatcher spawns real processes.
type DefaultDispatcher struct{}

func (d *DefaultDispatcher) Dispatch(ctx context.Context, inv invoke.Invocation, env *Environment) (*Result, error) {
	return Dispatch(ctx, inv, env)
}

// Dispatch runs inv to completion in the project root and captures its
// output. A missing executable is a ToolNotFound error and a process that
// cannot be started or waited on is an ExecutionFailure; a non-zero exit
// is reported in the Result, not as an error.
func Dispatch(ctx context.Context, inv invoke.Invocation, env *Environment) (*Result, error) {
	path, err := exec.LookPath(inv.Tool)
	if err != nil {
		return nil, builderr.ToolNotFound(inv.Stage, inv.Tool, err)
	}

	cmd := exec.CommandContext(ctx, path, inv.Args...)
	cmd.Dir = env.ProjectRoot
	cmd.Env = BuildEnv(env, inv)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code, err := exitCode(cmd.Run())
	if err != nil {
		return nil, builderr.Execution(inv.Stage, inv.Tool, err)
	}

	return &Result{ExitCode: code, Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// DryRunDispatcher prints each invocation instead of running it.
type DryRunDispatcher struct {
	Out io.Writer // defaults to os.Stdout
}

func (d *DryRunDispatcher) Dispatch(ctx context.Context, inv invoke.Invocation, env *Environment) (*Result, error) {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "  [%s] %s\n", inv.Stage, inv.CommandLine())
	return &Result{ExitCode: 0}, nil
}
