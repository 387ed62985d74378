// Package runner drives one build pipeline run from resolution to the final stage.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jorge-barreto/jbuild/internal/builderr"
	"github.com/jorge-barreto/jbuild/internal/config"
	"github.com/jorge-barreto/jbuild/internal/dispatch"
	"github.com/jorge-barreto/jbuild/internal/invoke"
	"github.com/jorge-barreto/jbuild/internal/logfields"
	"github.com/jorge-barreto/jbuild/internal/platform"
	"github.com/jorge-barreto/jbuild/internal/resources"
	"github.com/jorge-barreto/jbuild/internal/source"
)

// Runner drives the build pipeline state machine. Every public method is
// one pipeline run: sources are resolved afresh and nothing is kept
// between runs.
type Runner struct {
	Root          string
	Config        *config.Config
	Platform      platform.Platform
	Verbose       bool
	DryRun        bool
	DocAfterBuild bool
	Dispatcher    dispatch.Dispatcher
	Observer      Observer
	Logger        *slog.Logger
	Getenv        func(string) string
}

// pipeline is the per-run state of a Runner.
type pipeline struct {
	r        *Runner
	obs      Observer
	log      *slog.Logger
	state    State
	report   *Report
	env      *dispatch.Environment
	resolver *source.Resolver
	composer *invoke.Composer
}

func (r *Runner) begin(target source.Target) *pipeline {
	obs := r.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	log := r.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	id := uuid.NewString()
	p := &pipeline{
		r:      r,
		obs:    obs,
		log:    log.With(logfields.RunID(id)),
		state:  StateIdle,
		report: &Report{RunID: id, Target: target, Started: time.Now(), States: []State{StateIdle}},
		env:    &dispatch.Environment{ProjectRoot: r.Root, RunID: id},
	}
	return p
}

func (p *pipeline) transition(to State) {
	from := p.state
	p.state = to
	p.report.States = append(p.report.States, to)
	p.log.Debug("state transition", slog.String("from", string(from)), logfields.State(string(to)))
	p.obs.Transition(from, to)
}

// finish closes the run with err as its outcome.
func (p *pipeline) finish(err error) (*Report, error) {
	if err == nil && p.state != StateDone {
		p.transition(StateDone)
	}
	p.report.Duration = time.Since(p.report.Started)
	p.report.Err = err
	if err != nil {
		p.log.Warn("pipeline failed", logfields.State(string(p.state)), logfields.Error(err))
	} else {
		p.log.Info("pipeline complete", logfields.Count(len(p.report.Stages)),
			logfields.DurationMS(float64(p.report.Duration.Milliseconds())))
	}
	p.obs.Finished(p.report)
	return p.report, err
}

// resolve probes the runtime library and prepares the composer. Nothing
// has been spawned when it fails.
func (p *pipeline) resolve() error {
	p.transition(StateResolving)
	modulePath, err := invoke.ProbeModulePath(p.r.Config, p.r.Root, p.r.Platform, p.r.Getenv)
	if err != nil {
		return err
	}
	p.resolver = source.New(p.r.Root, p.r.Config, p.r.Platform)
	p.composer = &invoke.Composer{
		Platform:   p.r.Platform,
		Config:     p.r.Config,
		ModulePath: modulePath,
		Verbose:    p.r.Verbose,
	}
	return nil
}

// exec dispatches one invocation and records it. A non-zero exit is
// returned as a stage error alongside the result.
func (p *pipeline) exec(ctx context.Context, inv invoke.Invocation) (*dispatch.Result, error) {
	p.obs.StageStart(inv)
	p.log.Debug("dispatching", logfields.Stage(inv.Stage), logfields.Tool(inv.Tool), logfields.Args(inv.Args))

	start := time.Now()
	res, err := p.r.Dispatcher.Dispatch(ctx, inv, p.env)
	elapsed := time.Since(start)
	if err != nil {
		p.report.Stages = append(p.report.Stages, StageRecord{Stage: inv.Stage, ExitCode: -1, Duration: elapsed})
		p.obs.StageError(inv, err)
		return nil, err
	}

	p.report.Stages = append(p.report.Stages, StageRecord{Stage: inv.Stage, ExitCode: res.ExitCode, Duration: elapsed})
	p.log.Debug("stage finished", logfields.Stage(inv.Stage), logfields.ExitCode(res.ExitCode),
		logfields.DurationMS(float64(elapsed.Milliseconds())))
	p.obs.StageEnd(inv, res, elapsed)
	if !res.OK() {
		return res, builderr.Stage(inv.Stage, res.ExitCode)
	}
	return res, nil
}

// compile resolves target, compiles it and syncs companion assets.
func (p *pipeline) compile(ctx context.Context, target source.Target) error {
	set, err := p.resolver.Target(target)
	if err != nil {
		return err
	}
	p.log.Debug("sources resolved", logfields.Target(target.String()), logfields.Count(len(set)))

	p.transition(StateCompiling)
	if _, err := p.exec(ctx, p.composer.Compile(set)); err != nil {
		p.transition(StateCompileFailed)
		return err
	}

	p.transition(StateResourceSyncing)
	sync := &resources.Synchronizer{Root: p.r.Root, DryRun: p.r.DryRun}
	dest := p.r.Config.ResourceDir()
	copies, err := sync.Sync(p.r.Config.SourceRoot, dest, p.r.Config.Resources.Extensions)
	if err != nil {
		return err
	}
	p.report.Synced = len(copies)
	p.log.Debug("assets synced", logfields.Count(len(copies)), logfields.Path(dest))
	p.obs.Synced(copies, dest)
	return nil
}

func (p *pipeline) test(ctx context.Context) error {
	p.transition(StateTesting)
	set, err := p.resolver.Tests()
	if err != nil {
		return err
	}
	if len(set) == 0 {
		p.obs.Skipped(invoke.StageTest, "no test sources")
		return nil
	}
	if _, err := p.exec(ctx, p.composer.TestCompile(set)); err != nil {
		p.transition(StateCompileFailed)
		return err
	}
	cfg := p.r.Config
	names := source.TestClassNames(set, cfg.Tests.Root, cfg.SourceExtension, p.r.Platform)
	_, err = p.exec(ctx, p.composer.Test(names))
	return err
}

func (p *pipeline) doc(ctx context.Context) error {
	p.transition(StateDocumenting)
	set, err := p.resolver.Full()
	if err != nil {
		return err
	}
	_, err = p.exec(ctx, p.composer.Doc(set))
	return err
}

// Build compiles target and syncs assets. With tests enabled the test
// stage follows; with DocAfterBuild documentation is generated last.
func (r *Runner) Build(ctx context.Context, target source.Target) (*Report, error) {
	p := r.begin(target)
	if err := p.resolve(); err != nil {
		return p.finish(err)
	}
	if err := p.compile(ctx, target); err != nil {
		return p.finish(err)
	}
	if r.Config.Tests.Enabled {
		if err := p.test(ctx); err != nil {
			return p.finish(err)
		}
	}
	if r.DocAfterBuild {
		if err := p.doc(ctx); err != nil {
			return p.finish(err)
		}
	}
	return p.finish(nil)
}

// Run builds target and launches it. A full target launches the
// configured main class; a single target launches itself.
func (r *Runner) Run(ctx context.Context, target source.Target) (*Report, error) {
	p := r.begin(target)
	entry := target.Qualifier
	if target.IsFull() {
		entry = r.Config.Main
	}
	if entry == "" {
		p.transition(StateResolving)
		return p.finish(builderr.Config("run", "no target given and no 'main' configured in %s", config.FileName))
	}
	if err := p.resolve(); err != nil {
		return p.finish(err)
	}
	if err := p.compile(ctx, target); err != nil {
		return p.finish(err)
	}
	p.transition(StateRunning)
	if _, err := p.exec(ctx, p.composer.Run(entry)); err != nil {
		return p.finish(err)
	}
	return p.finish(nil)
}

// Test runs a full build followed by the test stage.
func (r *Runner) Test(ctx context.Context) (*Report, error) {
	p := r.begin(source.Full)
	if err := p.resolve(); err != nil {
		return p.finish(err)
	}
	if err := p.compile(ctx, source.Full); err != nil {
		return p.finish(err)
	}
	if err := p.test(ctx); err != nil {
		return p.finish(err)
	}
	return p.finish(nil)
}

// Doc generates documentation for the full source set without compiling.
func (r *Runner) Doc(ctx context.Context) (*Report, error) {
	p := r.begin(source.Full)
	if err := p.resolve(); err != nil {
		return p.finish(err)
	}
	if err := p.doc(ctx); err != nil {
		return p.finish(err)
	}
	return p.finish(nil)
}

// DryRunPrint writes the plan header for --dry-run.
func (r *Runner) DryRunPrint(w io.Writer, command string, target source.Target) {
	fmt.Fprintf(w, "\nDry run: %s %s (root %s)\n\n", command, target, r.Root)
}
