package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/jbuild/internal/builderr"
	"github.com/jorge-barreto/jbuild/internal/config"
	"github.com/jorge-barreto/jbuild/internal/dispatch"
	"github.com/jorge-barreto/jbuild/internal/platform"
	"github.com/jorge-barreto/jbuild/internal/runner"
	"github.com/jorge-barreto/jbuild/internal/ux"
	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"
)

// project is a loaded jbuild project.
type project struct {
	root   string
	cfg    *config.Config
	logger *slog.Logger
}

// loadProject finds the project root from the working directory, loads
// its .env file and its configuration.
func loadProject() (*project, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return loadProjectFrom(wd)
}

func loadProjectFrom(dir string) (*project, error) {
	root := config.FindProjectRoot(dir)
	if err := loadDotEnv(root); err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, err
	}
	return &project{root: root, cfg: cfg}, nil
}

// loadDotEnv loads root/.env without overriding variables already set.
func loadDotEnv(root string) error {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return &builderr.Error{Kind: builderr.KindConfig, Op: "load", Path: path, Err: err}
	}
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (p *project) path(rel string) string {
	return filepath.Join(p.root, rel)
}

// runner wires a Runner from the global flags.
func (p *project) runner(cmd *cli.Command) *runner.Runner {
	verbose := cmd.Bool("verbose")
	dryRun := cmd.Bool("dry-run")
	if p.logger == nil {
		p.logger = newLogger(verbose)
	}

	r := &runner.Runner{
		Root:       p.root,
		Config:     p.cfg,
		Platform:   platform.Current(),
		Verbose:    verbose,
		DryRun:     dryRun,
		Dispatcher: &dispatch.DefaultDispatcher{},
		Observer:   &ux.Console{Verbose: verbose},
		Logger:     p.logger,
	}
	if dryRun {
		r.Dispatcher = &dispatch.DryRunDispatcher{Out: ux.Out}
		r.Observer = nil
		r.DryRunPrint(ux.Out, cmd.Name, target(cmd))
	}
	return r
}

// preflight checks the named tools unless this is a dry run. Empty names
// are skipped.
func (p *project) preflight(cmd *cli.Command, tools ...string) error {
	if cmd.Bool("dry-run") {
		return nil
	}
	var needed []string
	for _, t := range tools {
		if t != "" {
			needed = append(needed, t)
		}
	}
	return dispatch.Preflight(needed)
}
