package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jorge-barreto/jbuild/internal/builderr"
	"github.com/jorge-barreto/jbuild/internal/docs"
	"github.com/jorge-barreto/jbuild/internal/doctor"
	"github.com/jorge-barreto/jbuild/internal/platform"
	"github.com/jorge-barreto/jbuild/internal/runner"
	"github.com/jorge-barreto/jbuild/internal/scaffold"
	"github.com/jorge-barreto/jbuild/internal/source"
	"github.com/jorge-barreto/jbuild/internal/ux"
	"github.com/jorge-barreto/jbuild/internal/watch"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:        "jbuild",
		Usage:       "Build, run, test and document a Java project",
		Description: "Run 'jbuild docs' for documentation on configuration and the pipeline.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Verbose compiler diagnostics and debug logging"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the commands and asset copies without executing"},
		},
		Commands: []*cli.Command{
			buildCmd(),
			runCmd(),
			docCmd(),
			testCmd(),
			watchCmd(),
			initCmd(),
			doctorCmd(),
			docsCmd(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(builderr.ExitCode(err))
	}
}

// target reads the optional qualifier argument.
func target(cmd *cli.Command) source.Target {
	if q := cmd.Args().First(); q != "" {
		return source.Single(q)
	}
	return source.Full
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Compile sources and copy assets",
		ArgsUsage: "[pkg.ClassName]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "doc", Usage: "Generate documentation after a successful build"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			r := p.runner(cmd)
			r.DocAfterBuild = cmd.Bool("doc")
			if err := p.preflight(cmd, p.cfg.Tools.Compiler, docTool(r), testTool(r)); err != nil {
				return err
			}
			_, err = r.Build(ctx, target(cmd))
			return err
		},
	}
}

func runCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Build, then launch the main class or the given class",
		ArgsUsage: "[pkg.ClassName]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			if err := p.preflight(cmd, p.cfg.Tools.Compiler, p.cfg.Tools.Launcher); err != nil {
				return err
			}
			_, err = p.runner(cmd).Run(ctx, target(cmd))
			return err
		},
	}
}

func docCmd() *cli.Command {
	return &cli.Command{
		Name:  "doc",
		Usage: "Generate documentation for the full source set",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			if err := p.preflight(cmd, p.cfg.Tools.Doc); err != nil {
				return err
			}
			_, err = p.runner(cmd).Doc(ctx)
			return err
		},
	}
}

func testCmd() *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "Build, compile the tests and run them",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			if err := p.preflight(cmd, p.cfg.Tools.Compiler, p.cfg.Tools.Launcher); err != nil {
				return err
			}
			_, err = p.runner(cmd).Test(ctx)
			return err
		},
	}
}

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Rebuild whenever the source tree changes",
		ArgsUsage: "[pkg.ClassName]",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "debounce", Value: watch.DefaultDebounce, Usage: "Quiet period before rebuilding"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			r := p.runner(cmd)
			if err := p.preflight(cmd, p.cfg.Tools.Compiler, testTool(r)); err != nil {
				return err
			}
			t := target(cmd)

			// The first build's outcome does not stop the watch.
			_, _ = r.Build(ctx, t)

			exts := append([]string{p.cfg.SourceExtension}, p.cfg.Resources.Extensions...)
			w := &watch.Watcher{
				Dir:      p.path(p.cfg.SourceRoot),
				Patterns: watch.Patterns(exts...),
				Debounce: cmd.Duration("debounce"),
				Logger:   p.logger,
				OnChange: func(ctx context.Context, changed []string) error {
					_, err := r.Build(ctx, t)
					return err
				},
			}
			fmt.Fprintf(ux.Out, "\n%sWatching %s (Ctrl-C to stop)%s\n", ux.Dim, p.cfg.SourceRoot, ux.Reset)
			return w.Run(ctx)
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter jbuild.yaml in the current directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir, ux.Out)
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check the project layout and toolchain",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, loadErr := loadProject()
			env := doctor.Env{Platform: platform.Current(), LoadErr: loadErr}
			if p != nil {
				env.Root, env.Config = p.root, p.cfg
			} else if wd, err := os.Getwd(); err == nil {
				env.Root = wd
			}
			return doctor.Report(ux.Out, doctor.Checks(env))
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				docs.List(ux.Out)
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			docs.Render(ux.Out, t)
			return nil
		},
	}
}

func docTool(r *runner.Runner) string {
	if r.DocAfterBuild {
		return r.Config.Tools.Doc
	}
	return ""
}

func testTool(r *runner.Runner) string {
	if r.Config.Tests.Enabled {
		return r.Config.Tools.Launcher
	}
	return ""
}
