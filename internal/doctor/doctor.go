// Package doctor checks that a project and its toolchain are ready to build
// without spawning any build process.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jorge-barreto/jbuild/internal/builderr"
	"github.com/jorge-barreto/jbuild/internal/config"
	"github.com/jorge-barreto/jbuild/internal/dispatch"
	"github.com/jorge-barreto/jbuild/internal/invoke"
	"github.com/jorge-barreto/jbuild/internal/platform"
	"github.com/jorge-barreto/jbuild/internal/ux"
)

// Check is the outcome of one diagnostic.
type Check struct {
	Name   string
	Detail string
	Err    error
}

// OK reports whether the check passed.
func (c Check) OK() bool { return c.Err == nil }

// Env is what the doctor inspects.
type Env struct {
	Root     string
	Config   *config.Config
	LoadErr  error // error from loading the config file, if any
	Platform platform.Platform
	Getenv   func(string) string
	LookPath func(string) (string, error)
}

// Checks runs every diagnostic in order. Later checks still run when
// earlier ones fail, so one invocation reports every problem.
func Checks(env Env) []Check {
	lookPath := env.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var checks []Check
	cfg := env.Config

	cfgCheck := Check{Name: "config", Detail: filepath.Join(env.Root, config.FileName)}
	switch {
	case env.LoadErr != nil:
		cfgCheck.Err = env.LoadErr
	case cfg == nil:
		cfgCheck.Err = builderr.Config("doctor", "no configuration loaded")
	default:
		if err := config.Validate(cfg); err != nil {
			cfgCheck.Err = &builderr.Error{Kind: builderr.KindConfig, Op: "doctor", Err: err}
		}
	}
	checks = append(checks, cfgCheck)
	if cfg == nil {
		return checks
	}

	srcDir := filepath.Join(env.Root, cfg.SourceRoot)
	srcCheck := Check{Name: "source root", Detail: srcDir}
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		srcCheck.Err = builderr.Config("doctor", "source root %s does not exist", cfg.SourceRoot)
	}
	checks = append(checks, srcCheck)

	for _, tool := range dispatch.RequiredTools(cfg) {
		c := Check{Name: "tool " + tool}
		if p, err := lookPath(tool); err != nil {
			c.Err = builderr.ToolNotFound("doctor", tool, err)
		} else {
			c.Detail = p
		}
		checks = append(checks, c)
	}

	libCheck := Check{Name: "runtime library"}
	if mp, err := invoke.ProbeModulePath(cfg, env.Root, env.Platform, env.Getenv); err != nil {
		libCheck.Err = err
	} else if mp == "" {
		libCheck.Detail = "not required"
	} else {
		libCheck.Detail = mp
	}
	checks = append(checks, libCheck)

	return checks
}

// Report prints checks to w and returns the first failure, if any.
func Report(w io.Writer, checks []Check) error {
	var failed []error
	for _, c := range checks {
		if c.OK() {
			fmt.Fprintf(w, "  %s✓%s %s", ux.Green, ux.Reset, c.Name)
			if c.Detail != "" {
				fmt.Fprintf(w, " %s(%s)%s", ux.Dim, c.Detail, ux.Reset)
			}
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintf(w, "  %s✗ %s: %v%s\n", ux.Red, c.Name, c.Err, ux.Reset)
		failed = append(failed, c.Err)
	}
	if len(failed) == 0 {
		fmt.Fprintf(w, "\n%sAll checks passed.%s\n", ux.Green, ux.Reset)
		return nil
	}
	fmt.Fprintf(w, "\n%s%d check(s) failed.%s\n", ux.Red, len(failed), ux.Reset)
	return errors.Join(failed...)
}
