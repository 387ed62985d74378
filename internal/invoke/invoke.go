// Package invoke composes the argument vectors for each toolchain stage.
//
// Every Composer method is a pure function of the Composer's fields and its
// arguments: the same inputs always produce byte-identical vectors. Flag
// order is fixed as classpath and module flags, then source arguments, then
// the verbosity flag, since some tools parse flags positionally.
package invoke

import (
	"strings"

	"github.com/jorge-barreto/jbuild/internal/config"
	"github.com/jorge-barreto/jbuild/internal/platform"
	"github.com/jorge-barreto/jbuild/internal/source"
)

// Stage names.
const (
	StageCompile     = "compile"
	StageRun         = "run"
	StageDoc         = "doc"
	StageTestCompile = "test-compile"
	StageTest        = "test"
)

// Verbosity flags. Exactly one is appended to every compile invocation.
const (
	VerboseFlag = "-Xdiags:verbose"
	QuietFlag   = "-Xdoclint:none"
)

// Invocation is one external tool call.
type Invocation struct {
	Stage     string
	Tool      string
	Args      []string
	OutputDir string
}

// CommandLine renders the invocation for display.
func (inv Invocation) CommandLine() string {
	return strings.Join(append([]string{inv.Tool}, inv.Args...), " ")
}

// Composer builds invocations for one pipeline run.
type Composer struct {
	Platform   platform.Platform
	Config     *config.Config
	ModulePath string // empty when no module path applies
	Verbose    bool
}

// Classpath returns the output directory followed by the configured
// classpath extras, joined with the platform list separator.
func (c *Composer) Classpath() string {
	entries := append([]string{c.Config.OutputDir}, c.Config.Classpath...)
	return c.Platform.JoinList(entries...)
}

// ModuleArgs returns the module-path flags, or nil without a module path.
func (c *Composer) ModuleArgs() []string {
	if c.ModulePath == "" {
		return nil
	}
	args := []string{"--module-path", c.Platform.Path(c.ModulePath)}
	if mods := c.Config.RuntimeLibrary.Modules; len(mods) > 0 {
		args = append(args, "--add-modules", strings.Join(mods, ","))
	}
	return args
}

func (c *Composer) verbosityFlag() string {
	if c.Verbose {
		return VerboseFlag
	}
	return QuietFlag
}

// Compile returns the compiler invocation for set. The source root is
// passed as -sourcepath so single-target builds can pull in dependencies.
func (c *Composer) Compile(set source.Set) Invocation {
	return c.compile(StageCompile, set, c.Classpath())
}

// TestCompile compiles the test subset against the main output.
func (c *Composer) TestCompile(set source.Set) Invocation {
	return c.compile(StageTestCompile, set, c.Classpath())
}

func (c *Composer) compile(stage string, set source.Set, classpath string) Invocation {
	out := c.Platform.Path(c.Config.OutputDir)
	args := []string{
		"-encoding", c.Config.Encoding,
		"-classpath", classpath,
		"-sourcepath", c.Platform.Path(c.Config.SourceRoot),
		"-d", out,
	}
	args = append(args, c.ModuleArgs()...)
	args = append(args, set...)
	args = append(args, c.verbosityFlag())
	return Invocation{Stage: stage, Tool: c.Config.Tools.Compiler, Args: args, OutputDir: out}
}

// Run returns the launcher invocation for entry, a dotted class name.
// entry is always the last argument.
func (c *Composer) Run(entry string) Invocation {
	args := []string{"-classpath", c.Classpath()}
	args = append(args, c.ModuleArgs()...)
	args = append(args, entry)
	return Invocation{Stage: StageRun, Tool: c.Config.Tools.Launcher, Args: args, OutputDir: c.Platform.Path(c.Config.OutputDir)}
}

// Doc returns the documentation generator invocation for set.
func (c *Composer) Doc(set source.Set) Invocation {
	out := c.Platform.Path(c.Config.DocDir)
	args := []string{
		"-d", out,
		"-charset", c.Config.Encoding,
		"-encoding", c.Config.Encoding,
		"-classpath", c.Classpath(),
	}
	args = append(args, c.ModuleArgs()...)
	args = append(args, "-author")
	args = append(args, set...)
	if !c.Verbose {
		args = append(args, "-quiet")
	}
	return Invocation{Stage: StageDoc, Tool: c.Config.Tools.Doc, Args: args, OutputDir: out}
}

// Test returns the test runner invocation for the given class names.
func (c *Composer) Test(classNames []string) Invocation {
	args := []string{"-classpath", c.Classpath()}
	args = append(args, c.ModuleArgs()...)
	args = append(args, c.Config.Tests.Runner)
	args = append(args, classNames...)
	return Invocation{Stage: StageTest, Tool: c.Config.Tools.Launcher, Args: args, OutputDir: c.Platform.Path(c.Config.OutputDir)}
}
