// Package source resolves build targets and glob patterns into ordered
// lists of source files. Resolution always reads the filesystem afresh.
package source

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jorge-barreto/jbuild/internal/builderr"
	"github.com/jorge-barreto/jbuild/internal/config"
	"github.com/jorge-barreto/jbuild/internal/platform"
)

// Set is an ordered, duplicate-free list of source paths relative to the
// project root, using the platform path separator.
type Set []string

// Target selects what a build compiles: the whole tree or one class.
type Target struct {
	Qualifier string // empty for a full build
}

// Full is the whole-project target.
var Full = Target{}

// Single returns a target for one dotted class name.
func Single(qualifier string) Target {
	return Target{Qualifier: qualifier}
}

// IsFull reports whether t compiles the entire source tree.
func (t Target) IsFull() bool { return t.Qualifier == "" }

func (t Target) String() string {
	if t.IsFull() {
		return "(full)"
	}
	return t.Qualifier
}

// Resolver expands patterns and qualifiers below a project root.
type Resolver struct {
	Root     string
	Config   *config.Config
	Platform platform.Platform
}

// New returns a Resolver for the project at root.
func New(root string, cfg *config.Config, p platform.Platform) *Resolver {
	return &Resolver{Root: root, Config: cfg, Platform: p}
}

// Resolve expands pattern (slash-separated, relative to the project root)
// and prepends the declaration classes. An empty match is not an error.
func (r *Resolver) Resolve(pattern string, declarations []string) (Set, error) {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	if !doublestar.ValidatePattern(pattern) {
		return nil, builderr.Config("resolve", "invalid pattern %q", pattern)
	}

	var slashPaths []string
	for _, d := range declarations {
		p, err := r.qualifierPath(d)
		if err != nil {
			return nil, err
		}
		if !r.exists(p) {
			return nil, builderr.Config("resolve", "declaration %q: %s not found", d, p)
		}
		slashPaths = append(slashPaths, p)
	}

	matches, err := doublestar.Glob(os.DirFS(r.Root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, builderr.Config("resolve", "invalid pattern %q", pattern)
		}
		return nil, &builderr.Error{Kind: builderr.KindConfig, Op: "resolve", Path: pattern, Err: err}
	}
	slashPaths = append(slashPaths, matches...)

	return r.toSet(slashPaths), nil
}

// Full resolves the configured source pattern with declarations first.
func (r *Resolver) Full() (Set, error) {
	return r.Resolve(r.Config.SourcePattern, r.Config.Declarations)
}

// Tests resolves the test source subset.
func (r *Resolver) Tests() (Set, error) {
	return r.Resolve(r.Config.Tests.Pattern, nil)
}

// Single resolves one qualifier to its source file. View classes pull in
// their conventional controller when it exists.
func (r *Resolver) Single(qualifier string) (Set, error) {
	p, err := r.qualifierPath(qualifier)
	if err != nil {
		return nil, err
	}
	if !r.exists(p) {
		return nil, builderr.Config("resolve", "target %q: %s not found", qualifier, p)
	}
	paths := []string{p}
	if ctrl, ok := r.companion(qualifier); ok {
		cp, err := r.qualifierPath(ctrl)
		if err == nil && r.exists(cp) {
			paths = append(paths, cp)
		}
	}
	return r.toSet(paths), nil
}

// Target resolves t into a source set.
func (r *Resolver) Target(t Target) (Set, error) {
	if t.IsFull() {
		return r.Full()
	}
	return r.Single(t.Qualifier)
}

// QualifierPath maps a dotted class name to its source path under the
// source root, e.g. pkg.Main -> src/pkg/Main.java.
func (r *Resolver) QualifierPath(qualifier string) (string, error) {
	p, err := r.qualifierPath(qualifier)
	if err != nil {
		return "", err
	}
	return r.Platform.Path(p), nil
}

func (r *Resolver) qualifierPath(qualifier string) (string, error) {
	if !config.ValidQualifier(qualifier) {
		return "", builderr.Config("resolve", "%q is not a qualified class name", qualifier)
	}
	rel := strings.ReplaceAll(qualifier, ".", "/") + r.Config.SourceExtension
	return path.Join(filepath.ToSlash(r.Config.SourceRoot), rel), nil
}

// companion returns the controller qualifier for a view qualifier.
func (r *Resolver) companion(qualifier string) (string, bool) {
	c := r.Config.Companion
	parts := strings.Split(qualifier, ".")
	for i := len(parts) - 2; i >= 0; i-- {
		if parts[i] != c.ViewPackage {
			continue
		}
		out := make([]string, len(parts))
		copy(out, parts)
		out[i] = c.ControllerPackage
		out[len(out)-1] += c.Suffix
		return strings.Join(out, "."), true
	}
	return "", false
}

func (r *Resolver) exists(slashPath string) bool {
	info, err := os.Stat(filepath.Join(r.Root, filepath.FromSlash(slashPath)))
	return err == nil && !info.IsDir()
}

func (r *Resolver) toSet(slashPaths []string) Set {
	seen := make(map[string]bool, len(slashPaths))
	set := make(Set, 0, len(slashPaths))
	for _, p := range slashPaths {
		if seen[p] {
			continue
		}
		seen[p] = true
		set = append(set, r.Platform.Path(p))
	}
	return set
}

// TestClassNames derives dotted class names from test source paths below
// root, e.g. test/app/MainTest.java -> app.MainTest.
func TestClassNames(set Set, root, ext string, p platform.Platform) []string {
	root = path.Clean(strings.ReplaceAll(root, `\`, "/"))
	prefix := p.Path(root) + p.PathSeparator
	names := make([]string, 0, len(set))
	for _, sp := range set {
		rel := strings.TrimPrefix(sp, prefix)
		rel = strings.TrimSuffix(rel, ext)
		names = append(names, strings.ReplaceAll(rel, p.PathSeparator, "."))
	}
	return names
}
