package invoke

import (
	"os"
	"path/filepath"

	"github.com/jorge-barreto/jbuild/internal/builderr"
	"github.com/jorge-barreto/jbuild/internal/config"
	"github.com/jorge-barreto/jbuild/internal/platform"
)

// ProbeModulePath locates the runtime-library installation used as the
// module path. Candidates, in order: the configured environment variable,
// the explicit module-path setting, the per-OS default. Relative candidates
// are checked against root, where the tools run, and returned unchanged.
// A configured but missing library is a configuration error. getenv may be
// nil.
func ProbeModulePath(cfg *config.Config, root string, p platform.Platform, getenv func(string) string) (string, error) {
	lib := cfg.RuntimeLibrary
	if len(lib.Modules) == 0 && cfg.ModulePath == "" {
		return "", nil
	}
	if getenv == nil {
		getenv = os.Getenv
	}

	var candidate, from string
	switch {
	case lib.Env != "" && getenv(lib.Env) != "":
		candidate, from = getenv(lib.Env), "$"+lib.Env
	case cfg.ModulePath != "":
		candidate, from = cfg.ModulePath, "module-path"
	case lib.Paths[p.OS] != "":
		candidate, from = lib.Paths[p.OS], "runtime-library.paths."+p.OS
	default:
		return "", builderr.Config("probe", "no runtime library path configured for %s (set %s or runtime-library.paths.%s)", p.OS, envName(lib.Env), p.OS)
	}

	dir := candidate
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", builderr.Config("probe", "runtime library %s (from %s) not found", candidate, from)
	}
	return candidate, nil
}

func envName(env string) string {
	if env == "" {
		return "module-path"
	}
	return "$" + env
}
