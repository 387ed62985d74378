package dispatch

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/jorge-barreto/jbuild/internal/builderr"
	"github.com/jorge-barreto/jbuild/internal/config"
)

// RequiredTools returns the executables a pipeline run may spawn.
func RequiredTools(cfg *config.Config) []string {
	needed := map[string]bool{
		cfg.Tools.Compiler: true,
		cfg.Tools.Launcher: true,
		cfg.Tools.Doc:      true,
	}
	tools := make([]string, 0, len(needed))
	for t := range needed {
		tools = append(tools, t)
	}
	sort.Strings(tools)
	return tools
}

// Preflight checks that all given binaries are available on PATH.
func Preflight(tools []string) error {
	var missing []string
	for _, bin := range tools {
		if _, err := exec.LookPath(bin); err != nil {
			missing = append(missing, bin)
		}
	}

	if len(missing) > 0 {
		return builderr.ToolNotFound("preflight", strings.Join(missing, ", "),
			fmt.Errorf("required binaries not found in PATH"))
	}
	return nil
}
