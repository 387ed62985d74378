package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var qualifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

func applyDefaults(cfg *Config) {
	if cfg.SourceRoot == "" {
		cfg.SourceRoot = "src"
	}
	if cfg.SourceExtension == "" {
		cfg.SourceExtension = ".java"
	}
	if cfg.SourcePattern == "" {
		cfg.SourcePattern = cfg.SourceRoot + "/**/*" + cfg.SourceExtension
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "class"
	}
	if cfg.DocDir == "" {
		cfg.DocDir = "doc"
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "UTF-8"
	}
	if cfg.Resources.Dir == "" {
		cfg.Resources.Dir = "resources"
	}
	if cfg.Resources.Extensions == nil {
		cfg.Resources.Extensions = []string{".fxml", ".css"}
	}
	if cfg.Companion.ViewPackage == "" {
		cfg.Companion.ViewPackage = "view"
	}
	if cfg.Companion.ControllerPackage == "" {
		cfg.Companion.ControllerPackage = "controller"
	}
	if cfg.Companion.Suffix == "" {
		cfg.Companion.Suffix = "Controller"
	}
	if cfg.Tests.Root == "" {
		cfg.Tests.Root = "test"
	}
	if cfg.Tests.Pattern == "" {
		cfg.Tests.Pattern = cfg.Tests.Root + "/**/*" + cfg.SourceExtension
	}
	if cfg.Tests.Runner == "" {
		cfg.Tests.Runner = "org.junit.runner.JUnitCore"
	}
	if cfg.Tools.Compiler == "" {
		cfg.Tools.Compiler = "javac"
	}
	if cfg.Tools.Launcher == "" {
		cfg.Tools.Launcher = "java"
	}
	if cfg.Tools.Doc == "" {
		cfg.Tools.Doc = "javadoc"
	}
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	applyDefaults(cfg)

	if !strings.HasPrefix(cfg.SourceExtension, ".") {
		return fmt.Errorf("config: 'source-extension' must start with a dot, got %q", cfg.SourceExtension)
	}
	if !doublestar.ValidatePattern(cfg.SourcePattern) {
		return fmt.Errorf("config: invalid source-pattern %q", cfg.SourcePattern)
	}
	if !doublestar.ValidatePattern(cfg.Tests.Pattern) {
		return fmt.Errorf("config: invalid tests.pattern %q", cfg.Tests.Pattern)
	}

	if cfg.Main != "" && !qualifierRe.MatchString(cfg.Main) {
		return fmt.Errorf("config: 'main' %q is not a qualified class name", cfg.Main)
	}
	if !qualifierRe.MatchString(cfg.Tests.Runner) {
		return fmt.Errorf("config: tests.runner %q is not a qualified class name", cfg.Tests.Runner)
	}

	seen := make(map[string]bool)
	for _, d := range cfg.Declarations {
		if !qualifierRe.MatchString(d) {
			return fmt.Errorf("config: declaration %q is not a qualified class name", d)
		}
		if seen[d] {
			return fmt.Errorf("config: duplicate declaration %q", d)
		}
		seen[d] = true
	}

	for _, cp := range cfg.Classpath {
		if strings.TrimSpace(cp) == "" {
			return fmt.Errorf("config: 'classpath' entries must be non-empty")
		}
	}

	for _, ext := range cfg.Resources.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("config: resource extension %q must start with a dot", ext)
		}
		if ext == cfg.SourceExtension {
			return fmt.Errorf("config: resource extension %q is the source extension", ext)
		}
	}
	if strings.ContainsAny(cfg.Resources.Dir, `/\`) {
		return fmt.Errorf("config: resources.dir %q must not contain path separators", cfg.Resources.Dir)
	}

	for _, m := range cfg.RuntimeLibrary.Modules {
		if !qualifierRe.MatchString(m) {
			return fmt.Errorf("config: runtime-library module %q is not a valid module name", m)
		}
	}
	if len(cfg.RuntimeLibrary.Modules) == 0 && (cfg.RuntimeLibrary.Env != "" || len(cfg.RuntimeLibrary.Paths) > 0) {
		return fmt.Errorf("config: runtime-library requires at least one module")
	}

	return nil
}

// ValidQualifier reports whether s is a dotted class or module name.
func ValidQualifier(s string) bool {
	return qualifierRe.MatchString(s)
}
