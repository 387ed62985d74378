package config

import (
	"os"
	"path/filepath"

	"github.com/jorge-barreto/jbuild/internal/builderr"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up from the working
// directory upwards.
const FileName = "jbuild.yaml"

type RuntimeLibrary struct {
	Env     string            `yaml:"env"`
	Modules []string          `yaml:"modules"`
	Paths   map[string]string `yaml:"paths"`
}

type Resources struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
}

// Companion describes how a view class maps to its controller class.
type Companion struct {
	ViewPackage       string `yaml:"view-package"`
	ControllerPackage string `yaml:"controller-package"`
	Suffix            string `yaml:"suffix"`
}

type Tests struct {
	Enabled bool   `yaml:"enabled"`
	Root    string `yaml:"root"`
	Pattern string `yaml:"pattern"`
	Runner  string `yaml:"runner"`
}

type Tools struct {
	Compiler string `yaml:"compiler"`
	Launcher string `yaml:"launcher"`
	Doc      string `yaml:"doc"`
}

// Config is the pipeline configuration for one project.
type Config struct {
	Name            string         `yaml:"name"`
	SourceRoot      string         `yaml:"source-root"`
	SourcePattern   string         `yaml:"source-pattern"`
	SourceExtension string         `yaml:"source-extension"`
	OutputDir       string         `yaml:"output-dir"`
	DocDir          string         `yaml:"doc-dir"`
	Encoding        string         `yaml:"encoding"`
	Main            string         `yaml:"main"`
	Declarations    []string       `yaml:"declarations"`
	Classpath       []string       `yaml:"classpath"`
	ModulePath      string         `yaml:"module-path"`
	RuntimeLibrary  RuntimeLibrary `yaml:"runtime-library"`
	Resources       Resources      `yaml:"resources"`
	Companion       Companion      `yaml:"companion"`
	Tests           Tests          `yaml:"tests"`
	Tools           Tools          `yaml:"tools"`
}

// Default returns the layout used when a project has no jbuild.yaml.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML config file and returns a validated Config.
// A missing file yields the defaults. Every failure is a configuration
// error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, configError(path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, configError(path, err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, configError(path, err)
	}
	return &cfg, nil
}

// FindProjectRoot walks up from dir looking for jbuild.yaml. When none is
// found, dir itself is the project root.
func FindProjectRoot(dir string) string {
	start := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// ResourceDir returns the flat asset destination inside the output tree.
func (c *Config) ResourceDir() string {
	return filepath.Join(c.OutputDir, c.Resources.Dir)
}

func configError(path string, err error) error {
	return &builderr.Error{Kind: builderr.KindConfig, Op: "load", Path: path, Err: err}
}
