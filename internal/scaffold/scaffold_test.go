package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/jbuild/internal/config"
)

func TestInit_CreatesFiles(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	if err := Init(dir, &out); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, path := range []string{
		config.FileName,
		filepath.Join("src", "app", "Main.java"),
	} {
		info, err := os.Stat(filepath.Join(dir, path))
		if err != nil {
			t.Fatalf("%s not created: %v", path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
	if !strings.Contains(out.String(), "jbuild doctor") {
		t.Errorf("missing next steps:\n%s", out.String())
	}
}

func TestInit_GeneratedConfigIsValid(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, &bytes.Buffer{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatalf("config.Load failed on generated config: %v", err)
	}
	if cfg.Name != filepath.Base(dir) {
		t.Errorf("name = %q, want %q", cfg.Name, filepath.Base(dir))
	}
	if cfg.Main != "app.Main" {
		t.Errorf("main = %q", cfg.Main)
	}
	if got := strings.Join(cfg.Resources.Extensions, ","); got != ".fxml,.css" {
		t.Errorf("resource extensions = %q", got)
	}
}

func TestInit_KeepsExistingSources(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "src", "pkg", "Thing.java")
	os.MkdirAll(filepath.Dir(existing), 0755)
	os.WriteFile(existing, []byte("class Thing {}"), 0644)

	if err := Init(dir, &bytes.Buffer{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "app", "Main.java")); !os.IsNotExist(err) {
		t.Fatalf("sample main should not be written into a populated source root")
	}
}

func TestInit_FailsIfConfigExists(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(cfgPath, []byte("name: keep\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Init(dir, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error when jbuild.yaml already exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected error containing 'already exists', got: %s", err)
	}
	data, _ := os.ReadFile(cfgPath)
	if string(data) != "name: keep\n" {
		t.Fatalf("existing config was modified: %q", data)
	}
}
