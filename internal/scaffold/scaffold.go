package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/jbuild/internal/config"
	"github.com/jorge-barreto/jbuild/internal/ux"
)

var configTemplate = `name: "%s"
source-root: src
source-pattern: "src/**/*.java"
output-dir: class
doc-dir: doc
encoding: UTF-8
main: app.Main

# Enum-like declarations compiled ahead of everything else.
declarations: []

# Extra classpath entries (jars, directories).
classpath: []

# Uncomment for JavaFX or any other modular runtime library.
# runtime-library:
#   env: PATH_TO_FX
#   modules: [javafx.controls, javafx.fxml]
#   paths:
#     linux: /usr/share/openjfx/lib

resources:
  dir: resources
  extensions: [.fxml, .css]

tests:
  enabled: false
  root: test
  pattern: "test/**/*.java"
`

var mainTemplate = `package app;

public class Main {
    public static void main(String[] args) {
        System.out.println("Hello from %s");
    }
}
`

// Init writes a starter jbuild.yaml into targetDir, plus a sample main
// class when the source root is empty. It never overwrites an existing
// config.
func Init(targetDir string, out io.Writer) error {
	cfgPath := filepath.Join(targetDir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, targetDir)
	}

	name := filepath.Base(targetDir)
	if err := os.WriteFile(cfgPath, []byte(fmt.Sprintf(configTemplate, name)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.FileName, err)
	}
	created := []string{config.FileName}

	srcDir := filepath.Join(targetDir, "src")
	if empty(srcDir) {
		mainPath := filepath.Join(srcDir, "app", "Main.java")
		if err := os.MkdirAll(filepath.Dir(mainPath), 0755); err != nil {
			return fmt.Errorf("creating src/app: %w", err)
		}
		if err := os.WriteFile(mainPath, []byte(fmt.Sprintf(mainTemplate, name)), 0644); err != nil {
			return fmt.Errorf("writing Main.java: %w", err)
		}
		created = append(created, filepath.Join("src", "app", "Main.java"))
	}

	fmt.Fprintf(out, "\n%s%s✓ Initialized %s%s\n\n", ux.Bold, ux.Green, name, ux.Reset)
	fmt.Fprintf(out, "  Created:\n")
	for _, c := range created {
		fmt.Fprintf(out, "    %s%s%s\n", ux.Cyan, c, ux.Reset)
	}
	fmt.Fprintf(out, "\n  Next steps:\n")
	fmt.Fprintf(out, "    1. Edit %s%s%s to match your layout\n", ux.Cyan, config.FileName, ux.Reset)
	fmt.Fprintf(out, "    2. Run %sjbuild doctor%s to check the toolchain\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(out, "    3. Run %sjbuild run%s\n\n", ux.Cyan, ux.Reset)
	return nil
}

// empty reports whether dir is missing or has no entries.
func empty(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err != nil || len(entries) == 0
}
