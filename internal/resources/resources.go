// Package resources copies companion assets (markup, stylesheets) from the
// source tree into a single flat directory of the compiled output.
package resources

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jorge-barreto/jbuild/internal/builderr"
)

// Copy records one asset copy, both paths relative to the project root.
type Copy struct {
	From string
	To   string
}

// Synchronizer copies assets below Root. Sources are never modified.
type Synchronizer struct {
	Root   string
	DryRun bool
	Out    io.Writer // dry-run listing, defaults to os.Stdout
}

// Sync copies every file under srcRoot whose extension is in exts into
// destDir, keyed by file name only. When two assets share a name the one
// copied last wins. Files already inside destDir are never sources. The
// first failed copy aborts the sync; files already copied are left in place.
func (s *Synchronizer) Sync(srcRoot, destDir string, exts []string) ([]Copy, error) {
	assets, err := s.discover(srcRoot, exts)
	if err != nil {
		return nil, err
	}
	assets = without(assets, destDir)
	if len(assets) == 0 {
		return nil, nil
	}

	if !s.DryRun {
		if err := os.MkdirAll(filepath.Join(s.Root, destDir), 0755); err != nil {
			return nil, builderr.ResourceCopy(destDir, err)
		}
	}

	copies := make([]Copy, 0, len(assets))
	for _, a := range assets {
		c := Copy{From: filepath.FromSlash(a), To: filepath.Join(destDir, path.Base(a))}
		if s.DryRun {
			s.printf("  [sync] %s -> %s\n", c.From, c.To)
		} else if err := copyFile(filepath.Join(s.Root, c.From), filepath.Join(s.Root, c.To)); err != nil {
			return copies, builderr.ResourceCopy(c.From, err)
		}
		copies = append(copies, c)
	}
	return copies, nil
}

func (s *Synchronizer) discover(srcRoot string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		return nil, nil
	}
	pattern := path.Join(filepath.ToSlash(srcRoot), "**", "*"+alternatives(exts))
	matches, err := doublestar.Glob(os.DirFS(s.Root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, builderr.Config("sync", "invalid asset pattern %q: %v", pattern, err)
	}
	return matches, nil
}

// without drops assets already inside destDir, which happens when the
// output tree lives below the source root.
func without(assets []string, destDir string) []string {
	prefix := path.Clean(filepath.ToSlash(destDir)) + "/"
	kept := assets[:0]
	for _, a := range assets {
		if !strings.HasPrefix(a, prefix) {
			kept = append(kept, a)
		}
	}
	return kept
}

func alternatives(exts []string) string {
	if len(exts) == 1 {
		return exts[0]
	}
	return "{" + strings.Join(exts, ",") + "}"
}

func (s *Synchronizer) printf(format string, args ...any) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
