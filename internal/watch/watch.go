// Package watch rebuilds a project whenever its source tree changes.
//
// Events are debounced: a burst of writes (an editor saving several files,
// a checkout) produces a single rebuild once the tree has been quiet for
// the debounce period. The rebuild runs on the event loop goroutine, so
// at most one build is ever in flight; events arriving during a build are
// coalesced into the next one.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/jorge-barreto/jbuild/internal/logfields"
)

// DefaultDebounce is used when Watcher.Debounce is not set.
const DefaultDebounce = 300 * time.Millisecond

var defaultIgnores = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
}

// Watcher watches Dir recursively and calls OnChange with the changed
// paths, relative to Dir, after each debounced burst.
type Watcher struct {
	Dir      string
	Patterns []string // doublestar patterns relative to Dir; empty matches all
	Debounce time.Duration
	OnChange func(ctx context.Context, changed []string) error
	Logger   *slog.Logger

	fsw *fsnotify.Watcher
}

// Run blocks until ctx is cancelled. OnChange errors are logged and
// watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	for _, p := range w.Patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("watch: invalid pattern %q", p)
		}
	}
	if w.Debounce <= 0 {
		w.Debounce = DefaultDebounce
	}
	if w.Logger == nil {
		w.Logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fsw.Close()
	w.fsw = fsw

	if err := w.addTree(w.Dir); err != nil {
		return err
	}

	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watch: event channel closed")
			}
			rel, err := filepath.Rel(w.Dir, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			rel = filepath.ToSlash(rel)
			if w.ignored(rel) {
				continue
			}
			// New directories are watched before pattern filtering so
			// files created inside them are seen.
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := w.addTree(evt.Name); err != nil {
						w.Logger.Warn("watch: add directory failed", logfields.Path(evt.Name), logfields.Error(err))
					}
					continue
				}
			}
			if !w.matches(rel) {
				continue
			}
			pending[rel] = struct{}{}
			timer.Reset(w.Debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)

			w.Logger.Debug("watch: change detected", logfields.Count(len(changed)))
			if w.OnChange == nil {
				continue
			}
			if err := w.OnChange(ctx, changed); err != nil {
				w.Logger.Warn("watch: rebuild failed", logfields.Error(err))
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: error channel closed")
			}
			w.Logger.Warn("watch: fsnotify error", logfields.Error(err))
		}
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.Logger.Debug("watch: skipping path", logfields.Path(path), logfields.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(w.Dir, path); err == nil && rel != "." && w.ignored(filepath.ToSlash(rel)+"/") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(rel string) bool {
	for _, pat := range defaultIgnores {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) matches(rel string) bool {
	if len(w.Patterns) == 0 {
		return true
	}
	for _, pat := range w.Patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// Patterns returns the watch patterns for a source tree: every file with
// the source extension or one of the asset extensions.
func Patterns(exts ...string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		if e != "" {
			out = append(out, "**/*"+e)
		}
	}
	return out
}
