package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	fired chan struct{}
	err   error
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan struct{}, 16)}
}

func (r *recorder) onChange(_ context.Context, changed []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	r.fired <- struct{}{}
	return r.err
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	w.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-errCh)
	})
	// Give the watcher time to register the tree.
	time.Sleep(100 * time.Millisecond)
}

func write(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, &Watcher{Dir: dir, Debounce: 150 * time.Millisecond, OnChange: rec.onChange})

	for _, name := range []string{"A.java", "B.java", "c.css"} {
		write(t, filepath.Join(dir, name))
		time.Sleep(10 * time.Millisecond)
	}
	rec.wait(t)
	time.Sleep(300 * time.Millisecond)

	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"A.java", "B.java", "c.css"}, calls[0])
}

func TestWatcher_FiltersByPattern(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, &Watcher{
		Dir:      dir,
		Patterns: Patterns(".java"),
		Debounce: 100 * time.Millisecond,
		OnChange: rec.onChange,
	})

	write(t, filepath.Join(dir, "notes.txt"))
	write(t, filepath.Join(dir, "Main.java"))
	rec.wait(t)

	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"Main.java"}, calls[0])
}

func TestWatcher_SeesNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, &Watcher{
		Dir:      dir,
		Patterns: Patterns(".java"),
		Debounce: 100 * time.Millisecond,
		OnChange: rec.onChange,
	})

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app"), 0755))
	time.Sleep(100 * time.Millisecond)
	write(t, filepath.Join(dir, "app", "Main.java"))
	rec.wait(t)

	calls := rec.snapshot()
	require.NotEmpty(t, calls)
	assert.Contains(t, calls[len(calls)-1], "app/Main.java")
}

func TestWatcher_ContinuesAfterFailedRebuild(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	rec.err = errors.New("compile failed")
	startWatcher(t, &Watcher{Dir: dir, Debounce: 100 * time.Millisecond, OnChange: rec.onChange})

	write(t, filepath.Join(dir, "A.java"))
	rec.wait(t)
	write(t, filepath.Join(dir, "B.java"))
	rec.wait(t)

	assert.Len(t, rec.snapshot(), 2)
}

func TestWatcher_InvalidPattern(t *testing.T) {
	w := &Watcher{Dir: t.TempDir(), Patterns: []string{"[abc"}}
	err := w.Run(context.Background())
	require.Error(t, err)
}

func TestPatterns(t *testing.T) {
	assert.Equal(t, []string{"**/*.java", "**/*.fxml"}, Patterns(".java", "", ".fxml"))
}
