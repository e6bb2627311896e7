package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsDebounce(t *testing.T) {
	w := New([]string{"/tmp/Bookmarks"}, 0)
	assert.Equal(t, DefaultDebounce, w.debounce)
}

func TestRelevantFiltersByPathAndOp(t *testing.T) {
	w := New([]string{"/profiles/Default/Bookmarks"}, time.Second)

	assert.True(t, w.relevant(fsnotify.Event{Name: "/profiles/Default/Bookmarks", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/profiles/Default/Bookmarks", Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/profiles/Default/Bookmarks.bak", Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/profiles/Default/Bookmarks", Op: fsnotify.Chmod}))
}

func TestWatchFiresOnceAfterBurst(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Bookmarks")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	w := New([]string{file}, 50*time.Millisecond)
	changed := make(chan string, 8)
	w.OnChange = func(path string) { changed <- path }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte(`{"n":1}`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case path := <-changed:
		assert.Equal(t, file, path)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}

	select {
	case <-changed:
		t.Fatal("burst should debounce to a single notification")
	case <-time.After(150 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchErrorsOnMissingDirectory(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "gone", "Bookmarks")}, time.Second)
	err := w.Watch(context.Background())
	assert.Error(t, err)
}
