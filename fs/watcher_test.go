package fs_test

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/challengegit/chatbot/fs"
	"github.com/challengegit/chatbot/mock"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRelevant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{name: "create text file", ev: fsnotify.Event{Name: "/d/a.txt", Op: fsnotify.Create}, want: true},
		{name: "write text file", ev: fsnotify.Event{Name: "/d/a.txt", Op: fsnotify.Write}, want: true},
		{name: "remove text file", ev: fsnotify.Event{Name: "/d/a.txt", Op: fsnotify.Remove}, want: true},
		{name: "rename text file", ev: fsnotify.Event{Name: "/d/a.txt", Op: fsnotify.Rename}, want: true},
		{name: "chmod text file", ev: fsnotify.Event{Name: "/d/a.txt", Op: fsnotify.Chmod}, want: false},
		{name: "write markdown file", ev: fsnotify.Event{Name: "/d/a.md", Op: fsnotify.Write}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.IsRelevant(tt.ev))
		})
	}
}

func TestWatcher_InvalidatesCacheOnChange(t *testing.T) {
	t.Parallel()

	// Given a watcher over a corpus directory
	dir := t.TempDir()
	var invalidations atomic.Int32
	cache := &mock.ContextCache{
		InvalidateFn: func() { invalidations.Add(1) },
	}
	w, err := fs.NewWatcher(dir, cache, fs.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	// When several text files are written in quick succession
	writeFile(t, dir, "a.txt", "alpha")
	writeFile(t, dir, "b.txt", "bravo")

	// Then the cache is invalidated once the changes settle
	assert.Eventually(t, func() bool { return invalidations.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresNonCorpusFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var invalidations atomic.Int32
	cache := &mock.ContextCache{
		InvalidateFn: func() { invalidations.Add(1) },
	}
	w, err := fs.NewWatcher(dir, cache, fs.WithDebounce(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	writeFile(t, dir, "notes.md", "ignored")

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, invalidations.Load())
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	t.Parallel()

	w, err := fs.NewWatcher(filepath.Join(t.TempDir(), "missing"), &mock.ContextCache{})
	require.NoError(t, err)
	defer w.Close()

	err = w.Start(context.Background())

	require.Error(t, err)
}
