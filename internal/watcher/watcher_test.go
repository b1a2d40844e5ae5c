package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Nomadcxx/animename/internal/torrent"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []FileEvent
}

func (h *recordingHandler) HandleFileEvent(event FileEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHandler) snapshot() []FileEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]FileEvent(nil), h.events...)
}

type memStore struct {
	mu       sync.Mutex
	torrents map[string]*torrent.Torrent
	err      error
}

func (s *memStore) UpsertTorrent(t *torrent.Torrent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.torrents == nil {
		s.torrents = map[string]*torrent.Torrent{}
	}
	s.torrents[t.Name] = t
	return nil
}

func (s *memStore) get(name string) *torrent.Torrent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.torrents[name]
}

func newTestWatcher(t *testing.T, h Handler, opts ...Option) *Watcher {
	t.Helper()
	w, err := NewWatcher(h, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w
}

func TestIsWatchedFile(t *testing.T) {
	w := newTestWatcher(t, &recordingHandler{})
	assert.True(t, w.IsWatchedFile("/dl/Show - 01.MKV"))
	assert.True(t, w.IsWatchedFile("/dl/Show - 01.torrent"))
	assert.False(t, w.IsWatchedFile("/dl/Show - 01.nfo"))
	assert.False(t, w.IsWatchedFile("/dl/noext"))

	custom := newTestWatcher(t, &recordingHandler{}, WithExtensions([]string{"nfo", " .SRT "}))
	assert.True(t, custom.IsWatchedFile("a.nfo"))
	assert.True(t, custom.IsWatchedFile("a.srt"))
	assert.False(t, custom.IsWatchedFile("a.mkv"))

	// an empty list keeps the defaults
	kept := newTestWatcher(t, &recordingHandler{}, WithExtensions(nil))
	assert.True(t, kept.IsWatchedFile("a.mkv"))
}

func TestHandleEvent_MapsOps(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want EventType
	}{
		{fsnotify.Create, EventCreate},
		{fsnotify.Write, EventWrite},
		{fsnotify.Rename, EventMove},
		{fsnotify.Remove, EventDelete},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			h := &recordingHandler{}
			w := newTestWatcher(t, h)
			require.NoError(t, w.handleEvent(fsnotify.Event{Name: "/dl/a.mkv", Op: tt.op}))
			assert.Equal(t, []FileEvent{{Type: tt.want, Path: "/dl/a.mkv"}}, h.snapshot())
		})
	}
}

func TestHandleEvent_SkipsUnwatched(t *testing.T) {
	h := &recordingHandler{}
	w := newTestWatcher(t, h)

	require.NoError(t, w.handleEvent(fsnotify.Event{Name: "/dl/a.txt", Op: fsnotify.Create}))
	require.NoError(t, w.handleEvent(fsnotify.Event{Name: "/dl/a.mkv", Op: fsnotify.Chmod}))
	assert.Empty(t, h.snapshot())
}

func TestIngestHandler(t *testing.T) {
	store := &memStore{}
	h := NewIngestHandler(store, nil)

	require.NoError(t, h.HandleFileEvent(FileEvent{Type: EventCreate, Path: "/dl/[GroupX] Show Name - 05 [1080p].mkv"}))
	got := store.get("[GroupX] Show Name - 05 [1080p]")
	require.NotNil(t, got)
	assert.Equal(t, "Show Name", got.Title)
	assert.Equal(t, "E05", got.Episode)

	require.NoError(t, h.HandleFileEvent(FileEvent{Type: EventDelete, Path: "/dl/Other - 01.mkv"}))
	assert.Nil(t, store.get("Other - 01"))

	store.err = errors.New("locked")
	assert.Error(t, h.Ingest("/dl/Third - 02.mkv"))
}

func TestWatcher_IngestsNewFiles(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "season")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".hidden"), 0755))

	store := &memStore{}
	w := newTestWatcher(t, NewIngestHandler(store, nil))
	require.NoError(t, w.Watch([]string{root}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	name := "Show.Name.S02E10.HEVC-GroupY"
	require.NoError(t, os.WriteFile(filepath.Join(sub, name+".mkv"), nil, 0644))

	require.Eventually(t, func() bool { return store.get(name) != nil }, 5*time.Second, 20*time.Millisecond)
	got := store.get(name)
	assert.Equal(t, "S02", got.Season)
	assert.Equal(t, "E10", got.Episode)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatch_MissingDir(t *testing.T) {
	w := newTestWatcher(t, &recordingHandler{})
	assert.Error(t, w.Watch([]string{filepath.Join(t.TempDir(), "missing")}))

	flat := newTestWatcher(t, &recordingHandler{}, WithRecursive(false))
	assert.Error(t, flat.Watch([]string{filepath.Join(t.TempDir(), "missing")}))
}
