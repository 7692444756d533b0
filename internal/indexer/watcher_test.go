package indexer

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan struct{}, timeout time.Duration) bool {
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	w, err := NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	changed := make(chan struct{}, 10)
	require.NoError(t, w.Watch(path, func() { changed <- struct{}{} }))

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"Coin": "/items/coin"}`), 0644))

	assert.True(t, waitForCallback(changed, 2*time.Second), "expected callback for file change")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	w, err := NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	changed := make(chan struct{}, 10)
	require.NoError(t, w.Watch(path, func() { changed <- struct{}{} }))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))

	assert.False(t, waitForCallback(changed, 300*time.Millisecond), "unexpected callback for other file")
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	w, err := NewWatcher(150 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	var calls atomic.Int32
	require.NoError(t, w.Watch(path, func() { calls.Add(1) }))

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := NewWatcher(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher(0)
	require.NoError(t, err)
	defer w.Stop()
	err = w.Watch(filepath.Join(t.TempDir(), "nope", "items.json"), func() {})
	assert.Error(t, err)
}
