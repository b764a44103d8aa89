package keymap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "user.yaml", yamlKeymap)
	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	r := newTestRegistry(t, "core.cursor_top", "core.redo")
	l := NewLoader()
	_, err = l.Apply(r, abs)
	require.NoError(t, err)

	results := make(chan ReloadResult, 8)
	w, err := NewWatcher(r, l,
		WithDebounce(10*time.Millisecond),
		WithReloadHandler(func(res ReloadResult) { results <- res }))
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(abs))

	writeFile(t, dir, "user.yaml", "name: user\nmode: normal\nbindings:\n  - id: user.z\n    keys: Z\n    action: core.redo\n")

	select {
	case res := <-results:
		require.NoError(t, res.Err)
		assert.Equal(t, abs, res.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
	assert.Eventually(t, func() bool {
		_, ok := r.Binding("user.z")
		return ok && len(r.Bindings("")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(abs))
	assert.Eventually(t, func() bool {
		return len(r.Bindings("")) == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcherRejectsUnknownFormat(t *testing.T) {
	w, err := NewWatcher(NewRegistry(), nil)
	require.NoError(t, err)
	defer w.Close()

	assert.ErrorIs(t, w.Watch(filepath.Join(t.TempDir(), "keys.txt")), ErrUnsupportedFormat)
}

func TestWatcherClosed(t *testing.T) {
	w, err := NewWatcher(NewRegistry(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.ErrorIs(t, w.Watch(filepath.Join(t.TempDir(), "keys.yaml")), ErrWatcherClosed)
}
