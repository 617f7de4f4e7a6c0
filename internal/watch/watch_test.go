package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "countries.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("Chad\n"), 0o644))

	ctx, cancel := context.WithCancel(t.Context())
	msgs := make(chan ReloadMsg, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(msg ReloadMsg) { msgs <- msg })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("ignored\n"), 0o644))
	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte("Chad\nChile\n"), 0o644))
	}

	select {
	case msg := <-msgs:
		require.Equal(t, path, msg.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing the data file")
	}

	// The burst of writes was coalesced.
	time.Sleep(3 * Debounce)
	require.Empty(t, msgs)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	t.Parallel()

	err := Watch(t.Context(), filepath.Join(t.TempDir(), "missing", "data.txt"), func(ReloadMsg) {})
	require.Error(t, err)
}

func TestWatchErrorNamesGivenPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join("testdata-missing", "data.txt")
	err := Watch(t.Context(), path, func(ReloadMsg) {})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to watch "+path+":")
}
