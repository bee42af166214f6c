package tours

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dylan/spotlight/tour"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tours.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tours:\n  a:\n    - {id: one, title: One}\n"), 0o644))

	got := make(chan *Catalog, 4)
	w, err := NewWatcher(path, func(c *Catalog) { got <- c }, nil)
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// Unrelated files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("tours:\n  b:\n    - {id: two, title: Two}\n"), 0o644))

	select {
	case c := <-got:
		assert.Equal(t, []tour.Feature{"b"}, c.Features())
	case <-time.After(3 * time.Second):
		t.Fatal("no reload")
	}
}

func TestWatcherKeepsPreviousOnBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tours.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tours: {}\n"), 0o644))

	got := make(chan *Catalog, 4)
	w, err := NewWatcher(path, func(c *Catalog) { got <- c }, nil)
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("tours:\n  a:\n    - {title: no id}\n"), 0o644))
	select {
	case <-got:
		t.Fatal("broken catalog delivered")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStopsWithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tours.yaml")
	w, err := NewWatcher(path, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	<-w.doneCh
	w.Stop()
}
