package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, path, title string) {
	t.Helper()
	data := "products:\n  - title: " + title + "\n    price: 4€\n    category: boost\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestWatcher_Reloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	writeCatalogFile(t, path, "Pack Un")

	reloaded := make(chan *Catalog, 4)
	w, err := NewWatcher(path, func(c *Catalog) { reloaded <- c })
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	// Unrelated files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	// Broken content keeps the previous catalog.
	require.NoError(t, os.WriteFile(path, []byte("products: ["), 0o644))
	time.Sleep(3 * reloadDebounce)
	assert.Empty(t, reloaded)

	writeCatalogFile(t, path, "Pack Deux")

	select {
	case c := <-reloaded:
		_, err := c.Get("pack-deux")
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "catalog.yaml"), func(*Catalog) {})
	require.NoError(t, err)
	assert.Error(t, w.Start())
}
