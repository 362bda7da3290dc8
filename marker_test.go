package utfall

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/utfall/domain/model"
)

func TestMarkerStore(t *testing.T) {
	t.Parallel()

	t.Run("missing file reads as absent", func(t *testing.T) {
		t.Parallel()

		store := NewMarkerStore(filepath.Join(t.TempDir(), markerFileName))
		marker, err := store.Read()
		require.NoError(t, err)
		assert.True(t, marker.IsZero())
	})

	t.Run("write then read", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := NewMarkerStore(filepath.Join(dir, markerFileName))
		want := model.NewFreshnessMarker("Mon, 30 Jun 2025 01:00:00 GMT")

		require.NoError(t, store.Write(want))
		got, err := store.Read()
		require.NoError(t, err)
		assert.True(t, want.Equal(got))

		raw, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.Equal(t, "Mon, 30 Jun 2025 01:00:00 GMT", string(raw), "marker is stored verbatim")
		assert.Equal(t, []string{markerFileName}, dirEntries(t, dir))
	})

	t.Run("trailing newline is ignored", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), markerFileName)
		require.NoError(t, os.WriteFile(path, []byte("Mon, 30 Jun 2025 01:00:00 GMT\n"), 0o600))

		got, err := NewMarkerStore(path).Read()
		require.NoError(t, err)
		assert.Equal(t, "Mon, 30 Jun 2025 01:00:00 GMT", got.String())
	})

	t.Run("overwrite", func(t *testing.T) {
		t.Parallel()

		store := NewMarkerStore(filepath.Join(t.TempDir(), markerFileName))
		require.NoError(t, store.Write(model.NewFreshnessMarker("A")))
		require.NoError(t, store.Write(model.NewFreshnessMarker("B")))

		got, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, "B", got.String())
	})

	t.Run("unreadable marker is an error", func(t *testing.T) {
		t.Parallel()

		// A directory in place of the marker file cannot be read
		path := filepath.Join(t.TempDir(), markerFileName)
		require.NoError(t, os.Mkdir(path, 0o750))

		_, err := NewMarkerStore(path).Read()
		assert.Error(t, err)
	})
}
