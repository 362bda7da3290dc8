package utfall

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/nao1215/utfall/domain/model"
)

// MarkerStore persists the freshness marker of the last complete download.
type MarkerStore struct {
	path string
}

// NewMarkerStore creates a marker store backed by the file at path.
func NewMarkerStore(path string) *MarkerStore {
	return &MarkerStore{path: path}
}

// Path returns the marker file path.
func (s *MarkerStore) Path() string {
	return s.path
}

// Read returns the stored marker. A missing file yields the zero marker and no error.
func (s *MarkerStore) Read() (model.FreshnessMarker, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.FreshnessMarker{}, nil
		}
		return model.FreshnessMarker{}, fmt.Errorf("failed to read marker %s: %w", s.path, err)
	}
	return model.NewFreshnessMarker(string(b)), nil
}

// Write replaces the stored marker atomically.
func (s *MarkerStore) Write(m model.FreshnessMarker) error {
	return writeFileAtomic(s.path, func(w io.Writer) error {
		if _, err := io.WriteString(w, m.String()); err != nil {
			return fmt.Errorf("failed to write marker: %w", err)
		}
		return nil
	})
}
