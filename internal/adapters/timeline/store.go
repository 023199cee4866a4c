// Package timeline persists recorded scenario timelines on disk.
package timeline

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TimelineStore = (*Store)(nil)

// Store implements ports.TimelineStore with one JSON file per scenario.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the timeline recorded for scenario under root.
// It returns nil without error when nothing was recorded.
func (s *Store) Get(root, scenario string) (*domain.Timeline, error) {
	filename := s.filename(root, scenario)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "scenario", scenario)
	}

	var timeline domain.Timeline
	if err := json.Unmarshal(data, &timeline); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "scenario", scenario)
	}

	return &timeline, nil
}

// Put stores timeline under root, replacing any previous recording.
func (s *Store) Put(root string, timeline *domain.Timeline) error {
	data, err := json.MarshalIndent(timeline, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.filename(root, timeline.Scenario)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "scenario", timeline.Scenario)
	}

	return nil
}

func (s *Store) filename(root, scenario string) string {
	key := strconv.FormatUint(xxhash.Sum64String(scenario), 16)
	return filepath.Join(root, domain.DefaultStorePath(), key+".json")
}
