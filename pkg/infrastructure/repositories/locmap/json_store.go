// Package locmap persists the location map as a JSON artifact on disk
package locmap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/repositories"
)

// JSONStore reads and writes the location map file. Saves go through a
// temp file and rename so a crash mid-write never leaves a torn artifact.
type JSONStore struct {
	path string
}

var _ repositories.LocationMapRepository = (*JSONStore)(nil)

// NewJSONStore creates a store backed by the given file path
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load reads the location map. A missing file yields an empty map, not an
// error; the first allocation run creates it.
func (s *JSONStore) Load() (*entities.LocationMap, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entities.NewLocationMap(), nil
		}
		return nil, fmt.Errorf("reading location map %s: %w", s.path, err)
	}

	locationMap := entities.NewLocationMap()
	if err := json.Unmarshal(data, locationMap); err != nil {
		return nil, fmt.Errorf("parsing location map %s: %w", s.path, err)
	}
	if locationMap.Assignments == nil {
		locationMap.Assignments = make(map[string][]entities.StorageSlot)
	}
	return locationMap, nil
}

// Save writes the location map atomically
func (s *JSONStore) Save(locationMap *entities.LocationMap) error {
	data, err := json.MarshalIndent(locationMap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding location map: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing location map: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing location map %s: %w", s.path, err)
	}
	return nil
}
