// Package memory provides in-memory repository implementations for tests
// and dry runs
package memory

import (
	"sync"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/repositories"
)

// LocationRepository holds the location map in memory. Load and Save copy
// the map, so callers never share state with the store.
type LocationRepository struct {
	mu  sync.Mutex
	cur *entities.LocationMap
}

var _ repositories.LocationMapRepository = (*LocationRepository)(nil)

// NewLocationRepository creates an empty in-memory location repository
func NewLocationRepository() *LocationRepository {
	return &LocationRepository{}
}

// Load returns a copy of the stored map, or an empty map if nothing was saved
func (r *LocationRepository) Load() (*entities.LocationMap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cur == nil {
		return entities.NewLocationMap(), nil
	}
	return r.cur.Clone(), nil
}

// Save stores a copy of the map
func (r *LocationRepository) Save(locationMap *entities.LocationMap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cur = locationMap.Clone()
	return nil
}
