package repositories

import "github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"

// LocationMapRepository provides access to the persisted location map
// artifact. Save must be all-or-nothing: a failed write leaves the previous
// snapshot intact.
type LocationMapRepository interface {
	Load() (*entities.LocationMap, error)
	Save(m *entities.LocationMap) error
}
