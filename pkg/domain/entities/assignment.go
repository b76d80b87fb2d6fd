package entities

import (
	"sort"
	"time"
)

// LocationMap is the persisted identity-to-slot assignment artifact. It is
// extend-only: re-running allocation may add assignments but existing entries
// keep their slots forever, so printed drawer labels stay valid.
type LocationMap struct {
	Version     int                      `json:"version"`
	UpdatedAt   time.Time                `json:"updated_at"`
	Assignments map[string][]StorageSlot `json:"assignments"`
}

// NewLocationMap creates an empty location map
func NewLocationMap() *LocationMap {
	return &LocationMap{
		Version:     0,
		Assignments: make(map[string][]StorageSlot),
	}
}

// Primary returns the primary (first) slot for an identity key
func (m *LocationMap) Primary(key string) (StorageSlot, bool) {
	slots, ok := m.Assignments[key]
	if !ok || len(slots) == 0 {
		return StorageSlot{}, false
	}
	return slots[0], true
}

// Assign appends a slot assignment for an identity key. The first slot
// assigned to a key becomes its primary location.
func (m *LocationMap) Assign(key string, slot StorageSlot) {
	m.Assignments[key] = append(m.Assignments[key], slot)
}

// Has reports whether an identity key already holds an assignment
func (m *LocationMap) Has(key string) bool {
	return len(m.Assignments[key]) > 0
}

// Size returns the number of assigned identities
func (m *LocationMap) Size() int {
	return len(m.Assignments)
}

// DrawerConsumed reports whether any assignment references the given drawer.
// A consumed drawer is never handed out again, even with free compartments.
func (m *LocationMap) DrawerConsumed(unit, drawer string) bool {
	for _, slots := range m.Assignments {
		for _, slot := range slots {
			if slot.Unit == unit && slot.Drawer == drawer {
				return true
			}
		}
	}
	return false
}

// SortedKeys returns the assigned identity keys in deterministic order
func (m *LocationMap) SortedKeys() []string {
	keys := make([]string, 0, len(m.Assignments))
	for key := range m.Assignments {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the map
func (m *LocationMap) Clone() *LocationMap {
	clone := &LocationMap{
		Version:     m.Version,
		UpdatedAt:   m.UpdatedAt,
		Assignments: make(map[string][]StorageSlot, len(m.Assignments)),
	}
	for key, slots := range m.Assignments {
		copied := make([]StorageSlot, len(slots))
		copy(copied, slots)
		clone.Assignments[key] = copied
	}
	return clone
}
