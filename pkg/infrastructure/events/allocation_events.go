package events

// Allocation run event types
const (
	RunStarted        = "allocation.run_started"
	GroupAssigned     = "allocation.group_assigned"
	CategoryExhausted = "allocation.category_exhausted"
	MapPersisted      = "allocation.map_persisted"
)

// RunStartedData describes the catalog an allocation run started from
type RunStartedData struct {
	Specs      int
	Unassigned int
}

// GroupAssignedData describes one chunk placed into a drawer. Partition is
// the decade bucket or subtype the chunk came from, empty for flat categories.
type GroupAssignedData struct {
	Category   string
	Partition  string
	Unit       string
	Drawer     string
	Identities []string
}

// CategoryExhaustedData describes a category whose drawer range ran out
type CategoryExhaustedData struct {
	Category  string
	Needed    int
	Available int
}

// MapPersistedData describes the persisted location map snapshot
type MapPersistedData struct {
	Version        int
	NewAssignments int
}
