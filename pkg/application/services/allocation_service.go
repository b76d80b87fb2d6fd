package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/repositories"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/events"
)

// AllocationService groups component specs into drawer-sized chunks and
// extends the persisted location map. Assignments are append-only: an
// identity that already holds a slot keeps it, and a drawer consumed by any
// earlier run is never handed out again.
type AllocationService struct {
	topology  *entities.AllocationTopology
	locations repositories.LocationMapRepository
	events    *events.MemoryStore
	logger    *zap.Logger
}

// NewAllocationService creates a new allocation service
func NewAllocationService(
	topology *entities.AllocationTopology,
	locations repositories.LocationMapRepository,
	store *events.MemoryStore,
	logger *zap.Logger,
) *AllocationService {
	if topology == nil {
		topology = entities.DefaultTopology()
	}
	if store == nil {
		store = events.NewMemoryStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationService{
		topology:  topology,
		locations: locations,
		events:    store,
		logger:    logger,
	}
}

// AllocationResult is the outcome of one allocation run
type AllocationResult struct {
	RunID       string
	Map         *entities.LocationMap
	NewlyPlaced int
	Problems    []error
}

// stagedAssignment is a pending slot assignment held back until the whole
// category fits.
type stagedAssignment struct {
	key  string
	slot entities.StorageSlot
}

// Allocate places every unassigned spec into the next free drawer of its
// category range and persists the extended map. A category whose range runs
// out of drawers is skipped whole, with a CapacityError collected; other
// categories still allocate. The map is only saved when something changed.
func (s *AllocationService) Allocate(ctx context.Context, specs []entities.ComponentSpec) (*AllocationResult, error) {
	locationMap, err := s.locations.Load()
	if err != nil {
		return nil, fmt.Errorf("loading location map: %w", err)
	}

	runID := uuid.New().String()
	result := &AllocationResult{RunID: runID, Map: locationMap}

	unassigned := 0
	byCategory := make(map[entities.Category][]entities.ComponentSpec)
	for _, spec := range specs {
		if locationMap.Has(spec.Identity.Key()) {
			continue
		}
		byCategory[spec.Identity.Category] = append(byCategory[spec.Identity.Category], spec)
		unassigned++
	}

	s.events.Append(events.NewEvent(events.RunStarted, runID, events.RunStartedData{
		Specs:      len(specs),
		Unassigned: unassigned,
	}))

	for _, cat := range entities.AllCategories {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		pending := byCategory[cat]
		if len(pending) == 0 {
			continue
		}

		staged, err := s.allocateCategory(cat, pending, locationMap, runID)
		if err != nil {
			// The whole category is held back so a partial layout never
			// lands in the persisted map.
			result.Problems = append(result.Problems, err)
			s.logger.Warn("category skipped", zap.String("category", cat.String()), zap.Error(err))
			continue
		}
		for _, assignment := range staged {
			locationMap.Assign(assignment.key, assignment.slot)
		}
		result.NewlyPlaced += len(staged)
	}

	if result.NewlyPlaced > 0 {
		locationMap.Version++
		locationMap.UpdatedAt = time.Now().UTC()
		if err := s.locations.Save(locationMap); err != nil {
			return nil, fmt.Errorf("saving location map: %w", err)
		}
		s.events.Append(events.NewEvent(events.MapPersisted, runID, events.MapPersistedData{
			Version:        locationMap.Version,
			NewAssignments: result.NewlyPlaced,
		}))
	}

	s.logger.Info("allocation run complete",
		zap.String("run_id", runID),
		zap.Int("newly_placed", result.NewlyPlaced),
		zap.Int("problems", len(result.Problems)))

	return result, nil
}

// allocateCategory stages assignments for one category without touching the
// map. Groups never span a partition boundary, so a drawer holds components
// from one decade bucket or one subtype only.
func (s *AllocationService) allocateCategory(
	cat entities.Category,
	pending []entities.ComponentSpec,
	locationMap *entities.LocationMap,
	runID string,
) ([]stagedAssignment, error) {
	free := s.freeDrawers(cat, locationMap)
	partitions := partitionSpecs(cat, pending)

	needed := 0
	for _, partition := range partitions {
		// Every drawer in a category range shares one size class, so the
		// chunk size is fixed per category.
		needed += chunksNeeded(len(partition.specs), s.chunkSize(cat))
	}
	if needed > len(free) {
		s.events.Append(events.NewEvent(events.CategoryExhausted, runID, events.CategoryExhaustedData{
			Category:  cat.String(),
			Needed:    needed,
			Available: len(free),
		}))
		return nil, &entities.CapacityError{
			Category:  cat,
			Needed:    needed,
			Available: len(free),
		}
	}

	var staged []stagedAssignment
	next := 0
	for _, partition := range partitions {
		for start := 0; start < len(partition.specs); start += s.chunkSize(cat) {
			end := start + s.chunkSize(cat)
			if end > len(partition.specs) {
				end = len(partition.specs)
			}
			chunk := partition.specs[start:end]

			drawer := free[next]
			next++

			slots := drawer.Slots()
			keys := make([]string, 0, len(chunk))
			for i, spec := range chunk {
				staged = append(staged, stagedAssignment{
					key:  spec.Identity.Key(),
					slot: slots[i],
				})
				keys = append(keys, spec.Identity.Key())
			}
			s.events.Append(events.NewEvent(events.GroupAssigned, runID, events.GroupAssignedData{
				Category:   cat.String(),
				Partition:  partition.label,
				Unit:       drawer.Unit,
				Drawer:     drawer.Drawer,
				Identities: keys,
			}))
		}
	}
	return staged, nil
}

// freeDrawers returns the category's unconsumed drawers in range order.
// Consumption is sticky: a drawer referenced by any existing assignment is
// skipped even if compartments inside it are still empty.
func (s *AllocationService) freeDrawers(cat entities.Category, locationMap *entities.LocationMap) []entities.DrawerRef {
	var free []entities.DrawerRef
	for _, drawer := range s.topology.RangeFor(cat) {
		if locationMap.DrawerConsumed(drawer.Unit, drawer.Drawer) {
			continue
		}
		free = append(free, drawer)
	}
	return free
}

func (s *AllocationService) chunkSize(cat entities.Category) int {
	drawers := s.topology.RangeFor(cat)
	if len(drawers) == 0 {
		return 1
	}
	return drawers[0].Size.Compartments()
}

func chunksNeeded(count, size int) int {
	return (count + size - 1) / size
}

// partition is one run of specs that must not share a drawer with the next
type partition struct {
	label string
	specs []entities.ComponentSpec
}

// Resistor decade buckets, in ascending value order. A drawer never mixes
// two decades even when both have spare compartments.
var resistorDecades = []struct {
	label string
	upper float64 // exclusive, in ohms; 0 means unbounded
}{
	{"0.1-10", 10},
	{"10-100", 100},
	{"100-1K", 1000},
	{"1K-10K", 10_000},
	{"10K-100K", 100_000},
	{"100K-1M", 1_000_000},
	{"1M+", 0},
}

var capacitorSubtypeOrder = []string{"ceramic", "film", "electrolytic"}
var transistorSubtypeOrder = []string{"npn", "pnp", "jfet", "mosfet"}
var ledSizeOrder = []string{"3mm", "5mm"}

// DecadeBucket returns the resistor decade label for a value in ohms
func DecadeBucket(ohms float64) string {
	for _, decade := range resistorDecades {
		if decade.upper == 0 || ohms < decade.upper {
			return decade.label
		}
	}
	return resistorDecades[len(resistorDecades)-1].label
}

// partitionSpecs splits a category's specs into ordered partitions and sorts
// each partition ascending by magnitude then identity key. Resistors
// additionally break magnitude ties by descending priority then usage count.
// The full ordering is fixed so repeated runs over the same catalog produce
// byte-identical maps.
func partitionSpecs(cat entities.Category, specs []entities.ComponentSpec) []partition {
	var partitions []partition

	switch cat {
	case entities.Resistor:
		buckets := make(map[string][]entities.ComponentSpec)
		for _, spec := range specs {
			ohms, _ := spec.Numeric.Float64()
			label := DecadeBucket(ohms)
			buckets[label] = append(buckets[label], spec)
		}
		for _, decade := range resistorDecades {
			if len(buckets[decade.label]) > 0 {
				partitions = append(partitions, partition{label: decade.label, specs: buckets[decade.label]})
			}
		}

	case entities.Capacitor:
		partitions = partitionBySubtype(specs, capacitorSubtypeOrder)

	case entities.Transistor:
		partitions = partitionBySubtype(specs, transistorSubtypeOrder)

	case entities.LED:
		partitions = partitionBySubtype(specs, ledSizeOrder)

	default: // Diode, IC, Potentiometer
		partitions = []partition{{specs: specs}}
	}

	for i := range partitions {
		sortPartition(cat, partitions[i].specs)
	}
	return partitions
}

// partitionBySubtype groups specs into the given subtype order, with
// unrecognized subtypes trailing in a final partition.
func partitionBySubtype(specs []entities.ComponentSpec, order []string) []partition {
	buckets := make(map[string][]entities.ComponentSpec)
	var rest []entities.ComponentSpec
	known := make(map[string]bool, len(order))
	for _, subtype := range order {
		known[subtype] = true
	}
	for _, spec := range specs {
		if known[spec.Identity.Subtype] {
			buckets[spec.Identity.Subtype] = append(buckets[spec.Identity.Subtype], spec)
		} else {
			rest = append(rest, spec)
		}
	}

	var partitions []partition
	for _, subtype := range order {
		if len(buckets[subtype]) > 0 {
			partitions = append(partitions, partition{label: subtype, specs: buckets[subtype]})
		}
	}
	if len(rest) > 0 {
		partitions = append(partitions, partition{label: "other", specs: rest})
	}
	return partitions
}

// sortPartition orders one partition. Identifier-named categories (diodes,
// transistors, ICs) sort by identifier alone; resistor values that tie on
// magnitude fall back to priority and usage so the well-stocked decades lead.
func sortPartition(cat entities.Category, specs []entities.ComponentSpec) {
	sort.SliceStable(specs, func(i, j int) bool {
		a, b := specs[i], specs[j]
		if cmp := a.Numeric.Cmp(b.Numeric); cmp != 0 {
			return cmp < 0
		}
		if cat == entities.Resistor {
			if a.Priority != b.Priority {
				return a.Priority > b.Priority
			}
			if a.UsageCount != b.UsageCount {
				return a.UsageCount > b.UsageCount
			}
		}
		return a.Identity.Key() < b.Identity.Key()
	})
}
