package services

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/services"
)

// LabelService derives printable drawer labels from the location map
type LabelService struct {
	logger *zap.Logger
}

// NewLabelService creates a new label service
func NewLabelService(logger *zap.Logger) *LabelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelService{logger: logger}
}

// BuildCells returns one label cell per assigned slot, ordered by physical
// walking order. Cell text is the bare component value; the category prefix
// goes on the combined drawer label instead.
func (s *LabelService) BuildCells(locationMap *entities.LocationMap) ([]entities.LabelCell, error) {
	type occupied struct {
		slot     entities.StorageSlot
		identity entities.Identity
	}
	var cells []occupied

	for _, key := range locationMap.SortedKeys() {
		identity, err := entities.ParseIdentityKey(key)
		if err != nil {
			return nil, err
		}
		for _, slot := range locationMap.Assignments[key] {
			cells = append(cells, occupied{slot: slot, identity: identity})
		}
	}

	sort.Slice(cells, func(i, j int) bool {
		return cells[i].slot.Less(cells[j].slot)
	})

	out := make([]entities.LabelCell, 0, len(cells))
	for _, cell := range cells {
		out = append(out, entities.LabelCell{
			Unit:        cell.slot.Unit,
			Drawer:      cell.slot.Drawer,
			Compartment: cell.slot.Compartment,
			Text:        cell.identity.Value,
		})
	}
	return out, nil
}

// BuildDrawerLabels collapses the cells of each drawer into one label line,
// e.g. "R: 100R  |  220R  |  470R  |  1K". The prefix comes from the first
// occupant's category and subtype.
func (s *LabelService) BuildDrawerLabels(locationMap *entities.LocationMap) ([]entities.DrawerLabel, error) {
	type drawerKey struct {
		unit   string
		drawer string
	}
	type cell struct {
		compartment int
		value       string
	}
	cells := make(map[drawerKey][]cell)
	prefixes := make(map[drawerKey]string)
	var order []drawerKey

	for _, key := range locationMap.SortedKeys() {
		identity, err := entities.ParseIdentityKey(key)
		if err != nil {
			return nil, err
		}
		for _, slot := range locationMap.Assignments[key] {
			dk := drawerKey{unit: slot.Unit, drawer: slot.Drawer}
			if _, seen := cells[dk]; !seen {
				order = append(order, dk)
				prefixes[dk] = services.LabelPrefix(identity.Category, identity.Subtype)
			}
			cells[dk] = append(cells[dk], cell{compartment: slot.Compartment, value: identity.Value})
		}
	}

	sort.Slice(order, func(i, j int) bool {
		a := entities.StorageSlot{Unit: order[i].unit, Drawer: order[i].drawer}
		b := entities.StorageSlot{Unit: order[j].unit, Drawer: order[j].drawer}
		return a.Less(b)
	})

	labels := make([]entities.DrawerLabel, 0, len(order))
	for _, dk := range order {
		// Values read left to right in compartment order
		drawerCells := cells[dk]
		sort.Slice(drawerCells, func(i, j int) bool {
			return drawerCells[i].compartment < drawerCells[j].compartment
		})
		values := make([]string, 0, len(drawerCells))
		for _, c := range drawerCells {
			values = append(values, c.value)
		}
		labels = append(labels, entities.DrawerLabel{
			Unit:   dk.unit,
			Drawer: dk.drawer,
			Text:   prefixes[dk] + " " + strings.Join(values, "  |  "),
		})
	}

	s.logger.Info("drawer labels built", zap.Int("drawers", len(labels)))
	return labels, nil
}
