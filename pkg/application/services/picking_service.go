package services

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/services"
)

// PickingService resolves a project BOM against the catalog and the location
// map into a slot-ordered picking sheet.
type PickingService struct {
	matcherConfig services.MatcherConfig
	logger        *zap.Logger
}

// NewPickingService creates a new picking service
func NewPickingService(matcherConfig services.MatcherConfig, logger *zap.Logger) *PickingService {
	if matcherConfig.Scorer == nil {
		matcherConfig = services.DefaultMatcherConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PickingService{matcherConfig: matcherConfig, logger: logger}
}

// GeneratePickList resolves every BOM line and groups the results by storage
// slot in physical walking order. Unmatched and unlocated lines stay on the
// sheet so nothing is silently dropped; they also land in the summary.
func (s *PickingService) GeneratePickList(
	project string,
	bom []entities.BOMLine,
	specs []entities.ComponentSpec,
	locations *entities.LocationMap,
) *entities.PickList {
	matcher := services.NewMatcher(specs, s.matcherConfig)
	stock := entities.SnapshotFromSpecs(specs)

	pickList := &entities.PickList{Project: project}
	summary := &pickList.Summary

	grouped := make(map[entities.StorageSlot][]entities.PickListEntry)
	var unlocated []entities.PickListEntry

	for _, line := range bom {
		summary.TotalLines++
		entry := entities.PickListEntry{
			Reference: line.Reference,
			Name:      line.Name,
			Required:  line.Quantity,
		}

		match, err := matcher.Match(line.Name)
		if err != nil {
			var unmatched *entities.UnmatchedError
			if errors.As(err, &unmatched) {
				s.logger.Debug("bom line unmatched",
					zap.String("name", line.Name),
					zap.Float64("best_score", unmatched.BestScore))
			}
			summary.Unmatched = append(summary.Unmatched, line.Name)
			unlocated = append(unlocated, entry)
			continue
		}

		identity := match.Identity
		entry.Identity = &identity
		key := identity.Key()

		entry.OnHand = stock[key]
		entry.Sufficient = entry.OnHand >= entry.Required
		if !entry.Sufficient {
			entry.Shortfall = entry.Required - entry.OnHand
			summary.Shortages = append(summary.Shortages, entities.ShortageLine{
				Name:      line.Name,
				Identity:  &identity,
				Shortfall: entry.Shortfall,
				OnHand:    entry.OnHand,
			})
		} else {
			summary.InStock++
		}

		slot, ok := locations.Primary(key)
		if !ok {
			summary.Unlocated = append(summary.Unlocated, line.Name)
			unlocated = append(unlocated, entry)
			continue
		}
		entry.Slot = &slot
		grouped[slot] = append(grouped[slot], entry)
	}

	slots := make([]entities.StorageSlot, 0, len(grouped))
	for slot := range grouped {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Less(slots[j])
	})

	for _, slot := range slots {
		slotCopy := slot
		pickList.Groups = append(pickList.Groups, entities.PickGroup{
			Slot:    &slotCopy,
			Entries: grouped[slot],
		})
	}
	summary.UniqueLocations = len(slots)

	if len(unlocated) > 0 {
		pickList.Groups = append(pickList.Groups, entities.PickGroup{Entries: unlocated})
	}

	s.logger.Info("pick list generated",
		zap.String("project", project),
		zap.Int("lines", summary.TotalLines),
		zap.Int("locations", summary.UniqueLocations),
		zap.Int("unmatched", len(summary.Unmatched)),
		zap.Int("shortages", len(summary.Shortages)))

	return pickList
}
