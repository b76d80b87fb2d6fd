package services

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/services"
)

// CatalogService merges a live inventory snapshot with the reference dataset
// into one deduplicated set of component specs keyed by identity.
type CatalogService struct {
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{logger: logger}
}

// CatalogResult is the output of one merge run. Problems collects the
// per-record AmbiguousIdentity and MalformedRecord errors; the merge keeps
// going past them but flags the run for review.
type CatalogResult struct {
	Specs       []entities.ComponentSpec
	Problems    []error
	NeedsReview bool
}

// Merge combines inventory records and reference entries. Stock levels come
// from inventory when present; usage_count and priority come from the
// reference; reference-only entries still yield a spec with quantity 0 so a
// slot gets reserved for future stock.
func (s *CatalogService) Merge(inventory []entities.InventoryRecord, reference *entities.ReferenceDataset) *CatalogResult {
	result := &CatalogResult{}
	specs := make(map[string]*entities.ComponentSpec)

	for _, record := range inventory {
		identity, numeric, err := s.DeriveIdentity(record)
		if err != nil {
			result.Problems = append(result.Problems, err)
			continue
		}

		key := identity.Key()
		if existing, ok := specs[key]; ok {
			// Stock for one identity can sit in several records
			existing.QuantityOnHand += record.Quantity
			if record.MinQuantity > existing.MinQuantity {
				existing.MinQuantity = record.MinQuantity
			}
			continue
		}
		specs[key] = &entities.ComponentSpec{
			Identity:       identity,
			Numeric:        numeric,
			QuantityOnHand: record.Quantity,
			MinQuantity:    record.MinQuantity,
		}
	}

	if reference != nil {
		for _, cat := range entities.AllCategories {
			for _, entry := range reference.Entries[cat] {
				identity, numeric, err := s.referenceIdentity(cat, entry)
				if err != nil {
					result.Problems = append(result.Problems, err)
					continue
				}

				key := identity.Key()
				if existing, ok := specs[key]; ok {
					existing.UsageCount = entry.UsageCount
					existing.Priority = entry.Priority
					continue
				}
				specs[key] = &entities.ComponentSpec{
					Identity:   identity,
					Numeric:    numeric,
					UsageCount: entry.UsageCount,
					Priority:   entry.Priority,
				}
			}
		}
	}

	keys := make([]string, 0, len(specs))
	for key := range specs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		result.Specs = append(result.Specs, *specs[key])
	}

	result.NeedsReview = len(result.Problems) > 0
	if result.NeedsReview {
		s.logger.Warn("catalog merge needs review",
			zap.Int("specs", len(result.Specs)),
			zap.Int("problems", len(result.Problems)))
	} else {
		s.logger.Info("catalog merged", zap.Int("specs", len(result.Specs)))
	}

	return result
}

// DeriveIdentity normalizes an inventory record into a canonical identity
// and its ordering magnitude. The category claimed by the record's category
// path must agree with the category inferred from the name; a conflict is an
// AmbiguousIdentityError, never a silent pick.
func (s *CatalogService) DeriveIdentity(record entities.InventoryRecord) (entities.Identity, decimal.Decimal, error) {
	name := strings.TrimSpace(record.Name)
	if name == "" {
		return entities.Identity{}, decimal.Zero, &entities.MalformedRecordError{
			Source: "inventory",
			Record: record.Name,
			Reason: "missing name",
		}
	}
	if record.Quantity < 0 {
		return entities.Identity{}, decimal.Zero, &entities.MalformedRecordError{
			Source: "inventory",
			Record: name,
			Reason: "negative quantity",
		}
	}

	pathCat := services.InferCategory(record.CategoryPath)
	nameCat := services.InferCategory(name)

	cat := pathCat
	if cat == entities.CategoryUnknown {
		cat = nameCat
	}
	if cat == entities.CategoryUnknown {
		return entities.Identity{}, decimal.Zero, &entities.MalformedRecordError{
			Source: "inventory",
			Record: name,
			Reason: "category not recognized",
		}
	}
	if pathCat != entities.CategoryUnknown && nameCat != entities.CategoryUnknown && pathCat != nameCat {
		return entities.Identity{}, decimal.Zero, &entities.AmbiguousIdentityError{
			Name:        name,
			Existing:    entities.Identity{Category: pathCat},
			Conflicting: entities.Identity{Category: nameCat},
		}
	}

	return canonicalIdentity(cat, name, record.CategoryPath, "inventory")
}

// referenceIdentity normalizes one reference entry into a canonical identity
func (s *CatalogService) referenceIdentity(cat entities.Category, entry entities.ReferenceEntry) (entities.Identity, decimal.Decimal, error) {
	if strings.TrimSpace(entry.Value) == "" {
		return entities.Identity{}, decimal.Zero, &entities.MalformedRecordError{
			Source: "reference",
			Record: cat.String(),
			Reason: "missing value",
		}
	}

	identity, numeric, err := canonicalIdentity(cat, entry.Value, entry.Subtype, "reference")
	if err != nil {
		return entities.Identity{}, decimal.Zero, err
	}
	if entry.Subtype != "" {
		identity.Subtype = strings.ToLower(entry.Subtype)
	}
	return identity, numeric, nil
}

// canonicalIdentity derives the canonical (subtype, value) pair for a name
// within a known category. hint carries extra subtype context (the category
// path or the reference section name); source names the input the record came
// from so malformed-record problems point at the right file.
func canonicalIdentity(cat entities.Category, name, hint, source string) (entities.Identity, decimal.Decimal, error) {
	combined := name + " " + hint

	switch cat {
	case entities.Resistor:
		numeric, display, err := services.ParseResistorValue(name)
		if err != nil {
			return entities.Identity{}, decimal.Zero, &entities.MalformedRecordError{
				Source: source, Record: name, Reason: err.Error(),
			}
		}
		return entities.Identity{Category: cat, Value: display}, numeric, nil

	case entities.Capacitor:
		numeric, display, subtype, err := services.ParseCapacitorValue(combined)
		if err != nil {
			return entities.Identity{}, decimal.Zero, &entities.MalformedRecordError{
				Source: source, Record: name, Reason: err.Error(),
			}
		}
		return entities.Identity{Category: cat, Subtype: subtype, Value: display}, numeric, nil

	case entities.Potentiometer:
		numeric, display, err := services.ParsePotValue(name)
		if err != nil {
			return entities.Identity{}, decimal.Zero, &entities.MalformedRecordError{
				Source: source, Record: name, Reason: err.Error(),
			}
		}
		return entities.Identity{Category: cat, Value: display}, numeric, nil

	case entities.Transistor:
		subtype := transistorSubtype(combined)
		value := services.StripQualifiers(cat, name)
		if value == "" {
			return entities.Identity{}, decimal.Zero, &entities.MalformedRecordError{
				Source: source, Record: name, Reason: "no identifier after stripping qualifiers",
			}
		}
		return entities.Identity{Category: cat, Subtype: subtype, Value: value}, decimal.Zero, nil

	case entities.LED:
		subtype := ledSize(combined)
		value := services.StripQualifiers(cat, name)
		if value == "" {
			return entities.Identity{}, decimal.Zero, &entities.MalformedRecordError{
				Source: source, Record: name, Reason: "no identifier after stripping qualifiers",
			}
		}
		return entities.Identity{Category: cat, Subtype: subtype, Value: value}, decimal.Zero, nil

	default: // Diode, IC
		value := services.StripQualifiers(cat, name)
		if value == "" {
			return entities.Identity{}, decimal.Zero, &entities.MalformedRecordError{
				Source: source, Record: name, Reason: "no identifier after stripping qualifiers",
			}
		}
		return entities.Identity{Category: cat, Value: value}, decimal.Zero, nil
	}
}

func transistorSubtype(s string) string {
	lower := strings.ToLower(s)
	for _, sub := range []string{"npn", "pnp", "jfet", "mosfet"} {
		if strings.Contains(lower, sub) {
			return sub
		}
	}
	return ""
}

func ledSize(s string) string {
	lower := strings.ToLower(s)
	for _, size := range []string{"3mm", "5mm"} {
		if strings.Contains(lower, size) {
			return size
		}
	}
	return ""
}
