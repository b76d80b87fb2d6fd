package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity represents an integer stock quantity for discrete components
type Quantity int64

// Category represents the top-level component category
type Category int

const (
	CategoryUnknown Category = iota
	Resistor
	Capacitor
	Diode
	Transistor
	IC
	Potentiometer
	LED
)

// AllCategories lists every known category in the fixed order allocation
// processes them. The order is part of the deterministic allocation contract.
var AllCategories = []Category{Resistor, Capacitor, Diode, Transistor, IC, Potentiometer, LED}

// String method for Category enum
func (c Category) String() string {
	switch c {
	case Resistor:
		return "resistor"
	case Capacitor:
		return "capacitor"
	case Diode:
		return "diode"
	case Transistor:
		return "transistor"
	case IC:
		return "ic"
	case Potentiometer:
		return "potentiometer"
	case LED:
		return "led"
	default:
		return "unknown"
	}
}

// ParseCategory parses a category name into a Category
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "resistor", "resistors":
		return Resistor, nil
	case "capacitor", "capacitors":
		return Capacitor, nil
	case "diode", "diodes":
		return Diode, nil
	case "transistor", "transistors":
		return Transistor, nil
	case "ic", "ics":
		return IC, nil
	case "potentiometer", "potentiometers", "pot", "pots":
		return Potentiometer, nil
	case "led", "leds":
		return LED, nil
	default:
		return CategoryUnknown, fmt.Errorf("unknown category: %s", s)
	}
}

// Priority represents how important a component type is to keep stocked
type Priority int

const (
	Optional Priority = iota
	Essential
)

// String method for Priority enum
func (p Priority) String() string {
	switch p {
	case Essential:
		return "essential"
	case Optional:
		return "optional"
	default:
		return "unknown"
	}
}

// ParsePriority parses a priority name into a Priority
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "essential":
		return Essential, nil
	case "optional", "":
		return Optional, nil
	default:
		return Optional, fmt.Errorf("invalid priority: %s (expected: essential or optional)", s)
	}
}

// Identity uniquely names a component type as (category, subtype, value).
// Subtype is empty for categories without subtypes (resistor, diode, IC).
type Identity struct {
	Category Category
	Subtype  string
	Value    string
}

// Key returns the canonical map key for this identity, e.g.
// "capacitor/ceramic/100nF" or "resistor//4.7K".
func (id Identity) Key() string {
	return id.Category.String() + "/" + strings.ToLower(id.Subtype) + "/" + id.Value
}

// String returns a human-readable form, e.g. "100nF ceramic capacitor"
func (id Identity) String() string {
	if id.Subtype != "" {
		return fmt.Sprintf("%s %s %s", id.Value, id.Subtype, id.Category)
	}
	return fmt.Sprintf("%s %s", id.Value, id.Category)
}

// ParseIdentityKey parses a key produced by Identity.Key back into an Identity
func ParseIdentityKey(key string) (Identity, error) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 {
		return Identity{}, fmt.Errorf("malformed identity key: %s", key)
	}
	cat, err := ParseCategory(parts[0])
	if err != nil {
		return Identity{}, fmt.Errorf("malformed identity key %s: %w", key, err)
	}
	return Identity{Category: cat, Subtype: parts[1], Value: parts[2]}, nil
}

// ComponentSpec is one component type with its stock and reference attributes.
// Numeric carries the parsed magnitude used for ordering: ohms for resistors
// and potentiometers, picofarads for capacitors, zero for everything else.
type ComponentSpec struct {
	Identity       Identity
	Numeric        decimal.Decimal
	UsageCount     int
	Priority       Priority
	QuantityOnHand Quantity
	MinQuantity    Quantity
}

// InventoryRecord is a raw part record from the inventory system or a
// snapshot file, before identity normalization.
type InventoryRecord struct {
	Name         string
	CategoryPath string
	Quantity     Quantity
	MinQuantity  Quantity
}

// ReferenceEntry is one known component type from the reference dataset
type ReferenceEntry struct {
	Value      string
	Subtype    string
	UsageCount int
	Priority   Priority
}

// ReferenceDataset holds the reference entries grouped by category
type ReferenceDataset struct {
	Entries map[Category][]ReferenceEntry
}

// NewReferenceDataset creates an empty reference dataset
func NewReferenceDataset() *ReferenceDataset {
	return &ReferenceDataset{Entries: make(map[Category][]ReferenceEntry)}
}

// StockSnapshot maps identity keys to on-hand quantities
type StockSnapshot map[string]Quantity

// SnapshotFromSpecs builds a stock snapshot from merged component specs
func SnapshotFromSpecs(specs []ComponentSpec) StockSnapshot {
	snap := make(StockSnapshot, len(specs))
	for _, spec := range specs {
		snap[spec.Identity.Key()] = spec.QuantityOnHand
	}
	return snap
}
