package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// SizeClass represents the physical drawer size, which determines how many
// compartments the drawer is divided into.
type SizeClass int

const (
	SizeSmall SizeClass = iota
	SizeMedium
	SizeLarge
	SizeTall
)

// String method for SizeClass enum
func (s SizeClass) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	case SizeTall:
		return "tall"
	default:
		return "unknown"
	}
}

// Compartments returns the number of compartments for this size class.
// Small and medium drawers carry a 4x divider; large and tall drawers are a
// single open bin.
func (s SizeClass) Compartments() int {
	switch s {
	case SizeSmall, SizeMedium:
		return 4
	default:
		return 1
	}
}

// Compartmentalized reports whether slots in this size class carry a
// compartment index.
func (s SizeClass) Compartmentalized() bool {
	return s.Compartments() > 1
}

// DrawerRef identifies one physical drawer within a unit
type DrawerRef struct {
	Unit   string
	Drawer string
	Size   SizeClass
}

// StorageSlot identifies one physical storage location. Compartment is 1-4
// for compartmentalized drawers and 0 for large/tall drawers, which hold a
// single implicit slot.
type StorageSlot struct {
	Unit        string `json:"unit"`
	Drawer      string `json:"drawer"`
	Compartment int    `json:"compartment"`
}

// Slots expands a drawer into its storage slots in physical fill order
// (front-left=1, front-right=2, back-left=3, back-right=4).
func (d DrawerRef) Slots() []StorageSlot {
	n := d.Size.Compartments()
	if n == 1 {
		return []StorageSlot{{Unit: d.Unit, Drawer: d.Drawer}}
	}
	slots := make([]StorageSlot, 0, n)
	for i := 1; i <= n; i++ {
		slots = append(slots, StorageSlot{Unit: d.Unit, Drawer: d.Drawer, Compartment: i})
	}
	return slots
}

// Label returns the display form, e.g. "U1-S5-1" or "U2-L1"
func (s StorageSlot) Label() string {
	if s.Compartment == 0 {
		return fmt.Sprintf("%s-%s", s.Unit, s.Drawer)
	}
	return fmt.Sprintf("%s-%s-%d", s.Unit, s.Drawer, s.Compartment)
}

// DrawerNumber extracts the numeric part of a drawer id ("S12" -> 12)
func DrawerNumber(drawer string) int {
	var digits strings.Builder
	for _, r := range drawer {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// UnitNumber extracts the numeric part of a unit id ("U1" -> 1)
func UnitNumber(unit string) int {
	return DrawerNumber(unit)
}

// SortKey returns the physical walking order key (unit, drawer number,
// compartment index).
func (s StorageSlot) SortKey() (int, int, int) {
	return UnitNumber(s.Unit), DrawerNumber(s.Drawer), s.Compartment
}

// Less reports whether s precedes other in physical walking order
func (s StorageSlot) Less(other StorageSlot) bool {
	u1, d1, c1 := s.SortKey()
	u2, d2, c2 := other.SortKey()
	if u1 != u2 {
		return u1 < u2
	}
	if d1 != d2 {
		return d1 < d2
	}
	return c1 < c2
}

// AllocationTopology defines the ordered drawer ranges reserved for each
// category. Drawers in a range are consumed front to back and never reused
// once consumed in a prior run.
type AllocationTopology struct {
	Ranges map[Category][]DrawerRef
}

// RangeFor returns the ordered drawer range reserved for a category
func (t *AllocationTopology) RangeFor(cat Category) []DrawerRef {
	return t.Ranges[cat]
}

// DefaultTopology mirrors the physical workshop cabinets: U1 is a bank of
// small 4x-compartment drawers (S1..S44) shared by resistors, capacitors,
// diodes, transistors and LEDs; U2 carries 16 medium drawers (M1..M16) for
// ICs and potentiometers. U2's large (L1..L3) and tall (T1..T4) bins hold
// bulky hardware like enclosures and PCBs, outside component allocation,
// so no category range claims them.
func DefaultTopology() *AllocationTopology {
	small := func(from, to int) []DrawerRef {
		refs := make([]DrawerRef, 0, to-from+1)
		for i := from; i <= to; i++ {
			refs = append(refs, DrawerRef{Unit: "U1", Drawer: fmt.Sprintf("S%d", i), Size: SizeSmall})
		}
		return refs
	}
	medium := func(from, to int) []DrawerRef {
		refs := make([]DrawerRef, 0, to-from+1)
		for i := from; i <= to; i++ {
			refs = append(refs, DrawerRef{Unit: "U2", Drawer: fmt.Sprintf("M%d", i), Size: SizeMedium})
		}
		return refs
	}
	return &AllocationTopology{
		Ranges: map[Category][]DrawerRef{
			Resistor:      small(1, 16),
			Capacitor:     small(17, 28),
			Diode:         small(29, 32),
			Transistor:    small(33, 40),
			LED:           small(41, 44),
			IC:            medium(1, 10),
			Potentiometer: medium(11, 16),
		},
	}
}
