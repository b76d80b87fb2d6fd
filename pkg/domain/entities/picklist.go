package entities

// BOMLine is one line of a bill of materials: a board reference, the
// free-text component name as written by the BOM author, and the required
// quantity.
type BOMLine struct {
	Reference string
	Name      string
	Quantity  Quantity
}

// PickListEntry is one resolved BOM line. Identity is nil when the name
// could not be matched; Slot is nil when the identity has no assigned
// location. Neither condition drops the entry from the pick list.
type PickListEntry struct {
	Reference  string
	Name       string
	Identity   *Identity
	Required   Quantity
	OnHand     Quantity
	Slot       *StorageSlot
	Sufficient bool
	Shortfall  Quantity
}

// PickGroup groups pick entries by storage slot. Slot is nil for the
// trailing group of unlocated entries.
type PickGroup struct {
	Slot    *StorageSlot
	Entries []PickListEntry
}

// ShortageLine is one entry of the itemized shortage list
type ShortageLine struct {
	Name      string
	Identity  *Identity
	Shortfall Quantity
	OnHand    Quantity
}

// PickSummary holds the roll-up figures for a pick list
type PickSummary struct {
	TotalLines      int
	UniqueLocations int
	InStock         int
	Shortages       []ShortageLine
	Unmatched       []string
	Unlocated       []string
}

// PickList is the complete output of one picking sheet run: slot-ordered
// groups plus the summary.
type PickList struct {
	Project string
	Groups  []PickGroup
	Summary PickSummary
}

// LabelCell is one printable label cell: the slot it belongs to and the
// display text for that compartment. Print layout is left to the label tool.
type LabelCell struct {
	Unit        string
	Drawer      string
	Compartment int
	Text        string
}

// DrawerLabel is the combined label text for a whole drawer, e.g.
// "R: 100R  |  220R  |  470R  |  1K".
type DrawerLabel struct {
	Unit   string
	Drawer string
	Text   string
}
