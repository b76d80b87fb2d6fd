package entities

import (
	"testing"
)

func TestSlotLabel(t *testing.T) {
	tests := []struct {
		slot StorageSlot
		want string
	}{
		{StorageSlot{Unit: "U1", Drawer: "S5", Compartment: 1}, "U1-S5-1"},
		{StorageSlot{Unit: "U2", Drawer: "M12", Compartment: 4}, "U2-M12-4"},
		{StorageSlot{Unit: "U2", Drawer: "L1"}, "U2-L1"},
	}

	for _, tt := range tests {
		if got := tt.slot.Label(); got != tt.want {
			t.Errorf("Label() = %s, want %s", got, tt.want)
		}
	}
}

func TestSlotOrdering(t *testing.T) {
	// Walking order: unit, then drawer number, then compartment
	ordered := []StorageSlot{
		{Unit: "U1", Drawer: "S2", Compartment: 1},
		{Unit: "U1", Drawer: "S2", Compartment: 4},
		{Unit: "U1", Drawer: "S10", Compartment: 1},
		{Unit: "U2", Drawer: "M1", Compartment: 1},
		{Unit: "U2", Drawer: "L3"},
	}

	for i := 0; i < len(ordered)-1; i++ {
		if !ordered[i].Less(ordered[i+1]) {
			t.Errorf("%s should precede %s", ordered[i].Label(), ordered[i+1].Label())
		}
		if ordered[i+1].Less(ordered[i]) {
			t.Errorf("%s should not precede %s", ordered[i+1].Label(), ordered[i].Label())
		}
	}
}

func TestDrawerNumberIsNumeric(t *testing.T) {
	// "S10" sorts after "S2", unlike a lexicographic comparison
	if DrawerNumber("S10") != 10 || DrawerNumber("S2") != 2 {
		t.Fatalf("DrawerNumber parsing broken: S10=%d S2=%d", DrawerNumber("S10"), DrawerNumber("S2"))
	}
}

func TestDrawerSlots(t *testing.T) {
	small := DrawerRef{Unit: "U1", Drawer: "S3", Size: SizeSmall}
	slots := small.Slots()
	if len(slots) != 4 {
		t.Fatalf("small drawer slots = %d, want 4", len(slots))
	}
	for i, slot := range slots {
		if slot.Compartment != i+1 {
			t.Errorf("slot %d compartment = %d, want %d", i, slot.Compartment, i+1)
		}
	}

	large := DrawerRef{Unit: "U2", Drawer: "L1", Size: SizeLarge}
	slots = large.Slots()
	if len(slots) != 1 {
		t.Fatalf("large drawer slots = %d, want 1", len(slots))
	}
	if slots[0].Compartment != 0 {
		t.Errorf("large drawer compartment = %d, want 0", slots[0].Compartment)
	}
}

func TestDefaultTopologyCoversAllCategories(t *testing.T) {
	topology := DefaultTopology()
	for _, cat := range AllCategories {
		if len(topology.RangeFor(cat)) == 0 {
			t.Errorf("no drawer range for %s", cat)
		}
	}
}

func TestDefaultTopologyRangesDoNotOverlap(t *testing.T) {
	topology := DefaultTopology()
	seen := make(map[string]Category)
	for cat, drawers := range topology.Ranges {
		for _, drawer := range drawers {
			key := drawer.Unit + "/" + drawer.Drawer
			if prev, ok := seen[key]; ok {
				t.Errorf("drawer %s in both %s and %s ranges", key, prev, cat)
			}
			seen[key] = cat
		}
	}
}
