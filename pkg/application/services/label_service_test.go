package services

import (
	"testing"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

func TestBuildDrawerLabels(t *testing.T) {
	locations := entities.NewLocationMap()
	locations.Assign("resistor//100R", entities.StorageSlot{Unit: "U1", Drawer: "S1", Compartment: 1})
	locations.Assign("resistor//220R", entities.StorageSlot{Unit: "U1", Drawer: "S1", Compartment: 2})
	locations.Assign("resistor//470R", entities.StorageSlot{Unit: "U1", Drawer: "S1", Compartment: 3})
	locations.Assign("resistor//1K", entities.StorageSlot{Unit: "U1", Drawer: "S1", Compartment: 4})
	locations.Assign("capacitor/ceramic/100nF", entities.StorageSlot{Unit: "U1", Drawer: "S17", Compartment: 1})
	locations.Assign("ic//TL072", entities.StorageSlot{Unit: "U2", Drawer: "M1", Compartment: 1})

	service := NewLabelService(nil)
	labels, err := service.BuildDrawerLabels(locations)
	if err != nil {
		t.Fatalf("BuildDrawerLabels failed: %v", err)
	}

	if len(labels) != 3 {
		t.Fatalf("labels = %d, want 3", len(labels))
	}

	// Compartment order, not alphabetical: 1K comes last
	if labels[0].Text != "R: 100R  |  220R  |  470R  |  1K" {
		t.Errorf("S1 label = %q", labels[0].Text)
	}
	if labels[1].Text != "Caps Cer: 100nF" {
		t.Errorf("S17 label = %q", labels[1].Text)
	}
	if labels[2].Unit != "U2" || labels[2].Text != "IC: TL072" {
		t.Errorf("M1 label = %q in %s", labels[2].Text, labels[2].Unit)
	}
}

func TestBuildCellsWalkingOrder(t *testing.T) {
	locations := entities.NewLocationMap()
	locations.Assign("resistor//10K", entities.StorageSlot{Unit: "U1", Drawer: "S10", Compartment: 1})
	locations.Assign("resistor//100R", entities.StorageSlot{Unit: "U1", Drawer: "S2", Compartment: 1})

	service := NewLabelService(nil)
	cells, err := service.BuildCells(locations)
	if err != nil {
		t.Fatalf("BuildCells failed: %v", err)
	}

	if len(cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(cells))
	}
	// S2 before S10 despite lexicographic order
	if cells[0].Drawer != "S2" || cells[1].Drawer != "S10" {
		t.Errorf("cell order = %s, %s", cells[0].Drawer, cells[1].Drawer)
	}
}
