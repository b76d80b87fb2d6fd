package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/services"
)

func pickingFixture() ([]entities.ComponentSpec, *entities.LocationMap) {
	specs := []entities.ComponentSpec{
		{
			Identity:       entities.Identity{Category: entities.Resistor, Value: "4.7K"},
			Numeric:        decimal.NewFromInt(4700),
			QuantityOnHand: 100,
		},
		{
			Identity:       entities.Identity{Category: entities.Diode, Value: "1N4148"},
			QuantityOnHand: 2,
		},
		{
			Identity:       entities.Identity{Category: entities.Capacitor, Subtype: "ceramic", Value: "100nF"},
			QuantityOnHand: 50,
		},
	}

	locations := entities.NewLocationMap()
	locations.Assign("resistor//4.7K", entities.StorageSlot{Unit: "U1", Drawer: "S2", Compartment: 2})
	locations.Assign("diode//1N4148", entities.StorageSlot{Unit: "U1", Drawer: "S29", Compartment: 1})
	// The capacitor has stock but no slot yet

	return specs, locations
}

func TestGeneratePickListGroupsByWalkingOrder(t *testing.T) {
	specs, locations := pickingFixture()
	service := NewPickingService(services.DefaultMatcherConfig(), nil)

	bom := []entities.BOMLine{
		{Reference: "D1", Name: "1N4148", Quantity: 1},
		{Reference: "R1", Name: "4.7K Resistor", Quantity: 2},
	}

	pickList := service.GeneratePickList("Fuzz Face", bom, specs, locations)

	require.Len(t, pickList.Groups, 2)
	assert.Equal(t, "U1-S2-2", pickList.Groups[0].Slot.Label())
	assert.Equal(t, "U1-S29-1", pickList.Groups[1].Slot.Label())
	assert.Equal(t, "R1", pickList.Groups[0].Entries[0].Reference)
	assert.Equal(t, "D1", pickList.Groups[1].Entries[0].Reference)
	assert.Equal(t, 2, pickList.Summary.UniqueLocations)
}

func TestGeneratePickListSufficiency(t *testing.T) {
	specs, locations := pickingFixture()
	service := NewPickingService(services.DefaultMatcherConfig(), nil)

	bom := []entities.BOMLine{
		{Reference: "R1", Name: "4.7K Resistor", Quantity: 2},
		{Reference: "D1", Name: "1N4148", Quantity: 5},
	}

	pickList := service.GeneratePickList("Fuzz Face", bom, specs, locations)

	assert.Equal(t, 1, pickList.Summary.InStock)
	require.Len(t, pickList.Summary.Shortages, 1)

	shortage := pickList.Summary.Shortages[0]
	assert.Equal(t, "1N4148", shortage.Name)
	assert.Equal(t, entities.Quantity(3), shortage.Shortfall)
	assert.Equal(t, entities.Quantity(2), shortage.OnHand)
}

func TestGeneratePickListUnmatchedAndUnlocatedTrail(t *testing.T) {
	specs, locations := pickingFixture()
	service := NewPickingService(services.DefaultMatcherConfig(), nil)

	bom := []entities.BOMLine{
		{Reference: "R1", Name: "4.7K Resistor", Quantity: 1},
		{Reference: "C1", Name: "100nF Ceramic", Quantity: 1},   // matched, no slot
		{Reference: "X1", Name: "Enclosure 125B", Quantity: 1},  // unmatched
	}

	pickList := service.GeneratePickList("Fuzz Face", bom, specs, locations)

	assert.Equal(t, 3, pickList.Summary.TotalLines)
	assert.Equal(t, []string{"Enclosure 125B"}, pickList.Summary.Unmatched)
	assert.Equal(t, []string{"100nF Ceramic"}, pickList.Summary.Unlocated)

	// Located group first, then one trailing group holding both problem lines
	require.Len(t, pickList.Groups, 2)
	trailing := pickList.Groups[len(pickList.Groups)-1]
	assert.Nil(t, trailing.Slot)
	require.Len(t, trailing.Entries, 2)

	// The unlocated entry keeps its resolved identity and stock figures
	var located *entities.PickListEntry
	for i := range trailing.Entries {
		if trailing.Entries[i].Identity != nil {
			located = &trailing.Entries[i]
		}
	}
	require.NotNil(t, located)
	assert.Equal(t, "capacitor/ceramic/100nF", located.Identity.Key())
	assert.Equal(t, entities.Quantity(50), located.OnHand)
}

func TestGeneratePickListPreservesBOMOrderWithinGroup(t *testing.T) {
	specs := []entities.ComponentSpec{
		{Identity: entities.Identity{Category: entities.Resistor, Value: "4.7K"}, QuantityOnHand: 10},
		{Identity: entities.Identity{Category: entities.Resistor, Value: "1K"}, QuantityOnHand: 10},
	}
	locations := entities.NewLocationMap()
	slot := entities.StorageSlot{Unit: "U1", Drawer: "S2", Compartment: 1}
	locations.Assign("resistor//4.7K", entities.StorageSlot{Unit: "U1", Drawer: "S2", Compartment: 2})
	locations.Assign("resistor//1K", slot)

	service := NewPickingService(services.DefaultMatcherConfig(), nil)
	bom := []entities.BOMLine{
		{Reference: "R2", Name: "4.7K Resistor", Quantity: 1},
		{Reference: "R1", Name: "1K Resistor", Quantity: 1},
	}

	pickList := service.GeneratePickList("Test", bom, specs, locations)

	// Groups sort by slot; entries inside keep BOM file order
	require.Len(t, pickList.Groups, 2)
	assert.Equal(t, "U1-S2-1", pickList.Groups[0].Slot.Label())
	assert.Equal(t, "R1", pickList.Groups[0].Entries[0].Reference)
	assert.Equal(t, "R2", pickList.Groups[1].Entries[0].Reference)
}
