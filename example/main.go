package main

import (
	"context"
	"fmt"
	"os"

	appservices "github.com/cgriff80031/guitar-pedal-organizer/pkg/application/services"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
	domainservices "github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/services"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/events"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/repositories/memory"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/interfaces/cli/output"
)

func main() {
	ctx := context.Background()

	// Merge a small inventory snapshot against a reference dataset
	inventory := []entities.InventoryRecord{
		{Name: "4.7K Resistor", CategoryPath: "Electronics/Resistors", Quantity: 100},
		{Name: "10K Resistor", CategoryPath: "Electronics/Resistors", Quantity: 200},
		{Name: "100K Resistor", CategoryPath: "Electronics/Resistors", Quantity: 150},
		{Name: "100nF Ceramic Capacitor", CategoryPath: "Electronics/Capacitors", Quantity: 50},
		{Name: "10uF Electrolytic Capacitor", CategoryPath: "Electronics/Capacitors", Quantity: 30},
		{Name: "1N4148 Diode", CategoryPath: "Electronics/Diodes", Quantity: 40},
		{Name: "2N3904 NPN Transistor", CategoryPath: "Electronics/Transistors", Quantity: 25},
		{Name: "TL072 Dual Op-Amp", CategoryPath: "Electronics/ICs", Quantity: 12},
	}
	reference := entities.NewReferenceDataset()
	reference.Entries[entities.Resistor] = []entities.ReferenceEntry{
		{Value: "4.7K", UsageCount: 12, Priority: entities.Essential},
		{Value: "10K", UsageCount: 30, Priority: entities.Essential},
		{Value: "1M", UsageCount: 5},
	}

	catalog := appservices.NewCatalogService(nil).Merge(inventory, reference)
	fmt.Printf("Catalog: %d component types\n", len(catalog.Specs))

	// Allocate drawers and print the resulting layout
	locations := memory.NewLocationRepository()
	allocator := appservices.NewAllocationService(
		entities.DefaultTopology(), locations, events.NewMemoryStore(), nil)

	result, err := allocator.Allocate(ctx, catalog.Specs)
	if err != nil {
		fmt.Printf("allocation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Placed %d components:\n", result.NewlyPlaced)
	for _, key := range result.Map.SortedKeys() {
		slot, _ := result.Map.Primary(key)
		fmt.Printf("  %-28s -> %s\n", key, slot.Label())
	}

	// Generate a picking sheet for a small fuzz pedal build
	bom := []entities.BOMLine{
		{Reference: "R1", Name: "10K Resistor", Quantity: 2},
		{Reference: "R2", Name: "4.7k", Quantity: 1},
		{Reference: "C1", Name: "100nF Ceramic", Quantity: 2},
		{Reference: "Q1", Name: "2N3904", Quantity: 2},
		{Reference: "D1", Name: "1N4148", Quantity: 1},
	}
	picker := appservices.NewPickingService(domainservices.DefaultMatcherConfig(), nil)
	pickList := picker.GeneratePickList("Fuzz Example", bom, catalog.Specs, result.Map)

	fmt.Println()
	if err := output.WritePickSheet(os.Stdout, pickList); err != nil {
		fmt.Printf("rendering failed: %v\n", err)
		os.Exit(1)
	}
}
