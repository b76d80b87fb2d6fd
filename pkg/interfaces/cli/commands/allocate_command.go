package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	appservices "github.com/cgriff80031/guitar-pedal-organizer/pkg/application/services"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/events"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/inventree"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/logging"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/repositories/csv"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/repositories/locmap"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/repositories/yamlref"
)

// AllocateConfig holds configuration for the allocate command. Inventory
// comes from a snapshot CSV or, when BaseURL is set, live from InvenTree.
type AllocateConfig struct {
	InventoryFile string
	BaseURL       string
	Token         string
	ReferenceFile string
	LocationsFile string
	Verbose       bool
	Help          bool
}

// AllocateCommand assigns storage slots to catalog components
type AllocateCommand struct {
	config AllocateConfig
}

// NewAllocateCommand creates a new allocate command with the given configuration
func NewAllocateCommand(config AllocateConfig) *AllocateCommand {
	return &AllocateCommand{config: config}
}

// Execute runs the allocate command
func (c *AllocateCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.LocationsFile == "" {
		return fmt.Errorf("locations file is required")
	}
	if c.config.InventoryFile == "" && c.config.BaseURL == "" && c.config.ReferenceFile == "" {
		return fmt.Errorf("an inventory source (file or URL) or reference file is required")
	}
	if c.config.InventoryFile != "" && c.config.BaseURL != "" {
		return fmt.Errorf("inventory file and InvenTree URL are mutually exclusive")
	}

	logger := buildLogger(c.config.Verbose)
	defer logger.Sync()

	var catalog *appservices.CatalogResult
	var err error
	if c.config.BaseURL != "" {
		token := c.config.Token
		if token == "" {
			token = os.Getenv("INVENTREE_TOKEN")
		}
		client := inventree.NewClient(inventree.DefaultConfig(c.config.BaseURL, token), logger)
		inventory, listErr := client.ListParts(ctx)
		if listErr != nil {
			return fmt.Errorf("error listing parts: %w", listErr)
		}
		catalog, err = mergeCatalog(inventory, nil, c.config.ReferenceFile, logger)
	} else {
		catalog, err = loadCatalog(c.config.InventoryFile, c.config.ReferenceFile, logger)
	}
	if err != nil {
		return err
	}
	if catalog.NeedsReview {
		fmt.Printf("⚠ %d records need review:\n", len(catalog.Problems))
		for _, problem := range catalog.Problems {
			fmt.Printf("  - %v\n", problem)
		}
	}

	store := locmap.NewJSONStore(c.config.LocationsFile)
	service := appservices.NewAllocationService(
		entities.DefaultTopology(), store, events.NewMemoryStore(), logger)

	result, err := service.Allocate(ctx, catalog.Specs)
	if err != nil {
		return fmt.Errorf("allocation failed: %w", err)
	}

	fmt.Printf("Allocation complete: %d components newly placed, %d total assigned\n",
		result.NewlyPlaced, result.Map.Size())
	for _, problem := range result.Problems {
		var capacity *entities.CapacityError
		if errors.As(problem, &capacity) {
			fmt.Printf("⚠ %s range full: need %d drawers, %d available (category skipped)\n",
				capacity.Category, capacity.Needed, capacity.Available)
		} else {
			fmt.Printf("⚠ %v\n", problem)
		}
	}
	return nil
}

func (c *AllocateCommand) showHelp() {
	fmt.Println(`Allocate storage slots to components

Groups the catalog by category (resistors by value decade, capacitors and
transistors by subtype) into drawer-sized chunks and extends the location
map. Existing assignments never move; consumed drawers are never reused.

Usage:
  organizer allocate -inventory inventory.csv -reference components.yaml -locations locations.json
  organizer allocate -url https://inventree.local -reference components.yaml -locations locations.json

Flags:
  -inventory  Inventory snapshot CSV (name,category,quantity,min_quantity)
  -url        Pull live inventory from InvenTree instead of a CSV
  -token      InvenTree API token (or set INVENTREE_TOKEN)
  -reference  Reference dataset YAML
  -locations  Location map JSON file (created on first run)
  -verbose    Enable verbose logging`)
}

// loadCatalog merges an inventory snapshot file and the reference dataset.
// Either input may be absent.
func loadCatalog(inventoryFile, referenceFile string, logger *zap.Logger) (*appservices.CatalogResult, error) {
	var inventory []entities.InventoryRecord
	var loadProblems []error

	if inventoryFile != "" {
		loader := csv.NewLoader()
		records, problems, err := loader.LoadInventory(inventoryFile)
		if err != nil {
			return nil, fmt.Errorf("error loading inventory: %w", err)
		}
		inventory = records
		loadProblems = problems
	}

	return mergeCatalog(inventory, loadProblems, referenceFile, logger)
}

// mergeCatalog runs the catalog merge over already-loaded inventory records,
// folding any load-time problems into the result.
func mergeCatalog(inventory []entities.InventoryRecord, loadProblems []error, referenceFile string, logger *zap.Logger) (*appservices.CatalogResult, error) {
	var reference *entities.ReferenceDataset
	if referenceFile != "" {
		dataset, err := yamlref.NewLoader().Load(referenceFile)
		if err != nil {
			return nil, fmt.Errorf("error loading reference dataset: %w", err)
		}
		reference = dataset
	}

	catalog := appservices.NewCatalogService(logger).Merge(inventory, reference)
	catalog.Problems = append(loadProblems, catalog.Problems...)
	catalog.NeedsReview = len(catalog.Problems) > 0
	return catalog, nil
}

func buildLogger(verbose bool) *zap.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Format: "console", Development: true})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
