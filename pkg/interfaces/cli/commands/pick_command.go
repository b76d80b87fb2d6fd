package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	appservices "github.com/cgriff80031/guitar-pedal-organizer/pkg/application/services"
	domainservices "github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/services"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/repositories/csv"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/repositories/locmap"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/interfaces/cli/output"
)

// PickConfig holds configuration for the pick command
type PickConfig struct {
	BOMFile       string
	Project       string
	InventoryFile string
	ReferenceFile string
	LocationsFile string
	OutputFile    string
	Threshold     float64
	Verbose       bool
	Help          bool
}

// PickCommand generates a picking sheet for a project BOM
type PickCommand struct {
	config PickConfig
}

// NewPickCommand creates a new pick command with the given configuration
func NewPickCommand(config PickConfig) *PickCommand {
	return &PickCommand{config: config}
}

// Execute runs the pick command
func (c *PickCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.BOMFile == "" {
		return fmt.Errorf("BOM file is required")
	}
	if c.config.LocationsFile == "" {
		return fmt.Errorf("locations file is required")
	}

	logger := buildLogger(c.config.Verbose)
	defer logger.Sync()

	bom, err := csv.NewLoader().LoadBOM(c.config.BOMFile)
	if err != nil {
		return fmt.Errorf("error loading BOM: %w", err)
	}

	catalog, err := loadCatalog(c.config.InventoryFile, c.config.ReferenceFile, logger)
	if err != nil {
		return err
	}

	locations, err := locmap.NewJSONStore(c.config.LocationsFile).Load()
	if err != nil {
		return fmt.Errorf("error loading location map: %w", err)
	}

	matcherConfig := domainservices.DefaultMatcherConfig()
	if c.config.Threshold > 0 {
		matcherConfig.Threshold = c.config.Threshold
	}

	project := c.config.Project
	if project == "" {
		project = strings.TrimSuffix(filepath.Base(c.config.BOMFile), filepath.Ext(c.config.BOMFile))
	}

	service := appservices.NewPickingService(matcherConfig, logger)
	pickList := service.GeneratePickList(project, bom, catalog.Specs, locations)

	writer := os.Stdout
	if c.config.OutputFile != "" {
		file, err := os.Create(c.config.OutputFile)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer file.Close()
		writer = file
	}
	if err := output.WritePickSheet(writer, pickList); err != nil {
		return fmt.Errorf("error writing picking sheet: %w", err)
	}
	if c.config.OutputFile != "" {
		fmt.Printf("✓ Picking sheet written to: %s\n", c.config.OutputFile)
	}
	return nil
}

func (c *PickCommand) showHelp() {
	fmt.Println(`Generate a picking sheet for a project BOM

Resolves each BOM line against the catalog with fuzzy matching, looks up the
assigned storage slot and groups the sheet by location in walking order.
Unrecognized and unassigned lines stay on the sheet under UNASSIGNED.

Usage:
  organizer pick -bom fuzz_face.csv -inventory inventory.csv -reference components.yaml -locations locations.json

Flags:
  -bom        Project BOM CSV (reference,name,quantity)
  -project    Project name for the sheet header (default: BOM filename)
  -inventory  Inventory snapshot CSV
  -reference  Reference dataset YAML
  -locations  Location map JSON file
  -output     Write the sheet to a file instead of stdout
  -threshold  Fuzzy match acceptance threshold (default 0.8)
  -verbose    Enable verbose logging`)
}
