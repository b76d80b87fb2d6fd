package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/inventree"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/repositories/locmap"
)

// SyncConfig holds configuration for the sync command
type SyncConfig struct {
	BaseURL       string
	Token         string
	LocationsFile string
	MoveStock     bool
	DryRun        bool
	Verbose       bool
	Help          bool
}

// SyncCommand pushes the location map to the InvenTree inventory system
type SyncCommand struct {
	config SyncConfig
}

// NewSyncCommand creates a new sync command with the given configuration
func NewSyncCommand(config SyncConfig) *SyncCommand {
	return &SyncCommand{config: config}
}

// Execute runs the sync command
func (c *SyncCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.LocationsFile == "" {
		return fmt.Errorf("locations file is required")
	}
	if c.config.BaseURL == "" {
		return fmt.Errorf("InvenTree URL is required")
	}
	token := c.config.Token
	if token == "" {
		token = os.Getenv("INVENTREE_TOKEN")
	}
	if token == "" && !c.config.DryRun {
		return fmt.Errorf("API token is required (flag -token or INVENTREE_TOKEN)")
	}

	logger := buildLogger(c.config.Verbose)
	defer logger.Sync()

	locations, err := locmap.NewJSONStore(c.config.LocationsFile).Load()
	if err != nil {
		return fmt.Errorf("error loading location map: %w", err)
	}
	if locations.Size() == 0 {
		return fmt.Errorf("location map is empty; run allocate first")
	}

	client := inventree.NewClient(inventree.DefaultConfig(c.config.BaseURL, token), logger)

	synced := 0
	var failures []string
	for _, key := range locations.SortedKeys() {
		identity, err := entities.ParseIdentityKey(key)
		if err != nil {
			return fmt.Errorf("corrupt location map entry %q: %w", key, err)
		}
		slot, ok := locations.Primary(key)
		if !ok {
			continue
		}

		if c.config.DryRun {
			fmt.Printf("would set %s -> %s\n", identity, slot.Label())
			synced++
			continue
		}

		if err := client.SetDefaultLocation(ctx, identity, slot); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", identity, err))
			continue
		}
		if c.config.MoveStock {
			if err := client.MoveStock(ctx, identity, slot, 0); err != nil {
				failures = append(failures, fmt.Sprintf("%s (stock move): %v", identity, err))
				continue
			}
		}
		synced++
	}

	if c.config.DryRun {
		fmt.Printf("Dry run: %d assignments would sync\n", synced)
		return nil
	}

	fmt.Printf("Synced %d/%d assignments\n", synced, locations.Size())
	if len(failures) > 0 {
		fmt.Printf("⚠ %d failures:\n", len(failures))
		for _, failure := range failures {
			fmt.Printf("  - %s\n", failure)
		}
		return fmt.Errorf("%d assignments failed to sync", len(failures))
	}
	return nil
}

func (c *SyncCommand) showHelp() {
	fmt.Println(`Push drawer assignments to InvenTree

Sets each part's default stock location to its assigned slot, creating the
Workshop/Unit/Drawer/Compartment location hierarchy on demand. With
-move-stock, existing stock items transfer to the slot as well.

Usage:
  organizer sync -url https://inventree.local -locations locations.json

Flags:
  -url         InvenTree base URL
  -token       API token (or set INVENTREE_TOKEN)
  -locations   Location map JSON file
  -move-stock  Also transfer stock items to the assigned slots
  -dry-run     Print planned changes without calling the API
  -verbose     Enable verbose logging`)
}
