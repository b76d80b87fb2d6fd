package commands

import (
	"context"
	"fmt"
	"os"

	appservices "github.com/cgriff80031/guitar-pedal-organizer/pkg/application/services"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/infrastructure/repositories/locmap"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/interfaces/cli/output"
)

// LabelsConfig holds configuration for the labels command
type LabelsConfig struct {
	LocationsFile string
	CSVFile       string
	XLSXFile      string
	Verbose       bool
	Help          bool
}

// LabelsCommand renders drawer labels from the location map
type LabelsCommand struct {
	config LabelsConfig
}

// NewLabelsCommand creates a new labels command with the given configuration
func NewLabelsCommand(config LabelsConfig) *LabelsCommand {
	return &LabelsCommand{config: config}
}

// Execute runs the labels command
func (c *LabelsCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.LocationsFile == "" {
		return fmt.Errorf("locations file is required")
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

	labels, err := appservices.NewLabelService(logger).BuildDrawerLabels(locations)
	if err != nil {
		return fmt.Errorf("error building labels: %w", err)
	}
	pairs := output.PairLabels(labels)

	writer := os.Stdout
	if c.config.CSVFile != "" {
		file, err := os.Create(c.config.CSVFile)
		if err != nil {
			return fmt.Errorf("error creating label CSV: %w", err)
		}
		defer file.Close()
		writer = file
	}
	if err := output.WriteLabelCSV(writer, pairs); err != nil {
		return fmt.Errorf("error writing label CSV: %w", err)
	}
	if c.config.CSVFile != "" {
		fmt.Printf("✓ Labels written to: %s (%d label pairs)\n", c.config.CSVFile, len(pairs))
	}

	if c.config.XLSXFile != "" {
		if err := output.WriteLabelXLSX(c.config.XLSXFile, pairs); err != nil {
			return fmt.Errorf("error writing label workbook: %w", err)
		}
		fmt.Printf("✓ Label workbook written to: %s\n", c.config.XLSXFile)
	}
	return nil
}

func (c *LabelsCommand) showHelp() {
	fmt.Println(`Render printable drawer labels from the location map

Each drawer's occupants collapse to one label line with a category prefix,
e.g. "R: 100R  |  220R  |  470R  |  1K". Labels pair two drawers per row to
match the sticker template.

Usage:
  organizer labels -locations locations.json -csv labels.csv -xlsx labels.xlsx

Flags:
  -locations  Location map JSON file
  -csv        Label CSV output file (default: stdout)
  -xlsx       Also write an XLSX workbook
  -verbose    Enable verbose logging`)
}
