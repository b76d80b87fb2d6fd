package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/interfaces/cli/commands"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx := context.Background()
	var err error

	switch os.Args[1] {
	case "allocate":
		err = runAllocate(ctx, os.Args[2:])
	case "pick":
		err = runPick(ctx, os.Args[2:])
	case "labels":
		err = runLabels(ctx, os.Args[2:])
	case "sync":
		err = runSync(ctx, os.Args[2:])
	case "help", "-help", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`Guitar pedal component organizer

Usage:
  organizer <command> [flags]

Commands:
  allocate  Assign storage slots to catalog components
  pick      Generate a picking sheet for a project BOM
  labels    Render printable drawer labels
  sync      Push drawer assignments to InvenTree

Run "organizer <command> -help" for command flags.`)
}

func runAllocate(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("allocate", flag.ExitOnError)
	var (
		inventoryFile = flags.String("inventory", "", "Inventory snapshot CSV file")
		baseURL       = flags.String("url", "", "Pull live inventory from InvenTree instead of a CSV")
		token         = flags.String("token", "", "InvenTree API token (or set INVENTREE_TOKEN)")
		referenceFile = flags.String("reference", "", "Reference dataset YAML file")
		locationsFile = flags.String("locations", "locations.json", "Location map JSON file")
		verbose       = flags.Bool("verbose", false, "Enable verbose logging")
		help          = flags.Bool("help", false, "Show help message")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewAllocateCommand(commands.AllocateConfig{
		InventoryFile: *inventoryFile,
		BaseURL:       *baseURL,
		Token:         *token,
		ReferenceFile: *referenceFile,
		LocationsFile: *locationsFile,
		Verbose:       *verbose,
		Help:          *help,
	})
	return cmd.Execute(ctx)
}

func runPick(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("pick", flag.ExitOnError)
	var (
		bomFile       = flags.String("bom", "", "Project BOM CSV file")
		project       = flags.String("project", "", "Project name for the sheet header")
		inventoryFile = flags.String("inventory", "", "Inventory snapshot CSV file")
		referenceFile = flags.String("reference", "", "Reference dataset YAML file")
		locationsFile = flags.String("locations", "locations.json", "Location map JSON file")
		outputFile    = flags.String("output", "", "Write the sheet to a file instead of stdout")
		threshold     = flags.Float64("threshold", 0, "Fuzzy match acceptance threshold")
		verbose       = flags.Bool("verbose", false, "Enable verbose logging")
		help          = flags.Bool("help", false, "Show help message")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewPickCommand(commands.PickConfig{
		BOMFile:       *bomFile,
		Project:       *project,
		InventoryFile: *inventoryFile,
		ReferenceFile: *referenceFile,
		LocationsFile: *locationsFile,
		OutputFile:    *outputFile,
		Threshold:     *threshold,
		Verbose:       *verbose,
		Help:          *help,
	})
	return cmd.Execute(ctx)
}

func runLabels(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("labels", flag.ExitOnError)
	var (
		locationsFile = flags.String("locations", "locations.json", "Location map JSON file")
		csvFile       = flags.String("csv", "", "Label CSV output file (default: stdout)")
		xlsxFile      = flags.String("xlsx", "", "Also write an XLSX workbook")
		verbose       = flags.Bool("verbose", false, "Enable verbose logging")
		help          = flags.Bool("help", false, "Show help message")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewLabelsCommand(commands.LabelsConfig{
		LocationsFile: *locationsFile,
		CSVFile:       *csvFile,
		XLSXFile:      *xlsxFile,
		Verbose:       *verbose,
		Help:          *help,
	})
	return cmd.Execute(ctx)
}

func runSync(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("sync", flag.ExitOnError)
	var (
		baseURL       = flags.String("url", "", "InvenTree base URL")
		token         = flags.String("token", "", "API token (or set INVENTREE_TOKEN)")
		locationsFile = flags.String("locations", "locations.json", "Location map JSON file")
		moveStock     = flags.Bool("move-stock", false, "Also transfer stock items to the assigned slots")
		dryRun        = flags.Bool("dry-run", false, "Print planned changes without calling the API")
		verbose       = flags.Bool("verbose", false, "Enable verbose logging")
		help          = flags.Bool("help", false, "Show help message")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewSyncCommand(commands.SyncConfig{
		BaseURL:       *baseURL,
		Token:         *token,
		LocationsFile: *locationsFile,
		MoveStock:     *moveStock,
		DryRun:        *dryRun,
		Verbose:       *verbose,
		Help:          *help,
	})
	return cmd.Execute(ctx)
}
