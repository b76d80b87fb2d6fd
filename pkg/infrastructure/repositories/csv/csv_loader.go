// Package csv loads BOMs and inventory snapshots from CSV files
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

// Loader handles loading organizer data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadBOM loads a project bill of materials from a CSV file. Lines keep
// their file order; a picking sheet preserves it inside each location group.
func (l *Loader) LoadBOM(filename string) ([]entities.BOMLine, error) {
	records, err := readAll(filename, "BOM")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"reference", "name", "quantity"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("BOM CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var lines []entities.BOMLine
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("BOM CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		qty, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: invalid quantity %q: %w", i+2, record[2], err)
		}
		if qty < 0 {
			return nil, fmt.Errorf("BOM CSV row %d: negative quantity %d", i+2, qty)
		}

		lines = append(lines, entities.BOMLine{
			Reference: strings.TrimSpace(record[0]),
			Name:      strings.TrimSpace(record[1]),
			Quantity:  entities.Quantity(qty),
		})
	}

	return lines, nil
}

// LoadInventory loads an inventory snapshot from a CSV file. Malformed rows
// are collected rather than aborting the load, so one bad row never hides
// the rest of the snapshot; callers surface them for review.
func (l *Loader) LoadInventory(filename string) ([]entities.InventoryRecord, []error, error) {
	records, err := readAll(filename, "inventory")
	if err != nil {
		return nil, nil, err
	}

	expectedHeader := []string{"name", "category", "quantity", "min_quantity"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, nil, fmt.Errorf("inventory CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var inventory []entities.InventoryRecord
	var problems []error
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			problems = append(problems, &entities.MalformedRecordError{
				Source: "inventory",
				Record: fmt.Sprintf("row %d", i+2),
				Reason: fmt.Sprintf("expected %d columns, got %d", len(expectedHeader), len(record)),
			})
			continue
		}

		qty, err := parseQuantity(record[2])
		if err != nil {
			problems = append(problems, &entities.MalformedRecordError{
				Source: "inventory",
				Record: strings.TrimSpace(record[0]),
				Reason: fmt.Sprintf("invalid quantity %q", record[2]),
			})
			continue
		}
		minQty, err := parseQuantity(record[3])
		if err != nil {
			problems = append(problems, &entities.MalformedRecordError{
				Source: "inventory",
				Record: strings.TrimSpace(record[0]),
				Reason: fmt.Sprintf("invalid min_quantity %q", record[3]),
			})
			continue
		}

		inventory = append(inventory, entities.InventoryRecord{
			Name:         strings.TrimSpace(record[0]),
			CategoryPath: strings.TrimSpace(record[1]),
			Quantity:     qty,
			MinQuantity:  minQty,
		})
	}

	return inventory, problems, nil
}

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	return records, nil
}

func parseQuantity(s string) (entities.Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return entities.Quantity(n), nil
}

// validateHeader checks that the header matches the expected columns,
// ignoring case and surrounding whitespace.
func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), expected[i]) {
			return false
		}
	}
	return true
}
