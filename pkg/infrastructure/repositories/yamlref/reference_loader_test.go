package yamlref

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

const sampleReference = `
resistors:
  values:
    - value: "4.7K"
      usage_count: 12
      priority: essential
    - value: "10K"
      usage_count: 30
      priority: essential

capacitors:
  ceramic:
    values:
      - value: "100nF"
        usage_count: 25
        priority: essential
  film:
    values:
      - value: "100nF"
        usage_count: 8

transistors:
  npn:
    values:
      - value: "2N3904"
        usage_count: 10
        priority: optional

leds:
  3mm:
    values:
      - value: "Red"
        usage_count: 6
`

func writeReference(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "components.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadReference(t *testing.T) {
	dataset, err := NewLoader().Load(writeReference(t, sampleReference))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	resistors := dataset.Entries[entities.Resistor]
	if len(resistors) != 2 {
		t.Fatalf("resistors = %d, want 2", len(resistors))
	}
	if resistors[0].Value != "4.7K" || resistors[0].UsageCount != 12 || resistors[0].Priority != entities.Essential {
		t.Errorf("first resistor = %+v", resistors[0])
	}

	capacitors := dataset.Entries[entities.Capacitor]
	if len(capacitors) != 2 {
		t.Fatalf("capacitors = %d, want 2", len(capacitors))
	}
	// Subtype sections emit in fixed order: ceramic before film
	if capacitors[0].Subtype != "ceramic" || capacitors[1].Subtype != "film" {
		t.Errorf("capacitor subtypes = %s, %s", capacitors[0].Subtype, capacitors[1].Subtype)
	}
	// Missing priority defaults to optional
	if capacitors[1].Priority != entities.Optional {
		t.Errorf("film priority = %s, want optional", capacitors[1].Priority)
	}

	leds := dataset.Entries[entities.LED]
	if len(leds) != 1 || leds[0].Subtype != "3mm" {
		t.Errorf("leds = %+v", leds)
	}
}

func TestLoadReferenceRejectsUnknownSubtype(t *testing.T) {
	bad := `
capacitors:
  tantalum:
    values:
      - value: "10uF"
`
	if _, err := NewLoader().Load(writeReference(t, bad)); err == nil {
		t.Error("expected error for unknown subtype")
	}
}

func TestLoadReferenceRejectsBadPriority(t *testing.T) {
	bad := `
resistors:
  values:
    - value: "10K"
      priority: critical
`
	if _, err := NewLoader().Load(writeReference(t, bad)); err == nil {
		t.Error("expected error for invalid priority")
	}
}
