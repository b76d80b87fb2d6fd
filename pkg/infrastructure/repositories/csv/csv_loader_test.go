package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBOM(t *testing.T) {
	path := writeTemp(t, "bom.csv", `reference,name,quantity
R1,4.7K Resistor,1
C1,100nF Ceramic,2
D1,1N4148,1
`)

	lines, err := NewLoader().LoadBOM(path)
	if err != nil {
		t.Fatalf("LoadBOM failed: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0].Reference != "R1" || lines[0].Name != "4.7K Resistor" || lines[0].Quantity != 1 {
		t.Errorf("first line = %+v", lines[0])
	}
	if lines[1].Quantity != 2 {
		t.Errorf("C1 quantity = %d, want 2", lines[1].Quantity)
	}
}

func TestLoadBOMRejectsBadHeader(t *testing.T) {
	path := writeTemp(t, "bom.csv", `ref,part,qty
R1,4.7K,1
`)
	if _, err := NewLoader().LoadBOM(path); err == nil {
		t.Error("expected header mismatch error")
	}
}

func TestLoadBOMRejectsBadQuantity(t *testing.T) {
	path := writeTemp(t, "bom.csv", `reference,name,quantity
R1,4.7K,many
`)
	if _, err := NewLoader().LoadBOM(path); err == nil {
		t.Error("expected quantity parse error")
	}
}

func TestLoadInventoryCollectsBadRows(t *testing.T) {
	path := writeTemp(t, "inventory.csv", `name,category,quantity,min_quantity
4.7K Resistor,Electronics/Resistors,100,50
10K Resistor,Electronics/Resistors,lots,0
100nF Ceramic,Electronics/Capacitors,40,
`)

	records, problems, err := NewLoader().LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	// The bad row is reported, not fatal; the empty min_quantity defaults to 0
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if len(problems) != 1 {
		t.Fatalf("problems = %d, want 1", len(problems))
	}
	if _, ok := problems[0].(*entities.MalformedRecordError); !ok {
		t.Errorf("problem type = %T, want MalformedRecordError", problems[0])
	}
	if records[1].Name != "100nF Ceramic" || records[1].MinQuantity != 0 {
		t.Errorf("third row = %+v", records[1])
	}
}

func TestLoadInventoryRequiresData(t *testing.T) {
	path := writeTemp(t, "inventory.csv", "name,category,quantity,min_quantity\n")
	if _, _, err := NewLoader().LoadInventory(path); err == nil {
		t.Error("expected error for header-only file")
	}
}
