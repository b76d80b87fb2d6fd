package services

import (
	"testing"
)

func TestParseResistorValue(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantOhms    string
		wantDisplay string
		wantErr     bool
	}{
		{"plain kilohm", "10K", "10000", "10K", false},
		{"decimal kilohm", "4.7K", "4700", "4.7K", false},
		{"megohm", "1M", "1000000", "1M", false},
		{"sub-kilohm R notation", "100R", "100", "100R", false},
		{"qualified name", "10K Resistor", "10000", "10K", false},
		{"ohm word", "470 ohm", "470", "470R", false},
		{"decimal ohms", "2.2R", "2.2", "2.2R", false},
		{"no value", "Resistor", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ohms, display, err := ParseResistorValue(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %s", tt.input, display)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ohms.String() != tt.wantOhms {
				t.Errorf("ohms = %s, want %s", ohms, tt.wantOhms)
			}
			if display != tt.wantDisplay {
				t.Errorf("display = %s, want %s", display, tt.wantDisplay)
			}
		})
	}
}

func TestParseCapacitorValue(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPF      string
		wantDisplay string
		wantSubtype string
		wantErr     bool
	}{
		{"nanofarad ceramic", "100nF Ceramic", "100000", "100nF", "ceramic", false},
		{"picofarad", "47pF", "47", "47pF", "ceramic", false},
		{"microfarad electrolytic", "10uF Electrolytic", "10000000", "10uF", "electrolytic", false},
		{"film cap", "2.2nF Film Capacitor", "2200", "2.2nF", "film", false},
		{"micro sign", "1µF", "1000000", "1uF", "ceramic", false},
		{"lowercase units", "100nf", "100000", "100nF", "ceramic", false},
		{"no value", "Ceramic Capacitor", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf, display, subtype, err := ParseCapacitorValue(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %s", tt.input, display)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pf.String() != tt.wantPF {
				t.Errorf("pf = %s, want %s", pf, tt.wantPF)
			}
			if display != tt.wantDisplay {
				t.Errorf("display = %s, want %s", display, tt.wantDisplay)
			}
			if subtype != tt.wantSubtype {
				t.Errorf("subtype = %s, want %s", subtype, tt.wantSubtype)
			}
		})
	}
}

func TestParsePotValue(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantOhms    string
		wantDisplay string
	}{
		{"taper prefix", "A100K Pot", "100000", "100K"},
		{"linear taper", "B10K", "10000", "10K"},
		{"trimpot", "10K Trimpot", "10000", "10K"},
		{"plain value", "500K Potentiometer", "500000", "500K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ohms, display, err := ParsePotValue(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ohms.String() != tt.wantOhms {
				t.Errorf("ohms = %s, want %s", ohms, tt.wantOhms)
			}
			if display != tt.wantDisplay {
				t.Errorf("display = %s, want %s", display, tt.wantDisplay)
			}
		})
	}
}

func TestNormalizeUnitNotation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"4.7k", "4.7K"},
		{"100NF", "100nF"},
		{"10uf", "10uF"},
		{"220r", "220R"},
		{"TL072", "TL072"},
	}

	for _, tt := range tests {
		if got := NormalizeUnitNotation(tt.input); got != tt.want {
			t.Errorf("NormalizeUnitNotation(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
