// Package yamlref loads the reference component dataset from YAML
package yamlref

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

// referenceFile mirrors the on-disk YAML schema. Categories with subtypes
// nest one section per subtype; flat categories carry values directly.
type referenceFile struct {
	Resistors      valueSection            `yaml:"resistors"`
	Capacitors     map[string]valueSection `yaml:"capacitors"`
	Diodes         valueSection            `yaml:"diodes"`
	Transistors    map[string]valueSection `yaml:"transistors"`
	ICs            valueSection            `yaml:"ics"`
	Potentiometers valueSection            `yaml:"potentiometers"`
	LEDs           map[string]valueSection `yaml:"leds"`
}

type valueSection struct {
	Values []referenceValue `yaml:"values"`
}

type referenceValue struct {
	Value      string `yaml:"value"`
	UsageCount int    `yaml:"usage_count"`
	Priority   string `yaml:"priority"`
}

// Loader loads reference datasets from YAML files
type Loader struct{}

// NewLoader creates a new reference dataset loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and validates a reference dataset file
func (l *Loader) Load(filename string) (*entities.ReferenceDataset, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file %s: %w", filename, err)
	}

	var file referenceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse reference YAML: %w", err)
	}

	dataset := entities.NewReferenceDataset()

	flat := []struct {
		cat     entities.Category
		section valueSection
	}{
		{entities.Resistor, file.Resistors},
		{entities.Diode, file.Diodes},
		{entities.IC, file.ICs},
		{entities.Potentiometer, file.Potentiometers},
	}
	for _, section := range flat {
		entries, err := convertSection(section.cat, "", section.section)
		if err != nil {
			return nil, err
		}
		dataset.Entries[section.cat] = append(dataset.Entries[section.cat], entries...)
	}

	subtyped := []struct {
		cat      entities.Category
		order    []string
		sections map[string]valueSection
	}{
		{entities.Capacitor, []string{"ceramic", "film", "electrolytic"}, file.Capacitors},
		{entities.Transistor, []string{"npn", "pnp", "jfet", "mosfet"}, file.Transistors},
		{entities.LED, []string{"3mm", "5mm"}, file.LEDs},
	}
	for _, group := range subtyped {
		for _, subtype := range group.order {
			section, ok := group.sections[subtype]
			if !ok {
				continue
			}
			entries, err := convertSection(group.cat, subtype, section)
			if err != nil {
				return nil, err
			}
			dataset.Entries[group.cat] = append(dataset.Entries[group.cat], entries...)
		}
		for subtype := range group.sections {
			if !contains(group.order, subtype) {
				return nil, fmt.Errorf("reference file: unknown %s subtype %q", group.cat, subtype)
			}
		}
	}

	return dataset, nil
}

func convertSection(cat entities.Category, subtype string, section valueSection) ([]entities.ReferenceEntry, error) {
	entries := make([]entities.ReferenceEntry, 0, len(section.Values))
	for _, value := range section.Values {
		priority, err := entities.ParsePriority(value.Priority)
		if err != nil {
			return nil, fmt.Errorf("reference entry %s %q: %w", cat, value.Value, err)
		}
		entries = append(entries, entities.ReferenceEntry{
			Value:      value.Value,
			Subtype:    subtype,
			UsageCount: value.UsageCount,
			Priority:   priority,
		})
	}
	return entries, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
