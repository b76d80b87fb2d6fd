package services

import (
	"strings"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

// qualifierRules lists the per-category qualifier words stripped during name
// normalization. Declarative so each rule is testable on its own; matching is
// case-insensitive and whole-word.
var qualifierRules = map[entities.Category][]string{
	entities.Resistor: {"resistor", "ohm", "metal film", "carbon"},
	entities.Capacitor: {
		"capacitor", "cap", "ceramic", "film", "electrolytic", "axial", "radial",
	},
	entities.Diode: {
		"diode", "rectifier", "germanium", "silicon", "schottky", "zener", "signal",
	},
	entities.Transistor: {"transistor", "npn", "pnp", "jfet", "mosfet"},
	entities.IC: {
		"ic", "dual op-amp", "quad op-amp", "single op-amp", "op-amp", "charge pump",
		"regulator", "audio amp", "hex inverter", "delay", "eeprom", "dsp",
	},
	entities.Potentiometer: {"potentiometer", "pot", "trimpot", "trimmer", "audio", "linear"},
	entities.LED:           {"led", "3mm", "5mm", "diffused", "clear"},
}

// StripQualifiers removes the category's qualifier words from a name
func StripQualifiers(cat entities.Category, name string) string {
	words := qualifierRules[cat]
	cleaned := name
	for _, word := range words {
		cleaned = removeWord(cleaned, word)
	}
	return collapseWhitespace(cleaned)
}

// removeWord removes whole-word, case-insensitive occurrences of word
func removeWord(s, word string) string {
	lower := strings.ToLower(s)
	wordLower := strings.ToLower(word)
	for {
		idx := strings.Index(lower, wordLower)
		if idx < 0 {
			return s
		}
		end := idx + len(word)
		boundedLeft := idx == 0 || !isWordChar(lower[idx-1])
		boundedRight := end == len(lower) || !isWordChar(lower[end])
		if boundedLeft && boundedRight {
			s = s[:idx] + s[end:]
			lower = lower[:idx] + lower[end:]
			continue
		}
		// Word appears mid-token ("caps" inside "capsule"); skip past it
		rest := removeWord(s[end:], word)
		return s[:end] + rest
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// categoryCue maps keyword cues in a free-text label to a category. Cues are
// checked in order; the first hit wins.
type categoryCue struct {
	category entities.Category
	words    []string
}

var categoryCues = []categoryCue{
	{entities.LED, []string{"led", "bezel"}},
	{entities.Potentiometer, []string{"potentiometer", "trimpot", "trimmer", " pot", "pot "}},
	{entities.Capacitor, []string{"capacitor", "ceramic", "film cap", "electrolytic", " cap "}},
	{entities.Transistor, []string{"transistor", "npn", "pnp", "jfet", "mosfet"}},
	{entities.Diode, []string{"diode", "rectifier", "schottky", "zener", "germanium", "1n4", "1n5", "1n9", "1n3"}},
	{entities.Resistor, []string{"resistor", "ohm"}},
	{entities.IC, []string{"op-amp", "opamp", "regulator", "charge pump", "inverter", "eeprom", "dsp", " ic", "ic "}},
}

// InferCategory infers a component category from keyword cues in a label.
// Labels carrying only a bare value ("4.7K", "100nF") are classified by
// their unit suffix. Returns CategoryUnknown when no cue matches.
func InferCategory(name string) entities.Category {
	lower := " " + strings.ToLower(strings.TrimSpace(name)) + " "

	for _, cue := range categoryCues {
		for _, word := range cue.words {
			if strings.Contains(lower, word) {
				return cue.category
			}
		}
	}

	// Bare capacitance values carry their unit
	if capacitorPattern.MatchString(name) {
		return entities.Capacitor
	}
	// Bare resistance values end in R/K/M after a digit
	trimmed := strings.ToUpper(strings.TrimSpace(name))
	if len(trimmed) >= 2 {
		last := trimmed[len(trimmed)-1]
		prev := trimmed[len(trimmed)-2]
		if (last == 'R' || last == 'K' || last == 'M') && prev >= '0' && prev <= '9' {
			return entities.Resistor
		}
	}

	return entities.CategoryUnknown
}

// labelPrefixes gives the per-category label prefix. Capacitors and
// transistors refine the prefix by subtype; LEDs by physical size.
var labelPrefixes = map[entities.Category]string{
	entities.Resistor:      "R",
	entities.Capacitor:     "Caps",
	entities.Diode:         "Diodes",
	entities.Transistor:    "Q",
	entities.IC:            "IC",
	entities.Potentiometer: "Pots",
	entities.LED:           "LEDs",
}

var capacitorAbbrev = map[string]string{
	"ceramic":      "Cer",
	"film":         "Film",
	"electrolytic": "Elect",
}

// LabelPrefix returns the drawer-label prefix for a category and subtype,
// e.g. "R:", "Caps Cer:", "Q NPN:", "LEDs 3mm:".
func LabelPrefix(cat entities.Category, subtype string) string {
	prefix := labelPrefixes[cat]
	switch cat {
	case entities.Capacitor:
		if abbrev, ok := capacitorAbbrev[strings.ToLower(subtype)]; ok {
			prefix += " " + abbrev
		}
	case entities.Transistor:
		if subtype != "" {
			prefix += " " + strings.ToUpper(subtype)
		}
	case entities.LED:
		if subtype != "" {
			prefix += " " + strings.ToLower(subtype)
		}
	}
	return prefix + ":"
}
