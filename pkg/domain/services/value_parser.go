package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

var (
	resistorPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([KMR])?`)
	capacitorPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*([pnuµ]F)`)
	potPattern       = regexp.MustCompile(`(?i)[ABCW]?(\d+(?:\.\d+)?\s*[KM]?)`)
)

// ParseResistorValue parses a resistance from a free-text name and returns
// the value in ohms plus the canonical display form.
//
//	"10K Resistor"  -> 10000, "10K"
//	"4.7K"          -> 4700, "4.7K"
//	"100R Resistor" -> 100, "100R"
func ParseResistorValue(name string) (decimal.Decimal, string, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ToUpper(name), "OHM", ""))

	match := resistorPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return decimal.Zero, "", fmt.Errorf("no resistance value in %q", name)
	}

	value, err := decimal.NewFromString(match[1])
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("invalid resistance value in %q: %w", name, err)
	}

	switch match[2] {
	case "K":
		return value.Shift(3), match[1] + "K", nil
	case "M":
		return value.Shift(6), match[1] + "M", nil
	default:
		// Values under 1K use R notation
		if value.LessThan(decimal.NewFromInt(1000)) {
			return value, trimDecimal(value) + "R", nil
		}
		return value, match[1], nil
	}
}

// ParseCapacitorValue parses a capacitance from a free-text name and returns
// the value in picofarads, the canonical display form, and the subtype
// inferred from the name (ceramic unless the name says otherwise).
func ParseCapacitorValue(name string) (decimal.Decimal, string, string, error) {
	subtype := "ceramic"
	lower := strings.ToLower(name)
	if strings.Contains(lower, "film") {
		subtype = "film"
	} else if strings.Contains(lower, "electrolytic") || strings.Contains(lower, "elec") {
		subtype = "electrolytic"
	}

	match := capacitorPattern.FindStringSubmatch(name)
	if match == nil {
		return decimal.Zero, "", subtype, fmt.Errorf("no capacitance value in %q", name)
	}

	value, err := decimal.NewFromString(match[1])
	if err != nil {
		return decimal.Zero, "", subtype, fmt.Errorf("invalid capacitance value in %q: %w", name, err)
	}

	var pf decimal.Decimal
	switch strings.ToLower(match[2]) {
	case "pf":
		pf = value
	case "nf":
		pf = value.Shift(3)
	default: // uF / µF
		pf = value.Shift(6)
	}

	var display string
	switch {
	case pf.LessThan(decimal.NewFromInt(1000)):
		display = trimDecimal(value) + "pF"
	case pf.LessThan(decimal.NewFromInt(1000000)):
		display = match[1] + "nF"
	default:
		display = match[1] + "uF"
	}

	return pf, display, subtype, nil
}

// ParsePotValue extracts the resistance value from potentiometer names in
// their common taper-prefixed forms ("A100K Pot" -> "100K", "B10K" -> "10K",
// "10K Trimpot" -> "10K").
func ParsePotValue(name string) (decimal.Decimal, string, error) {
	cleaned := strings.TrimSpace(name)
	for _, word := range []string{"potentiometer", "trimpot", "trimmer", "pot"} {
		cleaned = replaceFold(cleaned, word, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	match := potPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return decimal.Zero, "", fmt.Errorf("no pot value in %q", name)
	}

	return ParseResistorValue(match[1])
}

// NormalizeUnitNotation canonicalizes value suffixes so "4.7k" and "4.7K"
// compare equal, and "100NF" renders as "100nF".
func NormalizeUnitNotation(value string) string {
	v := strings.TrimSpace(value)

	if m := capacitorPattern.FindStringSubmatch(v); m != nil {
		unit := strings.ToLower(m[2])
		return m[1] + unit[:1] + "F"
	}

	upper := strings.ToUpper(v)
	if resistorPattern.MatchString(upper) && (strings.HasSuffix(upper, "K") ||
		strings.HasSuffix(upper, "M") || strings.HasSuffix(upper, "R")) {
		return upper
	}

	return v
}

// trimDecimal renders a decimal without a trailing ".0" ("470" not "470.0")
func trimDecimal(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.Truncate(0).String()
	}
	return d.String()
}

// replaceFold removes every case-insensitive occurrence of old from s
func replaceFold(s, old, new string) string {
	lower := strings.ToLower(s)
	oldLower := strings.ToLower(old)
	var out strings.Builder
	for {
		idx := strings.Index(lower, oldLower)
		if idx < 0 {
			out.WriteString(s)
			return out.String()
		}
		out.WriteString(s[:idx])
		out.WriteString(new)
		s = s[idx+len(old):]
		lower = lower[idx+len(old):]
	}
}

// ParseNumericValue parses the ordering magnitude for a spec in the given
// category. Categories without numeric values return zero.
func ParseNumericValue(cat entities.Category, value string) decimal.Decimal {
	switch cat {
	case entities.Resistor:
		if n, _, err := ParseResistorValue(value); err == nil {
			return n
		}
	case entities.Capacitor:
		if n, _, _, err := ParseCapacitorValue(value); err == nil {
			return n
		}
	case entities.Potentiometer:
		if n, _, err := ParsePotValue(value); err == nil {
			return n
		}
	}
	return decimal.Zero
}
