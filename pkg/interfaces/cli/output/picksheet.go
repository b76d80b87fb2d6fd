// Package output renders picking sheets and label files
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

const ruleWidth = 70

// WritePickSheet renders a pick list as a plain-text picking sheet. The
// output carries no timestamps, so two runs over the same inputs produce
// byte-identical sheets.
func WritePickSheet(w io.Writer, pickList *entities.PickList) error {
	var b strings.Builder

	fmt.Fprintf(&b, "PICKING SHEET: %s\n", pickList.Project)
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	fmt.Fprintf(&b, "Total BOM items: %d\n", pickList.Summary.TotalLines)

	for _, group := range pickList.Groups {
		location := "UNASSIGNED"
		if group.Slot != nil {
			location = group.Slot.Label()
		}
		fmt.Fprintf(&b, "\nLOCATION: %s\n", location)
		b.WriteString(strings.Repeat("-", ruleWidth) + "\n")

		for _, entry := range group.Entries {
			qty := ""
			if entry.Required > 1 {
				qty = fmt.Sprintf("(x%d)", entry.Required)
			}
			indicator := "✓"
			if entry.Identity == nil {
				indicator = "?"
			} else if !entry.Sufficient {
				indicator = "⚠"
			}
			fmt.Fprintf(&b, "  [ ] %-8s %-30s %-6s %s\n", entry.Reference, entry.Name, qty, indicator)
		}
	}

	summary := pickList.Summary
	b.WriteString("\n" + strings.Repeat("=", ruleWidth) + "\n")
	b.WriteString("SUMMARY:\n")
	fmt.Fprintf(&b, "  Total items to pick: %d\n", summary.TotalLines)
	fmt.Fprintf(&b, "  Unique locations: %d\n", summary.UniqueLocations)
	fmt.Fprintf(&b, "  Items in stock: %d/%d\n", summary.InStock, summary.TotalLines)

	if len(summary.Shortages) > 0 {
		fmt.Fprintf(&b, "\n  ⚠ WARNING: %d items need to be ordered!\n", len(summary.Shortages))
		b.WriteString("\n  Missing items:\n")
		for _, shortage := range summary.Shortages {
			fmt.Fprintf(&b, "    - %s: need %d more (have %d)\n",
				shortage.Name, shortage.Shortfall, shortage.OnHand)
		}
	}
	if len(summary.Unmatched) > 0 {
		b.WriteString("\n  Unrecognized items (resolve manually):\n")
		for _, name := range summary.Unmatched {
			fmt.Fprintf(&b, "    - %s\n", name)
		}
	}

	b.WriteString("\n✓ = In stock | ⚠ = Needs ordering | ? = Unrecognized\n")

	_, err := io.WriteString(w, b.String())
	return err
}
