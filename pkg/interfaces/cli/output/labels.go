package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

// LabelPair is one printable label row covering two vertically adjacent
// drawers. The label template prints two drawer lines per physical sticker,
// so consecutive drawers of a unit pair up; an odd trailing drawer leaves
// the bottom half empty.
type LabelPair struct {
	Unit        string
	BinTop      string
	BinBottom   string
	LabelTop    string
	LabelBottom string
}

// PairLabels folds drawer labels into printable pairs, preserving order
func PairLabels(labels []entities.DrawerLabel) []LabelPair {
	var pairs []LabelPair
	i := 0
	for i < len(labels) {
		pair := LabelPair{
			Unit:     labels[i].Unit,
			BinTop:   labels[i].Drawer,
			LabelTop: labels[i].Text,
		}
		// Never pair drawers across units
		if i+1 < len(labels) && labels[i+1].Unit == labels[i].Unit {
			pair.BinBottom = labels[i+1].Drawer
			pair.LabelBottom = labels[i+1].Text
			i += 2
		} else {
			i++
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// labelHeader matches the column layout the label template expects; the
// trailing empty columns are part of the template.
var labelHeader = []string{
	"Unit", "Bin_Top", "Bin_Bottom", "Label_Top", "Label_Bottom",
	"", "", "", "", "", "", "",
}

// WriteLabelCSV writes label pairs in the merge-source layout for the label
// printing template.
func WriteLabelCSV(w io.Writer, pairs []LabelPair) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(labelHeader); err != nil {
		return fmt.Errorf("writing label header: %w", err)
	}
	for _, pair := range pairs {
		row := []string{
			pair.Unit, pair.BinTop, pair.BinBottom, pair.LabelTop, pair.LabelBottom,
			"", "", "", "", "", "", "",
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing label row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteLabelXLSX writes label pairs as a spreadsheet for manual touch-up
// before printing.
func WriteLabelXLSX(filename string, pairs []LabelPair) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	columns := []string{"Unit", "Bin_Top", "Bin_Bottom", "Label_Top", "Label_Bottom"}
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("building header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("writing header cell: %w", err)
		}
	}

	for row, pair := range pairs {
		values := []string{pair.Unit, pair.BinTop, pair.BinBottom, pair.LabelTop, pair.LabelBottom}
		for i, value := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return fmt.Errorf("building cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing cell: %w", err)
			}
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("saving label workbook %s: %w", filename, err)
	}
	return nil
}
