package output

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
)

func TestPairLabels(t *testing.T) {
	labels := []entities.DrawerLabel{
		{Unit: "U1", Drawer: "S1", Text: "R: 100R  |  220R"},
		{Unit: "U1", Drawer: "S2", Text: "R: 1K  |  4.7K"},
		{Unit: "U1", Drawer: "S3", Text: "R: 10K"},
		{Unit: "U2", Drawer: "M1", Text: "IC: TL072"},
	}

	pairs := PairLabels(labels)
	if len(pairs) != 3 {
		t.Fatalf("pairs = %d, want 3", len(pairs))
	}

	if pairs[0].BinTop != "S1" || pairs[0].BinBottom != "S2" {
		t.Errorf("first pair = %s/%s", pairs[0].BinTop, pairs[0].BinBottom)
	}

	// S3 cannot pair with M1 across the unit boundary
	if pairs[1].BinTop != "S3" || pairs[1].BinBottom != "" {
		t.Errorf("second pair = %s/%s, want S3 alone", pairs[1].BinTop, pairs[1].BinBottom)
	}
	if pairs[2].Unit != "U2" || pairs[2].BinTop != "M1" || pairs[2].BinBottom != "" {
		t.Errorf("third pair = %+v", pairs[2])
	}
}

func TestWriteLabelCSV(t *testing.T) {
	pairs := []LabelPair{
		{Unit: "U1", BinTop: "S1", BinBottom: "S2", LabelTop: "R: 100R", LabelBottom: "R: 1K"},
	}

	var sb strings.Builder
	if err := WriteLabelCSV(&sb, pairs); err != nil {
		t.Fatalf("WriteLabelCSV failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("rows = %d, want 2", len(records))
	}
	if records[0][0] != "Unit" || records[0][1] != "Bin_Top" || records[0][4] != "Label_Bottom" {
		t.Errorf("header = %v", records[0])
	}
	if len(records[0]) != 12 {
		t.Errorf("header columns = %d, want 12", len(records[0]))
	}
	if records[1][3] != "R: 100R" || records[1][4] != "R: 1K" {
		t.Errorf("data row = %v", records[1])
	}
}
