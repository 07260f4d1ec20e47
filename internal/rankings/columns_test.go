package rankings

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/tpham/dailycard/internal/domain"
)

const sampleTable = `
<table>
<thead><tr>
<th>Rk</th><th>Team</th><th>Conf</th><th>W-L</th>
<th>AdjO</th><th>AdjD</th><th>AdjT</th>
<th>NetRtg</th><th>NetRtg</th><th>NetRtg</th>
</tr></thead>
<tbody>
<tr><td>1</td><td>Duke</td><td>ACC</td><td>30-4</td><td>118.5</td><td>89.2</td><td>68.1</td><td>29.3</td><td>67.9</td><td>4.2</td></tr>
</tbody>
</table>`

func TestParseTableLabeledColumns(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	table, err := ParseTable(doc)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	side, ok := table["duke"]
	if !ok {
		t.Fatalf("expected canonical key for Duke, got keys %v", keysOf(table))
	}
	if side.AdjOffense != 118.5 || side.AdjDefense != 89.2 {
		t.Errorf("unexpected efficiencies: %+v", side)
	}
}

const sampleTableUnlabeled = `
<table>
<thead><tr>
<th>Rk</th><th>Team</th><th>AdjO</th><th>x</th><th>x</th><th>AdjT</th><th>x</th><th>x</th>
</tr></thead>
<tbody>
<tr><td>1</td><td>Gonzaga</td><td>120.0</td><td>0</td><td>95.0</td><td>70.0</td><td>0</td><td>0.10</td></tr>
</tbody>
</table>`

func TestParseTableInfersAdjDAndLuckPositionally(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sampleTableUnlabeled))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	table, err := ParseTable(doc)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	side, ok := table["gonzaga"]
	if !ok {
		t.Fatalf("expected canonical key for Gonzaga, got keys %v", keysOf(table))
	}
	if side.AdjDefense != 95.0 {
		t.Errorf("expected AdjD inferred two cols after AdjO (95.0), got %v", side.AdjDefense)
	}
	if side.Luck != 0.10 {
		t.Errorf("expected Luck inferred two cols after AdjT (0.10), got %v", side.Luck)
	}
}

func TestParseTableDropsOutOfRangeRow(t *testing.T) {
	bad := strings.Replace(sampleTable, "118.5", "999.0", 1)
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(bad))
	table, err := ParseTable(doc)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if _, ok := table["duke"]; ok {
		t.Errorf("expected out-of-range AdjO row to be dropped")
	}
}

func keysOf(m map[string]domain.AdvancedSide) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}
