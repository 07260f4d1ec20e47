package rankings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/names"
)

// columnIndex records, by label, which <td> position a stat lives in.
// Most labels are found directly; AdjD and Luck are inferred positionally
// when the header text is ambiguous or missing (§4.5).
type columnIndex struct {
	rank, team                     int
	adjO, adjD, adjT               int
	netRtg, nonConfSOS             int
	luck                           int
	hasAdjD, hasLuck, hasNonConfSOS bool
}

// ParseTable scrapes the header row to locate columns by label, then walks
// each data row building one AdvancedSide per team, keyed by canonical name.
func ParseTable(doc *goquery.Document) (map[string]domain.AdvancedSide, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("rankings: no table found in response")
	}

	idx, err := locateColumns(table)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.AdvancedSide)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() <= idx.team {
			return
		}
		team := strings.TrimSpace(cells.Eq(idx.team).Text())
		if team == "" {
			return
		}

		side := domain.AdvancedSide{Available: true}
		side.AdjOffense = cellFloat(cells, idx.adjO)
		side.AdjTempo = cellFloat(cells, idx.adjT)
		side.NetRating = cellFloat(cells, idx.netRtg)

		if idx.hasAdjD {
			side.AdjDefense = cellFloat(cells, idx.adjD)
		} else {
			// Rule: AdjD is two columns to the right of AdjO when unlabeled.
			side.AdjDefense = cellFloat(cells, idx.adjO+2)
		}

		if idx.hasLuck {
			side.Luck = cellFloat(cells, idx.luck)
		} else {
			// Rule: Luck sits two columns to the right of AdjT when unlabeled.
			side.Luck = cellFloat(cells, idx.adjT+2)
		}

		if idx.hasNonConfSOS {
			side.StrengthOfSked = cellFloat(cells, idx.nonConfSOS)
		}

		if rank := cellFloat(cells, idx.rank); rank > 0 {
			side.ExternalRank = int(rank)
		}

		if !inRange(side) {
			return // §4.5: out-of-range values are dropped, not clamped
		}

		canon := names.Canonical(team)
		out[canon] = side
		out[names.Normalize(team, true)] = side
	})

	return out, nil
}

// locateColumns finds header cells by label text. "NetRtg" appears as a
// group of three adjacent columns — net rating, adjusted tempo, non-conference
// strength of schedule, in that order — which the raw HTML does not
// otherwise distinguish (§4.5).
func locateColumns(table *goquery.Selection) (columnIndex, error) {
	idx := columnIndex{rank: -1, team: -1, adjO: -1, adjD: -1, adjT: -1, netRtg: -1, nonConfSOS: -1, luck: -1}

	headerCells := table.Find("thead tr").First().Find("th")
	if headerCells.Length() == 0 {
		headerCells = table.Find("tr").First().Find("th")
	}

	netRtgSeen := 0
	headerCells.Each(func(i int, cell *goquery.Selection) {
		label := strings.TrimSpace(cell.Text())
		switch {
		case label == "Rk" || label == "Rank":
			idx.rank = i
		case label == "Team":
			idx.team = i
		case label == "AdjO" || label == "AdjOE":
			idx.adjO = i
		case label == "AdjD" || label == "AdjDE":
			idx.adjD = i
			idx.hasAdjD = true
		case label == "AdjT" || label == "AdjTempo":
			idx.adjT = i
		case label == "Luck":
			idx.luck = i
			idx.hasLuck = true
		case label == "NetRtg":
			// First occurrence: net rating. Second: adjusted tempo (only if
			// AdjT wasn't already found by its own label). Third: non-conference SOS.
			switch netRtgSeen {
			case 0:
				idx.netRtg = i
			case 1:
				if idx.adjT < 0 {
					idx.adjT = i
				}
			case 2:
				idx.nonConfSOS = i
				idx.hasNonConfSOS = true
			}
			netRtgSeen++
		}
	})

	if idx.team < 0 {
		return idx, fmt.Errorf("rankings: could not locate Team column in header")
	}
	if idx.adjO < 0 {
		return idx, fmt.Errorf("rankings: could not locate AdjO column in header")
	}
	if idx.adjT < 0 {
		return idx, fmt.Errorf("rankings: could not locate AdjT column in header")
	}
	return idx, nil
}

func cellFloat(cells *goquery.Selection, i int) float64 {
	if i < 0 || i >= cells.Length() {
		return 0
	}
	text := strings.TrimSpace(cells.Eq(i).Text())
	text = strings.TrimSuffix(text, "%")
	// Some columns append a parenthetical national rank, e.g. "114.2 3".
	if sp := strings.IndexByte(text, ' '); sp > 0 {
		text = text[:sp]
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return v
}

// inRange enforces the §4.5 sanity bounds: efficiencies in [70,130], luck
// in [-0.5,0.5]. A row that fails is dropped, not clamped, so a garbled
// scrape never silently becomes a confident pick input.
func inRange(side domain.AdvancedSide) bool {
	if side.AdjOffense < 70 || side.AdjOffense > 130 {
		return false
	}
	if side.AdjDefense < 70 || side.AdjDefense > 130 {
		return false
	}
	if side.Luck < -0.5 || side.Luck > 0.5 {
		return false
	}
	return true
}
