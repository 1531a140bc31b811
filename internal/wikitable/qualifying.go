package wikitable

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/f1wiki/f1-wikitable/internal/laptime"
	"github.com/f1wiki/f1-wikitable/internal/model"
)

// Knockout bands of the 20-car format: rows from q3Cut on were knocked
// out in Q2, rows from q2Cut on in Q1.
const (
	q3Cut = 10
	q2Cut = 15
)

const qualifyingHeader = `===Qualifying Results===
The full qualifying results for the '''{{PAGENAME}}''' are outlined below:

{|class="wikitable" width=100%% style="font-size:77%%"
! rowspan=2 width=4%% | <span style="cursor:help" title="Position">Pos.</span>
! rowspan=2 width=5%% | <span style="cursor:help" title="Car Number">No.</span>
! rowspan=2 width=23%% | Driver
! rowspan=2 width=23%% | Team
| rowspan=%[1]d width=1px |
! colspan=2 width=13%% | <span style="cursor:help" title="Qualifying 1">Q1</span>
| rowspan=%[1]d width=1px |
! colspan=2 width=13%% | <span style="cursor:help" title="Qualifying 2">Q2</span>
| rowspan=%[1]d width=1px |
! colspan=2 width=13%% | <span style="cursor:help" title="Qualifying 3">Q3</span>
! rowspan=2 width=5%% | Grid
|-
! width=4%% | <span style="cursor:help" title="Position">Pos.</span>
! width=9%% | Time
! width=4%% | <span style="cursor:help" title="Position">Pos.</span>
! width=9%% | Time
! width=4%% | <span style="cursor:help" title="Position">Pos.</span>
! width=9%% | Time
`

const bandSeparator = "|-\n|colspan=14 style=\"border-bottom:hidden\"|\n|-\n|colspan=14|\n|-\n"

const qualifyingLegend = "*'''Bold''' indicates the fastest driver's time in each session.\n"

// segment holds the ranking of one qualifying segment, computed on a
// time-sorted copy of the rows. Rows without a parsable time are unranked.
type segment struct {
	rank    map[int]int
	fastest int
}

func rankSegment(rows []model.QualifyingRow, seg int) segment {
	type timed struct {
		index int
		ms    int64
	}
	var times []timed
	for i, r := range rows {
		if ms, ok := laptime.Millis(r.SegmentTime(seg)); ok {
			times = append(times, timed{index: i, ms: ms})
		}
	}
	sort.SliceStable(times, func(a, b int) bool { return times[a].ms < times[b].ms })

	s := segment{rank: make(map[int]int, len(times)), fastest: -1}
	for n, t := range times {
		s.rank[t.index] = n + 1
	}
	if len(times) > 0 {
		s.fastest = times[0].index
	}
	return s
}

// Qualifying writes the full qualifying classification with per-segment
// positions, the 107% time and the source citation.
func (f *Formatter) Qualifying(w io.Writer, q *model.Qualifying) error {
	if q == nil || len(q.Rows) == 0 {
		return eris.Wrap(ErrNoData, "wikitable: qualifying")
	}

	rows := q.Rows
	n := len(rows)
	q1 := rankSegment(rows, 1)
	q2 := rankSegment(rows, 2)
	q3 := rankSegment(rows, 3)

	var b strings.Builder
	fmt.Fprintf(&b, qualifyingHeader, spacerRows(n))

	for i, r := range rows {
		pos := strconv.Itoa(r.Position)

		if i == q3Cut || i == q2Cut {
			b.WriteString(bandSeparator)
		} else {
			b.WriteString("|-\n")
		}
		cell(&b, "!", pos)
		cell(&b, "| align=center |", r.Number)
		cell(&b, "|", f.driverCell(r.Driver))
		cell(&b, "|", f.teamCell(r.Constructor))

		// Q1: positions are locked for drivers knocked out in Q1.
		q1Pos := pos
		if i < q2Cut {
			q1Pos = rankText(q1, i)
		}
		segmentCells(&b, q1Pos, r.Q1, q1.fastest == i)

		// Q2
		switch {
		case i < q3Cut:
			segmentCells(&b, rankText(q2, i), r.Q2, q2.fastest == i)
		case i < q2Cut:
			segmentCells(&b, pos, r.Q2, q2.fastest == i)
		case i == q2Cut:
			// Q2 and Q3 blanks for everyone knocked out in Q1.
			span := spanCell(n - q2Cut)
			b.WriteString(span + span)
		}

		// Q3
		switch {
		case i < q3Cut:
			segmentCells(&b, pos, r.Q3, q3.fastest == i)
		case i == q3Cut:
			b.WriteString(spanCell(min(n, q2Cut) - q3Cut))
		}

		cell(&b, "!", pos)
	}

	if q1.fastest >= 0 {
		b.WriteString("|-\n")
		fmt.Fprintf(&b, "! colspan=14 | [[107%% Time]]: %s\n", laptime.Cutoff107(rows[q1.fastest].Q1))
	}
	b.WriteString("|-\n")
	fmt.Fprintf(&b, "! colspan=14 | Source:<ref name=QR>{{PAGENAME}} - Qualifying, ''%s'', (Formula One World Championship Limited, %d. Retrieved on %s)</ref>\n",
		expandURL(f.citations.QualifyingURL, q.Race), q.Season, f.retrieved())
	b.WriteString("|}\n")
	b.WriteString(qualifyingLegend)

	return flush(w, &b)
}

// spacerRows is the height of the spacer columns: two header rows, one
// row per driver and two rows for each band separator actually written.
func spacerRows(n int) int {
	rows := n + 2
	for _, cut := range []int{q3Cut, q2Cut} {
		if cut < n {
			rows += 2
		}
	}
	return rows
}

func rankText(s segment, i int) string {
	if r, ok := s.rank[i]; ok {
		return strconv.Itoa(r)
	}
	return ""
}

// segmentCells writes the position and time cells of one segment. A
// driver without a time in a segment they took part in gets blank cells.
func segmentCells(b *strings.Builder, pos, lap string, fastest bool) {
	if lap == "" {
		b.WriteString("!\n|\n")
		return
	}
	cell(b, "!", pos)
	if fastest {
		lap = bold(lap)
	}
	cell(b, "|", lap)
}

// spanCell opens a blank position and time cell pair spanning rows.
func spanCell(rows int) string {
	return fmt.Sprintf("! rowspan=\"%d\" |\n| rowspan=\"%d\" |\n", rows, rows)
}
