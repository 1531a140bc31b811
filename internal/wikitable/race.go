package wikitable

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/f1wiki/f1-wikitable/internal/model"
)

const raceHeader = `===Results===
The full %s results for the '''{{PAGENAME}}''' are outlined below:
{| class="wikitable"
! <span style="cursor:help;" title=" Position">Pos.</span>
! <span style="cursor:help;" title=" Car number">No.</span>
! Driver
! Constructor
! <span style="cursor:help;" title=" Laps completed">Laps</span>
! <span style="cursor:help;" title=" Time for winner, time or number laps behind leader or reason for retirement">Time/Retired</span>
! <span style="cursor:help;" title=" Grid position">Grid</span>
! <span style="cursor:help;" title=" Points gained from race">Points</span>
`

const (
	raceCitation   = `! colspan="8" | Source:<ref name=Race Results>[https://www.fia.com/sites/default/files/decision-document/{{urlencode: {{PAGENAME}} |PATH}}%20-%20Final%20Race%20Classification.pdf {{PAGENAME}} - Final Race Classification] (PDF). Fédération Internationale de l'Automobile.</ref>`
	sprintCitation = `! colspan="8" | Source:<ref name=Sprint Results>[https://www.fia.com/sites/default/files/decision-document/{{urlencode: {{PAGENAME}} |PATH}}%20-%20Final%20Sprint%20Classification.pdf {{PAGENAME}} - Final Sprint Classification] (PDF). Fédération Internationale de l'Automobile.</ref>`
)

const (
	pitLane         = "{{abbr|PL|Pit Lane}}"
	fastestLapBonus = "<sup>{{abbr|[[Fastest lap|FL]]|+1 point for achieving the fastest lap}}</sup>"
)

// Point totals that only occur with the fastest lap bonus on top of the
// 25-18-15-12-10-8-6-4-2-1 scale. A tenth place with the bonus scores 2.
var fastestLapPoints = map[string]bool{
	"26": true, "19": true, "16": true, "13": true, "11": true,
	"9": true, "7": true, "5": true, "3": true,
}

// Seasons that awarded the bonus point on that scale.
const (
	fastestLapPointFrom  = 2019
	fastestLapPointUntil = 2024
)

// Race writes a race or sprint classification.
func (f *Formatter) Race(w io.Writer, res *model.RaceResult) error {
	if res == nil || len(res.Rows) == 0 {
		return eris.Wrap(ErrNoData, "wikitable: race")
	}

	sprint := res.Kind == model.SessionSprint
	// Rows from the offset on score nothing and share one blank points cell.
	offset, wording, citation := 10, "race", raceCitation
	if sprint {
		offset, wording, citation = 8, "Sprint", sprintCitation
	}
	n := len(res.Rows)

	var b strings.Builder
	fmt.Fprintf(&b, raceHeader, wording)

	for i, r := range res.Rows {
		b.WriteString("|-\n")

		pos := r.PositionText
		if !r.Classified() {
			pos = f.tables.Status(r.PositionText).Markup
		}
		cell(&b, "!", pos)
		cell(&b, "| align=center |", r.Number)
		cell(&b, "|", f.driverCell(r.Driver))
		cell(&b, "|", f.teamCell(r.Constructor))
		cell(&b, "|", r.Laps)

		if r.Time != "" {
			cell(&b, "|", r.Time)
		} else {
			cell(&b, "|", r.Status)
		}

		grid := r.Grid
		if grid == "0" {
			grid = pitLane
		}
		cell(&b, "|", grid)

		switch {
		case i < offset:
			cell(&b, "!", pointsCell(r, sprint, res.Season))
		case i == offset:
			fmt.Fprintf(&b, "! rowspan=%d |\n", n-offset)
		}
	}

	b.WriteString("|-\n")
	b.WriteString(citation + "\n")
	b.WriteString("|}\n")

	return flush(w, &b)
}

func pointsCell(r model.RaceRow, sprint bool, season int) string {
	if r.Points == "0" || r.Points == "" {
		return ""
	}
	if !sprint && hasFastestLapBonus(r, season) {
		return r.Points + fastestLapBonus
	}
	return r.Points
}

// hasFastestLapBonus infers the bonus point from the points total. When
// the provider reports fastest lap ranks, a total from the bonus set that
// did not come with the fastest lap is left alone. Other seasons used
// other scales, so nothing is inferred for them.
func hasFastestLapBonus(r model.RaceRow, season int) bool {
	if season < fastestLapPointFrom || season > fastestLapPointUntil {
		return false
	}
	if r.FastestLapRank != "" && r.FastestLapRank != "1" {
		return false
	}
	return fastestLapPoints[r.Points] || (r.Points == "2" && r.PositionText == "10")
}
