package wikitable

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/f1wiki/f1-wikitable/internal/model"
)

const driversTableHeader = `{|class="wikitable" style="width:88%"
! colspan=4|Drivers' World Championship
|-
! <span style="cursor:help" title="Position">Pos.</span>
! Driver
! <span style="cursor:help" title="Points">Pts.</span>
! +/-
`

const constructorsTableHeader = `{|class="wikitable" style="width:85%"
! colspan=4|Constructors' World Championship
|-
! <span style="cursor:help" title="Position">Pos.</span>
! Team
! <span style="cursor:help" title="Points">Pts.</span>
! +/-
`

const pointScorersNote = `<p style="text-align:center;">''Only point-scoring drivers are shown.''</p>`

// StandingsInput carries the championship after a round and, when
// available, after the round before. Previous snapshots are nil for the
// first round of a season or when they could not be fetched. Constructors
// is nil for seasons without a constructors' championship.
type StandingsInput struct {
	Drivers              *model.Standings[model.DriverStanding]
	Constructors         *model.Standings[model.ConstructorStanding]
	PreviousDrivers      *model.Standings[model.DriverStanding]
	PreviousConstructors *model.Standings[model.ConstructorStanding]
}

// Standings writes the drivers' and constructors' championships side by
// side. Only point scorers are listed.
func (f *Formatter) Standings(w io.Writer, in StandingsInput) error {
	if in.Drivers == nil || len(in.Drivers.Rows) == 0 {
		return eris.Wrap(ErrNoData, "wikitable: standings")
	}

	var b strings.Builder
	b.WriteString("==Standings==\n\n")
	b.WriteString("{{Col-begin}}\n")
	b.WriteString("{{Col-2}}\n")
	b.WriteString(driversTableHeader)

	cur := model.DriverPositions(in.Drivers)
	prev := model.DriverPositions(in.PreviousDrivers)
	for _, r := range in.Drivers.Rows {
		standingRow(&b, r.Position, r.Points, f.driverCell(r.Driver), PositionDelta(cur, prev, r.Driver.ID))
	}
	b.WriteString("|}\n\n")
	b.WriteString(pointScorersNote + "\n")

	if in.Constructors != nil && len(in.Constructors.Rows) > 0 {
		b.WriteString("{{Col-2}}\n")
		b.WriteString(constructorsTableHeader)

		cur := model.ConstructorPositions(in.Constructors)
		prev := model.ConstructorPositions(in.PreviousConstructors)
		for _, r := range in.Constructors.Rows {
			standingRow(&b, r.Position, r.Points, f.teamCell(r.Constructor), PositionDelta(cur, prev, r.Constructor.ID))
		}
		b.WriteString("|}\n")
	}
	b.WriteString("{{Col-end}}\n")

	return flush(w, &b)
}

func standingRow(b *strings.Builder, pos int, points, entity string, d Delta) {
	if points == "0" || points == "" {
		return
	}
	if pos == 1 {
		entity, points = bold(entity), bold(points)
	}
	b.WriteString("|-\n")
	cell(b, "|", Ordinal(pos))
	cell(b, "|", entity)
	cell(b, "|", points)
	cell(b, "|", d.Markup())
}
