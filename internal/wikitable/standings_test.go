package wikitable

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1wiki/f1-wikitable/internal/model"
)

func driverStandings(rows ...model.DriverStanding) *model.Standings[model.DriverStanding] {
	return &model.Standings[model.DriverStanding]{Season: 2024, Round: 5, Rows: rows}
}

func constructorStandings(rows ...model.ConstructorStanding) *model.Standings[model.ConstructorStanding] {
	return &model.Standings[model.ConstructorStanding]{Season: 2024, Round: 5, Rows: rows}
}

func ds(pos int, points, id, given, family, nationality string) model.DriverStanding {
	return model.DriverStanding{
		Position: pos,
		Points:   points,
		Driver:   model.Driver{ID: id, GivenName: given, FamilyName: family, Nationality: nationality},
	}
}

func cs(pos int, points, id string) model.ConstructorStanding {
	return model.ConstructorStanding{Position: pos, Points: points, Constructor: model.Constructor{ID: id}}
}

func standingsFixture() StandingsInput {
	return StandingsInput{
		Drivers: driverStandings(
			ds(1, "110", "max_verstappen", "Max", "Verstappen", "Dutch"),
			ds(2, "85", "perez", "Sergio", "Pérez", "Mexican"),
			ds(3, "70", "leclerc", "Charles", "Leclerc", "Monegasque"),
			ds(4, "64", "norris", "Lando", "Norris", "British"),
			ds(11, "1", "zhou", "Guanyu", "Zhou", "Chinese"),
			ds(21, "0", "bearman", "Oliver", "Bearman", "British"),
		),
		PreviousDrivers: driverStandings(
			ds(1, "85", "max_verstappen", "Max", "Verstappen", "Dutch"),
			ds(3, "64", "perez", "Sergio", "Pérez", "Mexican"),
			ds(2, "70", "leclerc", "Charles", "Leclerc", "Monegasque"),
		),
		Constructors: constructorStandings(
			cs(1, "195", "red_bull"),
			cs(2, "151", "ferrari"),
			cs(10, "0", "williams"),
		),
	}
}

func renderStandings(t *testing.T, in StandingsInput) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, newTestFormatter(t).Standings(&buf, in))
	return buf.String()
}

func TestStandings_Layout(t *testing.T) {
	out := renderStandings(t, standingsFixture())

	assert.True(t, strings.HasPrefix(out, "==Standings==\n\n{{Col-begin}}\n{{Col-2}}\n{|class=\"wikitable\" style=\"width:88%\"\n! colspan=4|Drivers' World Championship\n"))
	assert.Contains(t, out, "|}\n\n<p style=\"text-align:center;\">''Only point-scoring drivers are shown.''</p>\n{{Col-2}}\n{|class=\"wikitable\" style=\"width:85%\"\n! colspan=4|Constructors' World Championship\n")
	assert.True(t, strings.HasSuffix(out, "|}\n{{Col-end}}\n"))
}

func TestStandings_DriverRows(t *testing.T) {
	out := renderStandings(t, standingsFixture())

	assert.Contains(t, out, "|-\n| {{1st}}\n| '''{{NED}} [[Max Verstappen]]'''\n| '''110'''\n| {{Steady}}\n")
	assert.Contains(t, out, "|-\n| {{2nd}}\n| {{MEX}} [[Sergio Pérez]]\n| 85\n| {{Up}} 1\n")
	assert.Contains(t, out, "|-\n| {{3rd}}\n| {{MCO}} [[Charles Leclerc]]\n| 70\n| {{Down}} 1\n")
	assert.Contains(t, out, "|-\n| 4th\n| {{GBR}} [[Lando Norris]]\n| 64\n| {{X}}\n")
	assert.Contains(t, out, "|-\n| 11th\n| {{CHN}} [[Guanyu Zhou]]\n| 1\n| {{X}}\n")
}

func TestStandings_OnlyPointScorers(t *testing.T) {
	out := renderStandings(t, standingsFixture())

	assert.NotContains(t, out, "Bearman")
	assert.NotContains(t, out, "Williams")
}

func TestStandings_ConstructorRows(t *testing.T) {
	out := renderStandings(t, standingsFixture())

	// No previous constructors' snapshot: every delta is unknown.
	assert.Contains(t, out, "|-\n| {{1st}}\n| '''{{AUT}} {{Red Bull-CON}}'''\n| '''195'''\n| {{X}}\n")
	assert.Contains(t, out, "|-\n| {{2nd}}\n| {{ITA}} {{Ferrari-CON}}\n| 151\n| {{X}}\n")
}

func TestStandings_FirstRound(t *testing.T) {
	in := standingsFixture()
	in.PreviousDrivers = nil
	out := renderStandings(t, in)

	assert.NotContains(t, out, "{{Up}}")
	assert.NotContains(t, out, "{{Down}}")
	assert.NotContains(t, out, "{{Steady}}")
}

func TestStandings_UnknownConstructor(t *testing.T) {
	in := standingsFixture()
	in.Constructors = constructorStandings(cs(1, "10", "newteam"))
	out := renderStandings(t, in)

	assert.Contains(t, out, "| '''{{newteam-CON}}'''\n")
}

func TestStandings_WithoutConstructorsChampionship(t *testing.T) {
	in := standingsFixture()
	in.Constructors = nil
	out := renderStandings(t, in)

	assert.NotContains(t, out, "Constructors' World Championship")
	assert.True(t, strings.HasSuffix(out, "''Only point-scoring drivers are shown.''</p>\n{{Col-end}}\n"))
}
