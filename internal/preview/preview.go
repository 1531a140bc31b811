// Package preview prints fetched records as console tables so a human can
// check the data before pasting the generated markup.
package preview

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/rotisserie/eris"

	"github.com/f1wiki/f1-wikitable/internal/model"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// Preview renders tables to a writer, normally stderr.
type Preview struct {
	w     io.Writer
	style table.Style
}

// New returns a Preview writing to w. Terminals get box-drawing borders;
// pipes and files get plain ASCII.
func New(w io.Writer) *Preview {
	style := table.StyleDefault
	if isTerminal(w) {
		style = table.StyleLight
	}
	return &Preview{w: w, style: style}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Qualifying prints the qualifying classification.
func (p *Preview) Qualifying(q *model.Qualifying) error {
	rows := make([][]string, 0, len(q.Rows))
	for _, r := range q.Rows {
		rows = append(rows, []string{
			strconv.Itoa(r.Position), r.Number, r.Driver.FullName(), r.Constructor.Name, r.Q1, r.Q2, r.Q3,
		})
	}
	return p.render(raceTitle(q.Race, "Qualifying"),
		[]string{"Pos", "No", "Driver", "Constructor", "Q1", "Q2", "Q3"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight})
}

// Race prints a race or sprint classification.
func (p *Preview) Race(res *model.RaceResult) error {
	rows := make([][]string, 0, len(res.Rows))
	for _, r := range res.Rows {
		timeOrStatus := r.Time
		if timeOrStatus == "" {
			timeOrStatus = r.Status
		}
		rows = append(rows, []string{
			r.PositionText, r.Number, r.Driver.FullName(), r.Constructor.Name, r.Laps, timeOrStatus, r.Grid, r.Points,
		})
	}
	session := "Race"
	if res.Kind == model.SessionSprint {
		session = "Sprint"
	}
	return p.render(raceTitle(res.Race, session),
		[]string{"Pos", "No", "Driver", "Constructor", "Laps", "Time/Status", "Grid", "Pts"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight})
}

// DriverStandings prints the drivers' championship.
func (p *Preview) DriverStandings(s *model.Standings[model.DriverStanding]) error {
	rows := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, []string{strconv.Itoa(r.Position), r.Driver.FullName(), r.Points, r.Wins})
	}
	return p.render(fmt.Sprintf("Drivers' Championship %d, round %d", s.Season, s.Round),
		[]string{"Pos", "Driver", "Pts", "Wins"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight})
}

// ConstructorStandings prints the constructors' championship.
func (p *Preview) ConstructorStandings(s *model.Standings[model.ConstructorStanding]) error {
	rows := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, []string{strconv.Itoa(r.Position), r.Constructor.Name, r.Points, r.Wins})
	}
	return p.render(fmt.Sprintf("Constructors' Championship %d, round %d", s.Season, s.Round),
		[]string{"Pos", "Constructor", "Pts", "Wins"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight})
}

// Practice prints one table per scraped session.
func (p *Preview) Practice(sessions []model.PracticeSession) error {
	for _, s := range sessions {
		rows := make([][]string, 0, len(s.Rows))
		for _, r := range s.Rows {
			rows = append(rows, []string{strconv.Itoa(r.Position), r.Number, r.DriverName, r.Team, r.Time, r.Laps})
		}
		err := p.render(s.Name,
			[]string{"Pos", "No", "Driver", "Team", "Time", "Laps"},
			rows,
			[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight})
		if err != nil {
			return err
		}
	}
	return nil
}

func raceTitle(r model.Race, session string) string {
	if r.Name == "" {
		return fmt.Sprintf("%s %d/%d", session, r.Season, r.Round)
	}
	return fmt.Sprintf("%d %s - %s", r.Season, r.Name, session)
}

func (p *Preview) render(title string, headers []string, rows [][]string, aligns []columnAlignment) error {
	columns := len(headers)

	tw := table.NewWriter()
	tw.SetStyle(p.style)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	// go-pretty wraps a title to the table width, so it goes on its own line.
	if _, err := fmt.Fprintf(p.w, "%s\n%s\n", title, tw.Render()); err != nil {
		return eris.Wrap(err, "preview: write")
	}
	return nil
}
