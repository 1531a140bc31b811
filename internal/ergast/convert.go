package ergast

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/f1wiki/f1-wikitable/internal/model"
)

func toDriver(d driver) (model.Driver, error) {
	if d.DriverID == "" || d.FamilyName == "" {
		return model.Driver{}, eris.New("missing driver identity")
	}
	return model.Driver{
		ID:              d.DriverID,
		Code:            d.Code,
		PermanentNumber: d.PermanentNumber,
		GivenName:       d.GivenName,
		FamilyName:      d.FamilyName,
		Nationality:     d.Nationality,
	}, nil
}

func toConstructor(c constructor) (model.Constructor, error) {
	if c.ConstructorID == "" {
		return model.Constructor{}, eris.New("missing constructor id")
	}
	return model.Constructor{ID: c.ConstructorID, Name: c.Name, Nationality: c.Nationality}, nil
}

func toRace(r race) (model.Race, error) {
	season, err := atoi(r.Season)
	if err != nil {
		return model.Race{}, eris.Wrap(err, "season")
	}
	round, err := atoi(r.Round)
	if err != nil {
		return model.Race{}, eris.Wrap(err, "round")
	}
	return model.Race{Season: season, Round: round, Name: r.RaceName, URL: r.URL}, nil
}

func toQualifyingRow(r result) (model.QualifyingRow, error) {
	pos, err := atoi(r.Position)
	if err != nil {
		return model.QualifyingRow{}, eris.Wrap(err, "position")
	}
	d, err := toDriver(r.Driver)
	if err != nil {
		return model.QualifyingRow{}, err
	}
	c, err := toConstructor(r.Constructor)
	if err != nil {
		return model.QualifyingRow{}, err
	}
	return model.QualifyingRow{
		Number:      r.Number,
		Position:    pos,
		Driver:      d,
		Constructor: c,
		Q1:          strings.TrimSpace(r.Q1),
		Q2:          strings.TrimSpace(r.Q2),
		Q3:          strings.TrimSpace(r.Q3),
	}, nil
}

func toRaceRow(r result) (model.RaceRow, error) {
	pos, err := atoi(r.Position)
	if err != nil {
		return model.RaceRow{}, eris.Wrap(err, "position")
	}
	d, err := toDriver(r.Driver)
	if err != nil {
		return model.RaceRow{}, err
	}
	c, err := toConstructor(r.Constructor)
	if err != nil {
		return model.RaceRow{}, err
	}
	row := model.RaceRow{
		Number:       r.Number,
		Position:     pos,
		PositionText: r.PositionText,
		Points:       normalizePoints(r.Points),
		Driver:       d,
		Constructor:  c,
		Grid:         r.Grid,
		Laps:         r.Laps,
		Status:       r.Status,
	}
	if row.PositionText == "" {
		row.PositionText = r.Position
	}
	if r.Time != nil {
		row.Time = r.Time.Time
	}
	if r.FastestLap != nil {
		row.FastestLapRank = r.FastestLap.Rank
	}
	return row, nil
}

func toDriverStanding(s driverStanding, index int) (model.DriverStanding, error) {
	d, err := toDriver(s.Driver)
	if err != nil {
		return model.DriverStanding{}, err
	}
	cs := make([]model.Constructor, 0, len(s.Constructors))
	for _, c := range s.Constructors {
		mc, err := toConstructor(c)
		if err != nil {
			return model.DriverStanding{}, err
		}
		cs = append(cs, mc)
	}
	return model.DriverStanding{
		Position:     positionOr(s.Position, index),
		PositionText: s.PositionText,
		Points:       normalizePoints(s.Points),
		Wins:         s.Wins,
		Driver:       d,
		Constructors: cs,
	}, nil
}

func toConstructorStanding(s constructorStanding, index int) (model.ConstructorStanding, error) {
	c, err := toConstructor(s.Constructor)
	if err != nil {
		return model.ConstructorStanding{}, err
	}
	return model.ConstructorStanding{
		Position:     positionOr(s.Position, index),
		PositionText: s.PositionText,
		Points:       normalizePoints(s.Points),
		Wins:         s.Wins,
		Constructor:  c,
	}, nil
}

// positionOr falls back to list order for rows the provider leaves
// unranked (positionText "-").
func positionOr(s string, index int) int {
	if n, err := atoi(s); err == nil {
		return n
	}
	return index + 1
}

// normalizePoints trims a redundant ".0" so "25.0" and "25" render alike.
func normalizePoints(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimSuffix(p, ".0")
	if p == "" {
		return "0"
	}
	return p
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, eris.Errorf("not a number: %q", s)
	}
	return n, nil
}
