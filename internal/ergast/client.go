// Package ergast is a client for the Ergast-compatible Formula One
// results API (served today by the Jolpica mirror). It returns validated
// model record sets; wire shapes never leave this package.
package ergast

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/f1wiki/f1-wikitable/internal/fetcher"
	"github.com/f1wiki/f1-wikitable/internal/model"
)

// DefaultBaseURL is the public Jolpica mirror of the Ergast API.
const DefaultBaseURL = "https://api.jolpi.ca/ergast/f1"

// pageLimit is large enough for every classification in one request.
const pageLimit = 100

// ErrEmptyList is returned when the provider has no rows for a request,
// typically because the session has not happened yet.
var ErrEmptyList = eris.New("ergast: empty list")

// Round selects a championship round. The zero value means the most
// recent round of the current season.
type Round struct {
	Season int
	Number int
}

// Latest is the zero Round.
func Latest() Round { return Round{} }

// IsLatest reports whether r refers to the most recent round.
func (r Round) IsLatest() bool { return r.Season == 0 || r.Number == 0 }

// Previous returns the round before r. It reports false for the first
// round of a season and for Latest, whose number is not known yet.
func (r Round) Previous() (Round, bool) {
	if r.IsLatest() || r.Number <= 1 {
		return Round{}, false
	}
	return Round{Season: r.Season, Number: r.Number - 1}, true
}

func (r Round) String() string {
	if r.IsLatest() {
		return "current/last"
	}
	return fmt.Sprintf("%d/%d", r.Season, r.Number)
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing or another mirror).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// Client fetches record sets from the API.
type Client struct {
	fetcher fetcher.Fetcher
	baseURL string
}

// NewClient creates a client that issues requests through f.
func NewClient(f fetcher.Fetcher, opts ...Option) *Client {
	c := &Client{fetcher: f, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint(r Round, resource string) string {
	return fmt.Sprintf("%s/%s/%s.json?limit=%d", c.baseURL, r, resource, pageLimit)
}

func (c *Client) get(ctx context.Context, r Round, resource string) (*mrData, error) {
	url := c.endpoint(r, resource)
	zap.L().Debug("ergast request", zap.String("url", url))

	resp, err := fetcher.GetJSON[response](ctx, c.fetcher, url)
	if err != nil {
		return nil, eris.Wrapf(err, "ergast: %s %s", resource, r)
	}
	return &resp.MRData, nil
}

func (c *Client) firstRace(ctx context.Context, r Round, resource string) (*race, error) {
	data, err := c.get(ctx, r, resource)
	if err != nil {
		return nil, err
	}
	if len(data.RaceTable.Races) == 0 {
		return nil, eris.Wrapf(ErrEmptyList, "%s %s", resource, r)
	}
	return &data.RaceTable.Races[0], nil
}

// Qualifying returns the qualifying classification of a round.
func (c *Client) Qualifying(ctx context.Context, r Round) (*model.Qualifying, error) {
	rc, err := c.firstRace(ctx, r, "qualifying")
	if err != nil {
		return nil, err
	}
	if len(rc.QualifyingResults) == 0 {
		return nil, eris.Wrapf(ErrEmptyList, "qualifying %s", r)
	}
	info, err := toRace(*rc)
	if err != nil {
		return nil, eris.Wrap(err, "ergast: qualifying")
	}

	out := &model.Qualifying{Race: info, Rows: make([]model.QualifyingRow, 0, len(rc.QualifyingResults))}
	for i, res := range rc.QualifyingResults {
		row, err := toQualifyingRow(res)
		if err != nil {
			return nil, eris.Wrapf(err, "ergast: qualifying row %d", i+1)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// Results returns the race classification of a round.
func (c *Client) Results(ctx context.Context, r Round) (*model.RaceResult, error) {
	return c.raceResult(ctx, r, model.SessionRace)
}

// Sprint returns the sprint classification of a round.
func (c *Client) Sprint(ctx context.Context, r Round) (*model.RaceResult, error) {
	return c.raceResult(ctx, r, model.SessionSprint)
}

func (c *Client) raceResult(ctx context.Context, r Round, kind model.SessionKind) (*model.RaceResult, error) {
	resource := "results"
	if kind == model.SessionSprint {
		resource = "sprint"
	}
	rc, err := c.firstRace(ctx, r, resource)
	if err != nil {
		return nil, err
	}
	rows := rc.Results
	if kind == model.SessionSprint {
		rows = rc.SprintResults
	}
	if len(rows) == 0 {
		return nil, eris.Wrapf(ErrEmptyList, "%s %s", resource, r)
	}
	info, err := toRace(*rc)
	if err != nil {
		return nil, eris.Wrapf(err, "ergast: %s", resource)
	}

	out := &model.RaceResult{Race: info, Kind: kind, Rows: make([]model.RaceRow, 0, len(rows))}
	for i, res := range rows {
		row, err := toRaceRow(res)
		if err != nil {
			return nil, eris.Wrapf(err, "ergast: %s row %d", resource, i+1)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func (c *Client) standingsList(ctx context.Context, r Round, resource string) (*standingsList, error) {
	data, err := c.get(ctx, r, resource)
	if err != nil {
		return nil, err
	}
	if len(data.StandingsTable.StandingsLists) == 0 {
		return nil, eris.Wrapf(ErrEmptyList, "%s %s", resource, r)
	}
	return &data.StandingsTable.StandingsLists[0], nil
}

// DriverStandings returns the drivers' championship after round r.
func (c *Client) DriverStandings(ctx context.Context, r Round) (*model.Standings[model.DriverStanding], error) {
	list, err := c.standingsList(ctx, r, "driverStandings")
	if err != nil {
		return nil, err
	}
	if len(list.DriverStandings) == 0 {
		return nil, eris.Wrapf(ErrEmptyList, "driverStandings %s", r)
	}
	season, round, err := listRound(list)
	if err != nil {
		return nil, eris.Wrap(err, "ergast: driverStandings")
	}

	out := &model.Standings[model.DriverStanding]{Season: season, Round: round}
	for i, s := range list.DriverStandings {
		row, err := toDriverStanding(s, i)
		if err != nil {
			return nil, eris.Wrapf(err, "ergast: driverStandings row %d", i+1)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// ConstructorStandings returns the constructors' championship after round r.
func (c *Client) ConstructorStandings(ctx context.Context, r Round) (*model.Standings[model.ConstructorStanding], error) {
	list, err := c.standingsList(ctx, r, "constructorStandings")
	if err != nil {
		return nil, err
	}
	if len(list.ConstructorStandings) == 0 {
		return nil, eris.Wrapf(ErrEmptyList, "constructorStandings %s", r)
	}
	season, round, err := listRound(list)
	if err != nil {
		return nil, eris.Wrap(err, "ergast: constructorStandings")
	}

	out := &model.Standings[model.ConstructorStanding]{Season: season, Round: round}
	for i, s := range list.ConstructorStandings {
		row, err := toConstructorStanding(s, i)
		if err != nil {
			return nil, eris.Wrapf(err, "ergast: constructorStandings row %d", i+1)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// Drivers returns the drivers entered in round r.
func (c *Client) Drivers(ctx context.Context, r Round) ([]model.Driver, error) {
	data, err := c.get(ctx, r, "drivers")
	if err != nil {
		return nil, err
	}
	if len(data.DriverTable.Drivers) == 0 {
		return nil, eris.Wrapf(ErrEmptyList, "drivers %s", r)
	}

	out := make([]model.Driver, 0, len(data.DriverTable.Drivers))
	for i, d := range data.DriverTable.Drivers {
		md, err := toDriver(d)
		if err != nil {
			return nil, eris.Wrapf(err, "ergast: drivers row %d", i+1)
		}
		out = append(out, md)
	}
	return out, nil
}

func listRound(l *standingsList) (int, int, error) {
	season, err := atoi(l.Season)
	if err != nil {
		return 0, 0, eris.Wrap(err, "season")
	}
	round, err := atoi(l.Round)
	if err != nil {
		return 0, 0, eris.Wrap(err, "round")
	}
	return season, round, nil
}
