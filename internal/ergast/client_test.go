package ergast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1wiki/f1-wikitable/internal/fetcher"
	"github.com/f1wiki/f1-wikitable/internal/model"
	"github.com/f1wiki/f1-wikitable/internal/resilience"
)

type fakeFetcher struct {
	bodies map[string]string
	urls   []string
}

func (f *fakeFetcher) Get(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	body, ok := f.bodies[url]
	if !ok {
		return nil, &resilience.StatusError{URL: url, StatusCode: http.StatusNotFound}
	}
	return []byte(body), nil
}

const qualifyingJSON = `{"MRData":{"series":"f1","total":"2","RaceTable":{"season":"2024","round":"5","Races":[{
  "season":"2024","round":"5","url":"https://en.wikipedia.org/wiki/2024_Chinese_Grand_Prix","raceName":"Chinese Grand Prix",
  "QualifyingResults":[
    {"number":"1","position":"1","Driver":{"driverId":"max_verstappen","permanentNumber":"33","code":"VER","givenName":"Max","familyName":"Verstappen","nationality":"Dutch"},
     "Constructor":{"constructorId":"red_bull","name":"Red Bull","nationality":"Austrian"},"Q1":"1:34.742","Q2":"1:34.031","Q3":"1:33.660"},
    {"number":"11","position":"2","Driver":{"driverId":"perez","code":"PER","givenName":"Sergio","familyName":"Pérez","nationality":"Mexican"},
     "Constructor":{"constructorId":"red_bull","name":"Red Bull","nationality":"Austrian"},"Q1":"1:35.457","Q2":"","Q3":""}
  ]}]}}}`

const raceJSON = `{"MRData":{"RaceTable":{"Races":[{"season":"2024","round":"5","raceName":"Chinese Grand Prix",
  "Results":[
    {"number":"1","position":"1","positionText":"1","points":"25.0","grid":"1","laps":"56","status":"Finished",
     "Driver":{"driverId":"max_verstappen","givenName":"Max","familyName":"Verstappen","nationality":"Dutch"},
     "Constructor":{"constructorId":"red_bull","name":"Red Bull","nationality":"Austrian"},
     "Time":{"millis":"5744184","time":"1:40:52.554"},"FastestLap":{"rank":"1","lap":"42","Time":{"time":"1:37.810"}}},
    {"number":"3","position":"20","positionText":"R","points":"0","grid":"0","laps":"33","status":"Retired",
     "Driver":{"driverId":"ricciardo","givenName":"Daniel","familyName":"Ricciardo","nationality":"Australian"},
     "Constructor":{"constructorId":"rb","name":"RB F1 Team","nationality":"Italian"}}
  ]}]}}}`

const sprintJSON = `{"MRData":{"RaceTable":{"Races":[{"season":"2024","round":"5","raceName":"Chinese Grand Prix",
  "SprintResults":[
    {"number":"1","position":"1","positionText":"1","points":"8","grid":"4","laps":"19","status":"Finished",
     "Driver":{"driverId":"max_verstappen","givenName":"Max","familyName":"Verstappen","nationality":"Dutch"},
     "Constructor":{"constructorId":"red_bull","name":"Red Bull","nationality":"Austrian"},
     "Time":{"time":"32:04.660"}}
  ]}]}}}`

const driverStandingsJSON = `{"MRData":{"StandingsTable":{"season":"2024","round":"5","StandingsLists":[{"season":"2024","round":"5",
  "DriverStandings":[
    {"position":"1","positionText":"1","points":"110","wins":"4",
     "Driver":{"driverId":"max_verstappen","givenName":"Max","familyName":"Verstappen","nationality":"Dutch"},
     "Constructors":[{"constructorId":"red_bull","name":"Red Bull","nationality":"Austrian"}]},
    {"positionText":"-","points":"0","wins":"0",
     "Driver":{"driverId":"bearman","givenName":"Oliver","familyName":"Bearman","nationality":"British"},
     "Constructors":[{"constructorId":"ferrari","name":"Ferrari","nationality":"Italian"}]}
  ]}]}}}`

const constructorStandingsJSON = `{"MRData":{"StandingsTable":{"StandingsLists":[{"season":"2024","round":"5",
  "ConstructorStandings":[
    {"position":"1","positionText":"1","points":"195","wins":"4","Constructor":{"constructorId":"red_bull","name":"Red Bull","nationality":"Austrian"}}
  ]}]}}}`

const driversJSON = `{"MRData":{"DriverTable":{"season":"2024","round":"5","Drivers":[
  {"driverId":"albon","permanentNumber":"23","code":"ALB","givenName":"Alexander","familyName":"Albon","nationality":"Thai"}
]}}}`

const emptyJSON = `{"MRData":{"RaceTable":{"Races":[]},"StandingsTable":{"StandingsLists":[]},"DriverTable":{"Drivers":[]}}}`

func url(resource string, r Round) string {
	return DefaultBaseURL + "/" + r.String() + "/" + resource + ".json?limit=100"
}

func TestRound(t *testing.T) {
	assert.True(t, Latest().IsLatest())
	assert.Equal(t, "current/last", Latest().String())
	assert.Equal(t, "2024/5", Round{Season: 2024, Number: 5}.String())

	prev, ok := Round{Season: 2024, Number: 5}.Previous()
	require.True(t, ok)
	assert.Equal(t, Round{Season: 2024, Number: 4}, prev)

	_, ok = Round{Season: 2024, Number: 1}.Previous()
	assert.False(t, ok)
	_, ok = Latest().Previous()
	assert.False(t, ok)
}

func TestQualifying(t *testing.T) {
	r := Round{Season: 2024, Number: 5}
	f := &fakeFetcher{bodies: map[string]string{url("qualifying", r): qualifyingJSON}}

	q, err := NewClient(f).Qualifying(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, 2024, q.Season)
	assert.Equal(t, 5, q.Round)
	assert.Equal(t, "Chinese Grand Prix", q.Name)
	require.Len(t, q.Rows, 2)
	assert.Equal(t, "Max Verstappen", q.Rows[0].Driver.FullName())
	assert.Equal(t, "red_bull", q.Rows[0].Constructor.ID)
	assert.Equal(t, "1:33.660", q.Rows[0].Q3)
	assert.Equal(t, 2, q.Rows[1].Position)
	assert.Empty(t, q.Rows[1].Q2)
}

func TestQualifying_Latest(t *testing.T) {
	f := &fakeFetcher{bodies: map[string]string{url("qualifying", Latest()): qualifyingJSON}}

	_, err := NewClient(f).Qualifying(context.Background(), Latest())
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultBaseURL + "/current/last/qualifying.json?limit=100"}, f.urls)
}

func TestResults(t *testing.T) {
	r := Round{Season: 2024, Number: 5}
	f := &fakeFetcher{bodies: map[string]string{url("results", r): raceJSON}}

	res, err := NewClient(f).Results(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, model.SessionRace, res.Kind)
	require.Len(t, res.Rows, 2)

	winner := res.Rows[0]
	assert.Equal(t, "25", winner.Points)
	assert.Equal(t, "1:40:52.554", winner.Time)
	assert.Equal(t, "1", winner.FastestLapRank)
	assert.True(t, winner.Classified())

	dnf := res.Rows[1]
	assert.Equal(t, "R", dnf.PositionText)
	assert.Equal(t, "0", dnf.Grid)
	assert.Empty(t, dnf.Time)
	assert.Empty(t, dnf.FastestLapRank)
	assert.False(t, dnf.Classified())
}

func TestSprint(t *testing.T) {
	r := Round{Season: 2024, Number: 5}
	f := &fakeFetcher{bodies: map[string]string{url("sprint", r): sprintJSON}}

	res, err := NewClient(f).Sprint(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, model.SessionSprint, res.Kind)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "8", res.Rows[0].Points)
}

func TestSprint_NotASprintWeekend(t *testing.T) {
	r := Round{Season: 2024, Number: 5}
	// Race-only payload: the race is present but carries no sprint rows.
	f := &fakeFetcher{bodies: map[string]string{url("sprint", r): raceJSON}}

	_, err := NewClient(f).Sprint(context.Background(), r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyList))
}

func TestDriverStandings(t *testing.T) {
	r := Round{Season: 2024, Number: 5}
	f := &fakeFetcher{bodies: map[string]string{url("driverStandings", r): driverStandingsJSON}}

	s, err := NewClient(f).DriverStandings(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, 2024, s.Season)
	assert.Equal(t, 5, s.Round)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, 1, s.Rows[0].Position)
	assert.Equal(t, "110", s.Rows[0].Points)
	require.Len(t, s.Rows[0].Constructors, 1)
	assert.Equal(t, "red_bull", s.Rows[0].Constructors[0].ID)

	// Unranked rows keep list order.
	assert.Equal(t, 2, s.Rows[1].Position)
	assert.Equal(t, "0", s.Rows[1].Points)
}

func TestConstructorStandings(t *testing.T) {
	r := Round{Season: 2024, Number: 5}
	f := &fakeFetcher{bodies: map[string]string{url("constructorStandings", r): constructorStandingsJSON}}

	s, err := NewClient(f).ConstructorStandings(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, s.Rows, 1)
	assert.Equal(t, "red_bull", s.Rows[0].Constructor.ID)
	assert.Equal(t, "195", s.Rows[0].Points)
}

func TestDrivers(t *testing.T) {
	r := Round{Season: 2024, Number: 5}
	f := &fakeFetcher{bodies: map[string]string{url("drivers", r): driversJSON}}

	ds, err := NewClient(f).Drivers(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "Alexander Albon", ds[0].FullName())
	assert.Equal(t, "Thai", ds[0].Nationality)
}

func TestEmptyList(t *testing.T) {
	r := Round{Season: 2030, Number: 1}
	f := &fakeFetcher{bodies: map[string]string{
		url("qualifying", r):           emptyJSON,
		url("results", r):              emptyJSON,
		url("driverStandings", r):      emptyJSON,
		url("constructorStandings", r): emptyJSON,
		url("drivers", r):              emptyJSON,
	}}
	c := NewClient(f)
	ctx := context.Background()

	_, err := c.Qualifying(ctx, r)
	assert.True(t, errors.Is(err, ErrEmptyList), "qualifying: %v", err)
	_, err = c.Results(ctx, r)
	assert.True(t, errors.Is(err, ErrEmptyList), "results: %v", err)
	_, err = c.DriverStandings(ctx, r)
	assert.True(t, errors.Is(err, ErrEmptyList), "driverStandings: %v", err)
	_, err = c.ConstructorStandings(ctx, r)
	assert.True(t, errors.Is(err, ErrEmptyList), "constructorStandings: %v", err)
	_, err = c.Drivers(ctx, r)
	assert.True(t, errors.Is(err, ErrEmptyList), "drivers: %v", err)
}

func TestMalformedRow(t *testing.T) {
	r := Round{Season: 2024, Number: 5}
	body := `{"MRData":{"RaceTable":{"Races":[{"season":"2024","round":"5","QualifyingResults":[
	  {"number":"1","position":"first","Driver":{"driverId":"x","familyName":"X"},"Constructor":{"constructorId":"y"}}]}]}}}`
	f := &fakeFetcher{bodies: map[string]string{url("qualifying", r): body}}

	_, err := NewClient(f).Qualifying(context.Background(), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qualifying row 1")
	assert.False(t, errors.Is(err, ErrEmptyList))
}

func TestMissingDriverIdentity(t *testing.T) {
	r := Round{Season: 2024, Number: 5}
	body := `{"MRData":{"RaceTable":{"Races":[{"season":"2024","round":"5","Results":[
	  {"number":"1","position":"1","Driver":{"driverId":"x"},"Constructor":{"constructorId":"y"}}]}]}}}`
	f := &fakeFetcher{bodies: map[string]string{url("results", r): body}}

	_, err := NewClient(f).Results(context.Background(), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing driver identity")
}

func TestTransportError(t *testing.T) {
	_, err := NewClient(&fakeFetcher{}).Qualifying(context.Background(), Round{Season: 2024, Number: 5})
	require.Error(t, err)

	var se *resilience.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestClient_OverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ergast/f1/2024/5/qualifying.json", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(qualifyingJSON))
	}))
	defer srv.Close()

	hf := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		Timeout: 5 * time.Second,
		Retry:   resilience.RetryConfig{MaxAttempts: 1},
	})
	c := NewClient(hf, WithBaseURL(srv.URL+"/ergast/f1/"))

	q, err := c.Qualifying(context.Background(), Round{Season: 2024, Number: 5})
	require.NoError(t, err)
	assert.Len(t, q.Rows, 2)
}
