package ergast

// Wire shapes of the Ergast-compatible JSON API. Every value arrives as
// a string; conversion into model types happens in convert.go.

type response struct {
	MRData mrData `json:"MRData"`
}

type mrData struct {
	Series         string         `json:"series"`
	Total          string         `json:"total"`
	RaceTable      raceTable      `json:"RaceTable"`
	StandingsTable standingsTable `json:"StandingsTable"`
	DriverTable    driverTable    `json:"DriverTable"`
}

type raceTable struct {
	Season string `json:"season"`
	Round  string `json:"round"`
	Races  []race `json:"Races"`
}

type race struct {
	Season            string   `json:"season"`
	Round             string   `json:"round"`
	URL               string   `json:"url"`
	RaceName          string   `json:"raceName"`
	Date              string   `json:"date"`
	Results           []result `json:"Results"`
	QualifyingResults []result `json:"QualifyingResults"`
	SprintResults     []result `json:"SprintResults"`
}

type result struct {
	Number       string      `json:"number"`
	Position     string      `json:"position"`
	PositionText string      `json:"positionText"`
	Points       string      `json:"points"`
	Driver       driver      `json:"Driver"`
	Constructor  constructor `json:"Constructor"`
	Grid         string      `json:"grid"`
	Laps         string      `json:"laps"`
	Status       string      `json:"status"`
	Time         *timing     `json:"Time"`
	FastestLap   *fastestLap `json:"FastestLap"`
	Q1           string      `json:"Q1"`
	Q2           string      `json:"Q2"`
	Q3           string      `json:"Q3"`
}

type timing struct {
	Millis string `json:"millis"`
	Time   string `json:"time"`
}

type fastestLap struct {
	Rank string `json:"rank"`
	Lap  string `json:"lap"`
	Time timing `json:"Time"`
}

type driver struct {
	DriverID        string `json:"driverId"`
	PermanentNumber string `json:"permanentNumber"`
	Code            string `json:"code"`
	URL             string `json:"url"`
	GivenName       string `json:"givenName"`
	FamilyName      string `json:"familyName"`
	DateOfBirth     string `json:"dateOfBirth"`
	Nationality     string `json:"nationality"`
}

type constructor struct {
	ConstructorID string `json:"constructorId"`
	URL           string `json:"url"`
	Name          string `json:"name"`
	Nationality   string `json:"nationality"`
}

type standingsTable struct {
	Season         string          `json:"season"`
	Round          string          `json:"round"`
	StandingsLists []standingsList `json:"StandingsLists"`
}

type standingsList struct {
	Season               string                `json:"season"`
	Round                string                `json:"round"`
	DriverStandings      []driverStanding      `json:"DriverStandings"`
	ConstructorStandings []constructorStanding `json:"ConstructorStandings"`
}

type driverStanding struct {
	Position     string        `json:"position"`
	PositionText string        `json:"positionText"`
	Points       string        `json:"points"`
	Wins         string        `json:"wins"`
	Driver       driver        `json:"Driver"`
	Constructors []constructor `json:"Constructors"`
}

type constructorStanding struct {
	Position     string      `json:"position"`
	PositionText string      `json:"positionText"`
	Points       string      `json:"points"`
	Wins         string      `json:"wins"`
	Constructor  constructor `json:"Constructor"`
}

type driverTable struct {
	Season  string   `json:"season"`
	Round   string   `json:"round"`
	Drivers []driver `json:"Drivers"`
}
