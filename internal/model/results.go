package model

// QualifyingRow is one driver's qualifying classification. An empty
// segment time means the driver did not set a time in that segment,
// usually because they were eliminated earlier.
type QualifyingRow struct {
	Number      string      `json:"number"`
	Position    int         `json:"position"`
	Driver      Driver      `json:"driver"`
	Constructor Constructor `json:"constructor"`
	Q1          string      `json:"q1,omitempty"`
	Q2          string      `json:"q2,omitempty"`
	Q3          string      `json:"q3,omitempty"`
}

// SegmentTime returns the time for segment 1, 2 or 3.
func (r QualifyingRow) SegmentTime(segment int) string {
	switch segment {
	case 1:
		return r.Q1
	case 2:
		return r.Q2
	case 3:
		return r.Q3
	default:
		return ""
	}
}

// Qualifying is a qualifying record set in classification order.
type Qualifying struct {
	Race `json:"race"`
	Rows []QualifyingRow `json:"rows"`
}

// RaceRow is one driver's race or sprint classification.
type RaceRow struct {
	Number         string      `json:"number"`
	Position       int         `json:"position"`
	PositionText   string      `json:"position_text"`
	Points         string      `json:"points"`
	Driver         Driver      `json:"driver"`
	Constructor    Constructor `json:"constructor"`
	Grid           string      `json:"grid"`
	Laps           string      `json:"laps"`
	Status         string      `json:"status"`
	Time           string      `json:"time,omitempty"`
	FastestLapRank string      `json:"fastest_lap_rank,omitempty"`
}

// Classified reports whether the row carries a numeric finishing position.
func (r RaceRow) Classified() bool {
	return r.PositionText != "" && r.PositionText[0] >= '0' && r.PositionText[0] <= '9'
}

// SessionKind distinguishes full races from sprints.
type SessionKind string

const (
	SessionRace   SessionKind = "race"
	SessionSprint SessionKind = "sprint"
)

// RaceResult is a race or sprint record set in classification order.
type RaceResult struct {
	Race `json:"race"`
	Kind SessionKind `json:"kind"`
	Rows []RaceRow   `json:"rows"`
}
