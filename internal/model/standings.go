package model

// DriverStanding is one row of the drivers' championship.
type DriverStanding struct {
	Position     int           `json:"position"`
	PositionText string        `json:"position_text"`
	Points       string        `json:"points"`
	Wins         string        `json:"wins"`
	Driver       Driver        `json:"driver"`
	Constructors []Constructor `json:"constructors,omitempty"`
}

// ConstructorStanding is one row of the constructors' championship.
type ConstructorStanding struct {
	Position     int         `json:"position"`
	PositionText string      `json:"position_text"`
	Points       string      `json:"points"`
	Wins         string      `json:"wins"`
	Constructor  Constructor `json:"constructor"`
}

// Standings is a championship snapshot taken after a given round.
type Standings[T any] struct {
	Season int `json:"season"`
	Round  int `json:"round"`
	Rows   []T `json:"rows"`
}

// DriverPositions maps driver id to championship position.
func DriverPositions(s *Standings[DriverStanding]) map[string]int {
	if s == nil {
		return nil
	}
	out := make(map[string]int, len(s.Rows))
	for _, r := range s.Rows {
		out[r.Driver.ID] = r.Position
	}
	return out
}

// ConstructorPositions maps constructor id to championship position.
func ConstructorPositions(s *Standings[ConstructorStanding]) map[string]int {
	if s == nil {
		return nil
	}
	out := make(map[string]int, len(s.Rows))
	for _, r := range s.Rows {
		out[r.Constructor.ID] = r.Position
	}
	return out
}
