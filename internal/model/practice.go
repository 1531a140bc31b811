package model

import "strings"

// PracticeRow is one line of a scraped practice classification. Time
// holds the leader's absolute lap time or a "+gap" for everybody else.
type PracticeRow struct {
	Position   int    `json:"position"`
	Number     string `json:"number"`
	DriverName string `json:"driver_name"`
	Team       string `json:"team"`
	Time       string `json:"time"`
	Laps       string `json:"laps"`
}

// IsGap reports whether Time is a differential to the session leader.
func (r PracticeRow) IsGap() bool {
	return strings.HasPrefix(strings.TrimSpace(r.Time), "+")
}

// PracticeSession is the classification of one free practice session.
type PracticeSession struct {
	Name      string        `json:"name"`
	SourceURL string        `json:"source_url"`
	Rows      []PracticeRow `json:"rows"`
}

// Leader returns the first row with an absolute (non-gap) time.
func (s PracticeSession) Leader() (PracticeRow, bool) {
	for _, r := range s.Rows {
		if r.Time != "" && !r.IsGap() {
			return r, true
		}
	}
	return PracticeRow{}, false
}
