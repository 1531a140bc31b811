package model

import "strings"

// Driver identifies a competitor as reported by the results provider.
type Driver struct {
	ID              string `json:"driver_id"`
	Code            string `json:"code,omitempty"`
	PermanentNumber string `json:"permanent_number,omitempty"`
	GivenName       string `json:"given_name"`
	FamilyName      string `json:"family_name"`
	Nationality     string `json:"nationality"`
}

// FullName returns the display name used for wiki links.
func (d Driver) FullName() string {
	return strings.TrimSpace(d.GivenName + " " + d.FamilyName)
}

// Constructor identifies a team entry.
type Constructor struct {
	ID          string `json:"constructor_id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
}

// Race identifies the event a record set belongs to.
type Race struct {
	Season int    `json:"season"`
	Round  int    `json:"round"`
	Name   string `json:"name"`
	URL    string `json:"url,omitempty"`
}
