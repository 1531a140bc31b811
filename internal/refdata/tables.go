// Package refdata holds the identifier-to-markup reference tables used by
// the wiki table formatters: nationality flags, constructor templates,
// classification status abbreviations and the practice-page alias tables.
package refdata

import (
	_ "embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// NoFlag is rendered for nationalities missing from the flag table.
const NoFlag = "{{NoFlag}}"

//go:embed tables.yaml
var embeddedTables []byte

// Resolution is the outcome of a table lookup. Markup is always usable;
// Found reports whether it came from the table or from the fallback rule.
type Resolution struct {
	Markup string
	Found  bool
}

type document struct {
	Flags         map[string]string `yaml:"flags"`
	Constructors  map[string]string `yaml:"constructors"`
	Statuses      map[string]string `yaml:"statuses"`
	DriverAliases map[string]string `yaml:"driver_aliases"`
	TeamAliases   map[string]string `yaml:"team_aliases"`
}

// Tables is an immutable set of reference mappings. The zero value is
// usable and resolves everything through the fallback rules.
type Tables struct {
	flags         map[string]string
	constructors  map[string]string
	statuses      map[string]string
	driverAliases map[string]string // normalized scraped name -> roster name
	teamAliases   map[string]string // normalized team name -> constructor id
}

// Default returns the tables compiled into the binary.
func Default() (*Tables, error) {
	var doc document
	if err := yaml.Unmarshal(embeddedTables, &doc); err != nil {
		return nil, eris.Wrap(err, "refdata: parse embedded tables")
	}
	return fromDocument(doc), nil
}

// Load returns the embedded tables merged with the YAML file at path.
// Entries in the file override embedded entries with the same key. An
// empty path returns the embedded tables unchanged.
func Load(path string) (*Tables, error) {
	var doc document
	if err := yaml.Unmarshal(embeddedTables, &doc); err != nil {
		return nil, eris.Wrap(err, "refdata: parse embedded tables")
	}
	if path == "" {
		return fromDocument(doc), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: read %s", path)
	}
	var override document
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, eris.Wrapf(err, "refdata: parse %s", path)
	}

	doc.Flags = merge(doc.Flags, override.Flags)
	doc.Constructors = merge(doc.Constructors, override.Constructors)
	doc.Statuses = merge(doc.Statuses, override.Statuses)
	doc.DriverAliases = merge(doc.DriverAliases, override.DriverAliases)
	doc.TeamAliases = merge(doc.TeamAliases, override.TeamAliases)
	return fromDocument(doc), nil
}

func merge(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

func fromDocument(doc document) *Tables {
	t := &Tables{
		flags:         merge(nil, doc.Flags),
		constructors:  merge(nil, doc.Constructors),
		statuses:      merge(nil, doc.Statuses),
		driverAliases: make(map[string]string, len(doc.DriverAliases)),
		teamAliases:   make(map[string]string, len(doc.TeamAliases)),
	}
	for k, v := range doc.DriverAliases {
		t.driverAliases[NormalizeName(k)] = v
	}
	for k, v := range doc.TeamAliases {
		t.teamAliases[NormalizeName(k)] = v
	}
	return t
}

// Flag resolves a nationality to its flag template.
func (t *Tables) Flag(nationality string) Resolution {
	if m, ok := t.flags[nationality]; ok {
		return Resolution{Markup: m, Found: true}
	}
	return Resolution{Markup: NoFlag}
}

// Constructor resolves a constructor id to its flag and team templates.
// Unknown ids render as {{<id>-CON}}.
func (t *Tables) Constructor(id string) Resolution {
	if m, ok := t.constructors[id]; ok {
		return Resolution{Markup: m, Found: true}
	}
	return Resolution{Markup: "{{" + id + "-CON}}"}
}

// Status resolves a non-numeric position text (R, D, W, ...) to its
// abbreviation template. Unknown values pass through unchanged.
func (t *Tables) Status(positionText string) Resolution {
	if m, ok := t.statuses[positionText]; ok {
		return Resolution{Markup: m, Found: true}
	}
	return Resolution{Markup: positionText}
}

// DriverAlias maps a name as written on a practice results page to the
// roster name. Names without an alias resolve to themselves.
func (t *Tables) DriverAlias(name string) Resolution {
	if v, ok := t.driverAliases[NormalizeName(name)]; ok {
		return Resolution{Markup: v, Found: true}
	}
	return Resolution{Markup: name}
}

// TeamConstructor maps a practice-page team name to constructor markup.
// Unknown team names fall back to the constructor rule with the raw name.
func (t *Tables) TeamConstructor(team string) Resolution {
	team = strings.TrimSpace(team)
	if id, ok := t.teamAliases[NormalizeName(team)]; ok {
		return t.Constructor(id)
	}
	return Resolution{Markup: "{{" + team + "-CON}}"}
}
