// Package wikitable renders fetched results as wiki markup for the
// Formula One Wiki. Template names (flags, ordinals, abbreviations) are
// part of the wiki's template library and are emitted verbatim.
//
// Every formatter builds the whole table in memory and writes it in one
// call, so a failure never leaves a partial table on the writer.
package wikitable

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/f1wiki/f1-wikitable/internal/model"
	"github.com/f1wiki/f1-wikitable/internal/refdata"
)

// ErrNoData is returned when a formatter is given nothing to render.
var ErrNoData = eris.New("no data available")

// Default citation URL templates. {season} and {round} are substituted.
const (
	DefaultQualifyingURL = "https://www.formula1.com/en/results/{season}/races"
	DefaultPracticeURL   = "https://www.formula1.com/en/results/{season}/races"
)

// retrievedLayout matches the wiki's citation style, e.g. "7 May 2022".
const retrievedLayout = "2 January 2006"

// Citations holds the source URL templates cited under the tables.
type Citations struct {
	QualifyingURL string
	PracticeURL   string
}

// DefaultCitations returns the formula1.com results templates.
func DefaultCitations() Citations {
	return Citations{QualifyingURL: DefaultQualifyingURL, PracticeURL: DefaultPracticeURL}
}

func expandURL(tmpl string, r model.Race) string {
	return strings.NewReplacer(
		"{season}", strconv.Itoa(r.Season),
		"{round}", strconv.Itoa(r.Round),
	).Replace(tmpl)
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithCitations overrides the citation URL templates. Empty fields keep
// their defaults.
func WithCitations(c Citations) Option {
	return func(f *Formatter) {
		if c.QualifyingURL != "" {
			f.citations.QualifyingURL = c.QualifyingURL
		}
		if c.PracticeURL != "" {
			f.citations.PracticeURL = c.PracticeURL
		}
	}
}

// WithClock sets the time source used for citation retrieval dates.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		f.now = now
	}
}

// Formatter renders record sets. It holds no per-table state and may be
// reused.
type Formatter struct {
	tables    *refdata.Tables
	citations Citations
	now       func() time.Time
}

// New creates a Formatter resolving display markup through tables.
func New(tables *refdata.Tables, opts ...Option) *Formatter {
	if tables == nil {
		tables = &refdata.Tables{}
	}
	f := &Formatter{
		tables:    tables,
		citations: DefaultCitations(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) retrieved() string {
	return f.now().Format(retrievedLayout)
}

// driverCell renders "<flag> [[Full Name]]", or a bare link when the
// nationality has no flag template.
func (f *Formatter) driverCell(d model.Driver) string {
	link := "[[" + d.FullName() + "]]"
	if flag := f.tables.Flag(d.Nationality); flag.Found {
		return flag.Markup + " " + link
	}
	return link
}

func (f *Formatter) teamCell(c model.Constructor) string {
	return f.tables.Constructor(c.ID).Markup
}

func bold(s string) string {
	return "'''" + s + "'''"
}

// cell writes a markup cell line. Blank cells carry no trailing space.
func cell(b *strings.Builder, marker, value string) {
	b.WriteString(marker)
	if value != "" {
		b.WriteString(" ")
		b.WriteString(value)
	}
	b.WriteString("\n")
}

func flush(w io.Writer, b *strings.Builder) error {
	if _, err := io.WriteString(w, b.String()); err != nil {
		return eris.Wrap(err, "wikitable: write")
	}
	return nil
}
