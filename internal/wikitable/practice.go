package wikitable

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/f1wiki/f1-wikitable/internal/laptime"
	"github.com/f1wiki/f1-wikitable/internal/model"
	"github.com/f1wiki/f1-wikitable/internal/refdata"
)

const didNotParticipate = "{{abbr|DNP|Did not participate}}"

// PracticeInput pairs the round's roster with its scraped sessions.
type PracticeInput struct {
	Race     model.Race
	Roster   []model.Driver
	Sessions []model.PracticeSession
}

type practiceResult struct {
	pos     int
	time    string
	fastest bool
}

type practiceEntry struct {
	number  string
	driver  string
	team    string
	results []*practiceResult
}

// Practice writes the free practice overview: one row per roster driver
// with a position and time column pair per session. Drivers found on the
// results pages but not in the roster, such as FP1 reserve drivers, are
// listed after the roster.
func (f *Formatter) Practice(w io.Writer, in PracticeInput) error {
	if len(in.Sessions) == 0 {
		return eris.Wrap(ErrNoData, "wikitable: practice")
	}
	empty := true
	for _, s := range in.Sessions {
		if len(s.Rows) > 0 {
			empty = false
		}
	}
	if empty {
		return eris.Wrap(ErrNoData, "wikitable: practice")
	}

	entries := f.reconcile(in)

	var b strings.Builder
	b.WriteString("===Practice Overview===\n")
	b.WriteString(`{|class="wikitable" style="font-size:85%"` + "\n")
	b.WriteString(`! rowspan=2 | <span style="cursor:help" title="Car Number">No.</span>` + "\n")
	b.WriteString("! rowspan=2 | Driver\n")
	b.WriteString("! rowspan=2 | Team\n")
	for _, s := range in.Sessions {
		fmt.Fprintf(&b, "! colspan=2 | <span style=\"cursor:help\" title=\"%s\">%s</span>\n", sessionTitle(s.Name), s.Name)
	}
	b.WriteString("|-\n")
	for range in.Sessions {
		b.WriteString(`! <span style="cursor:help" title="Position">Pos.</span>` + "\n")
		b.WriteString("! Time\n")
	}

	for _, e := range entries {
		b.WriteString("|-\n")
		cell(&b, "| align=center |", e.number)
		cell(&b, "|", e.driver)
		cell(&b, "|", e.team)
		for _, res := range e.results {
			if res == nil {
				cell(&b, "| colspan=2 align=center |", didNotParticipate)
				continue
			}
			cell(&b, "!", strconv.Itoa(res.pos))
			lap := res.time
			if res.fastest {
				lap = bold(lap)
			}
			cell(&b, "|", lap)
		}
	}

	b.WriteString("|-\n")
	fmt.Fprintf(&b, "! colspan=%d | Source:", 3+2*len(in.Sessions))
	for _, s := range in.Sessions {
		src := s.SourceURL
		if src == "" {
			src = expandURL(f.citations.PracticeURL, in.Race)
		}
		fmt.Fprintf(&b, "<ref name=%s>{{PAGENAME}} - %s, ''%s'', (Formula One World Championship Limited, %d. Retrieved on %s)</ref>",
			s.Name, sessionLabel(s.Name), src, in.Race.Season, f.retrieved())
	}
	b.WriteString("\n|}\n")
	b.WriteString(qualifyingLegend)

	return flush(w, &b)
}

// reconcile matches scraped rows to roster drivers by normalized name,
// after applying the driver alias table to the scraped name.
func (f *Formatter) reconcile(in PracticeInput) []*practiceEntry {
	var entries []*practiceEntry
	byName := make(map[string]*practiceEntry)

	for _, d := range in.Roster {
		e := &practiceEntry{
			number:  d.PermanentNumber,
			driver:  f.driverCell(d),
			results: make([]*practiceResult, len(in.Sessions)),
		}
		entries = append(entries, e)
		byName[refdata.NormalizeName(d.FullName())] = e
	}

	for si, s := range in.Sessions {
		times := displayTimes(s)
		fastest := fastestIndex(times)

		for ri, r := range s.Rows {
			name := f.tables.DriverAlias(r.DriverName).Markup
			key := refdata.NormalizeName(name)
			e, ok := byName[key]
			if !ok {
				zap.L().Warn("practice driver not in roster",
					zap.String("session", s.Name),
					zap.String("driver", r.DriverName),
				)
				e = &practiceEntry{
					driver:  "[[" + name + "]]",
					results: make([]*practiceResult, len(in.Sessions)),
				}
				entries = append(entries, e)
				byName[key] = e
			}
			if e.results[si] != nil {
				continue
			}

			// Race numbers on the results page beat permanent numbers.
			if r.Number != "" {
				e.number = r.Number
			}
			if e.team == "" && r.Team != "" {
				e.team = f.tables.TeamConstructor(r.Team).Markup
			}
			e.results[si] = &practiceResult{pos: r.Position, time: times[ri], fastest: ri == fastest}
		}
	}
	return entries
}

// displayTimes converts gap times to absolute times against the session
// leader. Gaps that cannot be converted are shown as published.
func displayTimes(s model.PracticeSession) []string {
	leader, hasLeader := s.Leader()
	out := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = r.Time
		if hasLeader && r.IsGap() {
			out[i] = laptime.AbsoluteFromGap(leader.Time, r.Time)
		}
	}
	return out
}

func fastestIndex(times []string) int {
	best, bestMs := -1, int64(0)
	for i, t := range times {
		ms, ok := laptime.Millis(t)
		if !ok {
			continue
		}
		if best < 0 || ms < bestMs {
			best, bestMs = i, ms
		}
	}
	return best
}

// sessionTitle expands "FP1" to "Free Practice 1".
func sessionTitle(name string) string {
	if n, ok := strings.CutPrefix(name, "FP"); ok {
		return "Free Practice " + n
	}
	return name
}

func sessionLabel(name string) string {
	if n, ok := strings.CutPrefix(name, "FP"); ok {
		return "Practice " + n
	}
	return name
}
