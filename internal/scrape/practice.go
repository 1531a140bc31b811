// Package scrape reads free practice classifications from the official
// results pages, which the statistics API does not carry.
package scrape

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/f1wiki/f1-wikitable/internal/fetcher"
	"github.com/f1wiki/f1-wikitable/internal/model"
)

// ErrNoResultsTable is returned when a page has no recognisable
// classification table.
var ErrNoResultsTable = eris.New("scrape: no results table")

type column int

const (
	colPos column = iota
	colNumber
	colDriver
	colTeam
	colTime
	colLaps
)

// headerColumns maps normalized header text to a column. When a page has
// both TIME and GAP columns the absolute TIME wins.
var headerColumns = map[string]column{
	"POS":      colPos,
	"NO":       colNumber,
	"DRIVER":   colDriver,
	"CAR":      colTeam,
	"TEAM":     colTeam,
	"TIME":     colTime,
	"TIME/GAP": colTime,
	"GAP":      colTime,
	"LAPS":     colLaps,
}

// PracticeScraper fetches and parses practice results pages.
type PracticeScraper struct {
	fetcher fetcher.Fetcher
}

// NewPracticeScraper creates a scraper that downloads pages through f.
func NewPracticeScraper(f fetcher.Fetcher) *PracticeScraper {
	return &PracticeScraper{fetcher: f}
}

// Session downloads url and returns its classification under name
// (FP1, FP2 or FP3).
func (s *PracticeScraper) Session(ctx context.Context, name, url string) (*model.PracticeSession, error) {
	if err := ValidateURL(url); err != nil {
		return nil, err
	}

	body, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, eris.Wrapf(err, "scrape: %s", name)
	}

	session, err := ParsePractice(name, url, body)
	if err != nil {
		if bt := DetectBlock(body); bt != BlockNone {
			return nil, eris.Wrapf(err, "scrape: %s blocked (%s)", name, bt)
		}
		return nil, err
	}

	zap.L().Debug("practice session scraped",
		zap.String("session", session.Name),
		zap.Int("rows", len(session.Rows)),
	)
	return session, nil
}

// ParsePractice extracts the first classification table from an HTML page.
func ParsePractice(name, sourceURL string, body []byte) (*model.PracticeSession, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "scrape: parse html")
	}

	session := &model.PracticeSession{
		Name:      strings.ToUpper(strings.TrimSpace(name)),
		SourceURL: sourceURL,
	}

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		cols := tableColumns(table)
		if _, ok := cols[colDriver]; !ok {
			return true
		}
		if _, ok := cols[colTime]; !ok {
			return true
		}
		session.Rows = parseRows(table, cols)
		return len(session.Rows) == 0
	})

	if len(session.Rows) == 0 {
		return nil, eris.Wrapf(ErrNoResultsTable, "%s %s", session.Name, sourceURL)
	}
	return session, nil
}

func tableColumns(table *goquery.Selection) map[column]int {
	headers := table.Find("thead th")
	if headers.Length() == 0 {
		headers = table.Find("tr").First().Find("th")
	}

	cols := make(map[column]int)
	headers.Each(func(i int, th *goquery.Selection) {
		key := normalizeHeader(th.Text())
		c, ok := headerColumns[key]
		if !ok {
			return
		}
		// First match wins, except an explicit TIME beats a GAP seen earlier.
		if _, seen := cols[c]; seen && !(c == colTime && key == "TIME") {
			return
		}
		cols[c] = i
	})
	return cols
}

func normalizeHeader(s string) string {
	s = strings.ToUpper(collapse(s))
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, " ", "")
}

func parseRows(table *goquery.Selection, cols map[column]int) []model.PracticeRow {
	var rows []model.PracticeRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		cell := func(c column) *goquery.Selection {
			i, ok := cols[c]
			if !ok || i >= cells.Length() {
				return nil
			}
			return cells.Eq(i)
		}
		text := func(c column) string {
			if s := cell(c); s != nil {
				return collapse(s.Text())
			}
			return ""
		}

		var name string
		if s := cell(colDriver); s != nil {
			name = driverName(s)
		}
		if name == "" {
			return
		}

		pos, err := strconv.Atoi(text(colPos))
		if err != nil {
			// Unclassified rows keep page order.
			pos = len(rows) + 1
		}
		rows = append(rows, model.PracticeRow{
			Position:   pos,
			Number:     text(colNumber),
			DriverName: name,
			Team:       text(colTeam),
			Time:       text(colTime),
			Laps:       text(colLaps),
		})
	})
	return rows
}

// driverName reads a driver cell. Results pages split the name across
// spans and append the three-letter timing code, which is dropped.
func driverName(cell *goquery.Selection) string {
	var parts []string
	cell.Find("span").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		parts = append(parts, strings.Fields(s.Text())...)
	})
	if len(parts) == 0 {
		parts = strings.Fields(cell.Text())
	}
	if len(parts) > 1 && isTimingCode(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, " ")
}

func isTimingCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
