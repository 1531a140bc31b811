// Package laptime parses and renders lap times of the form "M:SS.sss" or
// "SS.sss". Everything here is best effort: helpers fall back to a
// default or to their input instead of returning errors.
package laptime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Millis parses a lap time into milliseconds. Minutes are optional.
// It reports false for anything that is not a non-negative time.
func Millis(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	var minutes int64
	secPart := s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		m, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil || m < 0 {
			return 0, false
		}
		minutes = m
		secPart = s[i+1:]
	}

	sec, err := strconv.ParseFloat(secPart, 64)
	if err != nil || !finite(sec) || sec < 0 {
		return 0, false
	}
	return minutes*60_000 + int64(math.Round(sec*1000)), true
}

// Format renders milliseconds as "M:SS.sss", or "S.sss" under a minute.
func Format(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	m := ms / 60_000
	rem := ms % 60_000
	if m > 0 {
		return fmt.Sprintf("%d:%02d.%03d", m, rem/1000, rem%1000)
	}
	return fmt.Sprintf("%d.%03d", rem/1000, rem%1000)
}

// Cutoff107 returns 107% of the given lap time, the slowest time a driver
// may set in the first qualifying segment and still start the race.
// Unparsable minutes or seconds count as zero, so malformed input still
// yields a deterministic result ("0:00.0" when nothing parses). The
// result always carries a minute prefix and the shortest fractional part.
func Cutoff107(lap string) string {
	minutes, seconds := splitLoose(lap)
	total := float64(minutes)*60 + seconds
	ms := int64(math.Round(total * 1.07 * 1000))

	frac := strings.TrimRight(fmt.Sprintf("%03d", ms%1000), "0")
	if frac == "" {
		frac = "0"
	}
	return fmt.Sprintf("%d:%02d.%s", ms/60_000, (ms%60_000)/1000, frac)
}

func splitLoose(s string) (int64, float64) {
	s = strings.TrimSpace(s)
	minPart, secPart := "", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		minPart, secPart = s[:i], s[i+1:]
	}

	var minutes int64
	if m, err := strconv.ParseInt(strings.TrimSpace(minPart), 10, 64); err == nil && m > 0 {
		minutes = m
	}
	var seconds float64
	if v, err := strconv.ParseFloat(strings.TrimSpace(secPart), 64); err == nil && finite(v) && v > 0 {
		seconds = v
	}
	return minutes, seconds
}

// AbsoluteFromGap converts a differential such as "+0.087s" into an
// absolute time by adding it to base. If either value does not parse the
// differential is returned unchanged, so callers always get a display
// string but never a guarantee that it is a time.
func AbsoluteFromGap(base, gap string) string {
	baseMs, ok := Millis(base)
	if !ok {
		return gap
	}
	g := strings.TrimSpace(gap)
	g = strings.TrimPrefix(g, "+")
	g = strings.TrimSuffix(g, "s")
	gapMs, ok := Millis(g)
	if !ok {
		return gap
	}
	return Format(baseMs + gapMs)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
