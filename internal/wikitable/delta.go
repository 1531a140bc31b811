package wikitable

import "strconv"

// DeltaKind classifies a championship position change.
type DeltaKind int

const (
	DeltaNoData DeltaKind = iota
	DeltaUnchanged
	DeltaUp
	DeltaDown
)

// Delta is the change in an entity's position since the previous round.
// Places is zero unless Kind is DeltaUp or DeltaDown.
type Delta struct {
	Kind   DeltaKind
	Places int
}

// PositionDelta compares id's position in current against previous.
// A nil previous snapshot, or an id missing from either snapshot, yields
// DeltaNoData. Dropping out of the current standings is reported the
// same way as being new to them.
func PositionDelta(current, previous map[string]int, id string) Delta {
	if previous == nil {
		return Delta{Kind: DeltaNoData}
	}
	cur, ok := current[id]
	if !ok {
		return Delta{Kind: DeltaNoData}
	}
	prev, ok := previous[id]
	if !ok {
		return Delta{Kind: DeltaNoData}
	}
	switch {
	case cur < prev:
		return Delta{Kind: DeltaUp, Places: prev - cur}
	case cur > prev:
		return Delta{Kind: DeltaDown, Places: cur - prev}
	default:
		return Delta{Kind: DeltaUnchanged}
	}
}

// Markup renders the delta with the wiki's arrow templates.
func (d Delta) Markup() string {
	switch d.Kind {
	case DeltaUnchanged:
		return "{{Steady}}"
	case DeltaUp:
		return "{{Up}} " + strconv.Itoa(d.Places)
	case DeltaDown:
		return "{{Down}} " + strconv.Itoa(d.Places)
	default:
		return "{{X}}"
	}
}
