package pause

import (
	"slices"

	"github.com/matzehuels/timetable/pkg/clock"
)

// Set is the break coverage of one day: explicit pauses in file order plus
// the leading [midnight, dayStart] and trailing [dayEnd, EndOfDay] boundary
// pauses. The trailing boundary stops at 23:59 because 24:00 is not a
// representable clock.Time.
type Set struct {
	start, end clock.Time
	explicit   []Pause
	leading    Pause
	trailing   Pause
}

// NewSet builds the pause set of a day running from dayStart to dayEnd.
func NewSet(dayStart, dayEnd clock.Time, explicit ...Pause) *Set {
	s := &Set{explicit: slices.Clone(explicit)}
	s.Rebuild(dayStart, dayEnd)
	return s
}

// Rebuild moves the day bounds and re-derives the boundary pauses.
func (s *Set) Rebuild(dayStart, dayEnd clock.Time) {
	s.start, s.end = dayStart, dayEnd
	s.leading = Pause{Start: clock.Midnight, End: dayStart}
	s.trailing = Pause{Start: dayEnd, End: clock.EndOfDay}
}

// Add appends an explicit pause.
func (s *Set) Add(p Pause) { s.explicit = append(s.explicit, p) }

// Bounds returns the day start and end the set was built for.
func (s *Set) Bounds() (start, end clock.Time) { return s.start, s.end }

// Explicit returns the explicit pauses in insertion order.
func (s *Set) Explicit() []Pause { return slices.Clone(s.explicit) }

// Len returns the number of pauses All yields.
func (s *Set) Len() int { return len(s.explicit) + 2 }

// All returns the leading boundary, every explicit pause, then the trailing
// boundary.
func (s *Set) All() []Pause {
	out := make([]Pause, 0, s.Len())
	out = append(out, s.leading)
	out = append(out, s.explicit...)
	return append(out, s.trailing)
}

// Contains reports whether p counts as free time on this day.
//
// A day without explicit pauses treats everything as free. Otherwise a
// range entirely before the day start or entirely after the day end is
// free, and anything else must be covered by one explicit or boundary
// pause.
func (s *Set) Contains(p Pause) bool {
	if len(s.explicit) == 0 {
		return true
	}
	if p.End <= s.start || p.Start >= s.end {
		return true
	}
	for _, q := range s.All() {
		if q.Covers(p) {
			return true
		}
	}
	return false
}

// ContainsTime reports whether the instant t counts as free time.
func (s *Set) ContainsTime(t clock.Time) bool {
	return s.Contains(Pause{Start: t, End: t})
}
