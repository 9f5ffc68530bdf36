// Package pause reasons about break intervals within a school day.
//
// A [Pause] is a free range of clock time. A [Set] collects the pauses of
// one day together with two implicit boundary pauses, midnight to the first
// lesson and the last lesson to the end of the day. An [Intersector] looks
// for a break shared by several days.
//
// All values are built from [clock.Time] clock readings.
package pause

import (
	"fmt"

	"github.com/matzehuels/timetable/pkg/clock"
)

// Pause is a free range of the day. It is empty when Start == End.
type Pause struct {
	Start clock.Time `json:"start"`
	End   clock.Time `json:"end"`
}

// New returns the pause [start, end].
func New(start, end clock.Time) Pause {
	return Pause{Start: start, End: end}
}

// Empty reports whether the pause has no length.
func (p Pause) Empty() bool { return p.Start == p.End }

// Length returns End-Start as a duration.
func (p Pause) Length() clock.Time { return p.End.Sub(p.Start) }

// Contains reports whether t lies within the pause, bounds included.
func (p Pause) Contains(t clock.Time) bool {
	return p.Start <= t && t <= p.End
}

// Covers reports whether o is fully nested inside p.
func (p Pause) Covers(o Pause) bool {
	return p.Start <= o.Start && o.End <= p.End
}

// String formats the pause as "H:MM-H:MM".
func (p Pause) String() string {
	return fmt.Sprintf("%s-%s", p.Start, p.End)
}

// Intersection returns the simultaneous intersection of every operand: the
// latest start and the earliest end taken across all of them at once. It
// reports false when the result would end before it starts, or when called
// without operands.
func Intersection(ps ...Pause) (Pause, bool) {
	if len(ps) == 0 {
		return Pause{}, false
	}
	out := ps[0]
	for _, p := range ps[1:] {
		out.Start = max(out.Start, p.Start)
		out.End = min(out.End, p.End)
	}
	if out.End < out.Start {
		return Pause{}, false
	}
	return out, true
}
