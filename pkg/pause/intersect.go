package pause

import "github.com/matzehuels/timetable/pkg/clock"

// Intersector finds breaks shared by several days. Start and End are the
// global school-day bounds: earliest lesson start and latest lesson end
// across all days.
type Intersector struct {
	Start clock.Time
	End   clock.Time
}

// CommonFreeInterval walks the Cartesian product of the sets' pauses, each
// set iterated as in [Set.All], and returns the first combination whose
// intersection is non-empty and lies strictly inside the global bounds.
// This rules out the synthetic boundary pauses.
//
// The first qualifying combination wins, which is not necessarily the
// longest common break.
func (x Intersector) CommonFreeInterval(sets ...*Set) (Pause, bool) {
	if len(sets) == 0 {
		return Pause{}, false
	}
	lists := make([][]Pause, len(sets))
	for i, s := range sets {
		lists[i] = s.All()
	}

	idx := make([]int, len(lists))
	combo := make([]Pause, len(lists))
	for {
		for i, j := range idx {
			combo[i] = lists[i][j]
		}
		if p, ok := Intersection(combo...); ok && !p.Empty() && x.within(p) {
			return p, true
		}
		if !advance(idx, lists) {
			return Pause{}, false
		}
	}
}

func (x Intersector) within(p Pause) bool {
	return p.Start > x.Start && p.End < x.End
}

// advance steps idx like an odometer, rightmost digit fastest, which is
// the iteration order of a nested product. It reports false once every
// combination has been visited.
func advance(idx []int, lists [][]Pause) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < len(lists[i]) {
			return true
		}
		idx[i] = 0
	}
	return false
}
