// Package timetable defines the weekly schedule model shared by the parser
// and the layout engine.
//
// A [Timetable] is an ordered list of [Day] values, each holding the
// [Lesson] values written under it. The model is plain data: the parser
// builds it once per document and the layout engine only reads it.
//
// Times are [clock.Time] values. Lesson Start and End are clock readings;
// the differences computed from them (lesson length, day length) are
// durations carried in the same type.
package timetable

import (
	"fmt"
	"slices"

	"github.com/matzehuels/timetable/pkg/clock"
	"github.com/matzehuels/timetable/pkg/color"
	"github.com/matzehuels/timetable/pkg/pause"
)

// DefaultTitle is used when a document does not set one.
const DefaultTitle = "Timetable"

// DefaultRemovedMarker is the lesson suffix marking a cancelled lesson.
const DefaultRemovedMarker = "Dispensé"

// Week says which weeks a lesson takes place in.
type Week int

const (
	Always Week = iota
	Left
	Right
)

// String returns the lower-case week name.
func (w Week) String() string {
	switch w {
	case Always:
		return "always"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("week(%d)", int(w))
	}
}

// Lesson is one entry of a day.
type Lesson struct {
	Start   clock.Time `json:"start"`
	End     clock.Time `json:"end"`
	Name    string     `json:"name"`
	Teacher string     `json:"teacher,omitempty"`
	Room    string     `json:"room,omitempty"`
	Color   *color.RGB `json:"color,omitempty"`
	Week    Week       `json:"week"`
	Removed bool       `json:"removed,omitempty"`
}

// Duration returns End - Start as a duration.
func (l Lesson) Duration() clock.Time { return l.End.Sub(l.Start) }

// Day is a named column of lessons in the order they were written.
type Day struct {
	Name    string   `json:"name"`
	Lessons []Lesson `json:"lessons"`
}

// Bounds returns the earliest lesson start and the latest lesson end.
// ok is false for a day without lessons.
func (d Day) Bounds() (start, end clock.Time, ok bool) {
	if len(d.Lessons) == 0 {
		return 0, 0, false
	}
	start, end = d.Lessons[0].Start, d.Lessons[0].End
	for _, l := range d.Lessons[1:] {
		start = clock.Min(start, l.Start)
		end = clock.Max(end, l.End)
	}
	return start, end, true
}

// Pauses derives the day's break coverage. The explicit pauses are the
// gaps between lessons sorted by start time; overlapping lessons (left and
// right week halves) leave no gap. The set is built fresh on every call so
// it always reflects the current lessons.
func (d Day) Pauses() *pause.Set {
	start, end, ok := d.Bounds()
	if !ok {
		return pause.NewSet(clock.Midnight, clock.Midnight)
	}
	sorted := slices.Clone(d.Lessons)
	slices.SortStableFunc(sorted, func(a, b Lesson) int { return a.Start.Compare(b.Start) })

	var gaps []pause.Pause
	reached := sorted[0].End
	for _, l := range sorted[1:] {
		if l.Start > reached {
			gaps = append(gaps, pause.New(reached, l.Start))
		}
		reached = clock.Max(reached, l.End)
	}
	return pause.NewSet(start, end, gaps...)
}

// Timetable is one parsed document.
type Timetable struct {
	Title     string `json:"title"`
	Days      []Day  `json:"days"`
	LeftWeek  string `json:"left_week,omitempty"`
	RightWeek string `json:"right_week,omitempty"`
	// RemovedMarker is the suffix that marked removed lessons in the
	// source text. Empty means DefaultRemovedMarker.
	RemovedMarker string `json:"removed_marker,omitempty"`
}

// Marker returns the removed-lesson suffix in effect for t.
func (t *Timetable) Marker() string {
	if t.RemovedMarker == "" {
		return DefaultRemovedMarker
	}
	return t.RemovedMarker
}

// New returns an empty timetable with the default title.
func New() *Timetable {
	return &Timetable{Title: DefaultTitle}
}

// Bounds returns the earliest start and the latest end over all lessons of
// all days. ok is false when the timetable has no lessons.
func (t *Timetable) Bounds() (start, end clock.Time, ok bool) {
	for _, d := range t.Days {
		s, e, dok := d.Bounds()
		if !dok {
			continue
		}
		if !ok {
			start, end, ok = s, e, true
			continue
		}
		start = clock.Min(start, s)
		end = clock.Max(end, e)
	}
	return start, end, ok
}

// LessonCount returns the number of lessons over all days.
func (t *Timetable) LessonCount() int {
	n := 0
	for _, d := range t.Days {
		n += len(d.Lessons)
	}
	return n
}

// WeekLabel returns the configured label for w, or "" for Always.
func (t *Timetable) WeekLabel(w Week) string {
	switch w {
	case Left:
		return t.LeftWeek
	case Right:
		return t.RightWeek
	default:
		return ""
	}
}

// Intersector returns a pause intersector bounded by the timetable's
// global school-day bounds.
func (t *Timetable) Intersector() pause.Intersector {
	start, end, _ := t.Bounds()
	return pause.Intersector{Start: start, End: end}
}

// CommonPause returns the first break shared by every day that has
// lessons. Days without lessons are free all day and do not constrain
// the result.
func (t *Timetable) CommonPause() (pause.Pause, bool) {
	var sets []*pause.Set
	for _, d := range t.Days {
		if len(d.Lessons) > 0 {
			sets = append(sets, d.Pauses())
		}
	}
	return t.Intersector().CommonFreeInterval(sets...)
}

// Validate checks that every alternating lesson refers to a configured
// week label.
func (t *Timetable) Validate() error {
	for _, d := range t.Days {
		for i, l := range d.Lessons {
			if l.Week != Always && t.WeekLabel(l.Week) == "" {
				return fmt.Errorf("day %q lesson %d (%s): %s week label is not configured", d.Name, i+1, l.Name, l.Week)
			}
		}
	}
	return nil
}
