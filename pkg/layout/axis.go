package layout

import (
	"github.com/matzehuels/timetable/pkg/clock"
	"github.com/matzehuels/timetable/pkg/surface"
	"github.com/matzehuels/timetable/pkg/timetable"
)

// tickHeight is the height of an hour label cell below its tick line.
const tickHeight = 6.0

// Grid is the vertical extent of the lesson area below the day headers.
type Grid struct {
	Top    float64
	Height float64
}

// Bottom returns the lower edge of the grid.
func (g Grid) Bottom() float64 { return g.Top + g.Height }

// HourAxis maps clock times onto the grid.
type HourAxis struct {
	Start, End clock.Time
	// Wrap, when set, compresses the axis around one break: the wrap hour
	// itself moves up half an hour and everything after it a full hour.
	Wrap *clock.Time
	Grid Grid
}

// NewHourAxis spans the earliest start to the latest end across every
// lesson of tt. It reports false when tt has no lessons.
func NewHourAxis(tt *timetable.Timetable, g Grid, wrap *clock.Time) (HourAxis, bool) {
	start, end, ok := tt.Bounds()
	if !ok {
		return HourAxis{}, false
	}
	return HourAxis{Start: start, End: end, Wrap: wrap, Grid: g}, true
}

// Length is the span of the axis in hours. It may be fractional.
func (a HourAxis) Length() float64 {
	return float64(a.End.Total()-a.Start.Total()) / 60
}

// Y returns the vertical position of t. Y(Start) is the grid top and
// Y(End) the grid bottom, unless a wrap hour shifts them.
func (a HourAxis) Y(t clock.Time) float64 {
	h := t.Hours()
	if a.Wrap != nil {
		switch {
		case t == *a.Wrap:
			h -= 0.5
		case t.After(*a.Wrap):
			h -= 1
		}
	}
	length := a.Length()
	if length == 0 {
		return a.Grid.Top
	}
	return a.Grid.Top + a.Grid.Height*(h-a.Start.Hours())/length
}

// Ticks returns the labelled hours: multiples of interval from the first
// one at or after Start to the last one at or before End.
func (a HourAxis) Ticks(interval clock.Time) []clock.Time {
	if interval <= 0 {
		return nil
	}
	return clock.Range(a.Start.Ceil(interval), a.End.Floor(interval), interval, true)
}

// draw writes the hour labels in the gutter left of the grid.
func (a HourAxis) draw(s surface.Surface, set timetable.Resolved, t *Text) {
	ticks := a.Ticks(set.HourInterval)
	if len(ticks) == 0 {
		return
	}
	left, _, _, _ := s.Margins()
	first, last := ticks[0], ticks[len(ticks)-1]
	for _, tick := range ticks {
		if !set.ShowFirstLast && (tick == first || tick == last) {
			continue
		}
		s.SetXY(left, a.Y(tick))
		t.Cell(s, set.HoursWidth, tickHeight, tick.String(), surface.CellOptions{
			Border: surface.TopEdge,
			Align:  surface.AlignRight,
			Next:   surface.NextStay,
		}, "")
	}
}
