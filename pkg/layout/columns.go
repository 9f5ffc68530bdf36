package layout

import "github.com/matzehuels/timetable/pkg/surface"

// DayColumns splits the printable width evenly between N days.
type DayColumns struct {
	Left  float64
	Width float64
	N     int
}

// NewDayColumns measures the columns for n days on the current page. It
// reports false when there are no days.
func NewDayColumns(s surface.Surface, n int) (DayColumns, bool) {
	if n <= 0 {
		return DayColumns{}, false
	}
	left, _, _, _ := s.Margins()
	w, _ := surface.PrintableSize(s)
	return DayColumns{Left: left, Width: w / float64(n), N: n}, true
}

// X returns the left edge of day i.
func (c DayColumns) X(i int) float64 { return c.Left + float64(i)*c.Width }
