// Package layout draws a timetable onto a [surface.Surface].
//
// # Page structure
//
// Every timetable becomes one landscape page:
//
//	┌──────────────────────────────────────────────┐
//	│                   Title                      │  title_height
//	├──────┬─────────┬─────────┬─────────┬─────────┤
//	│      │ Monday  │ Tuesday │   ...   │         │  day_height
//	│ 8:00 ├─────────┼─────────┼─────────┼─────────┤
//	│      │ lesson  │         │         │         │
//	│ 9:00 │         │ lesson  │         │         │  grid
//	│  ... │         │         │         │         │
//	└──────┴─────────┴─────────┴─────────┴─────────┘
//	 hours_width
//
// The hour gutter is pushed into the left margin while days are drawn so
// that column arithmetic only sees the printable width of the grid.
//
// # Geometry
//
// [HourAxis] maps clock times to vertical positions, [DayColumns] maps day
// indexes to horizontal positions, and [LessonMetrics] splits a lesson's
// rectangle into paddings, text lines and the optional week chip. They are
// exported so tests and other backends can reason about the same layout.
//
// # Text
//
// Single-line labels are auto-fitted: text wider than its cell is drawn at
// a proportionally smaller font size, then the size is restored. Ordinal
// suffixes ("1er", "XXIe", "Mme") are raised according to the configured
// [timetable.Ordinal] rules.
//
// # State discipline
//
// Every temporary change of the surface state goes through [surface.Push]
// or [surface.SaveCursor] with a deferred restore, so nothing leaks from
// one element to the next.
package layout
