package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timetable/pkg/color"
	"github.com/matzehuels/timetable/pkg/surface"
	"github.com/matzehuels/timetable/pkg/timetable"
)

const (
	titleFontSize = 28.0
	titleIndent   = 10.0
	shadowOffset  = 0.5
	bodyFontSize  = 12.0
)

var (
	titleColor  = color.RGB{R: 68, G: 113, B: 196}
	shadowColor = color.RGB{R: 143, G: 170, B: 220}
	pauseColor  = color.RGB{R: 235, G: 235, B: 235}
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for layout diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// Renderer draws one timetable per page.
type Renderer struct {
	tt     *timetable.Timetable
	set    timetable.Resolved
	text   *Text
	logger *log.Logger
}

// New prepares a renderer for tt with fully resolved settings. It fails
// when an ordinal rule does not compile.
func New(tt *timetable.Timetable, set timetable.Resolved, opts ...Option) (*Renderer, error) {
	ord, err := CompileOrdinals(set.Ordinals)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		tt:     tt,
		set:    set,
		text:   &Text{Ordinals: ord},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render adds a landscape page to s and draws the timetable on it. It
// returns the first error reported by the surface.
func (r *Renderer) Render(s surface.Surface) error {
	s.AddPage(surface.Landscape)
	r.drawTitle(s)

	defer surface.Push(s, surface.Override{}.Style(surface.Regular).Size(bodyFontSize))()

	grid := r.Grid(s)
	axis, hasAxis := NewHourAxis(r.tt, grid, r.set.WrapHour)
	if hasAxis {
		axis.draw(s, r.set, r.text)
	} else {
		r.logger.Debug("no lessons, skipping hour axis", "title", r.tt.Title)
	}

	left, _, _, _ := s.Margins()
	s.SetLeftMargin(left + r.set.HoursWidth)
	defer s.SetLeftMargin(left)

	cols, ok := NewDayColumns(s, len(r.tt.Days))
	if !ok {
		return s.Err()
	}

	if r.set.ShowPauses && hasAxis {
		r.drawCommonPause(s, axis, cols)
	}

	var chip *Chip
	if r.set.ShowWeeks {
		c := chipSize(s, r.tt)
		chip = &c
	}
	for i, day := range r.tt.Days {
		r.drawDay(s, cols, grid, axis, hasAxis, chip, i, day)
	}

	r.logger.Debug("rendered timetable", "title", r.tt.Title, "days", len(r.tt.Days), "lessons", r.tt.LessonCount())
	if err := s.Err(); err != nil {
		return fmt.Errorf("render %q: %w", r.tt.Title, err)
	}
	return nil
}

// Grid returns the lesson area of the current page, below the title and
// the day headers.
func (r *Renderer) Grid(s surface.Surface) Grid {
	_, top, _, _ := s.Margins()
	_, printable := surface.PrintableSize(s)
	return Grid{
		Top:    top + r.set.TitleHeight + r.set.DayHeight,
		Height: printable - r.set.TitleHeight - r.set.DayHeight,
	}
}

func (r *Renderer) drawTitle(s surface.Surface) {
	if r.set.TitleHeight <= 0 {
		return
	}
	title := r.tt.Title
	if title == "" {
		title = timetable.DefaultTitle
	}

	defer surface.Push(s, surface.Override{}.Style(surface.Bold).Size(titleFontSize))()
	left, top, _, _ := s.Margins()
	x, y := left+titleIndent, top

	if r.set.TitleShadow {
		s.SetXY(x+shadowOffset, y+shadowOffset)
		pop := surface.Push(s, surface.Override{}.Text(r.tone(shadowColor)))
		r.text.Cell(s, 0, r.set.TitleHeight, title, surface.CellOptions{Align: surface.AlignCenter, Next: surface.NextStay}, "")
		pop()
	}

	s.SetXY(x, y)
	o := surface.Override{}
	if r.set.TitleShadow {
		o = o.Text(r.tone(titleColor))
	}
	defer surface.Push(s, o)()
	r.text.Cell(s, 0, r.set.TitleHeight, title, surface.CellOptions{Align: surface.AlignCenter, Next: surface.NextLine}, "")
}

// tone converts c to grey in black-and-white mode.
func (r *Renderer) tone(c color.RGB) color.RGB {
	if r.set.BlackWhite {
		return c.Gray()
	}
	return c
}

func (r *Renderer) drawCommonPause(s surface.Surface, axis HourAxis, cols DayColumns) {
	p, ok := r.tt.CommonPause()
	if !ok {
		return
	}
	y1, y2 := axis.Y(p.Start), axis.Y(p.End)
	if y2 <= y1 {
		return
	}
	r.logger.Debug("common pause", "pause", p.String())
	defer surface.Push(s, surface.Override{}.Fill(pauseColor))()
	s.Rect(cols.Left, y1, cols.Width*float64(cols.N), y2-y1, surface.Fill)
}

func (r *Renderer) drawDay(s surface.Surface, cols DayColumns, grid Grid, axis HourAxis, hasAxis bool, chip *Chip, i int, day timetable.Day) {
	x := cols.X(i)
	s.SetXY(x, grid.Top-r.set.DayHeight)
	func() {
		defer surface.Push(s, surface.Override{}.Style(surface.Bold))()
		r.text.Cell(s, cols.Width, r.set.DayHeight, day.Name, surface.CellOptions{
			Border: surface.FullFrame,
			Align:  surface.AlignCenter,
			Next:   surface.NextBelow,
		}, "")
	}()
	s.Rect(x, grid.Top, cols.Width, grid.Height, surface.Draw)

	if !hasAxis {
		return
	}
	for _, lesson := range day.Lessons {
		r.drawLesson(s, cols, axis, chip, i, lesson)
	}
}

func (r *Renderer) drawLesson(s surface.Surface, cols DayColumns, axis HourAxis, chip *Chip, day int, l timetable.Lesson) {
	x, width := cols.X(day), cols.Width
	switch l.Week {
	case timetable.Left:
		width /= 2
	case timetable.Right:
		width /= 2
		x += width
	}

	items := lessonItems(l, r.set)
	var shown *Chip
	if chip != nil && l.Week != timetable.Always {
		shown = chip
	}
	m := NewLessonMetrics(x, width, axis.Y(l.Start), axis.Y(l.End), len(items), shown)

	if l.Color != nil && !r.set.BlackWhite {
		pop := surface.Push(s, surface.Override{}.Fill(*l.Color))
		s.Rect(m.X, m.StartY, m.Width, m.Height(), surface.DrawFill)
		pop()
	} else {
		s.Rect(m.X, m.StartY, m.Width, m.Height(), surface.Draw)
	}

	s.SetXY(m.X, m.TextTop())
	for _, item := range items {
		r.drawItem(s, m, item)
	}

	if m.ChipShown {
		r.drawChip(s, m, r.tt.WeekLabel(l.Week))
	}
	if l.Removed {
		r.strike(s, m)
	}
}

func (r *Renderer) drawItem(s surface.Surface, m LessonMetrics, item lessonItem) {
	defer surface.Push(s, surface.Override{}.Style(item.style))()
	opt := surface.CellOptions{Align: surface.AlignCenter, Next: surface.NextBelow}
	if breaks := strings.Count(item.text, "\n"); breaks > 0 {
		s.MultiCell(m.Width, m.LineHeight/float64(breaks+1), item.text, opt)
		return
	}
	r.text.Cell(s, m.Width, m.LineHeight, item.text, opt, "")
}

func (r *Renderer) drawChip(s surface.Surface, m LessonMetrics, label string) {
	defer surface.SaveCursor(s)()
	defer surface.Push(s, surface.Override{}.Size(weekFontSize))()
	s.SetXY(m.ChipX, m.ChipY)
	r.text.Cell(s, m.Chip.W, m.Chip.H, label, surface.CellOptions{
		Border: surface.FullFrame,
		Align:  surface.AlignCenter,
		Next:   surface.NextRight,
	}, label)
}

func (r *Renderer) strike(s surface.Surface, m LessonMetrics) {
	defer surface.Push(s, surface.Override{}.Cap(surface.CapButt))()
	for _, seg := range Hatch(m.X, m.StartY, m.Width, m.Height()) {
		s.Line(seg[0], seg[1], seg[2], seg[3])
	}
}
