package surface

import "github.com/matzehuels/timetable/pkg/color"

// PageFormat is a page size in portrait orientation, in millimetres.
type PageFormat struct {
	W, H float64
}

// A4 is the default page format.
var A4 = PageFormat{W: 210, H: 297}

// Default geometry shared by all backends.
const (
	DefaultMargin     = 10.0
	DefaultCellMargin = 1.0
	DefaultFontSize   = 12.0
	DefaultLineWidth  = 0.2
	DefaultFontFamily = "Helvetica"
)

// DefaultState is the graphics state of a fresh surface.
func DefaultState() State {
	return State{
		FontFamily: DefaultFontFamily,
		FontStyle:  Regular,
		FontSize:   DefaultFontSize,
		FillColor:  color.White,
		LineWidth:  DefaultLineWidth,
		LineCap:    CapSquare,
	}
}

// Base implements the bookkeeping half of [Surface]: page geometry,
// margins, cursor and graphics state. Backends that draw into their own
// representation embed it and add the drawing primitives.
type Base struct {
	format  PageFormat
	w, h    float64
	l, t    float64
	r, b    float64
	cMargin float64
	x, y    float64
	st      State
	pages   int
}

// NewBase returns a Base for pages of the given format.
func NewBase(format PageFormat) Base {
	return Base{
		format:  format,
		w:       format.W,
		h:       format.H,
		l:       DefaultMargin,
		t:       DefaultMargin,
		r:       DefaultMargin,
		b:       DefaultMargin,
		cMargin: DefaultCellMargin,
		st:      DefaultState(),
	}
}

// StartPage sets the page size for o and moves the cursor to the top left
// margin corner.
func (s *Base) StartPage(o Orientation) {
	s.w, s.h = s.format.W, s.format.H
	if o == Landscape {
		s.w, s.h = s.h, s.w
	}
	s.x, s.y = s.l, s.t
	s.pages++
}

// PageCount returns the number of pages started so far.
func (s *Base) PageCount() int { return s.pages }

func (s *Base) PageSize() (w, h float64) { return s.w, s.h }

func (s *Base) Margins() (left, top, right, bottom float64) { return s.l, s.t, s.r, s.b }

func (s *Base) SetLeftMargin(m float64) {
	s.l = m
	if s.x < m {
		s.x = m
	}
}

func (s *Base) CellMargin() float64 { return s.cMargin }

func (s *Base) X() float64 { return s.x }

func (s *Base) Y() float64 { return s.y }

func (s *Base) SetXY(x, y float64) { s.x, s.y = x, y }

func (s *Base) State() State { return s.st }

func (s *Base) SetState(st State) { s.st = st }

// StringWidth estimates the width with [EstimateWidth].
func (s *Base) StringWidth(text string) float64 { return EstimateWidth(text, s.st) }

func (s *Base) Err() error { return nil }

// CellWidth resolves a zero width to the distance to the right margin.
func (s *Base) CellWidth(w float64) float64 {
	if w == 0 {
		return s.w - s.r - s.x
	}
	return w
}

// TextX returns where text of width tw starts inside a cell at x of
// width w.
func (s *Base) TextX(x, w, tw float64, a Align) float64 {
	switch a {
	case AlignCenter:
		return x + (w-tw)/2
	case AlignRight:
		return x + w - s.cMargin - tw
	default:
		return x + s.cMargin
	}
}

// Advance moves the cursor after a cell drawn at (x, y) with size w by h.
func (s *Base) Advance(x, y, w, h float64, next Next) {
	switch next {
	case NextRight:
		s.x, s.y = x+w, y
	case NextLine:
		s.x, s.y = s.l, y+h
	case NextBelow:
		s.x, s.y = x, y+h
	default:
		s.x, s.y = x, y
	}
}
