// Package surface defines the drawing primitives the layout engine needs
// from an output backend.
//
// A [Surface] behaves like a classic PDF writer: it has pages, a movable
// cursor, margins, a current graphics [State], and primitives for
// rectangles, lines and text cells. Lengths are millimetres, font sizes are
// points.
//
// Backends live in sub-packages: pdf (gofpdf), svg (one SVG document per
// page) and record (an operation log used by tests and the JSON output).
package surface

import (
	"strings"

	"github.com/matzehuels/timetable/pkg/color"
)

// PointsPerMM converts millimetres to PostScript points.
const PointsPerMM = 72 / 25.4

// Orientation of a new page.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

// Style is a font style: "", "B", "I" or "BI".
type Style string

const (
	Regular    Style = ""
	Bold       Style = "B"
	Italic     Style = "I"
	BoldItalic Style = "BI"
)

// LineCap is the stroke cap style.
type LineCap string

const (
	CapButt   LineCap = "butt"
	CapRound  LineCap = "round"
	CapSquare LineCap = "square"
)

// Align is the horizontal text alignment inside a cell. Text is always
// centred vertically.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Border selects which cell edges are stroked: "" for none, "1" for all,
// or any combination of "L", "T", "R" and "B".
type Border string

const (
	NoBorder  Border = ""
	FullFrame Border = "1"
	TopEdge   Border = "T"
)

// Has reports whether the edge e ("L", "T", "R" or "B") is stroked.
func (b Border) Has(e byte) bool {
	return b == FullFrame || strings.IndexByte(string(b), e) >= 0
}

// Next says where the cursor goes after a cell is drawn.
type Next int

const (
	// NextRight moves to the right edge of the cell, same line.
	NextRight Next = iota
	// NextLine moves to the left margin below the cell.
	NextLine
	// NextBelow moves below the cell, keeping x.
	NextBelow
	// NextStay leaves the cursor where it was.
	NextStay
)

// RectStyle says whether a rectangle is stroked, filled or both.
type RectStyle string

const (
	Draw     RectStyle = "D"
	Fill     RectStyle = "F"
	DrawFill RectStyle = "DF"
)

// CellOptions control a text cell.
type CellOptions struct {
	Border Border
	Align  Align
	Fill   bool
	Next   Next
}

// State is the graphics state that scoped overrides save and restore.
type State struct {
	FontFamily string    `json:"font_family"`
	FontStyle  Style     `json:"font_style,omitempty"`
	FontSize   float64   `json:"font_size"` // points
	TextColor  color.RGB `json:"text_color"`
	FillColor  color.RGB `json:"fill_color"`
	DrawColor  color.RGB `json:"draw_color"`
	LineWidth  float64   `json:"line_width"`
	LineCap    LineCap   `json:"line_cap"`
}

// Surface is a page-oriented drawing target.
type Surface interface {
	AddPage(o Orientation)
	// PageSize returns the current page width and height.
	PageSize() (w, h float64)
	Margins() (left, top, right, bottom float64)
	SetLeftMargin(m float64)
	// CellMargin is the horizontal padding applied inside text cells.
	CellMargin() float64

	X() float64
	Y() float64
	SetXY(x, y float64)

	Rect(x, y, w, h float64, style RectStyle)
	Line(x1, y1, x2, y2 float64)
	// Cell draws one line of text in a w by h box at the cursor. A zero w
	// extends the cell to the right margin.
	Cell(w, h float64, text string, opt CellOptions)
	// MultiCell draws text split at hard line breaks, each line h high,
	// and leaves the cursor as opt.Next says relative to the whole block.
	MultiCell(w, h float64, text string, opt CellOptions)
	// StringWidth measures text in the current font.
	StringWidth(text string) float64

	State() State
	SetState(st State)

	// Err returns the first error the backend ran into, if any.
	Err() error
}

// PrintableSize returns the page size minus the margins.
func PrintableSize(s Surface) (w, h float64) {
	pw, ph := s.PageSize()
	l, t, r, b := s.Margins()
	return pw - l - r, ph - t - b
}

// FontHeight returns the current font size in millimetres.
func FontHeight(s Surface) float64 {
	return s.State().FontSize / PointsPerMM
}
