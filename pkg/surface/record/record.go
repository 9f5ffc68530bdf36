// Package record is a [surface.Surface] that keeps a log of every drawing
// operation instead of producing graphics.
//
// Tests use it to check layout geometry, and the pipeline serialises the
// log as the "json" output format.
package record

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/matzehuels/timetable/pkg/surface"
)

// Kind names a recorded operation.
type Kind string

const (
	KindPage      Kind = "page"
	KindRect      Kind = "rect"
	KindLine      Kind = "line"
	KindCell      Kind = "cell"
	KindMultiCell Kind = "multicell"
)

// Op is one recorded drawing call. X and Y are where the call happened;
// for lines they are the first endpoint and X2, Y2 the second.
type Op struct {
	Kind   Kind              `json:"kind"`
	Page   int               `json:"page"`
	X      float64           `json:"x"`
	Y      float64           `json:"y"`
	W      float64           `json:"w,omitempty"`
	H      float64           `json:"h,omitempty"`
	X2     float64           `json:"x2,omitempty"`
	Y2     float64           `json:"y2,omitempty"`
	Text   string            `json:"text,omitempty"`
	Border surface.Border    `json:"border,omitempty"`
	Align  surface.Align     `json:"align,omitempty"`
	Fill   bool              `json:"fill,omitempty"`
	Style  surface.RectStyle `json:"style,omitempty"`
	State  surface.State     `json:"state"`
}

// WidthFunc measures text for a given state.
type WidthFunc func(text string, st surface.State) float64

// Option configures a Recorder.
type Option func(*Recorder)

// WithFormat sets the page format. The default is A4.
func WithFormat(f surface.PageFormat) Option {
	return func(r *Recorder) { r.Base = surface.NewBase(f) }
}

// WithWidthFunc replaces the default width estimate.
func WithWidthFunc(fn WidthFunc) Option {
	return func(r *Recorder) { r.width = fn }
}

// Recorder logs drawing calls.
type Recorder struct {
	surface.Base
	width WidthFunc
	ops   []Op
}

var _ surface.Surface = (*Recorder)(nil)

// New returns an empty Recorder.
func New(opts ...Option) *Recorder {
	r := &Recorder{Base: surface.NewBase(surface.A4), width: surface.EstimateWidth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ops returns every recorded operation in call order.
func (r *Recorder) Ops() []Op { return r.ops }

// Filter returns the operations of the given kinds.
func (r *Recorder) Filter(kinds ...Kind) []Op {
	var out []Op
	for _, op := range r.ops {
		for _, k := range kinds {
			if op.Kind == k {
				out = append(out, op)
				break
			}
		}
	}
	return out
}

// Texts returns the recorded cells whose text equals s.
func (r *Recorder) Texts(s string) []Op {
	var out []Op
	for _, op := range r.Filter(KindCell, KindMultiCell) {
		if op.Text == s {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) record(op Op) {
	op.Page = r.PageCount()
	op.State = r.State()
	r.ops = append(r.ops, op)
}

func (r *Recorder) AddPage(o surface.Orientation) {
	r.StartPage(o)
	w, h := r.PageSize()
	r.record(Op{Kind: KindPage, W: w, H: h})
}

func (r *Recorder) Rect(x, y, w, h float64, style surface.RectStyle) {
	r.record(Op{Kind: KindRect, X: x, Y: y, W: w, H: h, Style: style})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.record(Op{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2})
}

func (r *Recorder) Cell(w, h float64, text string, opt surface.CellOptions) {
	x, y := r.X(), r.Y()
	w = r.CellWidth(w)
	r.record(Op{Kind: KindCell, X: x, Y: y, W: w, H: h, Text: text, Border: opt.Border, Align: opt.Align, Fill: opt.Fill})
	r.Advance(x, y, w, h, opt.Next)
}

func (r *Recorder) MultiCell(w, h float64, text string, opt surface.CellOptions) {
	x, y := r.X(), r.Y()
	w = r.CellWidth(w)
	total := h * float64(strings.Count(text, "\n")+1)
	r.record(Op{Kind: KindMultiCell, X: x, Y: y, W: w, H: total, Text: text, Border: opt.Border, Align: opt.Align, Fill: opt.Fill})
	r.Advance(x, y, w, total, opt.Next)
}

func (r *Recorder) StringWidth(text string) float64 { return r.width(text, r.State()) }

// Page is one page of the JSON document.
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ops    []Op    `json:"ops"`
}

// Pages groups the log by page.
func (r *Recorder) Pages() []Page {
	var pages []Page
	for _, op := range r.ops {
		if op.Kind == KindPage {
			pages = append(pages, Page{Width: op.W, Height: op.H})
			continue
		}
		if len(pages) == 0 {
			continue
		}
		p := &pages[len(pages)-1]
		p.Ops = append(p.Ops, op)
	}
	return pages
}

// WriteJSON writes the log grouped by page.
func (r *Recorder) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Pages []Page `json:"pages"`
	}{r.Pages()})
}
