// Package pdf is a [surface.Surface] backed by gofpdf.
//
// By default text is set in the core Helvetica font, which only covers
// the cp1252 character set; other characters are replaced. WithFontDir
// registers a TrueType family with full UTF-8 support instead.
package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/timetable/pkg/surface"
)

// Option configures a Document.
type Option func(*config)

type config struct {
	format  surface.PageFormat
	fontDir string
	family  string
	creator string
}

// WithFormat sets the page format. The default is A4.
func WithFormat(f surface.PageFormat) Option {
	return func(c *config) { c.format = f }
}

// WithFontDir loads family from dir. The directory must hold
// <family>-Regular.ttf, <family>-Bold.ttf, <family>-Italic.ttf and
// <family>-BoldItalic.ttf.
func WithFontDir(dir, family string) Option {
	return func(c *config) { c.fontDir, c.family = dir, family }
}

// WithCreator sets the PDF creator metadata.
func WithCreator(creator string) Option {
	return func(c *config) { c.creator = creator }
}

var fontFiles = map[surface.Style]string{
	surface.Regular:    "Regular",
	surface.Bold:       "Bold",
	surface.Italic:     "Italic",
	surface.BoldItalic: "BoldItalic",
}

// Document is a PDF under construction.
type Document struct {
	f       *gofpdf.Fpdf
	size    gofpdf.SizeType
	st      surface.State
	cMargin float64
	tr      func(string) string
}

var _ surface.Surface = (*Document)(nil)

// New creates an empty document.
func New(opts ...Option) (*Document, error) {
	cfg := config{format: surface.A4}
	for _, opt := range opts {
		opt(&cfg)
	}

	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: cfg.format.W, Ht: cfg.format.H},
	})
	f.SetMargins(surface.DefaultMargin, surface.DefaultMargin, surface.DefaultMargin)
	f.SetAutoPageBreak(false, surface.DefaultMargin)
	f.SetCellMargin(surface.DefaultCellMargin)
	if cfg.creator != "" {
		f.SetCreator(cfg.creator, true)
	}

	d := &Document{f: f, size: gofpdf.SizeType{Wd: cfg.format.W, Ht: cfg.format.H}, cMargin: surface.DefaultCellMargin, st: surface.DefaultState()}

	if cfg.fontDir != "" {
		for style, suffix := range fontFiles {
			path := filepath.Join(cfg.fontDir, fmt.Sprintf("%s-%s.ttf", cfg.family, suffix))
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("font %s: %w", path, err)
			}
			f.AddUTF8Font(cfg.family, string(style), path)
		}
		d.st.FontFamily = cfg.family
		d.tr = func(s string) string { return s }
	} else {
		d.tr = f.UnicodeTranslatorFromDescriptor("")
	}

	d.apply(d.st, true)
	if err := f.Error(); err != nil {
		return nil, fmt.Errorf("init pdf: %w", err)
	}
	return d, nil
}

// SetTitle sets the document title metadata.
func (d *Document) SetTitle(title string) { d.f.SetTitle(title, true) }

// Output writes the finished PDF to w.
func (d *Document) Output(w io.Writer) error { return d.f.Output(w) }

func (d *Document) AddPage(o surface.Orientation) {
	orient := "P"
	if o == surface.Landscape {
		orient = "L"
	}
	d.f.AddPageFormat(orient, d.size)
	// gofpdf resets fonts and colours per page; re-apply ours.
	d.apply(d.st, true)
}

func (d *Document) PageSize() (w, h float64) { return d.f.GetPageSize() }

func (d *Document) Margins() (left, top, right, bottom float64) { return d.f.GetMargins() }

func (d *Document) SetLeftMargin(m float64) { d.f.SetLeftMargin(m) }

func (d *Document) CellMargin() float64 { return d.cMargin }

func (d *Document) X() float64 { return d.f.GetX() }

func (d *Document) Y() float64 { return d.f.GetY() }

func (d *Document) SetXY(x, y float64) { d.f.SetXY(x, y) }

func (d *Document) Rect(x, y, w, h float64, style surface.RectStyle) {
	d.f.Rect(x, y, w, h, string(style))
}

func (d *Document) Line(x1, y1, x2, y2 float64) { d.f.Line(x1, y1, x2, y2) }

func (d *Document) Cell(w, h float64, text string, opt surface.CellOptions) {
	x, y := d.f.GetXY()
	ln := 0
	switch opt.Next {
	case surface.NextLine:
		ln = 1
	case surface.NextBelow:
		ln = 2
	}
	d.f.CellFormat(w, h, d.tr(text), string(opt.Border), ln, alignStr(opt.Align), opt.Fill, 0, "")
	if opt.Next == surface.NextStay {
		d.f.SetXY(x, y)
	}
}

func (d *Document) MultiCell(w, h float64, text string, opt surface.CellOptions) {
	x, y := d.f.GetXY()
	if w == 0 {
		pw, _ := d.f.GetPageSize()
		_, _, r, _ := d.f.GetMargins()
		w = pw - r - x
	}
	d.f.MultiCell(w, h, d.tr(text), string(opt.Border), alignStr(opt.Align), opt.Fill)
	end := d.f.GetY()
	switch opt.Next {
	case surface.NextRight:
		d.f.SetXY(x+w, y)
	case surface.NextLine:
		l, _, _, _ := d.f.GetMargins()
		d.f.SetXY(l, end)
	case surface.NextBelow:
		d.f.SetXY(x, end)
	default:
		d.f.SetXY(x, y)
	}
}

func (d *Document) StringWidth(text string) float64 { return d.f.GetStringWidth(d.tr(text)) }

func (d *Document) State() surface.State { return d.st }

func (d *Document) SetState(st surface.State) {
	d.apply(st, false)
	d.st = st
}

func (d *Document) Err() error { return d.f.Error() }

// apply pushes the differences between the current state and st to
// gofpdf. force re-applies everything.
func (d *Document) apply(st surface.State, force bool) {
	cur := d.st
	if force || st.FontFamily != cur.FontFamily || st.FontStyle != cur.FontStyle || st.FontSize != cur.FontSize {
		d.f.SetFont(st.FontFamily, string(st.FontStyle), st.FontSize)
	}
	if force || st.TextColor != cur.TextColor {
		d.f.SetTextColor(int(st.TextColor.R), int(st.TextColor.G), int(st.TextColor.B))
	}
	if force || st.FillColor != cur.FillColor {
		d.f.SetFillColor(int(st.FillColor.R), int(st.FillColor.G), int(st.FillColor.B))
	}
	if force || st.DrawColor != cur.DrawColor {
		d.f.SetDrawColor(int(st.DrawColor.R), int(st.DrawColor.G), int(st.DrawColor.B))
	}
	if force || st.LineWidth != cur.LineWidth {
		d.f.SetLineWidth(st.LineWidth)
	}
	if force || st.LineCap != cur.LineCap {
		d.f.SetLineCapStyle(string(st.LineCap))
	}
}

func alignStr(a surface.Align) string {
	var sb strings.Builder
	switch a {
	case surface.AlignCenter:
		sb.WriteString("C")
	case surface.AlignRight:
		sb.WriteString("R")
	default:
		sb.WriteString("L")
	}
	sb.WriteString("M")
	return sb.String()
}
