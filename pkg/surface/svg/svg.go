// Package svg is a [surface.Surface] writing one SVG document per page.
//
// Text metrics are estimated, so text widths only approximate what a PDF
// viewer would show. The output is meant for previews and for conversion
// with rsvg-convert.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/timetable/pkg/color"
	"github.com/matzehuels/timetable/pkg/surface"
)

// pageGap separates pages in the combined document.
const pageGap = 5.0

// Option configures a Canvas.
type Option func(*Canvas)

// WithFormat sets the page format. The default is A4.
func WithFormat(f surface.PageFormat) Option {
	return func(c *Canvas) { c.Base = surface.NewBase(f) }
}

// WithFontFamily sets the CSS font-family used for text.
func WithFontFamily(family string) Option {
	return func(c *Canvas) { c.family = family }
}

// Canvas draws into SVG buffers.
type Canvas struct {
	surface.Base
	family string
	pages  []*page
}

type page struct {
	w, h float64
	buf  bytes.Buffer
}

var _ surface.Surface = (*Canvas)(nil)

// New returns an empty Canvas.
func New(opts ...Option) *Canvas {
	c := &Canvas{Base: surface.NewBase(surface.A4), family: "Helvetica, Arial, sans-serif"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Canvas) cur() *bytes.Buffer {
	if len(c.pages) == 0 {
		c.AddPage(surface.Portrait)
	}
	return &c.pages[len(c.pages)-1].buf
}

func (c *Canvas) AddPage(o surface.Orientation) {
	c.StartPage(o)
	w, h := c.PageSize()
	c.pages = append(c.pages, &page{w: w, h: h})
}

func (c *Canvas) Rect(x, y, w, h float64, style surface.RectStyle) {
	st := c.State()
	fill, stroke := "none", "none"
	if style == surface.Fill || style == surface.DrawFill {
		fill = st.FillColor.Hex()
	}
	if style == surface.Draw || style == surface.DrawFill {
		stroke = st.DrawColor.Hex()
	}
	fmt.Fprintf(c.cur(), `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x, y, w, h, fill, stroke, st.LineWidth)
}

func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	st := c.State()
	fmt.Fprintf(c.cur(), `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-linecap="%s"/>`+"\n",
		x1, y1, x2, y2, st.DrawColor.Hex(), st.LineWidth, st.LineCap)
}

func (c *Canvas) Cell(w, h float64, text string, opt surface.CellOptions) {
	x, y := c.X(), c.Y()
	w = c.CellWidth(w)
	c.box(x, y, w, h, opt)
	c.text(x, y, w, h, text, opt.Align)
	c.Advance(x, y, w, h, opt.Next)
}

func (c *Canvas) MultiCell(w, h float64, text string, opt surface.CellOptions) {
	x, y := c.X(), c.Y()
	w = c.CellWidth(w)
	lines := strings.Split(text, "\n")
	total := h * float64(len(lines))
	c.box(x, y, w, total, opt)
	for i, line := range lines {
		c.text(x, y+float64(i)*h, w, h, line, opt.Align)
	}
	c.Advance(x, y, w, total, opt.Next)
}

func (c *Canvas) box(x, y, w, h float64, opt surface.CellOptions) {
	if opt.Fill {
		c.Rect(x, y, w, h, surface.Fill)
	}
	switch {
	case opt.Border == surface.FullFrame:
		c.Rect(x, y, w, h, surface.Draw)
	case opt.Border != surface.NoBorder:
		if opt.Border.Has('L') {
			c.Line(x, y, x, y+h)
		}
		if opt.Border.Has('T') {
			c.Line(x, y, x+w, y)
		}
		if opt.Border.Has('R') {
			c.Line(x+w, y, x+w, y+h)
		}
		if opt.Border.Has('B') {
			c.Line(x, y+h, x+w, y+h)
		}
	}
}

func (c *Canvas) text(x, y, w, h float64, text string, a surface.Align) {
	if text == "" {
		return
	}
	st := c.State()
	anchor, tx := "start", x+c.CellMargin()
	switch a {
	case surface.AlignCenter:
		anchor, tx = "middle", x+w/2
	case surface.AlignRight:
		anchor, tx = "end", x+w-c.CellMargin()
	}
	weight, style := "normal", "normal"
	if strings.Contains(string(st.FontStyle), "B") {
		weight = "bold"
	}
	if strings.Contains(string(st.FontStyle), "I") {
		style = "italic"
	}
	fmt.Fprintf(c.cur(), `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.2f" font-weight="%s" font-style="%s" fill="%s" text-anchor="%s" dominant-baseline="central">%s</text>`+"\n",
		tx, y+h/2, escapeXML(c.family), st.FontSize/surface.PointsPerMM, weight, style, st.TextColor.Hex(), anchor, escapeXML(text))
}

// Pages returns one standalone SVG document per page.
func (c *Canvas) Pages() [][]byte {
	out := make([][]byte, len(c.pages))
	for i, p := range c.pages {
		var buf bytes.Buffer
		writeHeader(&buf, p.w, p.h)
		buf.Write(p.buf.Bytes())
		buf.WriteString("</svg>\n")
		out[i] = buf.Bytes()
	}
	return out
}

// Document stacks every page vertically into a single SVG document.
func (c *Canvas) Document() []byte {
	var w, h float64
	for i, p := range c.pages {
		w = max(w, p.w)
		if i > 0 {
			h += pageGap
		}
		h += p.h
	}

	var buf bytes.Buffer
	writeHeader(&buf, w, h)
	var y float64
	for _, p := range c.pages {
		fmt.Fprintf(&buf, `<svg x="0" y="%.2f" width="%.2f" height="%.2f" viewBox="0 0 %.2f %.2f">`+"\n", y, p.w, p.h, p.w, p.h)
		fmt.Fprintf(&buf, `  <rect width="%.2f" height="%.2f" fill="%s"/>`+"\n", p.w, p.h, color.White.Hex())
		buf.Write(p.buf.Bytes())
		buf.WriteString("</svg>\n")
		y += p.h + pageGap
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeHeader(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.2fmm" height="%.2fmm">`+"\n",
		w, h, w, h)
	fmt.Fprintf(buf, `  <rect width="%.2f" height="%.2f" fill="%s"/>`+"\n", w, h, color.White.Hex())
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
