package pdf

import (
	"bytes"
	"math"
	"testing"

	"github.com/matzehuels/timetable/pkg/surface"
)

func newDoc(t *testing.T) *Document {
	t.Helper()
	d, err := New(WithCreator("test"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestLandscapePage(t *testing.T) {
	d := newDoc(t)
	d.AddPage(surface.Landscape)

	w, h := d.PageSize()
	if w != 297 || h != 210 {
		t.Errorf("PageSize() = %v x %v, want 297 x 210", w, h)
	}
	l, top, r, _ := d.Margins()
	if l != surface.DefaultMargin || top != surface.DefaultMargin || r != surface.DefaultMargin {
		t.Errorf("Margins() = %v %v %v", l, top, r)
	}
}

func TestCellCursor(t *testing.T) {
	tests := []struct {
		name         string
		next         surface.Next
		wantX, wantY float64
	}{
		{"right", surface.NextRight, 70, 30},
		{"below", surface.NextBelow, 20, 38},
		{"line", surface.NextLine, surface.DefaultMargin, 38},
		{"stay", surface.NextStay, 20, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDoc(t)
			d.AddPage(surface.Landscape)
			d.SetXY(20, 30)
			d.Cell(50, 8, "Math", surface.CellOptions{Border: surface.FullFrame, Next: tt.next})
			if math.Abs(d.X()-tt.wantX) > 1e-9 || math.Abs(d.Y()-tt.wantY) > 1e-9 {
				t.Errorf("cursor = (%v, %v), want (%v, %v)", d.X(), d.Y(), tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPushChangesWidth(t *testing.T) {
	d := newDoc(t)
	d.AddPage(surface.Landscape)

	regular := d.StringWidth("Mathematics")
	pop := surface.Push(d, surface.Override{}.Size(24))
	big := d.StringWidth("Mathematics")
	pop()

	if math.Abs(big-2*regular) > 1e-6 {
		t.Errorf("24pt width = %v, want twice %v", big, regular)
	}
	if got := d.StringWidth("Mathematics"); got != regular {
		t.Errorf("width after pop = %v, want %v", got, regular)
	}
	if d.State().FontSize != surface.DefaultFontSize {
		t.Errorf("font size after pop = %v", d.State().FontSize)
	}
}

func TestOutput(t *testing.T) {
	d := newDoc(t)
	d.SetTitle("Class 1A")
	d.AddPage(surface.Landscape)
	d.Rect(10, 10, 50, 20, surface.DrawFill)
	d.Line(10, 10, 60, 30)
	d.MultiCell(40, 6, "Physique\nLabo", surface.CellOptions{Align: surface.AlignCenter})

	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(buf.Len(), 16)])
	}
	if d.Err() != nil {
		t.Errorf("Err() = %v", d.Err())
	}
}

func TestMissingFontDir(t *testing.T) {
	if _, err := New(WithFontDir(t.TempDir(), "Roboto")); err == nil {
		t.Error("expected error for a directory without font files")
	}
}
