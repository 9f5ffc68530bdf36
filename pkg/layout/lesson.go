package layout

import (
	"strings"

	"github.com/matzehuels/timetable/pkg/surface"
	"github.com/matzehuels/timetable/pkg/timetable"
)

const (
	// maxLineHeight caps the height of one text line in a lesson.
	maxLineHeight = 7.0
	// weekFontSize is the size of week chip labels, in points.
	weekFontSize = 10.0
	// chipPadShare is the share of the chip height added to the padding
	// on the side hosting the chip.
	chipPadShare = 2.5
	// hatchStep is the distance between hatch lines of removed lessons.
	hatchStep = 5.0
)

// Chip is the size of the week label box.
type Chip struct {
	W, H float64
}

// LessonMetrics is the geometry of one lesson rectangle.
type LessonMetrics struct {
	X, Width     float64
	StartY, EndY float64

	// LineHeight is the height of each text line after paddings.
	LineHeight float64
	// Padding is added both above and below the text block.
	Padding float64
	// Top and Bottom are extra paddings reserved for the week chip.
	Top, Bottom float64

	ChipShown bool
	ChipX     float64
	ChipY     float64
	Chip      Chip
}

// Height returns the height of the lesson rectangle.
func (m LessonMetrics) Height() float64 { return m.EndY - m.StartY }

// TextTop returns where the first text line starts.
func (m LessonMetrics) TextTop() float64 { return m.StartY + m.Padding + m.Top }

// NewLessonMetrics lays out items text lines in the band [x, x+width] by
// [startY, endY]. chip is nil when no week label is shown.
//
// Lines are min(7mm, height/items) high and the leftover space is split
// evenly above and below. The chip goes to the bottom when the bottom
// padding can hold half of it, otherwise to the top; the hosting side
// grows by chip height / 2.5 and the text lines shrink to make room.
func NewLessonMetrics(x, width, startY, endY float64, items int, chip *Chip) LessonMetrics {
	m := LessonMetrics{X: x, Width: width, StartY: startY, EndY: endY}
	h := m.Height()
	if items <= 0 {
		m.Padding = max(h/2, 0)
		items = 1
	} else {
		cell := min(maxLineHeight, h/float64(items))
		m.Padding = max((h-float64(items)*cell)/2, 0)
	}

	if chip != nil {
		m.ChipShown = true
		m.Chip = *chip
		m.ChipX = x + width - chip.W
		if m.Padding+m.Bottom >= chip.H/2 {
			m.ChipY = endY - chip.H
			m.Bottom += chip.H / chipPadShare
		} else {
			m.ChipY = startY
			m.Top += chip.H / chipPadShare
		}
	}

	m.LineHeight = (h - m.Top - 2*m.Padding - m.Bottom) / float64(items)
	return m
}

// chipSize measures the week chip so that both labels fit.
func chipSize(s surface.Surface, tt *timetable.Timetable) Chip {
	defer surface.Push(s, surface.Override{}.Size(weekFontSize))()
	margin := s.CellMargin() / 2
	w := max(s.StringWidth(tt.LeftWeek), s.StringWidth(tt.RightWeek)) + 2*margin
	h := weekFontSize/surface.PointsPerMM + 2*margin
	return Chip{W: w, H: h}
}

type lessonItem struct {
	text  string
	style surface.Style
}

// lessonItems returns the non-empty text lines of l in drawing order.
func lessonItems(l timetable.Lesson, set timetable.Resolved) []lessonItem {
	var items []lessonItem
	add := func(text string, style surface.Style) {
		if text = strings.TrimSpace(text); text != "" {
			items = append(items, lessonItem{text, style})
		}
	}
	add(l.Name, surface.Bold)
	if set.ShowTeacher {
		add(l.Teacher, surface.Regular)
	}
	if set.ShowRoom {
		add(l.Room, surface.Italic)
	}
	return items
}

// Hatch returns the 45° segments striking through the rectangle at
// (x, y) of size w by h. Segments start every hatchStep along the left
// and bottom edges and are shortened where they would leave the
// rectangle at the bottom or on the right.
func Hatch(x, y, w, h float64) [][4]float64 {
	var segs [][4]float64
	for pos := hatchStep; pos < h+w; pos += hatchStep {
		x1, y1 := x, y
		if pos >= h {
			x1 = x + pos - h
		}
		if pos <= h {
			y1 = y + h - pos
		}
		x2, y2 := x1+h, y1+h
		if over := y2 - (y + h); over > 0 {
			x2 -= over
			y2 -= over
		}
		if over := x2 - (x + w); over > 0 {
			x2 -= over
			y2 -= over
		}
		segs = append(segs, [4]float64{x1, y1, x2, y2})
	}
	return segs
}
