package timetable

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/timetable/pkg/clock"
)

// Format writes t back in the timetable text format. The output is
// canonical: a config block holding the title, the week labels and a
// non-default removed marker, then each day name underlined with a rule of
// the same length, then one lesson per line with single spaces between
// fields.
//
// Parsing the output yields a timetable equal to t as long as names,
// teachers and rooms do not themselves contain the field separators
// (" - ", parentheses, a leading '#'), every lesson has a name and every
// removed lesson has a teacher. Without a teacher the removed marker reads
// back as the teacher name.
func (t *Timetable) Format(w io.Writer) error {
	return t.FormatWith(w, Settings{})
}

// FormatWith is Format with the display settings s written into the config
// block, so that parsing the output also gives back s. Ordinals have no
// config block spelling and are left out.
func (t *Timetable) FormatWith(w io.Writer, s Settings) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("---\n")
	title := t.Title
	if title == "" {
		title = DefaultTitle
	}
	writeOption(bw, "title", title)
	writeOption(bw, "left_week", t.LeftWeek)
	writeOption(bw, "right_week", t.RightWeek)
	if m := t.Marker(); m != DefaultRemovedMarker {
		writeOption(bw, "removed_marker", m)
	}
	writeSettings(bw, s)
	bw.WriteString("---\n")

	for _, d := range t.Days {
		bw.WriteString("\n")
		bw.WriteString(d.Name)
		bw.WriteString("\n")
		bw.WriteString(strings.Repeat("-", max(3, utf8.RuneCountInString(d.Name))))
		bw.WriteString("\n")
		for _, l := range d.Lessons {
			bw.WriteString(t.FormatLesson(l))
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}

// String returns the canonical text form of t.
func (t *Timetable) String() string {
	var sb strings.Builder
	_ = t.Format(&sb)
	return sb.String()
}

// FormatLesson renders one lesson line.
func (t *Timetable) FormatLesson(l Lesson) string {
	var sb strings.Builder
	sb.WriteString(l.Start.String())
	sb.WriteString(" - ")
	sb.WriteString(l.End.String())
	if l.Name != "" {
		sb.WriteString(" ")
		sb.WriteString(l.Name)
	}
	if l.Teacher != "" {
		sb.WriteString(" - ")
		sb.WriteString(l.Teacher)
	}
	label := t.WeekLabel(l.Week)
	// The first parenthesised group is always the room, so an alternating
	// lesson without a room needs an empty one.
	if l.Room != "" || label != "" {
		sb.WriteString(" (")
		sb.WriteString(l.Room)
		sb.WriteString(")")
	}
	if label != "" {
		sb.WriteString(" (")
		sb.WriteString(label)
		sb.WriteString(")")
	}
	if l.Color != nil {
		sb.WriteString(" ")
		sb.WriteString(l.Color.Hex())
	}
	if l.Removed {
		sb.WriteString(" - ")
		sb.WriteString(t.Marker())
	}
	return sb.String()
}

// writeSettings writes the set fields of s in config block spelling.
func writeSettings(w *bufio.Writer, s Settings) {
	length := func(key string, v *float64) {
		if v != nil {
			writeOption(w, key, strconv.FormatFloat(*v, 'f', -1, 64))
		}
	}
	flag := func(key string, v *bool) {
		if v != nil {
			writeOption(w, key, strconv.FormatBool(*v))
		}
	}
	hour := func(key string, v *clock.Time) {
		if v != nil {
			writeOption(w, key, v.String())
		}
	}

	length("title_height", s.TitleHeight)
	flag("title_shadow", s.TitleShadow)
	length("hours_width", s.HoursWidth)
	hour("wrap_hour", s.WrapHour)
	length("day_height", s.DayHeight)
	hour("hour_interval", s.HourInterval)
	flag("show_weeks", s.ShowWeeks)
	flag("show_teacher", s.ShowTeacher)
	flag("show_room", s.ShowRoom)
	flag("show_first_last", s.ShowFirstLast)
	flag("show_pauses", s.ShowPauses)
	flag("black_white", s.BlackWhite)
}

func writeOption(w *bufio.Writer, key, value string) {
	if value == "" {
		return
	}
	w.WriteString(key)
	w.WriteString(": ")
	w.WriteString(value)
	w.WriteString("\n")
}
