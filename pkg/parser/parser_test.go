package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/timetable/pkg/clock"
	"github.com/matzehuels/timetable/pkg/color"
	"github.com/matzehuels/timetable/pkg/timetable"
)

func doc(lines ...string) string { return strings.Join(lines, "\n") + "\n" }

func hm(s string) clock.Time { return clock.MustParse(s) }

func TestParseLesson(t *testing.T) {
	res, err := Parse(doc(
		"---",
		"left_week: A",
		"right_week: B",
		"---",
		"Monday",
		"------",
		"8:00 - 9:00 Math - Smith (101) (A) #ff0000",
	))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := timetable.Lesson{
		Start:   hm("8:00"),
		End:     hm("9:00"),
		Name:    "Math",
		Teacher: "Smith",
		Room:    "101",
		Week:    timetable.Left,
		Color:   &color.RGB{R: 255},
	}
	if len(res.Timetable.Days) != 1 || len(res.Timetable.Days[0].Lessons) != 1 {
		t.Fatalf("got days %+v", res.Timetable.Days)
	}
	if diff := cmp.Diff(want, res.Timetable.Days[0].Lessons[0]); diff != "" {
		t.Errorf("lesson mismatch (-want +got):\n%s", diff)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestLessonGrammar(t *testing.T) {
	header := []string{"---", "left_week: A", "right_week: B", "---", "Day", "---"}

	tests := []struct {
		line string
		want timetable.Lesson
	}{
		{"8:00 - 9:00", timetable.Lesson{Start: hm("8:00"), End: hm("9:00")}},
		{"8h00-9h30 Sport", timetable.Lesson{Start: hm("8:00"), End: hm("9:30"), Name: "Sport"}},
		{"10:00 - 11:00 Math (B12)", timetable.Lesson{Start: hm("10:00"), End: hm("11:00"), Name: "Math", Room: "B12"}},
		{"10:00 - 11:00 Histoire-Géo - Martin", timetable.Lesson{Start: hm("10:00"), End: hm("11:00"), Name: "Histoire-Géo", Teacher: "Martin"}},
		{"14:00 - 15:00 Physics (Lab) (B)", timetable.Lesson{Start: hm("14:00"), End: hm("15:00"), Name: "Physics", Room: "Lab", Week: timetable.Right}},
		{"14:00 - 15:00 Physics () (A)", timetable.Lesson{Start: hm("14:00"), End: hm("15:00"), Name: "Physics", Week: timetable.Left}},
		{"10:00 - 11:00 Math - Smith - Dispensé", timetable.Lesson{Start: hm("10:00"), End: hm("11:00"), Name: "Math", Teacher: "Smith", Removed: true}},
		{"10:00 - 11:00 Math #0f0", timetable.Lesson{Start: hm("10:00"), End: hm("11:00"), Name: "Math", Color: &color.RGB{G: 255}}},
		{"9:00 - 10:00 #123456", timetable.Lesson{Start: hm("9:00"), End: hm("10:00"), Color: &color.RGB{R: 0x12, G: 0x34, B: 0x56}}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			res, err := Parse(doc(append(header, tt.line)...))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			got := res.Timetable.Days[0].Lessons
			if diff := cmp.Diff([]timetable.Lesson{tt.want}, got); diff != "" {
				t.Errorf("lesson mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "invalid week",
			input:    doc("---", "left_week: A", "right_week: B", "---", "Monday", "------", "8:00 - 9:00 Math", "9:00 - 10:00 Math (101) (C)"),
			wantLine: 8,
			wantMsg:  `invalid week: "C"`,
		},
		{
			name:     "lesson before any day",
			input:    doc("8:00 - 9:00 Math"),
			wantLine: 1,
			wantMsg:  "no current day",
		},
		{
			name:     "lesson after day name without rule",
			input:    doc("Monday", "------", "8:00 - 9:00 Math", "Tuesday", "10:00 - 11:00 Math"),
			wantLine: 5,
			wantMsg:  "no current day",
		},
		{
			name:     "rule without day name",
			input:    doc("Monday", "------", "------"),
			wantLine: 3,
			wantMsg:  "unexpected horizontal line",
		},
		{
			name:     "config not on first line",
			input:    doc("", "---", "title: X", "---"),
			wantLine: 2,
			wantMsg:  "unexpected horizontal line",
		},
		{
			name:     "unterminated config",
			input:    doc("---", "title: X"),
			wantLine: 2,
			wantMsg:  "unexpected end of config",
		},
		{
			name:     "config option without value",
			input:    doc("---", "title", "---"),
			wantLine: 2,
			wantMsg:  "invalid config option",
		},
		{
			name:     "two day names",
			input:    doc("Monday", "Tuesday"),
			wantLine: 2,
			wantMsg:  "unexpected day name",
		},
		{
			name:     "malformed colour",
			input:    doc("Monday", "------", "8:00 - 9:00 Math #zz"),
			wantLine: 3,
			wantMsg:  "invalid colour",
		},
		{
			name:     "malformed config colour",
			input:    doc("---", "color.Math: red", "---", "Monday", "------", "8:00 - 9:00 Math"),
			wantLine: 6,
			wantMsg:  "invalid colour",
		},
		{
			name:     "bad setting value",
			input:    doc("---", "title: X", "hours_width: wide", "---"),
			wantLine: 3,
			wantMsg:  "invalid value for hours_width",
		},
		{
			name:     "zero hour interval",
			input:    doc("---", "hour_interval: 0:00", "---"),
			wantLine: 2,
			wantMsg:  "invalid value for hour_interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse() = %+v, want error", res)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not a *ParseError", err)
			}
			if perr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d (%v)", perr.Line, tt.wantLine, err)
			}
			if !strings.Contains(perr.Msg, tt.wantMsg) {
				t.Errorf("Msg = %q, want it to contain %q", perr.Msg, tt.wantMsg)
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"long config rules", doc("-----", "title: X", "----"), []int{1, 3}},
		{"empty config", doc("---", "---"), []int{2}},
		{"rule shorter than day", doc("Monday", "---"), []int{2}},
		{"short day name", doc("Lu", "---"), nil},
		{"empty day that looks like config", doc("title: X", "--------", "Monday", "------"), []int{3}},
		{"empty ordinary day", doc("Monday", "------", "Tuesday", "-------"), nil},
		{"dangling day name", doc("Monday", "------", "8:00 - 9:00 Math", "Tuesday"), []int{4}},
		{"clean", doc("---", "title: X", "---", "Monday", "------", "8:00 - 9:00 Math"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var handled []int
			res, err := Parse(tt.input, WithWarningHandler(func(w Warning) { handled = append(handled, w.Line) }))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			var got []int
			for _, w := range res.Warnings {
				got = append(got, w.Line)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("warning lines mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(got, handled); diff != "" {
				t.Errorf("handler saw different warnings (-collected +handled):\n%s", diff)
			}

			res, err = Parse(tt.input, WithLint(false))
			if err != nil {
				t.Fatalf("Parse(WithLint(false)) error = %v", err)
			}
			if len(res.Warnings) != 0 {
				t.Errorf("WithLint(false) still produced %v", res.Warnings)
			}
		})
	}
}

func TestConfig(t *testing.T) {
	res, err := Parse(doc(
		"---",
		"title: Terminale S",
		"hours_width: 12",
		"title_shadow: true",
		"wrap_hour: 12:00",
		"show_room: no",
		"hour_interval: 0h30",
		"color.Math: #0000ff",
		"title: Class 1ère S",
		"---",
		"Lundi",
		"-----",
		"8:00 - 9:00 Math",
		"9:00 - 10:00 Math #ff0000",
	))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tt := res.Timetable
	if tt.Title != "Class 1ère S" {
		t.Errorf("Title = %q, the last title wins", tt.Title)
	}
	s := res.Settings
	if s.HoursWidth == nil || *s.HoursWidth != 12 {
		t.Errorf("HoursWidth = %v", s.HoursWidth)
	}
	if s.TitleShadow == nil || !*s.TitleShadow {
		t.Errorf("TitleShadow = %v", s.TitleShadow)
	}
	if s.WrapHour == nil || *s.WrapHour != hm("12:00") {
		t.Errorf("WrapHour = %v", s.WrapHour)
	}
	if s.ShowRoom == nil || *s.ShowRoom {
		t.Errorf("ShowRoom = %v", s.ShowRoom)
	}
	if s.HourInterval == nil || *s.HourInterval != clock.HalfAnHour {
		t.Errorf("HourInterval = %v", s.HourInterval)
	}
	if s.ShowTeacher != nil || s.DayHeight != nil {
		t.Error("keys absent from the config must stay unset")
	}

	lessons := tt.Days[0].Lessons
	if c := lessons[0].Color; c == nil || *c != (color.RGB{B: 255}) {
		t.Errorf("config colour fallback = %v", c)
	}
	if c := lessons[1].Color; c == nil || *c != (color.RGB{R: 255}) {
		t.Errorf("inline colour must win over config, got %v", c)
	}
	if res.Config["color.Math"] != "#0000ff" {
		t.Errorf("Config = %v", res.Config)
	}
}

func TestDefaultTitle(t *testing.T) {
	res, err := Parse(doc("Monday", "------"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Timetable.Title != timetable.DefaultTitle {
		t.Errorf("Title = %q", res.Timetable.Title)
	}
	if !res.Settings.IsZero() {
		t.Errorf("Settings = %+v, want nothing set", res.Settings)
	}
}

func TestBooleanSettings(t *testing.T) {
	tests := []struct {
		value   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"Yes", true, false},
		{"on", true, false},
		{"1", true, false},
		{"false", false, false},
		{"NO", false, false},
		{"off", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
		{"2", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			res, err := Parse(doc("---", "title_shadow: "+tt.value, "---"))
			if tt.wantErr {
				var pe *ParseError
				if !errors.As(err, &pe) || pe.Line != 2 {
					t.Fatalf("err = %v, want a parse error at line 2", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := res.Settings.TitleShadow; got == nil || *got != tt.want {
				t.Errorf("TitleShadow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemovedMarker(t *testing.T) {
	res, err := Parse(doc("Monday", "------", "8:00 - 9:00 Math - Smith - Cancelled"), WithRemovedMarker("Cancelled"))
	if err != nil {
		t.Fatal(err)
	}
	if l := res.Timetable.Days[0].Lessons[0]; !l.Removed || l.Teacher != "Smith" {
		t.Errorf("WithRemovedMarker: got %+v", l)
	}
	if res.Timetable.RemovedMarker != "Cancelled" {
		t.Errorf("RemovedMarker = %q, want the option", res.Timetable.RemovedMarker)
	}

	res, err = Parse(doc("---", "removed_marker: Annulé (grève)", "---", "Monday", "------", "8:00 - 9:00 Math - Smith - Annulé (grève)"),
		WithRemovedMarker("Cancelled"))
	if err != nil {
		t.Fatal(err)
	}
	if l := res.Timetable.Days[0].Lessons[0]; !l.Removed || l.Teacher != "Smith" {
		t.Errorf("config removed_marker: got %+v", l)
	}
	if res.Timetable.RemovedMarker != "Annulé (grève)" {
		t.Errorf("RemovedMarker = %q, want the config value", res.Timetable.RemovedMarker)
	}

	// Spelling out the default in the config overrides a custom option.
	res, err = Parse(doc("---", "removed_marker: Dispensé", "---", "Monday", "------", "8:00 - 9:00 Math - Smith - Dispensé"),
		WithRemovedMarker("Cancelled"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Timetable.RemovedMarker != "" || !res.Timetable.Days[0].Lessons[0].Removed {
		t.Errorf("default marker in config: marker %q, lesson %+v", res.Timetable.RemovedMarker, res.Timetable.Days[0].Lessons[0])
	}
}

func TestNormalisation(t *testing.T) {
	// "Été" written with combining accents is five code points before NFC.
	res, err := Parse("E\u0301te\u0301\r\n---\r\n8:00 - 9:00 Mathe\u0301matiques\r\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("rule length should be compared after normalisation: %v", res.Warnings)
	}
	d := res.Timetable.Days[0]
	if d.Name != "\u00c9t\u00e9" || d.Lessons[0].Name != "Math\u00e9matiques" {
		t.Errorf("got day %q lesson %q", d.Name, d.Lessons[0].Name)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\r\nb\rc\n\nd", []string{"a", "b", "c", "", "d"}},
		{"a\u2028b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitLines(tt.in)); diff != "" {
			t.Errorf("splitLines(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestParseReader(t *testing.T) {
	res, err := ParseReader(strings.NewReader(doc("Monday", "------", "8:00 - 9:00 Math")))
	if err != nil {
		t.Fatal(err)
	}
	if res.Timetable.LessonCount() != 1 {
		t.Errorf("LessonCount() = %d", res.Timetable.LessonCount())
	}
}

func TestApplySetting(t *testing.T) {
	var s timetable.Settings
	for key, value := range map[string]string{"wrap_hour": "12:00", "show_room": "no", "hours_width": "15.5"} {
		if err := ApplySetting(&s, key, value); err != nil {
			t.Fatalf("ApplySetting(%s): %v", key, err)
		}
	}
	got := s.Resolve()
	if got.WrapHour == nil || *got.WrapHour != clock.New(12, 0) || got.ShowRoom || got.HoursWidth != 15.5 {
		t.Errorf("resolved = %+v", got)
	}

	for _, bad := range [][2]string{{"title", "X"}, {"show_room", "maybe"}, {"hour_interval", "0:00"}} {
		if err := ApplySetting(&s, bad[0], bad[1]); err == nil {
			t.Errorf("ApplySetting(%s, %s) should fail", bad[0], bad[1])
		}
	}
}
