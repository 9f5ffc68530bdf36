package timetable

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/timetable/pkg/clock"
	"github.com/matzehuels/timetable/pkg/color"
	"github.com/matzehuels/timetable/pkg/pause"
)

func hm(s string) clock.Time { return clock.MustParse(s) }

func lesson(start, end, name string) Lesson {
	return Lesson{Start: hm(start), End: hm(end), Name: name}
}

func TestDayBounds(t *testing.T) {
	d := Day{Name: "Monday", Lessons: []Lesson{
		lesson("10:00", "11:00", "B"),
		lesson("8:00", "9:00", "A"),
		lesson("14:00", "16:30", "C"),
	}}
	start, end, ok := d.Bounds()
	if !ok || start != hm("8:00") || end != hm("16:30") {
		t.Errorf("Bounds() = %s, %s, %v; want 8:00, 16:30, true", start, end, ok)
	}

	if _, _, ok := (Day{Name: "Empty"}).Bounds(); ok {
		t.Error("a day without lessons has no bounds")
	}
}

func TestDayPauses(t *testing.T) {
	tests := []struct {
		name    string
		lessons []Lesson
		want    []pause.Pause
	}{
		{
			name: "gaps in written order",
			lessons: []Lesson{
				lesson("13:00", "14:00", "C"),
				lesson("8:00", "10:00", "A"),
				lesson("10:15", "12:00", "B"),
			},
			want: []pause.Pause{
				pause.New(hm("10:00"), hm("10:15")),
				pause.New(hm("12:00"), hm("13:00")),
			},
		},
		{
			name: "back to back",
			lessons: []Lesson{
				lesson("8:00", "9:00", "A"),
				lesson("9:00", "10:00", "B"),
			},
		},
		{
			name: "overlapping halves",
			lessons: []Lesson{
				lesson("8:00", "10:00", "A"),
				lesson("8:00", "9:00", "B"),
				lesson("9:30", "11:00", "C"),
				lesson("11:30", "12:00", "D"),
			},
			want: []pause.Pause{pause.New(hm("11:00"), hm("11:30"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Day{Lessons: tt.lessons}.Pauses().Explicit()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Pauses() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTimetableBoundsAndCommonPause(t *testing.T) {
	tt := &Timetable{Title: DefaultTitle, Days: []Day{
		{Name: "Monday", Lessons: []Lesson{
			lesson("8:00", "10:00", "A"),
			lesson("10:15", "12:00", "B"),
			lesson("13:30", "17:00", "C"),
		}},
		{Name: "Tuesday", Lessons: []Lesson{
			lesson("9:00", "12:30", "D"),
			lesson("14:00", "16:00", "E"),
		}},
		{Name: "Wednesday"},
	}}

	start, end, ok := tt.Bounds()
	if !ok || start != hm("8:00") || end != hm("17:00") {
		t.Errorf("Bounds() = %s, %s, %v", start, end, ok)
	}
	if got := tt.LessonCount(); got != 5 {
		t.Errorf("LessonCount() = %d, want 5", got)
	}

	got, ok := tt.CommonPause()
	if !ok {
		t.Fatal("CommonPause() found nothing")
	}
	if want := pause.New(hm("12:30"), hm("13:30")); got != want {
		t.Errorf("CommonPause() = %s, want %s", got, want)
	}

	if _, _, ok := New().Bounds(); ok {
		t.Error("an empty timetable has no bounds")
	}
}

func TestValidate(t *testing.T) {
	l := lesson("8:00", "9:00", "Math")
	l.Week = Left

	tt := &Timetable{Days: []Day{{Name: "Monday", Lessons: []Lesson{l}}}}
	if err := tt.Validate(); err == nil {
		t.Error("Validate() accepted a left-week lesson without a left week label")
	}
	tt.LeftWeek = "A"
	if err := tt.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestWeekString(t *testing.T) {
	for w, want := range map[Week]string{Always: "always", Left: "left", Right: "right", Week(7): "week(7)"} {
		if got := w.String(); got != want {
			t.Errorf("Week(%d).String() = %q, want %q", int(w), got, want)
		}
	}
}

func TestFormat(t *testing.T) {
	red := color.RGB{R: 255}
	tt := &Timetable{
		Title:    "Class 1ère S",
		LeftWeek: "A", RightWeek: "B",
		Days: []Day{
			{Name: "Monday", Lessons: []Lesson{
				{Start: hm("8:00"), End: hm("9:00"), Name: "Math", Teacher: "Smith", Room: "101", Week: Left, Color: &red},
				{Start: hm("9:00"), End: hm("10:00"), Name: "Physics", Week: Right},
				{Start: hm("10:15"), End: hm("12:00"), Name: "History", Teacher: "Jones", Removed: true},
			}},
			{Name: "Tu"},
		},
	}

	want := strings.Join([]string{
		"---",
		"title: Class 1ère S",
		"left_week: A",
		"right_week: B",
		"---",
		"",
		"Monday",
		"------",
		"8:00 - 9:00 Math - Smith (101) (A) #ff0000",
		"9:00 - 10:00 Physics () (B)",
		"10:15 - 12:00 History - Jones - Dispensé",
		"",
		"Tu",
		"---",
		"",
	}, "\n")

	if diff := cmp.Diff(want, tt.String()); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatWith(t *testing.T) {
	tt := &Timetable{
		Title:         "Class 2B",
		RemovedMarker: "Annulé",
		Days: []Day{
			{Name: "Friday", Lessons: []Lesson{
				{Start: hm("8:00"), End: hm("9:00"), Name: "Art", Teacher: "Monet", Removed: true},
			}},
		},
	}
	wrap := hm("12:30")
	set := Settings{
		TitleHeight: Ptr(20.5),
		WrapHour:    &wrap,
		ShowRoom:    Ptr(false),
		Ordinals:    FrenchOrdinals,
	}

	want := strings.Join([]string{
		"---",
		"title: Class 2B",
		"removed_marker: Annulé",
		"title_height: 20.5",
		"wrap_hour: 12:30",
		"show_room: false",
		"---",
		"",
		"Friday",
		"------",
		"8:00 - 9:00 Art - Monet - Annulé",
		"",
	}, "\n")

	var sb strings.Builder
	if err := tt.FormatWith(&sb, set); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("FormatWith() mismatch (-want +got):\n%s", diff)
	}
}

func TestMarker(t *testing.T) {
	if got := New().Marker(); got != DefaultRemovedMarker {
		t.Errorf("Marker() = %q, want default", got)
	}
	if got := (&Timetable{RemovedMarker: "Off"}).Marker(); got != "Off" {
		t.Errorf("Marker() = %q, want Off", got)
	}
}
