package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `---
title: Class 1ère S
left_week: A
right_week: B
color.Math: #4471c4
hours_width: 12
---

# first week day
Monday
------
8:00 - 10:00 Math - Smith (101)
10:15 - 11:15 Physics - Curie (Lab) (A)
10:15 - 11:15 Chemistry - Lavoisier (Lab) (B) #aa3300
13:30 - 15:30 History - Bloch (204) - Dispensé

Tuesday
-------
9h00 - 12h00 Sport
14:00-15:00 Philosophy - Sartre () (B)

Wednesday
---------
`

const customMarker = `---
removed_marker: Annulé
---

Monday
------
8:00 - 9:00 Math - Smith - Dispensé
9:00 - 10:00 Physics - Curie - Annulé
`

const displayOptions = `---
title: Class 2B
title_height: 20.5
title_shadow: true
hours_width: 12
wrap_hour: 12:30
day_height: 8
hour_interval: 0:30
show_weeks: false
show_teacher: false
show_room: false
show_first_last: false
show_pauses: true
black_white: yes
---

Friday
------
8:00 - 9:00 Art - Monet - Dispensé
`

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts []Option
	}{
		{"sample", sample, nil},
		{"custom marker in config", customMarker, nil},
		{"custom marker as option", "Monday\n------\n8:00 - 9:00 Math - Smith - Off\n9:00 - 10:00 Art - Monet - Dispensé\n",
			[]Option{WithRemovedMarker("Off")}},
		{"display options", displayOptions, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := Parse(tt.text, tt.opts...)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(first.Warnings) != 0 {
				t.Fatalf("input should be lint-free, got %v", first.Warnings)
			}

			var buf strings.Builder
			if err := first.Timetable.FormatWith(&buf, first.Settings); err != nil {
				t.Fatal(err)
			}
			text := buf.String()

			// The canonical text carries everything needed to read it back.
			second, err := Parse(text)
			if err != nil {
				t.Fatalf("Parse(Format()) error = %v\n%s", err, text)
			}
			if len(second.Warnings) != 0 {
				t.Errorf("canonical output triggered lint: %v", second.Warnings)
			}
			if diff := cmp.Diff(first.Timetable, second.Timetable); diff != "" {
				t.Errorf("timetable mismatch (-first +second):\n%s\n%s", diff, text)
			}
			if diff := cmp.Diff(first.Settings, second.Settings); diff != "" {
				t.Errorf("settings mismatch (-first +second):\n%s\n%s", diff, text)
			}

			var again strings.Builder
			if err := second.Timetable.FormatWith(&again, second.Settings); err != nil {
				t.Fatal(err)
			}
			if again.String() != text {
				t.Errorf("Format is not stable:\n%s\nvs\n%s", text, again.String())
			}
		})
	}
}

func TestRoundTripKeepsMarkerSemantics(t *testing.T) {
	res, err := Parse(customMarker)
	if err != nil {
		t.Fatal(err)
	}
	text := res.Timetable.String()
	if !strings.Contains(text, "removed_marker: Annulé\n") {
		t.Errorf("canonical text lost the marker:\n%s", text)
	}

	back, err := Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	lessons := back.Timetable.Days[0].Lessons
	if l := lessons[0]; l.Removed || l.Teacher != "Smith - Dispensé" {
		t.Errorf("lesson with the default marker text: got %+v", l)
	}
	if l := lessons[1]; !l.Removed || l.Teacher != "Curie" {
		t.Errorf("lesson with the custom marker: got %+v", l)
	}
}
