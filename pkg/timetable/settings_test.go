package timetable

import (
	"testing"

	"github.com/matzehuels/timetable/pkg/clock"
)

func TestMerge(t *testing.T) {
	doc := Settings{TitleShadow: Ptr(true), HoursWidth: Ptr(12.0)}
	caller := Settings{TitleShadow: Ptr(false), ShowRoom: Ptr(false)}

	got := Merge(doc, caller)
	if got.TitleShadow == nil || *got.TitleShadow {
		t.Error("later TitleShadow should win")
	}
	if got.HoursWidth == nil || *got.HoursWidth != 12 {
		t.Error("unset later field must not override")
	}
	if got.ShowRoom == nil || *got.ShowRoom {
		t.Error("ShowRoom from caller lost")
	}
	if got.DayHeight != nil {
		t.Error("field set nowhere must stay nil")
	}
	if !Merge().IsZero() {
		t.Error("Merge() of nothing should be zero")
	}
}

func TestResolve(t *testing.T) {
	r := Settings{}.Resolve()
	if r.TitleHeight != 15 || r.HoursWidth != 10 || r.DayHeight != 10 {
		t.Errorf("geometry defaults = %v/%v/%v", r.TitleHeight, r.HoursWidth, r.DayHeight)
	}
	if r.HourInterval != clock.OneHour {
		t.Errorf("HourInterval = %s, want 1:00", r.HourInterval)
	}
	if !r.ShowWeeks || !r.ShowTeacher || !r.ShowRoom || !r.ShowFirstLast {
		t.Error("show_* toggles should default to true")
	}
	if r.ShowPauses || r.BlackWhite || r.TitleShadow {
		t.Error("show_pauses, black_white and title_shadow should default to false")
	}
	if r.WrapHour != nil {
		t.Error("wrap_hour has no default")
	}
	if len(r.Ordinals) != len(FrenchOrdinals) {
		t.Errorf("Ordinals = %v", r.Ordinals)
	}

	wrap := clock.New(12, 0)
	r = Settings{WrapHour: &wrap, BlackWhite: Ptr(true), Ordinals: []Ordinal{}}.Resolve()
	if r.WrapHour == nil || *r.WrapHour != wrap || !r.BlackWhite {
		t.Error("explicit fields must survive Resolve")
	}
	if len(r.Ordinals) != 0 {
		t.Error("an explicit empty ordinal list disables superscripts")
	}
}
