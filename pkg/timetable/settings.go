package timetable

import (
	"github.com/matzehuels/timetable/pkg/clock"
)

// Ordinal is one superscript rule: Suffix is rendered raised when it
// directly follows text matching Lead. Both are regular expressions.
type Ordinal struct {
	Lead   string `toml:"lead" yaml:"lead" json:"lead"`
	Suffix string `toml:"suffix" yaml:"suffix" json:"suffix"`
}

// FrenchOrdinals raises "1er", "2e", "XXIe", "3ème", "2nde" as well as the
// abbreviations "Mme" and "Tle"/"Tale".
var FrenchOrdinals = []Ordinal{
	{Lead: `[IVX0-9]`, Suffix: `(?:e|er|ère|ème|nde)s?\b`},
	{Lead: `M`, Suffix: `me`},
	{Lead: `T`, Suffix: `a?le`},
}

// Settings are the display options of one rendered page. Every field is
// optional: nil means "not set here" so that several sources can be
// merged. Lengths are millimetres.
type Settings struct {
	TitleHeight   *float64    `toml:"title_height" yaml:"title_height" json:"title_height,omitempty"`
	TitleShadow   *bool       `toml:"title_shadow" yaml:"title_shadow" json:"title_shadow,omitempty"`
	HoursWidth    *float64    `toml:"hours_width" yaml:"hours_width" json:"hours_width,omitempty"`
	WrapHour      *clock.Time `toml:"wrap_hour" yaml:"wrap_hour" json:"wrap_hour,omitempty"`
	DayHeight     *float64    `toml:"day_height" yaml:"day_height" json:"day_height,omitempty"`
	HourInterval  *clock.Time `toml:"hour_interval" yaml:"hour_interval" json:"hour_interval,omitempty"`
	ShowWeeks     *bool       `toml:"show_weeks" yaml:"show_weeks" json:"show_weeks,omitempty"`
	ShowTeacher   *bool       `toml:"show_teacher" yaml:"show_teacher" json:"show_teacher,omitempty"`
	ShowRoom      *bool       `toml:"show_room" yaml:"show_room" json:"show_room,omitempty"`
	ShowFirstLast *bool       `toml:"show_first_last" yaml:"show_first_last" json:"show_first_last,omitempty"`
	ShowPauses    *bool       `toml:"show_pauses" yaml:"show_pauses" json:"show_pauses,omitempty"`
	BlackWhite    *bool       `toml:"black_white" yaml:"black_white" json:"black_white,omitempty"`
	Ordinals      []Ordinal   `toml:"ordinals" yaml:"ordinals" json:"ordinals,omitempty"`
}

// Resolved is a Settings value with every field filled in.
type Resolved struct {
	TitleHeight   float64
	TitleShadow   bool
	HoursWidth    float64
	WrapHour      *clock.Time
	DayHeight     float64
	HourInterval  clock.Time
	ShowWeeks     bool
	ShowTeacher   bool
	ShowRoom      bool
	ShowFirstLast bool
	ShowPauses    bool
	BlackWhite    bool
	Ordinals      []Ordinal
}

// Defaults returns settings with every field set except WrapHour, which
// has no default.
func Defaults() Settings {
	return Settings{
		TitleHeight:   Ptr(15.0),
		TitleShadow:   Ptr(false),
		HoursWidth:    Ptr(10.0),
		DayHeight:     Ptr(10.0),
		HourInterval:  Ptr(clock.OneHour),
		ShowWeeks:     Ptr(true),
		ShowTeacher:   Ptr(true),
		ShowRoom:      Ptr(true),
		ShowFirstLast: Ptr(true),
		ShowPauses:    Ptr(false),
		BlackWhite:    Ptr(false),
		Ordinals:      FrenchOrdinals,
	}
}

// Merge combines settings left to right. A field set in a later value
// overrides earlier ones; nil fields never override.
func Merge(objs ...Settings) Settings {
	var out Settings
	for _, o := range objs {
		out.TitleHeight = pick(out.TitleHeight, o.TitleHeight)
		out.TitleShadow = pick(out.TitleShadow, o.TitleShadow)
		out.HoursWidth = pick(out.HoursWidth, o.HoursWidth)
		out.WrapHour = pick(out.WrapHour, o.WrapHour)
		out.DayHeight = pick(out.DayHeight, o.DayHeight)
		out.HourInterval = pick(out.HourInterval, o.HourInterval)
		out.ShowWeeks = pick(out.ShowWeeks, o.ShowWeeks)
		out.ShowTeacher = pick(out.ShowTeacher, o.ShowTeacher)
		out.ShowRoom = pick(out.ShowRoom, o.ShowRoom)
		out.ShowFirstLast = pick(out.ShowFirstLast, o.ShowFirstLast)
		out.ShowPauses = pick(out.ShowPauses, o.ShowPauses)
		out.BlackWhite = pick(out.BlackWhite, o.BlackWhite)
		if o.Ordinals != nil {
			out.Ordinals = o.Ordinals
		}
	}
	return out
}

// Resolve fills every unset field from [Defaults].
func (s Settings) Resolve() Resolved {
	m := Merge(Defaults(), s)
	return Resolved{
		TitleHeight:   *m.TitleHeight,
		TitleShadow:   *m.TitleShadow,
		HoursWidth:    *m.HoursWidth,
		WrapHour:      m.WrapHour,
		DayHeight:     *m.DayHeight,
		HourInterval:  *m.HourInterval,
		ShowWeeks:     *m.ShowWeeks,
		ShowTeacher:   *m.ShowTeacher,
		ShowRoom:      *m.ShowRoom,
		ShowFirstLast: *m.ShowFirstLast,
		ShowPauses:    *m.ShowPauses,
		BlackWhite:    *m.BlackWhite,
		Ordinals:      m.Ordinals,
	}
}

// IsZero reports whether no field is set.
func (s Settings) IsZero() bool {
	return s.TitleHeight == nil && s.TitleShadow == nil && s.HoursWidth == nil &&
		s.WrapHour == nil && s.DayHeight == nil && s.HourInterval == nil &&
		s.ShowWeeks == nil && s.ShowTeacher == nil && s.ShowRoom == nil &&
		s.ShowFirstLast == nil && s.ShowPauses == nil && s.BlackWhite == nil &&
		s.Ordinals == nil
}

// Ptr returns a pointer to v. It is a convenience for building Settings
// literals.
func Ptr[T any](v T) *T { return &v }

func pick[T any](cur, next *T) *T {
	if next != nil {
		return next
	}
	return cur
}
