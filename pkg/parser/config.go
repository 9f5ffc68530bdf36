package parser

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/timetable/pkg/clock"
	"github.com/matzehuels/timetable/pkg/timetable"
)

// Config keys with a meaning beyond display settings.
const (
	KeyTitle         = "title"
	KeyLeftWeek      = "left_week"
	KeyRightWeek     = "right_week"
	KeyRemovedMarker = "removed_marker"
	// KeyColorPrefix followed by a lesson name gives that lesson's default
	// colour.
	KeyColorPrefix = "color."
)

// applyConfig copies the finished config block into the timetable and the
// document settings.
func (p *parser) applyConfig() error {
	if v, ok := p.config[KeyTitle]; ok {
		p.tt.Title = v
	}
	p.tt.LeftWeek = p.config[KeyLeftWeek]
	p.tt.RightWeek = p.config[KeyRightWeek]

	if m, ok := p.config[KeyRemovedMarker]; ok {
		g, err := newGrammar(m)
		if err != nil {
			return p.errorf(p.configAt[KeyRemovedMarker], "invalid removed marker %q: %v", m, err)
		}
		p.grammar = g
		p.tt.RemovedMarker = ""
		if m != timetable.DefaultRemovedMarker {
			p.tt.RemovedMarker = m
		}
	}

	for _, key := range p.keys {
		if err := setSetting(&p.settings, key, p.config[key]); err != nil {
			return p.errorf(p.configAt[key], "invalid value for %s: %v", key, err)
		}
	}
	return nil
}

// SettingKeys lists the config keys that map to display settings.
var SettingKeys = []string{
	"title_height", "title_shadow", "hours_width", "wrap_hour", "day_height",
	"hour_interval", "show_weeks", "show_teacher", "show_room",
	"show_first_last", "show_pauses", "black_white",
}

// ApplySetting sets one display setting from its config block spelling,
// e.g. ("wrap_hour", "12:00"). Unlike a config block, unknown keys are an
// error.
func ApplySetting(s *timetable.Settings, key, value string) error {
	if !slices.Contains(SettingKeys, key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	if err := setSetting(s, key, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// setSetting stores value into the field named by key. Keys that are not
// display settings are ignored.
func setSetting(s *timetable.Settings, key, value string) error {
	var err error
	switch key {
	case "title_height":
		s.TitleHeight, err = parseLength(value)
	case "hours_width":
		s.HoursWidth, err = parseLength(value)
	case "day_height":
		s.DayHeight, err = parseLength(value)
	case "wrap_hour":
		s.WrapHour, err = parseClock(value)
	case "hour_interval":
		s.HourInterval, err = parseClock(value)
		if err == nil && *s.HourInterval == 0 {
			s.HourInterval, err = nil, fmt.Errorf("interval must be positive")
		}
	case "title_shadow":
		s.TitleShadow, err = parseBool(value)
	case "show_weeks":
		s.ShowWeeks, err = parseBool(value)
	case "show_teacher":
		s.ShowTeacher, err = parseBool(value)
	case "show_room":
		s.ShowRoom, err = parseBool(value)
	case "show_first_last":
		s.ShowFirstLast, err = parseBool(value)
	case "show_pauses":
		s.ShowPauses, err = parseBool(value)
	case "black_white":
		s.BlackWhite, err = parseBool(value)
	}
	return err
}

func parseLength(v string) (*float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", v)
	}
	if f < 0 {
		return nil, fmt.Errorf("%q must not be negative", v)
	}
	return &f, nil
}

func parseClock(v string) (*clock.Time, error) {
	t, err := clock.Parse(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseBool(v string) (*bool, error) {
	var b bool
	switch strings.ToLower(v) {
	case "true", "yes", "on", "1":
		b = true
	case "false", "no", "off", "0":
		b = false
	default:
		return nil, fmt.Errorf("%q is not a boolean", v)
	}
	return &b, nil
}
