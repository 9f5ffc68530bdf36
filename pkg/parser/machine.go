package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/timetable/pkg/clock"
	"github.com/matzehuels/timetable/pkg/color"
	"github.com/matzehuels/timetable/pkg/timetable"
)

type state int

const (
	// stateAwaitingDayName is the start state and the state after the
	// config block.
	stateAwaitingDayName state = iota
	// stateAwaitingRule follows a day name until its rule is read.
	stateAwaitingRule
	// stateInDay accepts lessons for the last opened day.
	stateInDay
	stateInConfig
)

func (s state) String() string {
	switch s {
	case stateAwaitingDayName:
		return "awaiting day name"
	case stateAwaitingRule:
		return "awaiting rule"
	case stateInDay:
		return "in day"
	default:
		return "in config"
	}
}

type transitionKey struct {
	from state
	kind lineKind
}

type transition func(p *parser, lineNo int, line string) (state, error)

// transitions lists every legal (state, line kind) pair plus the illegal
// pairs that deserve a specific message. Any other pair cannot occur given
// how classify works.
var transitions = map[transitionKey]transition{
	{stateAwaitingDayName, kindConfigBegin}: (*parser).beginConfig,
	{stateInConfig, kindConfigOption}:       (*parser).addOption,
	{stateInConfig, kindConfigEnd}:          (*parser).endConfig,

	{stateAwaitingDayName, kindDayName}: (*parser).setDayName,
	{stateInDay, kindDayName}:           (*parser).setDayName,
	{stateAwaitingRule, kindDayName}:    (*parser).unexpectedDayName,

	{stateAwaitingRule, kindRule}:    (*parser).openDay,
	{stateAwaitingDayName, kindRule}: (*parser).unexpectedRule,
	{stateInDay, kindRule}:           (*parser).unexpectedRule,

	{stateInDay, kindLesson}:           (*parser).addLesson,
	{stateAwaitingDayName, kindLesson}: (*parser).noCurrentDay,
	{stateAwaitingRule, kindLesson}:    (*parser).noCurrentDay,
}

type parser struct {
	opts    options
	grammar *lessonGrammar
	state   state

	tt       *timetable.Timetable
	settings timetable.Settings

	config   map[string]string
	keys     []string
	configAt map[string]int

	dayName  string
	dayLine  int
	cur      int
	warnings []Warning
}

func newParser(o options) *parser {
	p := &parser{
		opts:     o,
		grammar:  defaultGrammar,
		tt:       timetable.New(),
		config:   make(map[string]string),
		configAt: make(map[string]int),
		cur:      -1,
	}
	if o.removedMarker != timetable.DefaultRemovedMarker {
		p.grammar = mustGrammar(o.removedMarker)
		p.tt.RemovedMarker = o.removedMarker
	}
	return p
}

func (p *parser) run(lines []string) error {
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		kind := p.classify(lineNo, line)
		if kind == kindSkip {
			continue
		}
		next, ok := transitions[transitionKey{p.state, kind}]
		if !ok {
			return p.errorf(lineNo, "unexpected %s while %s", kind, p.state)
		}
		st, err := next(p, lineNo, line)
		if err != nil {
			return err
		}
		p.state = st
	}

	switch p.state {
	case stateInConfig:
		return p.errorf(max(len(lines), 1), "unexpected end of config, maybe you forgot to add --- at the end of the config?")
	case stateAwaitingRule:
		p.warn(p.dayLine, "day name %q is not followed by a horizontal line and was ignored", p.dayName)
	}
	return nil
}

func (p *parser) result() *Result {
	return &Result{
		Timetable: p.tt,
		Settings:  p.settings,
		Config:    p.config,
		Warnings:  p.warnings,
	}
}

func (p *parser) errorf(lineNo int, format string, args ...any) error {
	return &ParseError{Line: lineNo, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) warn(lineNo int, format string, args ...any) {
	if !p.opts.lint {
		return
	}
	w := Warning{Line: lineNo, Msg: fmt.Sprintf(format, args...)}
	p.warnings = append(p.warnings, w)
	if p.opts.onWarning != nil {
		p.opts.onWarning(w)
	}
}

func (p *parser) beginConfig(lineNo int, line string) (state, error) {
	if len(line) > 3 {
		p.warn(lineNo, "the horizontal line before the config is longer than 3")
	}
	return stateInConfig, nil
}

func (p *parser) addOption(lineNo int, line string) (state, error) {
	key, value, _ := strings.Cut(line, ":")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if value == "" {
		return 0, p.errorf(lineNo, "invalid config option: %q", line)
	}
	if _, seen := p.config[key]; !seen {
		p.keys = append(p.keys, key)
	}
	p.config[key] = value
	p.configAt[key] = lineNo
	return stateInConfig, nil
}

func (p *parser) endConfig(lineNo int, line string) (state, error) {
	if len(p.config) == 0 {
		p.warn(lineNo, "empty config")
	}
	if len(line) > 3 {
		p.warn(lineNo, "the horizontal line after the config is longer than 3")
	}
	if err := p.applyConfig(); err != nil {
		return 0, err
	}
	return stateAwaitingDayName, nil
}

func (p *parser) setDayName(lineNo int, line string) (state, error) {
	if p.state == stateInDay {
		prev := p.tt.Days[p.cur]
		if strings.Contains(prev.Name, ":") && len(prev.Lessons) == 0 {
			p.warn(lineNo, "empty day %q, maybe it was meant as a config option?", prev.Name)
		}
	}
	p.dayName, p.dayLine = line, lineNo
	return stateAwaitingRule, nil
}

func (p *parser) unexpectedDayName(lineNo int, line string) (state, error) {
	return 0, p.errorf(lineNo, "unexpected day name %q after %q, maybe you meant to create a config section?", line, p.dayName)
}

func (p *parser) openDay(lineNo int, line string) (state, error) {
	want := utf8.RuneCountInString(p.dayName)
	if want >= 3 && len(line) != want {
		p.warn(lineNo, "the length of the horizontal line doesn't match the length of the day (it should be %d but is %d)", want, len(line))
	}
	p.tt.Days = append(p.tt.Days, timetable.Day{Name: p.dayName})
	p.cur = len(p.tt.Days) - 1
	return stateInDay, nil
}

func (p *parser) unexpectedRule(lineNo int, _ string) (state, error) {
	return 0, p.errorf(lineNo, "unexpected horizontal line")
}

func (p *parser) noCurrentDay(lineNo int, _ string) (state, error) {
	return 0, p.errorf(lineNo, "no current day, maybe you forgot to add --- after the day name?")
}

func (p *parser) addLesson(lineNo int, line string) (state, error) {
	f, _ := p.grammar.match(line)

	start, err := clock.Parse(f.start)
	if err != nil {
		return 0, p.errorf(lineNo, "invalid start time %q", f.start)
	}
	end, err := clock.Parse(f.end)
	if err != nil {
		return 0, p.errorf(lineNo, "invalid end time %q", f.end)
	}

	week := timetable.Always
	if f.week != "" {
		switch f.week {
		case p.config[KeyLeftWeek]:
			week = timetable.Left
		case p.config[KeyRightWeek]:
			week = timetable.Right
		default:
			return 0, p.errorf(lineNo, "invalid week: %q", f.week)
		}
	}

	hex := f.color
	if hex == "" {
		hex = p.config[KeyColorPrefix+f.name]
	}
	var c *color.RGB
	if hex != "" {
		rgb, err := color.ParseHex(hex)
		if err != nil {
			return 0, p.errorf(lineNo, "invalid colour: %v", err)
		}
		c = &rgb
	}

	day := &p.tt.Days[p.cur]
	day.Lessons = append(day.Lessons, timetable.Lesson{
		Start:   start,
		End:     end,
		Name:    f.name,
		Teacher: f.teacher,
		Room:    f.room,
		Color:   c,
		Week:    week,
		Removed: f.removed,
	})
	return stateInDay, nil
}
