package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/timetable/pkg/timetable"
)

// lineKind classifies one trimmed line. The order of the constants is the
// order in which the rules are tried.
type lineKind int

const (
	kindSkip lineKind = iota
	kindConfigBegin
	kindConfigEnd
	kindConfigOption
	kindLesson
	kindRule
	kindDayName
)

func (k lineKind) String() string {
	switch k {
	case kindSkip:
		return "blank"
	case kindConfigBegin:
		return "config begin"
	case kindConfigEnd:
		return "config end"
	case kindConfigOption:
		return "config option"
	case kindLesson:
		return "lesson"
	case kindRule:
		return "horizontal line"
	default:
		return "day name"
	}
}

var ruleRE = regexp.MustCompile(`^---+$`)

func isRule(line string) bool { return ruleRE.MatchString(line) }

// lessonPattern takes the quoted removed marker as its only verb.
const lessonPattern = `^(?P<start>\d+[:h]\d+)\s*-\s*(?P<end>\d+[:h]\d+)` +
	`(?:\s+(?P<name>(?:[^#].*?)?))?` +
	`(?:\s+-\s+(?P<teacher>(?:[^#].*?)?))?` +
	`(?:\s+\((?P<room>.*?)\))?` +
	`(?:\s+\((?P<week>.*?)\))?` +
	`(?:\s+(?P<color>#.*?))?` +
	`(?P<removed>\s+-\s+%s)?$`

// lessonGrammar is a compiled lesson regexp with its group indexes.
type lessonGrammar struct {
	re                                                 *regexp.Regexp
	start, end, name, teacher, room, week, color, gone int
}

var defaultGrammar = mustGrammar(timetable.DefaultRemovedMarker)

func newGrammar(marker string) (*lessonGrammar, error) {
	re, err := regexp.Compile(fmt.Sprintf(lessonPattern, regexp.QuoteMeta(marker)))
	if err != nil {
		return nil, err
	}
	return &lessonGrammar{
		re:      re,
		start:   re.SubexpIndex("start"),
		end:     re.SubexpIndex("end"),
		name:    re.SubexpIndex("name"),
		teacher: re.SubexpIndex("teacher"),
		room:    re.SubexpIndex("room"),
		week:    re.SubexpIndex("week"),
		color:   re.SubexpIndex("color"),
		gone:    re.SubexpIndex("removed"),
	}, nil
}

func mustGrammar(marker string) *lessonGrammar {
	g, err := newGrammar(marker)
	if err != nil {
		panic(err)
	}
	return g
}

// lessonFields are the raw groups of a lesson line. Absent groups are "".
type lessonFields struct {
	start, end, name, teacher, room, week, color string
	removed                                      bool
}

func (g *lessonGrammar) match(line string) (lessonFields, bool) {
	m := g.re.FindStringSubmatch(line)
	if m == nil {
		return lessonFields{}, false
	}
	return lessonFields{
		start:   m[g.start],
		end:     m[g.end],
		name:    m[g.name],
		teacher: m[g.teacher],
		room:    m[g.room],
		week:    m[g.week],
		color:   m[g.color],
		removed: m[g.gone] != "",
	}, true
}

// classify picks the first rule that accepts line. lineNo is 1-based.
func (p *parser) classify(lineNo int, line string) lineKind {
	switch {
	case line == "" || strings.HasPrefix(line, "#"):
		return kindSkip
	case lineNo == 1 && isRule(line):
		return kindConfigBegin
	case p.state == stateInConfig && isRule(line):
		return kindConfigEnd
	case p.state == stateInConfig:
		return kindConfigOption
	case p.grammar.re.MatchString(line):
		return kindLesson
	case isRule(line):
		return kindRule
	default:
		return kindDayName
	}
}
