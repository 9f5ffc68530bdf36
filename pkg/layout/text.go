package layout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/timetable/pkg/surface"
	"github.com/matzehuels/timetable/pkg/timetable"
)

const (
	// supScale is the size of raised text relative to the current font.
	supScale = 0.7
	// supLift raises superscript runs by this share of the font height.
	supLift = 0.3
)

// Run is a piece of text drawn either normally or raised.
type Run struct {
	Text string
	Sup  bool
}

// Ordinals finds ordinal suffixes to raise. The zero value raises nothing.
type Ordinals struct {
	re *regexp.Regexp
}

// CompileOrdinals builds the matcher for rules. Each rule becomes one
// alternative "(?:Lead)(Suffix)"; only the suffix group is raised.
func CompileOrdinals(rules []timetable.Ordinal) (*Ordinals, error) {
	if len(rules) == 0 {
		return &Ordinals{}, nil
	}
	alts := make([]string, 0, len(rules))
	for i, r := range rules {
		if _, err := regexp.Compile(r.Lead); err != nil {
			return nil, fmt.Errorf("ordinal %d lead: %w", i, err)
		}
		if _, err := regexp.Compile(r.Suffix); err != nil {
			return nil, fmt.Errorf("ordinal %d suffix: %w", i, err)
		}
		alts = append(alts, fmt.Sprintf("(?:%s)(%s)", r.Lead, r.Suffix))
	}
	re, err := regexp.Compile(strings.Join(alts, "|"))
	if err != nil {
		return nil, fmt.Errorf("ordinals: %w", err)
	}
	return &Ordinals{re: re}, nil
}

// Split cuts text into alternating normal and raised runs. Empty runs are
// dropped.
func (o *Ordinals) Split(text string) []Run {
	if o == nil || o.re == nil || text == "" {
		return []Run{{Text: text}}
	}
	var runs []Run
	pos := 0
	for _, m := range o.re.FindAllStringSubmatchIndex(text, -1) {
		start, end := suffixSpan(m)
		if start < 0 {
			continue
		}
		if start > pos {
			runs = append(runs, Run{Text: text[pos:start]})
		}
		runs = append(runs, Run{Text: text[start:end], Sup: true})
		pos = end
	}
	if pos < len(text) || len(runs) == 0 {
		runs = append(runs, Run{Text: text[pos:]})
	}
	return runs
}

// suffixSpan returns the bounds of whichever suffix group matched.
func suffixSpan(m []int) (int, int) {
	for g := 1; 2*g+1 < len(m); g++ {
		if m[2*g] >= 0 && m[2*g+1] > m[2*g] {
			return m[2*g], m[2*g+1]
		}
	}
	return -1, -1
}

// Text draws single-line labels with auto-fit and raised ordinals.
type Text struct {
	Ordinals *Ordinals
}

// Width measures text in the current font, raised runs included.
func (t *Text) Width(s surface.Surface, text string) float64 {
	var w float64
	for _, run := range t.Ordinals.Split(text) {
		w += t.runWidth(s, run)
	}
	return w
}

func (t *Text) runWidth(s surface.Surface, run Run) float64 {
	if !run.Sup {
		return s.StringWidth(run.Text)
	}
	defer surface.Push(s, surface.Override{}.Size(s.State().FontSize*supScale))()
	return s.StringWidth(run.Text)
}

// Cell draws text in a w by h cell at the cursor. When the text is wider
// than the cell minus its inner margins, it is drawn at a font size scaled
// by target/measured and the size is restored afterwards.
//
// active is the week label currently being drawn; it never shrinks, and
// neither do heading labels ending in ':' or clock labels such as "8:00".
func (t *Text) Cell(s surface.Surface, w, h float64, text string, opt surface.CellOptions, active string) {
	if w == 0 {
		pw, _ := s.PageSize()
		_, _, right, _ := s.Margins()
		w = pw - right - s.X()
	}
	if text != "" && !exempt(text, active) {
		target := w - 2*s.CellMargin()
		if measured := t.Width(s, text); measured > target && measured > 0 {
			size := s.State().FontSize
			defer surface.Push(s, surface.Override{}.Size(size*target/measured))()
		}
	}
	t.draw(s, w, h, text, opt)
}

func exempt(text, active string) bool {
	if active != "" && text == active {
		return true
	}
	if strings.HasSuffix(text, ":") {
		return true
	}
	return isClockLabel(text)
}

// isClockLabel reports whether text ends like a clock reading, with ':'
// as its third rune from the end ("8:00", "Salle B:12").
func isClockLabel(text string) bool {
	r := []rune(text)
	return len(r) >= 3 && r[len(r)-3] == ':'
}

func (t *Text) draw(s surface.Surface, w, h float64, text string, opt surface.CellOptions) {
	runs := t.Ordinals.Split(text)
	if len(runs) == 1 && !runs[0].Sup {
		s.Cell(w, h, text, opt)
		return
	}

	x, y := s.X(), s.Y()
	frame := opt
	frame.Next = surface.NextStay
	s.Cell(w, h, "", frame)

	widths := make([]float64, len(runs))
	var total float64
	for i, run := range runs {
		widths[i] = t.runWidth(s, run)
		total += widths[i]
	}

	tx := x + s.CellMargin()
	switch opt.Align {
	case surface.AlignCenter:
		tx = x + (w-total)/2
	case surface.AlignRight:
		tx = x + w - s.CellMargin() - total
	}

	lift := supLift * surface.FontHeight(s)
	for i, run := range runs {
		runOpt := surface.CellOptions{Align: surface.AlignCenter, Next: surface.NextRight}
		if run.Sup {
			s.SetXY(tx, y-lift)
			pop := surface.Push(s, surface.Override{}.Size(s.State().FontSize*supScale))
			s.Cell(widths[i], h, run.Text, runOpt)
			pop()
		} else {
			s.SetXY(tx, y)
			s.Cell(widths[i], h, run.Text, runOpt)
		}
		tx += widths[i]
	}

	advance(s, x, y, w, h, opt.Next)
}

// advance places the cursor after a cell drawn at (x, y) the same way a
// single Cell call would have.
func advance(s surface.Surface, x, y, w, h float64, next surface.Next) {
	switch next {
	case surface.NextRight:
		s.SetXY(x+w, y)
	case surface.NextLine:
		left, _, _, _ := s.Margins()
		s.SetXY(left, y+h)
	case surface.NextBelow:
		s.SetXY(x, y+h)
	default:
		s.SetXY(x, y)
	}
}
