// Package parser reads the line-oriented timetable text format.
//
// A document is an optional config block followed by day sections:
//
//	---
//	title: Class 1ère S
//	left_week: A
//	right_week: B
//	---
//
//	Monday
//	------
//	8:00 - 9:00 Math - Smith (101) (A) #ff0000
//	9:00 - 10:00 Physics - Jones (Lab)
//
// The config block is only recognised when its opening rule is the first
// line of the file. Each day name is followed by a rule of dashes, then
// lesson lines of the form
//
//	START - END [NAME] [- TEACHER] [(ROOM)] [(WEEK)] [#COLOR] [- Dispensé]
//
// Blank lines and lines starting with '#' are ignored.
//
// Fatal problems abort the parse with a [*ParseError]. Formatting quirks
// that do not change the meaning produce [Warning] values and parsing
// continues.
package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/timetable/pkg/timetable"
)

// ParseError is a fatal problem at a given line. Lines are 1-based.
type ParseError struct {
	Line int
	Msg  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Warning is a non-fatal lint diagnostic.
type Warning struct {
	Line int    `json:"line"`
	Msg  string `json:"message"`
}

// String formats the warning like a ParseError.
func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Msg)
}

// Result is everything read from one document.
type Result struct {
	Timetable *timetable.Timetable
	// Settings holds only the display options the config block set.
	Settings timetable.Settings
	// Config is the raw config block, last value per key.
	Config   map[string]string
	Warnings []Warning
}

// Option configures a parse.
type Option func(*options)

type options struct {
	lint          bool
	onWarning     func(Warning)
	removedMarker string
}

// WithLint turns lint warnings on or off. Lint is on by default.
func WithLint(enabled bool) Option {
	return func(o *options) { o.lint = enabled }
}

// WithWarningHandler registers fn to be called for every lint warning as
// soon as it is found. Warnings are still collected in the Result.
func WithWarningHandler(fn func(Warning)) Option {
	return func(o *options) { o.onWarning = fn }
}

// WithRemovedMarker changes the suffix that marks a lesson as removed.
// A removed_marker key in the document's config block takes precedence.
func WithRemovedMarker(marker string) Option {
	return func(o *options) {
		if marker != "" {
			o.removedMarker = marker
		}
	}
}

// Parse reads a timetable document.
func Parse(data string, opts ...Option) (*Result, error) {
	o := options{lint: true, removedMarker: timetable.DefaultRemovedMarker}
	for _, opt := range opts {
		opt(&o)
	}

	data = strings.TrimPrefix(norm.NFC.String(data), "\ufeff")
	p := newParser(o)
	if err := p.run(splitLines(data)); err != nil {
		return nil, err
	}
	return p.result(), nil
}

// ParseReader reads a whole document from r and parses it.
func ParseReader(r io.Reader, opts ...Option) (*Result, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read timetable: %w", err)
	}
	return Parse(string(b), opts...)
}

// splitLines splits on every line break a text editor may produce. A
// trailing break does not start an extra line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	afterCR := false
	for i, r := range s {
		if afterCR {
			afterCR = false
			if r == '\n' {
				start = i + 1
				continue
			}
		}
		switch r {
		case '\r':
			afterCR = true
			fallthrough
		case '\n', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
			lines = append(lines, s[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
