// Package clock provides a minute-of-day value type with modular arithmetic.
//
// A [Time] counts minutes inside one 24 hour cycle and is always normalised
// into [0, 1440). The same type is used for two readings:
//
//   - an absolute clock reading ("the lesson starts at 8:30")
//   - a duration or offset ("step the hour axis by 1:00")
//
// Arithmetic wraps modulo 1440 regardless of the reading, so 23:59 + 0:02
// is 0:01. Callers track which reading applies at each call site.
//
// # Construction
//
//	t := clock.New(8, 30)             // 8:30
//	t, err := clock.Parse("16h45")    // 16:45
//	t := clock.FromTotal(-1)          // 23:59
//
// # Rounding
//
//	clock.New(8, 30).Floor(clock.New(1, 0)) // 8:00
//	clock.New(8, 30).Ceil(clock.New(1, 0))  // 9:00
package clock

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of the cycle every Time is normalised into.
const MinutesPerDay = 24 * 60

// Time is a count of minutes in [0, MinutesPerDay).
type Time int

// Common values.
const (
	Midnight   Time = 0
	HalfAnHour Time = 30
	OneHour    Time = 60
	EndOfDay   Time = MinutesPerDay - 1 // last representable minute
)

// New returns the Time for hour:minute. Overflowing or negative components
// are folded into the cycle, so New(12, 60) is 13:00 and New(24, 0) is 0:00.
// Each component is reduced before combining, so any int is accepted.
func New(hour, minute int) Time {
	return FromTotal((hour%24)*60 + minute%MinutesPerDay)
}

// FromTotal returns the Time for a raw number of minutes, normalised by
// floor modulo. FromTotal(-1) is 23:59.
func FromTotal(total int) Time {
	m := total % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return Time(m)
}

// FromHours converts a fractional hour count (1.5 = 1:30) into a Time.
// Sub-minute remainders are dropped toward negative infinity.
func FromHours(h float64) Time {
	return FromTotal(int(math.Floor(h * 60)))
}

// Parse reads "H:MM" or "HhMM". The separator is tried as ':' first, then 'h'.
func Parse(s string) (Time, error) {
	s = strings.TrimSpace(s)
	hs, ms, ok := strings.Cut(s, ":")
	if !ok {
		hs, ms, ok = strings.Cut(s, "h")
	}
	if !ok {
		return 0, fmt.Errorf("no ':' or 'h' in hour string: %q", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q: %w", s, err)
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}
	return New(h, m), nil
}

// MustParse is like Parse but panics on malformed input.
// It is intended for literals in tests and package-level defaults.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Total returns the raw minute count in [0, MinutesPerDay).
func (t Time) Total() int { return int(t) }

// Hour returns the hour component (0-23).
func (t Time) Hour() int { return int(t) / 60 }

// Minute returns the minute component (0-59).
func (t Time) Minute() int { return int(t) % 60 }

// Hours returns the value as a fractional hour count (8:30 = 8.5).
func (t Time) Hours() float64 { return float64(t) / 60 }

// Add returns t+o wrapped into the cycle.
func (t Time) Add(o Time) Time { return FromTotal(int(t) + int(o)) }

// Sub returns t-o wrapped into the cycle. 0:01 - 0:02 is 23:59.
func (t Time) Sub(o Time) Time { return FromTotal(int(t) - int(o)) }

// Mul scales t by f and wraps the result. 12:01 * 2 is 0:02.
func (t Time) Mul(f float64) Time {
	v := math.Mod(float64(t)*f, MinutesPerDay)
	if v < 0 {
		v += MinutesPerDay
	}
	return FromTotal(int(v))
}

// Div divides the raw totals. The result is not wrapped.
func (t Time) Div(o Time) float64 { return float64(t) / float64(o) }

// FloorDiv divides the raw totals rounding down. Division by a zero Time
// yields 0.
func (t Time) FloorDiv(o Time) int {
	if o == 0 {
		return 0
	}
	return int(t) / int(o)
}

// Mod returns the remainder of the raw totals. Modulo a zero Time yields t.
func (t Time) Mod(o Time) Time {
	if o == 0 {
		return t
	}
	return Time(int(t) % int(o))
}

// Floor rounds t down to a multiple of interval. 9:30 floored to 2:00 is 8:00.
func (t Time) Floor(interval Time) Time {
	if interval <= 0 {
		return t
	}
	return interval.Mul(float64(t.FloorDiv(interval)))
}

// Ceil rounds t up to a multiple of interval. Exact multiples stay fixed.
func (t Time) Ceil(interval Time) Time {
	if interval <= 0 {
		return t
	}
	f := t.Floor(interval)
	if t.Mod(interval) == 0 {
		return f
	}
	return f.Add(interval)
}

// Compare returns -1, 0 or +1 ordering t against o.
func (t Time) Compare(o Time) int {
	switch {
	case t < o:
		return -1
	case t > o:
		return 1
	}
	return 0
}

// Before reports whether t < o.
func (t Time) Before(o Time) bool { return t < o }

// After reports whether t > o.
func (t Time) After(o Time) bool { return t > o }

// String formats t as "H:MM".
func (t Time) String() string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Time) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Range returns start, start+step, ... while the value stays below end
// (or at end when includeEnd is set). Values are compared on raw totals, so
// the range never wraps past midnight. A start after end, or a non-positive
// step, yields nil.
func Range(start, end, step Time, includeEnd bool) []Time {
	if step <= 0 || start > end {
		return nil
	}
	var out []Time
	for v := int(start); v < int(end) || (includeEnd && v == int(end)); v += int(step) {
		out = append(out, Time(v))
	}
	return out
}

// Min returns the smallest of ts. It panics when ts is empty.
func Min(ts ...Time) Time {
	m := ts[0]
	for _, t := range ts[1:] {
		if t < m {
			m = t
		}
	}
	return m
}

// Max returns the largest of ts. It panics when ts is empty.
func Max(ts ...Time) Time {
	m := ts[0]
	for _, t := range ts[1:] {
		if t > m {
			m = t
		}
	}
	return m
}
