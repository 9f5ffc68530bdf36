package surface

import "github.com/matzehuels/timetable/pkg/color"

// Override lists the state fields to change for a scope. Nil fields keep
// their current value.
type Override struct {
	FontStyle *Style
	FontSize  *float64
	TextColor *color.RGB
	FillColor *color.RGB
	DrawColor *color.RGB
	LineCap   *LineCap
}

// Style sets the font style.
func (o Override) Style(s Style) Override { o.FontStyle = &s; return o }

// Size sets the font size in points.
func (o Override) Size(pt float64) Override { o.FontSize = &pt; return o }

// Text sets the text colour.
func (o Override) Text(c color.RGB) Override { o.TextColor = &c; return o }

// Fill sets the fill colour.
func (o Override) Fill(c color.RGB) Override { o.FillColor = &c; return o }

// Stroke sets the draw colour.
func (o Override) Stroke(c color.RGB) Override { o.DrawColor = &c; return o }

// Cap sets the line cap style.
func (o Override) Cap(c LineCap) Override { o.LineCap = &c; return o }

// Apply returns st with the override's fields replaced.
func (o Override) Apply(st State) State {
	if o.FontStyle != nil {
		st.FontStyle = *o.FontStyle
	}
	if o.FontSize != nil {
		st.FontSize = *o.FontSize
	}
	if o.TextColor != nil {
		st.TextColor = *o.TextColor
	}
	if o.FillColor != nil {
		st.FillColor = *o.FillColor
	}
	if o.DrawColor != nil {
		st.DrawColor = *o.DrawColor
	}
	if o.LineCap != nil {
		st.LineCap = *o.LineCap
	}
	return st
}

// Push applies o to s and returns a function restoring the previous
// state. Callers defer the returned function:
//
//	defer surface.Push(s, surface.Override{}.Style(surface.Bold))()
func Push(s Surface, o Override) (pop func()) {
	prev := s.State()
	s.SetState(o.Apply(prev))
	return func() { s.SetState(prev) }
}

// SaveCursor returns a function moving the cursor back to where it is now.
func SaveCursor(s Surface) (restore func()) {
	x, y := s.X(), s.Y()
	return func() { s.SetXY(x, y) }
}
