package surface

import "unicode/utf8"

const (
	charWidthRatio = 0.55
	boldWidthRatio = 1.07
)

// EstimateWidth approximates the width in millimetres of text set in the
// font of st. Backends without font metrics use it so that layout and
// auto-fit still behave sensibly.
func EstimateWidth(text string, st State) float64 {
	w := float64(utf8.RuneCountInString(text)) * st.FontSize / PointsPerMM * charWidthRatio
	if st.FontStyle == Bold || st.FontStyle == BoldItalic {
		w *= boldWidthRatio
	}
	return w
}
