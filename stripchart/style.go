package stripchart

// Color is a portable color name. Renderers map it to whatever their
// toolkit uses; unknown values fall back to the renderer's default.
type Color string

const (
	Black   Color = "black"
	Red     Color = "red"
	Green   Color = "green"
	Yellow  Color = "yellow"
	Blue    Color = "blue"
	Magenta Color = "magenta"
	Cyan    Color = "cyan"
	White   Color = "white"
	Gray    Color = "gray"
)

// Marker selects how a series is drawn.
type Marker int

const (
	// LineMarker connects consecutive samples.
	LineMarker Marker = iota
	// DotMarker draws unconnected points.
	DotMarker
)

// Style is the immutable styling intent of one bound series. Label, when
// non-empty, is the series' legend entry.
type Style struct {
	Color  Color
	Marker Marker
	Label  string
}

// Spec describes the styling of one row: either a single series, or several
// overlaid series sharing the row's y-range. The zero Spec means one series
// in the default style.
type Spec struct {
	styles []Style
}

// Single returns a Spec binding one series to a row.
func Single(s Style) Spec {
	return Spec{styles: []Style{s}}
}

// Overlay returns a Spec binding several series to one row, drawn in order.
func Overlay(styles ...Style) Spec {
	return Spec{styles: styles}
}

// defaultStyle matches the original's 'b-' fallback.
var defaultStyle = Style{Color: Blue, Marker: LineMarker}

// resolve returns the concrete ordered series styles for a row.
func (s Spec) resolve() []Style {
	if len(s.styles) == 0 {
		return []Style{defaultStyle}
	}
	return s.styles
}
