// Package layout turns markdown.Parse's flat rich.Content into an
// absolutely-positioned frame: word-wrapped lines of boxes, split into
// vertical tiles, and reduced to the ordered visual-line list the rest of
// the program (sidebar, yank, URL picker) is built on.
package layout

import "github.com/saka1/mlux/rich"

// FontMetrics measures styled text the way the render package's shaper
// will, in points. Line-breaking depends only on this interface so it has
// no direct dependency on go-text/typesetting, mirroring how the teacher's
// box layout took a draw.Font rather than talking to a display server
// itself.
type FontMetrics interface {
	// Advance returns the rendered width of text in style, in points.
	Advance(text string, style rich.Style) float64
	// LineHeight returns the line height for style, in points.
	LineHeight(style rich.Style) float64
}
