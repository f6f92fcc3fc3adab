package layout

import (
	"strings"

	"github.com/saka1/mlux/markdown"
)

// yTolerance is the sub-point band within which two baselines are treated
// as the same visual line, guarding against float rounding producing two
// near-identical Y values for what should be one line.
const yTolerance = 0.5

// VisualLine is one row of the page frame a viewer scrolls by: a baseline
// Y and, when resolvable, the Markdown source line range (and possibly
// exact line) that produced it.
type VisualLine struct {
	YPt       float64
	MDRange   *markdown.LineRange
	MDExact   *int
}

// ExtractVisualLines reduces the wrapped Lines of a laid-out frame to the
// ordered visual-line list C3 resolves against. Lines within yTolerance
// of each other are merged, matching runs that land on the same baseline
// (e.g. a bold run next to a plain run on the same source line). Each
// visual line's source span is resolved from the first of its boxes that
// maps to a markdown.SourceMap entry; later boxes are tried only if the
// first is detached, so a heading icon or decorative span doesn't mask
// the line's real text.
func ExtractVisualLines(lines []Line, sm *markdown.SourceMap, mdSource, renderedText string) []VisualLine {
	var out []VisualLine

	for _, ln := range lines {
		if !hasContent(ln) {
			continue
		}
		if n := len(out); n > 0 && ln.Y-out[n-1].YPt <= yTolerance {
			continue // merged into the previous visual line
		}

		vl := VisualLine{YPt: ln.Y}
		for _, pb := range ln.Boxes {
			if pb.Box.IsNewline() || pb.Box.IsTab() {
				continue
			}
			info, ok := sm.ResolveMDLineRange(mdSource, renderedText, pb.Box.Offset)
			if !ok {
				continue
			}
			r := info.Range
			vl.MDRange = &r
			if info.Exact != 0 {
				exact := info.Exact
				vl.MDExact = &exact
			}
			break
		}
		out = append(out, vl)
	}

	return out
}

func hasContent(ln Line) bool {
	for _, pb := range ln.Boxes {
		if !pb.Box.IsNewline() {
			return true
		}
	}
	return false
}

// YankRange returns the verbatim Markdown source text for the given
// 1-based inclusive line range, matching tile.rs's yank_lines: every
// requested line joined by "\n", without a trailing newline.
func YankRange(mdSource string, r markdown.LineRange) string {
	lines := strings.Split(mdSource, "\n")
	start, end := r.Start-1, r.End
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}

// YankExact returns the verbatim Markdown source text of a single 1-based
// line, matching tile.rs's yank_exact.
func YankExact(mdSource string, line int) string {
	return YankRange(mdSource, markdown.LineRange{Start: line, End: line})
}
