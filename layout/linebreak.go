package layout

import (
	"github.com/saka1/mlux/rich"
)

// PositionedBox is a Box placed at an X offset (points) on a Line.
type PositionedBox struct {
	X   float64
	Box rich.Box
}

// Line is one wrapped, positioned line of boxes. Y is the line's top
// absolute position in points within the page frame.
type Line struct {
	Y      float64
	Height float64
	Boxes  []PositionedBox
}

// imageDims returns the width/height, in points, an image box should
// occupy, scaling down to fit frameWidth while preserving aspect ratio.
func imageDims(b rich.Box, frameWidth float64) (float64, float64) {
	if b.ImageData == nil || b.ImageData.Original == nil {
		return 0, 0
	}
	w, h := float64(b.ImageData.Width), float64(b.ImageData.Height)
	if w <= 0 {
		return 0, 0
	}
	if w > frameWidth {
		scale := frameWidth / w
		w, h = frameWidth, h*scale
	}
	return w, h
}

// tabStopWidth returns how far a tab box at x advances to reach the next
// multiple of tabWidth, matching the teacher's tabBoxWidth: full width when
// already sitting on a stop.
func tabStopWidth(x, tabWidth float64) float64 {
	if tabWidth <= 0 {
		return 0
	}
	rem := mod(x, tabWidth)
	return tabWidth - rem
}

func mod(x, m float64) float64 {
	if m <= 0 {
		return 0
	}
	n := x
	for n >= m {
		n -= m
	}
	for n < 0 {
		n += m
	}
	return n
}

// Layout greedily word-wraps boxes into lines no wider than frameWidth,
// one rune (or tab stop, or whole image) at a time, matching acme's
// character-granular wrap rather than dictionary-word wrapping: a box's
// text is split at whatever rune boundary stops fitting, and the
// remainder continues on the next line.
func Layout(boxes []rich.Box, metrics FontMetrics, frameWidth, tabWidth float64) []Line {
	if len(boxes) == 0 {
		return nil
	}

	var lines []Line
	var cur []PositionedBox
	x := 0.0
	y := 0.0
	curHeight := 0.0
	started := false

	flush := func() {
		h := curHeight
		if h == 0 {
			h = metrics.LineHeight(rich.DefaultStyle())
		}
		lines = append(lines, Line{Y: y, Height: h, Boxes: cur})
		y += h
		cur = nil
		x = 0
		curHeight = 0
		started = false
	}

	grow := func(style rich.Style) {
		started = true
		if h := metrics.LineHeight(style); h > curHeight {
			curHeight = h
		}
	}

	for _, b := range boxes {
		switch {
		case b.IsNewline():
			nb := b
			nb.Wid = 0
			cur = append(cur, PositionedBox{X: x, Box: nb})
			grow(b.Style)
			flush()

		case b.IsTab():
			w := tabStopWidth(x, tabWidth)
			nb := b
			nb.Wid = int(w)
			cur = append(cur, PositionedBox{X: x, Box: nb})
			x += w
			grow(b.Style)

		case b.IsImage():
			w, h := imageDims(b, frameWidth)
			if started && x+w > frameWidth {
				flush()
			}
			nb := b
			nb.Wid = int(w)
			cur = append(cur, PositionedBox{X: x, Box: nb})
			x += w
			if h > curHeight {
				curHeight = h
			}
			started = true

		default:
			placeTextBox(&b, metrics, frameWidth, &x, &y, &cur, &curHeight, &started, flush)
		}
	}

	if started || len(cur) > 0 {
		flush()
	}

	return lines
}

// placeTextBox splits b's text across one or more lines, flushing the
// current line whenever a rune would overflow frameWidth.
func placeTextBox(b *rich.Box, metrics FontMetrics, frameWidth float64, x, y *float64, cur *[]PositionedBox, curHeight *float64, started *bool, flush func()) {
	runes := []rune(string(b.Text))
	if len(runes) == 0 {
		return
	}

	byteOffsets := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		byteOffsets[i] = off
		off += runeLen(r)
	}
	byteOffsets[len(runes)] = off

	start := 0
	for start < len(runes) {
		if *started {
			firstW := metrics.Advance(string(runes[start]), b.Style)
			if *x+firstW > frameWidth {
				flush()
			}
		}

		fit := 0
		width := 0.0
		for i := start; i < len(runes); i++ {
			cw := metrics.Advance(string(runes[i]), b.Style)
			if fit > 0 && *x+width+cw > frameWidth {
				break
			}
			width += cw
			fit++
		}
		if fit == 0 {
			fit = 1
			width = metrics.Advance(string(runes[start]), b.Style)
		}

		chunk := string(runes[start : start+fit])
		nb := rich.Box{
			Text:   []byte(chunk),
			Nrune:  fit,
			Style:  b.Style,
			Wid:    int(width),
			Offset: b.Offset + byteOffsets[start],
		}
		*cur = append(*cur, PositionedBox{X: *x, Box: nb})
		*x += width
		*started = true
		if h := metrics.LineHeight(b.Style); h > *curHeight {
			*curHeight = h
		}

		start += fit
		if start < len(runes) {
			flush()
		}
	}
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}
