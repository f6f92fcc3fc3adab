package render

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/saka1/mlux/layout"
	"github.com/saka1/mlux/rich"
)

const basePt = 12.0 // body text size in points; Style.Scale multiplies this

// Metrics implements layout.FontMetrics on top of a FontSet, shaping each
// run through go-text/typesetting's HarfBuzz shaper to get real advance
// widths (kerning, ligatures) rather than a fixed per-rune width.
type Metrics struct {
	fonts *FontSet

	mu     sync.Mutex
	shaper shaping.HarfbuzzShaper
}

var _ layout.FontMetrics = (*Metrics)(nil)

func NewMetrics(fonts *FontSet) *Metrics {
	return &Metrics{fonts: fonts}
}

func (m *Metrics) faceFor(style rich.Style) *Face {
	return m.fonts.pick(style.Bold, style.Italic, style.Code)
}

func (m *Metrics) sizeFor(style rich.Style) float64 {
	scale := style.Scale
	if scale <= 0 {
		scale = 1.0
	}
	return basePt * scale
}

func (m *Metrics) Advance(text string, style rich.Style) float64 {
	if text == "" {
		return 0
	}
	face := m.faceFor(style)
	size := m.sizeFor(style)

	m.mu.Lock()
	defer m.mu.Unlock()

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face.shaping,
		Size:      toFixed(size),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	}
	out := m.shaper.Shape(input)

	var advance float64
	for _, g := range out.Glyphs {
		advance += fromFixed(g.XAdvance)
	}
	return advance
}

func (m *Metrics) LineHeight(style rich.Style) float64 {
	// A 1.2x leading over the glyph size is the common typesetting
	// default absent explicit font metrics for ascent+descent+linegap.
	return m.sizeFor(style) * 1.2
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }
func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64.0 }
