package render

import (
	"fmt"
	"image"
	"image/draw"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/saka1/mlux/layout"
)

// SidebarEntry is one line-number row to draw in a sidebar strip: the
// visual line's absolute Y (points) and the Markdown line it resolved to,
// or zero when the line has no resolvable source (drawn blank).
type SidebarEntry struct {
	YPt  float64
	Line int
}

// RenderSidebar draws a line-number strip for tile's Y-range: one small
// right-aligned number per resolvable visual line, matching the document
// tile's line positions so scrolling keeps both images in lockstep.
func (c *Canvas) RenderSidebar(tile layout.Tile, entries []SidebarEntry, widthPx int) *image.RGBA {
	heightPx := PtToPx(tile.HeightPt, c.PPI)
	if heightPx <= 0 {
		heightPx = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	draw.Draw(img, img.Bounds(), image.NewUniform(c.Theme.SidebarBg), image.Point{}, draw.Src)

	fc := newFaceCache(c.PPI)
	face, err := fc.get(c.Fonts.Mono, basePt*0.8)
	if err != nil {
		face, err = fc.get(c.Fonts.Body, basePt*0.8)
		if err != nil {
			return img
		}
	}

	for _, e := range entries {
		if e.Line == 0 {
			continue
		}
		yPt := e.YPt - tile.YOffsetPt
		baselinePx := PtToPx(yPt, c.PPI) + PtToPx(basePt*0.8, c.PPI)
		label := fmt.Sprintf("%d", e.Line)
		advance := xfont.MeasureString(face, label)
		x := widthPx - advance.Ceil() - 4

		d := &xfont.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c.Theme.SidebarFg),
			Face: face,
			Dot:  fixed.P(x, baselinePx),
		}
		d.DrawString(label)
	}

	return img
}
