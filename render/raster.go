package render

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/saka1/mlux/layout"
	"github.com/saka1/mlux/rich"
	"github.com/saka1/mlux/theme"
)

// PtToPx converts a point measurement to pixels at the given pixels-per-inch.
func PtToPx(pt, ppi float64) int {
	return int(pt * ppi / 72.0)
}

// faceCache hands out an x/image font.Face per (Face, size) pair, since
// opentype.NewFace is not free and the same style repeats across a tile.
type faceCache struct {
	ppi   float64
	faces map[*Face]map[float64]xfont.Face
}

func newFaceCache(ppi float64) *faceCache {
	return &faceCache{ppi: ppi, faces: make(map[*Face]map[float64]xfont.Face)}
}

func (fc *faceCache) get(f *Face, sizePt float64) (xfont.Face, error) {
	sizes := fc.faces[f]
	if sizes == nil {
		sizes = make(map[float64]xfont.Face)
		fc.faces[f] = sizes
	}
	if face, ok := sizes[sizePt]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size: sizePt,
		DPI:  fc.ppi,
	})
	if err != nil {
		return nil, err
	}
	sizes[sizePt] = face
	return face, nil
}

// Canvas renders Tiles onto RGBA images using a FontSet and color Palette.
type Canvas struct {
	Fonts *FontSet
	Theme theme.Palette
	PPI   float64
}

// RenderTile draws one tile's lines at the given pixel width, returning the
// RGBA image ready for PNG encoding.
func (c *Canvas) RenderTile(tile layout.Tile, widthPx int) *image.RGBA {
	heightPx := PtToPx(tile.HeightPt, c.PPI)
	if heightPx <= 0 {
		heightPx = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	draw.Draw(img, img.Bounds(), image.NewUniform(c.Theme.Background), image.Point{}, draw.Src)

	fc := newFaceCache(c.PPI)
	for _, ln := range tile.Lines {
		lineYPt := ln.Y - tile.YOffsetPt
		c.drawLine(img, ln, lineYPt, fc)
	}
	return img
}

func (c *Canvas) drawLine(img *image.RGBA, ln layout.Line, lineYPt float64, fc *faceCache) {
	baselinePt := lineYPt + ln.Height*0.8 // 0.8 approximates ascent within the line box
	baselinePx := PtToPx(baselinePt, c.PPI)

	for _, pb := range ln.Boxes {
		b := pb.Box
		switch {
		case b.IsNewline(), b.IsTab():
			continue
		case b.IsImage():
			c.drawImage(img, pb, lineYPt)
			continue
		}
		c.drawTextBox(img, pb, baselinePx, fc)
	}
}

func (c *Canvas) drawTextBox(img *image.RGBA, pb layout.PositionedBox, baselinePx int, fc *faceCache) {
	b := pb.Box
	face := c.Fonts.pick(b.Style.Bold, b.Style.Italic, b.Style.Code)
	size := basePt
	if b.Style.Scale > 0 {
		size *= b.Style.Scale
	}

	xfFace, err := fc.get(face, size)
	if err != nil {
		return
	}

	if b.Style.Block {
		c.fillBoxBackground(img, pb, baselinePx)
	}

	col := c.Theme.Foreground
	switch {
	case b.Style.Link:
		col = c.Theme.LinkColor
	case b.Style.Code:
		col = c.Theme.CodeFg
	case isHeadingStyle(b.Style):
		col = c.Theme.Heading
	}

	d := &xfont.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: xfFace,
		Dot:  fixed.P(PtToPx(pb.X, c.PPI), baselinePx),
	}
	d.DrawString(string(b.Text))
}

func (c *Canvas) fillBoxBackground(img *image.RGBA, pb layout.PositionedBox, baselinePx int) {
	x0 := PtToPx(pb.X, c.PPI)
	w := pb.Box.Wid
	if w <= 0 {
		return
	}
	top := baselinePx - PtToPx(basePt, c.PPI)
	rect := image.Rect(x0, top, x0+int(float64(w)*c.PPI/72.0), baselinePx+2)
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(c.Theme.CodeBg), image.Point{}, draw.Src)
}

func (c *Canvas) drawImage(img *image.RGBA, pb layout.PositionedBox, lineYPt float64) {
	b := pb.Box
	if b.ImageData == nil || b.ImageData.Original == nil {
		return
	}
	x0 := PtToPx(pb.X, c.PPI)
	y0 := PtToPx(lineYPt, c.PPI)
	w := int(float64(b.Wid) * c.PPI / 72.0)
	if w <= 0 {
		w = b.ImageData.Width
	}
	aspect := float64(b.ImageData.Height) / float64(b.ImageData.Width)
	h := int(float64(w) * aspect)
	dstRect := image.Rect(x0, y0, x0+w, y0+h)
	xdraw.CatmullRom.Scale(img, dstRect, b.ImageData.Original, b.ImageData.Original.Bounds(), xdraw.Over, nil)
}

// isHeadingStyle identifies a heading run for color selection: Style has
// no dedicated Heading flag, but headingStyle() in markdown/parse.go
// always pairs Bold with a >1.0 scale.
func isHeadingStyle(s rich.Style) bool { return s.Scale > 1.0 && s.Bold }
