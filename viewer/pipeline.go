package viewer

import (
	"strings"

	"github.com/saka1/mlux/config"
	"github.com/saka1/mlux/layout"
	"github.com/saka1/mlux/markdown"
	"github.com/saka1/mlux/render"
	"github.com/saka1/mlux/rich"
	"github.com/saka1/mlux/theme"
)

// defaultTileHeightPt is the minimum content-tile height, before the
// viewport's own height is taken into account.
const defaultTileHeightPt = 500.0

// tabWidthPt is a tab stop's width in points: four body-text character
// widths, there being no monospace-grid assumption elsewhere in layout.
const tabWidthPt = 4 * 7.2

// Document is one built rendering of a Markdown file: its laid-out lines
// split into tiles, the ordered visual-line list scrolling and navigation
// are driven from, and the Canvas used to render a tile on demand.
type Document struct {
	MDSource    string
	SourceMap   *markdown.SourceMap
	Lines       []layout.Line
	Tiles       []layout.Tile
	VisualLines []layout.VisualLine

	WidthPt        float64
	SidebarWidthPt float64
	WidthPx        int
	SidebarWidthPx int

	canvas *render.Canvas
}

// BuildDocument parses mdSource and lays it out at the pixel width implied
// by the terminal Layout, cutting tiles at least as tall as one viewport
// so the viewport's top edge never straddles a tile boundary.
func BuildDocument(mdSource, baseDir string, lay Layout, cfg config.Config, fonts *render.FontSet, pal theme.Palette, images *rich.ImageCache) (*Document, error) {
	content, sm := markdown.Parse(mdSource, baseDir, images)
	boxes := rich.ContentToBoxes(content)

	widthPt := float64(lay.ImageCols) * lay.CellWPx * 72.0 / cfg.PPI
	sidebarWidthPt := float64(lay.SidebarCols) * lay.CellWPx * 72.0 / cfg.PPI
	_, viewportHeightPt := lay.VPDims(cfg.PPI)

	canvas := &render.Canvas{Fonts: fonts, Theme: pal, PPI: cfg.PPI}
	metrics := render.NewMetrics(fonts)

	lines := layout.Layout(boxes, metrics, widthPt, tabWidthPt)

	minTileHeight := cfg.Viewer.TileHeight
	if minTileHeight <= 0 {
		minTileHeight = defaultTileHeightPt
	}
	tiles := layout.SplitFrame(lines, minTileHeight, viewportHeightPt)

	renderedText := renderedPlainText(content)
	visualLines := layout.ExtractVisualLines(lines, sm, mdSource, renderedText)

	return &Document{
		MDSource:       mdSource,
		SourceMap:      sm,
		Lines:          lines,
		Tiles:          tiles,
		VisualLines:    visualLines,
		WidthPt:        widthPt,
		SidebarWidthPt: sidebarWidthPt,
		WidthPx:        render.PtToPx(widthPt, cfg.PPI),
		SidebarWidthPx: render.PtToPx(sidebarWidthPt, cfg.PPI),
		canvas:         canvas,
	}, nil
}

func renderedPlainText(c rich.Content) string {
	var sb strings.Builder
	for _, span := range c {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// TotalHeightPt is the full document height, the last tile's end Y.
func (d *Document) TotalHeightPt() float64 {
	if len(d.Tiles) == 0 {
		return 0
	}
	return d.Tiles[len(d.Tiles)-1].YPtEnd
}

// TileForOffset returns the index of the tile containing document-relative
// Y offsetPt.
func (d *Document) TileForOffset(offsetPt float64) int {
	for _, t := range d.Tiles {
		if offsetPt >= t.YPtStart && offsetPt < t.YPtEnd {
			return t.Index
		}
	}
	if len(d.Tiles) == 0 {
		return 0
	}
	return d.Tiles[len(d.Tiles)-1].Index
}

// VisibleSlice is one tile's contribution to the current viewport: the
// source crop rectangle (in the tile image's own pixel space) and the
// destination terminal rows it fills. A viewport whose bottom edge crosses
// a tile boundary is covered by more than one VisibleSlice, each against a
// different tile.
type VisibleSlice struct {
	TileIndex int
	SrcYPx    int
	SrcHPx    int
	DestRow   int
	DestRows  int
}

// VisibleSlices computes the source crop rectangles needed to fill the
// viewport starting at yOffsetPt, per spec.md's "visible tiles" contract
// (x=0, y=offset_into_tile_px, w=image_px_width, h=slice_height_px). Most
// scrolling stays within one tile's crop window; only near a tile boundary
// does the viewport span two tiles' worth of slices.
func (d *Document) VisibleSlices(yOffsetPt float64, lay Layout, ppi float64) []VisibleSlice {
	var slices []VisibleSlice
	if len(d.Tiles) == 0 {
		return slices
	}

	tileIdx := d.TileForOffset(yOffsetPt)
	offsetIntoTilePt := yOffsetPt - d.Tiles[tileIdx].YPtStart

	remainingRows := lay.ImageRows
	destRow := 0
	for remainingRows > 0 && tileIdx < len(d.Tiles) {
		tile := d.Tiles[tileIdx]
		tileHeightPx := render.PtToPx(tile.HeightPt, ppi)
		srcYPx := render.PtToPx(offsetIntoTilePt, ppi)

		availablePx := tileHeightPx - srcYPx
		if availablePx <= 0 {
			tileIdx++
			offsetIntoTilePt = 0
			continue
		}
		availableRows := int(float64(availablePx) / lay.CellHPx)
		if availableRows > remainingRows {
			availableRows = remainingRows
		}
		if availableRows <= 0 {
			break
		}

		srcHPx := int(float64(availableRows) * lay.CellHPx)
		slices = append(slices, VisibleSlice{
			TileIndex: tileIdx,
			SrcYPx:    srcYPx,
			SrcHPx:    srcHPx,
			DestRow:   destRow,
			DestRows:  availableRows,
		})

		destRow += availableRows
		remainingRows -= availableRows
		tileIdx++
		offsetIntoTilePt = 0
	}
	return slices
}

// RenderContentTile renders tile idx's Markdown content to PNG bytes.
func (d *Document) RenderContentTile(idx int) ([]byte, error) {
	return d.canvas.RenderTilePNG(d.Tiles[idx], d.WidthPx)
}

// RenderSidebarTile renders tile idx's line-number strip to PNG bytes.
func (d *Document) RenderSidebarTile(idx int) ([]byte, error) {
	tile := d.Tiles[idx]
	var entries []render.SidebarEntry
	for _, vl := range d.VisualLines {
		if vl.YPt < tile.YPtStart || vl.YPt >= tile.YPtEnd {
			continue
		}
		line := 0
		if vl.MDExact != nil {
			line = *vl.MDExact
		} else if vl.MDRange != nil {
			line = vl.MDRange.Start
		}
		entries = append(entries, render.SidebarEntry{YPt: vl.YPt, Line: line})
	}
	return d.canvas.RenderSidebarPNG(tile, entries, d.SidebarWidthPx)
}
