package layout

// Tile is a vertical Y-slice of a page frame: a contiguous run of Lines
// whose absolute Y falls in [YPtStart, YPtEnd). Lines keep their original
// absolute Y; YOffsetPt is what a renderer subtracts so the tile's image
// starts at Y=0.
type Tile struct {
	Index     int
	YPtStart  float64
	YPtEnd    float64
	HeightPt  float64
	YOffsetPt float64
	Lines     []Line
}

// SplitFrame partitions lines into vertical tiles. A split is issued at
// the first line whose absolute top Y exceeds the current tile's start Y
// plus effectiveMinHeight, and which is preceded by at least one line
// already in the tile, so no tile is ever empty except for a genuinely
// empty page. effectiveMinHeight is max(minHeightPt, viewportHeightPt): a
// tile always covers at least one full viewport, so the viewport's top
// edge can never straddle two tiles.
//
// Tiles are non-overlapping and exactly cover the page height; lines keep
// their absolute coordinates and are never duplicated across tiles.
func SplitFrame(lines []Line, minHeightPt, viewportHeightPt float64) []Tile {
	effectiveMinHeight := minHeightPt
	if viewportHeightPt > effectiveMinHeight {
		effectiveMinHeight = viewportHeightPt
	}

	if len(lines) == 0 {
		return []Tile{{Index: 0, YPtStart: 0, YPtEnd: 0, HeightPt: 0, YOffsetPt: 0}}
	}

	var tiles []Tile
	tileStartY := lines[0].Y
	var cur []Line

	flush := func(endY float64) {
		tiles = append(tiles, Tile{
			Index:     len(tiles),
			YPtStart:  tileStartY,
			YPtEnd:    endY,
			HeightPt:  endY - tileStartY,
			YOffsetPt: tileStartY,
			Lines:     cur,
		})
		cur = nil
	}

	for _, ln := range lines {
		if len(cur) > 0 && ln.Y > tileStartY+effectiveMinHeight {
			flush(ln.Y)
			tileStartY = ln.Y
		}
		cur = append(cur, ln)
	}

	last := lines[len(lines)-1]
	flush(last.Y + last.Height)

	return tiles
}

// TotalHeight returns the full page height in points spanned by lines.
func TotalHeight(lines []Line) float64 {
	if len(lines) == 0 {
		return 0
	}
	last := lines[len(lines)-1]
	return last.Y + last.Height
}
