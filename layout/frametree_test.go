package layout

import "testing"

func linesAt(ys ...float64) []Line {
	var lines []Line
	for _, y := range ys {
		lines = append(lines, Line{Y: y, Height: 14})
	}
	return lines
}

func TestSplitFrameEmptyPageYieldsOneEmptyTile(t *testing.T) {
	tiles := SplitFrame(nil, 1000, 500)
	if len(tiles) != 1 {
		t.Fatalf("got %d tiles, want 1", len(tiles))
	}
	if tiles[0].HeightPt != 0 {
		t.Errorf("HeightPt = %v, want 0", tiles[0].HeightPt)
	}
}

func TestSplitFrameSingleTileWhenUnderMinHeight(t *testing.T) {
	lines := linesAt(0, 14, 28, 42)
	tiles := SplitFrame(lines, 1000, 500)
	if len(tiles) != 1 {
		t.Fatalf("got %d tiles, want 1: %+v", len(tiles), tiles)
	}
	if tiles[0].HeightPt != 56 {
		t.Errorf("HeightPt = %v, want 56", tiles[0].HeightPt)
	}
}

func TestSplitFrameSplitsAtMinHeight(t *testing.T) {
	// 20 lines at 14pt each = 280pt tall page; min height 100pt should
	// produce multiple tiles, each but the last at least 100pt tall, none
	// overlapping.
	ys := make([]float64, 20)
	for i := range ys {
		ys[i] = float64(i) * 14
	}
	lines := linesAt(ys...)
	tiles := SplitFrame(lines, 100, 50)

	if len(tiles) < 2 {
		t.Fatalf("expected multiple tiles, got %d", len(tiles))
	}
	for i, tl := range tiles {
		if tl.Index != i {
			t.Errorf("tile[%d].Index = %d, want %d", i, tl.Index, i)
		}
		if i > 0 && tl.YPtStart != tiles[i-1].YPtEnd {
			t.Errorf("tile[%d] starts at %v, want %v (previous tile's end)", i, tl.YPtStart, tiles[i-1].YPtEnd)
		}
		if len(tl.Lines) == 0 {
			t.Errorf("tile[%d] has no lines", i)
		}
	}
	total := TotalHeight(lines)
	if tiles[len(tiles)-1].YPtEnd != total {
		t.Errorf("last tile ends at %v, want page height %v", tiles[len(tiles)-1].YPtEnd, total)
	}
}

func TestSplitFrameEffectiveMinHeightUsesViewport(t *testing.T) {
	ys := make([]float64, 10)
	for i := range ys {
		ys[i] = float64(i) * 14
	}
	lines := linesAt(ys...)
	// min_height 10pt but viewport 200pt: every tile must be >= 200pt,
	// so everything should land in one tile (page is 140pt tall).
	tiles := SplitFrame(lines, 10, 200)
	if len(tiles) != 1 {
		t.Errorf("got %d tiles, want 1 (viewport height dominates)", len(tiles))
	}
}

func TestSplitFrameNoDuplicatedOrMissingLines(t *testing.T) {
	ys := make([]float64, 15)
	for i := range ys {
		ys[i] = float64(i) * 14
	}
	lines := linesAt(ys...)
	tiles := SplitFrame(lines, 50, 30)

	count := 0
	for _, tl := range tiles {
		count += len(tl.Lines)
	}
	if count != len(lines) {
		t.Errorf("tiles carry %d lines total, want %d", count, len(lines))
	}
}
