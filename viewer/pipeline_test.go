package viewer

import (
	"testing"

	"github.com/saka1/mlux/layout"
)

func mkDoc(tiles []layout.Tile) *Document {
	return &Document{Tiles: tiles}
}

func TestVisibleSlicesWithinSingleTile(t *testing.T) {
	doc := mkDoc([]layout.Tile{
		{Index: 0, YPtStart: 0, YPtEnd: 1000, HeightPt: 1000},
	})
	lay := Layout{ImageRows: 10, CellHPx: 16}
	slices := doc.VisibleSlices(72, lay, 144) // PtToPx(72, 144) = 144px

	if len(slices) != 1 {
		t.Fatalf("got %d slices, want 1", len(slices))
	}
	s := slices[0]
	if s.TileIndex != 0 {
		t.Errorf("TileIndex = %d, want 0", s.TileIndex)
	}
	if s.SrcYPx != 144 {
		t.Errorf("SrcYPx = %d, want 144", s.SrcYPx)
	}
	if s.DestRow != 0 || s.DestRows != 10 {
		t.Errorf("DestRow=%d DestRows=%d, want 0,10", s.DestRow, s.DestRows)
	}
}

func TestVisibleSlicesCrossesTileBoundary(t *testing.T) {
	// At 144 ppi, 1pt = 2px; cell height 32px = 16pt/row.
	doc := mkDoc([]layout.Tile{
		{Index: 0, YPtStart: 0, YPtEnd: 100, HeightPt: 100},
		{Index: 1, YPtStart: 100, YPtEnd: 300, HeightPt: 200},
	})
	lay := Layout{ImageRows: 10, CellHPx: 32}
	// Scroll to near the bottom of tile 0: only 20pt (40px) remain in tile 0,
	// room for one 32px row but not a second -- so the
	// viewport's 10 rows (320px) must span into tile 1.
	slices := doc.VisibleSlices(80, lay, 144)

	if len(slices) < 2 {
		t.Fatalf("got %d slices, want at least 2 (viewport crosses tile boundary)", len(slices))
	}
	if slices[0].TileIndex != 0 {
		t.Errorf("slices[0].TileIndex = %d, want 0", slices[0].TileIndex)
	}
	last := slices[len(slices)-1]
	if last.TileIndex != 1 {
		t.Errorf("last slice TileIndex = %d, want 1", last.TileIndex)
	}
	totalRows := 0
	for _, s := range slices {
		totalRows += s.DestRows
	}
	if totalRows > lay.ImageRows {
		t.Errorf("total DestRows = %d, exceeds viewport rows %d", totalRows, lay.ImageRows)
	}
}

func TestVisibleSlicesStopsAtLastTile(t *testing.T) {
	doc := mkDoc([]layout.Tile{
		{Index: 0, YPtStart: 0, YPtEnd: 50, HeightPt: 50},
	})
	lay := Layout{ImageRows: 20, CellHPx: 16}
	slices := doc.VisibleSlices(0, lay, 144)

	totalRows := 0
	for _, s := range slices {
		totalRows += s.DestRows
	}
	if totalRows > lay.ImageRows {
		t.Errorf("total DestRows = %d, must not exceed viewport rows", totalRows)
	}
	for _, s := range slices {
		if s.TileIndex != 0 {
			t.Errorf("got slice for tile %d, only tile 0 exists", s.TileIndex)
		}
	}
}
