// Package viewer drives the interactive terminal session: it owns the
// raw-mode terminal, the outer/inner event loop, and the modal input
// handlers (normal, search, command, URL picker) that turn keystrokes into
// scrolling, yanking, and navigation over a rendered document.
package viewer

import "github.com/saka1/mlux/layout"

// Layout is the terminal-cell/pixel geometry a document is rendered
// against: how many of the terminal's columns and rows are available for
// image content versus the line-number sidebar and the status bar.
type Layout struct {
	TermCols, TermRows int
	PixelW, PixelH     int

	SidebarCols int
	ImageCol    int // terminal column the image area starts at, after the sidebar
	ImageCols   int // terminal columns available for image content
	ImageRows   int // terminal rows available for image content, excluding the status bar
	StatusRow   int // terminal row index of the status bar

	CellWPx float64
	CellHPx float64
}

// ComputeLayout derives a Layout from the terminal's reported cell grid and
// pixel dimensions (from the TIOCGWINSZ ioctl) plus the configured
// sidebar width, matching the original viewer's five-argument layout
// computation.
func ComputeLayout(termCols, termRows, pixelW, pixelH, sidebarCols int) Layout {
	if termCols <= 0 {
		termCols = 1
	}
	if termRows <= 0 {
		termRows = 1
	}
	if sidebarCols >= termCols {
		sidebarCols = termCols - 1
	}
	if sidebarCols < 0 {
		sidebarCols = 0
	}
	return Layout{
		TermCols:    termCols,
		TermRows:    termRows,
		PixelW:      pixelW,
		PixelH:      pixelH,
		SidebarCols: sidebarCols,
		ImageCol:    sidebarCols,
		ImageCols:   termCols - sidebarCols,
		ImageRows:   termRows - 1,
		StatusRow:   termRows - 1,
		CellWPx:     float64(pixelW) / float64(termCols),
		CellHPx:     float64(pixelH) / float64(termRows),
	}
}

// VPDims returns the viewport's image area, in points, at the given PPI.
func (l Layout) VPDims(ppi float64) (widthPt, heightPt float64) {
	widthPt = float64(l.ImageCols) * l.CellWPx * 72.0 / ppi
	heightPt = float64(l.ImageRows) * l.CellHPx * 72.0 / ppi
	return
}

// ViewState is the mutable scroll/session state the outer loop threads
// across redraws and across a Resize/Reload/ConfigReload rebuild.
type ViewState struct {
	YOffsetPt float64
	Filename  string
}

// MaxScroll returns the largest YOffsetPt that still leaves the viewport
// inside the document, given the document's total height.
func MaxScroll(totalHeightPt, viewportHeightPt float64) float64 {
	max := totalHeightPt - viewportHeightPt
	if max < 0 {
		return 0
	}
	return max
}

// ExitKind identifies why the inner loop returned control to the outer
// loop.
type ExitKind int

const (
	ExitQuit ExitKind = iota
	ExitResize
	ExitReload
	ExitConfigReload
)

// ExitReason carries the outer loop's next action. NewCols/NewRows are
// only meaningful when Kind is ExitResize.
type ExitReason struct {
	Kind             ExitKind
	NewCols, NewRows int
}

// VisualLineOffset returns the Y offset, in points, of the visual line at
// idx, clamped to the slice's bounds.
func VisualLineOffset(lines []layout.VisualLine, idx int) float64 {
	if len(lines) == 0 {
		return 0
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(lines) {
		idx = len(lines) - 1
	}
	return lines[idx].YPt
}

// JumpToVisualLine returns the index of the last visual line whose Y does
// not exceed offsetPt, snapping a scroll offset onto a line boundary
// rather than leaving it mid-line.
func JumpToVisualLine(lines []layout.VisualLine, offsetPt float64) int {
	idx := 0
	for i, vl := range lines {
		if vl.YPt > offsetPt {
			break
		}
		idx = i
	}
	return idx
}

// contentIDBase and sidebarIDBase put content image IDs in the 1000-1999
// namespace and sidebar image IDs in the 2000-2999 namespace, keyed
// deterministically off the tile index (1000+idx, 2000+idx) rather than an
// assignment-order counter, so an ID is always derivable from the tile it
// names without a lookup.
const (
	contentIDBase = 1000
	sidebarIDBase = 2000
)

// TileImageIDs tracks which tile indexes currently have their content/
// sidebar image uploaded to the terminal, evicting entries far from the
// current tile independently of the PNG-byte cache's own eviction -- an
// uploaded image still occupies terminal-side memory even once its PNG
// bytes are evicted from our cache.
type TileImageIDs struct {
	content map[int]bool
	sidebar map[int]bool
}

// NewTileImageIDs returns an empty ID tracker.
func NewTileImageIDs() *TileImageIDs {
	return &TileImageIDs{content: make(map[int]bool), sidebar: make(map[int]bool)}
}

// ContentID returns tile idx's content image ID (1000+idx), and whether it
// has not yet been uploaded this build.
func (t *TileImageIDs) ContentID(idx int) (id uint32, isNew bool) {
	isNew = !t.content[idx]
	t.content[idx] = true
	return uint32(contentIDBase + idx), isNew
}

// SidebarID returns tile idx's sidebar image ID (2000+idx), and whether it
// has not yet been uploaded this build.
func (t *TileImageIDs) SidebarID(idx int) (id uint32, isNew bool) {
	isNew = !t.sidebar[idx]
	t.sidebar[idx] = true
	return uint32(sidebarIDBase + idx), isNew
}

// EvictDistant drops every tracked tile index more than keepRadius tiles
// from current, returning the IDs dropped so the caller can issue Kitty
// delete commands for them.
func (t *TileImageIDs) EvictDistant(current, keepRadius int) []uint32 {
	var dropped []uint32
	for idx := range t.content {
		if abs(idx-current) > keepRadius {
			dropped = append(dropped, uint32(contentIDBase+idx))
			delete(t.content, idx)
		}
	}
	for idx := range t.sidebar {
		if abs(idx-current) > keepRadius {
			dropped = append(dropped, uint32(sidebarIDBase+idx))
			delete(t.sidebar, idx)
		}
	}
	return dropped
}

// Clear drops every tracked tile index, used on resize/reload before the
// next scoped region's tiles are built.
func (t *TileImageIDs) Clear() {
	t.content = make(map[int]bool)
	t.sidebar = make(map[int]bool)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
