package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/saka1/mlux/layout"
)

// EncodePNG encodes img with the standard library's encoder. The spec
// explicitly scopes the PNG encoder itself out of this program's own
// responsibilities, so there is nothing here beyond the stdlib call.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderTilePNG renders and encodes one content tile.
func (c *Canvas) RenderTilePNG(tile layout.Tile, widthPx int) ([]byte, error) {
	return EncodePNG(c.RenderTile(tile, widthPx))
}

// RenderSidebarPNG renders and encodes the line-number strip for one tile,
// given the visual lines belonging to it and the sidebar column width.
func (c *Canvas) RenderSidebarPNG(tile layout.Tile, lineNumbers []SidebarEntry, widthPx int) ([]byte, error) {
	return EncodePNG(c.RenderSidebar(tile, lineNumbers, widthPx))
}
