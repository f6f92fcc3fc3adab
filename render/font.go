// Package render turns a laid-out frame (layout.Line/Tile) into PNG image
// bytes: it shapes and measures text with go-text/typesetting, rasterizes
// glyphs and images onto an RGBA canvas with golang.org/x/image, and
// encodes the result with the standard image/png encoder.
package render

import (
	"bytes"
	"fmt"
	"os"

	gofont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
)

// Face bundles the two font representations this package needs: go-text's
// Font for shaping-driven metrics, and x/image's sfnt.Font, from which an
// opentype.Face is built at draw time for the actual glyph rasterization
// x/image/font.Drawer performs. Both are parsed from the same font bytes.
type Face struct {
	Name    string
	shaping gofont.Face
	sfnt    *sfnt.Font
}

// LoadFace parses a TrueType/OpenType font file for both shaping and
// rasterization.
func LoadFace(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: reading font %s: %w", path, err)
	}
	return parseFace(path, data)
}

func parseFace(name string, data []byte) (*Face, error) {
	shapingFace, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("render: parsing font %s for shaping: %w", name, err)
	}

	sfntFont, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("render: parsing font %s for rasterization: %w", name, err)
	}

	return &Face{Name: name, shaping: shapingFace, sfnt: sfntFont}, nil
}

// FontSet is the five faces a document is rendered with: a body face,
// its bold/italic/bold-italic variants, and a monospace face for
// code. A viewer missing a variant falls back to the body face rather
// than failing the render.
type FontSet struct {
	Body       *Face
	Bold       *Face
	Italic     *Face
	BoldItalic *Face
	Mono       *Face
}

// pick returns the face for the given style flags, falling back to Body.
func (fs *FontSet) pick(bold, italic, mono bool) *Face {
	switch {
	case mono && fs.Mono != nil:
		return fs.Mono
	case bold && italic && fs.BoldItalic != nil:
		return fs.BoldItalic
	case bold && fs.Bold != nil:
		return fs.Bold
	case italic && fs.Italic != nil:
		return fs.Italic
	default:
		return fs.Body
	}
}
