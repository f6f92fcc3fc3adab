// Package theme holds the built-in color palettes the renderer draws a
// document with: body text, headings, code blocks, links, the line-number
// sidebar, and the status bar.
package theme

import (
	"fmt"
	"image/color"
	"sort"
)

// Palette is the set of colors a document is rendered with.
type Palette struct {
	Background color.Color // page background
	Foreground color.Color // body text
	Heading    color.Color
	CodeBg     color.Color
	CodeFg     color.Color
	LinkColor  color.Color
	SidebarBg  color.Color
	SidebarFg  color.Color
	StatusBg   color.Color
	StatusFg   color.Color
	FlashFg    color.Color // flash-message text (errors, confirmations)
}

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "catppuccin"

// catppuccinPalette uses the Catppuccin Mocha colors; #1e1e2e/#6c7086 match
// the sidebar fill and text colors the sidebar generator already used.
var catppuccinPalette = Palette{
	Background: color.RGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}, // base
	Foreground: color.RGBA{R: 0xcd, G: 0xd6, B: 0xf4, A: 0xff}, // text
	Heading:    color.RGBA{R: 0xa6, G: 0xe3, B: 0xa1, A: 0xff}, // green
	CodeBg:     color.RGBA{R: 0x31, G: 0x32, B: 0x44, A: 0xff}, // surface0
	CodeFg:     color.RGBA{R: 0xba, G: 0xc2, B: 0xde, A: 0xff}, // subtext1
	LinkColor:  color.RGBA{R: 0x89, G: 0xb4, B: 0xfa, A: 0xff}, // blue
	SidebarBg:  color.RGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}, // base
	SidebarFg:  color.RGBA{R: 0x6c, G: 0x70, B: 0x86, A: 0xff}, // overlay1
	StatusBg:   color.RGBA{R: 0x18, G: 0x18, B: 0x25, A: 0xff}, // mantle
	StatusFg:   color.RGBA{R: 0xcd, G: 0xd6, B: 0xf4, A: 0xff}, // text
	FlashFg:    color.RGBA{R: 0xf3, G: 0x8b, B: 0xa8, A: 0xff}, // red
}

// lightPalette carries forward the teacher's light-mode choices: a white
// page with black text and navy headings.
var lightPalette = Palette{
	Background: color.White,
	Foreground: color.Black,
	Heading:    color.RGBA{R: 0x00, G: 0x00, B: 0x80, A: 0xff},
	CodeBg:     color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff},
	CodeFg:     color.Black,
	LinkColor:  color.RGBA{R: 0x00, G: 0x00, B: 0xee, A: 0xff},
	SidebarBg:  color.White,
	SidebarFg:  color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff},
	StatusBg:   color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff},
	StatusFg:   color.Black,
	FlashFg:    color.RGBA{R: 0xaa, G: 0x00, B: 0x00, A: 0xff},
}

// darkPalette reuses the teacher's own dark-mode hex literals (acme's
// darkPalette: 0x333333 tag background, 0xEEEEEE text, 0x888888 border,
// 0xAA0000 for a warning accent), recast as a document palette instead of
// acme's tag/text/button coloring.
var darkPalette = Palette{
	Background: color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
	Foreground: color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	Heading:    color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	CodeBg:     color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
	CodeFg:     color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	LinkColor:  color.RGBA{R: 0x88, G: 0x88, B: 0xff, A: 0xff},
	SidebarBg:  color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
	SidebarFg:  color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
	StatusBg:   color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
	StatusFg:   color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	FlashFg:    color.RGBA{R: 0xaa, G: 0x00, B: 0x00, A: 0xff},
}

var registry = map[string]Palette{
	"catppuccin": catppuccinPalette,
	"light":      lightPalette,
	"dark":       darkPalette,
}

// Get looks up a built-in theme by name.
func Get(name string) (Palette, error) {
	p, ok := registry[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown theme %q (available: %v)", name, Names())
	}
	return p, nil
}

// Names lists the built-in theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
