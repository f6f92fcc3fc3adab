package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saka1/mlux/layout"
	"github.com/saka1/mlux/markdown"
	"github.com/saka1/mlux/render"
	"github.com/saka1/mlux/rich"
	"github.com/saka1/mlux/theme"
)

var (
	renderOutput     string
	renderWidth      float64
	renderPPI        float64
	renderTheme      string
	renderTileHeight float64
	renderDump       bool
)

var renderCmd = &cobra.Command{
	Use:   "render INPUT",
	Short: "render a Markdown file to one PNG per tile",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "out.png", "output PNG path; tile index is inserted before the extension")
	renderCmd.Flags().Float64Var(&renderWidth, "width", 660.0, "page width in points")
	renderCmd.Flags().Float64Var(&renderPPI, "ppi", 144.0, "render resolution in pixels per inch")
	renderCmd.Flags().Float64Var(&renderTileHeight, "tile-height", 500.0, "minimum tile height in points")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "catppuccin", "color theme")
	renderCmd.Flags().BoolVar(&renderDump, "dump", false, "also write the source map as JSON alongside the PNGs")
}

// tilePath inserts a zero-padded tile index before base's extension:
// out.png, idx 3 -> out-003.png.
func tilePath(base string, idx int) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s-%03d%s", stem, idx, ext)
}

func runRender(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("mlux render: reading %s: %w", inputPath, err)
	}

	pal, err := theme.Get(renderTheme)
	if err != nil {
		return fmt.Errorf("mlux render: %w", err)
	}

	fonts, err := render.DiscoverFonts("", "", "", "", "")
	if err != nil {
		return fmt.Errorf("mlux render: %w", err)
	}

	images := rich.NewImageCache(64)
	content, sm := markdown.Parse(string(data), filepath.Dir(inputPath), images)
	boxes := rich.ContentToBoxes(content)
	metrics := render.NewMetrics(fonts)
	lines := layout.Layout(boxes, metrics, renderWidth, 4*7.2)

	tiles := layout.SplitFrame(lines, renderTileHeight, 0)

	canvas := &render.Canvas{Fonts: fonts, Theme: pal, PPI: renderPPI}
	widthPx := render.PtToPx(renderWidth, renderPPI)

	for _, tile := range tiles {
		png, err := canvas.RenderTilePNG(tile, widthPx)
		if err != nil {
			return fmt.Errorf("mlux render: rendering tile %d: %w", tile.Index, err)
		}
		path := tilePath(renderOutput, tile.Index)
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return fmt.Errorf("mlux render: writing %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	}

	if renderDump {
		if err := dumpSourceMap(renderOutput, sm); err != nil {
			return err
		}
	}

	return nil
}

// dumpSourceMap writes sm's entries as JSON next to output, for inspecting
// how Markdown byte ranges line up with rendered byte ranges.
func dumpSourceMap(output string, sm *markdown.SourceMap) error {
	ext := filepath.Ext(output)
	path := strings.TrimSuffix(output, ext) + ".sourcemap.json"
	b, err := json.MarshalIndent(sm.Entries(), "", "  ")
	if err != nil {
		return fmt.Errorf("mlux render: encoding source map: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("mlux render: writing %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}
