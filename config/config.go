// Package config resolves the viewer's settings from a TOML file, CLI
// overrides, and built-in defaults, the same two-layer shape the teacher's
// config-driven tools use: an all-optional file struct merged down to a
// fully-populated one.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// ViewerFile is the `[viewer]` table of the config file; every field is
// optional so a user can override just the settings they care about.
type ViewerFile struct {
	ScrollStep      *int     `toml:"scroll_step"`
	FrameBudgetMs   *int64   `toml:"frame_budget_ms"`
	TileHeight      *float64 `toml:"tile_height"`
	SidebarCols     *int     `toml:"sidebar_cols"`
	EvictDistance   *int     `toml:"evict_distance"`
	WatchIntervalMs *int64   `toml:"watch_interval_ms"`
}

// FontsFile names explicit font file paths; an empty field falls back to
// render.DiscoverFonts's conventional install-path search.
type FontsFile struct {
	Body       *string `toml:"body"`
	Bold       *string `toml:"bold"`
	Italic     *string `toml:"italic"`
	BoldItalic *string `toml:"bold_italic"`
	Mono       *string `toml:"mono"`
}

// File is the config file's top-level shape, deserialized directly from
// TOML with BurntSushi/toml. All fields optional.
type File struct {
	Theme  *string    `toml:"theme"`
	Width  *float64   `toml:"width"`
	PPI    *float64   `toml:"ppi"`
	Viewer ViewerFile `toml:"viewer"`
	Fonts  FontsFile  `toml:"fonts"`
}

// Viewer holds the viewer-specific settings once every field has a value.
type Viewer struct {
	ScrollStep    int
	FrameBudget   time.Duration
	TileHeight    float64
	SidebarCols   int
	EvictDistance int
	WatchInterval time.Duration
}

// Fonts holds resolved (possibly empty, meaning auto-discover) font paths.
type Fonts struct {
	Body       string
	Bold       string
	Italic     string
	BoldItalic string
	Mono       string
}

// Config is the fully-resolved configuration: every field has a concrete
// value, either from the file, a CLI override, or a built-in default.
type Config struct {
	Theme  string
	Width  float64
	PPI    float64
	Viewer Viewer
	Fonts  Fonts
}

// CLIOverrides carries the subset of settings a command-line flag can
// override, preserved across `:reload` so a reloaded config still honors
// the flags the process was started with.
type CLIOverrides struct {
	Theme      *string
	Width      *float64
	PPI        *float64
	TileHeight *float64
}

// MergeCLI overwrites any field the file left unset -- or that was
// explicitly passed on the command line -- with the CLI override.
func (f *File) MergeCLI(o CLIOverrides) {
	if o.Theme != nil {
		f.Theme = o.Theme
	}
	if o.Width != nil {
		f.Width = o.Width
	}
	if o.PPI != nil {
		f.PPI = o.PPI
	}
	if o.TileHeight != nil {
		f.Viewer.TileHeight = o.TileHeight
	}
}

// Resolve applies defaults to every unset field, producing a Config ready
// for use by the render/viewer packages.
func (f *File) Resolve() Config {
	return Config{
		Theme: orString(f.Theme, "catppuccin"),
		Width: orFloat(f.Width, 660.0),
		PPI:   orFloat(f.PPI, 144.0),
		Viewer: Viewer{
			ScrollStep:    orInt(f.Viewer.ScrollStep, 3),
			FrameBudget:   time.Duration(orInt64(f.Viewer.FrameBudgetMs, 32)) * time.Millisecond,
			TileHeight:    orFloat(f.Viewer.TileHeight, 500.0),
			SidebarCols:   orInt(f.Viewer.SidebarCols, 6),
			EvictDistance: orInt(f.Viewer.EvictDistance, 4),
			WatchInterval: time.Duration(orInt64(f.Viewer.WatchIntervalMs, 200)) * time.Millisecond,
		},
		Fonts: Fonts{
			Body:       orString(f.Fonts.Body, ""),
			Bold:       orString(f.Fonts.Bold, ""),
			Italic:     orString(f.Fonts.Italic, ""),
			BoldItalic: orString(f.Fonts.BoldItalic, ""),
			Mono:       orString(f.Fonts.Mono, ""),
		},
	}
}

func orString(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func orFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func orInt64(v *int64, def int64) int64 {
	if v == nil {
		return def
	}
	return *v
}

// Path resolves $XDG_CONFIG_HOME/mlux/config.toml, falling back to
// ~/.config/mlux/config.toml. Returns false if neither HOME nor
// XDG_CONFIG_HOME is set.
func Path() (string, bool) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mlux", "config.toml"), true
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, ".config", "mlux", "config.toml"), true
}

// Load reads the config file, returning an all-defaults File if it does
// not exist. A malformed file is an error rather than silently ignored.
func Load() (*File, error) {
	path, ok := Path()
	if !ok {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &f, nil
}

// Reload re-reads the config file from disk and reapplies the original CLI
// overrides, used by the `:reload` command.
func Reload(overrides CLIOverrides) (Config, error) {
	f, err := Load()
	if err != nil {
		return Config{}, err
	}
	f.MergeCLI(overrides)
	return f.Resolve(), nil
}
