package config

import (
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

func unmarshal(t *testing.T, data string) File {
	var f File
	if err := toml.Unmarshal([]byte(data), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return f
}

func TestEmptyTOMLResolvesToDefaults(t *testing.T) {
	f := unmarshal(t, "")
	cfg := f.Resolve()

	if cfg.Theme != "catppuccin" {
		t.Errorf("Theme = %q, want catppuccin", cfg.Theme)
	}
	if cfg.Width != 660.0 {
		t.Errorf("Width = %v, want 660.0", cfg.Width)
	}
	if cfg.PPI != 144.0 {
		t.Errorf("PPI = %v, want 144.0", cfg.PPI)
	}
	if cfg.Viewer.ScrollStep != 3 {
		t.Errorf("ScrollStep = %d, want 3", cfg.Viewer.ScrollStep)
	}
	if cfg.Viewer.FrameBudget != 32*time.Millisecond {
		t.Errorf("FrameBudget = %v, want 32ms", cfg.Viewer.FrameBudget)
	}
	if cfg.Viewer.TileHeight != 500.0 {
		t.Errorf("TileHeight = %v, want 500.0", cfg.Viewer.TileHeight)
	}
	if cfg.Viewer.SidebarCols != 6 {
		t.Errorf("SidebarCols = %d, want 6", cfg.Viewer.SidebarCols)
	}
	if cfg.Viewer.EvictDistance != 4 {
		t.Errorf("EvictDistance = %d, want 4", cfg.Viewer.EvictDistance)
	}
	if cfg.Viewer.WatchInterval != 200*time.Millisecond {
		t.Errorf("WatchInterval = %v, want 200ms", cfg.Viewer.WatchInterval)
	}
}

func TestPartialTOMLOverridesOnlyGivenFields(t *testing.T) {
	f := unmarshal(t, `
theme = "dracula"

[viewer]
scroll_step = 5
`)
	cfg := f.Resolve()

	if cfg.Theme != "dracula" {
		t.Errorf("Theme = %q, want dracula", cfg.Theme)
	}
	if cfg.Viewer.ScrollStep != 5 {
		t.Errorf("ScrollStep = %d, want 5", cfg.Viewer.ScrollStep)
	}
	if cfg.Width != 660.0 {
		t.Errorf("Width = %v, want default 660.0", cfg.Width)
	}
	if cfg.Viewer.TileHeight != 500.0 {
		t.Errorf("TileHeight = %v, want default 500.0", cfg.Viewer.TileHeight)
	}
}

func TestInvalidTOMLErrors(t *testing.T) {
	var f File
	err := toml.Unmarshal([]byte("this is not [valid"), &f)
	if err == nil {
		t.Fatal("expected a parse error for invalid TOML")
	}
}

func TestCLIOverridesWinOverFile(t *testing.T) {
	f := unmarshal(t, `theme = "dracula"`)
	theme := "nord"
	width := 800.0
	f.MergeCLI(CLIOverrides{Theme: &theme, Width: &width})
	cfg := f.Resolve()

	if cfg.Theme != "nord" {
		t.Errorf("Theme = %q, want nord (CLI override)", cfg.Theme)
	}
	if cfg.Width != 800.0 {
		t.Errorf("Width = %v, want 800.0 (CLI override)", cfg.Width)
	}
}
