package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/saka1/mlux/config"
	"github.com/saka1/mlux/input"
	"github.com/saka1/mlux/viewer"
)

var (
	flagTheme      string
	flagWidth      float64
	flagPPI        float64
	flagTileHeight float64
	flagNoWatch    bool
	flagLog        string
)

// cliMisuseError marks an error that should exit with code 2 (bad
// arguments) rather than the generic code 1.
type cliMisuseError struct{ err error }

func (e cliMisuseError) Error() string { return e.err.Error() }
func (e cliMisuseError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "mlux [file.md]",
	Short: "mlux views Markdown in the terminal as rendered image tiles",
	Long: "mlux parses a Markdown file, renders it to PNG tiles with a real typesetting\n" +
		"pipeline, and displays it in a Kitty-graphics-protocol terminal with\n" +
		"vim-style navigation, search, and clipboard yank.",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return cliMisuseError{fmt.Errorf("mlux: accepts at most one file argument, got %d", len(args))}
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runView,
}

// Execute runs the CLI and exits with the code matching the failure: 2 for
// CLI misuse, 3 when the terminal can't support viewer mode, 1 otherwise.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	var misuse cliMisuseError
	switch {
	case errors.As(err, &misuse):
		os.Exit(2)
	case errors.Is(err, viewer.ErrTerminalUnsupported):
		os.Exit(3)
	default:
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "color theme (default from config, then \"catppuccin\")")
	rootCmd.PersistentFlags().Float64Var(&flagWidth, "width", 0, "page width in points (default from config, then 660)")
	rootCmd.PersistentFlags().Float64Var(&flagPPI, "ppi", 0, "render resolution in pixels per inch (default from config, then 144)")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log", "", "write logs to PATH instead of discarding them")
	rootCmd.Flags().Float64Var(&flagTileHeight, "tile-height", 0, "minimum content tile height in points")
	rootCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "disable automatic reload when the file changes on disk")

	rootCmd.AddCommand(renderCmd)
}

// setupLogging points the shared logger at --log's file, or discards log
// output entirely when it's unset -- the alternate screen owns the
// terminal, so nothing may write to stderr during a session.
func setupLogging() error {
	if flagLog == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(flagLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("mlux: opening log file %s: %w", flagLog, err)
	}
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	return nil
}

func cliOverrides() config.CLIOverrides {
	var o config.CLIOverrides
	if flagTheme != "" {
		o.Theme = &flagTheme
	}
	if flagWidth != 0 {
		o.Width = &flagWidth
	}
	if flagPPI != 0 {
		o.PPI = &flagPPI
	}
	if flagTileHeight != 0 {
		o.TileHeight = &flagTileHeight
	}
	return o
}

func resolveConfig() (config.Config, error) {
	file, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	overrides := cliOverrides()
	file.MergeCLI(overrides)
	return file.Resolve(), nil
}

func runView(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	} else if !input.IsPiped() {
		return cliMisuseError{fmt.Errorf("mlux: no file given and stdin is not piped; usage: mlux FILE.md")}
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(); err != nil {
		return err
	}

	return viewer.Run(path, cfg, cliOverrides(), !flagNoWatch)
}
