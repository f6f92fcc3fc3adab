package viewer

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/saka1/mlux/cache"
	"github.com/saka1/mlux/config"
	"github.com/saka1/mlux/input"
	"github.com/saka1/mlux/render"
	"github.com/saka1/mlux/rich"
	"github.com/saka1/mlux/theme"
)

// Run opens mdPath (or reads it from stdin when mdPath is "-"), enters
// raw mode, and drives the session until the user quits. watch enables
// the file-change poll that triggers an automatic Reload.
func Run(mdPath string, cfg config.Config, overrides config.CLIOverrides, watch bool) error {
	if err := CheckTTY(); err != nil {
		return err
	}

	guard, err := Enter()
	if err != nil {
		return err
	}
	defer guard.Cleanup()

	sess := &session{
		mdPath:    mdPath,
		cfg:       cfg,
		overrides: overrides,
		watch:     watch,
		guard:     guard,
		keys:      NewKeyReader(guard.TTY()),
		out:       os.Stdout,
	}
	defer sess.closeWatcher()

	var yOffsetCarry float64
	for {
		reason, err := sess.runOnce(yOffsetCarry)
		if err != nil {
			return err
		}
		switch reason.Kind {
		case ExitQuit:
			return nil
		case ExitResize:
			yOffsetCarry = sess.state.YOffsetPt
		case ExitReload:
			yOffsetCarry = sess.state.YOffsetPt
		case ExitConfigReload:
			yOffsetCarry = sess.state.YOffsetPt
			if newCfg, err := config.Reload(sess.overrides); err != nil {
				sess.flash = fmt.Sprintf("Config reload failed: %v", err)
			} else {
				sess.cfg = newCfg
			}
		}
	}
}

type session struct {
	mdPath    string
	cfg       config.Config
	overrides config.CLIOverrides
	watch     bool
	guard     *RawGuard
	keys      *KeyReader
	out       *os.File

	doc     *Document
	lay     Layout
	state   ViewState
	mode    ViewerMode
	acc     InputAccumulator
	search  SearchState
	command CommandState
	urlPick URLPickerState
	last    *LastSearch
	flash   string

	tileIDs    *TileImageIDs
	prefetcher *cache.Prefetcher
	watcher    *input.FileWatcher
}

func (s *session) closeWatcher() {
	if s.watcher != nil {
		s.watcher.Close()
	}
}

// runOnce builds a fresh Document at the current terminal size and runs the
// inner loop until it returns an ExitReason. A failure to read the source
// file or translate it (anything short of losing the terminal itself) is
// recoverable: it flashes a message and keeps the previous document on
// screen, or -- if there is no previous document yet -- falls back to a
// placeholder page explaining the failure, rather than terminating the
// process.
func (s *session) runOnce(yOffsetCarry float64) (ExitReason, error) {
	cols, rows, pxW, pxH, err := termSize(int(s.guard.TTY().Fd()))
	if err != nil {
		return ExitReason{}, fmt.Errorf("viewer: reading terminal size: %w", err)
	}
	s.lay = ComputeLayout(cols, rows, pxW, pxH, s.cfg.Viewer.SidebarCols)

	mdSource, baseDir, loadErr := s.loadSource()
	if loadErr == nil {
		var doc *Document
		doc, loadErr = s.buildDocument(mdSource, baseDir)
		if loadErr == nil {
			s.doc = doc
			s.state = ViewState{YOffsetPt: clamp(yOffsetCarry, 0, MaxScroll(doc.TotalHeightPt(), vpHeight(s.lay, s.cfg.PPI))), Filename: filepath.Base(s.mdPath)}
		}
	}
	if loadErr != nil {
		if recErr := s.recoverFromLoadFailure(loadErr); recErr != nil {
			return ExitReason{}, recErr
		}
	}

	s.mode = ModeNormal
	s.acc.Reset()
	s.tileIDs = NewTileImageIDs()

	worker := cache.StartWorker(s.renderTile)
	tileCache := cache.NewTileCache(s.cfg.Viewer.EvictDistance)
	s.prefetcher = cache.NewPrefetcher(tileCache, worker)
	defer s.prefetcher.Close()

	if s.watch && s.mdPath != "-" {
		if w, err := input.NewFileWatcher(s.mdPath); err == nil {
			if s.watcher != nil {
				s.watcher.Close()
			}
			s.watcher = w
		} else {
			log.Warn("file watch disabled", "err", err)
		}
	}

	return s.innerLoop()
}

// recoverFromLoadFailure handles a failed load/translate: if a document is
// already on screen, it stays there and cause is just flashed; otherwise a
// placeholder document explaining cause is built so there is always
// something to render. Only a failure to build even the placeholder is
// propagated, terminating the process.
func (s *session) recoverFromLoadFailure(cause error) error {
	if s.doc != nil {
		log.Warn("keeping previous document after load failure", "err", cause)
		s.flash = fmt.Sprintf("Reload failed, keeping previous document: %v", cause)
		return nil
	}
	placeholder, err := s.buildDocument(placeholderText(cause), ".")
	if err != nil {
		return fmt.Errorf("viewer: no document could be loaded: %w", err)
	}
	s.doc = placeholder
	s.state = ViewState{Filename: filepath.Base(s.mdPath)}
	s.flash = fmt.Sprintf("Load failed: %v", cause)
	return nil
}

func placeholderText(cause error) string {
	return "# mlux\n\nCould not load the document:\n\n" + cause.Error() + "\n"
}

func (s *session) loadSource() (mdSource, baseDir string, err error) {
	if s.mdPath == "-" {
		text, err := input.ReadStdin()
		return text, ".", err
	}
	data, err := os.ReadFile(s.mdPath)
	if err != nil {
		return "", "", fmt.Errorf("viewer: reading %s: %w", s.mdPath, err)
	}
	return string(data), filepath.Dir(s.mdPath), nil
}

// buildDocument discovers fonts, resolves the theme, and lays text out into
// a Document, the fallible part of runOnce shared between a normal load and
// the placeholder page built after a load failure.
func (s *session) buildDocument(mdSource, baseDir string) (*Document, error) {
	fonts, err := render.DiscoverFonts(s.cfg.Fonts.Body, s.cfg.Fonts.Bold, s.cfg.Fonts.Italic, s.cfg.Fonts.BoldItalic, s.cfg.Fonts.Mono)
	if err != nil {
		return nil, fmt.Errorf("viewer: discovering fonts: %w", err)
	}
	pal, err := theme.Get(s.cfg.Theme)
	if err != nil {
		log.Warn("falling back to default theme", "theme", s.cfg.Theme, "err", err)
		pal, _ = theme.Get(theme.DefaultTheme)
	}
	images := rich.NewImageCache(64)
	doc, err := BuildDocument(mdSource, baseDir, s.lay, s.cfg, fonts, pal, images)
	if err != nil {
		return nil, fmt.Errorf("viewer: building document: %w", err)
	}
	return doc, nil
}

func (s *session) renderTile(idx int) (cache.TilePNGPair, error) {
	content, err := s.doc.RenderContentTile(idx)
	if err != nil {
		return cache.TilePNGPair{}, err
	}
	sidebar, err := s.doc.RenderSidebarTile(idx)
	if err != nil {
		return cache.TilePNGPair{}, err
	}
	return cache.TilePNGPair{Content: content, Sidebar: sidebar}, nil
}

func vpHeight(lay Layout, ppi float64) float64 {
	_, h := lay.VPDims(ppi)
	return h
}

// innerLoop polls for keyboard input, file-change notifications, and
// prefetch responses, applying Effects until an Exit Effect is produced.
func (s *session) innerLoop() (ExitReason, error) {
	keyCh := make(chan Key, 1)
	keyErrCh := make(chan error, 1)
	go func() {
		for {
			k, err := s.keys.ReadKey()
			if err != nil {
				keyErrCh <- err
				return
			}
			keyCh <- k
		}
	}()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)

	dirty := true
	for {
		if dirty {
			s.redraw()
			dirty = false
		}

		current := s.doc.TileForOffset(s.state.YOffsetPt)
		s.prefetcher.Drain(current)
		s.prefetcher.Dispatch(current, len(s.doc.Tiles))

		// While a prefetch is outstanding, poll at frame_budget so its
		// response gets drained promptly; otherwise there is nothing to
		// redraw until a keystroke or file change arrives, so wait as long
		// as the configured watch interval allows (or near-indefinitely
		// with no watcher at all).
		var timeout time.Duration
		switch {
		case s.prefetcher.Pending() > 0:
			timeout = s.cfg.Viewer.FrameBudget
		case s.watcher != nil:
			timeout = s.cfg.Viewer.WatchInterval
		default:
			timeout = 24 * time.Hour
		}

		select {
		case k := <-keyCh:
			effects := s.dispatch(k)
			for _, e := range effects {
				if reason, exit := s.apply(e); exit {
					return reason, nil
				}
			}
			dirty = true

		case err := <-keyErrCh:
			return ExitReason{}, fmt.Errorf("viewer: reading input: %w", err)

		case <-winch:
			cols, rows, _, _, err := termSize(int(s.guard.TTY().Fd()))
			if err != nil {
				dirty = true
				continue
			}
			return ExitReason{Kind: ExitResize, NewCols: cols, NewRows: rows}, nil

		case <-time.After(timeout):
			if s.watcher != nil && s.watcher.HasChanged() {
				return ExitReason{Kind: ExitReload}, nil
			}
			dirty = true
		}
	}
}

func (s *session) dispatch(k Key) []Effect {
	switch s.mode {
	case ModeNormal:
		a := MapKey(k, &s.acc)
		return Handle(a, NormalCtx{
			VisualLines: s.doc.VisualLines,
			MDSource:    s.doc.MDSource,
			YOffsetPt:   s.state.YOffsetPt,
			MaxScrollPt: MaxScroll(s.doc.TotalHeightPt(), vpHeight(s.lay, s.cfg.PPI)),
			ScrollStep:  float64(s.cfg.Viewer.ScrollStep) * 14.4,
			HalfPagePt:  vpHeight(s.lay, s.cfg.PPI) / 2,
			LastSearch:  s.last,
		})
	case ModeSearch:
		return HandleSearchKey(MapSearchKey(k), &s.search, s.doc.MDSource, s.doc.VisualLines)
	case ModeCommand:
		return HandleCommandKey(MapCommandKey(k), &s.command)
	case ModeURLPicker:
		if s.urlPick.Entries == nil {
			s.urlPick.Entries = CollectAllURLEntries(s.doc.MDSource, s.doc.VisualLines)
		}
		return HandleURLKey(MapURLKey(k), &s.urlPick)
	}
	return nil
}

// apply applies one Effect to session state, returning (reason, true) if
// the Effect was an Exit.
func (s *session) apply(e Effect) (ExitReason, bool) {
	switch eff := e.(type) {
	case EffectScrollTo:
		s.state.YOffsetPt = clamp(eff.YPt, 0, MaxScroll(s.doc.TotalHeightPt(), vpHeight(s.lay, s.cfg.PPI)))
	case EffectMarkDirty:
	case EffectFlash:
		s.flash = eff.Message
	case EffectRedrawStatusBar:
	case EffectYank:
		if err := Yank(s.out, eff.Text); err != nil {
			s.flash = fmt.Sprintf("Yank failed: %v", err)
		}
	case EffectSetMode:
		s.mode = eff.Mode
		if eff.Mode == ModeSearch {
			s.search = SearchState{}
		}
		if eff.Mode == ModeCommand {
			s.command = CommandState{}
		}
		if eff.Mode == ModeURLPicker {
			s.urlPick = URLPickerState{}
		}
	case EffectSetLastSearch:
		ls := eff.LastSearch
		s.last = &ls
	case EffectDeletePlacements:
		DeleteAllImages(s.out)
		s.tileIDs.Clear()
	case EffectOpenURL:
		openInBrowser(eff.URL)
	case EffectRedrawURLPicker:
	case EffectExit:
		return eff.Reason, true
	}
	return ExitReason{}, false
}

// redraw re-renders every tile the viewport currently spans (synchronously,
// on a cache miss), cropping each to the slice under the current scroll
// offset and placing it plus the sidebar, deleting any placements that have
// scrolled out of the eviction radius.
func (s *session) redraw() {
	current := s.doc.TileForOffset(s.state.YOffsetPt)
	slices := s.doc.VisibleSlices(s.state.YOffsetPt, s.lay, s.cfg.PPI)

	for _, id := range s.tileIDs.EvictDistant(current, s.cfg.Viewer.EvictDistance) {
		DeleteImage(s.out, id)
	}

	for _, sl := range slices {
		pair, err := s.prefetcher.Get(sl.TileIndex, current, s.renderTile)
		if err != nil {
			s.flash = fmt.Sprintf("Render failed: %v", err)
			return
		}

		contentID, isNew := s.tileIDs.ContentID(sl.TileIndex)
		if isNew {
			SendImage(s.out, contentID, pair.Content)
		}
		sidebarID, isNew := s.tileIDs.SidebarID(sl.TileIndex)
		if isNew {
			SendImage(s.out, sidebarID, pair.Sidebar)
		}

		PlaceTile(s.out, sidebarID, 0, sl.DestRow, s.lay.SidebarCols, sl.DestRows, 0, sl.SrcYPx, s.doc.SidebarWidthPx, sl.SrcHPx)
		PlaceTile(s.out, contentID, s.lay.ImageCol, sl.DestRow, s.lay.ImageCols, sl.DestRows, 0, sl.SrcYPx, s.doc.WidthPx, sl.SrcHPx)
	}

	scrollPct := 0
	if max := MaxScroll(s.doc.TotalHeightPt(), vpHeight(s.lay, s.cfg.PPI)); max > 0 {
		scrollPct = int(s.state.YOffsetPt / max * 100)
	}

	switch s.mode {
	case ModeSearch:
		drawSearchScreen(s.out, s.lay, &s.search)
	case ModeCommand:
		DrawCommandBar(s.out, s.lay, ":", s.command.Input)
	case ModeURLPicker:
		drawURLScreen(s.out, s.lay, &s.urlPick)
	default:
		pending := int(s.acc.Peek())
		if !s.acc.IsActive() {
			pending = 0
		}
		DrawStatusBar(s.out, s.lay, s.state.Filename, s.flash, pending, scrollPct)
		s.flash = ""
	}
}
