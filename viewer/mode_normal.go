package viewer

import (
	"strconv"

	"github.com/saka1/mlux/layout"
	"github.com/saka1/mlux/markdown"
)

// NormalCtx is everything Handle needs to turn a Normal-mode Action into
// Effects: the document's visual-line list and Markdown source for
// jump/yank/search, and the current viewport's scroll geometry.
type NormalCtx struct {
	VisualLines []layout.VisualLine
	MDSource    string
	YOffsetPt   float64
	MaxScrollPt float64
	ScrollStep  float64 // points per visual-line scroll step
	HalfPagePt  float64
	LastSearch  *LastSearch
}

// Handle turns one decoded Normal-mode Action into the Effects the outer
// loop should apply.
func Handle(a Action, ctx NormalCtx) []Effect {
	switch a.Kind {
	case ActionQuit:
		return []Effect{EffectExit{Reason: ExitReason{Kind: ExitQuit}}}

	case ActionScrollDown:
		return scrollBy(ctx, float64(a.Count)*ctx.ScrollStep)
	case ActionScrollUp:
		return scrollBy(ctx, -float64(a.Count)*ctx.ScrollStep)
	case ActionHalfPageDown:
		return scrollBy(ctx, float64(a.Count)*ctx.HalfPagePt)
	case ActionHalfPageUp:
		return scrollBy(ctx, -float64(a.Count)*ctx.HalfPagePt)

	case ActionJumpToTop:
		return []Effect{EffectScrollTo{YPt: 0}}
	case ActionJumpToBottom:
		return []Effect{EffectScrollTo{YPt: ctx.MaxScrollPt}}

	case ActionJumpToLine:
		idx, ok := FindVisualLine(ctx.VisualLines, int(a.Count))
		if !ok {
			return []Effect{EffectFlash{Message: "No such line: " + strconv.Itoa(int(a.Count))}}
		}
		return []Effect{EffectScrollTo{YPt: clamp(VisualLineOffset(ctx.VisualLines, idx), 0, ctx.MaxScrollPt)}}

	case ActionYankExactPrompt:
		return []Effect{EffectFlash{Message: "Type Ny to yank line N"}}
	case ActionYankExact:
		return yankAndFlash(ctx, int(a.Count), int(a.Count), false)
	case ActionYankBlockPrompt:
		return []Effect{EffectFlash{Message: "Type NY to yank block N"}}
	case ActionYankBlock:
		idx, ok := FindVisualLine(ctx.VisualLines, int(a.Count))
		if !ok || ctx.VisualLines[idx].MDRange == nil {
			return []Effect{EffectFlash{Message: "Nothing to yank"}}
		}
		r := ctx.VisualLines[idx].MDRange
		return yankAndFlash(ctx, r.Start, r.End, true)

	case ActionEnterSearch:
		return []Effect{EffectSetMode{Mode: ModeSearch}, EffectMarkDirty{}}
	case ActionEnterCommand:
		return []Effect{EffectSetMode{Mode: ModeCommand}, EffectMarkDirty{}}
	case ActionEnterURLPicker:
		return []Effect{EffectSetMode{Mode: ModeURLPicker}, EffectMarkDirty{}}

	case ActionSearchNextMatch:
		return navigateSearch(ctx, true)
	case ActionSearchPrevMatch:
		return navigateSearch(ctx, false)

	case ActionOpenURLPrompt:
		return []Effect{EffectFlash{Message: "Type No to open URL on line N"}}
	case ActionOpenURL:
		return openURL(a, ctx)

	case ActionCancelInput, ActionDigit, ActionNone:
		return nil
	}
	return nil
}

func scrollBy(ctx NormalCtx, delta float64) []Effect {
	y := clamp(ctx.YOffsetPt+delta, 0, ctx.MaxScrollPt)
	return []Effect{EffectScrollTo{YPt: y}}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// currentLine returns the Markdown line at the top of the viewport.
func currentLine(ctx NormalCtx) int {
	idx := JumpToVisualLine(ctx.VisualLines, ctx.YOffsetPt)
	if idx < 0 || idx >= len(ctx.VisualLines) {
		return 0
	}
	return findMDLine(ctx.VisualLines[idx])
}

// yankAndFlash bounds-checks [start, end] against the document, extracts
// the Markdown text, and builds the flash message -- the logic shared by
// every exact-line and block yank variant.
func yankAndFlash(ctx NormalCtx, start, end int, block bool) []Effect {
	if start <= 0 || end < start {
		return []Effect{EffectFlash{Message: "Nothing to yank"}}
	}
	var text string
	var msg string
	if block {
		text = layout.YankRange(ctx.MDSource, markdown.LineRange{Start: start, End: end})
		if end == start {
			msg = "Yanked line " + strconv.Itoa(start)
		} else {
			msg = "Yanked lines " + strconv.Itoa(start) + "-" + strconv.Itoa(end)
		}
	} else {
		text = layout.YankExact(ctx.MDSource, start)
		msg = "Yanked line " + strconv.Itoa(start)
	}
	if text == "" {
		return []Effect{EffectFlash{Message: "Nothing to yank"}}
	}
	return []Effect{EffectYank{Text: text}, EffectFlash{Message: msg}}
}

func navigateSearch(ctx NormalCtx, next bool) []Effect {
	if ctx.LastSearch == nil || len(ctx.LastSearch.Matches) == 0 {
		return []Effect{EffectFlash{Message: "No previous search"}}
	}
	if next {
		ctx.LastSearch.AdvanceNext()
	} else {
		ctx.LastSearch.AdvancePrev()
	}
	y := clamp(VisualLineOffset(ctx.VisualLines, ctx.LastSearch.CurrentVisualLineIdx()), 0, ctx.MaxScrollPt)
	return []Effect{
		EffectSetLastSearch{LastSearch: *ctx.LastSearch},
		EffectScrollTo{YPt: y},
	}
}

func openURL(a Action, ctx NormalCtx) []Effect {
	idx, ok := FindVisualLine(ctx.VisualLines, int(a.Count))
	if !ok {
		return []Effect{EffectFlash{Message: "No URL on this line"}}
	}
	entries := CollectLineURLEntries(ctx.MDSource, ctx.VisualLines[idx], idx)
	if len(entries) == 0 {
		return []Effect{EffectFlash{Message: "No URL on this line"}}
	}
	if len(entries) == 1 {
		return []Effect{
			EffectOpenURL{URL: entries[0].URL},
			EffectFlash{Message: "Opened " + entries[0].URL},
		}
	}
	return []Effect{EffectSetMode{Mode: ModeURLPicker}, EffectMarkDirty{}}
}
