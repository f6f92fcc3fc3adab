package viewer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/saka1/mlux/layout"
)

// SearchMatch is one regex hit: the Markdown line it landed on, the
// visual line that line maps to, a short context snippet, and the
// matched substring's column range within that snippet.
type SearchMatch struct {
	MDLine        int
	VisualLineIdx int
	Context       string
	ColStart      int
	ColEnd        int
}

// SearchState is the live state of an in-progress "/" search: the typed
// query, its current matches, and the selected match's scroll position.
type SearchState struct {
	Query        string
	Matches      []SearchMatch
	Selected     int
	ScrollOffset int
	PatternValid bool
}

// LastSearch is a confirmed search's matches, kept so "n"/"N" can step
// through them after the search bar has closed.
type LastSearch struct {
	Matches    []SearchMatch
	CurrentIdx int
}

// AdvanceNext moves to the next match, wrapping to the first.
func (ls *LastSearch) AdvanceNext() {
	if len(ls.Matches) == 0 {
		return
	}
	ls.CurrentIdx = (ls.CurrentIdx + 1) % len(ls.Matches)
}

// AdvancePrev moves to the previous match, wrapping to the last.
func (ls *LastSearch) AdvancePrev() {
	if len(ls.Matches) == 0 {
		return
	}
	ls.CurrentIdx = (ls.CurrentIdx - 1 + len(ls.Matches)) % len(ls.Matches)
}

// CurrentVisualLineIdx returns the visual-line index of the currently
// selected match, or -1 if there are no matches.
func (ls *LastSearch) CurrentVisualLineIdx() int {
	if len(ls.Matches) == 0 {
		return -1
	}
	return ls.Matches[ls.CurrentIdx].VisualLineIdx
}

const searchContextLen = 60

// GrepMarkdown searches mdSource's lines (via their resolved visual-line
// mapping) for query, smartcase: an all-lowercase query is
// case-insensitive, any uppercase letter makes it case-sensitive. An
// empty query or an invalid regex yields no matches; patternValid
// distinguishes the two so the UI can say "invalid pattern" rather than
// just showing zero results.
func GrepMarkdown(query string, mdSource string, visualLines []layout.VisualLine) ([]SearchMatch, bool) {
	if query == "" {
		return nil, true
	}
	pattern := query
	if query == strings.ToLower(query) {
		pattern = "(?i)" + query
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false
	}

	srcLines := strings.Split(mdSource, "\n")
	var matches []SearchMatch
	for idx, vl := range visualLines {
		line := findMDLine(vl)
		if line == 0 || line > len(srcLines) {
			continue
		}
		text := srcLines[line-1]
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		matches = append(matches, SearchMatch{
			MDLine:        line,
			VisualLineIdx: idx,
			Context:       truncateStr(text, searchContextLen),
			ColStart:      loc[0],
			ColEnd:        loc[1],
		})
	}
	return matches, true
}

func findMDLine(vl layout.VisualLine) int {
	if vl.MDExact != nil {
		return *vl.MDExact
	}
	if vl.MDRange != nil {
		return vl.MDRange.Start
	}
	return 0
}

// FindVisualLine returns the first visual line index whose resolved
// source range contains mdLine.
func FindVisualLine(visualLines []layout.VisualLine, mdLine int) (int, bool) {
	for i, vl := range visualLines {
		if vl.MDExact != nil && *vl.MDExact == mdLine {
			return i, true
		}
		if vl.MDRange != nil && mdLine >= vl.MDRange.Start && mdLine <= vl.MDRange.End {
			return i, true
		}
	}
	return 0, false
}

// truncateStr truncates s to at most max bytes without splitting a UTF-8
// rune in half.
func truncateStr(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// HandleSearchKey applies one Search-mode key to state, re-running the
// grep on every keystroke and returning the Effects to apply.
func HandleSearchKey(a SearchAction, state *SearchState, mdSource string, visualLines []layout.VisualLine) []Effect {
	switch a.Kind {
	case SearchType:
		if a.Rune != 0 {
			state.Query += string(a.Rune)
		}
		state.regrep(mdSource, visualLines)
		return []Effect{EffectMarkDirty{}}

	case SearchBackspace:
		if len(state.Query) > 0 {
			r := []rune(state.Query)
			state.Query = string(r[:len(r)-1])
		}
		state.regrep(mdSource, visualLines)
		return []Effect{EffectMarkDirty{}}

	case SearchSelectNext:
		if len(state.Matches) > 0 {
			state.Selected = (state.Selected + 1) % len(state.Matches)
		}
		return []Effect{EffectMarkDirty{}}

	case SearchSelectPrev:
		if len(state.Matches) > 0 {
			state.Selected = (state.Selected - 1 + len(state.Matches)) % len(state.Matches)
		}
		return []Effect{EffectMarkDirty{}}

	case SearchConfirm:
		if len(state.Matches) == 0 {
			return []Effect{EffectSetMode{Mode: ModeNormal}, EffectMarkDirty{}}
		}
		ls := LastSearch{Matches: state.Matches, CurrentIdx: state.Selected}
		y := VisualLineOffset(visualLines, ls.CurrentVisualLineIdx())
		return []Effect{
			EffectSetLastSearch{LastSearch: ls},
			EffectScrollTo{YPt: y},
			EffectFlash{Message: searchConfirmFlash(len(state.Matches))},
			EffectSetMode{Mode: ModeNormal},
		}

	case SearchCancel:
		return []Effect{EffectSetMode{Mode: ModeNormal}, EffectMarkDirty{}}
	}
	return nil
}

func searchConfirmFlash(n int) string {
	if n == 1 {
		return "1 match"
	}
	return strconv.Itoa(n) + " matches"
}

func (s *SearchState) regrep(mdSource string, visualLines []layout.VisualLine) {
	matches, valid := GrepMarkdown(s.Query, mdSource, visualLines)
	s.Matches = matches
	s.PatternValid = valid
	s.Selected = 0
	s.ScrollOffset = 0
}
