package viewer

import (
	"fmt"

	"github.com/saka1/mlux/layout"
	"github.com/saka1/mlux/markdown"
)

// URLPickerEntry is one URL found in the document, tagged with the
// 1-based visual-line index it appeared on, shown in its picker row.
type URLPickerEntry struct {
	URL         string
	Text        string
	VisualLine  int
}

// URLPickerState is the live state of the "O"/"f" URL picker: every URL in
// the document, and the current selection. The picker lists every URL in
// the document also when "No" opens it for a line with several URLs.
type URLPickerState struct {
	Entries      []URLPickerEntry
	Selected     int
	ScrollOffset int
}

// CollectAllURLEntries scans every visual line's resolved Markdown range,
// extracting URLs once per distinct range (a wrapped paragraph spans many
// visual lines but has one source range, and should not be scanned once
// per wrapped line).
func CollectAllURLEntries(mdSource string, visualLines []layout.VisualLine) []URLPickerEntry {
	seen := make(map[[2]int]bool)
	var out []URLPickerEntry
	for i, vl := range visualLines {
		if vl.MDRange == nil {
			continue
		}
		key := [2]int{vl.MDRange.Start, vl.MDRange.End}
		if seen[key] {
			continue
		}
		seen[key] = true

		for _, u := range markdown.ExtractURLsFromLines(mdSource, vl.MDRange.Start, vl.MDRange.End) {
			out = append(out, URLPickerEntry{URL: u.URL, Text: u.Text, VisualLine: i + 1})
		}
	}
	return out
}

// CollectLineURLEntries returns just the URLs on a single visual line,
// used by "No" to find the URLs on line N.
func CollectLineURLEntries(mdSource string, vl layout.VisualLine, visualLineIdx int) []URLPickerEntry {
	if vl.MDRange == nil {
		return nil
	}
	var out []URLPickerEntry
	for _, u := range markdown.ExtractURLsFromLines(mdSource, vl.MDRange.Start, vl.MDRange.End) {
		out = append(out, URLPickerEntry{URL: u.URL, Text: u.Text, VisualLine: visualLineIdx + 1})
	}
	return out
}

// FormatURLEntryLine renders one picker row: "L{line} [{text}] {url}",
// with the line number left-aligned in five columns. The selection marker
// in front of the row is added by drawURLScreen.
func FormatURLEntryLine(e URLPickerEntry) string {
	return fmt.Sprintf("L%-5d [%s] %s", e.VisualLine, e.Text, e.URL)
}

// HandleURLKey applies one URL-picker-mode key.
func HandleURLKey(a URLAction, state *URLPickerState) []Effect {
	switch a.Kind {
	case URLSelectNext:
		if len(state.Entries) > 0 {
			state.Selected = (state.Selected + 1) % len(state.Entries)
		}
		return []Effect{EffectRedrawURLPicker{}}

	case URLSelectPrev:
		if len(state.Entries) > 0 {
			state.Selected = (state.Selected - 1 + len(state.Entries)) % len(state.Entries)
		}
		return []Effect{EffectRedrawURLPicker{}}

	case URLConfirm:
		if len(state.Entries) == 0 {
			return []Effect{EffectSetMode{Mode: ModeNormal}, EffectMarkDirty{}}
		}
		url := state.Entries[state.Selected].URL
		return []Effect{
			EffectOpenURL{URL: url},
			EffectFlash{Message: "Opened " + url},
			EffectSetMode{Mode: ModeNormal},
		}

	case URLCancel:
		return []Effect{EffectSetMode{Mode: ModeNormal}, EffectMarkDirty{}}
	}
	return nil
}
