package viewer

import (
	"fmt"
	"io"
)

// drawSearchScreen renders the full-screen search overlay: row 0 is the
// "/query_" prompt, the middle rows list matches (selected row
// highlighted), and the bottom row shows the match count or an invalid-
// pattern warning.
func drawSearchScreen(w io.Writer, lay Layout, s *SearchState) {
	fmt.Fprintf(w, "\x1b[1;1H\x1b[2K/%s_", s.Query)

	listRows := lay.StatusRow - 1
	for i := 0; i < listRows; i++ {
		row := i + 2
		fmt.Fprintf(w, "\x1b[%d;1H\x1b[2K", row)
		idx := s.ScrollOffset + i
		if idx >= len(s.Matches) {
			continue
		}
		m := s.Matches[idx]
		prefix := "  "
		if idx == s.Selected {
			prefix = "> "
		}
		fmt.Fprintf(w, "%sL%-5d %s", prefix, m.MDLine, m.Context)
	}

	fmt.Fprintf(w, "\x1b[%d;1H\x1b[2K", lay.StatusRow+1)
	switch {
	case !s.PatternValid:
		fmt.Fprint(w, "invalid pattern")
	case len(s.Matches) == 0:
		fmt.Fprint(w, "no matches")
	default:
		fmt.Fprintf(w, "%d matches  Enter confirm  Esc cancel", len(s.Matches))
	}
}

// drawURLScreen renders the full-screen URL picker: a header row, the
// list of discovered URLs, and a status row with key hints.
func drawURLScreen(w io.Writer, lay Layout, s *URLPickerState) {
	fmt.Fprint(w, "\x1b[1;1H\x1b[2K URLs:")

	listRows := lay.StatusRow - 1
	for i := 0; i < listRows; i++ {
		row := i + 2
		fmt.Fprintf(w, "\x1b[%d;1H\x1b[2K", row)
		idx := s.ScrollOffset + i
		if idx >= len(s.Entries) {
			continue
		}
		e := s.Entries[idx]
		prefix := "  "
		if idx == s.Selected {
			prefix = "> "
		}
		fmt.Fprintf(w, "%s%s", prefix, FormatURLEntryLine(e))
	}

	fmt.Fprintf(w, "\x1b[%d;1H\x1b[2K", lay.StatusRow+1)
	fmt.Fprintf(w, "%d URLs  j/k select  Enter open  Esc cancel", len(s.Entries))
}
