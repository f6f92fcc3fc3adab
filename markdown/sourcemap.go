package markdown

import "strings"

// LineRange is a 1-based, inclusive range of Markdown source lines.
type LineRange struct {
	Start, End int
}

// SourceMapEntry ties a byte range in the rendered content stream back to
// the byte range of the Markdown source block that produced it.
type SourceMapEntry struct {
	RenderedStart, RenderedEnd int
	SourceStart, SourceEnd     int
	// IsCode marks a block whose rendered text is a byte-for-byte copy of
	// its Markdown source (a fenced or indented code block), which is what
	// makes the newline-counting exact-line heuristic below valid.
	IsCode bool
}

// SourceMap records, for each block the translator emitted, which byte
// range of the rendered content corresponds to which byte range of the
// original Markdown source. It is built block-by-block during parsing and
// queried afterwards by byte offset into the rendered stream, not by rune
// position — a rendered line can be produced by a block spanning several
// Markdown source lines (a wrapped paragraph, a fenced code block), and the
// caller only ever has a byte offset into what was rendered.
type SourceMap struct {
	entries []SourceMapEntry
}

// NewSourceMap returns an empty source map.
func NewSourceMap() *SourceMap {
	return &SourceMap{}
}

// Add records that the rendered byte range [renderedStart, renderedEnd) came
// from the Markdown source byte range [sourceStart, sourceEnd). Entries must
// be added in increasing RenderedStart order; blocks are emitted in source
// order during parsing, so this holds without extra sorting.
func (sm *SourceMap) Add(renderedStart, renderedEnd, sourceStart, sourceEnd int) {
	sm.add(renderedStart, renderedEnd, sourceStart, sourceEnd, false)
}

// AddCode is like Add, but marks the block as a code block for the purposes
// of ResolveMDLineRange's exact-line computation.
func (sm *SourceMap) AddCode(renderedStart, renderedEnd, sourceStart, sourceEnd int) {
	sm.add(renderedStart, renderedEnd, sourceStart, sourceEnd, true)
}

func (sm *SourceMap) add(renderedStart, renderedEnd, sourceStart, sourceEnd int, isCode bool) {
	sm.entries = append(sm.entries, SourceMapEntry{
		RenderedStart: renderedStart,
		RenderedEnd:   renderedEnd,
		SourceStart:   sourceStart,
		SourceEnd:     sourceEnd,
		IsCode:        isCode,
	})
}

// Len returns the number of recorded blocks.
func (sm *SourceMap) Len() int {
	return len(sm.entries)
}

// Entries returns every recorded block mapping, in source order, for
// callers (such as `mlux render --dump`) that want to inspect the map
// directly rather than resolve a single offset.
func (sm *SourceMap) Entries() []SourceMapEntry {
	return sm.entries
}

// find returns the entry whose rendered range contains offset.
func (sm *SourceMap) find(offset int) (SourceMapEntry, bool) {
	// Linear scan: documents have at most a few thousand blocks, and this is
	// called once per visual line during layout, not per byte.
	for _, e := range sm.entries {
		if offset >= e.RenderedStart && offset < e.RenderedEnd {
			return e, true
		}
	}
	return SourceMapEntry{}, false
}

// MDLineInfo is the result of resolving a rendered byte offset to Markdown
// source line information.
type MDLineInfo struct {
	Range LineRange
	// Exact is the precise 1-based source line the offset falls on. It is
	// set inside a fenced code block, and inside any other block whose
	// rendered text and source span hold the same number of newlines; it is
	// zero otherwise.
	Exact int
}

// ResolveMDLineRange maps a byte offset in the rendered content stream back
// to the Markdown source line range that produced it, via the block the
// offset falls in.
//
// For fenced code blocks, it also computes the single exact source line the
// offset lands on, by counting newlines in the rendered text between the
// start of the block and the offset: code block content is copied into the
// rendered stream byte-for-byte, so newline counts between source and
// rendered text agree within the block. Other blocks get the same count
// only when their rendered text and source span hold equal numbers of
// newlines; otherwise Exact stays zero.
func (sm *SourceMap) ResolveMDLineRange(mdSource, renderedText string, renderedOffset int) (MDLineInfo, bool) {
	block, ok := sm.find(renderedOffset)
	if !ok {
		return MDLineInfo{}, false
	}

	startLine := byteOffsetToLine(mdSource, block.SourceStart)
	endOffset := block.SourceEnd - 1
	if endOffset < block.SourceStart {
		endOffset = block.SourceStart
	}
	endLine := byteOffsetToLine(mdSource, endOffset)

	info := MDLineInfo{Range: LineRange{Start: startLine, End: endLine}}

	if block.IsCode {
		// block.SourceStart/SourceEnd span only the code block's content
		// lines (not its fence delimiters), so startLine is already the
		// first content line: the exact line is just startLine plus the
		// newline count up to the offset within the rendered copy.
		localOffset := renderedOffset - block.RenderedStart
		renderedBlockText := sliceClamped(renderedText, block.RenderedStart, block.RenderedEnd)
		if localOffset > len(renderedBlockText) {
			localOffset = len(renderedBlockText)
		}
		if localOffset < 0 {
			localOffset = 0
		}
		newlinesBefore := strings.Count(renderedBlockText[:localOffset], "\n")
		exact := startLine + newlinesBefore
		if exact > endLine {
			exact = endLine
		}
		if exact < startLine {
			exact = startLine
		}
		info.Exact = exact
	} else {
		// Non-code blocks aren't a byte-for-byte copy in general (a wrapped
		// paragraph's rendered newlines come from the word-wrapper, not the
		// source), so newline counts only agree by coincidence -- but when
		// they do (an unwrapped one-line-per-source-line block: a tight
		// list, a blockquote, a heading), that agreement is exactly the
		// signal that rendered-text newline counting still lines up with
		// the source, and the same count-newlines-before-offset computation
		// used for code blocks applies.
		mdBlockText := sliceClamped(mdSource, block.SourceStart, block.SourceEnd)
		renderedBlockText := sliceClamped(renderedText, block.RenderedStart, block.RenderedEnd)
		if strings.Count(mdBlockText, "\n") == strings.Count(renderedBlockText, "\n") {
			localOffset := renderedOffset - block.RenderedStart
			if localOffset > len(renderedBlockText) {
				localOffset = len(renderedBlockText)
			}
			if localOffset < 0 {
				localOffset = 0
			}
			newlinesBefore := strings.Count(renderedBlockText[:localOffset], "\n")
			exact := startLine + newlinesBefore
			if exact > endLine {
				exact = endLine
			}
			if exact < startLine {
				exact = startLine
			}
			info.Exact = exact
		}
	}

	return info, true
}

// byteOffsetToLine converts a byte offset within source to a 1-based line
// number by counting newlines strictly before it.
func byteOffsetToLine(source string, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	return strings.Count(source[:offset], "\n") + 1
}

func sliceClamped(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end || start > len(s) {
		return ""
	}
	return s[start:end]
}
