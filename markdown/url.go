package markdown

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// bareURLPattern matches http(s):// URLs in plain prose, stripping common
// trailing punctuation that is usually part of the surrounding sentence
// rather than the URL itself.
var bareURLPattern = regexp.MustCompile(`https?://[^\s<>)\]}]+[^\s<>)\]}.,:;!?'"-]`)

// ExtractBareURLs finds http:// and https:// URLs in plain text that are not
// part of Markdown link syntax.
func ExtractBareURLs(text string) []string {
	return bareURLPattern.FindAllString(text, -1)
}

// URLEntry is a single hyperlink found in a Markdown source line, either an
// explicit [text](url) link or a bare URL.
type URLEntry struct {
	URL  string
	Text string
}

// ExtractURLsFromLines extracts every URL found in the 1-based, inclusive
// line range [start, end] of mdSource. Markdown [text](url) links are found
// first; bare URLs are then extracted from the remaining plain text and
// deduplicated against URLs already found as explicit links.
func ExtractURLsFromLines(mdSource string, start, end int) []URLEntry {
	lines := strings.Split(mdSource, "\n")
	startIdx := start - 1
	if startIdx < 0 {
		startIdx = 0
	}
	endIdx := end
	if endIdx > len(lines) {
		endIdx = len(lines)
	}
	if startIdx >= len(lines) {
		return nil
	}
	block := []byte(strings.Join(lines[startIdx:endIdx], "\n"))

	var entries []URLEntry
	var plainTexts []string

	doc := goldmark.DefaultParser().Parse(text.NewReader(block))
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		dest := string(link.Destination)
		if dest == "" {
			return ast.WalkSkipChildren, nil
		}
		var sb strings.Builder
		collectText(link, block, &sb)
		entries = append(entries, URLEntry{URL: dest, Text: sb.String()})
		return ast.WalkSkipChildren, nil
	})

	// Walk again, this time collecting plain-text runs that are not inside a
	// link, for bare URL extraction.
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*ast.Link); ok {
			return ast.WalkSkipChildren, nil
		}
		if t, ok := n.(*ast.Text); ok {
			plainTexts = append(plainTexts, string(t.Segment.Value(block)))
		}
		return ast.WalkContinue, nil
	})

	for _, t := range plainTexts {
		for _, bare := range ExtractBareURLs(t) {
			if containsURL(entries, bare) {
				continue
			}
			entries = append(entries, URLEntry{URL: bare, Text: bare})
		}
	}

	return entries
}

func containsURL(entries []URLEntry, url string) bool {
	for _, e := range entries {
		if e.URL == url {
			return true
		}
	}
	return false
}

func collectText(n ast.Node, source []byte, sb *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.CodeSpan:
			collectText(t, source, sb)
		default:
			collectText(c, source, sb)
		}
	}
}
