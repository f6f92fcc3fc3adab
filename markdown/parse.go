package markdown

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/saka1/mlux/rich"
)

// maxBlockquoteDepth bounds how deeply blockquotes nest before content is
// inlined at the cap instead of wrapped further, keeping pathological input
// (a dozen ">" markers) from growing the emitted structure without bound.
const maxBlockquoteDepth = 10

// Parse translates Markdown source into styled rich.Content and a SourceMap
// tying each rendered block back to the Markdown source lines it came from.
//
// baseDir resolves relative embedded-image paths. images is the decode
// cache consulted (and populated) for ![alt](path) images; pass nil to skip
// image loading entirely and render every image as its alt text.
func Parse(mdSource, baseDir string, images *rich.ImageCache) (rich.Content, *SourceMap) {
	source := []byte(mdSource)
	doc := goldmark.DefaultParser().Parse(gmtext.NewReader(source))

	p := &translator{
		source:  source,
		baseDir: baseDir,
		images:  images,
		sm:      NewSourceMap(),
	}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		p.block(n, 0)
	}
	return p.content, p.sm
}

type translator struct {
	source  []byte
	baseDir string
	images  *rich.ImageCache
	sm      *SourceMap
	content rich.Content
	pos     int // byte length of rendered content emitted so far
}

func (p *translator) emit(s string, style rich.Style) {
	if s == "" {
		return
	}
	p.content = append(p.content, rich.Span{Text: s, Style: style})
	p.pos += len(s)
}

func (p *translator) emitImage(alt string, style rich.Style, img *rich.CachedImage) {
	p.content = append(p.content, rich.Span{Text: alt, Style: style, Image: img})
	p.pos += len(alt)
}

func (p *translator) newline() {
	p.emit("\n", rich.DefaultStyle())
}

// linesOwner is satisfied by every block node: ast.BaseBlock tracks the raw
// source lines a block was built from, regardless of its concrete type.
type linesOwner interface {
	Lines() *gmtext.Segments
}

// blockRange returns the Markdown source byte range a block's raw lines
// span. For fenced/indented code blocks this is the content lines only,
// excluding the fence delimiters.
func blockRange(n ast.Node) (start, end int, ok bool) {
	lo, isBlock := n.(linesOwner)
	if !isBlock {
		return 0, 0, false
	}
	lines := lo.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0, 0, false
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	return first.Start, last.Stop, true
}

func headingStyle(level int) rich.Style {
	switch level {
	case 1:
		return rich.StyleH1
	case 2:
		return rich.StyleH2
	case 3:
		return rich.StyleH3
	default:
		return rich.Style{Bold: true, Scale: 1.1}
	}
}

func (p *translator) block(n ast.Node, indent int) {
	switch node := n.(type) {
	case *ast.Heading:
		start := p.pos
		p.inline(node, headingStyle(node.Level))
		p.newline()
		if s, e, ok := blockRange(node); ok {
			p.sm.Add(start, p.pos, s, e)
		}
		p.newline()

	case *ast.Paragraph:
		start := p.pos
		p.inline(node, rich.DefaultStyle())
		p.newline()
		if s, e, ok := blockRange(node); ok {
			p.sm.Add(start, p.pos, s, e)
		}
		p.newline()

	case *ast.TextBlock:
		start := p.pos
		p.inline(node, rich.DefaultStyle())
		p.newline()
		if s, e, ok := blockRange(node); ok {
			p.sm.Add(start, p.pos, s, e)
		}

	case *ast.FencedCodeBlock:
		p.codeBlock(node)
	case *ast.CodeBlock:
		p.codeBlock(node)

	case *ast.Blockquote:
		// Nesting is capped at maxBlockquoteDepth: quotes past the cap are
		// inlined at the cap's depth instead of growing indent further, so
		// an arbitrarily deep quote still produces a bounded amount of
		// wrapping.
		next := indent + 1
		if next > maxBlockquoteDepth {
			next = maxBlockquoteDepth
		}
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			p.block(c, next)
		}

	case *ast.List:
		p.list(node, indent)

	case *ast.ThematicBreak:
		start := p.pos
		p.emit(strings.Repeat("─", 40), rich.DefaultStyle())
		p.newline()
		if s, e, ok := blockRange(node); ok {
			p.sm.Add(start, p.pos, s, e)
		}
		p.newline()

	case *ast.HTMLBlock:
		// Raw HTML has no terminal rendering; dropped rather than shown verbatim.

	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			p.block(c, indent)
		}
	}
}

func (p *translator) codeBlock(n ast.Node) {
	lo, ok := n.(linesOwner)
	if !ok {
		return
	}
	lines := lo.Lines()
	if lines == nil {
		return
	}

	start := p.pos
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(p.source))
	}

	style := rich.StyleCode
	style.Block = true
	p.emit(buf.String(), style)

	if s, e, blockOK := blockRange(n); blockOK {
		p.sm.AddCode(start, p.pos, s, e)
	}
	p.newline()
}

func (p *translator) list(n *ast.List, indent int) {
	ordered := n.IsOrdered()
	num := n.Start
	prefix := strings.Repeat("  ", indent)

	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		li, isItem := item.(*ast.ListItem)
		if !isItem {
			continue
		}
		marker := "• "
		if ordered {
			marker = strconv.Itoa(num) + ". "
			num++
		}

		start := p.pos
		p.emit(prefix+marker, rich.DefaultStyle())
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			p.block(c, indent+1)
		}
		if s, e, ok := blockRange(li); ok {
			p.sm.Add(start, p.pos, s, e)
		}
	}
}

// inline walks the inline children of a leaf block, applying base as the
// style for plain text and layering emphasis/code/link styling for the
// corresponding inline node kinds.
func (p *translator) inline(n ast.Node, base rich.Style) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			p.emit(string(node.Segment.Value(p.source)), base)
			if node.HardLineBreak() {
				p.newline()
			} else if node.SoftLineBreak() {
				p.emit(" ", base)
			}

		case *ast.Emphasis:
			style := base
			if node.Level >= 2 {
				style.Bold = true
			} else {
				style.Italic = true
			}
			p.inline(node, style)

		case *ast.CodeSpan:
			style := base
			style.Code = true
			style.Bg = rich.InlineCodeBg
			var buf bytes.Buffer
			for cc := node.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if t, ok := cc.(*ast.Text); ok {
					buf.Write(t.Segment.Value(p.source))
				}
			}
			p.emit(buf.String(), style)

		case *ast.Link:
			style := base
			style.Link = true
			style.Fg = rich.LinkBlue
			p.inline(node, style)

		case *ast.AutoLink:
			style := base
			style.Link = true
			style.Fg = rich.LinkBlue
			p.emit(string(node.URL(p.source)), style)

		case *ast.Image:
			p.image(node, base)

		case *ast.RawHTML:
			// Raw inline HTML has no terminal rendering.

		default:
			p.inline(c, base)
		}
	}
}

func (p *translator) image(n *ast.Image, base rich.Style) {
	var altBuf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			altBuf.Write(t.Segment.Value(p.source))
		}
	}
	alt := altBuf.String()
	dest := string(n.Destination)

	// Remote images aren't fetched during translation; the alt text is
	// rendered in place, matching the no-network-fetch scope of the
	// embedded-image cache.
	if p.images == nil || strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://") {
		p.emit(alt, base)
		return
	}

	path := dest
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.baseDir, path)
	}
	img, err := p.images.Load(path)
	if err != nil {
		p.emit(alt, base)
		return
	}

	style := base
	style.Image = true
	p.emitImage(alt, style, img)
}
