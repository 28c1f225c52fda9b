package view

import (
	"github.com/gdamore/tcell/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const helpMarkdown = `# kubedeck

A terminal dashboard that polls your cluster on a single shared timer.
Polling pauses while the terminal is unfocused and resumes with a fresh
refresh when focus returns.

## Keys

- ` + "`1`–`5`" + ` or ` + "`tab`" + ` switch tabs
- ` + "`j`/`k`" + ` or arrows move the cursor
- ` + "`r`" + ` refresh now
- ` + "`n`" + ` choose a namespace
- ` + "`d`" + ` or ` + "`enter`" + ` describe the selected resource
- ` + "`?`" + ` toggle this help
- ` + "`q`" + ` or ` + "`ctrl-c`" + ` quit

## Notes

Secret values are always redacted. The Overview tab scopes pod and
deployment counts to the namespace filter; nodes and namespaces are
always counted cluster-wide.
`

// HelpOverlay renders the built-in help text.
type HelpOverlay struct {
	lines [][]styledSpan
}

// NewHelpOverlay parses the help markdown into styled lines.
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{lines: renderMarkdown([]byte(helpMarkdown))}
}

func (o *HelpOverlay) HandleKey(ev *tcell.EventKey) bool {
	if ev == nil {
		return false
	}
	if ev.Key() == tcell.KeyEscape {
		return true
	}
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'q', '?':
			return true
		}
	}
	return false
}

func (o *HelpOverlay) Draw(s tcell.Screen, screen Rect) {
	r := overlayRect(screen)
	drawFrame(s, r, "Help")

	inner := r.Inset(1)
	for i, line := range o.lines {
		if i >= inner.Height {
			break
		}
		x := inner.X + 1
		limit := inner.X + inner.Width - 1
		for _, span := range line {
			if x >= limit {
				break
			}
			x += drawText(s, x, inner.Y+i, limit-x, span.text, span.style)
		}
	}
}

// renderMarkdown walks the goldmark AST and flattens it into styled
// terminal lines. Only the constructs the help text uses are handled.
func renderMarkdown(src []byte) [][]styledSpan {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var lines [][]styledSpan
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			style := styleTitle
			if n.Level > 1 {
				style = styleHeader
			}
			lines = append(lines, inlineSpans(n, src, style))
			lines = append(lines, nil)
		case *ast.Paragraph:
			lines = append(lines, inlineSpans(n, src, styleDefault))
			lines = append(lines, nil)
		case *ast.List:
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				spans := []styledSpan{{text: "• ", style: styleDim}}
				if tb := item.FirstChild(); tb != nil {
					spans = append(spans, inlineSpans(tb, src, styleDefault)...)
				}
				lines = append(lines, spans)
			}
			lines = append(lines, nil)
		}
	}
	return lines
}

// inlineSpans flattens a block node's inline children into spans,
// styling code spans and emphasis.
func inlineSpans(block ast.Node, src []byte, base tcell.Style) []styledSpan {
	var spans []styledSpan
	for child := block.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			spans = append(spans, styledSpan{text: string(n.Segment.Value(src)), style: base})
			if n.SoftLineBreak() || n.HardLineBreak() {
				spans = append(spans, styledSpan{text: " ", style: base})
			}
		case *ast.CodeSpan:
			spans = append(spans, styledSpan{text: string(n.Text(src)), style: styleGood})
		case *ast.Emphasis:
			style := base.Italic(true)
			if n.Level >= 2 {
				style = base.Bold(true)
			}
			spans = append(spans, styledSpan{text: string(n.Text(src)), style: style})
		default:
			spans = append(spans, styledSpan{text: string(child.Text(src)), style: base})
		}
	}
	return spans
}
