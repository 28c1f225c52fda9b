package view

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gdamore/tcell/v2"
)

// styledSpan is a run of text drawn with one style.
type styledSpan struct {
	text  string
	style tcell.Style
}

// DescribeOverlay shows one resource as highlighted YAML.
type DescribeOverlay struct {
	title  string
	lines  [][]styledSpan
	offset int
	height int
}

// NewDescribeOverlay highlights the YAML for display. A lexer failure
// falls back to unstyled text.
func NewDescribeOverlay(title, yamlSrc string) *DescribeOverlay {
	return &DescribeOverlay{title: title, lines: highlightYAML(yamlSrc)}
}

// NewErrorOverlay shows a describe failure in place of the resource.
func NewErrorOverlay(title string, err error) *DescribeOverlay {
	return &DescribeOverlay{
		title: title,
		lines: [][]styledSpan{{{text: err.Error(), style: styleError}}},
	}
}

func (o *DescribeOverlay) HandleKey(ev *tcell.EventKey) bool {
	if ev == nil {
		return false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyUp:
		o.scroll(-1)
	case tcell.KeyDown:
		o.scroll(1)
	case tcell.KeyPgUp:
		o.scroll(-o.height)
	case tcell.KeyPgDn:
		o.scroll(o.height)
	case tcell.KeyHome:
		o.offset = 0
	case tcell.KeyEnd:
		o.scroll(len(o.lines))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'd':
			return true
		case 'k':
			o.scroll(-1)
		case 'j':
			o.scroll(1)
		}
	}
	return false
}

func (o *DescribeOverlay) scroll(delta int) {
	o.offset += delta
	maxOffset := len(o.lines) - o.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if o.offset > maxOffset {
		o.offset = maxOffset
	}
	if o.offset < 0 {
		o.offset = 0
	}
}

func (o *DescribeOverlay) Draw(s tcell.Screen, screen Rect) {
	r := overlayRect(screen)
	drawFrame(s, r, o.title)

	inner := r.Inset(1)
	o.height = inner.Height
	o.scroll(0)

	for vis := 0; vis < inner.Height; vis++ {
		idx := o.offset + vis
		if idx >= len(o.lines) {
			break
		}
		x := inner.X + 1
		limit := inner.X + inner.Width - 1
		for _, span := range o.lines[idx] {
			if x >= limit {
				break
			}
			x += drawText(s, x, inner.Y+vis, limit-x, span.text, span.style)
		}
	}
	if len(o.lines) > inner.Height {
		drawText(s, r.X+2, r.Y+r.Height-1, r.Width-4, " ↑/↓ scroll  esc close ", styleDim)
	}
}

// highlightYAML tokenizes the source and splits the styled runs into
// screen lines.
func highlightYAML(src string) [][]styledSpan {
	lexer := lexers.Get("yaml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return plainLines(src)
	}

	var (
		lines [][]styledSpan
		cur   []styledSpan
	)
	for token := it(); token != chroma.EOF; token = it() {
		style := tokenStyle(token.Type)
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, cur)
				cur = nil
			}
			if part != "" {
				cur = append(cur, styledSpan{text: part, style: style})
			}
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func plainLines(src string) [][]styledSpan {
	var lines [][]styledSpan
	for _, line := range strings.Split(src, "\n") {
		lines = append(lines, []styledSpan{{text: line, style: styleDefault}})
	}
	return lines
}

func tokenStyle(tt chroma.TokenType) tcell.Style {
	switch {
	case tt.InCategory(chroma.Comment):
		return styleDim
	case tt.InCategory(chroma.Keyword):
		return styleTitle
	case tt == chroma.NameTag, tt.InCategory(chroma.Name):
		return tcell.StyleDefault.Foreground(tcell.ColorAqua)
	case tt.InCategory(chroma.LiteralString):
		return styleGood
	case tt.InCategory(chroma.LiteralNumber):
		return styleWarn
	case tt.InCategory(chroma.Punctuation):
		return styleDim
	default:
		return styleDefault
	}
}
