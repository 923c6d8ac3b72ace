package tags

import (
	"bytes"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultCodeStyle is used when no style is configured.
const DefaultCodeStyle = "github"

// ChromaHighlighter highlights [code] blocks with chroma, one
// <div class="code-line"> per source line.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *hlhtml.Formatter
}

// NewChromaHighlighter returns a highlighter using the named chroma style.
// Unknown names fall back to the chroma default style.
func NewChromaHighlighter(style string) *ChromaHighlighter {
	if style == "" {
		style = DefaultCodeStyle
	}
	return &ChromaHighlighter{
		style:     styles.Get(style),
		formatter: hlhtml.New(hlhtml.Standalone(false), hlhtml.PreventSurroundingPre(true)),
	}
}

// Highlight implements bbcode.Highlighter. The language is a chroma lexer
// name or alias; when empty or unknown the lexer is guessed from the code.
func (h *ChromaHighlighter) Highlight(code, language string) (string, error) {
	var l chroma.Lexer
	if language != "" {
		l = lexers.Get(language)
	}
	if l == nil {
		l = lexers.Analyse(code)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	it, err := l.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	var buf bytes.Buffer
	for _, line := range chroma.SplitTokensIntoLines(it.Tokens()) {
		buf.Reset()
		if err := h.formatter.Format(&buf, h.style, chroma.Literator(line...)); err != nil {
			return "", err
		}
		out.WriteString(`<div class="code-line">`)
		out.WriteString(strings.TrimRight(buf.String(), "\n"))
		out.WriteString(`</div>`)
	}
	return out.String(), nil
}

// PlainHighlighter wraps each line without any colouring.
type PlainHighlighter struct{}

// Highlight implements bbcode.Highlighter.
func (PlainHighlighter) Highlight(code, _ string) (string, error) {
	var out strings.Builder
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		out.WriteString(`<div class="code-line">`)
		out.WriteString(html.EscapeString(line))
		out.WriteString(`</div>`)
	}
	return out.String(), nil
}
