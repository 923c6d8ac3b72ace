package tags

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
)

// now is replaced in tests.
var now = time.Now

func registerBlocks(r *bbcode.Registry) error {
	defs := []bbcode.TagDefinition{
		{
			Name:        "p",
			Description: "Paragraph",
			Open:        bbcode.NoArgument("p"),
			Close:       bbcode.Closing("p"),
			Shape:       bbcode.ShapeBlockReplace,
		},
		{
			Name:        "quote",
			Description: "Quote of another piece of content, [quote=id]",
			Open:        bbcode.SingleArgument("quote"),
			Close:       bbcode.Closing("quote"),
			Shape:       bbcode.ShapeBlockCustom,
			Render:      renderQuote,
		},
		{
			Name:        "code",
			Description: "Highlighted code, [code=language]",
			Open:        bbcode.OptionalArgument("code", "language"),
			Close:       bbcode.Closing("code"),
			Shape:       bbcode.ShapeBlockCustom,
			Verbatim:    true,
			Render:      renderCode,
		},
		{
			Name:        "markdown",
			Description: "Markdown block, sanitized",
			Open:        bbcode.NoArgument("markdown"),
			Close:       bbcode.Closing("markdown"),
			Shape:       bbcode.ShapeBlockCustom,
			Verbatim:    true,
			Render:      renderMarkdown,
		},
	}
	for _, name := range []string{"info", "danger", "warning", "note"} {
		defs = append(defs, details(name))
	}
	return registerAll(r, defs)
}

func renderQuote(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
	id := rc.Resolve(n.Argument)
	if id == "" {
		return "", n.Fail("no content id attached to the quote")
	}
	if rc.AsText {
		return rc.Inner(n), nil
	}

	rec := &bbcode.ContentRecord{}
	if rc.Context != nil && rc.Context.Content != nil {
		found, err := rc.Context.Content.Fetch(rc.Ctx, id)
		if err != nil {
			return "", n.Fail("could not load quoted content %s: %v", id, err)
		}
		if found == nil {
			return "", n.Fail("quoted content %s not found", id)
		}
		rec = found
	}

	e := html.EscapeString
	var sb strings.Builder
	sb.WriteString(`<div class="quote-feature">`)
	fmt.Fprintf(&sb, `<div class="avatar-wrapper wr%d"><div class="avatar"><a href="%s">`, rec.AuthorRank, e(rec.AuthorURL))
	if rec.AuthorAvatar != "" {
		fmt.Fprintf(&sb, `<img src="%s" alt="%s" />`, e(rec.AuthorAvatar), e(rec.AuthorName))
	}
	fmt.Fprintf(&sb, `<span class="label label-blue">%d</span></a></div></div>`, rec.AuthorRank)
	fmt.Fprintf(&sb, `<blockquote><span class="quote-arrow"></span>&quot;%s&quot;</blockquote>`, rc.Inner(n))
	fmt.Fprintf(&sb, `<div class="author"><a href="%s" class="username">%s</a>, <em>%s</em>, in <a href="%s">%s</a>.</div>`,
		e(rec.AuthorURL), e(rec.AuthorName), e(rec.AuthorSpecialty), e(rec.PageURL), e(rec.PageTitle))
	sb.WriteString(`</div>`)
	return sb.String(), nil
}

func renderCode(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
	code := n.Inner()
	if rc.AsText {
		return code, nil
	}
	language := strings.TrimSpace(bbcode.Unquote(n.Capture("language")))

	var hl bbcode.Highlighter
	var holder string
	if rc.Context != nil {
		hl = rc.Context.Highlighter
		holder = rc.Context.Copyright
	}
	if hl == nil {
		return "<pre>" + html.EscapeString(code) + "</pre>", nil
	}

	highlighted, err := hl.Highlight(code, language)
	if err != nil {
		rc.Warn(n, "highlighting failed: %v", err)
		return "<pre>" + html.EscapeString(code) + "</pre>", nil
	}

	var counts strings.Builder
	for i := 1; i <= strings.Count(highlighted, `class="code-line"`); i++ {
		fmt.Fprintf(&counts, `<a href="#L%d" rel="#L%d">%d</a>`, i, i, i)
	}

	copyright := ""
	if holder != "" {
		copyright = fmt.Sprintf("(c) %d %s", now().Year(), holder)
	}
	title := "Code"
	if language != "" {
		title = strings.ToUpper(language[:1]) + strings.ToLower(language[1:])
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="block-code" data-language="%s" data-copyright="%s">`, html.EscapeString(language), html.EscapeString(copyright))
	fmt.Fprintf(&sb, `<div class="code-head"><span class="code-language">%s</span>`, html.EscapeString(title))
	sb.WriteString(`<a class="code-copy" href="#"><span class="code-copy-first">Copy to Clipboard</span><span class="code-copy-done">Copied. Copy again?</span></a></div>`)
	fmt.Fprintf(&sb, `<div class="code-content"><div class="code-counts">%s</div><div class="code-lines">%s</div></div>`, counts.String(), highlighted)
	sb.WriteString(`</div>`)
	return sb.String(), nil
}

// details renders the boxed note blocks ([info], [danger], ...). All of them
// share one layout keyed by the tag name.
func details(name string) bbcode.TagDefinition {
	return bbcode.TagDefinition{
		Name:        name,
		Description: strings.ToUpper(name[:1]) + name[1:] + " block",
		Element:     "div",
		Open:        bbcode.NoArgument(name),
		Close:       bbcode.Closing(name),
		Shape:       bbcode.ShapeBlockReplace,
		Render: func(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
			inner := rc.Inner(n)
			if rc.AsText {
				return inner, nil
			}
			return `<div class="block-details block-` + name + `">` +
				`<span class="icon-block icon-` + name + `"></span>` +
				`<span class="text-block text-` + name + `">` + inner + `</span>` +
				`</div>`, nil
		},
	}
}
