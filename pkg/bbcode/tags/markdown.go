package tags

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	ugc      = bluemonday.UGCPolicy()
	strip    = bluemonday.StrictPolicy()
)

func renderMarkdown(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(rc.Resolve(n.Inner())), &buf); err != nil {
		return "", n.Fail("invalid markdown: %v", err)
	}
	if rc.AsText {
		return html.UnescapeString(strip.Sanitize(buf.String())), nil
	}
	return ugc.Sanitize(buf.String()), nil
}
