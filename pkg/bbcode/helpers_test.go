package bbcode

import (
	"context"
	"html"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testRegistry builds a small catalog covering every shape.
func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()

	defs := []TagDefinition{
		{Name: "b", Element: "strong", Open: NoArgument("b"), Close: Closing("b"), Shape: ShapeReplace},
		{Name: "i", Element: "em", Open: NoArgument("i"), Close: Closing("i"), Shape: ShapeReplace},
		{Name: "center", Element: "p", Open: NoArgument("center"), Close: Closing("center"), Shape: ShapeBlockReplace},
		{Name: "hr", Open: NoArgument("hr"), Shape: ShapeSelfClosing},
		{Name: "size", Element: "span", Open: SingleArgument("size"), Close: Closing("size"), Shape: ShapeArgument},
		{
			Name:     "ol",
			Open:     KeywordArguments("ol"),
			Close:    Closing("ol"),
			Shape:    ShapeBlockMultiArgument,
			Keywords: map[string]string{"css": "", "start": "1"},
		},
		{
			Name:  "quote",
			Open:  SingleArgument("quote"),
			Close: Closing("quote"),
			Shape: ShapeBlockCustom,
			Render: func(rc *RenderContext, n *Node) (string, error) {
				if n.Argument == "" {
					return "", n.Fail("quote needs an id")
				}
				if rc.AsText {
					return rc.Inner(n), nil
				}
				return `<blockquote data-id="` + html.EscapeString(n.Argument) + `">` + rc.Inner(n) + `</blockquote>`, nil
			},
		},
		{
			Name:     "img",
			Open:     SingleArgument("img"),
			Close:    Closing("img"),
			Shape:    ShapeArgument,
			Children: ChildrenText,
			Render: func(rc *RenderContext, n *Node) (string, error) {
				if rc.AsText {
					return "", nil
				}
				return `<img src="` + html.EscapeString(rc.Resolve(rc.Raw(n))) + `" />`, nil
			},
		},
		{
			Name:     "steps",
			Open:     NoArgument("steps"),
			Close:    Closing("steps"),
			Shape:    ShapeBlockCustom,
			Children: ChildrenOnly("step"),
			Render: func(rc *RenderContext, n *Node) (string, error) {
				return rc.wrap(n, "", rc.Inner(n)), nil
			},
		},
		{Name: "step", Element: "li", Open: NoArgument("step"), Close: Closing("step"), Shape: ShapeBlockReplace},
		{
			Name:  "smile",
			Open:  `:-?\)`,
			Shape: ShapeSelfClosing,
			Render: func(rc *RenderContext, n *Node) (string, error) {
				if rc.AsText {
					return n.Open, nil
				}
				return `<span class="emoticon"></span>`, nil
			},
		},
		{
			Name:     "autourl",
			Open:     `https?://[^\s\[\]]+`,
			Shape:    ShapeSelfClosing,
			Fallback: true,
			Render: func(rc *RenderContext, n *Node) (string, error) {
				if rc.AsText {
					return n.Open, nil
				}
				return `<a href="` + html.EscapeString(n.Open) + `">` + html.EscapeString(n.Open) + `</a>`, nil
			},
		},
	}
	for _, d := range defs {
		require.NoError(t, r.Register(d))
	}
	return r
}

func render(t *testing.T, r *Registry, input string, opts Options) (string, Issues) {
	t.Helper()
	return NewEngine(r).Parse(context.Background(), input, opts)
}

// concatRaw rebuilds the input from a list of nodes.
func concatRaw(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.Raw)
	}
	return sb.String()
}
