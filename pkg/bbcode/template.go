package bbcode

import (
	"context"
	"html/template"
)

// FuncMap exposes the engine to html/template.
//
//	{{ .Body | bbcode }}            strict HTML, empty on any issue
//	{{ .Body | bbcode_text }}       strict plain text
//	{{ bbcode_ns .Body "forum" }}   lenient HTML with namespaces
//
// The strict filters are meant for content validated before it was stored.
func FuncMap(e *Engine, pc *ParseContext) template.FuncMap {
	return template.FuncMap{
		"bbcode": func(content string) template.HTML {
			out, _ := e.Parse(context.Background(), content, Options{Strict: true, AutoDiscover: true, Context: pc})
			return template.HTML(out)
		},
		"bbcode_text": func(content string) string {
			out, _ := e.Parse(context.Background(), content, Options{Strict: true, AutoDiscover: true, AsText: true, Context: pc})
			return out
		},
		"bbcode_ns": func(content string, namespaces ...string) template.HTML {
			out, _ := e.Parse(context.Background(), content, Options{
				Namespaces:   namespaces,
				AutoDiscover: true,
				Context:      pc,
			})
			return template.HTML(out)
		},
	}
}
