package tags

import (
	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
)

var emoticons = []struct{ name, pattern string }{
	{"smiling", `:-?\)`},
	{"blink", `;-?\)`},
	{"laughing", `:-?D`},
	{"yuck", `:-?[Pp]`},
	{"sad", `:-?\(`},
	{"embarrassed", `:-?[Ss]`},
	{"slant", `:-?/`},
	{"ambivalent", `:-?\|`},
	{"notamused", `--['"]`},
	{"crying", `:-?'\(`},
	{"cool", `B-?\)`},
	{"angry", `:-?@`},
	{"naughty", `3:-?\)`},
	{"angel", `o:-?\)`},
	{"nerd", `8-?\)`},
	{"moneymouth", `:-?\$`},
	{"thumbsup", `:\+1:`},
	{"thumbsdown", `:-1:`},
}

func registerEmoticons(r *bbcode.Registry) error {
	defs := make([]bbcode.TagDefinition, 0, len(emoticons))
	for _, e := range emoticons {
		defs = append(defs, emoticon(e.name, e.pattern))
	}
	return registerAll(r, defs)
}

// emoticon renders a styled span; text mode keeps what the author typed.
func emoticon(name, pattern string) bbcode.TagDefinition {
	markup := `<span class="emoticon emoticon-` + name + `"></span>`
	return bbcode.TagDefinition{
		Name:        name,
		Description: "Emoticon " + pattern,
		Open:        pattern,
		Shape:       bbcode.ShapeSelfClosing,
		Render: func(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
			if rc.AsText {
				return n.Open, nil
			}
			return markup, nil
		},
	}
}
